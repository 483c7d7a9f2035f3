// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import (
	"encoding/binary"
	"math"
	"testing"
)

func ctxLE() *Context {
	return &Context{Order: binary.LittleEndian, IntSize: 4, SizeTSize: 4, InstructionSize: 4, NumberSize: 8}
}

func TestDecodeConstantNil(t *testing.T) {
	r := NewReader([]byte{0})
	r.SetOrder(binary.LittleEndian)
	c, err := decodeConstant(r, ctxLE())
	if err != nil {
		t.Fatalf("decodeConstant: %v", err)
	}
	if c.Kind != ConstantNil {
		t.Errorf("Kind = %v, want Nil", c.Kind)
	}
}

func TestDecodeConstantBool(t *testing.T) {
	r := NewReader([]byte{1, 1})
	r.SetOrder(binary.LittleEndian)
	c, err := decodeConstant(r, ctxLE())
	if err != nil {
		t.Fatalf("decodeConstant: %v", err)
	}
	if c.Kind != ConstantBool || !c.Bool {
		t.Errorf("decodeConstant = %+v, want Bool(true)", c)
	}
}

func TestDecodeConstantNumberFloat(t *testing.T) {
	buf := make([]byte, 9)
	buf[0] = 3
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(2.5))
	r := NewReader(buf)
	r.SetOrder(binary.LittleEndian)
	c, err := decodeConstant(r, ctxLE())
	if err != nil {
		t.Fatalf("decodeConstant: %v", err)
	}
	if c.Kind != ConstantNumber || c.Number != 2.5 {
		t.Errorf("decodeConstant = %+v, want Number(2.5)", c)
	}
}

func TestDecodeConstantNumberIntegral(t *testing.T) {
	buf := make([]byte, 9)
	buf[0] = 3
	binary.LittleEndian.PutUint64(buf[1:], 42)
	r := NewReader(buf)
	r.SetOrder(binary.LittleEndian)
	ctx := ctxLE()
	ctx.IntegralFlag = true
	c, err := decodeConstant(r, ctx)
	if err != nil {
		t.Fatalf("decodeConstant: %v", err)
	}
	if c.Kind != ConstantNumber || c.Number != 42 {
		t.Errorf("decodeConstant = %+v, want Number(42)", c)
	}
}

func TestDecodeConstantString(t *testing.T) {
	buf := []byte{4, 6, 0, 0, 0, 'h', 'e', 'l', 'l', 'o', 0}
	r := NewReader(buf)
	r.SetOrder(binary.LittleEndian)
	c, err := decodeConstant(r, ctxLE())
	if err != nil {
		t.Fatalf("decodeConstant: %v", err)
	}
	if c.Kind != ConstantString || string(c.String) != "hello\x00" {
		t.Errorf("decodeConstant = %+v, want String(%q)", c, "hello\x00")
	}
}

func TestDecodeConstantBadTag(t *testing.T) {
	r := NewReader([]byte{2})
	if _, err := decodeConstant(r, ctxLE()); err == nil {
		t.Error("decodeConstant(tag=2): want error, got nil")
	}
	r = NewReader([]byte{5})
	if _, err := decodeConstant(r, ctxLE()); err == nil {
		t.Error("decodeConstant(tag=5): want error, got nil")
	}
}

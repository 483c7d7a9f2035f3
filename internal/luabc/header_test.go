// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import (
	"encoding/binary"
	"testing"

	"lua51dis.dev/luadis/internal/registry"
)

func TestDecodeHeaderMinimal(t *testing.T) {
	data := []byte{0x1B, 0x4C, 0x75, 0x61, 0x51, 0x00, 0x01, 0x04, 0x04, 0x04, 0x08, 0x00}
	reg := registry.New()
	r := NewReader(data)

	h, ctx, err := decodeHeader(r, reg)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if h.Version != 0x51 {
		t.Errorf("Version = 0x%02x, want 0x51", h.Version)
	}
	if h.Endianness != 1 {
		t.Errorf("Endianness = %d, want 1 (little)", h.Endianness)
	}
	if ctx.Order != binary.LittleEndian {
		t.Errorf("Context.Order = %v, want LittleEndian", ctx.Order)
	}
	if ctx.IntSize != 4 || ctx.SizeTSize != 4 || ctx.InstructionSize != 4 || ctx.NumberSize != 8 {
		t.Errorf("Context widths = %+v, want int=4 sizeT=4 instr=4 number=8", ctx)
	}
	if ctx.IntegralFlag {
		t.Errorf("Context.IntegralFlag = true, want false")
	}

	wantAddrs := []int{0, 4, 5, 6, 7, 8, 9, 10, 11}
	var gotAddrs []int
	for a := range reg.ListByKind(registry.KindHeaderField) {
		gotAddrs = append(gotAddrs, a.Address)
	}
	if len(gotAddrs) != len(wantAddrs) {
		t.Fatalf("header artifact count = %d, want %d (addrs %v)", len(gotAddrs), len(wantAddrs), gotAddrs)
	}
	for i, want := range wantAddrs {
		if gotAddrs[i] != want {
			t.Errorf("header artifact[%d] address = %d, want %d", i, gotAddrs[i], want)
		}
	}
}

func TestDecodeHeaderBadSignature(t *testing.T) {
	data := []byte{0x00, 0x4C, 0x75, 0x61, 0x51, 0x00, 0x01, 0x04, 0x04, 0x04, 0x08, 0x00}
	reg := registry.New()
	if _, _, err := decodeHeader(NewReader(data), reg); err == nil {
		t.Fatal("decodeHeader with bad signature: want error, got nil")
	}
}

func TestIsBadVersion(t *testing.T) {
	h := &Header{Version: 0x50}
	if !h.IsBadVersion() {
		t.Error("IsBadVersion() = false for 0x50, want true")
	}
	h.Version = 0x51
	if h.IsBadVersion() {
		t.Error("IsBadVersion() = true for 0x51, want false")
	}
}

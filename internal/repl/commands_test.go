// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package repl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"lua51dis.dev/luadis/internal/luabc"
	"lua51dis.dev/luadis/internal/output"
	"lua51dis.dev/luadis/internal/registry"
)

// buildChunk assembles one prototype with two instructions and one
// string constant: the same minimal fixture shape internal/luabc's
// own tests use, rebuilt here since each package keeps its own
// fixtures per the teacher's testing style.
func buildChunk(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write([]byte{0x1B, 'L', 'u', 'a'})
	buf.WriteByte(0x51)
	buf.WriteByte(0)
	buf.WriteByte(1)
	buf.WriteByte(4)
	buf.WriteByte(4)
	buf.WriteByte(4)
	buf.WriteByte(8)
	buf.WriteByte(0)

	u32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }
	u32(0) // sourceName
	u32(0) // lineDefined
	u32(0) // lastLineDefined
	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.WriteByte(2)

	move := (&luabc.Instruction{Op: luabc.OpMove, Format: luabc.FormatABC, A: 0, B: 0, C: 0}).Encode()
	ret := (&luabc.Instruction{Op: luabc.OpReturn, Format: luabc.FormatAB, A: 0, B: 1}).Encode()
	u32(2)
	u32(move)
	u32(ret)

	u32(1)
	buf.WriteByte(4)
	u32(2)
	buf.WriteString("hi")

	u32(0) // nested prototypes
	u32(0) // line info
	u32(0) // locals
	u32(0) // upvalue names
	return buf.Bytes()
}

func newTestSession(t *testing.T) (*Session, *strings.Builder) {
	t.Helper()
	reg := registry.New()
	chunk, err := luabc.Decode(buildChunk(t), reg)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var out strings.Builder
	f := output.New(&out)
	return NewSession("test.luac", chunk, reg, f, &out), &out
}

func TestSelectAddressAndAddr(t *testing.T) {
	s, out := newTestSession(t)
	s.Dispatch(fmt.Sprintf("select address 0x%x", s.Chunk.Root.StartOffset))
	s.Dispatch("addr")

	got := out.String()
	if !strings.Contains(got, "0x") {
		t.Errorf("addr output = %q, want a hex address", got)
	}
}

func TestSelectAddressThenListInstructions(t *testing.T) {
	s, out := newTestSession(t)
	s.Dispatch(fmt.Sprintf("select address 0x%x", s.Chunk.Root.StartOffset))
	s.Dispatch("list instructions")

	got := out.String()
	if !strings.Contains(got, "MOVE") || !strings.Contains(got, "RETURN") {
		t.Errorf("list instructions output = %q, want MOVE and RETURN", got)
	}
}

func TestListInstructionsWithoutSelectionErrors(t *testing.T) {
	s, out := newTestSession(t)
	s.Dispatch("list instructions")
	if !strings.Contains(out.String(), "no artifact selected") {
		t.Errorf("list instructions without selection = %q, want an error mentioning no selection", out.String())
	}
}

func TestTagAndSelectTagRoundTrip(t *testing.T) {
	s, _ := newTestSession(t)
	s.Dispatch(fmt.Sprintf("select address 0x%x", s.Chunk.Root.StartOffset))
	s.Dispatch("tag main")
	s.Selected = nil
	s.Dispatch("select tag main")

	if s.Selected == nil || s.Selected.Address != s.Chunk.Root.StartOffset {
		t.Errorf("after tag round trip, Selected = %+v, want address 0x%x", s.Selected, s.Chunk.Root.StartOffset)
	}
}

func TestPromptFormats(t *testing.T) {
	s, _ := newTestSession(t)
	if got, want := s.Prompt(), "@test.luac>> "; got != want {
		t.Errorf("Prompt() with no selection = %q, want %q", got, want)
	}

	a, err := s.Registry.FindByAddress(s.Chunk.Root.StartOffset)
	if err != nil {
		t.Fatalf("FindByAddress: %v", err)
	}
	s.Selected = a
	if got, want := s.Prompt(), fmt.Sprintf("@function:0x%x>> ", a.Address); got != want {
		t.Errorf("Prompt() with selection = %q, want %q", got, want)
	}

	s.Registry.SetTag(a, "entry")
	if got, want := s.Prompt(), "@function:entry>> "; got != want {
		t.Errorf("Prompt() with tag = %q, want %q", got, want)
	}
}

func TestExportJSON(t *testing.T) {
	s, out := newTestSession(t)
	s.Dispatch("export json")
	if !strings.Contains(out.String(), `"kind":"function"`) {
		t.Errorf("export json output = %q, want it to mention kind:function", out.String())
	}
}

func TestUnrecognizedCommandIgnored(t *testing.T) {
	s, out := newTestSession(t)
	s.Dispatch("frobnicate")
	if out.String() != "" {
		t.Errorf("unrecognized command wrote %q, want nothing", out.String())
	}
}

func TestExitReturnsTrue(t *testing.T) {
	s, _ := newTestSession(t)
	_, exit := s.Dispatch("exit")
	if !exit {
		t.Error("Dispatch(\"exit\") isExit = false, want true")
	}
}

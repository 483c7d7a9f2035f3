// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import (
	"encoding/binary"
	"fmt"

	"lua51dis.dev/luadis/internal/registry"
)

// expectedVersion is the Lua 5.1 version byte this decoder targets.
// A mismatch is not fatal (see [Header] and [Decode]'s Warnings).
const expectedVersion = 0x51

var signature = [4]byte{0x1B, 'L', 'u', 'a'}

// Header is the 12-byte preamble of a Lua 5.1 binary chunk.
type Header struct {
	Version         byte
	Format          byte
	Endianness      byte
	IntSize         byte
	SizeTSize       byte
	InstructionSize byte
	NumberSize      byte
	IntegralFlag    byte
}

// ArtifactSummary implements [registry.Summarizer].
func (h *Header) ArtifactSummary() string {
	return fmt.Sprintf("version=0x%02x format=%d", h.Version, h.Format)
}

// IsBadVersion reports whether h's version byte is not the one this
// decoder targets. Per the error-handling design this is a warning,
// not a decode failure: decoding proceeds using h's own size fields
// regardless.
func (h *Header) IsBadVersion() bool {
	return h.Version != expectedVersion
}

// Context carries the parameters a header decode extracts and every
// subsequent decoder in the chunk needs: byte order and the widths of
// the platform-dependent integer types the compiler that produced the
// chunk used.
type Context struct {
	Order           binary.ByteOrder
	IntSize         int
	SizeTSize       int
	InstructionSize int
	NumberSize      int
	IntegralFlag    bool
}

// decodeHeader reads the fixed 12-byte header from r, registers its
// nine artifacts (the signature plus one per remaining field) with
// reg, and returns the decoded header together with the [Context]
// every later decoder in the chunk is threaded through.
func decodeHeader(r *Reader, reg *registry.Registry) (*Header, *Context, error) {
	sigAddr := r.Position()
	sig, err := r.ReadBytes(4)
	if err != nil {
		return nil, nil, fmt.Errorf("header: signature: %w", err)
	}
	if sig[0] != signature[0] || sig[1] != signature[1] || sig[2] != signature[2] || sig[3] != signature[3] {
		return nil, nil, fmt.Errorf("header: %w", ErrBadSignature)
	}

	h := &Header{}
	fieldAddr := r.Position()

	readField := func(dst *byte) error {
		b, err := r.ReadU8()
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
	for _, dst := range []*byte{
		&h.Version, &h.Format, &h.Endianness,
		&h.IntSize, &h.SizeTSize, &h.InstructionSize, &h.NumberSize,
		&h.IntegralFlag,
	} {
		if err := readField(dst); err != nil {
			return nil, nil, fmt.Errorf("header: field at offset %d: %w", r.Position(), err)
		}
	}

	if h.InstructionSize != 4 {
		return nil, nil, fmt.Errorf("header: %w: got %d", ErrBadInstructionSize, h.InstructionSize)
	}
	if h.IntSize != 4 && h.IntSize != 8 {
		return nil, nil, fmt.Errorf("header: %w: intSize %d", ErrBadWidth, h.IntSize)
	}
	if h.SizeTSize != 4 && h.SizeTSize != 8 {
		return nil, nil, fmt.Errorf("header: %w: sizeTSize %d", ErrBadWidth, h.SizeTSize)
	}
	if h.NumberSize != 4 && h.NumberSize != 8 {
		return nil, nil, fmt.Errorf("header: %w: numberSize %d", ErrBadWidth, h.NumberSize)
	}

	order := binary.ByteOrder(binary.BigEndian)
	if h.Endianness != 0 {
		order = binary.LittleEndian
	}
	r.SetOrder(order)

	reg.Register(registry.KindHeaderField, sigAddr, h)
	for i, dst := range []*byte{
		&h.Version, &h.Format, &h.Endianness,
		&h.IntSize, &h.SizeTSize, &h.InstructionSize, &h.NumberSize,
		&h.IntegralFlag,
	} {
		reg.Register(registry.KindHeaderField, fieldAddr+i, dst)
	}

	ctx := &Context{
		Order:           order,
		IntSize:         int(h.IntSize),
		SizeTSize:       int(h.SizeTSize),
		InstructionSize: int(h.InstructionSize),
		NumberSize:      int(h.NumberSize),
		IntegralFlag:    h.IntegralFlag != 0,
	}
	return h, ctx, nil
}

// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import (
	"fmt"

	"lua51dis.dev/luadis/internal/registry"
)

// Chunk is a fully decoded Lua 5.1 binary chunk: its header and the
// recursive tree of function prototypes rooted at Root.
type Chunk struct {
	Header *Header
	Root   *Prototype

	// Warnings holds non-fatal diagnostics noticed during decode (for
	// example, a version byte other than 0x51). Decoding still
	// completes; these are surfaced to the caller to log, not to
	// abort on.
	Warnings []string
}

// Decode parses data as a Lua 5.1 binary chunk, registering every
// artifact it produces — the header fields, every prototype,
// instruction, constant, local variable, and upvalue name — with reg
// once the whole pass has succeeded (decoding itself registers into a
// private scratch registry). It is the single entry point into this package: no
// partial chunk is ever returned alongside a non-nil error, and no
// artifacts are registered for a decode pass that ultimately fails.
func Decode(data []byte, reg *registry.Registry) (*Chunk, error) {
	scratch := registry.New()
	r := NewReader(data)

	header, ctx, err := decodeHeader(r, scratch)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var warnings []string
	if header.IsBadVersion() {
		warnings = append(warnings, fmt.Sprintf("non-standard version 0x%02x (expected 0x%02x); decoding anyway", header.Version, byte(expectedVersion)))
	}

	root, err := decodePrototype(r, ctx, scratch)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	for a := range scratch.All() {
		registered := reg.Register(a.Kind, a.Address, a.Value)
		if a.Tag != "" {
			_ = reg.SetTag(registered, a.Tag)
		}
	}

	return &Chunk{Header: header, Root: root, Warnings: warnings}, nil
}

// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import (
	"fmt"

	"lua51dis.dev/luadis/internal/registry"
)

// LineInfo is one opaque 4-byte line-table entry, one per instruction.
// The original tool never reinterprets these bytes and neither does
// this one; they exist purely to round-trip and to be displayed raw.
type LineInfo [4]byte

// LocalVar is one entry of a prototype's local-variable debug table.
type LocalVar struct {
	Address int
	Name    []byte
	StartPC uint32
	EndPC   uint32
}

// ArtifactSummary implements [registry.Summarizer].
func (l *LocalVar) ArtifactSummary() string {
	return fmt.Sprintf("%s [%d,%d)", l.Name, l.StartPC, l.EndPC)
}

// UpvalueName is one entry of a prototype's upvalue-name debug table.
type UpvalueName struct {
	Address int
	Index   int
	Name    []byte
}

// ArtifactSummary implements [registry.Summarizer].
func (u *UpvalueName) ArtifactSummary() string {
	return fmt.Sprintf("upvalue[%d] %s", u.Index, u.Name)
}

// debugInfo holds the three fixed-order sequences §4.5 decodes.
type debugInfo struct {
	lineInfo     []LineInfo
	locals       []*LocalVar
	upvalueNames []*UpvalueName
}

// decodeDebug reads the line table, local-variable table, and
// upvalue-name table, in that fixed order, registering each local and
// upvalue-name artifact as it goes.
func decodeDebug(r *Reader, ctx *Context, reg *registry.Registry) (*debugInfo, error) {
	lineCount, err := r.ReadUint(ctx.IntSize)
	if err != nil {
		return nil, fmt.Errorf("debug: line info count: %w", err)
	}
	lines := make([]LineInfo, 0, lineCount)
	for i := uint64(0); i < lineCount; i++ {
		b, err := r.ReadBytes(4)
		if err != nil {
			return nil, fmt.Errorf("debug: line info[%d]: %w", i, err)
		}
		var entry LineInfo
		copy(entry[:], b)
		lines = append(lines, entry)
	}

	localCount, err := r.ReadUint(ctx.IntSize)
	if err != nil {
		return nil, fmt.Errorf("debug: local count: %w", err)
	}
	locals := make([]*LocalVar, 0, localCount)
	for i := uint64(0); i < localCount; i++ {
		addr := r.Position()
		name, err := readString(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("debug: local[%d] name: %w", i, err)
		}
		startPC, err := r.ReadUint(4)
		if err != nil {
			return nil, fmt.Errorf("debug: local[%d] startPC: %w", i, err)
		}
		endPC, err := r.ReadUint(4)
		if err != nil {
			return nil, fmt.Errorf("debug: local[%d] endPC: %w", i, err)
		}
		lv := &LocalVar{Address: addr, Name: name, StartPC: uint32(startPC), EndPC: uint32(endPC)}
		reg.Register(registry.KindLocalVar, addr, lv)
		locals = append(locals, lv)
	}

	upvalCount, err := r.ReadUint(ctx.IntSize)
	if err != nil {
		return nil, fmt.Errorf("debug: upvalue name count: %w", err)
	}
	upvalueNames := make([]*UpvalueName, 0, upvalCount)
	for i := uint64(0); i < upvalCount; i++ {
		addr := r.Position()
		name, err := readString(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("debug: upvalue name[%d]: %w", i, err)
		}
		un := &UpvalueName{Address: addr, Index: int(i), Name: name}
		reg.Register(registry.KindUpvalueName, addr, un)
		upvalueNames = append(upvalueNames, un)
	}

	return &debugInfo{lineInfo: lines, locals: locals, upvalueNames: upvalueNames}, nil
}

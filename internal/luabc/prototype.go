// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import (
	"fmt"

	"lua51dis.dev/luadis/internal/registry"
)

// Prototype is one compiled function body: its source name, line
// range, parameter/upvalue counts, instructions, constants, nested
// function prototypes, and debug tables.
type Prototype struct {
	SourceName      []byte
	LineDefined     int
	LastLineDefined int
	NumUpvalues     byte
	NumParameters   byte
	IsVararg        byte
	MaxStackSize    byte

	Instructions []*Instruction
	Constants    []*Constant
	Protos       []*Prototype

	LineInfo     []LineInfo
	Locals       []*LocalVar
	UpvalueNames []*UpvalueName

	// StartOffset is the byte offset this prototype began at, used as
	// its registry identity.
	StartOffset int
}

// ArtifactSummary implements [registry.Summarizer]. It matches the
// "list functions" / CLOSURE rendering format: function[<instruction
// count>].
func (p *Prototype) ArtifactSummary() string {
	return fmt.Sprintf("function[%d]", len(p.Instructions))
}

// decodePrototype recursively decodes one function prototype and
// every prototype nested within it, in the fixed field order §4.6
// specifies, registering every instruction, constant, local, upvalue
// name, and the prototype itself along the way.
func decodePrototype(r *Reader, ctx *Context, reg *registry.Registry) (*Prototype, error) {
	startOffset := r.Position()
	p := &Prototype{StartOffset: startOffset}

	var err error
	p.SourceName, err = readString(r, ctx)
	if err != nil {
		return nil, fmt.Errorf("prototype @0x%x: sourceName: %w", startOffset, err)
	}

	lineDefined, err := r.ReadUint(ctx.IntSize)
	if err != nil {
		return nil, fmt.Errorf("prototype @0x%x: lineDefined: %w", startOffset, err)
	}
	p.LineDefined = int(lineDefined)

	lastLineDefined, err := r.ReadUint(ctx.IntSize)
	if err != nil {
		return nil, fmt.Errorf("prototype @0x%x: lastLineDefined: %w", startOffset, err)
	}
	p.LastLineDefined = int(lastLineDefined)

	if p.NumUpvalues, err = r.ReadU8(); err != nil {
		return nil, fmt.Errorf("prototype @0x%x: numUpvalues: %w", startOffset, err)
	}
	if p.NumParameters, err = r.ReadU8(); err != nil {
		return nil, fmt.Errorf("prototype @0x%x: numParameters: %w", startOffset, err)
	}
	if p.IsVararg, err = r.ReadU8(); err != nil {
		return nil, fmt.Errorf("prototype @0x%x: isVararg: %w", startOffset, err)
	}
	if p.MaxStackSize, err = r.ReadU8(); err != nil {
		return nil, fmt.Errorf("prototype @0x%x: maxStackSize: %w", startOffset, err)
	}

	instrCount, err := r.ReadUint(ctx.IntSize)
	if err != nil {
		return nil, fmt.Errorf("prototype @0x%x: instruction count: %w", startOffset, err)
	}
	p.Instructions = make([]*Instruction, 0, instrCount)
	for i := uint64(0); i < instrCount; i++ {
		addr := r.Position()
		word, err := r.ReadUint(4)
		if err != nil {
			return nil, fmt.Errorf("prototype @0x%x: instruction[%d]: %w", startOffset, i, err)
		}
		in, err := decodeInstruction(uint32(word))
		if err != nil {
			return nil, fmt.Errorf("prototype @0x%x: instruction[%d]: %w", startOffset, i, err)
		}
		in.Address = addr
		reg.Register(registry.KindInstruction, addr, in)
		p.Instructions = append(p.Instructions, in)
	}

	constCount, err := r.ReadUint(ctx.IntSize)
	if err != nil {
		return nil, fmt.Errorf("prototype @0x%x: constant count: %w", startOffset, err)
	}
	p.Constants = make([]*Constant, 0, constCount)
	for i := uint64(0); i < constCount; i++ {
		addr := r.Position()
		c, err := decodeConstant(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("prototype @0x%x: constant[%d]: %w", startOffset, i, err)
		}
		c.Address = addr
		reg.Register(registry.KindConstant, addr, c)
		p.Constants = append(p.Constants, c)
	}

	protoCount, err := r.ReadUint(ctx.IntSize)
	if err != nil {
		return nil, fmt.Errorf("prototype @0x%x: nested prototype count: %w", startOffset, err)
	}
	p.Protos = make([]*Prototype, 0, protoCount)
	for i := uint64(0); i < protoCount; i++ {
		child, err := decodePrototype(r, ctx, reg)
		if err != nil {
			return nil, fmt.Errorf("prototype @0x%x: nested prototype[%d]: %w", startOffset, i, err)
		}
		p.Protos = append(p.Protos, child)
	}

	dbg, err := decodeDebug(r, ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("prototype @0x%x: %w", startOffset, err)
	}
	p.LineInfo = dbg.lineInfo
	p.Locals = dbg.locals
	p.UpvalueNames = dbg.upvalueNames

	if len(p.LineInfo) != 0 && len(p.LineInfo) != len(p.Instructions) {
		return nil, fmt.Errorf("prototype @0x%x: lineInfo length %d matches neither 0 nor instruction count %d", startOffset, len(p.LineInfo), len(p.Instructions))
	}
	if len(p.UpvalueNames) != 0 && len(p.UpvalueNames) != int(p.NumUpvalues) {
		return nil, fmt.Errorf("prototype @0x%x: upvalueNames length %d matches neither 0 nor numUpvalues %d", startOffset, len(p.UpvalueNames), p.NumUpvalues)
	}

	reg.Register(registry.KindPrototype, startOffset, p)
	return p, nil
}

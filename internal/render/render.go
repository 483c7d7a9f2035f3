// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

// Package render implements the pseudo-code renderer: a per-opcode
// mapping from a decoded instruction to a human-readable, Lua-like
// one-line approximation of its semantics.
//
// Grounded on original_source/lua_instruction.py's pseudo() method and
// its RK/UPV/Kst helpers, restructured as a table of opcode → render
// function per the "per-opcode dispatch" design note, in the spirit of
// the teacher's Instruction.String() per-format dispatch.
package render

import (
	"lua51dis.dev/luadis/internal/luabc"
	"lua51dis.dev/luadis/internal/output"
	"lua51dis.dev/luadis/internal/registry"
)

// Line writes one pseudo-code line for in, which belongs to proto, to
// f. Every defined opcode is handled; SETLIST/CLOSE/VARARG and any
// opcode without a dedicated template emit a "TODO: <opcode>"
// placeholder line, per §4.8.
func Line(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	fn, ok := renderers[in.Op]
	if !ok {
		f.Addf(output.Keyword, "TODO: %s", in.Op)
		return
	}
	fn(f, reg, proto, in)
}

type renderFunc func(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction)

var renderers map[luabc.OpCode]renderFunc

func init() {
	renderers = map[luabc.OpCode]renderFunc{
		luabc.OpMove:      renderMove,
		luabc.OpLoadK:     renderLoadK,
		luabc.OpLoadBool:  renderLoadBool,
		luabc.OpLoadNil:   renderLoadNil,
		luabc.OpGetUpval:  renderGetUpval,
		luabc.OpGetGlobal: renderGetGlobal,
		luabc.OpGetTable:  renderGetTable,
		luabc.OpSetGlobal: renderSetGlobal,
		luabc.OpSetUpval:  renderSetUpval,
		luabc.OpSetTable:  renderSetTable,
		luabc.OpNewTable:  renderNewTable,
		luabc.OpSelf:      renderSelf,
		luabc.OpAdd:       arithRenderer("+"),
		luabc.OpSub:       arithRenderer("-"),
		luabc.OpMul:       arithRenderer("*"),
		luabc.OpDiv:       arithRenderer("/"),
		luabc.OpMod:       arithRenderer("%"),
		luabc.OpPow:       arithRenderer("^"),
		luabc.OpUnm:       renderUnm,
		luabc.OpNot:       renderNot,
		luabc.OpLen:       renderLen,
		luabc.OpConcat:    renderConcat,
		luabc.OpJmp:       renderJmp,
		luabc.OpEq:        compareRenderer("=="),
		luabc.OpLt:        compareRenderer("<"),
		luabc.OpLe:        compareRenderer("<="),
		luabc.OpTest:      renderTest,
		luabc.OpTestSet:   renderTestSet,
		luabc.OpCall:      renderCall,
		luabc.OpTailCall:  renderTailCall,
		luabc.OpReturn:    renderReturn,
		luabc.OpForLoop:   renderForLoop,
		luabc.OpForPrep:   renderForPrep,
		luabc.OpTForLoop:  renderTForLoop,
		luabc.OpSetList:   placeholder,
		luabc.OpClose:     placeholder,
		luabc.OpClosure:   renderClosure,
		luabc.OpVararg:    placeholder,
	}
}

func placeholder(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	f.Addf(output.Keyword, "TODO: %s", in.Op)
}

// reg token helpers.

func regToken(f *output.Formatter, n int) {
	f.Addf(output.Register, "R(%d)", n)
}

func regRangeToken(f *output.Formatter, lo, hi int) {
	f.Addf(output.Register, "R(%d..%d)", lo, hi)
}

// constantToken renders the constant at index n in proto's constant
// table, or a placeholder if n is out of range.
func constantToken(f *output.Formatter, proto *luabc.Prototype, n int) {
	if n < 0 || n >= len(proto.Constants) {
		f.Addf(output.Error, "K(%d)", n)
		return
	}
	c := proto.Constants[n]
	switch c.Kind {
	case luabc.ConstantNil:
		f.Add(output.Keyword, "nil")
	case luabc.ConstantBool:
		if c.Bool {
			f.Add(output.Keyword, "true")
		} else {
			f.Add(output.Keyword, "false")
		}
	case luabc.ConstantNumber:
		f.Addf(output.Number, "%v", c.Number)
	case luabc.ConstantString:
		f.Addf(output.Constant, "%q", string(c.String))
	}
}

// rk renders operand n of a B/C field: a constant reference if its
// RK bit is set, otherwise a register.
func rk(f *output.Formatter, proto *luabc.Prototype, n int) {
	if luabc.IsRK(n) {
		constantToken(f, proto, luabc.RKIndex(n))
		return
	}
	regToken(f, n)
}

// upv renders upvalue index n against proto's upvalue-name table,
// falling back to a positional placeholder when no name was decoded
// (debug tables are optional and may have been stripped).
func upv(f *output.Formatter, proto *luabc.Prototype, n int) {
	if n >= 0 && n < len(proto.UpvalueNames) {
		f.Addf(output.Tag, "%s", proto.UpvalueNames[n].Name)
		return
	}
	f.Addf(output.Default, "upvalues[%d]", n)
}

func renderMove(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	regToken(f, in.B)
}

func renderLoadK(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	constantToken(f, proto, in.Bx)
}

func renderLoadBool(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	if in.B == 1 {
		f.Add(output.Keyword, "true")
	} else {
		f.Add(output.Keyword, "false")
	}
	if in.C != 0 {
		f.Add(output.Keyword, "PC++")
	}
}

func renderLoadNil(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regRangeToken(f, in.A, in.B)
	f.Add(output.Default, "=")
	f.Add(output.Keyword, "nil")
}

func renderGetUpval(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	upv(f, proto, in.B)
}

func renderGetGlobal(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	f.Add(output.Keyword, "_G[")
	constantToken(f, proto, in.Bx)
	f.Add(output.Keyword, "]")
}

func renderGetTable(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	regToken(f, in.B)
	f.Add(output.Default, "[")
	rk(f, proto, in.C)
	f.Add(output.Default, "]")
}

func renderSetGlobal(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	f.Add(output.Keyword, "_G[")
	constantToken(f, proto, in.Bx)
	f.Add(output.Keyword, "] =")
	regToken(f, in.A)
}

func renderSetUpval(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	upv(f, proto, in.B)
	f.Add(output.Default, "=")
	regToken(f, in.A)
}

func renderSetTable(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "[")
	rk(f, proto, in.B)
	f.Add(output.Default, "] =")
	rk(f, proto, in.C)
}

func renderNewTable(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Addf(output.Default, "= newtable(%d, %d)", in.B, in.C)
}

func renderSelf(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A+1)
	f.Add(output.Default, "=")
	regToken(f, in.B)
	f.Add(output.Default, ";")
	regToken(f, in.A)
	f.Add(output.Default, "=")
	regToken(f, in.B)
	f.Add(output.Default, "[")
	rk(f, proto, in.C)
	f.Add(output.Default, "]")
}

func arithRenderer(op string) renderFunc {
	return func(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
		regToken(f, in.A)
		f.Add(output.Default, "=")
		rk(f, proto, in.B)
		f.Add(output.Default, op)
		rk(f, proto, in.C)
	}
}

func renderUnm(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "= -")
	regToken(f, in.B)
}

func renderNot(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	f.Add(output.Keyword, "not")
	regToken(f, in.B)
}

func renderLen(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	f.Add(output.Keyword, "len(")
	regToken(f, in.B)
	f.Add(output.Default, ")")
}

func renderConcat(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	regToken(f, in.B)
	f.Add(output.Default, "..")
	f.Add(output.Default, "...")
	f.Add(output.Default, "..")
	regToken(f, in.C)
}

func renderJmp(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	f.Addf(output.Keyword, "PC += %d", in.SBx)
}

func compareRenderer(op string) renderFunc {
	return func(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
		f.Add(output.Keyword, "if (")
		rk(f, proto, in.B)
		f.Add(output.Default, op)
		rk(f, proto, in.C)
		f.Addf(output.Default, ") != %d then PC++", in.A)
	}
}

func renderTest(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	f.Add(output.Keyword, "if not (")
	regToken(f, in.A)
	f.Addf(output.Default, "<=> %d) then PC++", in.C)
}

func renderTestSet(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	f.Add(output.Keyword, "if not (")
	regToken(f, in.B)
	f.Addf(output.Default, "<=> %d) then", in.C)
	regToken(f, in.A)
	f.Add(output.Default, "=")
	regToken(f, in.B)
	f.Add(output.Keyword, "; PC++")
}

func renderCall(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	switch {
	case in.C >= 2:
		regRangeToken(f, in.A, in.A+in.C-2)
		f.Add(output.Default, "=")
	case in.C == 1:
		// no results.
	default: // C == 0
		regToken(f, in.A)
		f.Add(output.Default, "=")
	}
	regToken(f, in.A)
	f.Add(output.Default, "(")
	switch {
	case in.B >= 2:
		regRangeToken(f, in.A+1, in.A+in.B-1)
	case in.B == 1:
		// no args.
	default: // B == 0
		regToken(f, in.A+1)
	}
	f.Add(output.Default, ")")
}

func renderTailCall(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	f.Add(output.Keyword, "return")
	regToken(f, in.A)
	f.Add(output.Default, "(")
	switch {
	case in.B >= 2:
		regRangeToken(f, in.A+1, in.A+in.B-1)
	case in.B == 1:
		// no args.
	default:
		regToken(f, in.A+1)
	}
	f.Add(output.Default, ")")
}

func renderReturn(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	f.Add(output.Keyword, "return")
	switch {
	case in.B == 1:
		// nothing.
	case in.B == 0:
		regRangeToken(f, in.A, in.A+int(proto.MaxStackSize)-1)
	default:
		regRangeToken(f, in.A, in.A+in.B-2)
	}
}

func renderForLoop(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "+=")
	regToken(f, in.A+2)
	f.Add(output.Keyword, "; if")
	regToken(f, in.A)
	f.Add(output.Default, "<?=")
	regToken(f, in.A+1)
	f.Addf(output.Keyword, "then PC += %d;", in.SBx)
	regToken(f, in.A+3)
	f.Add(output.Default, "=")
	regToken(f, in.A)
}

func renderForPrep(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "-=")
	regToken(f, in.A+2)
	f.Addf(output.Keyword, "; PC += %d", in.SBx)
}

func renderTForLoop(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regRangeToken(f, in.A+3, in.A+2+in.C)
	f.Add(output.Default, "=")
	regToken(f, in.A)
	f.Add(output.Default, "(")
	regToken(f, in.A+1)
	f.Add(output.Default, ",")
	regToken(f, in.A+2)
	f.Add(output.Default, ");")
	f.Add(output.Keyword, "if")
	regToken(f, in.A+3)
	f.Add(output.Keyword, "~= nil then")
	regToken(f, in.A+2)
	f.Add(output.Default, "=")
	regToken(f, in.A+3)
	f.Add(output.Keyword, "else PC++")
}

// renderClosure renders CLOSURE: R(A) = function[<instr count>] @
// <tag-or-address> of the Bx-th nested prototype, or a placeholder if
// Bx is out of range.
func renderClosure(f *output.Formatter, reg *registry.Registry, proto *luabc.Prototype, in *luabc.Instruction) {
	regToken(f, in.A)
	f.Add(output.Default, "=")
	if in.Bx < 0 || in.Bx >= len(proto.Protos) {
		f.Addf(output.Error, "function[?] @ <out-of-range Bx=%d>", in.Bx)
		return
	}
	child := proto.Protos[in.Bx]
	f.Addf(output.Keyword, "function[%d] @", len(child.Instructions))
	if a, err := reg.FindByAddress(child.StartOffset); err == nil && a.HasTag() {
		f.Addf(output.Tag, "%s", a.Tag)
	} else {
		f.Addf(output.Address, "0x%x", child.StartOffset)
	}
}

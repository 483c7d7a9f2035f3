// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

// OpCode is the 6-bit operation selector occupying the low 6 bits of
// an instruction word.
type OpCode byte

// Lua 5.1 opcodes, in their on-disk numeric order (0..37). The order
// and the format each is decoded with come from lopcodes.h, not from
// spec wording alone: reproduced verbatim per the format table.
const (
	OpMove OpCode = iota
	OpLoadK
	OpLoadBool
	OpLoadNil
	OpGetUpval
	OpGetGlobal
	OpGetTable
	OpSetGlobal
	OpSetUpval
	OpSetTable
	OpNewTable
	OpSelf
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpUnm
	OpNot
	OpLen
	OpConcat
	OpJmp
	OpEq
	OpLt
	OpLe
	OpTest
	OpTestSet
	OpCall
	OpTailCall
	OpReturn
	OpForLoop
	OpForPrep
	OpTForLoop
	OpSetList
	OpClose
	OpClosure
	OpVararg

	opCodeCount
)

var opCodeNames = [opCodeCount]string{
	OpMove:      "MOVE",
	OpLoadK:     "LOADK",
	OpLoadBool:  "LOADBOOL",
	OpLoadNil:   "LOADNIL",
	OpGetUpval:  "GETUPVAL",
	OpGetGlobal: "GETGLOBAL",
	OpGetTable:  "GETTABLE",
	OpSetGlobal: "SETGLOBAL",
	OpSetUpval:  "SETUPVAL",
	OpSetTable:  "SETTABLE",
	OpNewTable:  "NEWTABLE",
	OpSelf:      "SELF",
	OpAdd:       "ADD",
	OpSub:       "SUB",
	OpMul:       "MUL",
	OpDiv:       "DIV",
	OpMod:       "MOD",
	OpPow:       "POW",
	OpUnm:       "UNM",
	OpNot:       "NOT",
	OpLen:       "LEN",
	OpConcat:    "CONCAT",
	OpJmp:       "JMP",
	OpEq:        "EQ",
	OpLt:        "LT",
	OpLe:        "LE",
	OpTest:      "TEST",
	OpTestSet:   "TESTSET",
	OpCall:      "CALL",
	OpTailCall:  "TAILCALL",
	OpReturn:    "RETURN",
	OpForLoop:   "FORLOOP",
	OpForPrep:   "FORPREP",
	OpTForLoop:  "TFORLOOP",
	OpSetList:   "SETLIST",
	OpClose:     "CLOSE",
	OpClosure:   "CLOSURE",
	OpVararg:    "VARARG",
}

// String returns op's mnemonic, e.g. "MOVE", or "OP(?)" for a value
// outside the valid 0..37 range.
func (op OpCode) String() string {
	if op < 0 || int(op) >= len(opCodeNames) {
		return "OP(?)"
	}
	return opCodeNames[op]
}

// Valid reports whether op is one of the 38 defined opcodes.
func (op OpCode) Valid() bool {
	return op < opCodeCount
}

// Format is an instruction's operand layout, one of the seven shapes
// the format table in §4.3 enumerates.
type Format int

const (
	FormatABC Format = iota
	FormatABx
	FormatAsBx
	FormatAB
	FormatAC
	FormatA
	FormatSBx
)

func (f Format) String() string {
	switch f {
	case FormatABC:
		return "ABC"
	case FormatABx:
		return "ABx"
	case FormatAsBx:
		return "AsBx"
	case FormatAB:
		return "AB"
	case FormatAC:
		return "AC"
	case FormatA:
		return "A"
	case FormatSBx:
		return "sBx"
	default:
		return "?"
	}
}

var opCodeFormats = [opCodeCount]Format{
	OpMove:      FormatABC,
	OpLoadK:     FormatABx,
	OpLoadBool:  FormatABC,
	OpLoadNil:   FormatAB,
	OpGetUpval:  FormatAB,
	OpGetGlobal: FormatABx,
	OpGetTable:  FormatABC,
	OpSetGlobal: FormatABx,
	OpSetUpval:  FormatAB,
	OpSetTable:  FormatABC,
	OpNewTable:  FormatABC,
	OpSelf:      FormatABC,
	OpAdd:       FormatABC,
	OpSub:       FormatABC,
	OpMul:       FormatABC,
	OpDiv:       FormatABC,
	OpMod:       FormatABC,
	OpPow:       FormatABC,
	OpUnm:       FormatAB,
	OpNot:       FormatAB,
	OpLen:       FormatAB,
	OpConcat:    FormatABC,
	OpJmp:       FormatSBx,
	OpEq:        FormatABC,
	OpLt:        FormatABC,
	OpLe:        FormatABC,
	OpTest:      FormatAC,
	OpTestSet:   FormatABC,
	OpCall:      FormatABC,
	OpTailCall:  FormatABC,
	OpReturn:    FormatAB,
	OpForLoop:   FormatAsBx,
	OpForPrep:   FormatAsBx,
	OpTForLoop:  FormatAC,
	OpSetList:   FormatABC,
	OpClose:     FormatA,
	OpClosure:   FormatABx,
	OpVararg:    FormatAB,
}

// FormatOf returns the operand format op is decoded with. op must be
// [OpCode.Valid].
func FormatOf(op OpCode) Format {
	return opCodeFormats[op]
}

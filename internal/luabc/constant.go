// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import "fmt"

// ConstantKind selects which variant of [Constant] is populated.
type ConstantKind int

const (
	ConstantNil ConstantKind = iota
	ConstantBool
	ConstantNumber
	ConstantString
)

func (k ConstantKind) String() string {
	switch k {
	case ConstantNil:
		return "nil"
	case ConstantBool:
		return "boolean"
	case ConstantNumber:
		return "number"
	case ConstantString:
		return "string"
	default:
		return "?"
	}
}

// on-disk constant type tags, as read from the single tag byte
// preceding each constant's payload.
const (
	constTagNil    = 0
	constTagBool   = 1
	constTagNumber = 3
	constTagString = 4
)

// Constant is a decoded Lua value usable in a prototype's constant
// table: a four-variant sum over {Nil, Bool, Number, String}, never a
// single untyped payload field.
type Constant struct {
	Address int
	Kind    ConstantKind
	Bool    bool
	Number  float64
	String  []byte
}

// ArtifactSummary implements [registry.Summarizer].
func (c *Constant) ArtifactSummary() string {
	switch c.Kind {
	case ConstantNil:
		return "nil"
	case ConstantBool:
		return fmt.Sprintf("%t", c.Bool)
	case ConstantNumber:
		return fmt.Sprintf("%v", c.Number)
	case ConstantString:
		return string(c.String)
	default:
		return "?"
	}
}

// decodeConstant reads one tagged constant: a single tag byte followed
// by a tag-dependent payload. Tag 2 is unused in Lua 5.1; encountering
// it, or any tag outside {0,1,3,4}, is [ErrBadConstantTag].
//
// When ctx.IntegralFlag is set, a Number constant's on-disk bytes are
// an integer of ctx.NumberSize width rather than an IEEE-754 float;
// this decoder widens it to float64 for [Constant.Number] either way,
// since the data model carries numbers uniformly as float64 and the
// distinction only matters for the original C runtime's arithmetic,
// which this tool never performs.
func decodeConstant(r *Reader, ctx *Context) (*Constant, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("constant: tag: %w", err)
	}
	switch tag {
	case constTagNil:
		return &Constant{Kind: ConstantNil}, nil
	case constTagBool:
		b, err := r.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("constant: bool payload: %w", err)
		}
		return &Constant{Kind: ConstantBool, Bool: b != 0}, nil
	case constTagNumber:
		var num float64
		if ctx.IntegralFlag {
			u, err := r.ReadUint(ctx.NumberSize)
			if err != nil {
				return nil, fmt.Errorf("constant: integer number payload: %w", err)
			}
			num = float64(u)
		} else {
			num, err = r.ReadFloat(ctx.NumberSize)
			if err != nil {
				return nil, fmt.Errorf("constant: float number payload: %w", err)
			}
		}
		return &Constant{Kind: ConstantNumber, Number: num}, nil
	case constTagString:
		s, err := readString(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("constant: string payload: %w", err)
		}
		return &Constant{Kind: ConstantString, String: s}, nil
	default:
		return nil, fmt.Errorf("constant: %w: %d", ErrBadConstantTag, tag)
	}
}

// readString reads a size_t-width length followed by that many raw
// bytes, with any trailing NUL retained verbatim as part of the
// payload (matching the on-disk representation exactly).
func readString(r *Reader, ctx *Context) ([]byte, error) {
	n, err := r.ReadUint(ctx.SizeTSize)
	if err != nil {
		return nil, fmt.Errorf("string length: %w", err)
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, fmt.Errorf("string bytes: %w", err)
	}
	return b, nil
}

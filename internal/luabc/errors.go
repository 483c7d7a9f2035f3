// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import "errors"

// Decode errors. All are fatal to parsing: a constructed Chunk is
// never published on a failed decode pass (see [Decode]).
var (
	ErrBadSignature       = errors.New("luabc: bad signature, not a Lua 5.1 binary chunk")
	ErrBadOpcode          = errors.New("luabc: opcode out of range 0..37")
	ErrBadConstantTag     = errors.New("luabc: bad constant tag")
	ErrBadInstructionSize = errors.New("luabc: instruction size must be 4")
	ErrBadWidth           = errors.New("luabc: unsupported integer or number width")
)

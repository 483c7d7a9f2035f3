// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

/*
Package luabc decodes Lua 5.1 binary chunks (the output of luac 5.1 or
lua_dump) into a fully typed in-memory model: the chunk header, a
recursive tree of function prototypes, their instructions, constants,
and debug tables.

# Provenance

This package follows the layout of the Lua 5.1 chunk format as
described in lundump.c/lopcodes.h from the reference implementation,
cross-checked against a Python prototype (matthewg-rev/lua-bytecode-tools)
that this tool's command surface is modeled on. Unlike later Lua
versions, 5.1 chunks use fixed-width integers throughout (no varint
encoding), which is what every decoder in this package assumes.

Decoding never executes, recompiles, or rewrites the chunk; see
[Decode] for the single entry point.
*/
package luabc

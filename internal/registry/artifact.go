// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package registry

// Artifact wraps one parsed entity with the identity and annotation
// state the rest of the system navigates by: the byte offset it began
// at, its kind, and an optional user-assigned tag.
//
// Value holds the concrete decoded type (e.g. *luabc.Instruction,
// *luabc.Prototype); callers that need the underlying data type-assert
// it themselves, since this package does not import luabc (registry
// is a leaf package, kept ignorant of any particular decoder).
type Artifact struct {
	Kind    Kind
	Address int
	Value   any
	Tag     string

	seq int
}

// HasTag reports whether a has been given a symbolic tag.
func (a *Artifact) HasTag() bool {
	return a.Tag != ""
}

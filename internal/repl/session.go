// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

// Package repl implements the command dispatch loop that drives the
// registry and renderer: an external collaborator over the core per
// spec §1, detailed as this tool's REPL and CLI surface.
package repl

import (
	"fmt"
	"io"

	"lua51dis.dev/luadis/internal/luabc"
	"lua51dis.dev/luadis/internal/output"
	"lua51dis.dev/luadis/internal/registry"
)

// Session holds everything one REPL run needs: the decoded chunk, its
// registry, the output formatter commands write through, and the
// currently selected artifact (if any).
type Session struct {
	FileName string
	Chunk    *luabc.Chunk
	Registry *registry.Registry
	Out      *output.Formatter
	// RawOut is the same underlying stream as Out, for commands (like
	// "export json") that write a machine format rather than styled
	// tokens.
	RawOut io.Writer

	Selected *registry.Artifact

	// OnTag is invoked after a successful "tag" command, letting a
	// caller (cmd/luadis) persist the assignment to the tag sidecar
	// without this package depending on it.
	OnTag func(a *registry.Artifact, tag string)
}

// NewSession returns a Session ready to accept commands against chunk
// and reg.
func NewSession(fileName string, chunk *luabc.Chunk, reg *registry.Registry, out *output.Formatter, rawOut io.Writer) *Session {
	return &Session{FileName: fileName, Chunk: chunk, Registry: reg, Out: out, RawOut: rawOut}
}

// Prompt returns the current prompt string: "@<file name>>> " (e.g.
// "@chunk.luac>> ") when nothing is selected,
// "@<kind>:<hex-address>>> " when selected
// without a tag, "@<kind>:<tag>>> " when tagged.
func (s *Session) Prompt() string {
	if s.Selected == nil {
		return fmt.Sprintf("@%s>> ", s.FileName)
	}
	if s.Selected.HasTag() {
		return fmt.Sprintf("@%s:%s>> ", s.Selected.Kind, s.Selected.Tag)
	}
	return fmt.Sprintf("@%s:0x%x>> ", s.Selected.Kind, s.Selected.Address)
}

// selectedPrototype returns the Prototype the currently selected
// artifact refers to, failing if nothing is selected or the selection
// isn't a Prototype.
func (s *Session) selectedPrototype() (*luabc.Prototype, error) {
	if s.Selected == nil {
		return nil, fmt.Errorf("no artifact selected")
	}
	if s.Selected.Kind != registry.KindPrototype {
		return nil, fmt.Errorf("selected artifact is a %s, not a function", s.Selected.Kind)
	}
	return s.Selected.Value.(*luabc.Prototype), nil
}

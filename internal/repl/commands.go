// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"

	"lua51dis.dev/luadis/internal/luabc"
	"lua51dis.dev/luadis/internal/output"
	"lua51dis.dev/luadis/internal/registry"
	"lua51dis.dev/luadis/internal/render"
)

// HelpText is printed by the "help" command.
const HelpText = `commands:
  help                     show this text
  exit                     quit
  clear                    clear the screen
  list functions           list every function prototype
  list instructions        list the selected function's instructions
  list constants           list the selected function's constants
  list locals              list the selected function's local variables
  list upvalues            list the selected function's upvalue names
  pseudo                   render pseudo-code for the selected function
  addr                     print the selected artifact's address
  select address <hex>     select the artifact at a given address
  select tag <name>        select the artifact with a given tag
  tag <name>               assign a tag to the selected artifact
  export json              write the full registry as JSON`

// Dispatch parses and executes one command line against s. Unknown
// commands are silently ignored; argument and lookup errors are
// written to s.Out in the ERROR style and the caller should continue
// the loop. clear reports isClear=true so a terminal-specific escape
// can be emitted by the caller (this package has no terminal
// dependency). exit reports isExit=true.
func (s *Session) Dispatch(line string) (isClear, isExit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(s.RawOut, HelpText)
	case "exit":
		return false, true
	case "clear":
		return true, false
	case "list":
		s.cmdList(args)
	case "pseudo":
		s.cmdPseudo()
	case "addr":
		s.cmdAddr()
	case "select":
		s.cmdSelect(args)
	case "tag":
		s.cmdTag(args)
	case "export":
		s.cmdExport(args)
	default:
		// Unrecognized commands are silently ignored per spec.
	}
	return false, false
}

func (s *Session) reportError(format string, args ...any) {
	s.Out.Addf(output.Error, format, args...)
	s.Out.EndLine()
}

func (s *Session) cmdList(args []string) {
	if len(args) == 0 {
		s.reportError("list: missing subcommand (functions, instructions, constants, locals, upvalues)")
		return
	}
	switch args[0] {
	case "functions":
		s.listFunctions()
	case "instructions":
		s.listInstructions()
	case "constants":
		s.listConstants()
	case "locals":
		s.listLocals()
	case "upvalues":
		s.listUpvalues()
	default:
		s.reportError("list: unknown target %q", args[0])
	}
}

func (s *Session) listFunctions() {
	for a := range s.Registry.ListByKind(registry.KindPrototype) {
		p := a.Value.(*luabc.Prototype)
		s.Out.Addf(output.Address, "0x%x", a.Address)
		s.Out.Addf(output.Keyword, "function[%d]", len(p.Instructions))
		s.Out.Add(output.Default, "@")
		if a.HasTag() {
			s.Out.Addf(output.Tag, "%s", a.Tag)
		} else {
			s.Out.Addf(output.Address, "0x%x", a.Address)
		}
		s.Out.EndLine()
	}
}

func (s *Session) listInstructions() {
	proto, err := s.selectedPrototype()
	if err != nil {
		s.reportError("list instructions: %v", err)
		return
	}
	for _, in := range proto.Instructions {
		s.Out.Addf(output.Address, "0x%x", in.Address)
		s.Out.Addf(output.Default, "[%d]", in.Op)
		s.Out.Addf(output.Instruction, "%s", in.Op)
		s.writeOperands(in)
		s.Out.EndLine()
	}
}

func (s *Session) writeOperands(in *luabc.Instruction) {
	switch in.Format {
	case luabc.FormatABC:
		s.Out.Addf(output.Register, "A=%d B=%d C=%d", in.A, in.B, in.C)
	case luabc.FormatABx:
		s.Out.Addf(output.Register, "A=%d Bx=%d", in.A, in.Bx)
	case luabc.FormatAsBx:
		s.Out.Addf(output.Register, "A=%d sBx=%d", in.A, in.SBx)
	case luabc.FormatAB:
		s.Out.Addf(output.Register, "A=%d B=%d", in.A, in.B)
	case luabc.FormatAC:
		s.Out.Addf(output.Register, "A=%d C=%d", in.A, in.C)
	case luabc.FormatA:
		s.Out.Addf(output.Register, "A=%d", in.A)
	case luabc.FormatSBx:
		s.Out.Addf(output.Register, "sBx=%d", in.SBx)
	}
}

func (s *Session) listConstants() {
	proto, err := s.selectedPrototype()
	if err != nil {
		s.reportError("list constants: %v", err)
		return
	}
	for _, c := range proto.Constants {
		s.Out.Addf(output.Address, "0x%x", c.Address)
		s.Out.Addf(output.ConstantType, "[%s]", c.Kind)
		s.Out.Addf(output.Constant, "%s", c.ArtifactSummary())
		s.Out.EndLine()
	}
}

func (s *Session) listLocals() {
	proto, err := s.selectedPrototype()
	if err != nil {
		s.reportError("list locals: %v", err)
		return
	}
	for _, l := range proto.Locals {
		s.Out.Addf(output.Address, "0x%x", l.Address)
		s.Out.Addf(output.Constant, "%s", l.Name)
		s.Out.Addf(output.Default, "[%d,%d)", l.StartPC, l.EndPC)
		s.Out.EndLine()
	}
}

func (s *Session) listUpvalues() {
	proto, err := s.selectedPrototype()
	if err != nil {
		s.reportError("list upvalues: %v", err)
		return
	}
	for _, u := range proto.UpvalueNames {
		s.Out.Addf(output.Address, "0x%x", u.Address)
		s.Out.Addf(output.Default, "[%d]", u.Index)
		s.Out.Addf(output.Tag, "%s", u.Name)
		s.Out.EndLine()
	}
}

func (s *Session) cmdPseudo() {
	proto, err := s.selectedPrototype()
	if err != nil {
		s.reportError("pseudo: %v", err)
		return
	}
	for _, in := range proto.Instructions {
		s.Out.Addf(output.Address, "0x%x", in.Address)
		render.Line(s.Out, s.Registry, proto, in)
		s.Out.EndLine()
	}
}

func (s *Session) cmdAddr() {
	if s.Selected == nil {
		s.reportError("addr: no artifact selected")
		return
	}
	s.Out.Addf(output.Address, "0x%x", s.Selected.Address)
	s.Out.EndLine()
}

func (s *Session) cmdSelect(args []string) {
	if len(args) < 2 {
		s.reportError("select: usage: select address <hex> | select tag <name>")
		return
	}
	switch args[0] {
	case "address":
		addr, err := strconv.ParseInt(strings.TrimPrefix(args[1], "0x"), 16, 64)
		if err != nil {
			s.reportError("select address: bad hex %q", args[1])
			return
		}
		a, err := s.Registry.FindByAddress(int(addr))
		if err != nil {
			s.reportError("select address: %v", err)
			return
		}
		s.Selected = a
	case "tag":
		a, err := s.Registry.FindByTag(args[1])
		if err != nil {
			s.reportError("select tag: %v", err)
			return
		}
		s.Selected = a
	default:
		s.reportError("select: unknown target %q", args[0])
	}
}

func (s *Session) cmdTag(args []string) {
	if len(args) == 0 {
		s.reportError("tag: missing name")
		return
	}
	if s.Selected == nil {
		s.reportError("tag: no artifact selected")
		return
	}
	if err := s.Registry.SetTag(s.Selected, args[0]); err != nil {
		s.reportError("tag: %v", err)
		return
	}
	if s.OnTag != nil {
		s.OnTag(s.Selected, args[0])
	}
}

func (s *Session) cmdExport(args []string) {
	if len(args) == 0 || args[0] != "json" {
		s.reportError("export: usage: export json")
		return
	}
	enc := jsontext.NewEncoder(s.RawOut)
	if err := s.Registry.MarshalJSONTo(enc); err != nil {
		s.reportError("export json: %v", err)
		return
	}
	fmt.Fprintln(s.RawOut)
}

// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package repl

import (
	"bufio"
	"fmt"
	"io"
)

// Run reads commands from in, one per line, dispatching each to s and
// printing the prompt before every read, until "exit" or end of
// input. clearScreen is invoked for the "clear" command; it is
// supplied by the caller since this package has no terminal
// dependency of its own (see cmd/luadis, which wires it to an ANSI
// clear sequence).
func (s *Session) Run(in io.Reader, promptOut io.Writer, clearScreen func()) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(promptOut, s.Prompt())
		if !scanner.Scan() {
			return
		}
		clear, exit := s.Dispatch(scanner.Text())
		if clear && clearScreen != nil {
			clearScreen()
		}
		if exit {
			return
		}
	}
}

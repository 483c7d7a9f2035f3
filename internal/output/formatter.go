// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"
)

// token is one accumulated (text, style) pair awaiting an end-of-line
// flush.
type token struct {
	text  string
	style Style
}

// Formatter accumulates styled tokens for the current logical line
// and flushes them to w on [Formatter.EndLine]. Unlike the tool this
// was modeled on, which buffers an entire session's output before
// writing it out, Formatter flushes per line: an interactive REPL
// needs to show each command's output as it completes, not only at
// process exit.
type Formatter struct {
	w      io.Writer
	color  bool
	format string
	tokens []token
}

// New returns a Formatter writing to w. Color output is disabled by
// default; see [Formatter.SetColor].
func New(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// SetColor enables or disables ANSI styling of subsequent output.
func (f *Formatter) SetColor(enabled bool) {
	f.color = enabled
}

// LoadFormat installs a printf-style per-line template (e.g. "%-10s
// %-15s %s"); subsequent EndLine calls format the accumulated tokens'
// text through it instead of space-joining them. The number of verbs
// in template should match the number of tokens a caller emits per
// line; a mismatch is reported as an [Error]-styled line by
// [Formatter.EndLine] rather than panicking.
func (f *Formatter) LoadFormat(template string) {
	f.format = template
}

// ClearFormat reverts to space-joined, un-templated line output.
func (f *Formatter) ClearFormat() {
	f.format = ""
}

// Add appends one styled token to the current line.
func (f *Formatter) Add(style Style, text string) {
	f.tokens = append(f.tokens, token{text: text, style: style})
}

// Addf is [Formatter.Add] with fmt.Sprintf-style formatting of text.
func (f *Formatter) Addf(style Style, format string, args ...any) {
	f.Add(style, fmt.Sprintf(format, args...))
}

// EndLine flushes the accumulated tokens as one line to the
// underlying writer and resets the accumulator for the next line.
func (f *Formatter) EndLine() {
	defer func() { f.tokens = f.tokens[:0] }()

	if f.format == "" {
		parts := make([]string, len(f.tokens))
		for i, t := range f.tokens {
			parts[i] = applyStyle(t.style, t.text, f.color)
		}
		fmt.Fprintln(f.w, strings.Join(parts, " "))
		return
	}

	args := make([]any, len(f.tokens))
	for i, t := range f.tokens {
		args[i] = t.text
	}
	line := fmt.Sprintf(f.format, args...)
	if strings.Contains(line, "%!") {
		fmt.Fprintln(f.w, applyStyle(Error, "malformed table row: "+line, f.color))
		return
	}
	fmt.Fprintln(f.w, line)
}

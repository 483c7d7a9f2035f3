// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package registry

import (
	"github.com/go-json-experiment/json/jsontext"
)

// Summarizer is implemented by artifact value types that can describe
// themselves in one line for JSON export. Types that don't implement
// it (such as the *byte values of individual header-field artifacts)
// fall back to an empty summary.
type Summarizer interface {
	ArtifactSummary() string
}

// MarshalJSONTo writes every registered artifact as a single JSON
// array of {kind, address, tag, summary} objects, in registration
// order, directly to enc. It is the backing implementation of the
// REPL's "export json" command.
func (r *Registry) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}
	for a := range r.All() {
		if err := writeArtifact(enc, a); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndArray)
}

func writeArtifact(enc *jsontext.Encoder, a *Artifact) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}

	if err := enc.WriteToken(jsontext.String("kind")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(a.Kind.String())); err != nil {
		return err
	}

	if err := enc.WriteToken(jsontext.String("address")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.Int(int64(a.Address))); err != nil {
		return err
	}

	if err := enc.WriteToken(jsontext.String("tag")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(a.Tag)); err != nil {
		return err
	}

	summary := ""
	if s, ok := a.Value.(Summarizer); ok {
		summary = s.ArtifactSummary()
	}
	if err := enc.WriteToken(jsontext.String("summary")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(summary)); err != nil {
		return err
	}

	return enc.WriteToken(jsontext.EndObject)
}

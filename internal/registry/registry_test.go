// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-json-experiment/json/jsontext"
)

func TestRegisterAndFindByAddress(t *testing.T) {
	r := New()
	r.Register(KindInstruction, 0x10, "first")
	r.Register(KindHeaderField, 0x10, "second")

	got, err := r.FindByAddress(0x10)
	if err != nil {
		t.Fatalf("FindByAddress: %v", err)
	}
	if got.Kind != KindInstruction {
		t.Errorf("FindByAddress(0x10).Kind = %v, want %v (Instruction outranks HeaderField on tie)", got.Kind, KindInstruction)
	}

	if _, err := r.FindByAddress(0xFF); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByAddress(0xFF) error = %v, want ErrNotFound", err)
	}
}

func TestPrototypeOutranksInstructionOnTie(t *testing.T) {
	r := New()
	r.Register(KindInstruction, 0x20, "instr")
	proto := r.Register(KindPrototype, 0x20, "proto")

	got, err := r.FindByAddress(0x20)
	if err != nil {
		t.Fatalf("FindByAddress: %v", err)
	}
	if got != proto {
		t.Errorf("FindByAddress(0x20) = %v, want the Prototype artifact", got)
	}
}

func TestSetTagAndFindByTag(t *testing.T) {
	r := New()
	a := r.Register(KindPrototype, 0x0, "main")
	if err := r.SetTag(a, "entry"); err != nil {
		t.Fatalf("SetTag: %v", err)
	}

	got, err := r.FindByTag("entry")
	if err != nil {
		t.Fatalf("FindByTag: %v", err)
	}
	if got != a {
		t.Errorf("FindByTag(%q) = %v, want %v", "entry", got, a)
	}
}

func TestSetTagRejectsCollision(t *testing.T) {
	r := New()
	a := r.Register(KindPrototype, 0x0, "main")
	b := r.Register(KindPrototype, 0x40, "helper")

	if err := r.SetTag(a, "shared"); err != nil {
		t.Fatalf("SetTag(a): %v", err)
	}
	if err := r.SetTag(b, "shared"); !errors.Is(err, ErrTagTaken) {
		t.Errorf("SetTag(b, taken tag) error = %v, want ErrTagTaken", err)
	}
}

func TestSetTagReplacesOwnPreviousTag(t *testing.T) {
	r := New()
	a := r.Register(KindPrototype, 0x0, "main")
	if err := r.SetTag(a, "one"); err != nil {
		t.Fatalf("SetTag(one): %v", err)
	}
	if err := r.SetTag(a, "two"); err != nil {
		t.Fatalf("SetTag(two): %v", err)
	}
	if _, err := r.FindByTag("one"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByTag(%q) error = %v, want ErrNotFound after re-tag", "one", err)
	}
	got, err := r.FindByTag("two")
	if err != nil || got != a {
		t.Errorf("FindByTag(%q) = %v, %v, want %v, nil", "two", got, err, a)
	}
}

func TestListByKindPreservesOrder(t *testing.T) {
	r := New()
	r.Register(KindInstruction, 0x0, "a")
	r.Register(KindPrototype, 0x4, "p")
	r.Register(KindInstruction, 0x8, "b")

	var got []string
	for a := range r.ListByKind(KindInstruction) {
		got = append(got, a.Value.(string))
	}
	want := []string{"a", "b"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ListByKind(Instruction) = %v, want %v", got, want)
	}
}

type fakeSummary struct{ s string }

func (f fakeSummary) ArtifactSummary() string { return f.s }

func TestMarshalJSONToRoundTripsKindAddressTag(t *testing.T) {
	r := New()
	a := r.Register(KindPrototype, 0x10, fakeSummary{"function[3]"})
	if err := r.SetTag(a, "main"); err != nil {
		t.Fatalf("SetTag: %v", err)
	}

	var buf strings.Builder
	enc := jsontext.NewEncoder(&buf)
	if err := r.MarshalJSONTo(enc); err != nil {
		t.Fatalf("MarshalJSONTo: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"kind":"function"`, `"address":16`, `"tag":"main"`, `"summary":"function[3]"`} {
		if !strings.Contains(out, want) {
			t.Errorf("MarshalJSONTo output %q missing %q", out, want)
		}
	}
}

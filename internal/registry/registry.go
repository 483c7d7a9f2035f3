// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

// Package registry implements the address-indexed catalog of every
// artifact a decode pass produces: the navigation substrate the REPL
// and renderer query by address or by user-assigned tag.
package registry

import (
	"errors"
	"fmt"
	"iter"
)

// ErrTagTaken is returned by [Registry.SetTag] when the requested tag
// is already held by a different artifact. Tags are unique across all
// kinds, not just within one kind.
var ErrTagTaken = errors.New("registry: tag already assigned to another artifact")

// ErrNotFound is returned by the registry's lookup methods when no
// artifact matches.
var ErrNotFound = errors.New("registry: not found")

// Registry is a process-wide (in practice, one-session) catalog of
// every [Artifact] produced by a decode pass. It is not safe for
// concurrent use; the system it backs is single-threaded by design,
// and all mutation happens between user commands.
type Registry struct {
	artifacts []*Artifact
	byTag     map[string]*Artifact
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byTag: make(map[string]*Artifact)}
}

// Register appends a new artifact under the given kind, address, and
// value, and returns it. Address uniqueness within a kind is assumed
// by callers (the decoder never registers the same offset twice for
// the same kind); it is not independently enforced here.
func (r *Registry) Register(kind Kind, address int, value any) *Artifact {
	a := &Artifact{Kind: kind, Address: address, Value: value, seq: len(r.artifacts)}
	r.artifacts = append(r.artifacts, a)
	return a
}

// FindByAddress returns the first artifact whose address matches. When
// more than one artifact (necessarily of different kinds) shares an
// address — e.g. a Prototype's start offset coincides with the first
// byte of its sourceName field — the coarsest-grained kind wins
// (Prototype > Instruction > HeaderField > Constant > LocalVar >
// UpvalueName), not simple insertion order.
func (r *Registry) FindByAddress(address int) (*Artifact, error) {
	var best *Artifact
	for _, a := range r.artifacts {
		if a.Address != address {
			continue
		}
		if best == nil || a.Kind.rank() < best.Kind.rank() {
			best = a
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: address 0x%x", ErrNotFound, address)
	}
	return best, nil
}

// FindByTag returns the artifact holding the given tag.
func (r *Registry) FindByTag(tag string) (*Artifact, error) {
	a, ok := r.byTag[tag]
	if !ok {
		return nil, fmt.Errorf("%w: tag %q", ErrNotFound, tag)
	}
	return a, nil
}

// SetTag assigns tag to a, replacing any tag a previously held. It
// fails with [ErrTagTaken] if another artifact already holds tag.
func (r *Registry) SetTag(a *Artifact, tag string) error {
	if existing, ok := r.byTag[tag]; ok && existing != a {
		return fmt.Errorf("%w: %q", ErrTagTaken, tag)
	}
	if a.Tag != "" {
		delete(r.byTag, a.Tag)
	}
	a.Tag = tag
	r.byTag[tag] = a
	return nil
}

// ListByKind iterates every registered artifact of kind, in the order
// they were registered.
func (r *Registry) ListByKind(kind Kind) iter.Seq[*Artifact] {
	return func(yield func(*Artifact) bool) {
		for _, a := range r.artifacts {
			if a.Kind != kind {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// All iterates every registered artifact in creation order.
func (r *Registry) All() iter.Seq[*Artifact] {
	return func(yield func(*Artifact) bool) {
		for _, a := range r.artifacts {
			if !yield(a) {
				return
			}
		}
	}
}

// Len returns the total number of registered artifacts.
func (r *Registry) Len() int {
	return len(r.artifacts)
}

// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package typosquat implements the typosquatting detection engine: the
// name-mutation algorithms, the bitflip index, the allowlist, the
// description-similarity filter, and the driver that composes them over a
// corpus of candidate and popular package names.
package typosquat

import "github.com/google/squatwatch/pkg/corpus"

// EngineContext bundles the read-only state every stage of the pipeline
// needs — the loaded corpus, the precomputed bitflip index, and the
// allowlist — in place of the process-wide globals the original used.
// It is built once during loading and never mutated afterward.
type EngineContext struct {
	Corpus       *corpus.Corpus
	BitflipIndex BitflipIndex
	Allowlist    Allowlist
}

// NewEngineContext builds an EngineContext over an already-loaded corpus,
// constructing its bitflip index.
func NewEngineContext(c *corpus.Corpus, allowlist Allowlist) *EngineContext {
	return &EngineContext{
		Corpus:       c,
		BitflipIndex: BuildBitflipIndex(c),
		Allowlist:    allowlist,
	}
}

// admissible reports whether target is a legitimate mutation target for
// candidate: target must be popular, distinct from candidate, and the two
// packages must share no owner (spec.md §4.3).
func (e *EngineContext) admissible(candidate, target string) bool {
	if target == candidate {
		return false
	}
	if !e.Corpus.IsPopular(target) {
		return false
	}
	c := e.Corpus.Get(candidate)
	t := e.Corpus.Get(target)
	if c == nil || t == nil {
		// A package absent from the corpus has no recorded owners to share.
		return true
	}
	return !c.SharesOwner(t)
}

// mostPopularOf returns the first entry of the popular list that appears in
// targets, falling back to the first target in discovery order.
func (e *EngineContext) mostPopularOf(targets []string) string {
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}
	for _, p := range e.Corpus.PopularList {
		if _, ok := set[p]; ok {
			return p
		}
	}
	return targets[0]
}

// collapse implements the return_all contract shared by every mutator
// family that offers it (spec.md §4.3): the full list unless returnAll is
// false and at least one target was found, in which case it collapses to
// the single most-popular target.
func (e *EngineContext) collapse(targets []string, returnAll bool) []string {
	if returnAll || len(targets) == 0 {
		return targets
	}
	return []string{e.mostPopularOf(targets)}
}

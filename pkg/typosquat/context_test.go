// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/squatwatch/pkg/corpus"
)

func TestCollapse_ReturnAllPassesThrough(t *testing.T) {
	e := newTestEngine([]string{"a", "b"}, nil)
	got := e.collapse([]string{"a", "b"}, true)
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("collapse(returnAll=true) mismatch (-want +got):\n%s", diff)
	}
}

func TestCollapse_EmptyInputPassesThroughRegardless(t *testing.T) {
	e := newTestEngine(nil, nil)
	got := e.collapse(nil, false)
	if len(got) != 0 {
		t.Errorf("collapse(nil, false) = %v, want empty", got)
	}
}

func TestCollapse_CollapsesToMostPopular(t *testing.T) {
	// PopularList order is b, a; mostPopularOf should prefer b.
	e := newTestEngine([]string{"b", "a"}, nil)
	got := e.collapse([]string{"a", "b"}, false)
	if diff := cmp.Diff([]string{"b"}, got); diff != "" {
		t.Errorf("collapse(returnAll=false) mismatch (-want +got):\n%s", diff)
	}
}

func TestMostPopularOf_FallsBackToFirstTargetWhenNoneInPopularList(t *testing.T) {
	c := corpus.NewCorpus()
	e := &EngineContext{Corpus: c}
	got := e.mostPopularOf([]string{"x", "y"})
	if got != "x" {
		t.Errorf("mostPopularOf fallback = %q, want %q", got, "x")
	}
}

func TestNewEngineContext_BuildsBitflipIndex(t *testing.T) {
	c := corpus.NewCorpus()
	c.AddPopular(&corpus.Package{Name: "serde"})
	e := NewEngineContext(c, nil)
	if len(e.BitflipIndex) == 0 {
		t.Error("NewEngineContext did not build a non-empty bitflip index for a non-empty corpus")
	}
}

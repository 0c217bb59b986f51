// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type fakeStore struct {
	top        []Row
	candidates []Row
	versions   map[string][]string
}

func (f *fakeStore) TopPackages(ctx context.Context, n int) ([]Row, error) {
	return f.top, nil
}

func (f *fakeStore) CandidatePackages(ctx context.Context, n, days int) ([]Row, error) {
	return f.candidates, nil
}

func (f *fakeStore) Versions(ctx context.Context, name string) ([]string, error) {
	return f.versions[name], nil
}

var _ Store = &fakeStore{}

func TestLoader_LoadPopular_AttachesOwnersInOrder(t *testing.T) {
	store := &fakeStore{
		top: []Row{
			{Name: "react", Login: "alice", Description: "a view library", Downloads: 100},
			{Name: "react", Login: "bob", Description: "a view library", Downloads: 100},
			{Name: "react", Login: "", Description: "a view library", Downloads: 100},
		},
	}
	l := NewLoader(store)
	c, err := l.LoadPopular(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadPopular() error = %v", err)
	}
	p := c.Get("react")
	if diff := cmp.Diff([]string{"alice", "bob"}, p.Owners); diff != "" {
		t.Errorf("owner order mismatch:\n%v", diff)
	}
	if !c.IsPopular("react") {
		t.Errorf("IsPopular(react) = false, want true")
	}
}

func TestLoader_LoadPopular_DedupesOwners(t *testing.T) {
	store := &fakeStore{
		top: []Row{
			{Name: "serde", Login: "alice"},
			{Name: "serde", Login: "alice"},
		},
	}
	l := NewLoader(store)
	c, err := l.LoadPopular(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadPopular() error = %v", err)
	}
	if diff := cmp.Diff([]string{"alice"}, c.Get("serde").Owners); diff != "" {
		t.Errorf("owner dedup mismatch:\n%v", diff)
	}
}

func TestLoader_LoadPopular_CardinalityMismatchIsConfigError(t *testing.T) {
	store := &fakeStore{
		top: []Row{
			{Name: "react", Login: "alice"},
		},
	}
	l := NewLoader(store)
	_, err := l.LoadPopular(context.Background(), 2)
	if err == nil {
		t.Fatal("LoadPopular() error = nil, want ConfigError")
	}
	var configErr *ConfigError
	if !isConfigError(err, &configErr) {
		t.Errorf("LoadPopular() error = %v (%T), want *ConfigError", err, err)
	}
}

func isConfigError(err error, target **ConfigError) bool {
	ce, ok := err.(*ConfigError)
	if ok {
		*target = ce
	}
	return ok
}

func TestLoader_LoadCandidates_ExcludesPopular(t *testing.T) {
	store := &fakeStore{
		top: []Row{
			{Name: "react", Login: "alice"},
		},
		candidates: []Row{
			{Name: "react", Login: "alice"},
			{Name: "reeact", Login: "bob"},
		},
	}
	l := NewLoader(store)
	c, err := l.LoadPopular(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadPopular() error = %v", err)
	}
	if err := l.LoadCandidates(context.Background(), c, 1, 3); err != nil {
		t.Fatalf("LoadCandidates() error = %v", err)
	}
	if c.IsPopular("reeact") {
		t.Errorf("IsPopular(reeact) = true, want false")
	}
	if c.Get("reeact") == nil {
		t.Fatalf("candidate reeact not registered")
	}
	if diff := cmp.Diff([]string{"reeact"}, CandidateNames(c), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("CandidateNames() mismatch:\n%v", diff)
	}
}

func TestCandidateNames_SortedAscending(t *testing.T) {
	c := NewCorpus()
	c.AddPopular(&Package{Name: "react"})
	c.AddCandidate(&Package{Name: "zeact"})
	c.AddCandidate(&Package{Name: "aeact"})
	c.AddCandidate(&Package{Name: "meact"})
	got := CandidateNames(c)
	want := []string{"aeact", "meact", "zeact"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CandidateNames() mismatch:\n%v", diff)
	}
}

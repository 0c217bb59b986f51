// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/squatwatch/pkg/corpus"
)

func TestAllowlist_MatchesExactOwnerAndAllURLs(t *testing.T) {
	p := &corpus.Package{
		Owners:        []string{"blallo"},
		Homepage:      "https://xkcd.com/386",
		Documentation: "https://crates.io/policies",
		Repository:    "https://github.com/blallo/xkcd-386",
	}
	if !DefaultAllowlist.Matches(p) {
		t.Error("DefaultAllowlist.Matches(blallo package) = false, want true")
	}
}

func TestAllowlist_MatchesWhenOnlyRepositorySpecified(t *testing.T) {
	// The skerkour entry only names a repository; homepage/documentation on
	// the candidate should not need to be empty to match.
	p := &corpus.Package{
		Owners:        []string{"skerkour"},
		Repository:    "https://github.com/skerkour/black-hat-rust",
		Homepage:      "https://kerkour.com",
		Documentation: "https://docs.rs/anything",
	}
	if !DefaultAllowlist.Matches(p) {
		t.Error("DefaultAllowlist.Matches(skerkour package) = false, want true")
	}
}

func TestAllowlist_OwnerSetMismatchIsNotAllowlisted(t *testing.T) {
	p := &corpus.Package{
		Owners:     []string{"someone-else"},
		Repository: "https://github.com/skerkour/black-hat-rust",
	}
	if DefaultAllowlist.Matches(p) {
		t.Error("DefaultAllowlist.Matches with mismatched owner = true, want false")
	}
}

func TestAllowlist_RepositoryMismatchIsNotAllowlisted(t *testing.T) {
	p := &corpus.Package{
		Owners:     []string{"skerkour"},
		Repository: "https://github.com/someone/else",
	}
	if DefaultAllowlist.Matches(p) {
		t.Error("DefaultAllowlist.Matches with mismatched repository = true, want false")
	}
}

func TestAllowlist_OwnerSetIsOrderIndependent(t *testing.T) {
	a := Allowlist{{Owners: []string{"x", "y"}}}
	p := &corpus.Package{Owners: []string{"y", "x"}}
	if !a.Matches(p) {
		t.Error("Matches with reordered owner set = false, want true")
	}
}

func TestLoadAllowlist_EmptyPathReturnsDefault(t *testing.T) {
	got, err := LoadAllowlist("")
	if err != nil {
		t.Fatalf("LoadAllowlist(\"\") error: %v", err)
	}
	if diff := cmp.Diff(DefaultAllowlist, got); diff != "" {
		t.Errorf("LoadAllowlist(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAllowlist_ParsesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allowlist.yaml")
	yamlContent := "- owners:\n    - someuser\n  repository: https://github.com/someuser/repo\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("writing test allowlist: %v", err)
	}
	got, err := LoadAllowlist(path)
	if err != nil {
		t.Fatalf("LoadAllowlist(%s) error: %v", path, err)
	}
	want := Allowlist{{Owners: []string{"someuser"}, Repository: "https://github.com/someuser/repo"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadAllowlist(%s) mismatch (-want +got):\n%s", path, diff)
	}
}

func TestLoadAllowlist_MissingFileErrors(t *testing.T) {
	if _, err := LoadAllowlist(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadAllowlist(missing file) error = nil, want non-nil")
	}
}

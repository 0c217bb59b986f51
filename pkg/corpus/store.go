// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package corpus

import "context"

// Row is one joined (package, owner) pair as returned by the relational
// store's package queries. A package with multiple owners contributes one
// Row per owner; Login is empty when the join found no matching owner
// record, in which case the row still contributes the package.
type Row struct {
	Name            string
	Login           string
	Homepage        string
	Repository      string
	Documentation   string
	Description     string
	Downloads       int64
	RecentDownloads int64
}

// Store is the read-only relational store the corpus loader consumes: the
// three fixed query shapes of spec §6 (top-N popular, below-rank-N
// candidates, and per-package version lists).
type Store interface {
	// TopPackages returns the top n packages by recent downloads descending,
	// one Row per (package, owner) pair.
	TopPackages(ctx context.Context, n int) ([]Row, error)
	// CandidatePackages returns packages ranked below n that have at least
	// one non-yanked version updated within the last days days.
	CandidatePackages(ctx context.Context, n, days int) ([]Row, error)
	// Versions returns the non-yanked version strings for name.
	Versions(ctx context.Context, name string) ([]string, error)
}

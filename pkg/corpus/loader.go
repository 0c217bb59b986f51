// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Loader populates a Corpus from a Store, in the two idempotent passes
// spec.md §4.1 describes: the popular set, then the candidate set.
type Loader struct {
	Store Store
}

// NewLoader constructs a Loader over store.
func NewLoader(store Store) *Loader {
	return &Loader{Store: store}
}

// groupRows folds Rows sharing a Name into one Package per name, unioning
// owners across the (possibly duplicated, across owner kinds and recency
// joins) rows while preserving first-appearance order, and returns the
// names in the order their first row was seen.
func groupRows(rows []Row) ([]string, map[string]*Package) {
	order := make([]string, 0, len(rows))
	byName := make(map[string]*Package, len(rows))
	for _, r := range rows {
		p, ok := byName[r.Name]
		if !ok {
			p = &Package{
				Name:          r.Name,
				Description:   r.Description,
				Homepage:      r.Homepage,
				Repository:    r.Repository,
				Documentation: r.Documentation,
				Downloads:     r.Downloads,
			}
			byName[r.Name] = p
			order = append(order, r.Name)
		}
		mergeOwner(p, strings.TrimSpace(r.Login))
	}
	return order, byName
}

// LoadPopular selects the top n packages by recent downloads and attaches
// owners. It fails with a *ConfigError if deduplication collapses the
// result below n distinct names, per spec.md §4.1.
func (l *Loader) LoadPopular(ctx context.Context, n int) (*Corpus, error) {
	rows, err := l.Store.TopPackages(ctx, n)
	if err != nil {
		return nil, errors.Wrap(err, "loading popular packages")
	}
	order, byName := groupRows(rows)
	if len(order) != n {
		return nil, NewConfigError("popular package set size mismatch (%d != %d)", len(order), n)
	}
	c := NewCorpus()
	for _, name := range order {
		c.AddPopular(byName[name])
	}
	return c, nil
}

// LoadCandidates selects packages ranked below n with a non-yanked version
// updated within the last days days, attaches owners, and registers them
// into c. A name already present in c's popular set is never added as a
// candidate (popularity takes precedence, spec.md §4.1).
func (l *Loader) LoadCandidates(ctx context.Context, c *Corpus, n, days int) error {
	rows, err := l.Store.CandidatePackages(ctx, n, days)
	if err != nil {
		return errors.Wrap(err, "loading candidate packages")
	}
	order, byName := groupRows(rows)
	for _, name := range order {
		if c.IsPopular(name) {
			continue
		}
		c.AddCandidate(byName[name])
	}
	return nil
}

// Load runs LoadPopular then LoadCandidates against a single store snapshot
// and returns the assembled Corpus.
func (l *Loader) Load(ctx context.Context, topN, days int) (*Corpus, error) {
	c, err := l.LoadPopular(ctx, topN)
	if err != nil {
		return nil, err
	}
	if err := l.LoadCandidates(ctx, c, topN, days); err != nil {
		return nil, err
	}
	return c, nil
}

// CandidateNames returns c's candidate-set names (every package not in the
// popular set) in ascending lexicographic order, the order spec.md §4.6
// requires the driver to process them in.
func CandidateNames(c *Corpus) []string {
	names := make([]string, 0, len(c.Packages)-len(c.PopularList))
	for name := range c.Packages {
		if !c.IsPopular(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

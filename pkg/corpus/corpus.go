// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package corpus loads registry metadata into the in-memory structures the
// typosquat detection engine operates over: the popular set and the
// candidate set, each package carrying its owners, description, and URLs.
package corpus

// Package is one registry entry, with owners in first-appearance order.
type Package struct {
	Name            string
	Owners          []string
	Description     string
	Homepage        string
	Repository      string
	Documentation   string
	Downloads       int64
	RecentDownloads int64
}

// HasOwner reports whether id appears anywhere in p's owner list.
func (p *Package) HasOwner(id string) bool {
	for _, o := range p.Owners {
		if o == id {
			return true
		}
	}
	return false
}

// SharesOwner reports whether p and other have at least one owner in common.
func (p *Package) SharesOwner(other *Package) bool {
	for _, o := range p.Owners {
		if other.HasOwner(o) {
			return true
		}
	}
	return false
}

// Corpus is the full set of packages loaded for a run, partitioned into the
// popular set and the candidate set. A name appears in at most one set.
type Corpus struct {
	Packages    map[string]*Package
	PopularList []string
	popularSet  map[string]struct{}
}

// NewCorpus constructs an empty Corpus.
func NewCorpus() *Corpus {
	return &Corpus{
		Packages:   make(map[string]*Package),
		popularSet: make(map[string]struct{}),
	}
}

// IsPopular reports whether name is in the popular set.
func (c *Corpus) IsPopular(name string) bool {
	_, ok := c.popularSet[name]
	return ok
}

// Get returns the package with the given name, or nil if absent.
func (c *Corpus) Get(name string) *Package {
	return c.Packages[name]
}

// AddPopular registers p as a popular-set member, appending to PopularList
// in the order given (callers are responsible for recent-downloads
// ordering before calling this).
func (c *Corpus) AddPopular(p *Package) {
	c.Packages[p.Name] = p
	if _, ok := c.popularSet[p.Name]; !ok {
		c.popularSet[p.Name] = struct{}{}
		c.PopularList = append(c.PopularList, p.Name)
	}
}

// AddCandidate registers p without touching the popular set or list.
func (c *Corpus) AddCandidate(p *Package) {
	c.Packages[p.Name] = p
}

// mergeOwner appends owner to p.Owners if non-empty and not already present,
// preserving first-appearance order (spec.md §9, Open Question resolution).
func mergeOwner(p *Package, owner string) {
	if owner == "" {
		return
	}
	if p.HasOwner(owner) {
		return
	}
	p.Owners = append(p.Owners, owner)
}

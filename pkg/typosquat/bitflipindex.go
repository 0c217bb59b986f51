// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import (
	"regexp"

	"github.com/google/squatwatch/internal/bitflip"
	"github.com/google/squatwatch/pkg/corpus"
)

// nameRegex matches a syntactically legal registry package name.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// BitflipIndex maps a mutant name to the ordered, de-duplicated list of
// popular names whose single-bit-flip enumeration produced it (spec.md
// §4.2). Built once per run and read-only thereafter.
type BitflipIndex map[string][]string

// BuildBitflipIndex enumerates every single-bit-flip variant of each name
// in c's popular list, keeping only variants that are syntactically legal
// package names and differ from their source, then inverts the mapping.
func BuildBitflipIndex(c *corpus.Corpus) BitflipIndex {
	idx := make(BitflipIndex)
	for _, name := range c.PopularList {
		seen := make(map[string]struct{})
		for _, mutant := range bitflip.All(name) {
			if mutant == name || !nameRegex.MatchString(mutant) {
				continue
			}
			if _, dup := seen[mutant]; dup {
				continue
			}
			seen[mutant] = struct{}{}
			idx[mutant] = append(idx[mutant], name)
		}
	}
	return idx
}

// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import (
	"context"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/google/squatwatch/internal/embedding"
	"github.com/google/squatwatch/pkg/corpus"
	"github.com/pkg/errors"
)

// Default thresholds, matching spec.md §6's CLI flag defaults.
const (
	DefaultSimilarityThreshold  = 0.97
	DefaultLevenshteinThreshold = 10

	// emptyDescriptionScore is the sentinel score for a candidate/target
	// pair that both have empty descriptions (spec.md §3, §4.5).
	emptyDescriptionScore = 100
)

// SimilarityFilter suppresses mutation targets whose description is
// unrelated to the candidate's, the sole false-positive filter the engine
// applies after mutation (spec.md §4.5).
type SimilarityFilter struct {
	Embedder             embedding.Embedder
	SimilarityThreshold  float64
	LevenshteinThreshold int
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// Filter returns target -> score for the subset of targets whose
// description passes the similarity predicate against candidate's
// description, looking target descriptions up in corp.
func (f *SimilarityFilter) Filter(ctx context.Context, candidate *corpus.Package, targets []string, corp *corpus.Corpus) (map[string]float64, error) {
	result := make(map[string]float64)
	if isBlank(candidate.Description) {
		for _, name := range targets {
			if t := corp.Get(name); t != nil && isBlank(t.Description) {
				result[name] = emptyDescriptionScore
			}
		}
		return result, nil
	}
	refVec, err := f.Embedder.Embed(ctx, candidate.Description)
	if err != nil {
		return nil, errors.Wrapf(err, "embedding candidate %q", candidate.Name)
	}
	if refVec.Norm() == 0 {
		for _, name := range targets {
			t := corp.Get(name)
			if t == nil {
				continue
			}
			dist := levenshtein.Distance(candidate.Description, t.Description, nil)
			if dist < f.LevenshteinThreshold {
				result[name] = float64(dist)
			}
		}
		return result, nil
	}
	for _, name := range targets {
		t := corp.Get(name)
		if t == nil || isBlank(t.Description) {
			continue
		}
		vec, err := f.Embedder.Embed(ctx, t.Description)
		if err != nil {
			return nil, errors.Wrapf(err, "embedding target %q", name)
		}
		if vec.Norm() == 0 {
			return nil, newDataQualityError(name)
		}
		if sim := embedding.Cosine(refVec, vec); sim >= f.SimilarityThreshold {
			result[name] = sim
		}
	}
	return result, nil
}

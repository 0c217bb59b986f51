// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
)

// placeholderArtifact is substituted for an alert's artifact path when
// download fails or no version is available (spec.md §4.6, §7).
const placeholderArtifact = "no versions available"

// Alert is one detection record: a candidate suspected of typosquatting,
// its non-empty filtered target set, and the local path of its downloaded
// artifact (or a placeholder).
type Alert struct {
	CandidateName      string
	CandidateDownloads int64
	ArtifactPath       string
	Targets            map[string]float64
}

// writeLine renders one human-readable alert line to w, highlighting the
// candidate and target names when highlight is enabled (spec.md §6,
// "Output stream").
func (a *Alert) writeLine(w io.Writer, highlight bool) {
	candidateName := a.CandidateName
	if highlight {
		candidateName = color.YellowString(a.CandidateName)
	}
	names := make([]string, 0, len(a.Targets))
	for name := range a.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "WARNING: %s (%s) with %d downloads could be typosquatting:",
		candidateName, a.ArtifactPath, a.CandidateDownloads)
	for _, name := range names {
		targetName := name
		if highlight {
			targetName = color.RedString(name)
		}
		fmt.Fprintf(w, " %s=%v", targetName, a.Targets[name])
	}
	fmt.Fprintln(w)
}

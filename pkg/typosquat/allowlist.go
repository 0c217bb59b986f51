// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import (
	"os"

	"github.com/google/squatwatch/pkg/corpus"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AllowlistEntry is one exact-metadata signature exempted from detection.
// Owners is always matched as a set; the URL fields are matched only when
// the entry specifies them, so an entry naming just a repository doesn't
// require a candidate's homepage to also be empty.
type AllowlistEntry struct {
	Owners        []string `yaml:"owners"`
	Homepage      string   `yaml:"homepage,omitempty"`
	Repository    string   `yaml:"repository,omitempty"`
	Documentation string   `yaml:"documentation,omitempty"`
}

// Allowlist is the small static table of known-benign research
// typosquatters (spec.md §4.4), now configurable data instead of an
// embedded constant (spec.md §9, Open Question).
type Allowlist []AllowlistEntry

// DefaultAllowlist reproduces the two entries hard-coded in the original
// tool, tied to specific research publications:
//   - blallo: https://troubles.noblogs.org/post/2021/03/29/why-so-much-ado-with-crates-io/
//   - skerkour: https://kerkour.com/rust-crate-backdoor
var DefaultAllowlist = Allowlist{
	{
		Owners:        []string{"blallo"},
		Homepage:      "https://xkcd.com/386",
		Documentation: "https://crates.io/policies",
		Repository:    "https://github.com/blallo/xkcd-386",
	},
	{
		Owners:     []string{"skerkour"},
		Repository: "https://github.com/skerkour/black-hat-rust",
	},
}

// LoadAllowlist reads a YAML allowlist file, or returns DefaultAllowlist
// when path is empty.
func LoadAllowlist(path string) (Allowlist, error) {
	if path == "" {
		return DefaultAllowlist, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading allowlist %s", path)
	}
	var a Allowlist
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrapf(err, "parsing allowlist %s", path)
	}
	return a, nil
}

// Matches reports whether p's owner set and URL fields exactly match any
// entry in a.
func (a Allowlist) Matches(p *corpus.Package) bool {
	for _, e := range a {
		if !ownerSetEqual(e.Owners, p.Owners) {
			continue
		}
		if e.Homepage != "" && e.Homepage != p.Homepage {
			continue
		}
		if e.Repository != "" && e.Repository != p.Repository {
			continue
		}
		if e.Documentation != "" && e.Documentation != p.Documentation {
			continue
		}
		return true
	}
	return false
}

func ownerSetEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, x := range a {
		set[x] = struct{}{}
	}
	for _, y := range b {
		if _, ok := set[y]; !ok {
			return false
		}
	}
	return true
}

// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

package typosquat

import (
	"regexp"
	"strings"
)

// allowedCharacters is the alphabet the omitted-character mutator inserts
// from, matching the registry name grammar.
const allowedCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890-_"

// typos maps each lowercase letter, digit, '-', '_' and '.' to a list of
// plausible mis-keyings, based on QWERTY adjacency and visual confusables.
// Uppercase letters have no entry and are left unchanged by CommonTypos.
var typos = map[byte][]string{
	'1': {"2", "q", "i", "l"},
	'2': {"1", "q", "w", "3"},
	'3': {"2", "w", "e", "4"},
	'4': {"3", "e", "r", "5"},
	'5': {"4", "r", "t", "6", "s"},
	'6': {"5", "t", "y", "7"},
	'7': {"6", "y", "u", "8"},
	'8': {"7", "u", "i", "9"},
	'9': {"8", "i", "o", "0"},
	'0': {"9", "o", "p", "-"},
	'-': {"_", "0", "p", ".", ""},
	'_': {"-", "0", "p", ".", ""},
	'q': {"1", "2", "w", "a"},
	'w': {"2", "3", "e", "s", "a", "q", "vv"},
	'e': {"3", "4", "r", "d", "s", "w"},
	'r': {"4", "5", "t", "f", "d", "e"},
	't': {"5", "6", "y", "g", "f", "r"},
	'y': {"6", "7", "u", "h", "t", "i"},
	'u': {"7", "8", "i", "j", "y", "v"},
	'i': {"1", "8", "9", "o", "l", "k", "j", "u", "y"},
	'o': {"9", "0", "p", "l", "i"},
	'p': {"0", "-", "o"},
	'a': {"q", "w", "s", "z"},
	's': {"w", "d", "x", "z", "a", "5"},
	'd': {"e", "r", "f", "c", "x", "s"},
	'f': {"r", "g", "v", "c", "d"},
	'g': {"t", "h", "b", "v", "f"},
	'h': {"y", "j", "n", "b", "g"},
	'j': {"u", "i", "k", "m", "n", "h"},
	'k': {"i", "o", "l", "m", "j"},
	'l': {"i", "o", "p", "k", "1"},
	'z': {"a", "s", "x"},
	'x': {"z", "s", "d", "c"},
	'c': {"x", "d", "f", "v"},
	'v': {"c", "f", "g", "b", "u"},
	'b': {"v", "g", "h", "n"},
	'n': {"b", "h", "j", "m"},
	'm': {"n", "j", "k", "rn"},
	'.': {"-", "_", ""},
}

var (
	delimiterRegex     = regexp.MustCompile(`[-_]`)
	versionNumberRegex = regexp.MustCompile(`^(.*?)[-_]?\d+$`)
)

var mutatorDelimiters = []string{"", "-", "_"}

// RepeatedCharacter deletes each adjacent duplicate character in name and
// tests whether the result names a popular package. Example: reeact -> react.
func (e *EngineContext) RepeatedCharacter(name string, returnAll bool) []string {
	var targets []string
	for i := 0; i+1 < len(name); i++ {
		if name[i] != name[i+1] {
			continue
		}
		s := name[:i] + name[i+1:]
		if e.admissible(name, s) {
			targets = append(targets, s)
		}
	}
	return e.collapse(targets, returnAll)
}

// OmittedCharacter inserts every allowed character at every position of
// name and tests the result, skipped for names shorter than 4 characters
// to suppress false positives. Example: evnt-stream -> event-stream.
func (e *EngineContext) OmittedCharacter(name string, returnAll bool) []string {
	var targets []string
	if len(name) < 4 {
		return targets
	}
	for i := 0; i <= len(name); i++ {
		for j := 0; j < len(allowedCharacters); j++ {
			s := name[:i] + allowedCharacters[j:j+1] + name[i:]
			if e.admissible(name, s) {
				targets = append(targets, s)
			}
		}
	}
	return e.collapse(targets, returnAll)
}

// SwappedCharacters swaps each adjacent character pair in name and tests
// the result. Example: loadsh -> lodash.
func (e *EngineContext) SwappedCharacters(name string, returnAll bool) []string {
	var targets []string
	b := []byte(name)
	for i := 0; i+1 < len(b); i++ {
		swapped := make([]byte, len(b))
		copy(swapped, b)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		s := string(swapped)
		if e.admissible(name, s) {
			targets = append(targets, s)
		}
	}
	return e.collapse(targets, returnAll)
}

// SwappedWords splits name on '-'/'_' delimiters and tests every
// permutation of the resulting tokens joined by every allowed delimiter
// (including the empty one), catching reordering, delimiter substitution,
// and concatenation. Returns empty for names with no delimiter or with
// more than 8 tokens (factorial cost guard).
func (e *EngineContext) SwappedWords(name string, returnAll bool) []string {
	var targets []string
	if !delimiterRegex.MatchString(name) {
		return targets
	}
	tokens := nonEmptyTokens(delimiterRegex.Split(name, -1))
	if len(tokens) > 8 {
		return targets
	}
	for _, perm := range permutations(tokens) {
		for _, d := range mutatorDelimiters {
			s := strings.Join(perm, d)
			if e.admissible(name, s) {
				targets = append(targets, s)
			}
		}
	}
	return e.collapse(targets, returnAll)
}

// CommonTypos substitutes each character of name with its table of
// plausible mis-keyings and tests each result.
func (e *EngineContext) CommonTypos(name string, returnAll bool) []string {
	var targets []string
	for i := 0; i < len(name); i++ {
		replacements, ok := typos[name[i]]
		if !ok {
			continue
		}
		for _, t := range replacements {
			s := name[:i] + t + name[i+1:]
			if e.admissible(name, s) {
				targets = append(targets, s)
			}
		}
	}
	return e.collapse(targets, returnAll)
}

// VersionNumbers strips a trailing digit sequence (optionally preceded by
// '-' or '_') from name and tests the remaining prefix. Example:
// react-2 -> react, react2 -> react.
func (e *EngineContext) VersionNumbers(name string) []string {
	m := versionNumberRegex.FindStringSubmatch(name)
	if m == nil {
		return nil
	}
	s := m[1]
	if e.admissible(name, s) {
		return []string{s}
	}
	return nil
}

// Bitflips looks name up in the prebuilt bitflip index and returns its
// popular-name list, filtered through the same admissibility test every
// other mutator applies.
func (e *EngineContext) Bitflips(name string) []string {
	var targets []string
	for _, t := range e.BitflipIndex[name] {
		if e.admissible(name, t) {
			targets = append(targets, t)
		}
	}
	return targets
}

// MutationTargets returns the deduplicated union of all seven mutator
// families' outputs for name, each invoked with returnAll=true as the
// driver requires (spec.md §4.3).
func (e *EngineContext) MutationTargets(name string) []string {
	var all []string
	all = append(all, e.RepeatedCharacter(name, true)...)
	all = append(all, e.OmittedCharacter(name, true)...)
	all = append(all, e.SwappedCharacters(name, true)...)
	all = append(all, e.SwappedWords(name, true)...)
	all = append(all, e.CommonTypos(name, true)...)
	all = append(all, e.VersionNumbers(name)...)
	all = append(all, e.Bitflips(name)...)
	return dedupe(all)
}

func nonEmptyTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// permutations returns every ordering of tokens, matching the semantics of
// Python's itertools.permutations.
func permutations(tokens []string) [][]string {
	n := len(tokens)
	if n == 0 {
		return [][]string{{}}
	}
	var result [][]string
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	var permute func(k int)
	permute = func(k int) {
		if k == n {
			perm := make([]string, n)
			for i, idx := range indices {
				perm[i] = tokens[idx]
			}
			result = append(result, perm)
			return
		}
		for i := k; i < n; i++ {
			indices[k], indices[i] = indices[i], indices[k]
			permute(k + 1)
			indices[k], indices[i] = indices[i], indices[k]
		}
	}
	permute(0)
	return result
}

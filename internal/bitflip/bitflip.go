// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package bitflip enumerates the byte strings reachable from an input by
// flipping exactly one bit of its byte encoding. It is consumed as a pure
// library: it knows nothing about package names, registries, or
// popularity — callers filter its output for whatever validity they need.
package bitflip

// All returns every byte string obtained from s by flipping exactly one
// bit in its UTF-8 byte encoding. The result has len(s)*8 entries, one per
// bit position, in ascending (byte index, bit index) order. Each entry
// differs from s in a different bit, so no two entries are equal.
func All(s string) []string {
	b := []byte(s)
	out := make([]string, 0, len(b)*8)
	for i := range b {
		for bit := 0; bit < 8; bit++ {
			flipped := make([]byte, len(b))
			copy(flipped, b)
			flipped[i] ^= 1 << bit
			out = append(out, string(flipped))
		}
	}
	return out
}

// Flip returns s with exactly the bit at the given byte and bit position
// inverted. Flip is its own inverse: Flip(Flip(s, byteIdx, bit), byteIdx, bit) == s.
func Flip(s string, byteIdx, bit int) string {
	b := []byte(s)
	if byteIdx < 0 || byteIdx >= len(b) || bit < 0 || bit >= 8 {
		return s
	}
	b[byteIdx] ^= 1 << bit
	return string(b)
}

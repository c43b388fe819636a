// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fuzzy implements character-level fuzzy alignment between two
// strings using the Ratcliff/Obershelp "matching blocks" algorithm (the
// same algorithm underlying Python's difflib.SequenceMatcher), and layers
// junk-aware ratio metrics on top of the raw blocks.
//
// Junk characters never influence which blocks are found — the alignment
// itself is computed over the full strings — they only influence the
// denominators of the derived ratio metrics below.
package fuzzy

import (
	"github.com/pmezard/go-difflib/difflib"
)

// IsJunk reports whether the rune at index i of s should be excluded from
// ratio denominators. It is never consulted by the alignment step itself.
type IsJunk func(s []rune, i int) bool

// Block is a single matching block: a run of size characters that is
// identical between a[AIndex:AIndex+Size] and b[BIndex:BIndex+Size].
type Block struct {
	AIndex int
	BIndex int
	Size   int
}

// FuzzyMatchResult holds the outcome of aligning two strings: the raw
// matching blocks plus the junk-aware ratio metrics derived from them.
type FuzzyMatchResult struct {
	a, b   []rune
	isJunk IsJunk
	blocks []Block
}

// Match aligns a against b using the default junk predicate (no runes
// considered junk). Equivalent to MatchWithJunk(a, b, nil).
func Match(a, b string) *FuzzyMatchResult {
	return MatchWithJunk(a, b, nil)
}

// MatchWithJunk aligns a against b and evaluates ratio metrics using
// isJunk (which may be nil, meaning no rune is junk).
func MatchWithJunk(a, b string, isJunk IsJunk) *FuzzyMatchResult {
	ar := []rune(a)
	br := []rune(b)

	as := runesToStrings(ar)
	bs := runesToStrings(br)

	sm := difflib.NewMatcherWithJunk(as, bs, false, nil)
	raw := sm.GetMatchingBlocks()

	blocks := make([]Block, 0, len(raw))
	for _, m := range raw {
		if m.Size == 0 {
			continue
		}
		blocks = append(blocks, Block{AIndex: m.A, BIndex: m.B, Size: m.Size})
	}

	return &FuzzyMatchResult{a: ar, b: br, isJunk: isJunk, blocks: blocks}
}

func runesToStrings(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// Blocks returns the matching blocks found between a and b, in increasing
// order of AIndex (and BIndex), excluding the zero-size sentinel block
// difflib appends at the end.
func (r *FuzzyMatchResult) Blocks() []Block {
	out := make([]Block, len(r.blocks))
	copy(out, r.blocks)
	return out
}

// MatchCount returns M, the total number of characters covered by
// matching blocks.
func (r *FuzzyMatchResult) MatchCount() int {
	m := 0
	for _, blk := range r.blocks {
		m += blk.Size
	}
	return m
}

// HasMatch reports whether any non-empty matching block was found.
func (r *FuzzyMatchResult) HasMatch() bool {
	return len(r.blocks) > 0
}

// covered marks, for a string of length n, which positions are part of
// some matching block, given the block's offset field (AIndex or
// BIndex).
func covered(n int, blocks []Block, offset func(Block) int) []bool {
	c := make([]bool, n)
	for _, blk := range blocks {
		start := offset(blk)
		for k := 0; k < blk.Size; k++ {
			c[start+k] = true
		}
	}
	return c
}

func (r *FuzzyMatchResult) aCovered() []bool {
	return covered(len(r.a), r.blocks, func(b Block) int { return b.AIndex })
}

func (r *FuzzyMatchResult) bCovered() []bool {
	return covered(len(r.b), r.blocks, func(b Block) int { return b.BIndex })
}

// junkOutsideBlocks counts positions of s that are junk and not covered
// by any matching block. Junk inside a matching block is already
// accounted for by match_count and must not also reduce the effective
// length.
func (r *FuzzyMatchResult) junkOutsideBlocks(s []rune, cov []bool) int {
	if r.isJunk == nil {
		return 0
	}
	n := 0
	for i := range s {
		if cov[i] {
			continue
		}
		if r.isJunk(s, i) {
			n++
		}
	}
	return n
}

// effectiveLen returns |s| minus the junk characters found outside any
// matching block.
func (r *FuzzyMatchResult) effectiveLen(s []rune, cov []bool) int {
	return len(s) - r.junkOutsideBlocks(s, cov)
}

// Ratio returns 2M / (|a|' + |b|'), clamped to [0, 1], where |a|' and
// |b|' are the junk-adjusted effective lengths of a and b.
func (r *FuzzyMatchResult) Ratio() float64 {
	denom := r.effectiveLen(r.a, r.aCovered()) + r.effectiveLen(r.b, r.bCovered())
	if denom <= 0 {
		return 0
	}
	ratio := 2 * float64(r.MatchCount()) / float64(denom)
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

// ARatio returns M / |a|'.
func (r *FuzzyMatchResult) ARatio() float64 {
	denom := r.effectiveLen(r.a, r.aCovered())
	if denom <= 0 {
		return 0
	}
	return float64(r.MatchCount()) / float64(denom)
}

// BRatio returns M / |b|'.
func (r *FuzzyMatchResult) BRatio() float64 {
	denom := r.effectiveLen(r.b, r.bCovered())
	if denom <= 0 {
		return 0
	}
	return float64(r.MatchCount()) / float64(denom)
}

// BIndexRange returns [jMin, jMax), the span of b covered by the first
// through last matching block. Returns (0, 0) if there is no match.
func (r *FuzzyMatchResult) BIndexRange() (jMin, jMax int) {
	if len(r.blocks) == 0 {
		return 0, 0
	}
	first := r.blocks[0]
	last := r.blocks[len(r.blocks)-1]
	return first.BIndex, last.BIndex + last.Size
}

// AIndexRange returns [iMin, iMax), the span of a covered by the first
// through last matching block. Returns (0, 0) if there is no match.
func (r *FuzzyMatchResult) AIndexRange() (iMin, iMax int) {
	if len(r.blocks) == 0 {
		return 0, 0
	}
	first := r.blocks[0]
	last := r.blocks[len(r.blocks)-1]
	return first.AIndex, last.AIndex + last.Size
}

// BGapRatio returns M / (M + bGap), where bGap is the number of
// non-junk positions within the b-span [jMin, jMax) that are not
// covered by any matching block. It rewards alignments whose matched
// characters are densely packed inside the span they claim in b,
// independent of how much of b lies outside that span entirely.
func (r *FuzzyMatchResult) BGapRatio() float64 {
	jMin, jMax := r.BIndexRange()
	m := r.MatchCount()
	if jMax <= jMin {
		if m == 0 {
			return 0
		}
		return 1
	}
	spanCovered := make([]bool, jMax-jMin)
	for _, blk := range r.blocks {
		for k := 0; k < blk.Size; k++ {
			j := blk.BIndex + k
			if j >= jMin && j < jMax {
				spanCovered[j-jMin] = true
			}
		}
	}
	gap := 0
	for j := jMin; j < jMax; j++ {
		if spanCovered[j-jMin] {
			continue
		}
		if r.isJunk != nil && r.isJunk(r.b, j) {
			continue
		}
		gap++
	}
	denom := m + gap
	if denom <= 0 {
		return 0
	}
	return float64(m) / float64(denom)
}

// ASplitAt returns the blocks restricted to a[:k] and a[k:] respectively,
// splitting any block that straddles index k into two, each retaining
// only the portion on its side of the split.
func (r *FuzzyMatchResult) ASplitAt(k int) (before, after []Block) {
	for _, blk := range r.blocks {
		start, end := blk.AIndex, blk.AIndex+blk.Size
		if end <= k {
			before = append(before, blk)
			continue
		}
		if start >= k {
			after = append(after, blk)
			continue
		}
		// straddles k: split into [start,k) and [k,end)
		leftSize := k - start
		before = append(before, Block{AIndex: start, BIndex: blk.BIndex, Size: leftSize})
		after = append(after, Block{AIndex: k, BIndex: blk.BIndex + leftSize, Size: blk.Size - leftSize})
	}
	return before, after
}

// BSplitAt returns the blocks restricted to b[:k] and b[k:] respectively,
// splitting any block that straddles index k into two, each retaining
// only the portion on its side of the split.
func (r *FuzzyMatchResult) BSplitAt(k int) (before, after []Block) {
	for _, blk := range r.blocks {
		start, end := blk.BIndex, blk.BIndex+blk.Size
		if end <= k {
			before = append(before, blk)
			continue
		}
		if start >= k {
			after = append(after, blk)
			continue
		}
		leftSize := k - start
		before = append(before, Block{AIndex: blk.AIndex, BIndex: start, Size: leftSize})
		after = append(after, Block{AIndex: blk.AIndex + leftSize, BIndex: k, Size: blk.Size - leftSize})
	}
	return before, after
}

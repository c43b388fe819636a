// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

import (
	"sort"
	"strings"

	"github.com/pvk444/sciencebeam-gym-go/normalize"
)

// tokenRef is one entry of a haystack: a single document token together
// with its line/token coordinates and its normalized text's position
// within the haystack's concatenated text.
type tokenRef struct {
	lineIndex  int
	tokenIndex int
	token      Token
	charStart  int
	charEnd    int // exclusive, before the trailing separator space
}

// haystack is the flattened, ordered (line, token, normalized-text) view
// of a Document used by MatchingAnnotator: every token's normalized text
// is concatenated (separated by a single space) into one long string,
// with an offset table that lets any character range within that string
// be projected back to the covering span of tokens in O(log n).
type haystack struct {
	text string
	refs []tokenRef
}

func buildHaystack(doc Document) *haystack {
	var sb strings.Builder
	var refs []tokenRef

	for li, line := range doc.Lines() {
		for ti, tok := range line.Tokens() {
			norm := normalize.Normalize(tok.Text())
			start := sb.Len()
			sb.WriteString(norm)
			refs = append(refs, tokenRef{
				lineIndex:  li,
				tokenIndex: ti,
				token:      tok,
				charStart:  start,
				charEnd:    start + len(norm),
			})
			sb.WriteByte(' ')
		}
	}

	return &haystack{text: sb.String(), refs: refs}
}

// tokenAt returns the index into refs of the token whose span contains
// (or most closely precedes) the character position pos, via binary
// search over the offset table. Runs in O(log n).
func (h *haystack) tokenAt(pos int) int {
	idx := sort.Search(len(h.refs), func(i int) bool { return h.refs[i].charStart > pos })
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// tokenSpan projects the character range [charStart, charEnd) back to
// the inclusive range of token indices (into refs) that it overlaps.
func (h *haystack) tokenSpan(charStart, charEnd int) (startTok, endTok int) {
	if len(h.refs) == 0 {
		return 0, -1
	}
	if charEnd <= charStart {
		charEnd = charStart + 1
	}
	startTok = h.tokenAt(charStart)
	endTok = h.tokenAt(charEnd - 1)
	if endTok < startTok {
		endTok = startTok
	}
	return startTok, endTok
}

// fullyCoveredTokenSpan projects [charStart, charEnd) back to the range
// of tokens fully contained within it, per the rule that a token
// partially covered by a match is not tagged: the token is the atomic
// tagging unit. ok is false if no token is fully contained.
func (h *haystack) fullyCoveredTokenSpan(charStart, charEnd int) (startTok, endTok int, ok bool) {
	startTok, endTok = h.tokenSpan(charStart, charEnd)
	if h.refs[startTok].charStart < charStart {
		startTok++
	}
	if endTok >= 0 && endTok < len(h.refs) && h.refs[endTok].charEnd > charEnd {
		endTok--
	}
	if startTok > endTok {
		return 0, 0, false
	}
	return startTok, endTok, true
}

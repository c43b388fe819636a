// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package normalize canonicalizes text before it is handed to the fuzzy
// matcher, and supplies the default junk predicate used to keep
// punctuation and whitespace out of ratio denominators.
package normalize

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Runes worth canonicalizing to their ASCII equivalent before matching,
// so that documents using typographic punctuation still align against
// plain-ASCII target annotation values.
const (
	ThinSpace = ' '
	EnDash    = '–'
	EmDash    = '—'
)

var foldCaser = cases.Fold()

// Normalize case-folds s and canonicalizes the punctuation runes listed
// above to their plain-ASCII equivalents (space, hyphen, hyphen), so
// that two strings differing only in case or typographic punctuation
// compare as identical under the fuzzy matcher.
func Normalize(s string) string {
	s = foldCaser.String(s)
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ThinSpace:
			out = append(out, ' ')
		case EnDash, EmDash:
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// DefaultIsJunk is the fuzzy.IsJunk predicate used by MatchingAnnotator:
// a rune is junk if it is an ASCII punctuation character or whitespace.
// Junk runes never affect alignment, only ratio denominators.
func DefaultIsJunk(s []rune, i int) bool {
	r := s[i]
	if unicode.IsSpace(r) {
		return true
	}
	if r < 128 && unicode.IsPunct(r) {
		return true
	}
	return false
}

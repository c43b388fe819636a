// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package annotation aligns target annotation values against the tokens
// of a structured document, tagging the tokens that match.
package annotation

// Token is a single tokenized unit of text within a Line. Its Text is
// immutable; its Tag is set at most once by the annotator (set-once:
// a token that already carries a tag is never overwritten).
type Token interface {
	// Text returns the token's literal text.
	Text() string

	// Tag returns the tag currently assigned to this token, or "" if
	// none has been assigned yet.
	Tag() string

	// SetTag assigns tag to this token. Callers (including the
	// annotator) must never call SetTag on a token that already has a
	// non-empty tag.
	SetTag(tag string)
}

// Line is an ordered sequence of Tokens.
type Line interface {
	// Tokens returns the tokens of this line, in reading order.
	Tokens() []Token
}

// Document is an ordered sequence of Lines, the unit MatchingAnnotator
// operates over.
type Document interface {
	// Lines returns the lines of this document, in reading order.
	Lines() []Line
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

// SimpleToken is an in-memory Token, used by tests and the cmd/annotate
// demo tool.
type SimpleToken struct {
	text string
	tag  string
}

// NewSimpleToken returns a SimpleToken with the given text and no tag.
func NewSimpleToken(text string) *SimpleToken {
	return &SimpleToken{text: text}
}

func (t *SimpleToken) Text() string { return t.text }
func (t *SimpleToken) Tag() string  { return t.tag }
func (t *SimpleToken) SetTag(tag string) {
	t.tag = tag
}

// SimpleLine is an in-memory Line backed by a slice of SimpleTokens.
type SimpleLine struct {
	tokens []Token
}

// NewSimpleLine builds a SimpleLine from whitespace-free token strings.
func NewSimpleLine(texts ...string) *SimpleLine {
	tokens := make([]Token, len(texts))
	for i, txt := range texts {
		tokens[i] = NewSimpleToken(txt)
	}
	return &SimpleLine{tokens: tokens}
}

func (l *SimpleLine) Tokens() []Token { return l.tokens }

// SimpleDocument is an in-memory Document backed by a slice of Lines.
type SimpleDocument struct {
	lines []Line
}

// NewSimpleDocument builds a SimpleDocument from the given lines.
func NewSimpleDocument(lines ...*SimpleLine) *SimpleDocument {
	ls := make([]Line, len(lines))
	for i, l := range lines {
		ls[i] = l
	}
	return &SimpleDocument{lines: ls}
}

func (d *SimpleDocument) Lines() []Line { return d.lines }

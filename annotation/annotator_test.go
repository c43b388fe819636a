// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tagsOf(lines ...*SimpleLine) []string {
	var tags []string
	for _, l := range lines {
		for _, t := range l.Tokens() {
			if t.Tag() != "" {
				tags = append(tags, t.Tag())
			}
		}
	}
	return tags
}

func TestAnnotateExactMatch(t *testing.T) {
	line := NewSimpleLine("John", "Smith", "wrote", "this", "paper")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "author", Value: StringValue("John Smith")},
	})
	assert.NoError(t, err)

	toks := line.Tokens()
	assert.Equal(t, "author", toks[0].Tag())
	assert.Equal(t, "author", toks[1].Tag())
	assert.Equal(t, "", toks[2].Tag())
}

func TestAnnotateCaseInsensitive(t *testing.T) {
	line := NewSimpleLine("JOHN", "SMITH", "wrote", "this")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "author", Value: StringValue("John Smith")},
	})
	assert.NoError(t, err)

	toks := line.Tokens()
	assert.Equal(t, "author", toks[0].Tag())
	assert.Equal(t, "author", toks[1].Tag())
}

func TestAnnotateNilDocument(t *testing.T) {
	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(nil, []TargetAnnotation{{Name: "x", Value: StringValue("y")}})
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestAnnotateMalformedTargetSkipped(t *testing.T) {
	line := NewSimpleLine("hello", "world")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "empty", Value: StringValue("   ")},
		{Name: "greeting", Value: StringValue("hello world")},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"greeting", "greeting"}, tagsOf(line))
}

func TestAnnotateMultiValueListInOrder(t *testing.T) {
	line := NewSimpleLine("Alice", "and", "Bob", "wrote", "this")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "author", Value: ListValue("Alice", "Bob")},
	})
	assert.NoError(t, err)

	toks := line.Tokens()
	assert.Equal(t, "author", toks[0].Tag())
	assert.Equal(t, "author", toks[2].Tag())
	assert.Equal(t, "", toks[1].Tag())
}

func TestAnnotateNoOverrideOfExistingTag(t *testing.T) {
	line := NewSimpleLine("Alice", "Bob")
	doc := NewSimpleDocument(line)
	line.Tokens()[0].SetTag("other")

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "author", Value: StringValue("Alice Bob")},
	})
	assert.NoError(t, err)

	assert.Equal(t, "other", line.Tokens()[0].Tag())
	assert.Equal(t, "author", line.Tokens()[1].Tag())
}

func TestAnnotateMatchMultipleTagsEveryOccurrence(t *testing.T) {
	line := NewSimpleLine("foo", "bar", "baz", "foo", "qux")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "kw", Value: StringValue("foo"), MatchMultiple: true},
	})
	assert.NoError(t, err)

	toks := line.Tokens()
	assert.Equal(t, "kw", toks[0].Tag())
	assert.Equal(t, "kw", toks[3].Tag())
}

func TestAnnotateWithoutMatchMultipleTagsOnlyFirst(t *testing.T) {
	line := NewSimpleLine("foo", "bar", "baz", "foo", "qux")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "kw", Value: StringValue("foo")},
	})
	assert.NoError(t, err)

	toks := line.Tokens()
	assert.Equal(t, "kw", toks[0].Tag())
	assert.Equal(t, "", toks[3].Tag())
}

func TestAnnotateMultiLineExtension(t *testing.T) {
	l1 := NewSimpleLine("the", "title", "of", "this")
	l2 := NewSimpleLine("paper", "is", "great")
	doc := NewSimpleDocument(l1, l2)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "title", Value: StringValue("this paper")},
	})
	assert.NoError(t, err)

	assert.Equal(t, "title", l1.Tokens()[3].Tag())
	assert.Equal(t, "title", l2.Tokens()[0].Tag())
}

func TestAnnotateBondingWithinWindowAccepted(t *testing.T) {
	l1 := NewSimpleLine("Jane", "Doe")
	l2 := NewSimpleLine("affiliated", "with")
	l3 := NewSimpleLine("Example", "University")
	doc := NewSimpleDocument(l1, l2, l3)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "affiliation", Value: ListValue("Jane Doe", "Example University"), Bonding: true},
	})
	assert.NoError(t, err)

	assert.Equal(t, "affiliation", l1.Tokens()[0].Tag())
	assert.Equal(t, "affiliation", l3.Tokens()[0].Tag())
}

func TestAnnotateBondingOutsideWindowRejected(t *testing.T) {
	lines := []*SimpleLine{NewSimpleLine("Jane", "Doe")}
	for i := 0; i < 10; i++ {
		lines = append(lines, NewSimpleLine("filler", "text", "here"))
	}
	lines = append(lines, NewSimpleLine("Example", "University"))
	doc := NewSimpleDocument(lines...)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "affiliation", Value: ListValue("Jane Doe", "Example University"), Bonding: true},
	})
	assert.NoError(t, err)

	last := lines[len(lines)-1]
	assert.Equal(t, "", last.Tokens()[0].Tag())
}

func TestAnnotateBondingAcrossDistinctTargetsWithSameName(t *testing.T) {
	l1 := NewSimpleLine("this", "may", "match")
	lines := []*SimpleLine{l1}
	for i := 0; i < 10; i++ {
		lines = append(lines, NewSimpleLine("filler", "text", "here"))
	}
	l2 := NewSimpleLine("not")
	lines = append(lines, l2)
	doc := NewSimpleDocument(lines...)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "tag1", Value: StringValue("this may match"), Bonding: true},
		{Name: "tag1", Value: StringValue("not"), Bonding: true},
	})
	assert.NoError(t, err)

	assert.Equal(t, "tag1", l1.Tokens()[0].Tag())
	assert.Equal(t, "", l2.Tokens()[0].Tag())
}

func TestAnnotateFuzzyMatchWithPunctuation(t *testing.T) {
	line := NewSimpleLine("J.", "Smith", "et", "al.")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "author", Value: StringValue("J. Smith")},
	})
	assert.NoError(t, err)
	assert.Equal(t, "author", line.Tokens()[0].Tag())
	assert.Equal(t, "author", line.Tokens()[1].Tag())
}

func TestAnnotateNormalizedPunctuation(t *testing.T) {
	line := NewSimpleLine("this", "is –—", "matching")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "t1", Value: StringValue("this is -- matching")},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"t1", "t1", "t1"}, tagsOf(line))
}

func TestAnnotateWordBoundaryPreference(t *testing.T) {
	line := NewSimpleLine("this", "is", "miss")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "t1", Value: StringValue("is")},
	})
	assert.NoError(t, err)

	toks := line.Tokens()
	assert.Equal(t, "", toks[0].Tag())
	assert.Equal(t, "t1", toks[1].Tag())
	assert.Equal(t, "", toks[2].Tag())
}

func TestAnnotateLocalPreferenceOverGlobalSmear(t *testing.T) {
	line := NewSimpleLine("this", "is", "matching")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "t1", Value: StringValue("this is. matching indeed matching")},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"t1", "t1", "t1"}, tagsOf(line))
}

func TestAnnotateRejectsVeryDifferentText(t *testing.T) {
	line := NewSimpleLine("completely", "unrelated", "sentence", "here")
	doc := NewSimpleDocument(line)

	ann := NewMatchingAnnotator(nil)
	err := ann.Annotate(doc, []TargetAnnotation{
		{Name: "author", Value: StringValue("Jane Doe")},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string(nil), tagsOf(line))
}

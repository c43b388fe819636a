// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

// Value is a target annotation's value: either a single string, or an
// ordered list of strings that must each be located and tagged in turn.
// Callers construct it with StringValue or ListValue; MatchingAnnotator
// never re-sorts it.
type Value struct {
	single string
	list   []string
	isList bool
}

// StringValue builds a single-string Value.
func StringValue(s string) Value {
	return Value{single: s}
}

// ListValue builds a multi-string Value. The order given is preserved
// and drives the order in which MatchingAnnotator looks for each entry.
func ListValue(values ...string) Value {
	return Value{list: values, isList: true}
}

// IsList reports whether this Value holds an ordered list rather than a
// single string.
func (v Value) IsList() bool { return v.isList }

// Strings returns the value's components in order: a single-element
// slice for a string Value, or the full ordered list for a list Value.
func (v Value) Strings() []string {
	if v.isList {
		return v.list
	}
	return []string{v.single}
}

// TargetAnnotation is a single named ground-truth value to locate and
// tag within a Document.
type TargetAnnotation struct {
	// Name is the tag string applied to matched tokens.
	Name string

	// Value is the text (or ordered list of texts) to locate.
	Value Value

	// MatchMultiple allows every non-overlapping occurrence of Value to
	// be tagged, rather than only the first accepted occurrence.
	MatchMultiple bool

	// Bonding requires each entry of a list Value (and each
	// MatchMultiple occurrence) to land within the bonding line-distance
	// window of the previously accepted occurrence of the same tag Name,
	// whether that occurrence came from this TargetAnnotation or from
	// another one sharing the Name.
	Bonding bool
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotation

import (
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/pvk444/sciencebeam-gym-go/fuzzy"
	"github.com/pvk444/sciencebeam-gym-go/normalize"
)

// ErrNilDocument is returned by Annotate when passed a nil Document.
var ErrNilDocument = errors.New("annotation: nil document")

// Thresholds configures the acceptance policy and search bounds used by
// MatchingAnnotator. A nil *Thresholds passed to NewMatchingAnnotator is
// equivalent to DefaultThresholds().
type Thresholds struct {
	// ShortTokenBoundary is the (whitespace-split) token count at or
	// below which a target value is evaluated under the short-target
	// near-exact regime rather than the long-target ratio regime.
	ShortTokenBoundary int

	// TShort is the minimum fuzzy.Ratio a short target must reach to be
	// accepted.
	TShort float64

	// TGap is the minimum fuzzy.BGapRatio a long target must reach to
	// be accepted.
	TGap float64

	// TB is the minimum fuzzy.BRatio a long target must reach to be
	// accepted.
	TB float64

	// MultiLineLookahead bounds how many lines beyond a candidate's
	// starting line its window may extend into, so a target value may
	// span a line break.
	MultiLineLookahead int

	// BondingWindow is the maximum line distance allowed between a
	// bonded occurrence and the previously accepted occurrence of the
	// same tag name, whether that prior occurrence came from the same
	// TargetAnnotation or a different one sharing the tag.
	BondingWindow int

	// CandidateFanout bounds how many coarse candidates, ranked by
	// trigram Jaccard similarity, are passed through the exact fuzzy
	// matcher per search.
	CandidateFanout int
}

// DefaultThresholds returns the thresholds used when MatchingAnnotator is
// constructed without an explicit Thresholds value.
func DefaultThresholds() *Thresholds {
	return &Thresholds{
		ShortTokenBoundary: 3,
		TShort:             0.97,
		TGap:               0.8,
		TB:                 0.5,
		MultiLineLookahead: 2,
		BondingWindow:      2,
		CandidateFanout:    8,
	}
}

// MatchingAnnotator locates TargetAnnotations within a Document and
// tags the matching tokens.
type MatchingAnnotator struct {
	th *Thresholds
}

// NewMatchingAnnotator returns a MatchingAnnotator configured with th, or
// with DefaultThresholds() if th is nil.
func NewMatchingAnnotator(th *Thresholds) *MatchingAnnotator {
	if th == nil {
		th = DefaultThresholds()
	}
	return &MatchingAnnotator{th: th}
}

type charRange struct{ start, end int }

func (r charRange) overlaps(o charRange) bool {
	return r.start < o.end && o.start < r.end
}

// Annotate locates every TargetAnnotation's value(s) within doc and
// tags the matching tokens with the TargetAnnotation's Name. Targets are
// processed in the order given; TargetAnnotation.Value is never
// reordered. Already-tagged tokens are never overwritten.
func (a *MatchingAnnotator) Annotate(doc Document, targets []TargetAnnotation) error {
	if doc == nil {
		return ErrNilDocument
	}
	for _, line := range doc.Lines() {
		if line == nil {
			return errors.New("annotation: nil line in document")
		}
		for _, tok := range line.Tokens() {
			if tok == nil {
				return errors.New("annotation: nil token in document")
			}
		}
	}

	h := buildHaystack(doc)
	var consumed []charRange

	// bondAnchors tracks, per tag name, the line of the most recently
	// accepted occurrence. It is shared across every TargetAnnotation
	// with that name so that a bonding group spanning several distinct
	// TargetAnnotations (e.g. a list entry followed by a later,
	// separately-declared target with the same tag) clusters together,
	// not just the entries within a single list Value.
	bondAnchors := make(map[string]int)

	for _, target := range targets {
		a.annotateTarget(h, &consumed, bondAnchors, target)
	}
	return nil
}

func (a *MatchingAnnotator) annotateTarget(h *haystack, consumed *[]charRange, bondAnchors map[string]int, target TargetAnnotation) {
	values := target.Value.Strings()

	for _, val := range values {
		val = strings.TrimSpace(val)
		if val == "" {
			slog.Warn("annotation: skipping malformed (empty) target value", "tag", target.Name)
			continue
		}

		found := false
		for {
			lastAcceptedLine, ok := bondAnchors[target.Name]
			if !ok {
				lastAcceptedLine = -1
			}
			m := a.findBestMatch(h, val, *consumed, lastAcceptedLine, target.Bonding)
			if m == nil {
				break
			}
			a.tagSpan(h, m.startTok, m.endTok, target.Name)
			*consumed = append(*consumed, charRange{start: m.charStart, end: m.charEnd})
			bondAnchors[target.Name] = h.refs[m.endTok].lineIndex
			found = true
			if !target.MatchMultiple {
				break
			}
		}
		if !found {
			slog.Debug("annotation: no match found for target value", "tag", target.Name)
		}
	}
}

// tagSpan sets tag on every token in [startTok, endTok] that does not
// already carry a tag. Already-tagged tokens are left untouched.
func (a *MatchingAnnotator) tagSpan(h *haystack, startTok, endTok int, tag string) {
	for i := startTok; i <= endTok && i < len(h.refs); i++ {
		tok := h.refs[i].token
		if tok.Tag() != "" {
			continue
		}
		tok.SetTag(tag)
	}
}

type acceptedMatch struct {
	startTok, endTok   int
	charStart, charEnd int
}

// findBestMatch searches the haystack for the best window matching val,
// subject to the bonding constraint (if bonding is true and
// lastAcceptedLine >= 0) and to avoiding any already-consumed character
// range. It returns nil if no window is acceptable.
func (a *MatchingAnnotator) findBestMatch(h *haystack, val string, consumed []charRange, lastAcceptedLine int, bonding bool) *acceptedMatch {
	valNorm := normalize.Normalize(val)
	candidates := a.generateCandidates(h, len(valNorm), consumed)
	if len(candidates) == 0 {
		return nil
	}

	jaccard := metrics.NewJaccard()
	jaccard.NgramSize = 3
	jaccard.CaseSensitive = true // text is already normalized/case-folded

	sort.Slice(candidates, func(i, j int) bool {
		si := strutil.Similarity(valNorm, h.text[candidates[i].charStart:candidates[i].charEnd], jaccard)
		sj := strutil.Similarity(valNorm, h.text[candidates[j].charStart:candidates[j].charEnd], jaccard)
		return si > sj
	})

	fanout := a.th.CandidateFanout
	if fanout > len(candidates) {
		fanout = len(candidates)
	}

	valTokenCount := len(strings.Fields(valNorm))
	shortRegime := valTokenCount <= a.th.ShortTokenBoundary

	var best *acceptedMatch
	var bestFr *fuzzy.FuzzyMatchResult
	for _, cand := range candidates[:fanout] {
		startLine := h.refs[cand.startTok].lineIndex
		if bonding && lastAcceptedLine >= 0 {
			dist := startLine - lastAcceptedLine
			if dist < 0 {
				dist = -dist
			}
			if dist > a.th.BondingWindow {
				continue
			}
		}

		// a is the haystack window, b is the target value: BRatio/
		// BGapRatio must measure coverage of the target (spec's b),
		// not of the window, so the long-target regime actually
		// enforces "at least T_b of the target is present" rather
		// than trivially passing on the window's own matched span.
		windowText := h.text[cand.charStart:cand.charEnd]
		fr := fuzzy.MatchWithJunk(windowText, valNorm, normalize.DefaultIsJunk)

		accepted := false
		if shortRegime {
			accepted = fr.Ratio() >= a.th.TShort
		} else {
			accepted = fr.BGapRatio() >= a.th.TGap && fr.BRatio() >= a.th.TB
		}
		if !accepted {
			continue
		}

		// AIndexRange is in runes of windowText; the offset table is in
		// bytes of h.text, so convert before projecting onto tokens.
		iMin, iMax := fr.AIndexRange()
		windowRunes := []rune(windowText)
		byteMin := len(string(windowRunes[:iMin]))
		byteMax := len(string(windowRunes[:iMax]))
		startTok, endTok, ok := h.fullyCoveredTokenSpan(cand.charStart+byteMin, cand.charStart+byteMax)
		if !ok {
			continue
		}
		candidate := &acceptedMatch{
			startTok:  startTok,
			endTok:    endTok,
			charStart: h.refs[startTok].charStart,
			charEnd:   h.refs[endTok].charEnd,
		}

		if best == nil || betterMatch(fr, candidate, bestFr, best) {
			best = candidate
			bestFr = fr
		}
	}
	return best
}

// betterMatch implements the local-vs-global preference order: maximize
// BGapRatio, then MatchCount, then prefer the earlier position.
func betterMatch(fr *fuzzy.FuzzyMatchResult, m *acceptedMatch, bestFr *fuzzy.FuzzyMatchResult, best *acceptedMatch) bool {
	if fr.BGapRatio() != bestFr.BGapRatio() {
		return fr.BGapRatio() > bestFr.BGapRatio()
	}
	if fr.MatchCount() != bestFr.MatchCount() {
		return fr.MatchCount() > bestFr.MatchCount()
	}
	return m.charStart < best.charStart
}

type candidateWindow struct {
	charStart, charEnd int
	startTok, endTok   int
}

// generateCandidates produces O(n) candidate windows: one family per
// starting token, extended token-by-token until either the window
// exceeds valLen*2+8 bytes or crosses the multi-line lookahead
// boundary, skipping any window overlapping an already-consumed range.
func (a *MatchingAnnotator) generateCandidates(h *haystack, valLen int, consumed []charRange) []candidateWindow {
	var out []candidateWindow
	maxLen := valLen*2 + 8

	for i := range h.refs {
		startLine := h.refs[i].lineIndex
		for j := i; j < len(h.refs); j++ {
			if h.refs[j].lineIndex > startLine+a.th.MultiLineLookahead {
				break
			}
			charStart := h.refs[i].charStart
			charEnd := h.refs[j].charEnd
			if charEnd-charStart > maxLen {
				break
			}
			cr := charRange{start: charStart, end: charEnd}
			consumedHere := false
			for _, c := range consumed {
				if cr.overlaps(c) {
					consumedHere = true
					break
				}
			}
			if consumedHere {
				continue
			}
			// No lower bound on window length: a long target may be
			// accepted against a haystack window covering only its
			// prefix (long-target regime), so short windows must stay
			// eligible too.
			out = append(out, candidateWindow{charStart: charStart, charEnd: charEnd, startTok: i, endTok: j})
		}
	}
	return out
}

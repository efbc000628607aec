// Package phrase holds the immutable data model operators read and write:
// words, phrase pairs anchored to a source sentence, and the ordered
// segmentation of one sentence into such pairs.
package phrase

import "math/bits"

// #region word
// Word is an opaque token identifier.
type Word int32
// #endregion word

// #region coverage
// CoverageBitmap is a bitset over source positions of one sentence. It is
// sized in whole uint64 words; positions beyond the configured length are
// never set by this package's own constructors.
type CoverageBitmap struct {
	words []uint64
	n     int // number of source positions this bitmap covers
}

// NewCoverageBitmap returns a zeroed bitmap over n source positions.
func NewCoverageBitmap(n int) CoverageBitmap {
	return CoverageBitmap{words: make([]uint64, (n+63)/64), n: n}
}

// RangeCoverage returns a bitmap with bits [start, end) set.
func RangeCoverage(n, start, end int) CoverageBitmap {
	c := NewCoverageBitmap(n)
	for i := start; i < end; i++ {
		c.Set(i)
	}
	return c
}

// Set marks position i as covered.
func (c CoverageBitmap) Set(i int) {
	c.words[i/64] |= 1 << uint(i%64)
}

// Test reports whether position i is covered.
func (c CoverageBitmap) Test(i int) bool {
	return c.words[i/64]&(1<<uint(i%64)) != 0
}

// Len returns the sentence length this bitmap is sized for.
func (c CoverageBitmap) Len() int { return c.n }

// PopCount returns the number of set bits.
func (c CoverageBitmap) PopCount() int {
	total := 0
	for _, w := range c.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// Union returns the bitwise OR of c and other. Both must share Len().
func (c CoverageBitmap) Union(other CoverageBitmap) CoverageBitmap {
	out := NewCoverageBitmap(c.n)
	for i := range c.words {
		out.words[i] = c.words[i] | other.words[i]
	}
	return out
}

// Equal reports whether two bitmaps over the same length cover identical
// positions.
func (c CoverageBitmap) Equal(other CoverageBitmap) bool {
	if c.n != other.n {
		return false
	}
	for i := range c.words {
		if c.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// MinPosition returns the lowest covered position, or -1 if none are set.
func (c CoverageBitmap) MinPosition() int {
	for i := 0; i < c.n; i++ {
		if c.Test(i) {
			return i
		}
	}
	return -1
}
// #endregion coverage

// #region pair
// PhrasePair is an immutable source-coverage/target-words atomic
// translation unit.
type PhrasePair struct {
	Coverage CoverageBitmap
	Target   []Word
}

// AnchoredPhrasePair is a PhrasePair bound to its source sentence. Equality
// and ordering are defined by the anchor (source coverage), then content.
type AnchoredPhrasePair struct {
	PhrasePair
	SentenceIndex int
}

// CompareByAnchor imposes the canonical left-to-right order by minimum
// covered source position, breaking ties by target content length then
// value.
func CompareByAnchor(a, b AnchoredPhrasePair) int {
	pa, pb := a.Coverage.MinPosition(), b.Coverage.MinPosition()
	if pa != pb {
		if pa < pb {
			return -1
		}
		return 1
	}
	if len(a.Target) != len(b.Target) {
		if len(a.Target) < len(b.Target) {
			return -1
		}
		return 1
	}
	for i := range a.Target {
		if a.Target[i] != b.Target[i] {
			if a.Target[i] < b.Target[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SameContent reports whether two anchored pairs cover the same positions
// and carry identical target words — used by operators to detect a
// resampled pair that is in fact the same pair (a no-op proposal).
func SameContent(a, b AnchoredPhrasePair) bool {
	if !a.Coverage.Equal(b.Coverage) {
		return false
	}
	if len(a.Target) != len(b.Target) {
		return false
	}
	for i := range a.Target {
		if a.Target[i] != b.Target[i] {
			return false
		}
	}
	return true
}
// #endregion pair

// #region segmentation
// PhraseSegmentation is the ordered sequence of AnchoredPhrasePair covering
// one sentence; order is the target-side output order.
type PhraseSegmentation []AnchoredPhrasePair

// Clone returns an independent copy of the segmentation (the pairs
// themselves are immutable and shared).
func (s PhraseSegmentation) Clone() PhraseSegmentation {
	out := make(PhraseSegmentation, len(s))
	copy(out, s)
	return out
}

// Coverage returns the union of every pair's source coverage.
func (s PhraseSegmentation) Coverage(sentenceLen int) CoverageBitmap {
	c := NewCoverageBitmap(sentenceLen)
	for _, p := range s {
		c = c.Union(p.Coverage)
	}
	return c
}

// IsMonotonicByAnchor reports whether the segmentation is already ordered
// by ascending source anchor — used by LinearisePhrases to detect a no-op.
func (s PhraseSegmentation) IsMonotonicByAnchor() bool {
	for i := 1; i < len(s); i++ {
		if CompareByAnchor(s[i-1], s[i]) > 0 {
			return false
		}
	}
	return true
}
// #endregion segmentation

// #region diff
// CommonPrefixLen returns the number of leading elements a and b share,
// compared by SameContent.
func CommonPrefixLen(a, b PhraseSegmentation) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && SameContent(a[i], b[i]) {
		i++
	}
	return i
}

// CommonSuffixLen returns the number of trailing elements a and b share,
// compared by SameContent, without overlapping into a shared prefix of
// length prefixLen already accounted for by the caller. It caps the result
// so that prefix and suffix never overlap.
func CommonSuffixLen(a, b PhraseSegmentation, prefixLen int) int {
	la, lb := len(a), len(b)
	max := la - prefixLen
	if lb-prefixLen < max {
		max = lb - prefixLen
	}
	i := 0
	for i < max && SameContent(a[la-1-i], b[lb-1-i]) {
		i++
	}
	return i
}
// #endregion diff

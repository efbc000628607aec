// Package transport provides PhrasePairCollection implementations: an
// in-memory Static collection for tests and offline runs, and a gRPC Client
// adapter to a remote phrase-table/segmenter service.
package transport

import (
	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/rng"
)

// #region static
// Static is an in-memory PhrasePairCollection backed by a fixed candidate
// table, used by cmd/propose, cmd/replay and by tests.
type Static struct {
	sentenceLen int
	full        phrase.PhraseSegmentation
	// alternatives maps a covered span's minimum position to the pool of
	// candidate pairs ProposeAlternativeTranslation draws from.
	alternatives map[int][]phrase.AnchoredPhrasePair
	rng          *rng.Source
}

// NewStatic returns a Static collection seeded with the full-sentence
// segmentation and a per-span alternatives pool.
func NewStatic(sentenceLen int, full phrase.PhraseSegmentation, alternatives map[int][]phrase.AnchoredPhrasePair, source *rng.Source) *Static {
	return &Static{sentenceLen: sentenceLen, full: full, alternatives: alternatives, rng: source}
}

func (s *Static) ProposeAlternativeTranslation(existing phrase.AnchoredPhrasePair) phrase.AnchoredPhrasePair {
	pool := s.alternatives[existing.Coverage.MinPosition()]
	if len(pool) == 0 {
		return existing
	}
	return pool[s.rng.UniformInt(len(pool))]
}

func (s *Static) ProposeSegmentation(coverage phrase.CoverageBitmap) phrase.PhraseSegmentation {
	if coverage.Len() == 0 {
		return s.full
	}
	var out phrase.PhraseSegmentation
	for _, pair := range s.full {
		if pair.Coverage.PopCount() == 0 {
			continue
		}
		if coverageContains(coverage, pair.Coverage) {
			out = append(out, pair)
		}
	}
	return out
}

func coverageContains(outer, inner phrase.CoverageBitmap) bool {
	for i := 0; i < inner.Len(); i++ {
		if inner.Test(i) && !outer.Test(i) {
			return false
		}
	}
	return true
}

func (s *Static) PhrasesExist(seg phrase.PhraseSegmentation) bool {
	for _, p := range seg {
		found := false
		candidates := append(s.full.Clone(), s.alternatives[p.Coverage.MinPosition()]...)
		for _, c := range candidates {
			if phrase.SameContent(p, c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *Static) SentenceLength() int { return s.sentenceLen }

var _ docstate.PhrasePairCollection = (*Static)(nil)
// #endregion static

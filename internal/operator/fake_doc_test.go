package operator

import (
	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/rng"
)

// fakeCollection is a minimal PhrasePairCollection test double: alternative
// translations and resegmentations are supplied by the test up front.
type fakeCollection struct {
	sentenceLen int
	altFor      map[int]phrase.AnchoredPhrasePair // keyed by MinPosition of existing
	resegFor    phrase.PhraseSegmentation         // pairs ProposeSegmentation draws from
}

func (c *fakeCollection) ProposeAlternativeTranslation(existing phrase.AnchoredPhrasePair) phrase.AnchoredPhrasePair {
	if alt, ok := c.altFor[existing.Coverage.MinPosition()]; ok {
		return alt
	}
	return existing
}

// ProposeSegmentation returns resegFor for a full-sentence request, and
// otherwise the pairs of resegFor that lie inside coverage.
func (c *fakeCollection) ProposeSegmentation(coverage phrase.CoverageBitmap) phrase.PhraseSegmentation {
	if coverage.Len() == 0 {
		return c.resegFor
	}
	var out phrase.PhraseSegmentation
	for _, p := range c.resegFor {
		if p.Coverage.Union(coverage).Equal(coverage) {
			out = append(out, p)
		}
	}
	return out
}

func (c *fakeCollection) PhrasesExist(seg phrase.PhraseSegmentation) bool { return true }

func (c *fakeCollection) SentenceLength() int { return c.sentenceLen }

// fakeDoc is a minimal single-sentence-focused DocumentState test double.
type fakeDoc struct {
	segs  []phrase.PhraseSegmentation
	colls []docstate.PhrasePairCollection
	rng   *rng.Source
	next  int // fixed sequence of DrawSentence results; wraps around
}

func (d *fakeDoc) SentenceCount() int { return len(d.segs) }

func (d *fakeDoc) Segmentation(i int) phrase.PhraseSegmentation { return d.segs[i] }

func (d *fakeDoc) Collection(i int) docstate.PhrasePairCollection { return d.colls[i] }

func (d *fakeDoc) FeatureState() interface{} { return nil }

func (d *fakeDoc) RNG() *rng.Source { return d.rng }

func (d *fakeDoc) DrawSentence() int {
	i := d.next % len(d.segs)
	d.next++
	return i
}

// wordPair builds a single-slot anchored pair covering [start,end) of a
// sentence of length n, with the given target words.
func wordPair(n, start, end int, words ...phrase.Word) phrase.AnchoredPhrasePair {
	return phrase.AnchoredPhrasePair{
		PhrasePair: phrase.PhrasePair{
			Coverage: phrase.RangeCoverage(n, start, end),
			Target:   words,
		},
	}
}

package operator

import (
	"fmt"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region permute-phrases
const shuffleRetryTrials = 10

// PermutePhrases shuffles a short contiguous run of phrases, emitting only
// the trimmed middle that actually differs from the original.
type PermutePhrases struct {
	Decay float64
}

// NewPermutePhrases returns a PermutePhrases operator with the given
// phrase-permutation-decay.
func NewPermutePhrases(decay float64) *PermutePhrases {
	return &PermutePhrases{Decay: decay}
}

func (o *PermutePhrases) Description() string {
	return fmt.Sprintf("permute-phrases(decay=%.4f)", o.Decay)
}

func (o *PermutePhrases) Propose(doc docstate.DocumentState) (*searchstep.Step, bool) {
	sentno, size, ok := drawSentenceWithMinPhrases(doc)
	if !ok {
		return nil, false
	}

	seg := doc.Segmentation(sentno)
	start, n := selectRun(doc, size, o.Decay)
	run := seg[start : start+n]

	shuffled, ok := shuffleUntilDifferent(doc, run)
	if !ok {
		return nil, false
	}

	p := phrase.CommonPrefixLen(run, shuffled)
	q := phrase.CommonSuffixLen(run, shuffled, p)
	mid := n - p - q
	if mid <= 0 {
		return nil, false
	}

	step := searchstep.New(o.Description(), doc.FeatureState())
	step.AddModification(searchstep.Modification{
		SentenceIndex: sentno,
		Start:         start + p,
		End:           start + n - q,
		Old:           run[p : n-q],
		New:           shuffled[p : n-q],
	})
	return step, true
}

// shuffleUntilDifferent draws a uniform random permutation of run, retrying
// up to shuffleRetryTrials times if the result is identical to run.
func shuffleUntilDifferent(doc docstate.DocumentState, run phrase.PhraseSegmentation) (phrase.PhraseSegmentation, bool) {
	for trial := 0; trial < shuffleRetryTrials; trial++ {
		candidate := run.Clone()
		rng := doc.RNG()
		for i := len(candidate) - 1; i > 0; i-- {
			j := rng.UniformInt(i + 1)
			candidate[i], candidate[j] = candidate[j], candidate[i]
		}
		if !segmentationsIdentical(run, candidate) {
			return candidate, true
		}
	}
	return nil, false
}

func segmentationsIdentical(a, b phrase.PhraseSegmentation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !phrase.SameContent(a[i], b[i]) {
			return false
		}
	}
	return true
}
// #endregion permute-phrases

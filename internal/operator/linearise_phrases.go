package operator

import (
	"fmt"
	"sort"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region linearise-phrases
// LinearisePhrases sorts a short contiguous run of phrases into ascending
// source-anchor order, encouraging monotone target output, emitting only
// the trimmed middle that actually differs from the original.
type LinearisePhrases struct {
	Decay float64
}

// NewLinearisePhrases returns a LinearisePhrases operator with the given
// phrase-linearisation-decay.
func NewLinearisePhrases(decay float64) *LinearisePhrases {
	return &LinearisePhrases{Decay: decay}
}

func (o *LinearisePhrases) Description() string {
	return fmt.Sprintf("linearise-phrases(decay=%.4f)", o.Decay)
}

func (o *LinearisePhrases) Propose(doc docstate.DocumentState) (*searchstep.Step, bool) {
	sentno, size, ok := drawSentenceWithMinPhrases(doc)
	if !ok {
		return nil, false
	}

	seg := doc.Segmentation(sentno)
	start, n := selectRun(doc, size, o.Decay)
	run := seg[start : start+n]

	if run.IsMonotonicByAnchor() {
		return nil, false
	}

	sorted := run.Clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		return phrase.CompareByAnchor(sorted[i], sorted[j]) < 0
	})

	p := phrase.CommonPrefixLen(run, sorted)
	q := phrase.CommonSuffixLen(run, sorted, p)
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
		New:           sorted[p : n-q],
	})
	return step, true
}
// #endregion linearise-phrases

package operator

import (
	"fmt"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region resegment
// Resegment replaces a contiguous run of phrases with a fresh segmentation
// of the exact same source coverage, drawn from the phrase table.
type Resegment struct {
	Decay float64
}

// NewResegment returns a Resegment operator with the given
// phrase-resegmentation-decay.
func NewResegment(decay float64) *Resegment {
	return &Resegment{Decay: decay}
}

func (o *Resegment) Description() string {
	return fmt.Sprintf("resegment(decay=%.4f)", o.Decay)
}

func (o *Resegment) Propose(doc docstate.DocumentState) (*searchstep.Step, bool) {
	sentno := doc.DrawSentence()
	seg := doc.Segmentation(sentno)
	size := len(seg)
	if size == 0 {
		return nil, false
	}

	start, n := selectRun(doc, size, o.Decay)
	run := seg[start : start+n]

	sentenceLen := doc.Collection(sentno).SentenceLength()
	coverage := run.Coverage(sentenceLen)

	replacement := doc.Collection(sentno).ProposeSegmentation(coverage)

	p := phrase.CommonPrefixLen(run, replacement)
	q := phrase.CommonSuffixLen(run, replacement, p)
	if p+q >= len(run) && p+q >= len(replacement) {
		return nil, false
	}

	step := searchstep.New(o.Description(), doc.FeatureState())
	step.AddModification(searchstep.Modification{
		SentenceIndex: sentno,
		Start:         start + p,
		End:           start + n - q,
		Old:           run[p : n-q],
		New:           replacement[p : len(replacement)-q],
	})
	return step, true
}
// #endregion resegment

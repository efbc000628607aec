// Package searchstep defines the compact diff object every proposal
// operator emits: an ordered list of half-open phrase-range replacements
// within one sentence, plus the document's feature-state value for scoring
// by the (external) acceptor.
package searchstep

import (
	"github.com/google/uuid"

	"github.com/corvid-labs/segforge/internal/phrase"
)

// #region modification
// Modification replaces the half-open range [Start, End) of the current
// segmentation for sentence SentenceIndex with New. Old is preserved
// unmodified so the acceptor can undo the change without recomputing it.
type Modification struct {
	SentenceIndex int
	Start         int
	End           int
	Old           phrase.PhraseSegmentation
	New           phrase.PhraseSegmentation
}
// #endregion modification

// #region step
// Step is one candidate move: an operator tag, a feature-state snapshot,
// and the modifications that together describe the proposed new
// state. A Step with zero modifications is never returned to the dispatcher
// caller; operators signal "no proposal" instead of constructing one.
type Step struct {
	ID              string
	OperatorTag     string
	FeatureSnapshot interface{}
	Modifications   []Modification
}

// New starts a Step for the named operator, storing featureState as its
// snapshot. The value is not cloned: the Step shares it with the caller.
func New(operatorTag string, featureState interface{}) *Step {
	return &Step{
		ID:              uuid.New().String(),
		OperatorTag:     operatorTag,
		FeatureSnapshot: featureState,
	}
}

// AddModification appends one replacement to the step.
func (s *Step) AddModification(m Modification) {
	s.Modifications = append(s.Modifications, m)
}

// Empty reports whether the step carries no modifications — the dispatcher
// discards such steps and retries.
func (s *Step) Empty() bool {
	return len(s.Modifications) == 0
}

// SentencesTouched returns the distinct sentence indices this step's
// modifications apply to, printed by cmd/propose for each emitted step.
func (s *Step) SentencesTouched() []int {
	seen := map[int]bool{}
	var out []int
	for _, m := range s.Modifications {
		if !seen[m.SentenceIndex] {
			seen[m.SentenceIndex] = true
			out = append(out, m.SentenceIndex)
		}
	}
	return out
}
// #endregion step

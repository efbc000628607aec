// Package operator implements the family of randomised mutation operators:
// given a document state, each proposes a search step or signals no
// proposal.
package operator

import (
	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region contract
// Operator is the shared contract every mutation family implements.
type Operator interface {
	// Description returns a human-readable tag including parameter values,
	// used for logging and the proposal log.
	Description() string

	// Propose reads doc and either returns a step with non-empty
	// modifications, or ok == false to signal no proposal.
	Propose(doc docstate.DocumentState) (step *searchstep.Step, ok bool)
}
// #endregion contract

// #region preamble
const preambleTrials = 10

// drawSentenceWithMinPhrases runs the common preamble shared by every
// operator that needs at least two phrases: it resamples a sentence up to
// preambleTrials times looking for one whose current segmentation has at
// least two phrases, and reports failure if none is found.
func drawSentenceWithMinPhrases(doc docstate.DocumentState) (sentno, size int, ok bool) {
	for trial := 0; trial < preambleTrials; trial++ {
		sentno = doc.DrawSentence()
		size = len(doc.Segmentation(sentno))
		if size >= 2 {
			return sentno, size, true
		}
	}
	return 0, 0, false
}
// #endregion preamble

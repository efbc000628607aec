package operator

import (
	"fmt"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region move-phrases
// MovePhrases relocates a contiguous block of phrases to a new position
// within the same sentence, emitting an insert at the destination and a
// delete at the origin against the original segmentation.
type MovePhrases struct {
	BlockSizeDecay      float64
	RightMovePreference float64
	RightDistanceDecay  float64
	LeftDistanceDecay   float64
}

// DefaultMovePhrasesConfig returns the documented default for
// right-move-preference with the decay parameters left for the caller to
// set.
func DefaultMovePhrasesConfig() MovePhrases {
	return MovePhrases{RightMovePreference: 0.5}
}

// NewMovePhrases returns a MovePhrases operator from the given parameters.
func NewMovePhrases(blockSizeDecay, rightMovePreference, rightDistanceDecay, leftDistanceDecay float64) *MovePhrases {
	return &MovePhrases{
		BlockSizeDecay:      blockSizeDecay,
		RightMovePreference: rightMovePreference,
		RightDistanceDecay:  rightDistanceDecay,
		LeftDistanceDecay:   leftDistanceDecay,
	}
}

func (o *MovePhrases) Description() string {
	return fmt.Sprintf(
		"move-phrases(block-decay=%.4f, right-pref=%.4f, right-decay=%.4f, left-decay=%.4f)",
		o.BlockSizeDecay, o.RightMovePreference, o.RightDistanceDecay, o.LeftDistanceDecay,
	)
}

func (o *MovePhrases) Propose(doc docstate.DocumentState) (*searchstep.Step, bool) {
	sentno, size, ok := drawSentenceWithMinPhrases(doc)
	if !ok {
		return nil, false
	}
	rng := doc.RNG()
	seg := doc.Segmentation(sentno)

	right := rng.Coin(o.RightMovePreference)
	block := rng.Geometric(o.BlockSizeDecay, size-2) + 1
	start := rng.UniformInt(size - block)
	if !right {
		start++
	}

	var dest int
	if right {
		if start+block == size-1 {
			dest = size
		} else {
			rangeN := size - start - block
			dist := rng.Geometric(o.RightDistanceDecay, rangeN-1) + 1
			dest = start + block + dist
		}
	} else {
		if start == 1 {
			dest = 0
		} else {
			dist := rng.Geometric(o.LeftDistanceDecay, start-1) + 1
			dest = start - dist
		}
	}
	if dest < 0 || dest > size {
		return nil, false
	}

	step := searchstep.New(o.Description(), doc.FeatureState())
	blockContent := seg[start : start+block].Clone()
	step.AddModification(searchstep.Modification{
		SentenceIndex: sentno,
		Start:         dest,
		End:           dest,
		Old:           phrase.PhraseSegmentation{},
		New:           blockContent,
	})
	step.AddModification(searchstep.Modification{
		SentenceIndex: sentno,
		Start:         start,
		End:           start + block,
		Old:           blockContent,
		New:           phrase.PhraseSegmentation{},
	})
	return step, true
}
// #endregion move-phrases

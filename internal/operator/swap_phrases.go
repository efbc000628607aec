package operator

import (
	"fmt"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region swap-phrases
// SwapPhrases exchanges the contents of two phrase slots, one drawn
// uniformly and the other at a geometrically-distributed distance toward a
// direction chosen to stay within the sentence boundary.
type SwapPhrases struct {
	DistanceDecay float64
}

// NewSwapPhrases returns a SwapPhrases operator with the given
// swap-distance-decay.
func NewSwapPhrases(distanceDecay float64) *SwapPhrases {
	return &SwapPhrases{DistanceDecay: distanceDecay}
}

func (o *SwapPhrases) Description() string {
	return fmt.Sprintf("swap-phrases(decay=%.4f)", o.DistanceDecay)
}

func (o *SwapPhrases) Propose(doc docstate.DocumentState) (*searchstep.Step, bool) {
	sentno, size, ok := drawSentenceWithMinPhrases(doc)
	if !ok {
		return nil, false
	}
	rng := doc.RNG()
	seg := doc.Segmentation(sentno)

	phrase1 := rng.UniformInt(size)

	var right bool
	switch {
	case phrase1 == 0:
		right = true
	case phrase1 == size-1:
		right = false
	default:
		right = rng.Coin(0.5)
	}

	var phrase2 int
	if right {
		room := size - 1 - phrase1
		if room == 1 {
			phrase2 = phrase1 + 1
		} else {
			phrase2 = phrase1 + 1 + rng.Geometric(o.DistanceDecay, room-1)
		}
	} else {
		room := phrase1
		if room == 1 {
			phrase2 = phrase1 - 1
		} else {
			phrase2 = phrase1 - 1 - rng.Geometric(o.DistanceDecay, room-1)
		}
	}

	if phrase1 == phrase2 {
		return nil, false
	}

	step := searchstep.New(o.Description(), doc.FeatureState())
	step.AddModification(searchstep.Modification{
		SentenceIndex: sentno,
		Start:         phrase1,
		End:           phrase1 + 1,
		Old:           phrase.PhraseSegmentation{seg[phrase1]},
		New:           phrase.PhraseSegmentation{seg[phrase2]},
	})
	step.AddModification(searchstep.Modification{
		SentenceIndex: sentno,
		Start:         phrase2,
		End:           phrase2 + 1,
		Old:           phrase.PhraseSegmentation{seg[phrase2]},
		New:           phrase.PhraseSegmentation{seg[phrase1]},
	})
	return step, true
}
// #endregion swap-phrases

package operator

import (
	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region change-phrase-translation
// ChangePhraseTranslation replaces one phrase's translation with an
// alternative drawn from the phrase table, unchanged if the draw returns
// the same pair.
type ChangePhraseTranslation struct{}

// NewChangePhraseTranslation returns a ChangePhraseTranslation operator; it
// takes no parameters.
func NewChangePhraseTranslation() *ChangePhraseTranslation {
	return &ChangePhraseTranslation{}
}

func (o *ChangePhraseTranslation) Description() string {
	return "change-phrase-translation"
}

func (o *ChangePhraseTranslation) Propose(doc docstate.DocumentState) (*searchstep.Step, bool) {
	sentno := doc.DrawSentence()
	seg := doc.Segmentation(sentno)
	size := len(seg)
	if size == 0 {
		return nil, false
	}

	ph := doc.RNG().UniformInt(size)
	oldPair := seg[ph]
	newPair := doc.Collection(sentno).ProposeAlternativeTranslation(oldPair)
	if phrase.SameContent(oldPair, newPair) {
		return nil, false
	}

	step := searchstep.New(o.Description(), doc.FeatureState())
	step.AddModification(searchstep.Modification{
		SentenceIndex: sentno,
		Start:         ph,
		End:           ph + 1,
		Old:           phrase.PhraseSegmentation{oldPair},
		New:           phrase.PhraseSegmentation{newPair},
	})
	return step, true
}
// #endregion change-phrase-translation

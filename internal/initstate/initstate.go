// Package initstate implements the two state-initialiser variants that seed
// each sentence's starting phrase segmentation at document load time.
package initstate

import (
	"fmt"
	"os"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/wire"
)

// #region errors
// ErrUnknownMethod is returned by New for an unrecognised initialiser
// method key.
var ErrUnknownMethod = fmt.Errorf("unknown initialiser method")

// ErrPhraseNotInTable is returned by Replay.InitSegmentation when a saved
// segmentation references a pair absent from the current phrase table.
var ErrPhraseNotInTable = fmt.Errorf("saved-state segmentation references a phrase not in the current table")
// #endregion errors

// #region contract
// Initialiser produces the initial phrase segmentation for one sentence of
// one document.
type Initialiser interface {
	InitSegmentation(coll docstate.PhrasePairCollection, sentenceWords []phrase.Word, documentNumber, sentenceNumber int) (phrase.PhraseSegmentation, error)
}

// New selects an initialiser variant by configuration key. Recognised keys
// are "monotonic" and "saved-state" (which additionally requires params["file"]).
func New(method string, params map[string]string) (Initialiser, error) {
	switch method {
	case "monotonic":
		return &Monotonic{}, nil
	case "saved-state":
		path, ok := params["file"]
		if !ok || path == "" {
			return nil, fmt.Errorf("initstate: saved-state method requires a \"file\" parameter")
		}
		return LoadReplay(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}
// #endregion contract

// #region monotonic
// Monotonic seeds each sentence with the phrase table's own full-sentence
// proposal — typically a left-to-right greedy covering.
type Monotonic struct{}

func (m *Monotonic) InitSegmentation(coll docstate.PhrasePairCollection, sentenceWords []phrase.Word, documentNumber, sentenceNumber int) (phrase.PhraseSegmentation, error) {
	return coll.ProposeSegmentation(phrase.CoverageBitmap{}), nil
}
// #endregion monotonic

// #region replay
// Replay deserializes a nested documents-of-sentences segmentation set at
// construction time and replays one saved segmentation per
// InitSegmentation call, verifying every pair still exists in the current
// phrase table.
type Replay struct {
	segmentations [][]phrase.PhraseSegmentation
}

// LoadReplay reads and deserializes the saved-state file at path.
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("initstate: read saved-state file %q: %w", path, err)
	}
	docs, err := wire.DecodeDocuments(data)
	if err != nil {
		return nil, fmt.Errorf("initstate: decode saved-state file %q: %w", path, err)
	}
	return &Replay{segmentations: docs}, nil
}

func (r *Replay) InitSegmentation(coll docstate.PhrasePairCollection, sentenceWords []phrase.Word, documentNumber, sentenceNumber int) (phrase.PhraseSegmentation, error) {
	if documentNumber < 0 || documentNumber >= len(r.segmentations) {
		return nil, fmt.Errorf("initstate: saved-state has no document %d", documentNumber)
	}
	sentences := r.segmentations[documentNumber]
	if sentenceNumber < 0 || sentenceNumber >= len(sentences) {
		return nil, fmt.Errorf("initstate: saved-state document %d has no sentence %d", documentNumber, sentenceNumber)
	}
	seg := sentences[sentenceNumber]
	if !coll.PhrasesExist(seg) {
		return nil, fmt.Errorf("initstate: document %d sentence %d: %w", documentNumber, sentenceNumber, ErrPhraseNotInTable)
	}
	return seg, nil
}

// WriteReplayFile serializes docs (and each sentence's declared length, as
// given by the caller in sentenceLens) to path, for use by a
// later saved-state run. Kept alongside Replay because it is the writer
// half of the same round-trip contract.
func WriteReplayFile(path string, docs [][]phrase.PhraseSegmentation, sentenceLens [][]int) error {
	data := wire.EncodeDocuments(docs, sentenceLens)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("initstate: write saved-state file %q: %w", path, err)
	}
	return nil
}
// #endregion replay

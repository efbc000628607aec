// Package docstate defines the narrow contracts the proposal engine
// consumes from the host decoder: the current document state and, per
// sentence, a phrase-table lookup / segmentation-proposal collaborator.
// Document (document.go) is an in-memory DocumentState; production hosts
// may supply their own. PhrasePairCollection is not implemented here (the
// transport package provides an in-memory and a network implementation).
package docstate

import (
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/rng"
)

// #region phrase-pair-collection
// PhrasePairCollection is the per-sentence phrase-table lookup and
// segmentation-proposal collaborator.
type PhrasePairCollection interface {
	// ProposeAlternativeTranslation returns an anchored pair covering the
	// same source span as existing, drawn from that span's candidate set.
	// It may return the same pair; callers must detect that and treat it
	// as a no-op.
	ProposeAlternativeTranslation(existing phrase.AnchoredPhrasePair) phrase.AnchoredPhrasePair

	// ProposeSegmentation returns a full-sentence segmentation when
	// coverage is the zero value (Len() == 0), or a segmentation covering
	// exactly the given sub-span coverage otherwise.
	ProposeSegmentation(coverage phrase.CoverageBitmap) phrase.PhraseSegmentation

	// PhrasesExist reports whether every pair in seg exists in the table.
	PhrasesExist(seg phrase.PhraseSegmentation) bool

	// SentenceLength returns the number of source positions in the
	// sentence this collection serves.
	SentenceLength() int
}
// #endregion phrase-pair-collection

// #region document-state
// DocumentState exposes everything an operator reads, as seen by the
// proposal engine: current segmentations, per-sentence phrase collections,
// opaque feature state, and the document's shared RNG.
type DocumentState interface {
	// SentenceCount returns the number of sentences in the document.
	SentenceCount() int

	// Segmentation returns the current phrase segmentation for sentence i.
	Segmentation(i int) phrase.PhraseSegmentation

	// Collection returns the PhrasePairCollection for sentence i.
	Collection(i int) PhrasePairCollection

	// FeatureState returns an opaque snapshot of per-feature state
	// attached to the document. Operators store the returned value in each
	// emitted SearchStep as is; it is not copied.
	FeatureState() interface{}

	// RNG returns the document's shared random source.
	RNG() *rng.Source

	// DrawSentence samples a sentence index weighted by sentence length.
	DrawSentence() int
}
// #endregion document-state

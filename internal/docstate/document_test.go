package docstate

import (
	"testing"

	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/rng"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

type stubCollection struct{ length int }

func (s stubCollection) ProposeAlternativeTranslation(existing phrase.AnchoredPhrasePair) phrase.AnchoredPhrasePair {
	return existing
}
func (s stubCollection) ProposeSegmentation(coverage phrase.CoverageBitmap) phrase.PhraseSegmentation {
	return nil
}
func (s stubCollection) PhrasesExist(seg phrase.PhraseSegmentation) bool { return true }
func (s stubCollection) SentenceLength() int                            { return s.length }

func pair(n, start, end int, words ...phrase.Word) phrase.AnchoredPhrasePair {
	return phrase.AnchoredPhrasePair{PhrasePair: phrase.PhrasePair{
		Coverage: phrase.RangeCoverage(n, start, end),
		Target:   words,
	}}
}

func TestDrawSentenceWeightsByLength(t *testing.T) {
	colls := []PhrasePairCollection{stubCollection{length: 1}, stubCollection{length: 0}}
	segs := []phrase.PhraseSegmentation{{}, {}}
	doc := NewDocument(segs, colls, nil, rng.New(1))
	for i := 0; i < 20; i++ {
		if got := doc.DrawSentence(); got != 0 {
			t.Fatalf("DrawSentence() = %d, want 0 (only sentence with nonzero length)", got)
		}
	}
}

func TestApplyReplacesHalfOpenRange(t *testing.T) {
	n := 3
	segs := []phrase.PhraseSegmentation{{
		pair(n, 0, 1, 1),
		pair(n, 1, 2, 2),
		pair(n, 2, 3, 3),
	}}
	colls := []PhrasePairCollection{stubCollection{length: n}}
	doc := NewDocument(segs, colls, nil, rng.New(1))

	step := searchstep.New("change-phrase-translation", nil)
	step.AddModification(searchstep.Modification{
		SentenceIndex: 0,
		Start:         1,
		End:           2,
		New:           phrase.PhraseSegmentation{pair(n, 1, 2, 9)},
	})
	doc.Apply(step)

	got := doc.Segmentation(0)
	if len(got) != 3 {
		t.Fatalf("expected 3 pairs after replacement, got %d", len(got))
	}
	if got[1].Target[0] != 9 {
		t.Fatalf("middle pair not replaced: %+v", got[1])
	}
	if got[0].Target[0] != 1 || got[2].Target[0] != 3 {
		t.Fatalf("unmodified pairs were disturbed: %+v", got)
	}
}

func segByTarget(seg phrase.PhraseSegmentation) []phrase.Word {
	out := make([]phrase.Word, len(seg))
	for i, p := range seg {
		out[i] = p.Target[0]
	}
	return out
}

func sameWords(a, b []phrase.Word) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestApplyMovePhrasesLeftMove exercises the two-modification shape
// MovePhrases emits for a leftward move (insert-at-dest, delete-at-origin,
// both indexed against the pre-step segmentation, with dest < start). Apply
// must produce the same result as applying the move atomically, not the
// result of threading the insert's shifted indices into the delete.
func TestApplyMovePhrasesLeftMove(t *testing.T) {
	n := 5
	segs := []phrase.PhraseSegmentation{{
		pair(n, 0, 1, 0),
		pair(n, 1, 2, 1),
		pair(n, 2, 3, 2),
		pair(n, 3, 4, 3),
		pair(n, 4, 5, 4),
	}}
	colls := []PhrasePairCollection{stubCollection{length: n}}
	doc := NewDocument(segs, colls, nil, rng.New(1))

	block := phrase.PhraseSegmentation{pair(n, 1, 2, 1)}
	step := searchstep.New("move-phrases", nil)
	step.AddModification(searchstep.Modification{SentenceIndex: 0, Start: 0, End: 0, New: block})
	step.AddModification(searchstep.Modification{SentenceIndex: 0, Start: 1, End: 2, New: phrase.PhraseSegmentation{}})
	doc.Apply(step)

	want := []phrase.Word{1, 0, 2, 3, 4}
	got := segByTarget(doc.Segmentation(0))
	if !sameWords(got, want) {
		t.Fatalf("left move result = %v, want %v", got, want)
	}
}

// TestApplyMovePhrasesRightMove covers the symmetric rightward case, where
// dest > start and the insert is emitted before the delete.
func TestApplyMovePhrasesRightMove(t *testing.T) {
	n := 5
	segs := []phrase.PhraseSegmentation{{
		pair(n, 0, 1, 0),
		pair(n, 1, 2, 1),
		pair(n, 2, 3, 2),
		pair(n, 3, 4, 3),
		pair(n, 4, 5, 4),
	}}
	colls := []PhrasePairCollection{stubCollection{length: n}}
	doc := NewDocument(segs, colls, nil, rng.New(1))

	block := phrase.PhraseSegmentation{pair(n, 1, 2, 1)}
	step := searchstep.New("move-phrases", nil)
	step.AddModification(searchstep.Modification{SentenceIndex: 0, Start: 4, End: 4, New: block})
	step.AddModification(searchstep.Modification{SentenceIndex: 0, Start: 1, End: 2, New: phrase.PhraseSegmentation{}})
	doc.Apply(step)

	want := []phrase.Word{0, 2, 3, 1, 4}
	got := segByTarget(doc.Segmentation(0))
	if !sameWords(got, want) {
		t.Fatalf("right move result = %v, want %v", got, want)
	}
}

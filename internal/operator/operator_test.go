package operator

import (
	"testing"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/rng"
)

// Scenario 1: sentence of length 1 — Permute/Linearise/Swap/Move all
// return no-proposal; ChangePhraseTranslation may still succeed.
func TestScenarioLength1NoProposalForRunOperators(t *testing.T) {
	n := 1
	seg := phrase.PhraseSegmentation{wordPair(n, 0, 1, 1)}
	coll := &fakeCollection{sentenceLen: n}
	doc := &fakeDoc{
		segs:  []phrase.PhraseSegmentation{seg},
		colls: []docstate.PhrasePairCollection{coll},
		rng:   rng.New(1),
	}

	runOps := []Operator{
		NewPermutePhrases(0.5),
		NewLinearisePhrases(0.5),
		NewSwapPhrases(0.5),
		NewMovePhrases(0.5, 0.5, 0.5, 0.5),
	}
	for _, op := range runOps {
		if _, ok := op.Propose(doc); ok {
			t.Fatalf("%s: expected no-proposal on a length-1 sentence", op.Description())
		}
	}
}

func TestChangePhraseTranslationNoProposalOnSamePair(t *testing.T) {
	n := 2
	a := wordPair(n, 0, 1, 10)
	b := wordPair(n, 1, 2, 20)
	seg := phrase.PhraseSegmentation{a, b}
	coll := &fakeCollection{sentenceLen: n, altFor: map[int]phrase.AnchoredPhrasePair{0: a}}
	doc := &fakeDoc{
		segs:  []phrase.PhraseSegmentation{seg},
		colls: []docstate.PhrasePairCollection{coll},
		rng:   rng.New(1),
	}
	op := NewChangePhraseTranslation()
	for i := 0; i < 5; i++ {
		if _, ok := op.Propose(doc); ok {
			t.Fatalf("expected no-proposal when alternative equals original")
		}
	}
}

func TestChangePhraseTranslationEmitsReplacement(t *testing.T) {
	n := 2
	a := wordPair(n, 0, 1, 10)
	b := wordPair(n, 1, 2, 20)
	alt := wordPair(n, 0, 1, 99)
	seg := phrase.PhraseSegmentation{a, b}
	coll := &fakeCollection{sentenceLen: n, altFor: map[int]phrase.AnchoredPhrasePair{0: alt}}
	doc := &fakeDoc{
		segs:  []phrase.PhraseSegmentation{seg},
		colls: []docstate.PhrasePairCollection{coll},
		rng:   rng.New(2),
	}
	op := NewChangePhraseTranslation()

	for i := 0; i < 20; i++ {
		step, ok := op.Propose(doc)
		if !ok {
			continue
		}
		if len(step.Modifications) != 1 {
			t.Fatalf("expected exactly 1 modification, got %d", len(step.Modifications))
		}
		return
	}
	t.Fatal("expected a proposal eventually (phrase 0 is drawn with probability 1/2 each trial)")
}

// Scenario 5: SwapPhrases with phrase1=0 on size=3 — direction forced
// right; two modifications with original indices.
func TestSwapPhrasesPhrase1ZeroForcesRight(t *testing.T) {
	n := 3
	seg := phrase.PhraseSegmentation{
		wordPair(n, 0, 1, 1),
		wordPair(n, 1, 2, 2),
		wordPair(n, 2, 3, 3),
	}
	coll := &fakeCollection{sentenceLen: n}
	doc := &fakeDoc{
		segs:  []phrase.PhraseSegmentation{seg},
		colls: []docstate.PhrasePairCollection{coll},
		rng:   rng.New(3),
	}
	op := NewSwapPhrases(0.5)

	for i := 0; i < 50; i++ {
		step, ok := op.Propose(doc)
		if !ok {
			continue
		}
		if len(step.Modifications) != 2 {
			t.Fatalf("expected 2 modifications, got %d", len(step.Modifications))
		}
		first, second := step.Modifications[0], step.Modifications[1]
		if first.Start != 0 {
			continue
		}
		if second.Start < 1 || second.Start > 2 {
			t.Fatalf("phrase1=0 must swap rightward into [1,2], got phrase2=%d", second.Start)
		}
		if !phrase.SameContent(first.Old[0], seg[0]) || !phrase.SameContent(second.Old[0], seg[second.Start]) {
			t.Fatalf("modifications must be indexed against the original segmentation")
		}
		return
	}
	t.Fatal("expected SwapPhrases to eventually propose with phrase1=0 on a 3-phrase sentence")
}

// Scenario 4: MovePhrases, size=5 — emits an insert followed by a delete
// whose widths agree with the moved block.
func TestMovePhrasesInsertThenDelete(t *testing.T) {
	n := 5
	segs := make(phrase.PhraseSegmentation, n)
	for i := 0; i < n; i++ {
		segs[i] = wordPair(n, i, i+1, phrase.Word(i))
	}
	coll := &fakeCollection{sentenceLen: n}
	doc := &fakeDoc{
		segs:  []phrase.PhraseSegmentation{segs},
		colls: []docstate.PhrasePairCollection{coll},
		rng:   rng.New(4),
	}
	op := NewMovePhrases(0.5, 0.5, 0.5, 0.5)

	for i := 0; i < 100; i++ {
		step, ok := op.Propose(doc)
		if !ok {
			continue
		}
		if len(step.Modifications) != 2 {
			t.Fatalf("expected 2 modifications, got %d", len(step.Modifications))
		}
		ins, del := step.Modifications[0], step.Modifications[1]
		if ins.Start != ins.End {
			t.Fatalf("insert modification should be a zero-width range, got [%d,%d)", ins.Start, ins.End)
		}
		if del.End-del.Start != len(ins.New) {
			t.Fatalf("delete range width %d should match inserted block size %d", del.End-del.Start, len(ins.New))
		}
		return
	}
	t.Fatal("expected MovePhrases to eventually succeed")
}

// Scenario 6: the phrase table returns the identical segmentation for
// whatever run Resegment selects (the entire sentence included) — no-proposal.
func TestResegmentNoProposalWhenIdentical(t *testing.T) {
	n := 4
	a := wordPair(n, 0, 2, 1, 2)
	b := wordPair(n, 2, 4, 3, 4)
	seg := phrase.PhraseSegmentation{a, b}
	coll := &fakeCollection{sentenceLen: n, resegFor: seg}
	doc := &fakeDoc{
		segs:  []phrase.PhraseSegmentation{seg},
		colls: []docstate.PhrasePairCollection{coll},
		rng:   rng.New(5),
	}
	op := NewResegment(0.5)
	for i := 0; i < 20; i++ {
		if _, ok := op.Propose(doc); ok {
			t.Fatalf("expected no-proposal when table returns the identical segmentation")
		}
	}
}

func TestLineariseNoProposalWhenAlreadyMonotonic(t *testing.T) {
	n := 3
	seg := phrase.PhraseSegmentation{
		wordPair(n, 0, 1, 1),
		wordPair(n, 1, 2, 2),
		wordPair(n, 2, 3, 3),
	}
	coll := &fakeCollection{sentenceLen: n}
	doc := &fakeDoc{
		segs:  []phrase.PhraseSegmentation{seg},
		colls: []docstate.PhrasePairCollection{coll},
		rng:   rng.New(6),
	}
	op := NewLinearisePhrases(0.9)
	for i := 0; i < 30; i++ {
		if _, ok := op.Propose(doc); ok {
			t.Fatalf("expected no-proposal on an already-monotonic run")
		}
	}
}

// Scenario 3: Sentence [B, A, C, D], the prefix/suffix trim on a run sorted
// by anchor produces the minimal middle diff, not the full run rewrite.
func TestMinimalDiffTrimsSharedEdges(t *testing.T) {
	n := 4
	A := wordPair(n, 0, 1, 1)
	B := wordPair(n, 1, 2, 2)
	C := wordPair(n, 2, 3, 3)
	run := phrase.PhraseSegmentation{B, A, C}
	sorted := phrase.PhraseSegmentation{A, B, C}

	p := phrase.CommonPrefixLen(run, sorted)
	q := phrase.CommonSuffixLen(run, sorted, p)

	if p != 0 {
		t.Fatalf("prefix = %d, want 0 (B != A)", p)
	}
	if q != 1 {
		t.Fatalf("suffix = %d, want 1 (shared trailing C)", q)
	}
	if mid := len(run) - p - q; mid != 2 {
		t.Fatalf("trimmed middle width = %d, want 2", mid)
	}
}

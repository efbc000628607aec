package transport

import (
	"testing"

	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/rng"
)

func TestStaticProposeSegmentationFullSentence(t *testing.T) {
	n := 3
	full := phrase.PhraseSegmentation{
		{PhrasePair: phrase.PhrasePair{Coverage: phrase.RangeCoverage(n, 0, n), Target: []phrase.Word{1}}},
	}
	s := NewStatic(n, full, nil, rng.New(1))
	got := s.ProposeSegmentation(phrase.CoverageBitmap{})
	if len(got) != 1 {
		t.Fatalf("expected the full segmentation back, got %d pairs", len(got))
	}
}

func TestStaticProposeAlternativeFallsBackToExisting(t *testing.T) {
	n := 2
	existing := phrase.AnchoredPhrasePair{PhrasePair: phrase.PhrasePair{Coverage: phrase.RangeCoverage(n, 0, 1)}}
	s := NewStatic(n, nil, nil, rng.New(1))
	got := s.ProposeAlternativeTranslation(existing)
	if !phrase.SameContent(existing, got) {
		t.Fatal("expected the same pair back when no alternatives are configured")
	}
}

func TestPhrasewireCodecRoundTripsAlternativeTranslation(t *testing.T) {
	codec := phrasewireCodec{}
	n := 3
	existing := phrase.AnchoredPhrasePair{PhrasePair: phrase.PhrasePair{
		Coverage: phrase.RangeCoverage(n, 0, 2),
		Target:   []phrase.Word{7, 8},
	}}
	req := &alternativeTranslationRequest{Existing: existing, SentenceLength: n}

	data, err := codec.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got := &alternativeTranslationRequest{}
	if err := codec.Unmarshal(data, got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !phrase.SameContent(existing, got.Existing) {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got.Existing, existing)
	}
}

func TestPhrasewireCodecRoundTripsSegmentationRequest(t *testing.T) {
	codec := phrasewireCodec{}
	n := 5
	cov := phrase.RangeCoverage(n, 1, 4)
	req := &proposeSegmentationRequest{Coverage: cov, SentenceLength: n}

	data, err := codec.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got := &proposeSegmentationRequest{}
	if err := codec.Unmarshal(data, got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.SentenceLength != n {
		t.Fatalf("SentenceLength = %d, want %d", got.SentenceLength, n)
	}
	if !got.Coverage.Equal(cov) {
		t.Fatal("coverage did not round-trip")
	}
	if got.Full {
		t.Fatal("Full should be false for a sub-span request")
	}
}

func TestPhrasewireCodecRoundTripsFullSegmentationRequest(t *testing.T) {
	codec := phrasewireCodec{}
	req := &proposeSegmentationRequest{SentenceLength: 6, Full: true}

	data, err := codec.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got := &proposeSegmentationRequest{}
	if err := codec.Unmarshal(data, got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Full {
		t.Fatal("expected Full to round-trip as true")
	}
}

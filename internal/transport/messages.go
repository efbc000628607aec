package transport

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/wire"
)

// #region messages
// Plain Go message types for the four PhrasePairCollection RPCs. These
// stand in for proto.Message-generated request/response types; see codec.go
// for why.
type alternativeTranslationRequest struct {
	Existing       phrase.AnchoredPhrasePair
	SentenceLength int
}

type alternativeTranslationResponse struct {
	Pair           phrase.AnchoredPhrasePair
	SentenceLength int
}

type proposeSegmentationRequest struct {
	Coverage       phrase.CoverageBitmap
	SentenceLength int
	// Full indicates the zero-value-coverage case ("propose a whole-
	// sentence segmentation"), distinct from an (unused) empty sub-span.
	Full bool
}

type proposeSegmentationResponse struct {
	Segmentation   phrase.PhraseSegmentation
	SentenceLength int
}

type phrasesExistRequest struct {
	Segmentation   phrase.PhraseSegmentation
	SentenceLength int
}

type phrasesExistResponse struct {
	Exist bool
}

type sentenceLengthRequest struct {
	SentenceIndex int
}

type sentenceLengthResponse struct {
	Length int
}
// #endregion messages

// #region helpers
const fieldScalar = 1

func encodeSentenceIndex(v int) []byte {
	var out []byte
	out = protowire.AppendTag(out, fieldScalar, protowire.VarintType)
	out = protowire.AppendVarint(out, uint64(int64(v)))
	return out
}

func decodeSentenceIndex(data []byte) int {
	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 || num != fieldScalar || typ != protowire.VarintType {
		return 0
	}
	data = data[n:]
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0
	}
	return int(int64(v))
}

func encodeAnchoredPair(pair phrase.AnchoredPhrasePair, sentenceLength int) []byte {
	return wire.EncodeSegmentation(phrase.PhraseSegmentation{pair}, sentenceLength)
}

func decodeAnchoredPair(data []byte) (phrase.AnchoredPhrasePair, error) {
	seg, _, err := wire.DecodeSegmentation(data)
	if err != nil {
		return phrase.AnchoredPhrasePair{}, err
	}
	if len(seg) == 0 {
		return phrase.AnchoredPhrasePair{}, fmt.Errorf("phrasewire: expected one pair, got none")
	}
	return seg[0], nil
}

func encodeAlternativeTranslationRequest(m *alternativeTranslationRequest) []byte {
	return encodeAnchoredPair(m.Existing, m.SentenceLength)
}

func decodeAlternativeTranslationRequest(data []byte, m *alternativeTranslationRequest) error {
	pair, err := decodeAnchoredPair(data)
	if err != nil {
		return err
	}
	m.Existing = pair
	return nil
}

const (
	fieldPairs = 2
	fieldFull  = 3
)

func encodeProposeSegmentationRequest(m *proposeSegmentationRequest) []byte {
	var out []byte
	out = protowire.AppendTag(out, fieldScalar, protowire.VarintType)
	out = protowire.AppendVarint(out, uint64(m.SentenceLength))
	if m.Full {
		out = protowire.AppendTag(out, fieldFull, protowire.VarintType)
		out = protowire.AppendVarint(out, 1)
		return out
	}
	for i := 0; i < m.Coverage.Len(); i++ {
		if m.Coverage.Test(i) {
			out = protowire.AppendTag(out, fieldPairs, protowire.VarintType)
			out = protowire.AppendVarint(out, uint64(i))
		}
	}
	return out
}

func decodeProposeSegmentationRequest(data []byte, m *proposeSegmentationRequest) error {
	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 || num != fieldScalar || typ != protowire.VarintType {
		return fmt.Errorf("phrasewire: expected sentence length field in segmentation request")
	}
	data = data[n:]
	length, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return fmt.Errorf("phrasewire: consume sentence length: %w", protowire.ParseError(n))
	}
	data = data[n:]
	m.SentenceLength = int(length)
	m.Coverage = phrase.NewCoverageBitmap(int(length))

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 || typ != protowire.VarintType {
			return fmt.Errorf("phrasewire: malformed segmentation request field")
		}
		data = data[n:]
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return fmt.Errorf("phrasewire: consume segmentation request value: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case fieldPairs:
			m.Coverage.Set(int(v))
		case fieldFull:
			m.Full = v == 1
		default:
			return fmt.Errorf("phrasewire: unexpected field %d in segmentation request", num)
		}
	}
	return nil
}
// #endregion helpers

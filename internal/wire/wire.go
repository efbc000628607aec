// Package wire implements a minimal protowire-based binary codec for
// documents of phrase segmentations. It backs both the saved-state
// initialiser's file format and the gRPC transport codec; spec.md treats
// the persisted format as opaque, so this need only round-trip with itself.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/corvid-labs/segforge/internal/phrase"
)

// Field numbers for the nested document/sentence/pair/coverage schema.
const (
	fieldDocuments     = 1
	fieldSentences     = 1
	fieldSentenceLen   = 1
	fieldPairs         = 2
	fieldCoverageWords = 1
	fieldTarget        = 2
)

// #region encode
// EncodeDocuments serializes a set of documents, each a slice of per-
// sentence segmentations, alongside each sentence's declared length
// (needed to reconstruct CoverageBitmap sizing on decode).
func EncodeDocuments(docs [][]phrase.PhraseSegmentation, sentenceLens [][]int) []byte {
	var out []byte
	for d, doc := range docs {
		docBytes := encodeDocument(doc, sentenceLens[d])
		out = protowire.AppendTag(out, fieldDocuments, protowire.BytesType)
		out = protowire.AppendBytes(out, docBytes)
	}
	return out
}

func encodeDocument(sentences []phrase.PhraseSegmentation, lens []int) []byte {
	var out []byte
	for i, seg := range sentences {
		sentBytes := EncodeSegmentation(seg, lens[i])
		out = protowire.AppendTag(out, fieldSentences, protowire.BytesType)
		out = protowire.AppendBytes(out, sentBytes)
	}
	return out
}

// EncodeSegmentation serializes a single sentence's segmentation (its
// declared length followed by its pairs). Exported so the gRPC transport
// codec can reuse it for single-segmentation request/response payloads
// without going through the documents-of-sentences envelope.
func EncodeSegmentation(seg phrase.PhraseSegmentation, length int) []byte {
	var out []byte
	out = protowire.AppendTag(out, fieldSentenceLen, protowire.VarintType)
	out = protowire.AppendVarint(out, uint64(length))
	for _, pair := range seg {
		pairBytes := encodePair(pair, length)
		out = protowire.AppendTag(out, fieldPairs, protowire.BytesType)
		out = protowire.AppendBytes(out, pairBytes)
	}
	return out
}

func encodePair(pair phrase.AnchoredPhrasePair, length int) []byte {
	var out []byte
	for pos := 0; pos < length; pos++ {
		if pair.Coverage.Test(pos) {
			out = protowire.AppendTag(out, fieldCoverageWords, protowire.VarintType)
			out = protowire.AppendVarint(out, uint64(pos))
		}
	}
	for _, w := range pair.Target {
		out = protowire.AppendTag(out, fieldTarget, protowire.VarintType)
		out = protowire.AppendVarint(out, uint64(int32(w)))
	}
	return out
}
// #endregion encode

// #region decode
// DecodeDocuments is the inverse of EncodeDocuments.
func DecodeDocuments(data []byte) ([][]phrase.PhraseSegmentation, error) {
	var docs [][]phrase.PhraseSegmentation
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("wire: consume document tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		if num != fieldDocuments || typ != protowire.BytesType {
			return nil, fmt.Errorf("wire: unexpected field %d type %d at document level", num, typ)
		}
		payload, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("wire: consume document bytes: %w", protowire.ParseError(n))
		}
		data = data[n:]

		doc, err := decodeDocument(payload)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeDocument(data []byte) ([]phrase.PhraseSegmentation, error) {
	var sentences []phrase.PhraseSegmentation
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("wire: consume sentence tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		if num != fieldSentences || typ != protowire.BytesType {
			return nil, fmt.Errorf("wire: unexpected field %d type %d at sentence level", num, typ)
		}
		payload, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("wire: consume sentence bytes: %w", protowire.ParseError(n))
		}
		data = data[n:]

		seg, _, err := DecodeSegmentation(payload)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, seg)
	}
	return sentences, nil
}

// DecodeSegmentation is the inverse of EncodeSegmentation: it decodes a
// single sentence's declared length and its pairs.
func DecodeSegmentation(data []byte) (phrase.PhraseSegmentation, int, error) {
	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 || num != fieldSentenceLen || typ != protowire.VarintType {
		return nil, 0, fmt.Errorf("wire: expected sentence length field")
	}
	data = data[n:]
	length, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return nil, 0, fmt.Errorf("wire: consume sentence length: %w", protowire.ParseError(n))
	}
	data = data[n:]

	var seg phrase.PhraseSegmentation
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, 0, fmt.Errorf("wire: consume pair tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		if num != fieldPairs || typ != protowire.BytesType {
			return nil, 0, fmt.Errorf("wire: unexpected field %d type %d at pair level", num, typ)
		}
		payload, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, 0, fmt.Errorf("wire: consume pair bytes: %w", protowire.ParseError(n))
		}
		data = data[n:]

		pair, err := decodePair(payload, int(length))
		if err != nil {
			return nil, 0, err
		}
		seg = append(seg, pair)
	}
	return seg, int(length), nil
}

func decodePair(data []byte, length int) (phrase.AnchoredPhrasePair, error) {
	coverage := phrase.NewCoverageBitmap(length)
	var target []phrase.Word
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return phrase.AnchoredPhrasePair{}, fmt.Errorf("wire: consume pair field tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		if typ != protowire.VarintType {
			return phrase.AnchoredPhrasePair{}, fmt.Errorf("wire: unexpected type %d inside pair", typ)
		}
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return phrase.AnchoredPhrasePair{}, fmt.Errorf("wire: consume pair varint: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldCoverageWords:
			coverage.Set(int(v))
		case fieldTarget:
			target = append(target, phrase.Word(int32(v)))
		default:
			return phrase.AnchoredPhrasePair{}, fmt.Errorf("wire: unexpected field %d inside pair", num)
		}
	}
	return phrase.AnchoredPhrasePair{
		PhrasePair: phrase.PhrasePair{Coverage: coverage, Target: target},
	}, nil
}
// #endregion decode

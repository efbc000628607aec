package transport

import (
	"fmt"

	"google.golang.org/grpc/encoding"

	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/wire"
)

// #region codec
// codecName is registered with google.golang.org/grpc/encoding under this
// name and selected per-call via grpc.CallContentSubtype. No generated
// protoc-gen-go stubs exist for this service, so messages are plain Go
// structs (request/response types below) marshalled with protowire rather
// than proto.Message.
const codecName = "phrasewire"

func init() {
	encoding.RegisterCodec(phrasewireCodec{})
}

type phrasewireCodec struct{}

func (phrasewireCodec) Name() string { return codecName }

func (phrasewireCodec) Marshal(v interface{}) ([]byte, error) {
	switch m := v.(type) {
	case *alternativeTranslationRequest:
		return encodeAlternativeTranslationRequest(m), nil
	case *alternativeTranslationResponse:
		return encodeAnchoredPair(m.Pair, m.SentenceLength), nil
	case *proposeSegmentationRequest:
		return encodeProposeSegmentationRequest(m), nil
	case *proposeSegmentationResponse:
		return wire.EncodeDocuments([][]phrase.PhraseSegmentation{{m.Segmentation}}, [][]int{{m.SentenceLength}}), nil
	case *phrasesExistRequest:
		return wire.EncodeDocuments([][]phrase.PhraseSegmentation{{m.Segmentation}}, [][]int{{m.SentenceLength}}), nil
	case *phrasesExistResponse:
		if m.Exist {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case *sentenceLengthRequest:
		return encodeSentenceIndex(m.SentenceIndex), nil
	case *sentenceLengthResponse:
		return encodeSentenceIndex(m.Length), nil
	default:
		return nil, fmt.Errorf("phrasewire: unsupported message type %T", v)
	}
}

func (phrasewireCodec) Unmarshal(data []byte, v interface{}) error {
	switch m := v.(type) {
	case *alternativeTranslationRequest:
		return decodeAlternativeTranslationRequest(data, m)
	case *alternativeTranslationResponse:
		pair, err := decodeAnchoredPair(data)
		if err != nil {
			return err
		}
		m.Pair = pair
		return nil
	case *proposeSegmentationRequest:
		return decodeProposeSegmentationRequest(data, m)
	case *proposeSegmentationResponse:
		docs, err := wire.DecodeDocuments(data)
		if err != nil {
			return err
		}
		if len(docs) > 0 && len(docs[0]) > 0 {
			m.Segmentation = docs[0][0]
		}
		return nil
	case *phrasesExistRequest:
		docs, err := wire.DecodeDocuments(data)
		if err != nil {
			return err
		}
		if len(docs) > 0 && len(docs[0]) > 0 {
			m.Segmentation = docs[0][0]
		}
		return nil
	case *phrasesExistResponse:
		m.Exist = len(data) > 0 && data[0] == 1
		return nil
	case *sentenceLengthRequest:
		m.SentenceIndex = decodeSentenceIndex(data)
		return nil
	case *sentenceLengthResponse:
		m.Length = decodeSentenceIndex(data)
		return nil
	default:
		return fmt.Errorf("phrasewire: unsupported message type %T", v)
	}
}
// #endregion codec

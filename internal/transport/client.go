package transport

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/phrase"
)

// #region service-path
const (
	serviceName               = "segforge.phrasecollection.v1.PhraseCollection"
	methodProposeAlternative  = "/" + serviceName + "/ProposeAlternativeTranslation"
	methodProposeSegmentation = "/" + serviceName + "/ProposeSegmentation"
	methodPhrasesExist        = "/" + serviceName + "/PhrasesExist"
	methodSentenceLength      = "/" + serviceName + "/SentenceLength"
)
// #endregion service-path

// #region client
// Client is a gRPC-backed docstate.PhrasePairCollection for one sentence of
// a remote phrase-table/segmenter service.
type Client struct {
	conn          *grpc.ClientConn
	sentenceIndex int
	ctx           context.Context
}

// NewClient dials addr and returns a Client scoped to sentenceIndex.
func NewClient(ctx context.Context, addr string, sentenceIndex int) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("transport: grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, sentenceIndex: sentenceIndex, ctx: ctx}, nil
}

// Close shuts down the underlying gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) ProposeAlternativeTranslation(existing phrase.AnchoredPhrasePair) phrase.AnchoredPhrasePair {
	req := &alternativeTranslationRequest{Existing: existing, SentenceLength: existing.Coverage.Len()}
	resp := &alternativeTranslationResponse{}
	if err := c.conn.Invoke(c.ctx, methodProposeAlternative, req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return existing
	}
	return resp.Pair
}

func (c *Client) ProposeSegmentation(coverage phrase.CoverageBitmap) phrase.PhraseSegmentation {
	req := &proposeSegmentationRequest{Coverage: coverage, SentenceLength: coverage.Len(), Full: coverage.Len() == 0}
	resp := &proposeSegmentationResponse{}
	if err := c.conn.Invoke(c.ctx, methodProposeSegmentation, req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return nil
	}
	return resp.Segmentation
}

func (c *Client) PhrasesExist(seg phrase.PhraseSegmentation) bool {
	length := 0
	if len(seg) > 0 {
		length = seg[0].Coverage.Len()
	}
	req := &phrasesExistRequest{Segmentation: seg, SentenceLength: length}
	resp := &phrasesExistResponse{}
	if err := c.conn.Invoke(c.ctx, methodPhrasesExist, req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return false
	}
	return resp.Exist
}

func (c *Client) SentenceLength() int {
	req := &sentenceLengthRequest{SentenceIndex: c.sentenceIndex}
	resp := &sentenceLengthResponse{}
	if err := c.conn.Invoke(c.ctx, methodSentenceLength, req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return 0
	}
	return resp.Length
}

var _ docstate.PhrasePairCollection = (*Client)(nil)
// #endregion client

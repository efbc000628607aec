// Command propose drives the weighted operator dispatcher against a
// document built from a JSON fixture (each sentence seeded by the
// configured initialiser) and prints every emitted SearchStep, optionally
// logging them to a SQLite proposal log.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/generator"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/proposallog"
	"github.com/corvid-labs/segforge/internal/rng"
	"github.com/corvid-labs/segforge/internal/transport"
)

// #region main
func main() {
	fixturePath := flag.String("fixture", "", "path to a document fixture JSON (required)")
	steps := flag.Int("steps", 10, "number of proposals to draw")
	seed := flag.Int64("seed", 1, "RNG seed")
	logPath := flag.String("log", "", "optional path to a proposal log SQLite file")
	initMethod := flag.String("init", "monotonic", "initialiser method: monotonic|saved-state")
	initFile := flag.String("init-file", "", "saved-state file (required when --init=saved-state)")
	apply := flag.Bool("apply", true, "apply each emitted step to the document before the next draw")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: propose --fixture path/to/document.json [--steps N] [--seed N] [--log path.sqlite]")
		os.Exit(2)
	}

	fx, err := loadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}

	source := rng.New(*seed)

	initParams := map[string]string{}
	if *initFile != "" {
		initParams["file"] = *initFile
	}
	gen, err := generator.New(*initMethod, initParams, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build generator: %v\n", err)
		os.Exit(2)
	}
	for _, op := range fx.Operators {
		if err := gen.AddOperation(op.Weight, op.Type, op.Params); err != nil {
			fmt.Fprintf(os.Stderr, "add operator %q: %v\n", op.Type, err)
			os.Exit(2)
		}
	}

	doc, err := fx.buildDocument(source, gen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build document: %v\n", err)
		os.Exit(2)
	}

	var log *proposallog.Store
	if *logPath != "" {
		log, err = proposallog.Open(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open proposal log: %v\n", err)
			os.Exit(2)
		}
		defer log.Close()
	}

	for i := 0; i < *steps; i++ {
		step := gen.Propose(doc)
		fmt.Printf("[%d] operator=%-28s sentences=%v modifications=%d\n",
			i, step.OperatorTag, step.SentencesTouched(), len(step.Modifications))
		if log != nil {
			if err := log.Record(step); err != nil {
				fmt.Fprintf(os.Stderr, "record step: %v\n", err)
				os.Exit(1)
			}
		}
		if *apply {
			doc.Apply(step)
		}
	}
}
// #endregion main

// #region fixture
// fixture is the JSON document description propose reads: per-sentence
// source length, its full-sentence reference segmentation, and an
// alternatives pool keyed by the covered span's starting position.
type fixture struct {
	Sentences []fixtureSentence `json:"sentences"`
	Operators []fixtureOperator `json:"operators"`
}

type fixtureSentence struct {
	Length       int                      `json:"length"`
	Full         []fixturePair            `json:"full"`
	Alternatives map[string][]fixturePair `json:"alternatives"`
}

type fixturePair struct {
	Start  int           `json:"start"`
	End    int           `json:"end"`
	Target []phrase.Word `json:"target"`
}

type fixtureOperator struct {
	Type   string             `json:"type"`
	Weight float64            `json:"weight"`
	Params map[string]float64 `json:"params"`
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if len(fx.Sentences) == 0 {
		return nil, fmt.Errorf("fixture declares no sentences")
	}
	return &fx, nil
}

func (p fixturePair) toAnchoredPair(n int) phrase.AnchoredPhrasePair {
	return phrase.AnchoredPhrasePair{PhrasePair: phrase.PhrasePair{
		Coverage: phrase.RangeCoverage(n, p.Start, p.End),
		Target:   p.Target,
	}}
}

func (fx *fixture) buildDocument(source *rng.Source, gen *generator.StateGenerator) (*docstate.Document, error) {
	segs := make([]phrase.PhraseSegmentation, len(fx.Sentences))
	colls := make([]docstate.PhrasePairCollection, len(fx.Sentences))
	for i, s := range fx.Sentences {
		full := make(phrase.PhraseSegmentation, len(s.Full))
		for j, p := range s.Full {
			full[j] = p.toAnchoredPair(s.Length)
		}
		alts := map[int][]phrase.AnchoredPhrasePair{}
		for k, pairs := range s.Alternatives {
			pos := 0
			if _, err := fmt.Sscanf(k, "%d", &pos); err != nil {
				return nil, fmt.Errorf("sentence %d: alternatives key %q: %w", i, k, err)
			}
			list := make([]phrase.AnchoredPhrasePair, len(pairs))
			for j, p := range pairs {
				list[j] = p.toAnchoredPair(s.Length)
			}
			alts[pos] = list
		}
		colls[i] = transport.NewStatic(s.Length, full, alts, source)

		seg, err := gen.Initialiser().InitSegmentation(colls[i], nil, 0, i)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: init segmentation: %w", i, err)
		}
		segs[i] = seg
	}
	return docstate.NewDocument(segs, colls, nil, source), nil
}
// #endregion fixture

// Command replay exercises the saved-state round-trip: it builds a
// monotonic initial segmentation for a fixture document, serializes it to a
// saved-state file, reloads it through the saved-state initialiser, and
// reports whether every sentence's segmentation survived the round trip
// unchanged.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/initstate"
	"github.com/corvid-labs/segforge/internal/phrase"
	"github.com/corvid-labs/segforge/internal/transport"
)

// #region main
func main() {
	fixturePath := flag.String("fixture", "", "path to a document fixture JSON (required)")
	savedStatePath := flag.String("out", "", "path to write the intermediate saved-state file (defaults to a temp file)")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/document.json [--out path/to/state.bin]")
		os.Exit(2)
	}

	outPath := *savedStatePath
	if outPath == "" {
		f, err := os.CreateTemp("", "segforge-replay-*.bin")
		if err != nil {
			fmt.Fprintf(os.Stderr, "create temp file: %v\n", err)
			os.Exit(2)
		}
		outPath = f.Name()
		f.Close()
		defer os.Remove(outPath)
	}

	os.Exit(run(*fixturePath, outPath))
}

// #endregion main

// #region run
func run(fixturePath, outPath string) int {
	fx, err := loadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	colls := make([]docstate.PhrasePairCollection, len(fx.Sentences))
	before := make([]phrase.PhraseSegmentation, len(fx.Sentences))
	mono := &initstate.Monotonic{}
	for i, s := range fx.Sentences {
		full := make(phrase.PhraseSegmentation, len(s.Full))
		for j, p := range s.Full {
			full[j] = p.toAnchoredPair(s.Length)
		}
		colls[i] = transport.NewStatic(s.Length, full, nil, nil)
		seg, err := mono.InitSegmentation(colls[i], nil, 0, i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sentence %d: monotonic init: %v\n", i, err)
			return 2
		}
		before[i] = seg
	}

	lens := make([]int, len(fx.Sentences))
	for i, s := range fx.Sentences {
		lens[i] = s.Length
	}
	if err := initstate.WriteReplayFile(outPath, [][]phrase.PhraseSegmentation{before}, [][]int{lens}); err != nil {
		fmt.Fprintf(os.Stderr, "write saved-state file: %v\n", err)
		return 2
	}

	replay, err := initstate.LoadReplay(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load saved-state file: %v\n", err)
		return 2
	}

	after := make([]phrase.PhraseSegmentation, len(fx.Sentences))
	for i := range fx.Sentences {
		seg, err := replay.InitSegmentation(colls[i], nil, 0, i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sentence %d: saved-state init: %v\n", i, err)
			return 2
		}
		after[i] = seg
	}

	return printComparison(before, after)
}

// #endregion run

// #region output
func printComparison(before, after []phrase.PhraseSegmentation) int {
	fmt.Printf("%-10s| %-10s| %-10s| %s\n", "Sentence", "Before", "After", "Match")
	fmt.Printf("%-10s+%-10s+%-10s+%s\n", "----------", "----------", "----------", "------")

	matches := 0
	for i := range before {
		match := "DIFF"
		if segmentationsEqual(before[i], after[i]) {
			match = "OK"
			matches++
		}
		fmt.Printf("%-10d| %-10d| %-10d| %s\n", i, len(before[i]), len(after[i]), match)
	}

	diverge := len(before) - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", len(before), matches, diverge)
	if diverge > 0 {
		return 1
	}
	return 0
}

func segmentationsEqual(a, b phrase.PhraseSegmentation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !phrase.SameContent(a[i], b[i]) {
			return false
		}
	}
	return true
}

// #endregion output

// #region fixture
// fixture mirrors cmd/propose's document description; replay only needs
// each sentence's length and full-sentence reference segmentation.
type fixture struct {
	Sentences []fixtureSentence `json:"sentences"`
}

type fixtureSentence struct {
	Length int           `json:"length"`
	Full   []fixturePair `json:"full"`
}

type fixturePair struct {
	Start  int           `json:"start"`
	End    int           `json:"end"`
	Target []phrase.Word `json:"target"`
}

func (p fixturePair) toAnchoredPair(n int) phrase.AnchoredPhrasePair {
	return phrase.AnchoredPhrasePair{PhrasePair: phrase.PhrasePair{
		Coverage: phrase.RangeCoverage(n, p.Start, p.End),
		Target:   p.Target,
	}}
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

// #endregion fixture

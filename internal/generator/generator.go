// Package generator implements the weighted operator dispatcher: it owns
// the operator set and the state initialiser, and on each Propose call picks
// an operator by weight and retries until a non-empty step is produced.
package generator

import (
	"fmt"

	"github.com/corvid-labs/segforge/internal/docstate"
	"github.com/corvid-labs/segforge/internal/initstate"
	"github.com/corvid-labs/segforge/internal/operator"
	"github.com/corvid-labs/segforge/internal/rng"
	"github.com/corvid-labs/segforge/internal/searchstep"
)

// #region errors
// ErrUnknownOperator is returned by AddOperation for an unrecognised
// operator type key.
var ErrUnknownOperator = fmt.Errorf("unknown operator type")

// ErrUnknownInitialiser is returned by New for an unrecognised initialiser
// method key. It is the initstate package's own sentinel, which New passes
// through wrapped.
var ErrUnknownInitialiser = initstate.ErrUnknownMethod
// #endregion errors

// #region operator-types
// Known operator type keys, matching spec-recognized configuration strings.
const (
	TypeChangePhraseTranslation = "change-phrase-translation"
	TypePermutePhrases          = "permute-phrases"
	TypeLinearisePhrases        = "linearise-phrases"
	TypeSwapPhrases             = "swap-phrases"
	TypeMovePhrases             = "move-phrases"
	TypeResegment               = "resegment"
)
// #endregion operator-types

// #region generator
// StateGenerator holds the weighted operator set and the initialiser for
// one document search.
type StateGenerator struct {
	rng        *rng.Source
	init       initstate.Initialiser
	operators  []operator.Operator
	weights    []float64
	cumWeights []float64
}

// New constructs a StateGenerator. initMethod selects the initialiser
// variant ("monotonic" | "saved-state"); params carries initialiser
// configuration (e.g. "file" for saved-state).
func New(initMethod string, params map[string]string, source *rng.Source) (*StateGenerator, error) {
	init, err := initstate.New(initMethod, params)
	if err != nil {
		return nil, err
	}
	return &StateGenerator{rng: source, init: init}, nil
}

// Initialiser returns the generator's state initialiser, used at document
// construction to seed each sentence's starting segmentation.
func (g *StateGenerator) Initialiser() initstate.Initialiser {
	return g.init
}

// AddOperation appends one operator of the given type and weight, rebuilding
// the ascending cumulative-weight vector. Unknown opType returns
// ErrUnknownOperator.
func (g *StateGenerator) AddOperation(weight float64, opType string, params map[string]float64) error {
	op, err := buildOperator(opType, params)
	if err != nil {
		return err
	}
	g.operators = append(g.operators, op)
	g.weights = append(g.weights, weight)

	total := 0.0
	g.cumWeights = make([]float64, len(g.weights))
	for i, w := range g.weights {
		total += w
		g.cumWeights[i] = total
	}
	return nil
}

// Propose selects an operator by weight and retries until a non-empty
// SearchStep is produced. It never returns an empty or no-op step.
func (g *StateGenerator) Propose(doc docstate.DocumentState) *searchstep.Step {
	for {
		i := g.rng.SelectCumulative(g.cumWeights)
		if i < 0 {
			panic("generator: Propose called with no operators configured")
		}
		step, ok := g.operators[i].Propose(doc)
		if !ok {
			continue
		}
		if step.Empty() {
			continue
		}
		return step
	}
}
// #endregion generator

// #region build-operator
func buildOperator(opType string, params map[string]float64) (operator.Operator, error) {
	switch opType {
	case TypeChangePhraseTranslation:
		return operator.NewChangePhraseTranslation(), nil
	case TypePermutePhrases:
		return operator.NewPermutePhrases(params["phrase-permutation-decay"]), nil
	case TypeLinearisePhrases:
		return operator.NewLinearisePhrases(params["phrase-linearisation-decay"]), nil
	case TypeSwapPhrases:
		return operator.NewSwapPhrases(params["swap-distance-decay"]), nil
	case TypeMovePhrases:
		rightPref, ok := params["right-move-preference"]
		if !ok {
			rightPref = 0.5
		}
		return operator.NewMovePhrases(
			params["block-size-decay"],
			rightPref,
			params["right-distance-decay"],
			params["left-distance-decay"],
		), nil
	case TypeResegment:
		return operator.NewResegment(params["phrase-resegmentation-decay"]), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, opType)
	}
}
// #endregion build-operator

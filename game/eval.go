package game

import "fmt"

// Evaluator scores a board from side's perspective. Implementations are pure
// functions of (board, side); the scores are not required to be symmetric
// between the two sides.
type Evaluator interface {
	Evaluate(b Board, side Side) float64
	Name() string
}

const (
	SimpleEvaluatorName        = "simple"
	PositionalEvaluatorName    = "positional"
	PhaseAdaptiveEvaluatorName = "phase-adaptive"
)

// NewEvaluator builds the named evaluator. The phase policy only matters for
// the phase-adaptive variant.
func NewEvaluator(name string, policy PhasePolicy) (Evaluator, error) {
	switch name {
	case SimpleEvaluatorName:
		return SimpleEvaluator{}, nil
	case PositionalEvaluatorName:
		return PositionalEvaluator{}, nil
	case PhaseAdaptiveEvaluatorName, "":
		return PhaseAdaptiveEvaluator{Policy: policy}, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", name)
	}
}

// positionWeights is the static value of holding each square.
var positionWeights = [Size][Size]int{
	{4, -3, 2, 2, 2, 2, -3, 4},
	{-3, -4, -1, -1, -1, -1, -4, -3},
	{2, -1, 1, 0, 0, 1, -1, 2},
	{2, -1, 0, 1, 1, 0, -1, 2},
	{2, -1, 0, 1, 1, 0, -1, 2},
	{2, -1, 1, 0, 0, 1, -1, 2},
	{-3, -4, -1, -1, -1, -1, -4, -3},
	{4, -3, 2, 2, 2, 2, -3, 4},
}

// PositionWeight is the static value of a square, used to order moves.
func PositionWeight(m Move) int {
	return positionWeights[m.Row][m.Col]
}

// cornerDifference is ±25 for each corner owned outright by either side.
func cornerDifference(b Board, side Side) int {
	score := 0
	for _, m := range corners {
		switch b.At(m) {
		case side:
			score += cornerOwned
		case side.Opponent():
			score -= cornerOwned
		}
	}
	return score
}

func moveDifference(b Board, side Side) int {
	return len(b.LegalMoves(side)) - len(b.LegalMoves(side.Opponent()))
}

// SimpleEvaluator tallies discs, corners and mobility.
type SimpleEvaluator struct{}

func (SimpleEvaluator) Name() string { return SimpleEvaluatorName }

func (SimpleEvaluator) Evaluate(b Board, side Side) float64 {
	return float64(b.Score(side) + cornerDifference(b, side) + 2*moveDifference(b, side))
}

// PositionalEvaluator weighs discs by square, with corner and mobility terms.
type PositionalEvaluator struct{}

func (PositionalEvaluator) Name() string { return PositionalEvaluatorName }

func (PositionalEvaluator) Evaluate(b Board, side Side) float64 {
	opponent := side.Opponent()
	position := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case side:
				position += positionWeights[r][c]
			case opponent:
				position -= positionWeights[r][c]
			}
		}
	}
	return float64(position + 3*cornerDifference(b, side) + 2*moveDifference(b, side))
}

// PhaseAdaptiveEvaluator blends coin parity, corners, mobility and stability
// with weights chosen by the game phase.
type PhaseAdaptiveEvaluator struct {
	Policy PhasePolicy
}

func (PhaseAdaptiveEvaluator) Name() string { return PhaseAdaptiveEvaluatorName }

func (e PhaseAdaptiveEvaluator) Evaluate(b Board, side Side) float64 {
	occupied := b.Occupied()
	weights := e.Policy.Weights(e.Policy.Classify(occupied), occupied)
	return weights.Combine(Analyze(b, side))
}

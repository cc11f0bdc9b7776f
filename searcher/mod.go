package searcher

import (
	"context"
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
)

// Searcher picks a move for side by looking depth plies ahead.
type Searcher interface {
	Search(ctx context.Context, b game.Board, side game.Side, depth int) Result
}

type Result struct {
	Move        game.Move
	Found       bool
	Score       float64
	Interrupted bool
	Metrics     metrics.SearchMetric
}

// PassMode decides what happens at a ply where the side to move has no legal
// move but the opponent does.
type PassMode int

const (
	// ForwardPass hands the turn to the opponent without consuming depth.
	ForwardPass PassMode = iota
	// EvaluatePass scores the position immediately.
	EvaluatePass
)

func (p PassMode) String() string {
	switch p {
	case ForwardPass:
		return "forward"
	case EvaluatePass:
		return "evaluate"
	default:
		return fmt.Sprintf("passmode(%d)", int(p))
	}
}

func ParsePassMode(s string) (PassMode, error) {
	switch s {
	case "forward", "":
		return ForwardPass, nil
	case "evaluate":
		return EvaluatePass, nil
	default:
		return ForwardPass, fmt.Errorf("unknown pass mode %q", s)
	}
}

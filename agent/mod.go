package agent

import (
	"context"
	"othello/experiments/metrics"
	"othello/game"
)

type Agent interface {
	// FindMove picks a move for side. A decision with Found unset is a pass.
	FindMove(ctx context.Context, b game.Board, side game.Side) (Decision, error)
}

// Source records how a decision was reached.
type Source string

const (
	SourceOpening  Source = "opening"
	SourceSearch   Source = "search"
	SourceFallback Source = "fallback"
	SourceNone     Source = "none"
)

type Decision struct {
	Move    game.Move
	Found   bool
	Source  Source
	Score   float64
	Depth   int
	Phase   game.Phase
	Metrics metrics.SearchMetric
}

// DecideMove is the wire-level entry point: a board of -1/0/1 cells and the
// symbol of the side to move in, a coordinate out. ok is false when the side
// must pass. Only a malformed board or symbol is reported as an error.
func DecideMove(ctx context.Context, a Agent, cells [][]int, symbol int) (row, col int, ok bool, err error) {
	b, err := game.ParseBoard(cells)
	if err != nil {
		return 0, 0, false, err
	}
	side, err := game.ParseSide(symbol)
	if err != nil {
		return 0, 0, false, err
	}
	decision, err := a.FindMove(ctx, b, side)
	if err != nil || !decision.Found {
		return 0, 0, false, err
	}
	return decision.Move.Row, decision.Move.Col, true, nil
}

package engine

import (
	"context"
	"othello/experiments/metrics"
	"othello/game"
)

// MaxMoves bounds the number of plies, passes included. A game cannot last
// longer than 60 placements and as many passes.
const MaxMoves = 2 * (game.Size*game.Size - 4)

type Engine interface {
	// Run plays a game till it is over or MaxMoves plies elapsed. The winner is
	// game.Empty on a draw.
	Run(ctx context.Context) (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

package engine

import (
	"context"
	"fmt"
	"othello/agent"
	"othello/experiments/metrics"
	"othello/game"
	"time"

	"github.com/rs/zerolog/log"
)

// Local referees a game between two in-process agents.
type Local struct {
	Board  game.Board
	agents map[game.Side]agent.Agent
}

func LocalEngine(black, white agent.Agent) *Local {
	if black == nil || white == nil {
		panic("need an agent for each side")
	}
	return &Local{
		Board: game.NewBoard(),
		agents: map[game.Side]agent.Agent{
			game.Black: black,
			game.White: white,
		},
	}
}

// Run plays from the current board with black to move. A side without a
// legal move passes without consulting its agent. An illegal move from an
// agent is replaced by the first legal move.
func (e *Local) Run(ctx context.Context) (game.Side, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: game.Black,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", game.Black)

	side := game.Black
	for step := 1; !e.Board.GameOver() && step <= MaxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return game.Empty, gameMetric, moveMetrics, err
		}

		legal := e.Board.LegalMoves(side)
		if len(legal) == 0 {
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:   step,
				Player: side,
				Pass:   true,
				Source: string(agent.SourceNone),
			})
			gameMetric.Passes++
			side = side.Opponent()
			continue
		}

		decision, err := e.agents[side].FindMove(ctx, e.Board, side)
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("step %d, %s agent: %w", step, side, err)
		}

		move, source := decision.Move, decision.Source
		next, err := e.play(decision, side)
		if err != nil {
			log.Warn().Err(err).
				Str("side", side.String()).
				Stringer("move", decision.Move).
				Msg("agent returned an invalid move, playing first legal move")
			move, source = legal[0], agent.SourceFallback
			next = e.Board.MustApply(move, side)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       side,
			Move:         move,
			Source:       string(source),
			Score:        decision.Score,
			SearchMetric: decision.Metrics,
		})
		gameMetric.TotalMoves++
		e.Board = next
		side = side.Opponent()
	}

	winner := e.Board.Winner()
	gameMetric.Winner = winner
	gameMetric.BlackDiscs = e.Board.Count(game.Black)
	gameMetric.WhiteDiscs = e.Board.Count(game.White)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)

	log.Info().
		Str("winner", winner.String()).
		Int("black", gameMetric.BlackDiscs).
		Int("white", gameMetric.WhiteDiscs).
		Int("moves", gameMetric.TotalMoves).
		Int("passes", gameMetric.Passes).
		Msg("game over")
	return winner, gameMetric, moveMetrics, nil
}

func (e *Local) play(decision agent.Decision, side game.Side) (game.Board, error) {
	if !decision.Found {
		return e.Board, fmt.Errorf("%w: pass with legal moves available", game.ErrIllegalMove)
	}
	return e.Board.Apply(decision.Move, side)
}

package player

import (
	"context"
	"errors"
	"fmt"
	"othello/agent"
	"othello/communication"
	"othello/game"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Intervals are the pauses between polls of the match service.
type Intervals struct {
	Turn  time.Duration // between turn polls during a match
	Round time.Duration // while waiting for the match lottery
	Bench time.Duration // while benched for a round
	Retry time.Duration // after the service was unreachable
}

func DefaultIntervals() Intervals {
	return Intervals{
		Turn:  2 * time.Second,
		Round: 5 * time.Second,
		Bench: 15 * time.Second,
		Retry: time.Second,
	}
}

// Player joins a session and plays every match it is assigned with its agent.
type Player struct {
	Name      string
	Session   string
	comm      communication.Communicator
	agent     agent.Agent
	intervals Intervals
}

func NewPlayer(name, session string, comm communication.Communicator, a agent.Agent, intervals Intervals) *Player {
	return &Player{
		Name:      name,
		Session:   session,
		comm:      comm,
		agent:     a,
		intervals: intervals,
	}
}

// Run plays until the session closes or ctx is done. An unreachable service
// is retried; any other failure ends the run, a rejected move included.
func (p *Player) Run(ctx context.Context) error {
	logger := log.With().Str("player", p.Name).Str("session", p.Session).Logger()

	for {
		info, err := p.comm.Join(ctx, p.Session, p.Name)
		if err == nil {
			logger.Info().Msg(info.Message)
			break
		}
		if err := p.retry(ctx, err); err != nil {
			return fmt.Errorf("join: %w", err)
		}
	}

	for {
		info, err := p.comm.GameInfo(ctx, p.Session)
		if err != nil {
			if err := p.retry(ctx, err); err != nil {
				return fmt.Errorf("game info: %w", err)
			}
			continue
		}
		if info.SessionStatus != communication.SessionActive {
			logger.Info().Str("status", info.SessionStatus).Msg("session ended")
			return nil
		}
		if info.RoundStatus != communication.RoundReady {
			logger.Debug().Msg("waiting for match lottery")
			if err := sleep(ctx, p.intervals.Round); err != nil {
				return err
			}
			continue
		}

		played, err := p.playMatch(ctx)
		if err != nil {
			if err := p.retry(ctx, err); err != nil {
				return err
			}
			continue
		}
		if !played {
			if err := sleep(ctx, p.intervals.Round); err != nil {
				return err
			}
		}
	}
}

// retry waits out an unreachable service and reports any other error.
func (p *Player) retry(ctx context.Context, err error) error {
	if !errors.Is(err, communication.ErrUnavailable) {
		return err
	}
	log.Warn().Err(err).Str("player", p.Name).Msg("match service unavailable, retrying")
	return sleep(ctx, p.intervals.Retry)
}

// playMatch plays the current match to its end. It reports false when the
// player had no active match to play.
func (p *Player) playMatch(ctx context.Context) (bool, error) {
	match, err := p.comm.MatchInfo(ctx, p.Session, p.Name)
	for err == nil && match.MatchStatus == communication.MatchBench {
		log.Info().Str("player", p.Name).Msg("benched this round")
		if err := sleep(ctx, p.intervals.Bench); err != nil {
			return false, err
		}
		match, err = p.comm.MatchInfo(ctx, p.Session, p.Name)
	}
	if err != nil {
		return false, fmt.Errorf("match info: %w", err)
	}
	if match.MatchStatus != communication.MatchActive {
		return false, nil
	}

	side, err := game.ParseSide(match.Symbol)
	if err != nil {
		return false, err
	}
	logger := log.With().Str("player", p.Name).Str("match", match.Match).Str("side", side.String()).Logger()
	logger.Info().Msg("match started")

	for {
		turn, err := p.comm.TurnInfo(ctx, p.Session, p.Name, match.Match)
		if err != nil {
			return true, fmt.Errorf("turn info: %w", err)
		}
		if turn.GameOver {
			logger.Info().Str("winner", turn.Winner).Interface("score", turn.Score).Msg("game over")
			return true, nil
		}

		if turn.Turn {
			if err := p.takeTurn(ctx, logger, match.Match, turn.Board, match.Symbol); err != nil {
				return true, err
			}
		}
		if err := sleep(ctx, p.intervals.Turn); err != nil {
			return true, err
		}
	}
}

func (p *Player) takeTurn(ctx context.Context, logger zerolog.Logger, match string, board [][]int, symbol int) error {
	row, col, ok, err := agent.DecideMove(ctx, p.agent, board, symbol)
	if err != nil {
		return fmt.Errorf("decide move: %w", err)
	}
	if !ok {
		logger.Info().Msg("no legal move, passing")
		return nil
	}

	res, err := p.comm.Move(ctx, p.Session, p.Name, match, row, col)
	switch {
	case err == nil:
	case errors.Is(err, communication.ErrNotYourTurn), errors.Is(err, communication.ErrGameOver):
		// The turn moved on between the poll and the move; the next poll
		// shows where things stand.
		logger.Debug().Err(err).Int("row", row).Int("col", col).Msg("move too late")
		return nil
	case errors.Is(err, communication.ErrUnavailable):
		return err
	default:
		logger.Error().Err(err).Int("row", row).Int("col", col).Msg("move rejected")
		return fmt.Errorf("move (%d,%d): %w", row, col, err)
	}
	logger.Debug().Int("row", row).Int("col", col).Msg(res.Message)
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

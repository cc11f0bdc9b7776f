package gamemaster

import (
	"context"
	"fmt"
	"net/http"
	"othello/communication"
	"othello/game"

	"github.com/rs/zerolog/log"
)

func (l *Local) checkSession(session string) error {
	if session != l.session {
		return fmt.Errorf("%w: %q", communication.ErrUnknownSession, session)
	}
	return nil
}

func (l *Local) Join(ctx context.Context, session, player string) (communication.JoinInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.checkSession(session); err != nil {
		return communication.JoinInfo{}, err
	}
	if _, ok := l.symbol(player); ok {
		return communication.JoinInfo{Status: http.StatusOK, Message: "welcome back " + player}, nil
	}
	if len(l.players) == 2 {
		return communication.JoinInfo{}, fmt.Errorf("%w: %q", communication.ErrSessionFull, session)
	}

	l.players = append(l.players, player)
	log.Info().Str("session", session).Str("player", player).Msg("player joined")
	return communication.JoinInfo{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("%s joined session %s", player, session),
	}, nil
}

func (l *Local) GameInfo(ctx context.Context, session string) (communication.GameInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.checkSession(session); err != nil {
		return communication.GameInfo{}, err
	}

	info := communication.GameInfo{
		SessionStatus: communication.SessionActive,
		RoundStatus:   communication.RoundWaiting,
	}
	if l.over {
		info.SessionStatus = communication.SessionClosed
	}
	if len(l.players) == 2 {
		info.RoundStatus = communication.RoundReady
	}
	return info, nil
}

func (l *Local) MatchInfo(ctx context.Context, session, player string) (communication.MatchInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.checkSession(session); err != nil {
		return communication.MatchInfo{}, err
	}
	side, ok := l.symbol(player)
	if !ok {
		return communication.MatchInfo{}, fmt.Errorf("%w: %q", communication.ErrUnknownPlayer, player)
	}
	if len(l.players) < 2 {
		return communication.MatchInfo{MatchStatus: communication.MatchBench}, nil
	}

	info := communication.MatchInfo{
		MatchStatus: communication.MatchActive,
		Symbol:      int(side),
		Match:       l.match,
	}
	if l.over {
		info.MatchStatus = communication.MatchFinished
	}
	return info, nil
}

func (l *Local) checkMatch(session, player, match string) (game.Side, error) {
	if err := l.checkSession(session); err != nil {
		return game.Empty, err
	}
	side, ok := l.symbol(player)
	if !ok {
		return game.Empty, fmt.Errorf("%w: %q", communication.ErrUnknownPlayer, player)
	}
	if match != l.match || len(l.players) < 2 {
		return game.Empty, fmt.Errorf("%w: %q", communication.ErrUnknownMatch, match)
	}
	return side, nil
}

func (l *Local) TurnInfo(ctx context.Context, session, player, match string) (communication.TurnInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	side, err := l.checkMatch(session, player, match)
	if err != nil {
		return communication.TurnInfo{}, err
	}

	info := communication.TurnInfo{
		GameOver: l.over,
		Turn:     !l.over && side == l.toMove,
		Board:    l.board.Cells(),
		Score: map[string]int{
			l.name(game.Black): l.board.Count(game.Black),
			l.name(game.White): l.board.Count(game.White),
		},
	}
	if l.over {
		info.Winner = communication.Draw
		if winner := l.board.Winner(); winner != game.Empty {
			info.Winner = l.name(winner)
		}
	}
	return info, nil
}

func (l *Local) Move(ctx context.Context, session, player, match string, row, col int) (communication.MoveResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	side, err := l.checkMatch(session, player, match)
	if err != nil {
		return communication.MoveResult{}, err
	}
	if l.over {
		return communication.MoveResult{}, communication.ErrGameOver
	}
	if side != l.toMove {
		return communication.MoveResult{}, fmt.Errorf("%w: %s to move", communication.ErrNotYourTurn, l.toMove)
	}

	move := game.Move{Row: row, Col: col}
	next, err := l.board.Apply(move, side)
	if err != nil {
		return communication.MoveResult{}, err
	}
	l.board = next
	l.advance()

	log.Debug().Str("player", player).Stringer("move", move).Msg("move accepted")
	if l.over {
		log.Info().
			Str("match", l.match).
			Int("black", l.board.Count(game.Black)).
			Int("white", l.board.Count(game.White)).
			Msg("match finished")
	}
	return communication.MoveResult{Status: http.StatusOK, Message: "move accepted " + move.String()}, nil
}

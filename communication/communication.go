package communication

import (
	"context"
	"errors"
	"othello/game"
)

var (
	// ErrUnavailable marks transient failures reaching the match service.
	// Callers retry instead of aborting.
	ErrUnavailable = errors.New("match service unavailable")

	ErrUnknownSession = errors.New("unknown session")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownMatch   = errors.New("unknown match")
	ErrSessionFull    = errors.New("session full")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameOver       = errors.New("game over")
)

// errorCodes name the errors a service reports so that they survive the trip
// over the wire.
var errorCodes = []struct {
	code string
	err  error
}{
	{"unknown_session", ErrUnknownSession},
	{"unknown_player", ErrUnknownPlayer},
	{"unknown_match", ErrUnknownMatch},
	{"session_full", ErrSessionFull},
	{"not_your_turn", ErrNotYourTurn},
	{"game_over", ErrGameOver},
	{"illegal_move", game.ErrIllegalMove},
	{"invalid_coordinate", game.ErrInvalidCoordinate},
}

// ErrorCode returns the code of the first known error in err's chain, or ""
// when there is none.
func ErrorCode(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ""
}

// CodeError is the inverse of ErrorCode. Unknown codes yield nil.
func CodeError(code string) error {
	for _, e := range errorCodes {
		if e.code == code {
			return e.err
		}
	}
	return nil
}

const (
	SessionActive = "active"
	SessionClosed = "closed"

	RoundReady   = "ready"
	RoundWaiting = "waiting"

	MatchActive   = "active"
	MatchBench    = "bench"
	MatchFinished = "finished"

	Draw = "draw"
)

// Communicator abstracts the match service a player talks to.
type Communicator interface {
	Join(ctx context.Context, session, player string) (JoinInfo, error)
	GameInfo(ctx context.Context, session string) (GameInfo, error)
	MatchInfo(ctx context.Context, session, player string) (MatchInfo, error)
	TurnInfo(ctx context.Context, session, player, match string) (TurnInfo, error)
	Move(ctx context.Context, session, player, match string, row, col int) (MoveResult, error)
}

type JoinInfo struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type GameInfo struct {
	SessionStatus string `json:"session_status"`
	RoundStatus   string `json:"round_status"`
}

type MatchInfo struct {
	MatchStatus string `json:"match_status"`
	Symbol      int    `json:"symbol"`
	Match       string `json:"match"`
}

type TurnInfo struct {
	GameOver bool           `json:"game_over"`
	Turn     bool           `json:"turn"`
	Board    [][]int        `json:"board"`
	Score    map[string]int `json:"score"`
	Winner   string         `json:"winner"` // Player name or Draw once the game is over
}

// MoveResult is also the body of every rejected request, with Code set.
type MoveResult struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

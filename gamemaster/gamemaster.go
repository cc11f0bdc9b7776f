package gamemaster

import (
	"othello/game"
	"sync"
)

// Local is an in-memory match service hosting one session with a single
// match between the first two players to join. The first player plays black.
type Local struct {
	mu      sync.Mutex
	session string
	match   string
	players []string
	board   game.Board
	toMove  game.Side
	over    bool
}

func NewLocal(session string) *Local {
	return &Local{
		session: session,
		match:   session + "-1",
		board:   game.NewBoard(),
		toMove:  game.Black,
	}
}

func (l *Local) Board() game.Board {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.board
}

func (l *Local) Over() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.over
}

func (l *Local) symbol(player string) (game.Side, bool) {
	for i, p := range l.players {
		if p == player {
			if i == 0 {
				return game.Black, true
			}
			return game.White, true
		}
	}
	return game.Empty, false
}

func (l *Local) name(side game.Side) string {
	if side == game.Black {
		return l.players[0]
	}
	return l.players[1]
}

// advance hands the turn over after a move. A side without a legal move is
// skipped; the game ends when neither side can move.
func (l *Local) advance() {
	next := l.toMove.Opponent()
	switch {
	case l.board.HasMoves(next):
		l.toMove = next
	case l.board.HasMoves(l.toMove):
	default:
		l.over = true
	}
}

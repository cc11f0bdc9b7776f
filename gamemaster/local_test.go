package gamemaster

import (
	"context"
	"othello/communication"
	"othello/game"
	"testing"

	"github.com/stretchr/testify/require"
)

const session = "s"

func joined(t *testing.T) (*Local, string) {
	t.Helper()
	ctx := context.Background()
	l := NewLocal(session)
	_, err := l.Join(ctx, session, "alice")
	require.NoError(t, err)
	_, err = l.Join(ctx, session, "bob")
	require.NoError(t, err)
	info, err := l.MatchInfo(ctx, session, "alice")
	require.NoError(t, err)
	return l, info.Match
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(session)

	_, err := l.Join(ctx, "other", "alice")
	require.ErrorIs(t, err, communication.ErrUnknownSession)

	info, err := l.Join(ctx, session, "alice")
	require.NoError(t, err)
	require.Equal(t, 200, info.Status)

	gi, err := l.GameInfo(ctx, session)
	require.NoError(t, err)
	require.Equal(t, communication.SessionActive, gi.SessionStatus)
	require.Equal(t, communication.RoundWaiting, gi.RoundStatus)

	mi, err := l.MatchInfo(ctx, session, "alice")
	require.NoError(t, err)
	require.Equal(t, communication.MatchBench, mi.MatchStatus)

	_, err = l.Join(ctx, session, "bob")
	require.NoError(t, err)
	_, err = l.Join(ctx, session, "carol")
	require.ErrorIs(t, err, communication.ErrSessionFull)

	info, err = l.Join(ctx, session, "alice")
	require.NoError(t, err, "Rejoining is allowed")
	require.Equal(t, 200, info.Status)

	gi, err = l.GameInfo(ctx, session)
	require.NoError(t, err)
	require.Equal(t, communication.RoundReady, gi.RoundStatus)

	_, err = l.MatchInfo(ctx, session, "carol")
	require.ErrorIs(t, err, communication.ErrUnknownPlayer)
}

func TestMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("symbols follow join order", func(t *testing.T) {
		l, match := joined(t)
		alice, err := l.MatchInfo(ctx, session, "alice")
		require.NoError(t, err)
		require.Equal(t, communication.MatchActive, alice.MatchStatus)
		require.Equal(t, int(game.Black), alice.Symbol)

		bob, err := l.MatchInfo(ctx, session, "bob")
		require.NoError(t, err)
		require.Equal(t, int(game.White), bob.Symbol)
		require.Equal(t, match, bob.Match)
	})

	t.Run("turns alternate", func(t *testing.T) {
		l, match := joined(t)

		ti, err := l.TurnInfo(ctx, session, "alice", match)
		require.NoError(t, err)
		require.True(t, ti.Turn)
		require.False(t, ti.GameOver)
		require.Equal(t, game.NewBoard().Cells(), ti.Board)
		require.Equal(t, map[string]int{"alice": 2, "bob": 2}, ti.Score)

		_, err = l.Move(ctx, session, "bob", match, 2, 4)
		require.ErrorIs(t, err, communication.ErrNotYourTurn)

		_, err = l.Move(ctx, session, "alice", match, 0, 0)
		require.ErrorIs(t, err, game.ErrIllegalMove)

		_, err = l.Move(ctx, session, "alice", match, 9, 0)
		require.ErrorIs(t, err, game.ErrInvalidCoordinate)

		res, err := l.Move(ctx, session, "alice", match, 2, 3)
		require.NoError(t, err)
		require.Equal(t, 200, res.Status)

		ti, err = l.TurnInfo(ctx, session, "bob", match)
		require.NoError(t, err)
		require.True(t, ti.Turn)
		require.Equal(t, map[string]int{"alice": 4, "bob": 1}, ti.Score)

		_, err = l.TurnInfo(ctx, session, "bob", "nope")
		require.ErrorIs(t, err, communication.ErrUnknownMatch)
	})

	t.Run("passes and game over", func(t *testing.T) {
		l, match := joined(t)
		var b game.Board
		b[0][0], b[0][1] = game.White, game.Black
		b[7][0], b[7][1] = game.White, game.Black
		l.board, l.toMove = b, game.White

		_, err := l.Move(ctx, session, "bob", match, 0, 2)
		require.NoError(t, err)

		// Black has no move, so white keeps the turn.
		ti, err := l.TurnInfo(ctx, session, "bob", match)
		require.NoError(t, err)
		require.True(t, ti.Turn)
		ti, err = l.TurnInfo(ctx, session, "alice", match)
		require.NoError(t, err)
		require.False(t, ti.Turn)

		_, err = l.Move(ctx, session, "bob", match, 7, 2)
		require.NoError(t, err)
		require.True(t, l.Over())

		ti, err = l.TurnInfo(ctx, session, "alice", match)
		require.NoError(t, err)
		require.True(t, ti.GameOver)
		require.False(t, ti.Turn)
		require.Equal(t, "bob", ti.Winner)

		gi, err := l.GameInfo(ctx, session)
		require.NoError(t, err)
		require.Equal(t, communication.SessionClosed, gi.SessionStatus)

		mi, err := l.MatchInfo(ctx, session, "alice")
		require.NoError(t, err)
		require.Equal(t, communication.MatchFinished, mi.MatchStatus)

		_, err = l.Move(ctx, session, "bob", match, 5, 5)
		require.ErrorIs(t, err, communication.ErrGameOver)
	})
}

package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// boardFrom places the listed discs on an otherwise empty board.
func boardFrom(black, white []Move) Board {
	var b Board
	for _, m := range black {
		b[m.Row][m.Col] = Black
	}
	for _, m := range white {
		b[m.Row][m.Col] = White
	}
	return b
}

// fullBoard fills rows 0-4 with black and rows 5-7 with white.
func fullBoard() Board {
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if r < 5 {
				b[r][c] = Black
			} else {
				b[r][c] = White
			}
		}
	}
	return b
}

func TestSide(t *testing.T) {
	t.Run("opponent is an involution", func(t *testing.T) {
		require.Equal(t, White, Black.Opponent())
		require.Equal(t, Black, White.Opponent())
		require.Equal(t, Empty, Empty.Opponent())
		require.Equal(t, Black, Black.Opponent().Opponent())
	})

	t.Run("parsing wire symbols", func(t *testing.T) {
		s, err := ParseSide(1)
		require.NoError(t, err)
		require.Equal(t, White, s)

		s, err = ParseSide(-1)
		require.NoError(t, err)
		require.Equal(t, Black, s)

		for _, symbol := range []int{0, 2, -2, 255} {
			_, err := ParseSide(symbol)
			require.ErrorIs(t, err, ErrInvalidSide, "symbol %d should be rejected", symbol)
		}
	})
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	require.Equal(t, 4, b.Occupied())
	require.Equal(t, 2, b.Count(Black))
	require.Equal(t, 2, b.Count(White))
	require.Equal(t, White, b[3][3])
	require.Equal(t, Black, b[3][4])
	require.False(t, b.GameOver())
}

func TestParseBoard(t *testing.T) {
	t.Run("round trips the wire format", func(t *testing.T) {
		b := NewBoard()
		parsed, err := ParseBoard(b.Cells())
		require.NoError(t, err)
		require.Equal(t, b, parsed)
	})

	t.Run("rejects malformed grids", func(t *testing.T) {
		_, err := ParseBoard(make([][]int, 7))
		require.ErrorIs(t, err, ErrMalformedBoard, "Should reject a missing row")

		cells := NewBoard().Cells()
		cells[2] = cells[2][:5]
		_, err = ParseBoard(cells)
		require.ErrorIs(t, err, ErrMalformedBoard, "Should reject a short row")

		cells = NewBoard().Cells()
		cells[0][0] = 2
		_, err = ParseBoard(cells)
		require.ErrorIs(t, err, ErrMalformedBoard, "Should reject an unknown marker")
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("opening moves in row-major order", func(t *testing.T) {
		b := NewBoard()
		require.Equal(t, []Move{{2, 3}, {3, 2}, {4, 5}, {5, 4}}, b.LegalMoves(Black))
		require.Equal(t, []Move{{2, 4}, {3, 5}, {4, 2}, {5, 3}}, b.LegalMoves(White))
	})

	t.Run("occupied cells are never legal", func(t *testing.T) {
		b := NewBoard()
		require.False(t, b.IsLegal(3, 3, Black))
		require.False(t, b.IsLegal(3, 4, Black))
	})

	t.Run("a run must be closed by an own disc", func(t *testing.T) {
		b := boardFrom(nil, []Move{{0, 1}, {0, 2}})
		require.False(t, b.IsLegal(0, 0, Black), "Run reaching an empty cell flanks nothing")

		b = boardFrom([]Move{{0, 3}}, []Move{{0, 1}, {0, 2}})
		require.True(t, b.IsLegal(0, 0, Black))
	})

	t.Run("empty side has no moves", func(t *testing.T) {
		require.Empty(t, NewBoard().LegalMoves(Empty))
	})

	t.Run("panics on out of range coordinates", func(t *testing.T) {
		b := NewBoard()
		require.Panics(t, func() { b.IsLegal(8, 0, Black) })
		require.Panics(t, func() { b.IsLegal(0, -1, Black) })
	})

	t.Run("side with no moves while the opponent has some", func(t *testing.T) {
		b := boardFrom([]Move{{0, 1}}, []Move{{0, 0}})
		require.Empty(t, b.LegalMoves(Black))
		require.Equal(t, []Move{{0, 2}}, b.LegalMoves(White))
		require.False(t, b.GameOver())
	})

	t.Run("full board is terminal", func(t *testing.T) {
		b := fullBoard()
		require.Empty(t, b.LegalMoves(Black))
		require.Empty(t, b.LegalMoves(White))
		require.True(t, b.GameOver())
	})
}

func TestApply(t *testing.T) {
	t.Run("places the disc and flips the flanked run", func(t *testing.T) {
		b := NewBoard()
		next, err := b.Apply(Move{2, 3}, Black)
		require.NoError(t, err)
		require.Equal(t, Black, next[2][3])
		require.Equal(t, Black, next[3][3], "Flanked disc should flip")
		require.Equal(t, 4, next.Count(Black))
		require.Equal(t, 1, next.Count(White))
	})

	t.Run("flips in several directions at once", func(t *testing.T) {
		b := boardFrom(
			[]Move{{0, 2}, {2, 0}, {2, 2}},
			[]Move{{0, 1}, {1, 0}, {1, 1}},
		)
		next, err := b.Apply(Move{0, 0}, Black)
		require.NoError(t, err)
		require.Equal(t, 7, next.Count(Black))
		require.Equal(t, 0, next.Count(White))
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		b := NewBoard()
		before := b
		_, err := b.Apply(Move{2, 3}, Black)
		require.NoError(t, err)
		require.Equal(t, before, b)
	})

	t.Run("rejects illegal input", func(t *testing.T) {
		b := NewBoard()

		_, err := b.Apply(Move{0, 0}, Black)
		require.ErrorIs(t, err, ErrIllegalMove, "Should reject a move that flanks nothing")

		_, err = b.Apply(Move{3, 3}, Black)
		require.ErrorIs(t, err, ErrIllegalMove, "Should reject an occupied cell")

		_, err = b.Apply(Move{8, 3}, Black)
		require.ErrorIs(t, err, ErrInvalidCoordinate)

		_, err = b.Apply(Move{2, 3}, Empty)
		require.ErrorIs(t, err, ErrInvalidSide)
	})

	t.Run("MustApply panics on illegal moves", func(t *testing.T) {
		require.Panics(t, func() { NewBoard().MustApply(Move{0, 0}, White) })
	})
}

func TestWinner(t *testing.T) {
	require.Equal(t, Black, fullBoard().Winner())
	require.Equal(t, 16, fullBoard().Score(Black))
	require.Equal(t, Empty, NewBoard().Winner())
}

// TestRandomPlayouts checks the move generator and applicator invariants on
// every position of a batch of random games.
func TestRandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		b := NewBoard()
		side := Black
		for !b.GameOver() {
			moves := b.LegalMoves(side)

			legal := map[Move]bool{}
			for _, m := range moves {
				require.Equal(t, Empty, b.At(m), "Legal move must target an empty cell")
				require.True(t, b.IsLegal(m.Row, m.Col, side))
				legal[m] = true
			}
			for r := 0; r < Size; r++ {
				for c := 0; c < Size; c++ {
					if b.IsLegal(r, c, side) {
						require.True(t, legal[Move{r, c}], "IsLegal and LegalMoves disagree on (%d,%d)", r, c)
					}
				}
			}

			if len(moves) == 0 {
				side = side.Opponent()
				continue
			}

			before := b
			move := moves[rng.Intn(len(moves))]
			next := b.MustApply(move, side)

			require.Equal(t, before, b, "Apply must not mutate its input")
			require.GreaterOrEqual(t, next.Count(side)-b.Count(side), 2, "Own discs grow by the placed disc plus at least one flip")
			require.Equal(t, b.Occupied()+1, next.Occupied())

			b = next
			side = side.Opponent()
		}
		require.Empty(t, b.LegalMoves(Black))
		require.Empty(t, b.LegalMoves(White))
	}
}

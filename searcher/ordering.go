package searcher

import (
	"othello/game"

	"golang.org/x/exp/slices"
)

// orderMoves sorts moves by the static value of their square, best first for
// the maximising side and worst first for the minimising side. The sort is
// stable so equal squares keep their row-major order.
func orderMoves(moves []game.Move, maximizing bool) {
	slices.SortStableFunc(moves, func(a, b game.Move) int {
		wa, wb := game.PositionWeight(a), game.PositionWeight(b)
		if maximizing {
			return wb - wa
		}
		return wa - wb
	})
}

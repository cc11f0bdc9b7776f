package game

import (
	"fmt"
	"strings"
)

// Board is an 8x8 grid. It is a value: every operation that places a disc
// returns a new Board and leaves the receiver untouched.
type Board [Size][Size]Side

// NewBoard returns the canonical starting position.
func NewBoard() Board {
	var b Board
	mid := Size / 2
	b[mid-1][mid-1], b[mid][mid] = White, White
	b[mid-1][mid], b[mid][mid-1] = Black, Black
	return b
}

// ParseBoard converts the wire representation into a Board.
func ParseBoard(cells [][]int) (Board, error) {
	var b Board
	if len(cells) != Size {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrMalformedBoard, Size, len(cells))
	}
	for r, row := range cells {
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, r, len(row))
		}
		for c, v := range row {
			if v < -1 || v > 1 {
				return b, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrMalformedBoard, r, c, v)
			}
			b[r][c] = Side(v)
		}
	}
	return b, nil
}

// Cells converts the board back to its wire representation.
func (b Board) Cells() [][]int {
	cells := make([][]int, Size)
	for r := range b {
		cells[r] = make([]int, Size)
		for c, s := range b[r] {
			cells[r][c] = int(s)
		}
	}
	return cells
}

func (b Board) At(m Move) Side {
	return b[m.Row][m.Col]
}

func (b Board) Count(s Side) int {
	n := 0
	for r := range b {
		for _, cell := range b[r] {
			if cell == s {
				n++
			}
		}
	}
	return n
}

// Occupied is the number of non-empty cells.
func (b Board) Occupied() int {
	return Size*Size - b.Count(Empty)
}

func (b Board) String() string {
	var sb strings.Builder
	for r := range b {
		for c, s := range b[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch s {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// IsLegal reports whether side may place a disc at (row, col). Out of range
// coordinates are a caller bug and panic.
func (b Board) IsLegal(row, col int, side Side) bool {
	if !inBounds(row, col) {
		panic(fmt.Sprintf("IsLegal: %v: (%d,%d)", ErrInvalidCoordinate, row, col))
	}
	if b[row][col] != Empty || !side.Valid() {
		return false
	}
	for _, d := range directions {
		if b.flankLength(row, col, d, side) > 0 {
			return true
		}
	}
	return false
}

// flankLength returns how many opponent discs a disc of side placed at
// (row, col) would flip along d, or 0 when the run is not closed by side.
func (b Board) flankLength(row, col int, d direction, side Side) int {
	opponent := side.Opponent()
	r, c := row+d.dr, col+d.dc
	n := 0
	for inBounds(r, c) && b[r][c] == opponent {
		r += d.dr
		c += d.dc
		n++
	}
	if n == 0 || !inBounds(r, c) || b[r][c] != side {
		return 0
	}
	return n
}

// LegalMoves lists the legal moves of side in row-major order.
func (b Board) LegalMoves(side Side) []Move {
	var moves []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.IsLegal(r, c, side) {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

func (b Board) HasMoves(side Side) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.IsLegal(r, c, side) {
				return true
			}
		}
	}
	return false
}

// GameOver reports whether neither side can move.
func (b Board) GameOver() bool {
	return !b.HasMoves(Black) && !b.HasMoves(White)
}

// Apply places a disc for side at m and flips every flanked run.
func (b Board) Apply(m Move, side Side) (Board, error) {
	if !m.InBounds() {
		return b, fmt.Errorf("%w: %v", ErrInvalidCoordinate, m)
	}
	if !side.Valid() {
		return b, fmt.Errorf("%w: %v", ErrInvalidSide, side)
	}
	if b[m.Row][m.Col] != Empty {
		return b, fmt.Errorf("%w: %v is occupied", ErrIllegalMove, m)
	}

	next := b
	flipped := 0
	for _, d := range directions {
		n := b.flankLength(m.Row, m.Col, d, side)
		for i := 1; i <= n; i++ {
			next[m.Row+i*d.dr][m.Col+i*d.dc] = side
		}
		flipped += n
	}
	if flipped == 0 {
		return b, fmt.Errorf("%w: %v flanks nothing for %v", ErrIllegalMove, m, side)
	}
	next[m.Row][m.Col] = side
	return next, nil
}

// MustApply is Apply for moves already known to be legal.
func (b Board) MustApply(m Move, side Side) Board {
	next, err := b.Apply(m, side)
	if err != nil {
		panic(err)
	}
	return next
}

// Score returns the disc difference from side's perspective.
func (b Board) Score(side Side) int {
	return b.Count(side) - b.Count(side.Opponent())
}

// Winner returns the side with more discs, or Empty on a draw.
func (b Board) Winner() Side {
	switch diff := b.Score(Black); {
	case diff > 0:
		return Black
	case diff < 0:
		return White
	default:
		return Empty
	}
}

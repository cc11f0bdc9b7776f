package game

import (
	"errors"
	"fmt"
)

const Size = 8

var (
	ErrMalformedBoard    = errors.New("malformed board")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidSide       = errors.New("invalid side")
	ErrIllegalMove       = errors.New("illegal move")
)

// Side is the content of a cell and the identity of a player. The values match
// the symbols used by the match service.
type Side int8

const (
	Black Side = -1
	Empty Side = 0
	White Side = 1
)

// Opponent returns the other side. Empty maps to itself.
func (s Side) Opponent() Side {
	return -s
}

func (s Side) Valid() bool {
	return s == Black || s == White
}

func (s Side) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("side(%d)", int8(s))
	}
}

// ParseSide converts a wire symbol into a side.
func ParseSide(symbol int) (Side, error) {
	s := Side(symbol)
	if symbol < -1 || symbol > 1 || !s.Valid() {
		return Empty, fmt.Errorf("%w: %d", ErrInvalidSide, symbol)
	}
	return s, nil
}

// Move is a board coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

type direction struct{ dr, dc int }

// directions are the eight unit vectors scanned for flanks. Read only.
var directions = [8]direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// corners are never flankable once taken. Read only.
var corners = [4]Move{{0, 0}, {0, Size - 1}, {Size - 1, 0}, {Size - 1, Size - 1}}

func isCorner(r, c int) bool {
	return (r == 0 || r == Size-1) && (c == 0 || c == Size-1)
}

func inBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

package game

// Components are the independently computed sub-scores of a position.
type Components struct {
	CoinParity float64
	Corner     float64
	Mobility   float64
	Stability  float64
}

func (c Components) vector() []float64 {
	return []float64{c.CoinParity, c.Corner, c.Mobility, c.Stability}
}

// Analyze computes every component from side's perspective.
func Analyze(b Board, side Side) Components {
	return Components{
		CoinParity: CoinParity(b, side),
		Corner:     CornerScore(b, side),
		Mobility:   Mobility(b, side),
		Stability:  Stability(b, side),
	}
}

// CoinParity is 100 * (own - opponent) / (own + opponent), 0 on an empty board.
func CoinParity(b Board, side Side) float64 {
	own, opp := b.Count(side), b.Count(side.Opponent())
	if own+opp == 0 {
		return 0
	}
	return 100 * float64(own-opp) / float64(own+opp)
}

const (
	cornerOwned     = 25
	cornerReachable = 10
	cornerConceded  = -5
)

// CornerScore rewards owned corners and empty corners side could take next.
func CornerScore(b Board, side Side) float64 {
	opponent := side.Opponent()
	score := 0
	for _, m := range corners {
		switch b.At(m) {
		case side:
			score += cornerOwned
		case opponent:
			score -= cornerOwned
		default:
			if b.IsLegal(m.Row, m.Col, side) {
				score += cornerReachable
			} else if b.IsLegal(m.Row, m.Col, opponent) {
				score += cornerConceded
			}
		}
	}
	return float64(score)
}

// Mobility combines the normalised legal move difference with half the
// potential mobility difference.
func Mobility(b Board, side Side) float64 {
	opponent := side.Opponent()
	own, opp := len(b.LegalMoves(side)), len(b.LegalMoves(opponent))

	actual := 0.0
	if own+opp > 0 {
		actual = 100 * float64(own-opp) / float64(own+opp)
	}
	potential := PotentialMobility(b, side) - PotentialMobility(b, opponent)
	return actual + 0.5*float64(potential)
}

// PotentialMobility counts distinct empty cells adjacent to the discs of
// side's opponent.
func PotentialMobility(b Board, side Side) int {
	opponent := side.Opponent()
	var seen [Size][Size]bool
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != opponent {
				continue
			}
			for _, d := range directions {
				nr, nc := r+d.dr, c+d.dc
				if inBounds(nr, nc) && b[nr][nc] == Empty && !seen[nr][nc] {
					seen[nr][nc] = true
					n++
				}
			}
		}
	}
	return n
}

type DiscClass int

const (
	Unstable DiscClass = iota
	SemiStable
	Stable
)

var stabilityValue = [...]int{Unstable: -1, SemiStable: 1, Stable: 3}

func (d DiscClass) Value() int {
	return stabilityValue[d]
}

// Stability sums the classification of side's discs minus the opponent's.
func Stability(b Board, side Side) float64 {
	opponent := side.Opponent()
	own, opp := 0, 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case side:
				own += b.Classify(r, c).Value()
			case opponent:
				opp += b.Classify(r, c).Value()
			}
		}
	}
	return float64(own - opp)
}

// axes are one direction per line through a cell; the line is scanned both
// ways.
var axes = [4]direction{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Classify rates the disc at (row, col). A disc is unstable when the opponent
// can flip it with the next move, stable when it is a corner or no line
// through it can be flanked later, and semi-stable otherwise.
func (b Board) Classify(row, col int) DiscClass {
	if isCorner(row, col) {
		return Stable
	}
	owner := b[row][col]
	vulnerable := false
	for _, axis := range axes {
		fwd := b.scanRun(row, col, axis, owner)
		back := b.scanRun(row, col, direction{-axis.dr, -axis.dc}, owner)

		// Flippable now: an empty cell closes one side of the own run and an
		// opponent disc the other.
		if (fwd == Empty && back == owner.Opponent()) || (back == Empty && fwd == owner.Opponent()) {
			return Unstable
		}
		if b.lineVulnerable(row, col, axis, owner, fwd, back) {
			vulnerable = true
		}
	}
	if vulnerable {
		return SemiStable
	}
	return Stable
}

// scanRun skips the owner discs next to (row, col) along d and returns the
// cell that ends the run, or owner itself when the run reaches the edge.
func (b Board) scanRun(row, col int, d direction, owner Side) Side {
	r, c := row+d.dr, col+d.dc
	for inBounds(r, c) && b[r][c] == owner {
		r += d.dr
		c += d.dc
	}
	if !inBounds(r, c) {
		return owner
	}
	return b[r][c]
}

// lineVulnerable reports whether a later move could flank the disc along the
// axis. Lines anchored to the edge by an unbroken own run are safe. Otherwise
// the line is open when the occupied segment through the disc touches an
// empty cell and holds an opposing disc, or touches empty cells at both ends.
func (b Board) lineVulnerable(row, col int, axis direction, owner, fwd, back Side) bool {
	if fwd == owner || back == owner {
		return false
	}
	fwdEmpty, fwdOpp := b.segment(row, col, axis, owner)
	backEmpty, backOpp := b.segment(row, col, direction{-axis.dr, -axis.dc}, owner)
	if !fwdEmpty && !backEmpty {
		return false
	}
	return fwdOpp || backOpp || (fwdEmpty && backEmpty)
}

// segment walks the occupied cells from (row, col) along d and reports
// whether the walk stops at an empty cell and whether it crossed an opposing
// disc.
func (b Board) segment(row, col int, d direction, owner Side) (endsEmpty, sawOpponent bool) {
	r, c := row+d.dr, col+d.dc
	for inBounds(r, c) {
		switch b[r][c] {
		case Empty:
			return true, sawOpponent
		case owner:
		default:
			sawOpponent = true
		}
		r += d.dr
		c += d.dc
	}
	return false, sawOpponent
}

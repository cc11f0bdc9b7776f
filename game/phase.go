package game

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

type Phase int

const (
	Opening Phase = iota
	Midgame
	Late
	VeryLate
)

func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Midgame:
		return "midgame"
	case Late:
		return "late"
	case VeryLate:
		return "very-late"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// WeightProfile weighs the four evaluator components.
type WeightProfile struct {
	CoinParity float64 `yaml:"coin_parity"`
	Corner     float64 `yaml:"corner"`
	Mobility   float64 `yaml:"mobility"`
	Stability  float64 `yaml:"stability"`
}

func (w WeightProfile) vector() []float64 {
	return []float64{w.CoinParity, w.Corner, w.Mobility, w.Stability}
}

// Combine returns the weighted sum of the components.
func (w WeightProfile) Combine(c Components) float64 {
	return floats.Dot(w.vector(), c.vector())
}

// PhasePolicy maps board occupancy to a phase, a search depth and weights.
// It is a value and never changes once built.
type PhasePolicy struct {
	OpeningMax int `yaml:"opening_max"`
	MidgameMax int `yaml:"midgame_max"`
	LateMax    int `yaml:"late_max"`
	// Above this occupancy the late phases switch to the endgame profile.
	EndgameWeightsAbove int `yaml:"endgame_weights_above"`

	Depths [4]int `yaml:"depths"` // indexed by Phase

	Early   WeightProfile `yaml:"early"`
	Mid     WeightProfile `yaml:"mid"`
	Late    WeightProfile `yaml:"late"`
	Endgame WeightProfile `yaml:"endgame"`
}

func DefaultPhasePolicy() PhasePolicy {
	return PhasePolicy{
		OpeningMax:          20,
		MidgameMax:          45,
		LateMax:             54,
		EndgameWeightsAbove: 55,
		Depths:              [4]int{3, 4, 5, 6},
		Early:               WeightProfile{CoinParity: 10, Corner: 25, Mobility: 20, Stability: 30},
		Mid:                 WeightProfile{CoinParity: 15, Corner: 35, Mobility: 15, Stability: 35},
		Late:                WeightProfile{CoinParity: 25, Corner: 30, Mobility: 15, Stability: 30},
		Endgame:             WeightProfile{CoinParity: 50, Corner: 20, Mobility: 10, Stability: 20},
	}
}

// Validate checks that thresholds are ordered and depths are positive.
func (p PhasePolicy) Validate() error {
	if !(0 <= p.OpeningMax && p.OpeningMax < p.MidgameMax && p.MidgameMax < p.LateMax && p.LateMax < Size*Size) {
		return fmt.Errorf("phase thresholds must increase within the board: %d, %d, %d", p.OpeningMax, p.MidgameMax, p.LateMax)
	}
	for i, d := range p.Depths {
		if d <= 0 {
			return fmt.Errorf("depth for %v must be positive, got %d", Phase(i), d)
		}
	}
	return nil
}

func (p PhasePolicy) Classify(occupied int) Phase {
	switch {
	case occupied <= p.OpeningMax:
		return Opening
	case occupied <= p.MidgameMax:
		return Midgame
	case occupied <= p.LateMax:
		return Late
	default:
		return VeryLate
	}
}

// PhaseAndDepth returns the phase for the occupied count and its search depth.
func (p PhasePolicy) PhaseAndDepth(occupied int) (Phase, int) {
	phase := p.Classify(occupied)
	return phase, p.Depths[phase]
}

// Weights returns the evaluator weights for a phase. Late phases close to a
// full board favour coin parity, which is nearest to the final score.
func (p PhasePolicy) Weights(phase Phase, occupied int) WeightProfile {
	switch phase {
	case Opening:
		return p.Early
	case Midgame:
		return p.Mid
	default:
		if occupied > p.EndgameWeightsAbove {
			return p.Endgame
		}
		return p.Late
	}
}

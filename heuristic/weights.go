package heuristic

import "math"

// Weights tunes how the scoring terms combine. A positive Threat weight keeps
// the agent away from the opponent; a negative one hunts it.
type Weights struct {
	Space          float64 `json:"w_space"`
	SpaceAdvantage float64 `json:"w_space_advantage"`
	Threat         float64 `json:"w_threat"`
	Continuity     float64 `json:"w_continuity"`
	Freedom        float64 `json:"w_freedom"`
	Territory      float64 `json:"w_territory"`
	Survival       float64 `json:"w_survival"`

	// TrapThreshold is the smallest reachable area that is not a trap.
	TrapThreshold int `json:"trap_threshold"`
	// TerritoryDepth bounds the contested-area search, 0 is unlimited.
	TerritoryDepth int `json:"territory_depth"`
}

// DefaultWeights favour open space above all else, with mild avoidance of
// the opponent.
//
//	Space 1.0, SpaceAdvantage 0.5, Threat 0.25, Continuity 1.0, Freedom 0.5,
//	Territory 4.0, Survival 8.0, TrapThreshold 4, TerritoryDepth 6
func DefaultWeights() Weights {
	return Weights{
		Space:          1.0,
		SpaceAdvantage: 0.5,
		Threat:         0.25,
		Continuity:     1.0,
		Freedom:        0.5,
		Territory:      4.0,
		Survival:       8.0,
		TrapThreshold:  4,
		TerritoryDepth: 6,
	}
}

// TrapPenalty is larger than twice the largest magnitude the other terms can
// reach on g, so a trapped candidate always ranks below an untrapped one.
func TrapPenalty(g sized, w Weights) float64 {
	cells := float64(g.Size())
	bound := math.Abs(w.Space)*cells +
		math.Abs(w.SpaceAdvantage)*cells +
		math.Abs(w.Threat)*cells +
		math.Abs(w.Continuity) +
		math.Abs(w.Freedom)*4 +
		math.Abs(w.Territory) +
		math.Abs(w.Survival)
	return 2*bound + 1
}

type sized interface {
	Size() int
}

package heuristic

import (
	"github.com/go-kit/log"

	"github.com/Cameron-Kurotori/caseclosed/grid"
	"github.com/Cameron-Kurotori/caseclosed/search"
)

// State is everything about the turn the scorer reads besides the board.
type State struct {
	Position    grid.Cell
	Opponent    grid.Cell
	HasOpponent bool
	// OpponentLastDirection is grid.None when unknown.
	OpponentLastDirection grid.Direction
}

// PredictedOpponent is where the opponent lands if it keeps its heading.
func (s State) PredictedOpponent() (grid.Cell, bool) {
	if !s.HasOpponent || !s.OpponentLastDirection.Valid() {
		return grid.Cell{}, false
	}
	return s.Opponent.Move(s.OpponentLastDirection), true
}

// Breakdown keeps the raw value of every term next to the weighted total.
type Breakdown struct {
	Space          int
	SpaceAdvantage int
	Threat         int
	Continuity     float64
	Freedom        int
	Territory      float64
	Survival       float64
	Trapped        bool
	Total          float64
}

// Keyvals flattens the breakdown for a go-kit Log call.
func (b Breakdown) Keyvals() []interface{} {
	return []interface{}{
		"space", b.Space,
		"space_advantage", b.SpaceAdvantage,
		"threat_distance", b.Threat,
		"continuity", b.Continuity,
		"freedom", b.Freedom,
		"territory", b.Territory,
		"survival", b.Survival,
		"trapped", b.Trapped,
		"score", b.Total,
	}
}

// Log writes the breakdown on logger, prefixed with msg.
func (b Breakdown) Log(logger log.Logger, msg string) error {
	return logger.Log(append([]interface{}{"msg", msg}, b.Keyvals()...)...)
}

// Score is the weighted sum of every term for moving onto candidate. g is the
// board for the turn with both heads already blocked.
func Score(g *grid.Grid, candidate grid.Cell, state State, w Weights) float64 {
	return Evaluate(g, candidate, state, w).Total
}

// Evaluate computes Score and keeps each term. It has no side effects.
func Evaluate(g *grid.Grid, candidate grid.Cell, state State, w Weights) Breakdown {
	b := Breakdown{
		Space:      search.FloodFillSize(g, candidate),
		Threat:     threatDistance(g, candidate, state),
		Continuity: continuity(candidate, state),
		Freedom:    g.FreeNeighbors(candidate),
		Territory:  territory(g, candidate, state, w.TerritoryDepth),
		Survival:   survival(g, candidate, state),
	}
	b.SpaceAdvantage = spaceAdvantage(g, candidate, state, b.Space)
	b.Trapped = b.Space < w.TrapThreshold

	b.Total = w.Space*float64(b.Space) +
		w.SpaceAdvantage*float64(b.SpaceAdvantage) +
		w.Threat*float64(b.Threat) +
		w.Continuity*b.Continuity +
		w.Freedom*float64(b.Freedom) +
		w.Territory*b.Territory +
		w.Survival*b.Survival
	if b.Trapped {
		b.Total -= TrapPenalty(g, w)
	}
	return b
}

// spaceAdvantage is our room minus the room the opponent keeps after its
// best reply, once candidate is taken. Zero without an opponent.
func spaceAdvantage(g *grid.Grid, candidate grid.Cell, state State, space int) int {
	if !state.HasOpponent {
		return 0
	}
	after := g.WithBlocked(candidate)
	best := 0
	for _, nb := range after.Neighbors(state.Opponent, true) {
		if !after.IsFree(nb.Cell) {
			continue
		}
		if n := search.FloodFillSize(after, nb.Cell); n > best {
			best = n
		}
	}
	return space - best
}

// threatDistance is the path length to the opponent's head. An opponent that
// cannot be reached counts as the whole board away.
func threatDistance(g *grid.Grid, candidate grid.Cell, state State) int {
	if !state.HasOpponent {
		return g.Size()
	}
	n, ok := search.ShortestPathLength(g, candidate, state.Opponent)
	if !ok {
		return g.Size()
	}
	return n
}

// continuity rewards closing in on where the opponent's heading takes it.
func continuity(candidate grid.Cell, state State) float64 {
	predicted, ok := state.PredictedOpponent()
	if !ok {
		return 0
	}
	if candidate.Manhattan(predicted) < state.Position.Manhattan(predicted) {
		return 1
	}
	return 0
}

func territory(g *grid.Grid, candidate grid.Cell, state State, depth int) float64 {
	if !state.HasOpponent {
		return 1
	}
	return 1 - search.Contested(g, candidate, state.Opponent, depth)
}

func survival(g *grid.Grid, candidate grid.Cell, state State) float64 {
	deaths, total := Death(g, candidate, state)
	return 1 - float64(deaths)/float64(total)
}

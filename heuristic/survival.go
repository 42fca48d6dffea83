package heuristic

import "github.com/Cameron-Kurotori/caseclosed/grid"

// outcome is one way the next turn can play out after we move onto a cell.
type outcome struct {
	you      grid.Cell
	opponent *grid.Cell
	board    *grid.Grid
}

// dead reports whether we lose in this outcome: a head-on collision, or no
// free cell left to move to afterwards.
func (o outcome) dead() bool {
	if o.opponent != nil && *o.opponent == o.you {
		return true
	}
	return o.board.FreeNeighbors(o.you) == 0
}

// allOutcomes pairs our move onto candidate with every legal reply of the
// opponent. An opponent with no reply (or none at all) stays put.
func allOutcomes(g *grid.Grid, candidate grid.Cell, state State) []outcome {
	if !state.HasOpponent {
		return []outcome{{
			you:   candidate,
			board: g.WithBlocked(candidate),
		}}
	}

	replies := []grid.Cell{}
	for _, nb := range g.Neighbors(state.Opponent, true) {
		if g.IsFree(nb.Cell) {
			replies = append(replies, nb.Cell)
		}
	}
	if len(replies) == 0 {
		replies = append(replies, state.Opponent)
	}

	outcomes := make([]outcome, 0, len(replies))
	for i := range replies {
		reply := replies[i]
		outcomes = append(outcomes, outcome{
			you:      candidate,
			opponent: &reply,
			board:    g.WithBlocked(candidate, reply),
		})
	}
	return outcomes
}

// Death returns number of death outcomes and total number of outcomes checked
func Death(g *grid.Grid, candidate grid.Cell, state State) (deathStates int, totalStates int) {
	outcomes := allOutcomes(g, candidate, state)
	deaths := 0
	for _, o := range outcomes {
		if o.dead() {
			deaths++
		}
	}
	return deaths, len(outcomes)
}

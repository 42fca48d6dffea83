// Package agent picks one move per turn by scoring every legal direction
// with the heuristic package. An Agent keeps no state between calls.
package agent

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Cameron-Kurotori/caseclosed/grid"
	"github.com/Cameron-Kurotori/caseclosed/heuristic"
	"github.com/Cameron-Kurotori/caseclosed/sdk"
)

// NoMoveAvailable is returned when every direction is blocked. It is a
// decision, not an error: the caller decides how to concede.
const NoMoveAvailable = grid.None

var (
	ErrMissingPosition     = errors.New("missing position")
	ErrPositionOutOfBounds = errors.New("position out of bounds")
	ErrInvalidDirection    = errors.New("invalid opponent direction")
)

type Agent struct {
	cfg    Config
	logger log.Logger
}

func New(cfg Config, logger log.Logger) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	order := make([]grid.Direction, len(cfg.TieBreakOrder))
	copy(order, cfg.TieBreakOrder)
	cfg.TieBreakOrder = order
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Agent{cfg: cfg, logger: logger}, nil
}

func (a *Agent) Config() Config {
	return a.cfg
}

// Candidate is one legal move and how it scored.
type Candidate struct {
	Direction grid.Direction
	Cell      grid.Cell
	Score     float64
	Breakdown heuristic.Breakdown
}

// Decision is the chosen direction plus every candidate, in tie-break order.
type Decision struct {
	Direction  grid.Direction
	Candidates []Candidate
}

// SelectMove returns the best direction for the snapshot, or
// NoMoveAvailable when none is legal. Malformed boards surface as
// *grid.MalformedBoardError.
func (a *Agent) SelectMove(snap sdk.Snapshot) (grid.Direction, error) {
	decision, err := a.Decide(snap)
	if err != nil {
		return grid.None, err
	}
	return decision.Direction, nil
}

// Decide is SelectMove that also reports how each candidate scored.
func (a *Agent) Decide(snap sdk.Snapshot) (Decision, error) {
	start := time.Now()
	logger := snap.Logger(a.logger)

	board, state, err := Load(snap)
	if err != nil {
		return Decision{}, err
	}

	// Both heads become trail once the turn is played.
	turn := board.WithBlocked(state.Position)
	if state.HasOpponent {
		turn = turn.WithBlocked(state.Opponent)
	}

	decision := Decision{Direction: NoMoveAvailable}
	best := -1
	for _, dir := range a.cfg.TieBreakOrder {
		dirLogger := log.With(logger, "dir", dir)
		next := state.Position.Move(dir)
		if !turn.InBounds(next) {
			_ = level.Debug(dirLogger).Log("msg", "out of bounds")
			continue
		} else if !turn.IsFree(next) {
			_ = level.Debug(dirLogger).Log("msg", "occupied")
			continue
		}

		b := heuristic.Evaluate(turn, next, state, a.cfg.Weights)
		_ = b.Log(level.Info(dirLogger), "heuristics calculated")
		decision.Candidates = append(decision.Candidates, Candidate{
			Direction: dir,
			Cell:      next,
			Score:     b.Total,
			Breakdown: b,
		})
		// strictly greater, so the earlier direction keeps a tie
		if best < 0 || b.Total > decision.Candidates[best].Score {
			best = len(decision.Candidates) - 1
		}
	}

	if best < 0 {
		_ = level.Warn(logger).Log("msg", "no legal move available", "took_ms", time.Since(start).Milliseconds())
		return decision, nil
	}

	decision.Direction = decision.Candidates[best].Direction
	_ = level.Info(logger).Log(
		"msg", "making move",
		"move", decision.Direction,
		"score", decision.Candidates[best].Score,
		"candidates", len(decision.Candidates),
		"took_ms", time.Since(start).Milliseconds(),
	)
	return decision, nil
}

// Load validates a snapshot into the typed board and state.
func Load(snap sdk.Snapshot) (*grid.Grid, heuristic.State, error) {
	board, err := grid.Parse(snap.Board)
	if err != nil {
		return nil, heuristic.State{}, err
	}

	if snap.You == nil {
		return nil, heuristic.State{}, fmt.Errorf("you: %w", ErrMissingPosition)
	}
	state := heuristic.State{Position: snap.You.Cell()}
	if !board.InBounds(state.Position) {
		return nil, heuristic.State{}, fmt.Errorf("you at %v: %w", state.Position, ErrPositionOutOfBounds)
	}
	if snap.Opponent != nil {
		state.Opponent = snap.Opponent.Cell()
		state.HasOpponent = true
		if !board.InBounds(state.Opponent) {
			return nil, heuristic.State{}, fmt.Errorf("opponent at %v: %w", state.Opponent, ErrPositionOutOfBounds)
		}
	}

	// An absent direction is fine, but "NONE" is not something an opponent did.
	dir, err := grid.ParseDirection(snap.OpponentLastDirection)
	if err != nil {
		return nil, heuristic.State{}, fmt.Errorf("%w: %v", ErrInvalidDirection, err)
	}
	if dir == grid.None && snap.OpponentLastDirection != "" {
		return nil, heuristic.State{}, fmt.Errorf("%w: %q", ErrInvalidDirection, snap.OpponentLastDirection)
	}
	state.OpponentLastDirection = dir
	return board, state, nil
}

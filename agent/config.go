package agent

import (
	"errors"
	"fmt"
	"math"

	"github.com/Cameron-Kurotori/caseclosed/grid"
	"github.com/Cameron-Kurotori/caseclosed/heuristic"
)

var ErrInvalidConfig = errors.New("invalid agent config")

// Config is fixed for the lifetime of an Agent.
type Config struct {
	Weights heuristic.Weights
	// TieBreakOrder ranks directions when scores are equal, earliest wins.
	TieBreakOrder []grid.Direction
}

// DefaultTieBreakOrder is UP > RIGHT > DOWN > LEFT.
func DefaultTieBreakOrder() []grid.Direction {
	return []grid.Direction{grid.Up, grid.Right, grid.Down, grid.Left}
}

func DefaultConfig() Config {
	return Config{
		Weights:       heuristic.DefaultWeights(),
		TieBreakOrder: DefaultTieBreakOrder(),
	}
}

// Validate requires the tie-break order to name each direction exactly once
// and every weight to be a finite number.
func (c Config) Validate() error {
	if len(c.TieBreakOrder) != len(grid.Directions) {
		return fmt.Errorf("%w: tie-break order has %d directions, expected %d", ErrInvalidConfig, len(c.TieBreakOrder), len(grid.Directions))
	}
	seen := map[grid.Direction]bool{}
	for _, dir := range c.TieBreakOrder {
		if !dir.Valid() {
			return fmt.Errorf("%w: tie-break order contains %s", ErrInvalidConfig, dir)
		}
		if seen[dir] {
			return fmt.Errorf("%w: tie-break order repeats %s", ErrInvalidConfig, dir)
		}
		seen[dir] = true
	}
	w := c.Weights
	weights := []struct {
		name  string
		value float64
	}{
		{"space", w.Space},
		{"space advantage", w.SpaceAdvantage},
		{"threat", w.Threat},
		{"continuity", w.Continuity},
		{"freedom", w.Freedom},
		{"territory", w.Territory},
		{"survival", w.Survival},
	}
	for _, weight := range weights {
		if math.IsNaN(weight.value) || math.IsInf(weight.value, 0) {
			return fmt.Errorf("%w: %s weight %v is not finite", ErrInvalidConfig, weight.name, weight.value)
		}
	}
	if c.Weights.TrapThreshold < 0 {
		return fmt.Errorf("%w: trap threshold %d is negative", ErrInvalidConfig, c.Weights.TrapThreshold)
	}
	if c.Weights.TerritoryDepth < 0 {
		return fmt.Errorf("%w: territory depth %d is negative", ErrInvalidConfig, c.Weights.TerritoryDepth)
	}
	return nil
}

package agent

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cameron-Kurotori/caseclosed/grid"
	"github.com/Cameron-Kurotori/caseclosed/heuristic"
	"github.com/Cameron-Kurotori/caseclosed/sdk"
)

func newAgent(t *testing.T, cfg Config) *Agent {
	a, err := New(cfg, log.NewNopLogger())
	require.NoError(t, err)
	return a
}

func openBoard(height, width int) [][]string {
	return grid.New(height, width).Rows()
}

func opponentAt(row, col int) *sdk.Position {
	return &sdk.Position{row, col}
}

// trapBoard leaves LEFT as a one-cell pocket and DOWN as open space.
func trapBoard() sdk.Snapshot {
	return sdk.Snapshot{
		You:      &sdk.Position{0, 1},
		Opponent: opponentAt(3, 4),
		Board: [][]string{
			{" ", " ", "X", " ", " "},
			{"X", " ", " ", " ", " "},
			{" ", " ", " ", " ", " "},
			{" ", " ", " ", " ", " "},
		},
		OpponentLastDirection: "LEFT",
	}
}

func TestSelectMoveDeterministic(t *testing.T) {
	a := newAgent(t, DefaultConfig())
	snap := sdk.Snapshot{
		You:                   &sdk.Position{9, 3},
		Opponent:              opponentAt(8, 15),
		Board:                 openBoard(18, 20),
		OpponentLastDirection: "UP",
	}

	first, err := a.SelectMove(snap)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		next, err := a.SelectMove(snap)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestSelectMoveLegal(t *testing.T) {
	a := newAgent(t, DefaultConfig())
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		height, width := 2+rng.Intn(8), 2+rng.Intn(8)
		board := openBoard(height, width)
		for r := range board {
			for c := range board[r] {
				if rng.Float64() < 0.35 {
					board[r][c] = "X"
				}
			}
		}
		snap := sdk.Snapshot{
			You:      &sdk.Position{rng.Intn(height), rng.Intn(width)},
			Opponent: opponentAt(rng.Intn(height), rng.Intn(width)),
			Board:    board,
		}
		if rng.Intn(2) == 0 {
			snap.OpponentLastDirection = grid.Directions[rng.Intn(4)].String()
		}

		t.Run(fmt.Sprintf("board-%d", i), func(t *testing.T) {
			dir, err := a.SelectMove(snap)
			require.NoError(t, err)

			g, err := grid.Parse(snap.Board)
			require.NoError(t, err)
			turn := g.WithBlocked(snap.You.Cell(), snap.Opponent.Cell())

			if dir == NoMoveAvailable {
				for _, d := range grid.Directions {
					assert.False(t, turn.IsFree(snap.You.Cell().Move(d)), "%s was legal", d)
				}
				return
			}
			assert.True(t, turn.IsFree(snap.You.Cell().Move(dir)), "%s is not legal", dir)
		})
	}
}

func TestSelectMoveAvoidsTrap(t *testing.T) {
	snap := trapBoard()

	configs := map[string]heuristic.Weights{
		"default":    heuristic.DefaultWeights(),
		"aggressive": {Space: 0.1, Threat: -1000, Continuity: 1000, TrapThreshold: 4},
		"no-space":   {Threat: 500, Freedom: -500, Survival: -500, TrapThreshold: 4},
	}
	for name, w := range configs {
		w := w
		t.Run(name, func(t *testing.T) {
			cfg := Config{
				Weights:       w,
				TieBreakOrder: []grid.Direction{grid.Left, grid.Up, grid.Right, grid.Down},
			}
			dir, err := newAgent(t, cfg).SelectMove(snap)
			require.NoError(t, err)
			assert.Equal(t, grid.Down, dir)
		})
	}
}

func TestSelectMoveTieBreak(t *testing.T) {
	// Opponent sits on UP; LEFT, DOWN and RIGHT all reach the same 7 cells.
	snap := sdk.Snapshot{
		You:      &sdk.Position{1, 1},
		Opponent: opponentAt(0, 1),
		Board:    openBoard(3, 3),
	}
	spaceOnly := heuristic.Weights{Space: 1}

	type testCase struct {
		order    []grid.Direction
		expected grid.Direction
	}
	testCases := []testCase{
		{DefaultTieBreakOrder(), grid.Right},
		{[]grid.Direction{grid.Left, grid.Down, grid.Right, grid.Up}, grid.Left},
		{[]grid.Direction{grid.Up, grid.Down, grid.Left, grid.Right}, grid.Down},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%v", tc.order), func(t *testing.T) {
			a := newAgent(t, Config{Weights: spaceOnly, TieBreakOrder: tc.order})
			decision, err := a.Decide(snap)
			require.NoError(t, err)
			require.Len(t, decision.Candidates, 3)
			for _, c := range decision.Candidates {
				assert.Equal(t, 7.0, c.Score, "%s", c.Direction)
			}
			for i := 0; i < 10; i++ {
				assert.Equal(t, tc.expected, decision.Direction)
				decision, err = a.Decide(snap)
				require.NoError(t, err)
			}
		})
	}
}

func TestSelectMoveMalformedBoard(t *testing.T) {
	a := newAgent(t, DefaultConfig())
	snap := sdk.Snapshot{
		You:   &sdk.Position{0, 0},
		Board: [][]string{{" ", " "}, {" "}},
	}

	dir, err := a.SelectMove(snap)
	assert.Equal(t, grid.None, dir)
	var malformed *grid.MalformedBoardError
	assert.True(t, errors.As(err, &malformed), "got %v", err)

	snap.Board = [][]string{{" ", "?"}}
	_, err = a.SelectMove(snap)
	assert.True(t, errors.As(err, &malformed), "got %v", err)
}

func TestSelectMoveInvalidSnapshot(t *testing.T) {
	a := newAgent(t, DefaultConfig())

	_, err := a.SelectMove(sdk.Snapshot{You: &sdk.Position{5, 0}, Board: openBoard(2, 2)})
	assert.True(t, errors.Is(err, ErrPositionOutOfBounds))

	_, err = a.SelectMove(sdk.Snapshot{You: &sdk.Position{0, 0}, Opponent: opponentAt(-1, 0), Board: openBoard(2, 2)})
	assert.True(t, errors.Is(err, ErrPositionOutOfBounds))

	_, err = a.SelectMove(sdk.Snapshot{You: &sdk.Position{0, 0}, Board: openBoard(2, 2), OpponentLastDirection: "SIDEWAYS"})
	assert.True(t, errors.Is(err, ErrInvalidDirection))

	_, err = a.SelectMove(sdk.Snapshot{You: &sdk.Position{0, 0}, Board: openBoard(2, 2), OpponentLastDirection: "NONE"})
	assert.True(t, errors.Is(err, ErrInvalidDirection), "got %v", err)

	dir, err := a.SelectMove(sdk.Snapshot{Opponent: opponentAt(1, 1), Board: openBoard(3, 3)})
	assert.Equal(t, grid.None, dir)
	assert.True(t, errors.Is(err, ErrMissingPosition), "got %v", err)
}

func TestSelectMoveTrapped(t *testing.T) {
	a := newAgent(t, DefaultConfig())
	snap := sdk.Snapshot{
		You:      &sdk.Position{0, 0},
		Opponent: opponentAt(0, 1),
		Board: [][]string{
			{" ", " ", " "},
			{"X", " ", " "},
		},
	}

	decision, err := a.Decide(snap)
	require.NoError(t, err)
	assert.Equal(t, NoMoveAvailable, decision.Direction)
	assert.Empty(t, decision.Candidates)
}

func TestSelectMoveWithoutOpponent(t *testing.T) {
	a := newAgent(t, DefaultConfig())
	snap := sdk.Snapshot{
		You: &sdk.Position{0, 0},
		Board: [][]string{
			{" ", " ", " ", " "},
			{"X", " ", " ", " "},
			{" ", " ", " ", " "},
		},
	}
	dir, err := a.SelectMove(snap)
	require.NoError(t, err)
	assert.Equal(t, grid.Right, dir)
}

func TestNewValidatesConfig(t *testing.T) {
	type testCase struct {
		name string
		cfg  func(Config) Config
	}
	testCases := []testCase{
		{"short-order", func(c Config) Config { c.TieBreakOrder = c.TieBreakOrder[:3]; return c }},
		{"repeated", func(c Config) Config {
			c.TieBreakOrder = []grid.Direction{grid.Up, grid.Up, grid.Down, grid.Left}
			return c
		}},
		{"none-in-order", func(c Config) Config {
			c.TieBreakOrder = []grid.Direction{grid.None, grid.Up, grid.Down, grid.Left}
			return c
		}},
		{"negative-threshold", func(c Config) Config { c.Weights.TrapThreshold = -1; return c }},
		{"negative-depth", func(c Config) Config { c.Weights.TerritoryDepth = -1; return c }},
		{"nan-threat", func(c Config) Config { c.Weights.Threat = math.NaN(); return c }},
		{"inf-space", func(c Config) Config { c.Weights.Space = math.Inf(1); return c }},
		{"negative-inf-advantage", func(c Config) Config { c.Weights.SpaceAdvantage = math.Inf(-1); return c }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			a, err := New(tc.cfg(DefaultConfig()), nil)
			assert.Nil(t, a)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}

	a, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTieBreakOrder(), a.Config().TieBreakOrder)
}

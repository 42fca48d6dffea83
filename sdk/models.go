package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/go-kit/log"

	"github.com/Cameron-Kurotori/caseclosed/grid"
)

// Snapshot is the per-turn game state handed to the agent:
//
//	{"you": [r, c], "opponent": [r, c], "board": [[" ", "X", ...], ...],
//	 "opponent_last_direction": "UP"}
type Snapshot struct {
	GameID                string     `json:"game_id,omitempty"`
	Turn                  int        `json:"turn,omitempty"`
	You                   *Position  `json:"you"`
	Opponent              *Position  `json:"opponent,omitempty"`
	Board                 [][]string `json:"board"`
	OpponentLastDirection string     `json:"opponent_last_direction,omitempty"`
}

func (s Snapshot) Logger(logger log.Logger) log.Logger {
	logger = log.With(logger, "game_id", s.GameID, "turn", s.Turn)
	if s.You != nil {
		logger = log.With(logger, "you", s.You.Cell())
	}
	return logger
}

// Position is a [row, col] pair on the wire.
type Position [2]int

func (p Position) Cell() grid.Cell {
	return grid.Cell{Row: p[0], Col: p[1]}
}

func PositionOf(c grid.Cell) Position {
	return Position{c.Row, c.Col}
}

// UnmarshalJSON insists on exactly two coordinates.
func (p *Position) UnmarshalJSON(data []byte) error {
	var coords []int
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	if len(coords) != 2 {
		return fmt.Errorf("position: expected [row, col], got %d values", len(coords))
	}
	p[0], p[1] = coords[0], coords[1]
	return nil
}

// Response Structs

type InfoResponse struct {
	APIVersion string `json:"apiversion"`
	Author     string `json:"author"`
	Version    string `json:"version,omitempty"`
}

// MoveNone is the move sent when no legal move exists.
const MoveNone = "NONE"

type MoveResponse struct {
	Move string `json:"move"`
}

// MoveOf renders a decision for the wire; grid.None becomes MoveNone.
func MoveOf(dir grid.Direction) MoveResponse {
	return MoveResponse{Move: dir.String()}
}

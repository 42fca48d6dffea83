package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/Cameron-Kurotori/caseclosed/agent"
	"github.com/Cameron-Kurotori/caseclosed/grid"
	"github.com/Cameron-Kurotori/caseclosed/logging"
	"github.com/Cameron-Kurotori/caseclosed/sdk"
)

const (
	boardHeight = 18
	boardWidth  = 20
	maxTurns    = 200
)

type Result int

const (
	Undecided Result = iota
	Player1Win
	Player2Win
	Draw
)

func (r Result) String() string {
	switch r {
	case Player1Win:
		return "PLAYER1_WIN"
	case Player2Win:
		return "PLAYER2_WIN"
	case Draw:
		return "DRAW"
	}
	return "UNDECIDED"
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

type player struct {
	name    string
	client  AgentClient
	trail   []grid.Cell
	heading grid.Direction
}

func (p *player) head() grid.Cell {
	return p.trail[len(p.trail)-1]
}

// newPlayer lays a two-cell trail starting at start, pointing along heading.
func newPlayer(name string, client AgentClient, start grid.Cell, heading grid.Direction) *player {
	return &player{
		name:    name,
		client:  client,
		trail:   []grid.Cell{start, start.Move(heading)},
		heading: heading,
	}
}

type game struct {
	id       string
	turn     int
	maxTurns int
	board    *grid.Grid
	players  [2]*player
}

func newGame(id string, height, width int, p1, p2 *player) *game {
	board := grid.New(height, width)
	board = board.WithBlocked(p1.trail...)
	board = board.WithBlocked(p2.trail...)
	return &game{
		id:       id,
		maxTurns: maxTurns,
		board:    board,
		players:  [2]*player{p1, p2},
	}
}

// snapshotFor is the board as player i sees it.
func (g *game) snapshotFor(i int) sdk.Snapshot {
	me, other := g.players[i], g.players[1-i]
	you, opponent := sdk.PositionOf(me.head()), sdk.PositionOf(other.head())
	return sdk.Snapshot{
		GameID:                g.id,
		Turn:                  g.turn,
		You:                   &you,
		Opponent:              &opponent,
		Board:                 g.board.Rows(),
		OpponentLastDirection: other.heading.String(),
	}
}

// step moves both players at once. A missing or reversing move keeps the
// current heading. Running into a wall or any trail crashes; two heads
// meeting crash each other.
func (g *game) step(moves [2]grid.Direction) Result {
	var next [2]grid.Cell
	var crashed [2]bool
	for i, p := range g.players {
		dir := moves[i]
		if !dir.Valid() || dir == p.heading.Reverse() {
			dir = p.heading
		}
		p.heading = dir
		next[i] = p.head().Move(dir)
		crashed[i] = !g.board.IsFree(next[i])
	}
	if next[0] == next[1] {
		crashed[0], crashed[1] = true, true
	}

	for i, p := range g.players {
		if !crashed[i] {
			p.trail = append(p.trail, next[i])
			g.board = g.board.WithBlocked(next[i])
		}
	}
	g.turn++

	switch {
	case crashed[0] && crashed[1]:
		return Draw
	case crashed[0]:
		return Player2Win
	case crashed[1]:
		return Player1Win
	case g.turn >= g.maxTurns:
		return g.byLength()
	}
	return Undecided
}

func (g *game) byLength() Result {
	l1, l2 := len(g.players[0].trail), len(g.players[1].trail)
	switch {
	case l1 > l2:
		return Player1Win
	case l2 > l1:
		return Player2Win
	}
	return Draw
}

type simulator struct {
	logger log.Logger
}

// Simulate plays a single game between two agents and reports its outcome.
func (s simulator) Simulate(c1, c2 AgentClient) (Result, int) {
	g := newGame(uuid.NewString(), boardHeight, boardWidth,
		newPlayer("player1", c1, grid.Cell{Row: 2, Col: 1}, grid.Right),
		newPlayer("player2", c2, grid.Cell{Row: 15, Col: 17}, grid.Left),
	)
	return s.play(g)
}

func (s simulator) play(g *game) (Result, int) {
	logger := log.With(s.logger, "game_id", g.id)

	for i, p := range g.players {
		if err := p.client.Start(g.snapshotFor(i)); err != nil {
			_ = level.Warn(logger).Log("msg", "start failed", "player", p.name, "err", err)
		}
	}

	result := Undecided
	for result == Undecided {
		var moves [2]grid.Direction
		for i, p := range g.players {
			moves[i] = s.ask(logger, p, g.snapshotFor(i))
		}
		result = g.step(moves)
		_ = level.Debug(logger).Log("msg", "turn played", "turn", g.turn, "player1", moves[0], "player2", moves[1])
	}

	for i, p := range g.players {
		if err := p.client.End(g.snapshotFor(i)); err != nil {
			_ = level.Warn(logger).Log("msg", "end failed", "player", p.name, "err", err)
		}
	}
	_ = level.Info(logger).Log("msg", "game over", "result", result, "turns", g.turn)
	return result, g.turn
}

// ask falls back to the current heading when the agent does not answer
// with a direction.
func (s simulator) ask(logger log.Logger, p *player, snap sdk.Snapshot) grid.Direction {
	resp, err := p.client.Move(snap)
	if err != nil {
		_ = level.Warn(logger).Log("msg", "error obtaining move", "player", p.name, "err", err)
		return p.heading
	}
	dir, err := grid.ParseDirection(resp.Move)
	if err != nil || !dir.Valid() {
		_ = level.Warn(logger).Log("msg", "no usable move", "player", p.name, "move", resp.Move)
		return p.heading
	}
	return dir
}

type gameRecord struct {
	Result  Result         `json:"result"`
	Turns   int            `json:"turns"`
	Player1 []sdk.Snapshot `json:"player1"`
	Player2 []sdk.Snapshot `json:"player2"`
}

func main() {
	logger := logging.GlobalLogger()

	host := os.Getenv("HOST")
	if len(host) == 0 {
		host = "0.0.0.0"
	}
	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}
	opponentPort := os.Getenv("OPPONENT_PORT")
	if len(opponentPort) == 0 {
		opponentPort = port
	}

	var c1, c2 AgentClient
	if os.Getenv("SIM_LOCAL") == "1" {
		a, err := agent.New(agent.DefaultConfig(), log.NewNopLogger())
		if err != nil {
			_ = level.Error(logger).Log("msg", "failed to build agent", "err", err)
			os.Exit(1)
		}
		c1, c2 = NewLocalClient(a), NewLocalClient(a)
	} else {
		c1, c2 = NewClient(host, port), NewClient(host, opponentPort)
	}

	r1, r2 := RecordStates(c1), RecordStates(c2)
	result, turns := simulator{logger: logger}.Simulate(r1, r2)

	statesOutput, err := json.Marshal(gameRecord{
		Result:  result,
		Turns:   turns,
		Player1: r1.States,
		Player2: r2.States,
	})
	if err != nil {
		_ = level.Error(logger).Log("msg", "failed to encode game record", "err", err)
		os.Exit(1)
	}
	fmt.Println(string(statesOutput))
}

package main

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Cameron-Kurotori/caseclosed/agent"
	"github.com/Cameron-Kurotori/caseclosed/sdk"
)

const version = "1.0.0"

// info identifies the agent to whoever runs the game.
func info() sdk.InfoResponse {
	return sdk.InfoResponse{
		APIVersion: "1",
		Author:     "cameron-kurotori",
		Version:    version,
	}
}

// start is called when a game begins. Decisions never depend on it.
func start(logger log.Logger, snap sdk.Snapshot) {
	_ = level.Debug(snap.Logger(logger)).Log("msg", "START")
}

// end is called when a game has finished.
func end(logger log.Logger, snap sdk.Snapshot) {
	_ = level.Debug(snap.Logger(logger)).Log("msg", "END")
}

// move is called every turn. A trapped agent answers sdk.MoveNone.
func move(a *agent.Agent, snap sdk.Snapshot) (sdk.MoveResponse, error) {
	dir, err := a.SelectMove(snap)
	if err != nil {
		return sdk.MoveResponse{}, err
	}
	return sdk.MoveOf(dir), nil
}

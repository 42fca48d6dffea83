package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cameron-Kurotori/caseclosed/agent"
	"github.com/Cameron-Kurotori/caseclosed/grid"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(env(nil))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ModeHTTP, cfg.Mode)
	assert.Equal(t, agent.DefaultConfig(), cfg.Agent)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		"PORT":              "9000",
		"LOG_LEVEL":         "debug",
		"AGENT_MODE":        "STDIO",
		"W_SPACE":           "2.5",
		"W_SPACE_ADVANTAGE": "1.5",
		"W_THREAT":          "-1",
		"W_CONTINUITY":      "0",
		"W_FREEDOM":         "0.75",
		"W_TERRITORY":       "3",
		"W_SURVIVAL":        "10",
		"TRAP_THRESHOLD":    "6",
		"TERRITORY_DEPTH":   "0",
		"TIE_BREAK_ORDER":   "left, down,RIGHT,up",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ModeStdio, cfg.Mode)

	w := cfg.Agent.Weights
	assert.Equal(t, 2.5, w.Space)
	assert.Equal(t, 1.5, w.SpaceAdvantage)
	assert.Equal(t, -1.0, w.Threat)
	assert.Equal(t, 0.0, w.Continuity)
	assert.Equal(t, 0.75, w.Freedom)
	assert.Equal(t, 3.0, w.Territory)
	assert.Equal(t, 10.0, w.Survival)
	assert.Equal(t, 6, w.TrapThreshold)
	assert.Equal(t, 0, w.TerritoryDepth)
	assert.Equal(t, []grid.Direction{grid.Left, grid.Down, grid.Right, grid.Up}, cfg.Agent.TieBreakOrder)
}

func TestLoadErrors(t *testing.T) {
	testCases := map[string]map[string]string{
		"bad-float":     {"W_SPACE": "lots"},
		"bad-int":       {"TRAP_THRESHOLD": "4.5"},
		"bad-mode":      {"AGENT_MODE": "carrier-pigeon"},
		"bad-direction": {"TIE_BREAK_ORDER": "UP,NORTH,DOWN,LEFT"},
	}
	for name, vars := range testCases {
		vars := vars
		t.Run(name, func(t *testing.T) {
			_, err := Load(env(vars))
			assert.Error(t, err)
		})
	}

	_, err := Load(env(map[string]string{"TIE_BREAK_ORDER": "UP,UP,DOWN,LEFT"}))
	assert.True(t, errors.Is(err, agent.ErrInvalidConfig), "got %v", err)

	_, err = Load(env(map[string]string{"TRAP_THRESHOLD": "-2"}))
	assert.True(t, errors.Is(err, agent.ErrInvalidConfig), "got %v", err)

	for _, vars := range []map[string]string{
		{"W_THREAT": "NaN"},
		{"W_SPACE": "Inf"},
		{"W_SPACE_ADVANTAGE": "-Inf"},
	} {
		_, err = Load(env(vars))
		assert.True(t, errors.Is(err, agent.ErrInvalidConfig), "%v: got %v", vars, err)
	}
}

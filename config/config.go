// Package config reads the process settings from the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Cameron-Kurotori/caseclosed/agent"
	"github.com/Cameron-Kurotori/caseclosed/grid"
)

const (
	ModeHTTP  = "http"
	ModeStdio = "stdio"
)

type Config struct {
	Port     string
	LogLevel string
	Mode     string
	Agent    agent.Config
}

// Load reads every setting through getenv (os.Getenv outside of tests).
// Unset variables keep their defaults; set but unparsable ones are errors.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:     "8080",
		LogLevel: "info",
		Mode:     ModeHTTP,
		Agent:    agent.DefaultConfig(),
	}

	if port := getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if mode := strings.ToLower(getenv("AGENT_MODE")); mode != "" {
		if mode != ModeHTTP && mode != ModeStdio {
			return Config{}, fmt.Errorf("AGENT_MODE: unknown mode %q", mode)
		}
		cfg.Mode = mode
	}

	w := &cfg.Agent.Weights
	floats := []struct {
		key string
		dst *float64
	}{
		{"W_SPACE", &w.Space},
		{"W_SPACE_ADVANTAGE", &w.SpaceAdvantage},
		{"W_THREAT", &w.Threat},
		{"W_CONTINUITY", &w.Continuity},
		{"W_FREEDOM", &w.Freedom},
		{"W_TERRITORY", &w.Territory},
		{"W_SURVIVAL", &w.Survival},
	}
	for _, f := range floats {
		raw := getenv(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"TRAP_THRESHOLD", &w.TrapThreshold},
		{"TERRITORY_DEPTH", &w.TerritoryDepth},
	}
	for _, i := range ints {
		raw := getenv(i.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", i.key, err)
		}
		*i.dst = v
	}

	if raw := getenv("TIE_BREAK_ORDER"); raw != "" {
		order, err := parseOrder(raw)
		if err != nil {
			return Config{}, fmt.Errorf("TIE_BREAK_ORDER: %w", err)
		}
		cfg.Agent.TieBreakOrder = order
	}

	if err := cfg.Agent.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseOrder(raw string) ([]grid.Direction, error) {
	var order []grid.Direction
	for _, part := range strings.Split(raw, ",") {
		dir, err := grid.ParseDirection(part)
		if err != nil {
			return nil, err
		}
		order = append(order, dir)
	}
	return order, nil
}

package app

import (
	"errors"
	"fmt"
)

// Mode selects what a run does with each graph.
type Mode string

const (
	// ModeOrder prints the topological order.
	ModeOrder Mode = "order"
	// ModeLayers prints the layered topological order.
	ModeLayers Mode = "layers"
	// ModeBuild materializes every vertex, layer by layer, and reports the
	// root artifact.
	ModeBuild Mode = "build"
	// ModeSequence streams vertices in build order.
	ModeSequence Mode = "sequence"
)

// Modes lists the supported modes.
var Modes = []Mode{ModeOrder, ModeLayers, ModeBuild, ModeSequence}

// ErrInvalidConfig is returned by NewConfig.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	FlowPath string // flow file or directory
	Mode     Mode

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.FlowPath == "" {
		return nil, fmt.Errorf("%w: FlowPath is a required configuration field and cannot be empty", ErrInvalidConfig)
	}

	if cfg.Mode == "" {
		cfg.Mode = ModeOrder
	}
	valid := false
	for _, m := range Modes {
		valid = valid || m == cfg.Mode
	}
	if !valid {
		return nil, fmt.Errorf("%w: unknown mode %q, expected one of %v", ErrInvalidConfig, cfg.Mode, Modes)
	}

	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("%w: WorkerCount cannot be negative", ErrInvalidConfig)
	}

	return &cfg, nil
}

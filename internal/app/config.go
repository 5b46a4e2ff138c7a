package app

import (
	"errors"
	"io"
)

const (
	DefaultRoot  = "main"
	DefaultEntry = "start"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPaths []string // hcl files or directories
	Root       string   // graph compiled as the root
	Entry      string   // label called once the graph is initialized

	LogFormat     string
	LogLevel      string
	MaxCallDepth  int
	TraceEndpoint string

	// NodeOutput receives what nodes write during a run. Defaults to the
	// app's output writer.
	NodeOutput io.Writer
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.GraphPaths) == 0 {
		return nil, errors.New("at least one graph path is required")
	}
	if cfg.MaxCallDepth < 0 {
		return nil, errors.New("max call depth cannot be negative")
	}
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Entry == "" {
		cfg.Entry = DefaultEntry
	}
	return &cfg, nil
}

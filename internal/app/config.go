package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath  string // HCL workspace file or directory
	ManifestDir string // single manifest directory, used when ConfigPath is empty

	// Finished builders to compute a trigger list for. When set, it replaces
	// the trigger lists of every platform.
	Finished []string

	LogFormat  string
	LogLevel   string
	ListenPort int
	Dump       bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && cfg.ManifestDir == "" {
		return nil, errors.New("either a workspace config or a manifest directory is required")
	}
	if cfg.ConfigPath != "" && cfg.ManifestDir != "" {
		return nil, errors.New("a workspace config and a manifest directory are mutually exclusive")
	}
	if cfg.ListenPort < 0 || cfg.ListenPort > 65535 {
		return nil, fmt.Errorf("invalid listen port %d", cfg.ListenPort)
	}
	return &cfg, nil
}

package app

import (
	"errors"
	"fmt"

	"github.com/skyrig/chassis/internal/atom"
)

// EnvironmentVar is the process environment variable consulted when no
// environment name is configured explicitly.
const EnvironmentVar = "CHASSIS_ENVIRONMENT"

// DefaultEnvironment is used when neither the config nor the process
// environment names one.
const DefaultEnvironment = "local"

// Config holds everything an application context needs to initialize.
type Config struct {
	AppID       string // short identifier, atom-encodable
	Environment string // optional; falls back to $CHASSIS_ENVIRONMENT, then "local"

	RootPath string // directory all includes are confined to
	Entry    string // entry file name under RootPath

	Vars             map[string]string // external variables, outermost scope layer
	AllowMissingVars bool              // substitute empty strings for unresolved names

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RootPath == "" {
		return nil, errors.New("RootPath is a required configuration field and cannot be empty")
	}
	if cfg.Entry == "" {
		return nil, errors.New("Entry is a required configuration field and cannot be empty")
	}
	if cfg.AppID == "" {
		cfg.AppID = "app"
	}
	if _, err := atom.Encode(cfg.AppID); err != nil {
		return nil, fmt.Errorf("AppID must be atom-encodable: %w", err)
	}
	return &cfg, nil
}

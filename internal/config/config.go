// Package config provides YAML configuration file loading and validation.
// It handles environment variable expansion, default value application,
// and ensures the wallet has everything it needs to reach the local node.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	Node    Node    `yaml:"node"`    // Local node connection settings
	Wallet  Wallet  `yaml:"wallet"`  // Wallet operation defaults
	Peers   Peers   `yaml:"peers"`   // Peer-health grading thresholds
	Watch   Watch   `yaml:"watch"`   // Watch command settings
	Logging Logging `yaml:"logging"` // Log output settings
}

// Node describes the IPC endpoint of the local Ethereum node.
type Node struct {
	IPCPath        string        `yaml:"ipc_path"`        // Unix socket path (supports ${VAR} env expansion)
	ConnectTimeout time.Duration `yaml:"connect_timeout"` // Deadline for the initial connection attempt
}

// Wallet holds defaults for wallet operations.
type Wallet struct {
	UnlockDuration uint64 `yaml:"unlock_duration"` // Default account unlock duration in seconds
}

// Peers sets the counts at which the connection is graded fair and good.
type Peers struct {
	Fair uint64 `yaml:"fair"`
	Good uint64 `yaml:"good"`
}

// Watch configures the periodic status refresh of the watch command.
type Watch struct {
	Interval time.Duration `yaml:"interval"`
}

// Logging configures the structured logger.
type Logging struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Defaults applied by Validate when the file leaves fields unset.
const (
	DefaultConnectTimeout = 2 * time.Second
	DefaultUnlockDuration = 300
	DefaultWatchInterval  = 15 * time.Second
	DefaultLogLevel       = "info"
)

// Validate validates the configuration and applies defaults where
// appropriate. It may emit warnings (to stderr) for suspicious values but
// does not fail on warnings.
func (c *Config) Validate() error {
	if c.Node.IPCPath == "" {
		return fmt.Errorf("node.ipc_path is required")
	}
	if c.Node.ConnectTimeout == 0 {
		c.Node.ConnectTimeout = DefaultConnectTimeout
	}
	if c.Node.ConnectTimeout < 100*time.Millisecond {
		fmt.Fprintf(os.Stderr, "Warning: node.connect_timeout is very low (%s); local dials may still need longer\n", c.Node.ConnectTimeout)
	}

	if c.Wallet.UnlockDuration == 0 {
		c.Wallet.UnlockDuration = DefaultUnlockDuration
	}

	if c.Peers.Fair == 0 {
		c.Peers.Fair = 3
	}
	if c.Peers.Good == 0 {
		c.Peers.Good = 10
	}
	if c.Peers.Fair >= c.Peers.Good {
		return fmt.Errorf("peers.fair (%d) must be below peers.good (%d)", c.Peers.Fair, c.Peers.Good)
	}

	if c.Watch.Interval == 0 {
		c.Watch.Interval = DefaultWatchInterval
	}
	if c.Watch.Interval < time.Second {
		fmt.Fprintf(os.Stderr, "Warning: watch.interval below 1s hammers the node with status calls\n")
	}

	switch c.Logging.Level {
	case "":
		c.Logging.Level = DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug|info|warn|error", c.Logging.Level)
	}

	return nil
}

// Load reads and parses a YAML configuration file, expanding environment
// variables and validating all fields.
//
// Environment variable expansion:
//
//	The ipc_path can use ${VAR} syntax which will be expanded with
//	os.ExpandEnv. Example: ipc_path: ${HOME}/.ethereum/geth.ipc
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv reads environment variables from a .env file in the current
// working directory and sets them with os.Setenv. Missing .env is fine —
// system environment variables still apply.
//
// File format: KEY=VALUE per line, # comments, optional quotes around values.
func LoadEnv() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
			os.Setenv(key, value)
		}
	}
}

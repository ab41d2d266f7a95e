// Package config provides YAML-based application configuration.
package config

import (
	"fmt"
	"time"
)

// Config holds the application settings.
// Gameplay tuning is fixed in the game packages and is not configurable.
type Config struct {
	TickRate      int       `yaml:"tick_rate"`
	Seed          int64     `yaml:"seed"`
	DBPath        string    `yaml:"db_path"`
	LogLevel      string    `yaml:"log_level"`
	RecordReplays bool      `yaml:"record_replays"`
	SSH           SSHConfig `yaml:"ssh"`
}

// SSHConfig configures the multi-user SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"` // 0 disables the timeout
}

// IdleTimeout returns the idle timeout as a duration.
func (c SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// Log levels accepted by Validate.
var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	if c.TickRate < 1 || c.TickRate > 240 {
		return fmt.Errorf("config: tick_rate %d out of range [1, 240]", c.TickRate)
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: db_path is empty")
	}
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	if c.SSH.Address == "" {
		return fmt.Errorf("config: ssh.address is empty")
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: ssh.idle_timeout_minutes must not be negative")
	}
	return nil
}

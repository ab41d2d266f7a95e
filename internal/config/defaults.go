package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It matches defaults/config.yaml and is used when that cannot be parsed.
func Default() Config {
	return Config{
		TickRate:      60,
		Seed:          0,
		DBPath:        "~/.flappy/flappy.db",
		LogLevel:      "info",
		RecordReplays: true,
		SSH: SSHConfig{
			Address:            ":23234",
			HostKey:            "~/.flappy/ssh_host_ed25519",
			IdleTimeoutMinutes: 10,
		},
	}
}

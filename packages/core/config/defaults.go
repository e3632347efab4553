package config

import "time"

const (
	// DefaultTimeout bounds every outbound request
	DefaultTimeout = 10 * time.Second
	// DefaultListen is where the web UI listens
	DefaultListen = "127.0.0.1:8501"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout: DefaultTimeout.String(),
		Listen:  DefaultListen,
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the userportal configuration
type Config struct {
	BaseURL     string  `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Token       string  `json:"token,omitempty" yaml:"token,omitempty"`
	Timeout     string  `json:"timeout,omitempty" yaml:"timeout,omitempty"`     // duration, e.g. "10s"
	Listen      string  `json:"listen,omitempty" yaml:"listen,omitempty"`       // web UI address
	RateLimit   float64 `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"` // submissions per second, 0 = unlimited
	Proxy       string  `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	ValidateSSL *bool   `json:"validateSSL,omitempty" yaml:"validateSSL,omitempty"`
	NoColor     *bool   `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetTimeout parses Timeout, falling back to DefaultTimeout when unset.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}
	return d, nil
}

// Validate checks the values that cannot be corrected per submission.
// BaseURL and Token are deliberately not checked.
func (c *Config) Validate() error {
	if _, err := c.GetTimeout(); err != nil {
		return err
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rateLimit %v: must not be negative", c.RateLimit)
	}
	return nil
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".userportal.yaml",
	"userportal.yaml",
	".userportal.json",
	"userportal.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindConfigFile returns the first config file present in dir.
func FindConfigFile(dir string) (string, bool) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true
		}
	}
	return "", false
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	if path, ok := FindConfigFile(dir); ok {
		return loadConfigFromFile(path)
	}

	return DefaultConfig(), nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if isJSON(path) {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c

	if other.BaseURL != "" {
		result.BaseURL = other.BaseURL
	}
	if other.Token != "" {
		result.Token = other.Token
	}
	if other.Timeout != "" {
		result.Timeout = other.Timeout
	}
	if other.Listen != "" {
		result.Listen = other.Listen
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}

	// Boolean flags - only override if explicitly set in other config
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file, as JSON for .json paths
// and YAML otherwise.
func (c *Config) SaveConfig(path string) error {
	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	d, err := cfg.GetTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetNoColor())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".userportal.yaml")
	content := "baseUrl: http://localhost:8000\ntoken: secret\ntimeout: 3s\nrateLimit: 2\nvalidateSSL: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 2.0, cfg.RateLimit)
	assert.False(t, cfg.GetValidateSSL())
	assert.Equal(t, DefaultListen, cfg.Listen)

	d, err := cfg.GetTimeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)
}

func TestLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "userportal.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"baseUrl":"https://api.example.com","listen":":9000"}`), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, ":9000", cfg.Listen)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "userportal.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestFindAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "userportal.yaml"), []byte("baseUrl: http://b\n"), 0600))
	path, ok := FindConfigFile(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "userportal.yaml"), path)

	cfg, err = FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://b", cfg.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"good timeout", Config{Timeout: "250ms"}, false},
		{"bad timeout", Config{Timeout: "soon"}, true},
		{"zero timeout", Config{Timeout: "0s"}, true},
		{"negative rate", Config{RateLimit: -1}, true},
		{"empty base url allowed", Config{BaseURL: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := &Config{BaseURL: "http://a", Token: "t1", Timeout: "10s", Listen: ":1"}
	other := &Config{BaseURL: "http://b", NoColor: BoolPtr(true), RateLimit: 5}

	merged := base.Merge(other)

	assert.Equal(t, "http://b", merged.BaseURL)
	assert.Equal(t, "t1", merged.Token)
	assert.Equal(t, "10s", merged.Timeout)
	assert.Equal(t, ":1", merged.Listen)
	assert.Equal(t, 5.0, merged.RateLimit)
	assert.True(t, merged.GetNoColor())
	assert.Equal(t, "http://a", base.BaseURL, "merge must not mutate the receiver")
	assert.Same(t, base, base.Merge(nil))
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.BaseURL = "http://localhost:8000"

	for _, name := range []string{"out.yaml", "out.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.SaveConfig(path))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded, name)
	}
}

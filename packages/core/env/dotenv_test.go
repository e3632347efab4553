package env

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadDotEnv(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:     "simple key-value",
			content:  "USERPORTAL_TOKEN=secret123",
			expected: map[string]string{"USERPORTAL_TOKEN": "secret123"},
		},
		{
			name:    "double and single quotes",
			content: "A=\"with spaces\"\nB='single'",
			expected: map[string]string{
				"A": "with spaces",
				"B": "single",
			},
		},
		{
			name:     "mismatched quotes kept",
			content:  `A="open'`,
			expected: map[string]string{"A": `"open'`},
		},
		{
			name:     "export prefix",
			content:  "export USERPORTAL_URL=http://localhost:8000",
			expected: map[string]string{"USERPORTAL_URL": "http://localhost:8000"},
		},
		{
			name:     "comments and blank lines skipped",
			content:  "# comment\n\nA=1\n\n# another",
			expected: map[string]string{"A": "1"},
		},
		{
			name:     "value with equals sign",
			content:  "USERPORTAL_URL=http://h/api?x=1",
			expected: map[string]string{"USERPORTAL_URL": "http://h/api?x=1"},
		},
		{
			name:     "line without equals ignored",
			content:  "JUSTAWORD\nA=1",
			expected: map[string]string{"A": "1"},
		},
		{
			name:     "empty key ignored",
			content:  "=value",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LoadDotEnv(writeEnvFile(t, tt.content))
			if err != nil {
				t.Fatalf("LoadDotEnv() error = %v", err)
			}

			if len(result) != len(tt.expected) {
				t.Errorf("LoadDotEnv() returned %d keys, want %d", len(result), len(tt.expected))
			}

			for k, v := range tt.expected {
				if got, ok := result[k]; !ok {
					t.Errorf("LoadDotEnv() missing key %q", k)
				} else if got != v {
					t.Errorf("LoadDotEnv()[%q] = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestLoadDotEnvFileNotFound(t *testing.T) {
	_, err := LoadDotEnv("/nonexistent/path/.env")
	if err == nil {
		t.Error("LoadDotEnv() expected error for non-existent file")
	}
}

func TestCollect(t *testing.T) {
	file := map[string]string{
		KeyURL:    "http://from-file",
		KeyToken:  "file-token",
		"UNKNOWN": "ignored",
	}
	lookup := func(key string) (string, bool) {
		switch key {
		case KeyToken:
			return "env-token", true
		case KeyTimeout:
			return "", true
		}
		return "", false
	}

	s := Collect(file, lookup)

	if s[KeyURL] != "http://from-file" {
		t.Errorf("URL = %q, want file value", s[KeyURL])
	}
	if s[KeyToken] != "env-token" {
		t.Errorf("Token = %q, want process environment to win", s[KeyToken])
	}
	if _, ok := s[KeyTimeout]; ok {
		t.Error("empty values must be ignored")
	}
	if _, ok := s["UNKNOWN"]; ok {
		t.Error("unrecognized keys must be ignored")
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(KeyListen, ":7000")
	path := writeEnvFile(t, "USERPORTAL_URL=http://x\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s[KeyURL] != "http://x" || s[KeyListen] != ":7000" {
		t.Errorf("Load() = %v", s)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load() expected error for missing explicit file")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("OFFICIAL_EMAIL", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Server.Addr())
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, DefaultOfficialEmail, cfg.App.OfficialEmail)
	assert.Equal(t, DefaultGenAIBaseURL, cfg.GenAI.BaseURL)
	assert.Equal(t, DefaultGenAIModel, cfg.GenAI.Model)
	assert.Equal(t, 30*time.Second, GetDuration(cfg.GenAI.Timeout))
	assert.Equal(t, 0, cfg.Limits.FibonacciMaxTerms, "fibonacci is unbounded by default")
	assert.Less(t, cfg.GenAI.Timeout, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.GenAI.APIKey)
}

func TestLoad_FlatEnvironmentVariables(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("OFFICIAL_EMAIL", "someone@example.edu")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "someone@example.edu", cfg.App.OfficialEmail)
	assert.Equal(t, "test-key", cfg.GenAI.APIKey)
}

func TestLoad_PrefixedEnvironmentVariables(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("GENAI_MODEL", "gemini-pro")
	t.Setenv("GENAI_TIMEOUT", "2500")
	t.Setenv("LIMITS_FIBONACCI_MAX_TERMS", "50")
	t.Setenv("LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-pro", cfg.GenAI.Model)
	assert.Equal(t, 2500*time.Millisecond, GetDuration(cfg.GenAI.Timeout))
	assert.Equal(t, 50, cfg.Limits.FibonacciMaxTerms)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	tests := []struct {
		name   string
		port   string
		errMsg string
	}{
		{name: "not a number", port: "abc", errMsg: "PORT must be an integer"},
		{name: "out of range", port: "70000", errMsg: "server.port must be between 1 and 65535"},
		{name: "zero", port: "0", errMsg: "server.port must be between 1 and 65535"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv("PORT", tt.port)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OFFICIAL_EMAIL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("BFHL_TEST_KEY", "from-env")

	path := writeConfigFile(t, `
app:
  official_email: file@example.edu
server:
  port: 9090
genai:
  api_key: ${BFHL_TEST_KEY}
  model: gemini-1.5-flash
  timeout: 1000
limits:
  fibonacci_max_terms: 200
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "file@example.edu", cfg.App.OfficialEmail)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.GenAI.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.GenAI.Model)
	assert.Equal(t, time.Second, GetDuration(cfg.GenAI.Timeout))
	assert.Equal(t, 200, cfg.Limits.FibonacciMaxTerms)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultGenAIBaseURL, cfg.GenAI.BaseURL)
}

func TestLoadFromFile_Errors(t *testing.T) {
	t.Setenv("PORT", "")

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("negative limits", func(t *testing.T) {
		path := writeConfigFile(t, "limits:\n  fibonacci_max_terms: -1\n")
		_, err := LoadFromFile(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "limits.fibonacci_max_terms must not be negative")
	})

	t.Run("genai timeout outlives write timeout", func(t *testing.T) {
		path := writeConfigFile(t, "server:\n  write_timeout: 20000\ngenai:\n  timeout: 20000\n")
		_, err := LoadFromFile(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be less than server.write_timeout")
	})

	t.Run("non-positive genai timeout", func(t *testing.T) {
		path := writeConfigFile(t, "genai:\n  timeout: 0\n")
		_, err := LoadFromFile(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "genai.timeout must be positive")
	})
}

func TestLoadFromFile_ZeroFibonacciLimit(t *testing.T) {
	t.Setenv("PORT", "")

	path := writeConfigFile(t, "limits:\n  fibonacci_max_terms: 0\n")
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Limits.FibonacciMaxTerms)
}

// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultOfficialEmail = "arnav0198.be23@chitkara.edu.in"
	DefaultGenAIBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGenAIModel    = "gemini-flash-latest"
)

func Load() (*Config, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional per-environment overlay

	cfg, err := build(v)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := build(v)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// SERVER_PORT, GENAI_API_KEY, LOGGING_LEVEL, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyFlatEnv(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bfhl-service")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.official_email", DefaultOfficialEmail)

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.read_timeout", 15000)
	v.SetDefault("server.write_timeout", 60000)
	v.SetDefault("server.shutdown_timeout", 30000)

	v.SetDefault("genai.base_url", DefaultGenAIBaseURL)
	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.model", DefaultGenAIModel)
	v.SetDefault("genai.timeout", 30000)

	v.SetDefault("limits.fibonacci_max_terms", 0) // 0 = unbounded

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// Load .env from multiple possible locations
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyFlatEnv honours the deployment variable names PORT, OFFICIAL_EMAIL and
// GEMINI_API_KEY. When set they win over file and prefixed env values.
func applyFlatEnv(cfg *Config) error {
	if val := strings.TrimSpace(os.Getenv("PORT")); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("PORT must be an integer, got %q", val)
		}
		cfg.Server.Port = port
	}
	if val := strings.TrimSpace(os.Getenv("OFFICIAL_EMAIL")); val != "" {
		cfg.App.OfficialEmail = val
	}
	if val := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); val != "" {
		cfg.GenAI.APIKey = val
	}
	return nil
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if strings.TrimSpace(cfg.App.OfficialEmail) == "" {
		return fmt.Errorf("app.official_email is required")
	}
	if strings.TrimSpace(cfg.GenAI.BaseURL) == "" {
		return fmt.Errorf("genai.base_url is required")
	}
	if strings.TrimSpace(cfg.GenAI.Model) == "" {
		return fmt.Errorf("genai.model is required")
	}
	if cfg.GenAI.Timeout <= 0 {
		return fmt.Errorf("genai.timeout must be positive")
	}
	// the upstream call has to finish in time to write the failure envelope
	if cfg.GenAI.Timeout >= cfg.Server.WriteTimeout {
		return fmt.Errorf("genai.timeout (%dms) must be less than server.write_timeout (%dms)",
			cfg.GenAI.Timeout, cfg.Server.WriteTimeout)
	}
	if cfg.Limits.FibonacciMaxTerms < 0 {
		return fmt.Errorf("limits.fibonacci_max_terms must not be negative")
	}
	return nil
}

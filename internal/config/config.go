package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configFileName = "autoconfirm_config.yaml"

// Config represents the application configuration
type Config struct {
	// ListenAddr is the address the HTTP API binds to
	ListenAddr string `yaml:"listenAddr" validate:"required"`

	// DatabaseURL is the PostgreSQL connection string. Optional: when unset
	// the service runs in rules-file mode and RulesFile must be set instead.
	DatabaseURL string `yaml:"databaseURL,omitempty"`

	// RulesFile is a YAML rule set for running without a database
	RulesFile string `yaml:"rulesFile,omitempty"`

	// RedisAddr enables the rule snapshot cache when set
	RedisAddr     string `yaml:"redisAddr,omitempty"`
	RedisPassword string `yaml:"redisPassword,omitempty"`

	// RuleCacheTTLSeconds bounds how stale a cached rule snapshot may be
	RuleCacheTTLSeconds int `yaml:"ruleCacheTTLSeconds,omitempty" validate:"omitempty,min=1"`

	// SimulationHorizonDays is the default preview window for the simulate command
	SimulationHorizonDays int `yaml:"simulationHorizonDays,omitempty" validate:"omitempty,min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from autoconfirm_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and its cross-field constraints
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.DatabaseURL == "" && cfg.RulesFile == "" {
		return fmt.Errorf("config must set either databaseURL or rulesFile")
	}

	return nil
}

// RuleCacheTTL returns the snapshot TTL as a duration
func (c *Config) RuleCacheTTL() time.Duration {
	return time.Duration(c.RuleCacheTTLSeconds) * time.Second
}

func defaults() *Config {
	return &Config{
		ListenAddr:            ":8080",
		RuleCacheTTLSeconds:   60,
		SimulationHorizonDays: 56,
	}
}

// findConfigFile searches for autoconfirm_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

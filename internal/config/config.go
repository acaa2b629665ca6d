package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// DefaultCacheTTLSeconds is how long table reads are served from cache when
// the config does not say otherwise.
const DefaultCacheTTLSeconds = 180

// Config represents the application configuration.
type Config struct {
	// DatabaseSheetID is the spreadsheet backing the reservation tables.
	DatabaseSheetID string `yaml:"databaseSheetID" validate:"required"`

	// CacheTTLSeconds bounds how stale a table read may be. 0 falls back to
	// the default.
	CacheTTLSeconds int `yaml:"cacheTTLSeconds,omitempty" validate:"omitempty,min=0"`

	// AutoAssignRule is the recurrence rule for auto-assignment days.
	// Empty means FREQ=WEEKLY;BYDAY=WE,SU.
	AutoAssignRule string `yaml:"autoAssignRule,omitempty"`

	// PostgresURL switches storage from the spreadsheet to Postgres when set.
	PostgresURL string `yaml:"postgresURL,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// CacheTTL returns the effective cache TTL in seconds.
func (c *Config) CacheTTL() int {
	if c.CacheTTLSeconds <= 0 {
		return DefaultCacheTTLSeconds
	}
	return c.CacheTTLSeconds
}

// LoadWithEnv loads and validates the configuration for an environment,
// e.g. env="test" reads roomrota_config.test.yaml. The file is looked up in
// the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("roomrota_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks the recurrence rule
// syntax.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.AutoAssignRule != "" {
		if _, err := rrule.StrToRRule(cfg.AutoAssignRule); err != nil {
			return fmt.Errorf("invalid autoAssignRule: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the named config file in the current directory
// and the home directory.
func findConfigFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/example/parley/internal/models"
)

// Directory and file names under a workspace.
const (
	DirName    = ".parley"
	FileName   = "config.json"
	EnvFile    = ".env"
	EnvPrefix  = "PARLEY"
	CurrentVer = "1"
)

var validate = validator.New()

// Config represents the flat parley configuration.
// Values come from .parley/config.json, then .env, then PARLEY_* environment variables.
type Config struct {
	Version        string  `json:"version"`
	DatabasePath   string  `json:"database_path,omitempty" envconfig:"DB_PATH"`
	ListenAddr     string  `json:"listen_addr" envconfig:"LISTEN_ADDR" validate:"required,hostname_port"`
	LogLevel       string  `json:"log_level" envconfig:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	RateLimitRPS   float64 `json:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst int     `json:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" validate:"gte=0"`

	// Acting identity for CLI commands.
	ParticipantID   int64  `json:"participant_id,omitempty" envconfig:"PARTICIPANT_ID" validate:"gte=0"`
	ParticipantRole string `json:"participant_role,omitempty" envconfig:"PARTICIPANT_ROLE" validate:"omitempty,oneof=individual organization student club"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Version:        CurrentVer,
		ListenAddr:     "127.0.0.1:8080",
		LogLevel:       "info",
		RateLimitRPS:   50,
		RateLimitBurst: 100,
	}
}

// LoadConfig reads .parley/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns an error wrapping os.ErrNotExist if no config found.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, DirName, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Load resolves the effective configuration for dir: the config file when
// present (defaults otherwise), then dir/.env, then PARLEY_* variables.
// The result is validated.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	envPath := filepath.Join(dir, EnvFile)
	if _, statErr := os.Stat(envPath); statErr == nil {
		// godotenv never overrides variables already set in the environment
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if (c.ParticipantID == 0) != (c.ParticipantRole == "") {
		return fmt.Errorf("invalid config: participant_id and participant_role must be set together")
	}
	return nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	parleyDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(parleyDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(parleyDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Identity returns the configured acting participant. The boolean is false
// when no identity is configured.
func (c *Config) Identity() (models.ParticipantRef, bool, error) {
	if c.ParticipantID == 0 && c.ParticipantRole == "" {
		return models.ParticipantRef{}, false, nil
	}
	role, err := models.ParseRole(c.ParticipantRole)
	if err != nil {
		return models.ParticipantRef{}, false, err
	}
	ref := models.NewParticipantRef(c.ParticipantID, role)
	if err := ref.Validate(); err != nil {
		return models.ParticipantRef{}, false, err
	}
	return ref, true, nil
}

// ResolveDatabasePath returns DatabasePath, or ~/.parley/parley.db when unset.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}
	return DefaultDatabasePath()
}

// DefaultDatabasePath returns the default database location.
func DefaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DirName, "parley.db"), nil
}

package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ScoringConfig holds the ranking weights. The three weights must sum to 1.
type ScoringConfig struct {
	AgeWeight         float64 `yaml:"ageWeight" validate:"min=0,max=1"`
	DiagnosisWeight   float64 `yaml:"diagnosisWeight" validate:"min=0,max=1"`
	FlexibilityWeight float64 `yaml:"flexibilityWeight" validate:"min=0,max=1"`
}

// OptimizerConfig holds the occupancy-optimizer settings.
type OptimizerConfig struct {
	DirectPlacements bool `yaml:"directPlacements"`
	MinCompatibility int  `yaml:"minCompatibility" validate:"min=0,max=100"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string          `yaml:"databaseURL" validate:"required"`
	LogLevel    string          `yaml:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Scoring     ScoringConfig   `yaml:"scoring"`
	Optimizer   OptimizerConfig `yaml:"optimizer"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration defaults: standard scoring weights and
// direct placements enabled. Loaded files override these field by field.
func Default() Config {
	return Config{
		LogLevel: "info",
		Scoring: ScoringConfig{
			AgeWeight:         0.30,
			DiagnosisWeight:   0.40,
			FlexibilityWeight: 0.30,
		},
		Optimizer: OptimizerConfig{
			DirectPlacements: true,
			MinCompatibility: 30,
		},
	}
}

// Load loads and validates the configuration from bedplanner_config.yaml
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

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks that the scoring
// weights sum to 1
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	sum := cfg.Scoring.AgeWeight + cfg.Scoring.DiagnosisWeight + cfg.Scoring.FlexibilityWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1, got %.3f", sum)
	}

	return nil
}

// findConfigFile searches for bedplanner_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "bedplanner_config.yaml"

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

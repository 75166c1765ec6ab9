// Package config reads and writes budgetwise.yaml, with optional
// overrides from a .env file or the process environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level budgetwise.yaml configuration.
type Config struct {
	Currency CurrencyConfig `yaml:"currency"`
	Forecast ForecastConfig `yaml:"forecast"`
	Training TrainingConfig `yaml:"training"`
	Git      GitConfig      `yaml:"git"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CurrencyConfig controls how amounts are rendered to the user.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol"`
}

// ForecastConfig controls the forecasting engine. Paths are relative
// to the project root.
type ForecastConfig struct {
	HorizonDays int    `yaml:"horizon_days"`
	ModelPath   string `yaml:"model_path"`
	ScalerPath  string `yaml:"scaler_path"`
}

// TrainingConfig holds sequence-model training hyperparameters.
type TrainingConfig struct {
	HiddenSize   int     `yaml:"hidden_size"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	Patience     int     `yaml:"patience"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FileName is the config file name inside a project directory.
const FileName = "budgetwise.yaml"

// Load reads budgetwise.yaml from a project root and applies
// environment overrides. A .env file in the project root is loaded
// first when present.
func Load(projectRoot string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, FileName))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Missing .env is the normal case.
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))
	applyEnv(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BUDGETWISE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BUDGETWISE_MODEL_PATH"); v != "" {
		cfg.Forecast.ModelPath = v
	}
	if v := os.Getenv("BUDGETWISE_SCALER_PATH"); v != "" {
		cfg.Forecast.ScalerPath = v
	}
}

// Save writes a Config to budgetwise.yaml under a project root.
func Save(projectRoot string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(projectRoot, FileName), data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Currency: CurrencyConfig{
			Symbol: "₹",
		},
		Forecast: ForecastConfig{
			HorizonDays: 30,
			ModelPath:   "models/seq_model.gob",
			ScalerPath:  "models/seq_model_scaler.gob",
		},
		Training: TrainingConfig{
			HiddenSize:   16,
			Epochs:       200,
			LearningRate: 0.01,
			Patience:     10,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "BudgetWise",
			AuthorEmail: "bot@budgetwise.dev",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

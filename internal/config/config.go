package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the barlens CLI configuration.
type Config struct {
	Symbol struct {
		Name     string  `yaml:"name"`
		PipSize  float64 `yaml:"pip_size"`
		TickSize float64 `yaml:"tick_size"`
		Digits   int     `yaml:"digits"`
	} `yaml:"symbol"`
	Data struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"data"`
	Profile struct {
		Periods      int     `yaml:"periods"`
		StepInPips   float64 `yaml:"step_in_pips"`
		CombineWidth float64 `yaml:"combine_width"`
	} `yaml:"profile"`
	Patterns struct {
		Lookback int `yaml:"lookback"`
	} `yaml:"patterns"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BARLENS_CSV_PATH"); v != "" {
		cfg.Data.CSVPath = v
	}
	if v := os.Getenv("BARLENS_SYMBOL"); v != "" {
		cfg.Symbol.Name = v
	}

	// Defaults
	if cfg.Symbol.Name == "" {
		cfg.Symbol.Name = "EURUSD"
	}
	if cfg.Symbol.PipSize == 0 {
		cfg.Symbol.PipSize = 0.0001
	}
	if cfg.Symbol.TickSize == 0 {
		cfg.Symbol.TickSize = cfg.Symbol.PipSize / 10
	}
	if cfg.Symbol.Digits == 0 {
		cfg.Symbol.Digits = 5
	}
	if cfg.Profile.Periods == 0 {
		cfg.Profile.Periods = 50
	}
	if cfg.Profile.StepInPips == 0 {
		cfg.Profile.StepInPips = 10
	}
	if cfg.Profile.CombineWidth == 0 {
		cfg.Profile.CombineWidth = cfg.Profile.StepInPips * cfg.Symbol.PipSize * 2
	}
	if cfg.Patterns.Lookback == 0 {
		cfg.Patterns.Lookback = 20
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Data.CSVPath == "" {
		return fmt.Errorf("data.csv_path is required")
	}
	if c.Symbol.PipSize <= 0 {
		return fmt.Errorf("symbol.pip_size must be positive")
	}
	if c.Symbol.TickSize <= 0 {
		return fmt.Errorf("symbol.tick_size must be positive")
	}
	if c.Symbol.Digits < 0 {
		return fmt.Errorf("symbol.digits must be non-negative")
	}
	if c.Profile.Periods <= 0 {
		return fmt.Errorf("profile.periods must be positive")
	}
	if c.Profile.StepInPips <= 0 {
		return fmt.Errorf("profile.step_in_pips must be positive")
	}
	return nil
}

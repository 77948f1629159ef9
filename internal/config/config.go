// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
	"travel-reimbursement/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. TRAVEL_REIMBURSE_RATES_HIGH_TRAVEL.
const EnvPrefix = "TRAVEL_REIMBURSE"

// DefaultFileName is the config file looked up in the home directory
const DefaultFileName = ".travel-reimbursement.yaml"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version" mapstructure:"version"`

	// Rates contains the daily rate schedule
	Rates RatesConfig `json:"rates" yaml:"rates" mapstructure:"rates"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// RatesConfig holds the four daily rates in dollars
type RatesConfig struct {
	HighTravel float64 `json:"high_travel" yaml:"high_travel" mapstructure:"high_travel"`
	HighFull   float64 `json:"high_full" yaml:"high_full" mapstructure:"high_full"`
	LowTravel  float64 `json:"low_travel" yaml:"low_travel" mapstructure:"low_travel"`
	LowFull    float64 `json:"low_full" yaml:"low_full" mapstructure:"low_full"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format" mapstructure:"default_format"`

	// ShowDetails prints the per-day schedule before the summary
	ShowDetails bool `json:"show_details" yaml:"show_details" mapstructure:"show_details"`
}

// Default returns a default configuration
func Default() *Config {
	rates := types.DefaultRateSchedule()

	return &Config{
		Version: "1.0",
		Rates: RatesConfig{
			HighTravel: rates.HighTravel.InexactFloat64(),
			HighFull:   rates.HighFull.InexactFloat64(),
			LowTravel:  rates.LowTravel.InexactFloat64(),
			LowFull:    rates.LowFull.InexactFloat64(),
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.travel-reimbursement.yaml, or the bare file
// name when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads configuration from path, layering environment overrides on top.
// A missing file is not an error; defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
				return nil, errors.Config("failed to read config file", err).WithContext("file", path)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Config("failed to decode config", err).WithContext("file", path)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("rates.high_travel", d.Rates.HighTravel)
	v.SetDefault("rates.high_full", d.Rates.HighFull)
	v.SetDefault("rates.low_travel", d.Rates.LowTravel)
	v.SetDefault("rates.low_full", d.Rates.LowFull)
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("output.show_details", d.Output.ShowDetails)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Save saves configuration to a file as YAML
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("failed to create config directory", err).WithContext("dir", dir)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Config("failed to encode config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Config("failed to write config file", err).WithContext("file", path)
	}
	return nil
}

// RateSchedule converts the configured rates into a validated schedule
func (c *Config) RateSchedule() (types.RateSchedule, error) {
	schedule := types.RateSchedule{
		HighTravel: decimal.NewFromFloat(c.Rates.HighTravel),
		HighFull:   decimal.NewFromFloat(c.Rates.HighFull),
		LowTravel:  decimal.NewFromFloat(c.Rates.LowTravel),
		LowFull:    decimal.NewFromFloat(c.Rates.LowFull),
	}
	if err := schedule.Validate(); err != nil {
		return types.RateSchedule{}, errors.Config("invalid rate schedule", err)
	}
	return schedule, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

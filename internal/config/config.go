package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file looked up in the working directory.
const FileName = "reimburse.yaml"

// Environment overrides, applied after the YAML file is read.
const (
	EnvSecretsFile = "REIMBURSE_SECRETS_FILE"
	EnvBaseURL     = "REIMBURSE_BASE_URL"
)

// Output formats accepted by Format.
const (
	FormatText = "text"
	FormatCSV  = "csv"
)

// Config represents reimburse.yaml.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	SecretsFile  string        `yaml:"secrets_file"`
	Match        string        `yaml:"match"` // empty = use reimbursement_category_id from secrets
	LookbackDays int           `yaml:"lookback_days"`
	Timeout      time.Duration `yaml:"timeout"` // per HTTP call
	Format       string        `yaml:"format"`
}

// Load reads a reimburse.yaml file from disk. Keys missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching the behaviour of a run with no config file.
func Default() *Config {
	return &Config{
		BaseURL:      "https://api.ynab.com/v1",
		SecretsFile:  "secrets/secrets.txt",
		Match:        "Kelsey Repayment",
		LookbackDays: 91,
		Timeout:      30 * time.Second,
		Format:       FormatText,
	}
}

// ApplyEnv overrides fields from the process environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSecretsFile); v != "" {
		c.SecretsFile = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
}

// Validate checks that the config can drive a run.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must be set")
	}
	if c.SecretsFile == "" {
		return errors.New("secrets_file must be set")
	}
	if c.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must not be negative, got %d", c.LookbackDays)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Format {
	case FormatText, FormatCSV:
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", c.Format, FormatText, FormatCSV)
	}
	return nil
}

// SinceDate returns the default cutoff: LookbackDays before now, truncated to a day.
func (c *Config) SinceDate(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, -c.LookbackDays).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

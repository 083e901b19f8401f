package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/prompt-distributor/pkg/core/sequencer"
	"github.com/jakechorley/prompt-distributor/pkg/promptfile"
)

// configFileName is looked up in the current directory, then the home directory
const configFileName = "prompt_config.yaml"

// Tiers lists the categories belonging to each intensity tier
type Tiers struct {
	Light  []string `yaml:"light"`
	Medium []string `yaml:"medium"`
	Heavy  []string `yaml:"heavy"`
}

// Config represents the application configuration
type Config struct {
	Separator     string   `yaml:"separator" validate:"required"`
	CooldownCap   int      `yaml:"cooldownCap" validate:"min=1"`
	Tiers         Tiers    `yaml:"tiers"`
	WeeklyPattern []string `yaml:"weeklyPattern" validate:"len=7,dive,oneof=light medium heavy"`
	Cadence       string   `yaml:"cadence" validate:"required"`
	DatabaseURL   string   `yaml:"databaseURL,omitempty"`
	HistoryPath   string   `yaml:"historyPath,omitempty" validate:"excluded_with=DatabaseURL"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the built-in configuration: the standard tier table, a
// Monday-first weekly pattern and one prompt per day
func Default() *Config {
	tiers := sequencer.DefaultTiers()

	pattern := make([]string, len(sequencer.DefaultWeeklyPattern))
	for i, tier := range sequencer.DefaultWeeklyPattern {
		pattern[i] = string(tier)
	}

	return &Config{
		Separator:   promptfile.DefaultSeparator,
		CooldownCap: sequencer.DefaultCooldownCap,
		Tiers: Tiers{
			Light:  tiers[sequencer.TierLight],
			Medium: tiers[sequencer.TierMedium],
			Heavy:  tiers[sequencer.TierHeavy],
		},
		WeeklyPattern: pattern,
		Cadence:       "FREQ=DAILY",
	}
}

// LoadWithEnv loads the configuration for an environment. It looks for
// prompt_config_<env>.yaml, then prompt_config.yaml, in the current directory
// and then the home directory. If neither exists the built-in defaults are used.
// The returned path is empty when the defaults were used.
func LoadWithEnv(env string) (*Config, string, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find config file: %w", err)
	}

	if configPath == "" {
		return Default(), "", nil
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

// LoadFromPath loads and validates the configuration from a specific path.
// Fields missing from the file keep their default values, except that a tiers
// block replaces every built-in tier list.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A tiers block replaces the built-in table as a whole; tiers it leaves out are empty
	var override struct {
		Tiers *Tiers `yaml:"tiers"`
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if override.Tiers != nil {
		cfg.Tiers = *override.Tiers
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct, the tier table and the cadence rrule
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.classification(); err != nil {
		return fmt.Errorf("invalid tiers: %w", err)
	}

	if _, err := rrule.StrToRRule(cfg.Cadence); err != nil {
		return fmt.Errorf("invalid rrule in cadence: %w", err)
	}

	return nil
}

// SequencerConfig converts the configuration into the sequencer's immutable form
func (c *Config) SequencerConfig() (sequencer.Config, error) {
	classification, err := c.classification()
	if err != nil {
		return sequencer.Config{}, err
	}

	if len(c.WeeklyPattern) != len(sequencer.WeeklyPattern{}) {
		return sequencer.Config{}, fmt.Errorf("weekly pattern must have 7 entries, got %d", len(c.WeeklyPattern))
	}
	var pattern sequencer.WeeklyPattern
	for i, name := range c.WeeklyPattern {
		tier := sequencer.Tier(name)
		if !tier.Valid() {
			return sequencer.Config{}, fmt.Errorf("unknown tier %q in weekly pattern", name)
		}
		pattern[i] = tier
	}

	return sequencer.Config{
		Classification: classification,
		Pattern:        pattern,
		CooldownCap:    c.CooldownCap,
	}, nil
}

func (c *Config) classification() (sequencer.Classification, error) {
	return sequencer.NewClassification(map[sequencer.Tier][]string{
		sequencer.TierLight:  c.Tiers.Light,
		sequencer.TierMedium: c.Tiers.Medium,
		sequencer.TierHeavy:  c.Tiers.Heavy,
	})
}

// findConfigFile searches the current directory and then the home directory.
// An environment specific file wins over the generic one in the same directory.
// Returns an empty path if no file exists.
func findConfigFile(env string) (string, error) {
	var names []string
	if env != "" {
		names = append(names, fmt.Sprintf("prompt_config_%s.yaml", env))
	}
	names = append(names, configFileName)

	dirs := []string{"."}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dirs = append(dirs, homeDir)

	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("failed to check %s: %w", path, err)
			}
		}
	}

	return "", nil
}

// Package config loads the scraper's YAML configuration file. A missing
// file is not an error: every field has a working default, and the file
// only overrides or extends them. The tournament vocabulary and the
// daily-double marker patterns are deliberately configuration, not code,
// since the source's conventions shift across eras.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bcallahan/trivia-archive/internal/classify"
	"github.com/bcallahan/trivia-archive/internal/scraper"
)

// Config represents the structure of the configuration file.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	UserAgent      string        `yaml:"user_agent"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	DatabasePath   string        `yaml:"database_path"`
	Import         ImportConfig  `yaml:"import"`
	Tournaments    []PhraseEntry `yaml:"tournaments"`
	DailyDouble    MarkerConfig  `yaml:"daily_double"`
}

// ImportConfig holds batch-import tuning. Throttling lives here because
// the scraper itself imposes no rate limit; pacing the shared upstream is
// the importer's job.
type ImportConfig struct {
	Workers int `yaml:"workers"`
	DelayMS int `yaml:"delay_ms"`
}

// PhraseEntry extends the tournament vocabulary from configuration.
type PhraseEntry struct {
	Match string `yaml:"match"`
	Label string `yaml:"label"`
}

// MarkerConfig extends the daily-double marker patterns.
type MarkerConfig struct {
	Classes  []string `yaml:"classes"`
	Prefixes []string `yaml:"prefixes"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		BaseURL:        scraper.DefaultBaseURL,
		UserAgent:      scraper.UserAgent,
		TimeoutSeconds: 30,
		DatabasePath:   "trivia-archive.db",
		Import: ImportConfig{
			Workers: 4,
			DelayMS: 500,
		},
	}
}

// Load reads configuration from the given path. A missing file yields the
// defaults (not an error); a file that exists but cannot be parsed is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Re-apply defaults for fields the file left empty
	defaults := Default()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaults.DatabasePath
	}
	if cfg.Import.Workers <= 0 {
		cfg.Import.Workers = defaults.Import.Workers
	}
	if cfg.Import.DelayMS <= 0 {
		cfg.Import.DelayMS = defaults.Import.DelayMS
	}

	return cfg, nil
}

// Timeout returns the configured network timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Vocabulary returns the default tournament vocabulary with configured
// phrases prepended, so user entries take precedence over built-ins.
func (c *Config) Vocabulary() []classify.Phrase {
	vocab := make([]classify.Phrase, 0, len(c.Tournaments)+len(classify.DefaultVocabulary()))
	for _, p := range c.Tournaments {
		label := p.Label
		if label == "" {
			label = p.Match
		}
		vocab = append(vocab, classify.Phrase{Match: p.Match, Label: label})
	}
	return append(vocab, classify.DefaultVocabulary()...)
}

// Markers returns the default daily-double markers extended with the
// configured ones.
func (c *Config) Markers() classify.Markers {
	markers := classify.DefaultMarkers()
	markers.DailyDoubleClasses = append(markers.DailyDoubleClasses, c.DailyDouble.Classes...)
	markers.DailyDoublePrefixes = append(markers.DailyDoublePrefixes, c.DailyDouble.Prefixes...)
	return markers
}

// ScraperOptions assembles the scraper options this configuration
// describes.
func (c *Config) ScraperOptions() scraper.Options {
	return scraper.Options{
		BaseURL:    c.BaseURL,
		UserAgent:  c.UserAgent,
		Timeout:    c.Timeout(),
		Markers:    c.Markers(),
		Vocabulary: c.Vocabulary(),
	}
}

// Package models defines the document data structures shared by the loaders,
// annotators and writers, plus runtime configuration.
package models

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Section annotation scopes. A scope unit is the sequence whose first and
// last sections receive the column bookends.
const (
	ScopePage     = "page"
	ScopeDocument = "document"
)

// Config holds runtime configuration. Values come from an optional YAML file,
// then SBP_* environment variables, then CLI flags.
type Config struct {
	LineAnnotator    LineAnnotatorConfig    `yaml:"line_annotator"`
	SectionAnnotator SectionAnnotatorConfig `yaml:"section_annotator"`
	Vocabulary       Vocabulary             `yaml:"vocabulary"`
	Language         LanguageConfig         `yaml:"language"`
	Source           Source                 `yaml:"source"`

	Workers   int    `yaml:"workers" env:"SBP_WORKERS"`
	DBPath    string `yaml:"db_path" env:"SBP_DB_PATH"`
	CacheDir  string `yaml:"cache_dir" env:"SBP_CACHE_DIR"`
	OutputDir string `yaml:"output_dir" env:"SBP_OUTPUT_DIR"`
}

// LineAnnotatorConfig tunes the statblock title search.
type LineAnnotatorConfig struct {
	// TitleLeftTolerance is the max |left delta| between a header and its title.
	TitleLeftTolerance float64 `yaml:"title_left_tolerance" env:"SBP_TITLE_LEFT_TOLERANCE"`
	// TitleGapTolerance bounds title.bottom - header.top.
	TitleGapTolerance float64 `yaml:"title_gap_tolerance" env:"SBP_TITLE_GAP_TOLERANCE"`
}

// SectionAnnotatorConfig tunes section level tagging.
type SectionAnnotatorConfig struct {
	// WeakDensity is the fraction of block-title lines a section must exceed
	// to be tagged sb_part_weak.
	WeakDensity float64 `yaml:"weak_density" env:"SBP_WEAK_DENSITY"`
	// Scope is "page" or "document".
	Scope string `yaml:"scope" env:"SBP_SECTION_SCOPE"`
}

// LanguageConfig controls the document language check.
type LanguageConfig struct {
	Enabled  bool   `yaml:"enabled" env:"SBP_LANGUAGE_CHECK"`
	Expected string `yaml:"expected" env:"SBP_LANGUAGE_EXPECTED"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LineAnnotator: LineAnnotatorConfig{
			TitleLeftTolerance: 0.05,
			TitleGapTolerance:  0.05,
		},
		SectionAnnotator: SectionAnnotatorConfig{
			WeakDensity: 0.1,
			Scope:       ScopePage,
		},
		Vocabulary: DefaultVocabulary(),
		Language: LanguageConfig{
			Enabled:  true,
			Expected: "English",
		},
		Workers:   4,
		OutputDir: "sbp-results",
	}
}

// LoadConfig reads the YAML file at path over the defaults and applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the annotators cannot work with.
func (c *Config) Validate() error {
	if c.LineAnnotator.TitleLeftTolerance <= 0 || c.LineAnnotator.TitleGapTolerance <= 0 {
		return fmt.Errorf("invalid config: title tolerances must be positive")
	}
	if c.SectionAnnotator.WeakDensity <= 0 || c.SectionAnnotator.WeakDensity >= 1 {
		return fmt.Errorf("invalid config: weak_density must be between 0 and 1, got %v", c.SectionAnnotator.WeakDensity)
	}
	switch c.SectionAnnotator.Scope {
	case ScopePage, ScopeDocument:
	default:
		return fmt.Errorf("invalid config: unknown section scope %q", c.SectionAnnotator.Scope)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid config: workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

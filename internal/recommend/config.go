package recommend

import (
	"fmt"
	"os"

	"smartcart/internal/comatrix"

	"gopkg.in/yaml.v3"
)

// MaxCartSize is the cap enforced by the calling layer; the normalizer and
// scorer trust their input to respect it.
const MaxCartSize = 3

// TopN is the number of recommendation slots.
const TopN = 3

// ScorerConfig holds the scoring tunables. Base scores are the SUM of
// per-cart-item affinities; CategoryBias is the fixed increment added to
// candidates from categories absent from the cart. The blacklist is a
// static configured table, never learned.
type ScorerConfig struct {
	CategoryBias float64  `yaml:"category_bias"`
	Blacklist    []string `yaml:"blacklist"`
}

// DefaultScorerConfig returns the documented defaults.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		CategoryBias: 0.10,
		Blacklist: []string{
			"Plasticware",
			"Napkins",
			"Utensils",
			"Carryout Bag",
			"Condiment Packet",
		},
	}
}

// EngineConfig is the YAML-loadable engine tuning file: scorer tunables plus
// builder defaults for admin-triggered rebuilds.
type EngineConfig struct {
	Scoring ScorerConfig          `yaml:"scoring"`
	Build   comatrix.BuildOptions `yaml:"build"`
}

// DefaultEngineConfig returns defaults used when no config file is given.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Scoring: DefaultScorerConfig(),
		Build:   comatrix.BuildOptions{Seed: comatrix.DefaultSeed},
	}
}

// engineConfigFile mirrors EngineConfig with optional scoring fields so an
// explicit zero (bias disabled, blacklist emptied) is distinguishable from
// an absent one.
type engineConfigFile struct {
	Scoring struct {
		CategoryBias *float64 `yaml:"category_bias"`
		Blacklist    []string `yaml:"blacklist"`
	} `yaml:"scoring"`
	Build comatrix.BuildOptions `yaml:"build"`
}

// LoadEngineConfig reads an EngineConfig from a YAML file, filling absent
// fields from the defaults. Fields that are present keep their configured
// value, including zero.
func LoadEngineConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("read engine config: %w", err)
	}

	var file engineConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return EngineConfig{}, fmt.Errorf("parse engine config: %w", err)
	}

	cfg := DefaultEngineConfig()
	if file.Scoring.CategoryBias != nil {
		cfg.Scoring.CategoryBias = *file.Scoring.CategoryBias
	}
	if file.Scoring.Blacklist != nil {
		cfg.Scoring.Blacklist = file.Scoring.Blacklist
	}
	cfg.Build = file.Build
	if cfg.Build.Seed == 0 {
		cfg.Build.Seed = comatrix.DefaultSeed
	}
	return cfg, nil
}

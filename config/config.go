// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

const (
	// MinCocktailSize is the smallest allowed cocktail
	MinCocktailSize = 2

	// MaxCocktailSize is the largest allowed cocktail
	MaxCocktailSize = 5
)

// Config is the root-level settings struct and is a mix of settings
// available in a settings file and those from the command line
type Config struct {
	// the domain-similarity metric, "weightedJaccard" or "jaccard"
	Metric string `mapstructure:"metric"`

	// the minimum pairwise score for two phages to count as compatible.
	// common presets are -0.10, 0.00, 0.15 and 0.30
	Threshold float64 `mapstructure:"threshold"`

	// the maximum number of phages in a cocktail
	MaxSize int `mapstructure:"max-size"`

	// the target host labels. When empty the observed hosts are used
	TargetHosts []string `mapstructure:"target-hosts"`
}

// New returns a new Config struct populated by Viper settings (either from
// a local settings file and/or command line arguments)
func New() *Config {
	c := &Config{}

	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings: %v", err)
	}

	if c.Metric == "" {
		c.Metric = "weightedJaccard"
	}
	if c.MaxSize == 0 {
		c.MaxSize = 3
	}

	return c
}

// Validate checks the settings against their documented domains. This is
// the only configuration error surfaced to callers: everything else
// degrades to a default
func (c *Config) Validate() error {
	if c.Metric != "weightedJaccard" && c.Metric != "jaccard" {
		return fmt.Errorf("unrecognized metric %q, expecting weightedJaccard or jaccard", c.Metric)
	}
	if c.MaxSize < MinCocktailSize || c.MaxSize > MaxCocktailSize {
		return fmt.Errorf("max-size %d out of range [%d,%d]", c.MaxSize, MinCocktailSize, MaxCocktailSize)
	}
	return nil
}

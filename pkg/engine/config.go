package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-ubo/pkg/validation"
)

// Config holds every tunable of an analysis run
type Config struct {
	// MaxDepth bounds control-path length in hops
	MaxDepth int `yaml:"max_depth"`

	// DeepChainThreshold is the depth above which a chain is flagged
	DeepChainThreshold int `yaml:"deep_chain_threshold"`

	// DensityZThreshold is the z-score cutoff for registration outliers
	DensityZThreshold float64 `yaml:"density_z_threshold"`

	// SecrecyJurisdictions are the ISO country codes treated as
	// high-secrecy for offshore-nexus detection
	SecrecyJurisdictions []string `yaml:"secrecy_jurisdictions"`

	// VisitBudget caps per-company edge expansions during resolution
	VisitBudget int `yaml:"visit_budget"`

	// Workers sizes the resolution fan-out pool; 0 means GOMAXPROCS
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the standard analysis configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth:           10,
		DeepChainThreshold: 5,
		DensityZThreshold:  3.0,
		SecrecyJurisdictions: []string{
			"VG", "KY", "BM", "JE", "GG", "IM", "GI", "PA", "BS", "MH", "SC", "LI",
		},
		VisitBudget: 100000,
		Workers:     0,
	}
}

// ApplyDefaults applies default values to zero-valued fields
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	c.MaxDepth = validation.DefaultOrInt(c.MaxDepth, defaults.MaxDepth)
	c.DeepChainThreshold = validation.DefaultOrInt(c.DeepChainThreshold, defaults.DeepChainThreshold)
	c.DensityZThreshold = validation.DefaultOrFloat(c.DensityZThreshold, defaults.DensityZThreshold)
	c.VisitBudget = validation.DefaultOrInt(c.VisitBudget, defaults.VisitBudget)
	if c.SecrecyJurisdictions == nil {
		c.SecrecyJurisdictions = defaults.SecrecyJurisdictions
	}
}

// Validate checks the configuration. Bad configuration is the only
// fail-fast condition of a run; data-quality problems are warnings.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("EngineConfig").
		RangeInt("MaxDepth", c.MaxDepth, 1, 100).
		Positive("DeepChainThreshold", c.DeepChainThreshold).
		PositiveFloat("DensityZThreshold", c.DensityZThreshold).
		Positive("VisitBudget", c.VisitBudget).
		NonNegative("Workers", c.Workers).
		Custom("SecrecyJurisdictions", func() error {
			return validation.Jurisdictions(c.SecrecyJurisdictions)
		}).
		Validate()
}

// LoadConfig reads a YAML config file, fills defaults and validates
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

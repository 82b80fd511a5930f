package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max depth", func(c *Config) { c.MaxDepth = 0 }},
		{"excessive max depth", func(c *Config) { c.MaxDepth = 500 }},
		{"zero chain threshold", func(c *Config) { c.DeepChainThreshold = 0 }},
		{"negative z threshold", func(c *Config) { c.DensityZThreshold = -1 }},
		{"zero visit budget", func(c *Config) { c.VisitBudget = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"lowercase jurisdiction", func(c *Config) { c.SecrecyJurisdictions = []string{"vg"} }},
		{"long jurisdiction", func(c *Config) { c.SecrecyJurisdictions = []string{"VGB"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{MaxDepth: 3}
	cfg.ApplyDefaults()

	if cfg.MaxDepth != 3 {
		t.Errorf("Expected explicit MaxDepth 3 kept, got %d", cfg.MaxDepth)
	}
	if cfg.DeepChainThreshold != 5 {
		t.Errorf("Expected default DeepChainThreshold 5, got %d", cfg.DeepChainThreshold)
	}
	if cfg.VisitBudget != 100000 {
		t.Errorf("Expected default VisitBudget 100000, got %d", cfg.VisitBudget)
	}
	if len(cfg.SecrecyJurisdictions) == 0 {
		t.Error("Expected default secrecy jurisdictions")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ubo.yaml")
	content := []byte("max_depth: 7\nsecrecy_jurisdictions: [VG, KY]\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}
	if cfg.MaxDepth != 7 {
		t.Errorf("Expected MaxDepth 7, got %d", cfg.MaxDepth)
	}
	if len(cfg.SecrecyJurisdictions) != 2 {
		t.Errorf("Expected 2 jurisdictions, got %v", cfg.SecrecyJurisdictions)
	}
	if cfg.DeepChainThreshold != 5 {
		t.Errorf("Expected defaulted chain threshold, got %d", cfg.DeepChainThreshold)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("max_depth: [not an int"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("secrecy_jurisdictions: [cayman]\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(invalid); err == nil {
		t.Error("Expected error for invalid jurisdiction code")
	}
}

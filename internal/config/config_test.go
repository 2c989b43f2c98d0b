package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Size.MaxTotalBytes != 500000 {
		t.Errorf("MaxTotalBytes = %d, expected 500000", cfg.Size.MaxTotalBytes)
	}
	if cfg.Size.MaxJSBytes != 250000 {
		t.Errorf("MaxJSBytes = %d, expected 250000", cfg.Size.MaxJSBytes)
	}
	if cfg.Size.MaxCSSBytes != 100000 {
		t.Errorf("MaxCSSBytes = %d, expected 100000", cfg.Size.MaxCSSBytes)
	}
	if cfg.Duplication.DOMQueryRepeatLimit != 3 {
		t.Errorf("DOMQueryRepeatLimit = %d, expected 3", cfg.Duplication.DOMQueryRepeatLimit)
	}
	if cfg.Performance.MaxDOMNodes != 1500 {
		t.Errorf("MaxDOMNodes = %d, expected 1500", cfg.Performance.MaxDOMNodes)
	}
	if cfg.Audit.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, expected 120", cfg.Audit.TimeoutSeconds)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero total budget", func(c *Config) { c.Size.MaxTotalBytes = 0 }},
		{"negative js budget", func(c *Config) { c.Size.MaxJSBytes = -1 }},
		{"js percent over 100", func(c *Config) { c.Size.MaxJSPercent = 101 }},
		{"zero function body length", func(c *Config) { c.Duplication.MinFunctionBodyLength = 0 }},
		{"selector parts of one", func(c *Config) { c.Duplication.DeepSelectorParts = 1 }},
		{"zero dom nodes", func(c *Config) { c.Performance.MaxDOMNodes = 0 }},
		{"zero css share", func(c *Config) { c.Performance.CSSShareForRecommendation = 0 }},
		{"zero audit timeout", func(c *Config) { c.Audit.TimeoutSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Errorf("Failed to restore directory: %v", err)
		}
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without a config file should fall back to defaults, got: %v", err)
	}

	if cfg.Size.MaxTotalBytes != 500000 {
		t.Errorf("MaxTotalBytes = %d, expected the default", cfg.Size.MaxTotalBytes)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".bundlecheck.yaml")

	content := `size:
  max_total_bytes: 750000
duplication:
  dom_query_repeat_limit: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Size.MaxTotalBytes != 750000 {
		t.Errorf("MaxTotalBytes = %d, expected the override 750000", cfg.Size.MaxTotalBytes)
	}
	if cfg.Duplication.DOMQueryRepeatLimit != 5 {
		t.Errorf("DOMQueryRepeatLimit = %d, expected the override 5", cfg.Duplication.DOMQueryRepeatLimit)
	}
	if cfg.Size.MaxJSBytes != 250000 {
		t.Errorf("MaxJSBytes = %d, unset keys should keep defaults", cfg.Size.MaxJSBytes)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ".bundlecheck.yaml")

	cfg := DefaultConfig()
	cfg.Size.MaxTotalBytes = 123456

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}

	if loaded.Size.MaxTotalBytes != 123456 {
		t.Errorf("MaxTotalBytes = %d, expected the saved value", loaded.Size.MaxTotalBytes)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfigMissingFile verifies that defaults are used when no file exists
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}

	def := DefaultConfig()
	if cfg.Figure.PanelWidth != def.Figure.PanelWidth || cfg.Figure.ZMax != def.Figure.ZMax {
		t.Errorf("Expected default figure settings, got %+v", cfg.Figure)
	}
	if !cfg.Output.Window {
		t.Error("Expected the interactive window to be enabled by default")
	}
}

// TestLoadConfigOverrides verifies that YAML values override defaults and missing keys keep them
func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channelhist.yaml")
	data := []byte(`
figure:
  elevation: 45
  zMax: 100
channels:
  names: ["B", "G", "R"]
  colors: ["#0000ff", "#00ff00", "#ff0000"]
decode:
  maxDimension: 64
output:
  verbose: false
  stlPrefix: bars
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Figure.Elevation != 45 || cfg.Figure.ZMax != 100 {
		t.Errorf("Expected overridden figure values, got %+v", cfg.Figure)
	}
	if cfg.Figure.Azimuth != -60 {
		t.Errorf("Expected default azimuth to survive, got %f", cfg.Figure.Azimuth)
	}
	if cfg.Channels.Names[0] != "B" || cfg.Channels.Colors[2] != "#ff0000" {
		t.Errorf("Unexpected channel settings: %+v", cfg.Channels)
	}
	if cfg.Decode.MaxDimension != 64 {
		t.Errorf("Expected maxDimension 64, got %d", cfg.Decode.MaxDimension)
	}
	if cfg.Output.Verbose || cfg.Output.STLPrefix != "bars" {
		t.Errorf("Unexpected output settings: %+v", cfg.Output)
	}
}

// TestLoadConfigInvalid verifies that malformed and inconsistent files are rejected
func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax.yaml":   "figure: [unterminated",
		"names.yaml":    "channels:\n  names: [\"only one\"]\n",
		"negative.yaml": "decode:\n  maxDimension: -1\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}

// TestCreateDefaultConfigFile verifies that a saved default config loads back unchanged
func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "channelhist.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("Failed to create default config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	def := DefaultConfig()
	if cfg.Figure != def.Figure || cfg.Output != def.Output {
		t.Errorf("Saved config differs from defaults: %+v", cfg)
	}
}

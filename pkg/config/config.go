// Package config provides configuration loading and management for channelhist.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Figure layout and camera
	Figure struct {
		// PanelWidth and PanelHeight are the pixel size of each channel's chart
		PanelWidth  int `yaml:"panelWidth"`
		PanelHeight int `yaml:"panelHeight"`

		// Elevation and Azimuth position the camera in degrees
		Elevation float64 `yaml:"elevation"`
		Azimuth   float64 `yaml:"azimuth"`

		// ZMax is the top of the intensity axis
		ZMax float64 `yaml:"zMax"`

		// Background is the figure background as a hex colour
		Background string `yaml:"background"`
	} `yaml:"figure"`

	// Channel naming and colours, indexed in decode order
	Channels struct {
		Names  []string `yaml:"names"`
		Colors []string `yaml:"colors"`
	} `yaml:"channels"`

	// Decoding parameters
	Decode struct {
		// MaxDimension shrinks larger images before plotting; 0 disables it
		MaxDimension int `yaml:"maxDimension"`
	} `yaml:"decode"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`

		// Window shows the figure in an interactive window
		Window bool `yaml:"window"`

		// FigurePath, when set, saves the figure as PNG
		FigurePath string `yaml:"figurePath"`

		// STLPrefix, when set, saves one STL mesh per channel
		STLPrefix string `yaml:"stlPrefix"`

		// STLZScale scales bar heights in the STL meshes
		STLZScale float64 `yaml:"stlZScale"`

		// HistogramPath, when set, saves the 2D intensity histogram as PNG
		HistogramPath string `yaml:"histogramPath"`

		// PlanesDir, when set, receives one grayscale PNG per channel
		PlanesDir string `yaml:"planesDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default figure parameters
	cfg.Figure.PanelWidth = 480
	cfg.Figure.PanelHeight = 400
	cfg.Figure.Elevation = 30
	cfg.Figure.Azimuth = -60
	cfg.Figure.ZMax = 255
	cfg.Figure.Background = "#ffffff"

	// Go decoders produce R, G, B
	cfg.Channels.Names = []string{"R channel", "G channel", "B channel"}
	cfg.Channels.Colors = []string{"#d62728", "#2ca02c", "#1f77b4"}

	// Set default output parameters
	cfg.Output.Verbose = true
	cfg.Output.Window = true
	cfg.Output.STLZScale = 1

	return cfg
}

// Validate checks values that the rest of the program relies on
func (c *Config) Validate() error {
	if len(c.Channels.Names) != 3 {
		return fmt.Errorf("channels.names must list 3 names, got %d", len(c.Channels.Names))
	}
	if len(c.Channels.Colors) != 3 {
		return fmt.Errorf("channels.colors must list 3 colors, got %d", len(c.Channels.Colors))
	}
	if c.Decode.MaxDimension < 0 {
		return fmt.Errorf("decode.maxDimension must not be negative, got %d", c.Decode.MaxDimension)
	}
	if c.Output.STLZScale <= 0 {
		return fmt.Errorf("output.stlZScale must be positive, got %g", c.Output.STLZScale)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Package config loads littermap configuration from YAML with sensible
// defaults matching the standard data directory layout.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/littermap-org/littermap/dataset"
)

// Config holds all littermap configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Charts  ChartsConfig  `yaml:"charts"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the input files. File names are relative to Dir unless
// absolute.
type DataConfig struct {
	Dir         string `yaml:"dir"`
	StateYear   string `yaml:"state_year"`
	CountyYear  string `yaml:"county_year"`
	CountyMonth string `yaml:"county_month"`
	StateMonth  string `yaml:"state_month"`
	Boundary    string `yaml:"boundary"`
	BoundaryKey string `yaml:"boundary_key"`
}

// ChartsConfig tunes chart construction.
type ChartsConfig struct {
	TopN int `yaml:"top_n"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// EnvDataDir overrides DataConfig.Dir when set.
const EnvDataDir = "LITTERMAP_DATA_DIR"

// Default returns the configuration matching the standard layout.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:         "data",
			StateYear:   "yearly_state.csv",
			CountyYear:  "yearly_county.csv",
			CountyMonth: "monthly_county.csv",
			StateMonth:  "monthly_state.csv",
			Boundary:    "geojson.json",
			BoundaryKey: dataset.DefaultBoundaryKey,
		},
		Charts:  ChartsConfig{TopN: 10},
		Server:  ServerConfig{Listen: ":8080"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns defaults.
// The data directory environment override applies in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.Data.Dir = dir
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Data.StateYear == "" || c.Data.CountyYear == "" || c.Data.Boundary == "" {
		return fmt.Errorf("state_year, county_year and boundary paths are required")
	}
	if c.Charts.TopN <= 0 {
		return fmt.Errorf("charts.top_n must be positive, got %d", c.Charts.TopN)
	}
	return nil
}

// Paths resolves the configured file names into loader paths. Optional
// monthly files may be empty, which the loader treats as absent.
func (c *Config) Paths() dataset.Paths {
	return dataset.Paths{
		StateYear:   c.resolve(c.Data.StateYear),
		CountyYear:  c.resolve(c.Data.CountyYear),
		CountyMonth: c.resolve(c.Data.CountyMonth),
		StateMonth:  c.resolve(c.Data.StateMonth),
		Boundary:    c.resolve(c.Data.Boundary),
		BoundaryKey: c.Data.BoundaryKey,
	}
}

func (c *Config) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Data.Dir, name)
}

package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/view"
	"gopkg.in/yaml.v3"
)

const configFileName = "summit.yaml"

// Config represents the project configuration from summit.yaml.
type Config struct {
	Name            string          `yaml:"name"`
	TileSize        float64         `yaml:"tile_size"`
	Zoom            ZoomConfig      `yaml:"zoom"`
	MaxUndo         int             `yaml:"max_undo"`
	ConverterConfig ConverterConfig `yaml:"converter"`
	Keys            KeyConfig       `yaml:"keys"`
}

type ZoomConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

type ConverterConfig struct {
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
	LoadArgs []string `yaml:"load_args"`
}

// KeyConfig names the editor shortcuts. Values are key names as the window
// toolkit reports them ("E", "Q", ...).
type KeyConfig struct {
	ZoomIn    string `yaml:"zoom_in"`
	ZoomOut   string `yaml:"zoom_out"`
	ResetView string `yaml:"reset_view"`
	AllRooms  string `yaml:"all_rooms"`
	Save      string `yaml:"save"`
	Undo      string `yaml:"undo"`
	Redo      string `yaml:"redo"`
}

// Default returns the configuration used when no summit.yaml exists.
func Default() *Config {
	return &Config{
		Name:     "summit",
		TileSize: view.TileSize,
		Zoom: ZoomConfig{
			Min:  view.DefaultMinZoom,
			Max:  view.DefaultMaxZoom,
			Step: view.DefaultZoomStep,
		},
		MaxUndo: 256,
		Keys: KeyConfig{
			ZoomIn:    "E",
			ZoomOut:   "Q",
			ResetView: "R",
			AllRooms:  "A",
			Save:      "S",
			Undo:      "Z",
			Redo:      "Y",
		},
	}
}

// FindProjectRoot walks up from the current working directory looking for summit.yaml.
// Returns the directory containing summit.yaml, or an error if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return findFrom(cwd)
}

func findFrom(start string) (string, error) {
	dir := start
	for {
		configPath := filepath.Join(dir, configFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s: %w", configFileName, start, os.ErrNotExist)
		}
		dir = parent
	}
}

// LoadConfig loads and parses the summit.yaml file from the given project root.
// Fields left out of the file keep their defaults.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, configFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configFileName, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
	}

	if config.TileSize <= 0 {
		return nil, fmt.Errorf("'tile_size' must be positive in %s", configFileName)
	}
	if config.Zoom.Min <= 0 || config.Zoom.Max < config.Zoom.Min {
		return nil, fmt.Errorf("'zoom' needs 0 < min <= max in %s", configFileName)
	}
	if config.Zoom.Step <= 1 {
		return nil, fmt.Errorf("'zoom.step' must be greater than 1 in %s", configFileName)
	}

	return config, nil
}

// Load finds summit.yaml from the working directory and loads it. Without a
// project the defaults are returned.
func Load() (*Config, error) {
	root, err := FindProjectRoot()
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(root)
}

// View returns a view transform configured from c.
func (c *Config) View() view.Transform {
	v := view.New(c.TileSize)
	v.MinZoom = c.Zoom.Min
	v.MaxZoom = c.Zoom.Max
	v.ZoomStep = c.Zoom.Step
	return v
}

// Converter returns the external converter configured by c.
func (c *Config) Converter() *converter.Exec {
	return &converter.Exec{
		Command:  c.ConverterConfig.Command,
		SaveArgs: c.ConverterConfig.Args,
		LoadArgs: c.ConverterConfig.LoadArgs,
	}
}

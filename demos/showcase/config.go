package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"golang.org/x/image/font/sfnt"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/glitchmorph"
)

// showcaseConfig is the YAML-facing mirror of glitchmorph.Config plus the
// demo's own window and theme settings. Every field is optional; zero values
// fall back to the defaults below.
type showcaseConfig struct {
	Texts    []string `yaml:"texts"`
	FontPath string   `yaml:"fontPath"`

	// Set either tilesX/tilesY or tileSizePx, not both.
	TilesX     int     `yaml:"tilesX"`
	TilesY     int     `yaml:"tilesY"`
	TileSizePx float64 `yaml:"tileSizePx"`

	InitialWait     float64  `yaml:"initialWait"`
	AllTilesFlip    float64  `yaml:"allTilesFlip"`
	SingleTileFlip  float64  `yaml:"singleTileFlip"`
	BetweenWait     float64  `yaml:"betweenWait"`
	FinalWait       float64  `yaml:"finalWait"`
	InvertThreshold *float64 `yaml:"invertThreshold"`

	ResizeDebounceMs int `yaml:"resizeDebounceMs"`

	Window struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`

	DarkTheme bool `yaml:"darkTheme"`
}

// defaultShowcaseConfig returns the settings used when no config file is
// given.
func defaultShowcaseConfig() *showcaseConfig {
	cfg := &showcaseConfig{
		Texts: []string{"signal", "static", "silence"},
	}
	cfg.Window.Width = 800
	cfg.Window.Height = 360
	return cfg
}

// loadShowcaseConfig reads and validates a YAML config file.
func loadShowcaseConfig(path string) (*showcaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read showcase config: %w", err)
	}
	cfg := defaultShowcaseConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse showcase config: %w", err)
	}
	if len(cfg.Texts) != 3 {
		return nil, fmt.Errorf("showcase config: need exactly 3 texts, have %d", len(cfg.Texts))
	}
	return cfg, nil
}

// morphConfig maps the file settings onto a glitchmorph.Config. The morph
// library itself re-validates everything in New.
func (c *showcaseConfig) morphConfig(fnt *sfnt.Font, ink func() color.Color) glitchmorph.Config {
	cfg := glitchmorph.DefaultConfig()
	copy(cfg.Texts[:], c.Texts)
	cfg.Font = fnt
	cfg.Ink = ink
	cfg.Width = float64(c.Window.Width)
	cfg.Height = float64(c.Window.Height)

	if c.TilesX > 0 || c.TilesY > 0 {
		cfg.TileSizePx = 0
		cfg.Tiles = &glitchmorph.TileCount{X: c.TilesX, Y: c.TilesY}
	} else if c.TileSizePx > 0 {
		cfg.TileSizePx = c.TileSizePx
	}

	if c.InitialWait > 0 {
		cfg.InitialWait = c.InitialWait
	}
	if c.AllTilesFlip > 0 {
		cfg.AllTilesFlip = c.AllTilesFlip
	}
	if c.SingleTileFlip > 0 {
		cfg.SingleTileFlip = c.SingleTileFlip
	}
	if c.BetweenWait > 0 {
		cfg.BetweenWait = c.BetweenWait
	}
	if c.FinalWait > 0 {
		cfg.FinalWait = c.FinalWait
	}
	if c.InvertThreshold != nil {
		cfg.InvertThreshold = *c.InvertThreshold
	}
	if c.ResizeDebounceMs > 0 {
		cfg.ResizeDebounce = time.Duration(c.ResizeDebounceMs) * time.Millisecond
	}
	return cfg
}

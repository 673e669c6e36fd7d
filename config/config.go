// Package config loads game-wide settings.
package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// Game holds the settings shared by every level.
type Game struct {
	Title          string  `yaml:"title"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	NumLevels      int     `yaml:"num_levels"`
	Step           float64 `yaml:"step"`
	GravityX       float64 `yaml:"gravity_x"`
	GravityY       float64 `yaml:"gravity_y"`
	Debug          bool    `yaml:"debug"`
	UnlockAll      bool    `yaml:"unlock_all"`
	DBPath         string  `yaml:"db_path"`
	BackDebounceMS int     `yaml:"back_debounce_ms"`
	LevelDir       string  `yaml:"level_dir"`
}

// Default returns the built-in settings.
func Default() Game {
	return Game{
		Title:          "LOL",
		Width:          960,
		Height:         640,
		PixelsPerMeter: 20,
		NumLevels:      3,
		Step:           1.0 / 45.0,
		GravityY:       -10,
		DBPath:         "~/.lol/lol.db",
		BackDebounceMS: 250,
		LevelDir:       "levels",
	}
}

// BackDebounce returns the minimum spacing between two honored back presses.
func (g Game) BackDebounce() time.Duration {
	return time.Duration(g.BackDebounceMS) * time.Millisecond
}

// normalize fills zero values a partial YAML file left behind.
func (g Game) normalize() Game {
	d := Default()
	if g.Title == "" {
		g.Title = d.Title
	}
	if g.Width <= 0 {
		g.Width = d.Width
	}
	if g.Height <= 0 {
		g.Height = d.Height
	}
	if g.PixelsPerMeter <= 0 {
		g.PixelsPerMeter = d.PixelsPerMeter
	}
	if g.NumLevels <= 0 {
		g.NumLevels = d.NumLevels
	}
	if g.Step <= 0 {
		g.Step = d.Step
	}
	if g.BackDebounceMS < 0 {
		g.BackDebounceMS = 0
	}
	if g.DBPath == "" {
		g.DBPath = d.DBPath
	}
	if g.LevelDir == "" {
		g.LevelDir = d.LevelDir
	}
	return g
}

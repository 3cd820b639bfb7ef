// Package config assembles runtime settings from defaults, an optional HCL
// file, a .env file and GRIDPATH_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/zimka1/grid-path-visualizer/grid"
)

// ErrInvalidConfig wraps every parse and validation failure
var ErrInvalidConfig = errors.New("config: invalid")

const (
	MaxDimension = 256

	DefaultWidth     = 10
	DefaultHeight    = 10
	DefaultStepDelay = 100 * time.Millisecond
	DefaultLogFile   = "logs/gridpath.log"
)

// Config is the full set of runtime settings
type Config struct {
	Grid      GridConfig
	StepDelay time.Duration
	Audio     AudioConfig
	Log       LogConfig
	Maze      MazeConfig
	Preset    *Preset
}

type GridConfig struct {
	Width  int
	Height int
}

type AudioConfig struct {
	Enabled bool
	Volume  float64 // 0.0 - 1.0
}

type LogConfig struct {
	Enabled bool
	Level   string // debug, info, warn, error
	Format  string // text, json
	File    string
}

type MazeConfig struct {
	Braiding   float64
	OpenBorder bool
	Seed       int64
}

// Preset is an initial board. Either Layout or the coordinate fields are set,
// never both.
type Preset struct {
	Start  *grid.Pos
	Goal   *grid.Pos
	Walls  []grid.Pos
	Layout string // Glyph rows as accepted by grid.Parse
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Grid:      GridConfig{Width: DefaultWidth, Height: DefaultHeight},
		StepDelay: DefaultStepDelay,
		Audio:     AudioConfig{Enabled: true, Volume: 0.5},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   DefaultLogFile,
		},
		Maze: MazeConfig{Braiding: 0.2},
	}
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Grid.Width < 1 || c.Grid.Width > MaxDimension {
		bad("grid width %d outside 1..%d", c.Grid.Width, MaxDimension)
	}
	if c.Grid.Height < 1 || c.Grid.Height > MaxDimension {
		bad("grid height %d outside 1..%d", c.Grid.Height, MaxDimension)
	}
	if c.StepDelay < 0 {
		bad("negative step delay %v", c.StepDelay)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		bad("audio volume %v outside 0..1", c.Audio.Volume)
	}
	if c.Maze.Braiding < 0 || c.Maze.Braiding > 1 {
		bad("maze braiding %v outside 0..1", c.Maze.Braiding)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		bad("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		bad("unknown log format %q", c.Log.Format)
	}
	if c.Log.Enabled && c.Log.File == "" {
		bad("logging enabled without a file")
	}

	if p := c.Preset; p != nil && p.Layout != "" && (p.Start != nil || p.Goal != nil || len(p.Walls) > 0) {
		bad("preset sets both layout and coordinates")
	}
	return errors.Join(errs...)
}

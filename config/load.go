package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "GRIDPATH_"

// Options controls where Load looks
type Options struct {
	// File is the HCL config path. Empty falls back to GRIDPATH_CONFIG, then
	// to no file.
	File string
	// EnvFile is a dotenv file; empty means ".env". A missing file is not an
	// error.
	EnvFile string
	// LookupEnv reads the process environment; nil uses os.LookupEnv
	LookupEnv func(string) (string, bool)
	// Override runs after every other layer and before validation
	Override func(*Config)
}

// Load builds the configuration: defaults, HCL file, then environment
// variables. Process environment wins over the dotenv file.
func Load(opts Options) (*Config, error) {
	env, err := newEnv(opts)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	file := opts.File
	if file == "" {
		file = env.str("CONFIG", "")
	}
	var preset *hclPreset
	if file != "" {
		if preset, err = parseFile(file, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.apply(cfg); err != nil {
		return nil, err
	}
	if opts.Override != nil {
		opts.Override(cfg)
	}

	if preset != nil {
		if cfg.Preset, err = preset.resolve(cfg.Grid); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env layers the process environment over a dotenv file
type env struct {
	lookup func(string) (string, bool)
	dotenv map[string]string
}

func newEnv(opts Options) (*env, error) {
	e := &env{lookup: opts.LookupEnv, dotenv: map[string]string{}}
	if e.lookup == nil {
		e.lookup = os.LookupEnv
	}

	path := opts.EnvFile
	if path == "" {
		path = ".env"
	}
	m, err := godotenv.Read(path)
	switch {
	case err == nil:
		e.dotenv = m
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, path, err)
	}
	return e, nil
}

func (e *env) get(key string) (string, bool) {
	key = EnvPrefix + key
	if v, ok := e.lookup(key); ok {
		return v, true
	}
	v, ok := e.dotenv[key]
	return v, ok
}

func (e *env) str(key, def string) string {
	if v, ok := e.get(key); ok {
		return v
	}
	return def
}

// apply overlays every GRIDPATH_* variable present
func (e *env) apply(cfg *Config) error {
	var errs []error
	parse := func(key string, fn func(string) error) {
		v, ok := e.get(key)
		if !ok {
			return
		}
		if err := fn(v); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s%s=%q: %w", ErrInvalidConfig, EnvPrefix, key, v, err))
		}
	}

	parse("WIDTH", intVar(&cfg.Grid.Width))
	parse("HEIGHT", intVar(&cfg.Grid.Height))
	parse("STEP_DELAY", func(v string) (err error) {
		cfg.StepDelay, err = time.ParseDuration(v)
		return err
	})
	parse("AUDIO", boolVar(&cfg.Audio.Enabled))
	parse("VOLUME", floatVar(&cfg.Audio.Volume))
	parse("LOG", boolVar(&cfg.Log.Enabled))
	parse("LOG_LEVEL", strVar(&cfg.Log.Level))
	parse("LOG_FORMAT", strVar(&cfg.Log.Format))
	parse("LOG_FILE", strVar(&cfg.Log.File))
	parse("MAZE_BRAIDING", floatVar(&cfg.Maze.Braiding))
	parse("MAZE_OPEN_BORDER", boolVar(&cfg.Maze.OpenBorder))
	parse("MAZE_SEED", func(v string) (err error) {
		cfg.Maze.Seed, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	return errors.Join(errs...)
}

func intVar(dst *int) func(string) error {
	return func(v string) (err error) {
		*dst, err = strconv.Atoi(v)
		return err
	}
}

func floatVar(dst *float64) func(string) error {
	return func(v string) (err error) {
		*dst, err = strconv.ParseFloat(v, 64)
		return err
	}
}

func boolVar(dst *bool) func(string) error {
	return func(v string) (err error) {
		*dst, err = strconv.ParseBool(v)
		return err
	}
}

func strVar(dst *string) func(string) error {
	return func(v string) error {
		*dst = v
		return nil
	}
}

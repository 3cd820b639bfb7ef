package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/zimka1/grid-path-visualizer/grid"
)

// hclFile is the top-level structure of a config file
type hclFile struct {
	StepDelay *string    `hcl:"step_delay,optional"`
	Grid      *hclGrid   `hcl:"grid,block"`
	Audio     *hclAudio  `hcl:"audio,block"`
	Log       *hclLog    `hcl:"log,block"`
	Maze      *hclMaze   `hcl:"maze,block"`
	Preset    *hclPreset `hcl:"preset,block"`
}

type hclGrid struct {
	Width  *int `hcl:"width,optional"`
	Height *int `hcl:"height,optional"`
}

type hclAudio struct {
	Enabled *bool    `hcl:"enabled,optional"`
	Volume  *float64 `hcl:"volume,optional"`
}

type hclLog struct {
	Enabled *bool   `hcl:"enabled,optional"`
	Level   *string `hcl:"level,optional"`
	Format  *string `hcl:"format,optional"`
	File    *string `hcl:"file,optional"`
}

type hclMaze struct {
	Braiding   *float64 `hcl:"braiding,optional"`
	OpenBorder *bool    `hcl:"open_border,optional"`
	Seed       *int64   `hcl:"seed,optional"`
}

// Preset coordinates stay unevaluated until the grid size is final, so they
// can refer to grid.width and grid.height
type hclPreset struct {
	Start  hcl.Expression `hcl:"start,optional"`
	Goal   hcl.Expression `hcl:"goal,optional"`
	Walls  hcl.Expression `hcl:"walls,optional"`
	Layout *string        `hcl:"layout,optional"`
}

// parseFile decodes path and applies its values over cfg. The preset block,
// if any, is returned for later evaluation.
func parseFile(path string, cfg *Config) (*hclPreset, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalidConfig, path, diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrInvalidConfig, path, diags)
	}

	if parsed.StepDelay != nil {
		d, err := time.ParseDuration(*parsed.StepDelay)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: step_delay: %w", ErrInvalidConfig, path, err)
		}
		cfg.StepDelay = d
	}
	if g := parsed.Grid; g != nil {
		set(&cfg.Grid.Width, g.Width)
		set(&cfg.Grid.Height, g.Height)
	}
	if a := parsed.Audio; a != nil {
		set(&cfg.Audio.Enabled, a.Enabled)
		set(&cfg.Audio.Volume, a.Volume)
	}
	if l := parsed.Log; l != nil {
		set(&cfg.Log.Enabled, l.Enabled)
		set(&cfg.Log.Level, l.Level)
		set(&cfg.Log.Format, l.Format)
		set(&cfg.Log.File, l.File)
	}
	if m := parsed.Maze; m != nil {
		set(&cfg.Maze.Braiding, m.Braiding)
		set(&cfg.Maze.OpenBorder, m.OpenBorder)
		set(&cfg.Maze.Seed, m.Seed)
	}
	return parsed.Preset, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// evalContext exposes the final grid size to preset expressions
func evalContext(g GridConfig) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"grid": cty.ObjectVal(map[string]cty.Value{
				"width":  cty.NumberIntVal(int64(g.Width)),
				"height": cty.NumberIntVal(int64(g.Height)),
			}),
		},
	}
}

// resolve evaluates the preset block against the grid size
func (p *hclPreset) resolve(g GridConfig) (*Preset, error) {
	ctx := evalContext(g)
	out := &Preset{}

	var err error
	if out.Start, err = decodeCell(p.Start, ctx, "start"); err != nil {
		return nil, err
	}
	if out.Goal, err = decodeCell(p.Goal, ctx, "goal"); err != nil {
		return nil, err
	}
	if out.Walls, err = decodeCells(p.Walls, ctx); err != nil {
		return nil, err
	}
	if p.Layout != nil {
		out.Layout = *p.Layout
	}
	return out, nil
}

func isNull(expr hcl.Expression, ctx *hcl.EvalContext) bool {
	if expr == nil {
		return true
	}
	v, diags := expr.Value(ctx)
	return !diags.HasErrors() && v.IsNull()
}

func decodeCell(expr hcl.Expression, ctx *hcl.EvalContext, name string) (*grid.Pos, error) {
	if isNull(expr, ctx) {
		return nil, nil
	}
	var rc []int
	if diags := gohcl.DecodeExpression(expr, ctx, &rc); diags.HasErrors() {
		return nil, fmt.Errorf("%w: preset %s: %w", ErrInvalidConfig, name, diags)
	}
	if len(rc) != 2 {
		return nil, fmt.Errorf("%w: preset %s: want [row, col], got %d values", ErrInvalidConfig, name, len(rc))
	}
	return &grid.Pos{Row: rc[0], Col: rc[1]}, nil
}

func decodeCells(expr hcl.Expression, ctx *hcl.EvalContext) ([]grid.Pos, error) {
	if isNull(expr, ctx) {
		return nil, nil
	}
	var rcs [][]int
	if diags := gohcl.DecodeExpression(expr, ctx, &rcs); diags.HasErrors() {
		return nil, fmt.Errorf("%w: preset walls: %w", ErrInvalidConfig, diags)
	}
	out := make([]grid.Pos, 0, len(rcs))
	for i, rc := range rcs {
		if len(rc) != 2 {
			return nil, fmt.Errorf("%w: preset walls[%d]: want [row, col], got %d values", ErrInvalidConfig, i, len(rc))
		}
		out = append(out, grid.Pos{Row: rc[0], Col: rc[1]})
	}
	return out, nil
}

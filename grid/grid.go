// Package grid holds the fixed-size cell model and owns every role transition.
//
// A Grid has at most one Start and at most one Goal cell, and neither ever sits
// on a Wall. Placement goes through SetRole; search marks (Visited, Path) go
// through Mark and are wiped by ResetSearchMarks.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfBounds indicates a position outside the grid extents.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
	// ErrInvalidSize indicates non-positive grid dimensions.
	ErrInvalidSize = errors.New("grid: dimensions must be positive")
	// ErrInvalidRole indicates a role the operation cannot assign.
	ErrInvalidRole = errors.New("grid: role not assignable by this operation")
	// ErrBadLayout indicates a malformed ASCII layout.
	ErrBadLayout = errors.New("grid: malformed layout")
)

// Grid is a height x width array of cells stored row-major
type Grid struct {
	width, height int
	cells         []Role

	// Endpoint cache; kept equal to the single Start/Goal cell if present
	start, goal       Pos
	hasStart, hasGoal bool
}

// New creates an all-Empty grid
func New(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, height, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Role, width*height),
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p addresses a cell
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.width + p.Col
}

func (g *Grid) check(p Pos) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, g.height, g.width)
	}
	return nil
}

// Role returns the role at p
func (g *Grid) Role(p Pos) (Role, error) {
	if err := g.check(p); err != nil {
		return Empty, err
	}
	return g.cells[g.index(p)], nil
}

// Start returns the Start cell if one is placed
func (g *Grid) Start() (Pos, bool) { return g.start, g.hasStart }

// Goal returns the Goal cell if one is placed
func (g *Grid) Goal() (Pos, bool) { return g.goal, g.hasGoal }

// SetRole applies a placement at p.
//
// Wall toggles Empty<->Wall and leaves every other role alone. Start and Goal
// never overwrite a Wall; otherwise the previous holder of the role is cleared
// first, so a grid never has two of either. Placing an endpoint on the other
// endpoint replaces it.
func (g *Grid) SetRole(p Pos, r Role) error {
	if err := g.check(p); err != nil {
		return err
	}
	i := g.index(p)
	cur := g.cells[i]

	switch r {
	case Wall:
		switch cur {
		case Wall:
			g.cells[i] = Empty
		case Empty:
			g.cells[i] = Wall
		}
		return nil

	case Start, Goal:
		if cur == Wall {
			return nil
		}
		g.clearEndpoint(r)
		if cur == Start || cur == Goal {
			g.clearEndpoint(cur)
		}
		g.cells[i] = r
		g.setEndpoint(r, p)
		return nil
	}

	return fmt.Errorf("%w: SetRole(%v, %v)", ErrInvalidRole, p, r)
}

// Mark writes a search mark. Start, Goal and Wall cells keep their role.
func (g *Grid) Mark(p Pos, r Role) error {
	if !r.IsSearchMark() {
		return fmt.Errorf("%w: Mark(%v, %v)", ErrInvalidRole, p, r)
	}
	if err := g.check(p); err != nil {
		return err
	}
	i := g.index(p)
	switch g.cells[i] {
	case Start, Goal, Wall:
		return nil
	}
	g.cells[i] = r
	return nil
}

// ResetSearchMarks turns every Visited and Path cell back to Empty
func (g *Grid) ResetSearchMarks() {
	for i, r := range g.cells {
		if r.IsSearchMark() {
			g.cells[i] = Empty
		}
	}
}

// ClearWalls turns every Wall cell back to Empty
func (g *Grid) ClearWalls() {
	for i, r := range g.cells {
		if r == Wall {
			g.cells[i] = Empty
		}
	}
}

// Neighbors4 returns in-bounds, non-wall neighbors in east, west, south, north order
func (g *Grid) Neighbors4(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	for _, d := range neighborOffsets {
		n := p.Add(d)
		if g.InBounds(n) && g.cells[g.index(n)] != Wall {
			out = append(out, n)
		}
	}
	return out
}

// Count returns the number of cells holding r
func (g *Grid) Count(r Role) int {
	n := 0
	for _, c := range g.cells {
		if c == r {
			n++
		}
	}
	return n
}

func (g *Grid) clearEndpoint(r Role) {
	switch r {
	case Start:
		if g.hasStart {
			g.cells[g.index(g.start)] = Empty
			g.hasStart = false
		}
	case Goal:
		if g.hasGoal {
			g.cells[g.index(g.goal)] = Empty
			g.hasGoal = false
		}
	}
}

func (g *Grid) setEndpoint(r Role, p Pos) {
	if r == Start {
		g.start, g.hasStart = p, true
	} else {
		g.goal, g.hasGoal = p, true
	}
}

// String renders the grid as one glyph per cell, one line per row
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			sb.WriteByte(g.cells[row*g.width+col].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse builds a grid from an ASCII layout. Blank lines and surrounding
// whitespace are ignored; every remaining line must have the same length.
func Parse(layout string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}

	g, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for row, line := range rows {
		if len(line) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadLayout, row, len(line), g.width)
		}
		for col := 0; col < len(line); col++ {
			r, ok := roleFromGlyph(line[col])
			if !ok {
				return nil, fmt.Errorf("%w: unknown glyph %q at %v", ErrBadLayout, line[col], Pos{row, col})
			}
			p := Pos{row, col}
			if (r == Start && g.hasStart) || (r == Goal && g.hasGoal) {
				return nil, fmt.Errorf("%w: second %v at %v", ErrBadLayout, r, p)
			}
			g.cells[g.index(p)] = r
			if r == Start || r == Goal {
				g.setEndpoint(r, p)
			}
		}
	}
	return g, nil
}

// Package maze fills a grid with a recursive-backtracker maze and solves grids by BFS.
package maze

import (
	"math/rand"
	"time"

	"github.com/zimka1/grid-path-visualizer/grid"
)

// Config controls generation
type Config struct {
	Height, Width int

	// Braiding: 0.0 (perfect maze, a tree) to 1.0 (no dead ends).
	// Higher values add cycles. Plaza/pillar constraints take precedence.
	Braiding float64

	// OpenBorder clears the outer ring so the maze can be entered from any edge
	OpenBorder bool

	// Keep lists cells that must end up open and connected, typically Start and Goal
	Keep []grid.Pos

	Seed int64 // 0 = time based
}

// Layout is a generated wall mask, Walls[row][col]
type Layout struct {
	Walls [][]bool
}

// Wall reports whether p is a wall in the layout
func (l Layout) Wall(p grid.Pos) bool {
	if p.Row < 0 || p.Row >= len(l.Walls) || p.Col < 0 || p.Col >= len(l.Walls[p.Row]) {
		return true
	}
	return l.Walls[p.Row][p.Col]
}

// Generate builds a maze exactly Height x Width.
// Carving runs on the largest odd sub-grid; a trailing even row/column stays wall.
func Generate(cfg Config) Layout {
	walls := make([][]bool, max(cfg.Height, 1))
	for i := range walls {
		walls[i] = make([]bool, max(cfg.Width, 1))
		for j := range walls[i] {
			walls[i][j] = true
		}
	}

	rows, cols := len(walls), len(walls[0])
	if rows < 3 || cols < 3 {
		for _, p := range cfg.Keep {
			openCell(walls, p)
		}
		return Layout{Walls: walls}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	carveRows, carveCols := oddFloor(rows), oddFloor(cols)
	carve(walls, carveRows, carveCols, grid.Pos{Row: 1, Col: 1}, rng)

	if cfg.OpenBorder {
		stripBorder(walls, carveRows, carveCols)
	}
	if cfg.Braiding > 0 {
		braid(walls, carveRows, carveCols, cfg.Braiding, rng)
	}
	for _, p := range cfg.Keep {
		forceOpen(walls, p)
	}

	return Layout{Walls: walls}
}

// carve runs the recursive backtracker over odd cells, producing a uniform spanning tree
func carve(walls [][]bool, rows, cols int, start grid.Pos, rng *rand.Rand) {
	stack := []grid.Pos{start}
	walls[start.Row][start.Col] = false

	jumps := []grid.Pos{{Row: -2}, {Row: 2}, {Col: -2}, {Col: 2}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates := make([]grid.Pos, 0, 4)

		for _, d := range jumps {
			n := cur.Add(d)
			// Leave a one-cell border of walls
			if n.Row > 0 && n.Row < rows-1 && n.Col > 0 && n.Col < cols-1 && walls[n.Row][n.Col] {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		mid := grid.Pos{Row: cur.Row + d.Row/2, Col: cur.Col + d.Col/2}
		next := cur.Add(d)
		walls[mid.Row][mid.Col] = false
		walls[next.Row][next.Col] = false
		stack = append(stack, next)
	}
}

// braid knocks out one wall next to dead ends with the given probability
func braid(walls [][]bool, rows, cols int, probability float64, rng *rand.Rand) {
	steps := []grid.Pos{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

	for row := 1; row < rows-1; row += 2 {
		for col := 1; col < cols-1; col += 2 {
			if walls[row][col] {
				continue
			}

			exits := 0
			for _, d := range steps {
				if !walls[row+d.Row][col+d.Col] {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]grid.Pos, 0, 4)
			for _, d := range steps {
				far := grid.Pos{Row: row + 2*d.Row, Col: col + 2*d.Col}
				mid := grid.Pos{Row: row + d.Row, Col: col + d.Col}
				if far.Row < 0 || far.Row >= rows || far.Col < 0 || far.Col >= cols {
					continue
				}
				if !walls[far.Row][far.Col] && walls[mid.Row][mid.Col] && canRemove(walls, mid) {
					candidates = append(candidates, mid)
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				walls[c.Row][c.Col] = false
			}
		}
	}
}

// canRemove rejects removals that would open a 2x2 plaza or leave an isolated pillar
func canRemove(walls [][]bool, p grid.Pos) bool {
	open := func(row, col int) bool {
		if row < 0 || row >= len(walls) || col < 0 || col >= len(walls[0]) {
			return false
		}
		return !walls[row][col]
	}
	r, c := p.Row, p.Col

	if open(r-1, c-1) && open(r-1, c) && open(r, c-1) ||
		open(r-1, c) && open(r-1, c+1) && open(r, c+1) ||
		open(r, c-1) && open(r+1, c-1) && open(r+1, c) ||
		open(r, c+1) && open(r+1, c) && open(r+1, c+1) {
		return false
	}

	steps := []grid.Pos{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	for _, d := range steps {
		n := p.Add(d)
		if n.Row < 0 || n.Row >= len(walls) || n.Col < 0 || n.Col >= len(walls[0]) || !walls[n.Row][n.Col] {
			continue
		}
		links := 0
		for _, d2 := range steps {
			nn := n.Add(d2)
			if nn == p {
				continue
			}
			if nn.Row >= 0 && nn.Row < len(walls) && nn.Col >= 0 && nn.Col < len(walls[0]) && walls[nn.Row][nn.Col] {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

// stripBorder opens the carve region's outer ring and any padding beyond it
func stripBorder(walls [][]bool, carveRows, carveCols int) {
	for row := range walls {
		for col := range walls[row] {
			if row == 0 || col == 0 || row >= carveRows-1 || col >= carveCols-1 {
				walls[row][col] = false
			}
		}
	}
}

func openCell(walls [][]bool, p grid.Pos) bool {
	if p.Row < 0 || p.Row >= len(walls) || p.Col < 0 || p.Col >= len(walls[0]) {
		return false
	}
	walls[p.Row][p.Col] = false
	return true
}

// forceOpen clears p and, if that leaves it sealed, digs an L-shaped
// corridor to the nearest passage so p joins the carved component
func forceOpen(walls [][]bool, p grid.Pos) {
	if !openCell(walls, p) {
		return
	}
	rows, cols := len(walls), len(walls[0])

	steps := []grid.Pos{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	for _, d := range steps {
		n := p.Add(d)
		if n.Row >= 0 && n.Row < rows && n.Col >= 0 && n.Col < cols && !walls[n.Row][n.Col] {
			return
		}
	}

	best, found := p, false
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			q := grid.Pos{Row: row, Col: col}
			if q == p || walls[row][col] {
				continue
			}
			if !found || p.Manhattan(q) < p.Manhattan(best) {
				best, found = q, true
			}
		}
	}
	if !found {
		return
	}

	cur := p
	for cur.Row != best.Row {
		cur.Row += sign(best.Row - cur.Row)
		walls[cur.Row][cur.Col] = false
	}
	for cur.Col != best.Col {
		cur.Col += sign(best.Col - cur.Col)
		walls[cur.Row][cur.Col] = false
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func oddFloor(n int) int {
	if n%2 == 0 {
		return n - 1
	}
	return n
}

package render

import "github.com/zimka1/grid-path-visualizer/grid"

// CellWidth is the number of screen columns per grid cell; two columns keep
// cells roughly square in most terminal fonts
const CellWidth = 2

// Layout maps grid cells to screen cells and back
type Layout struct {
	OriginX, OriginY int
	Rows, Cols       int
}

// NewLayout places a rows x cols grid at the top-left corner
func NewLayout(rows, cols int) Layout {
	return Layout{Rows: rows, Cols: cols}
}

// CellAt returns the grid cell under screen position (x, y)
func (l Layout) CellAt(x, y int) (grid.Pos, bool) {
	dx, dy := x-l.OriginX, y-l.OriginY
	if dx < 0 || dy < 0 {
		return grid.Pos{}, false
	}
	p := grid.Pos{Row: dy, Col: dx / CellWidth}
	if p.Row >= l.Rows || p.Col >= l.Cols {
		return grid.Pos{}, false
	}
	return p, true
}

// ScreenOf returns the left screen column and row of p
func (l Layout) ScreenOf(p grid.Pos) (x, y int) {
	return l.OriginX + p.Col*CellWidth, l.OriginY + p.Row
}

// StatusRow is the first screen row below the grid
func (l Layout) StatusRow() int {
	return l.OriginY + l.Rows
}

// Width is the grid's extent in screen columns
func (l Layout) Width() int {
	return l.Cols * CellWidth
}

package grid

// Snapshot is a detached copy of the grid for render ports and assertions
type Snapshot struct {
	Width, Height int
	Cells         []Role // Row-major
}

// Snapshot copies the current cell roles
func (g *Grid) Snapshot() Snapshot {
	cells := make([]Role, len(g.cells))
	copy(cells, g.cells)
	return Snapshot{Width: g.width, Height: g.height, Cells: cells}
}

// At returns the role at p, Empty when p is outside the snapshot
func (s Snapshot) At(p Pos) Role {
	if p.Row < 0 || p.Row >= s.Height || p.Col < 0 || p.Col >= s.Width {
		return Empty
	}
	return s.Cells[p.Row*s.Width+p.Col]
}

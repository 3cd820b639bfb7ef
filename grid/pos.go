package grid

import "fmt"

// Pos addresses a cell by row and column
type Pos struct {
	Row, Col int
}

// Offsets for Neighbors4: east, west, south, north
// The order is fixed so equal-priority expansion stays reproducible
var neighborOffsets = [4]Pos{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p shifted by d
func (p Pos) Add(d Pos) Pos {
	return Pos{p.Row + d.Row, p.Col + d.Col}
}

// Manhattan returns |dRow| + |dCol|
func (p Pos) Manhattan(q Pos) int {
	return abs(p.Row-q.Row) + abs(p.Col-q.Col)
}

// Adjacent reports 4-directional adjacency
func (p Pos) Adjacent(q Pos) bool {
	return p.Manhattan(q) == 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

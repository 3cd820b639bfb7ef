package maze

import "github.com/zimka1/grid-path-visualizer/grid"

// Apply replaces the grid's walls with the layout. Start and Goal cells stay
// as they are because wall placement never overwrites an endpoint.
func Apply(g *grid.Grid, l Layout) error {
	g.ClearWalls()
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			p := grid.Pos{Row: row, Col: col}
			if !l.Wall(p) {
				continue
			}
			r, err := g.Role(p)
			if err != nil {
				return err
			}
			if r != grid.Empty {
				continue
			}
			if err := g.SetRole(p, grid.Wall); err != nil {
				return err
			}
		}
	}
	return nil
}

// ShortestPath returns a shortest 4-directional route from -> to, both
// inclusive, or nil if to is unreachable. Plain BFS, used as a reference
// answer for the informed search.
func ShortestPath(g *grid.Grid, from, to grid.Pos) []grid.Pos {
	if !g.InBounds(from) || !g.InBounds(to) {
		return nil
	}
	if r, _ := g.Role(from); r == grid.Wall {
		return nil
	}
	if r, _ := g.Role(to); r == grid.Wall {
		return nil
	}

	queue := []grid.Pos{from}
	cameFrom := map[grid.Pos]grid.Pos{}
	seen := map[grid.Pos]bool{from: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == to {
			var path []grid.Pos
			for cur != from {
				path = append(path, cur)
				cur = cameFrom[cur]
			}
			path = append(path, from)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, n := range g.Neighbors4(cur) {
			if !seen[n] {
				seen[n] = true
				cameFrom[n] = cur
				queue = append(queue, n)
			}
		}
	}
	return nil
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zimka1/grid-path-visualizer/grid"
	"github.com/zimka1/grid-path-visualizer/maze"
	"github.com/zimka1/grid-path-visualizer/search"
)

// Generates mazes on the terminal and solves them with the A* engine, for
// tuning braiding before using it in the visualizer
func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== GRIDPATH MAZE PREVIEW ===")

		w := getInt(reader, "Width (default 21): ", 21)
		h := getInt(reader, "Height (default 11): ", 11)
		braid := getFloat(reader, "Braiding [0.0 - 1.0] (default 0.2): ", 0.2)
		seed := int64(getInt(reader, "Seed, 0 for random (default 0): ", 0))

		fmt.Print("Open border? [y/N]: ")
		openStr, _ := reader.ReadString('\n')
		open := strings.ToLower(strings.TrimSpace(openStr)) == "y"

		if err := preview(w, h, braid, seed, open); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

func preview(w, h int, braid float64, seed int64, open bool) error {
	g, err := grid.New(h, w)
	if err != nil {
		return err
	}
	start, goal := grid.Pos{}, grid.Pos{Row: h - 1, Col: w - 1}
	if err := g.SetRole(start, grid.Start); err != nil {
		return err
	}
	if err := g.SetRole(goal, grid.Goal); err != nil {
		return err
	}

	t0 := time.Now()
	layout := maze.Generate(maze.Config{
		Height:     h,
		Width:      w,
		Braiding:   braid,
		OpenBorder: open,
		Keep:       []grid.Pos{start, goal},
		Seed:       seed,
	})
	if err := maze.Apply(g, layout); err != nil {
		return err
	}
	genDur := time.Since(t0)

	e, err := search.New(g, start, goal)
	if err != nil {
		return err
	}
	t0 = time.Now()
	final := e.Run(nil)
	stats := e.Stats()

	fmt.Printf("Generated in %v, searched in %v\n", genDur, time.Since(t0))
	fmt.Printf("Walls: %d  Visited: %d  Pops: %d  Pushes: %d\n",
		g.Count(grid.Wall), g.Count(grid.Visited), stats.Pops, stats.Pushes)
	if final.Kind == search.Found {
		fmt.Printf("Path length: %d\n", stats.PathLength)
	} else {
		fmt.Println("Status: no path")
	}

	draw(g)
	return nil
}

func draw(g *grid.Grid) {
	snap := g.Snapshot()
	var b strings.Builder
	for row := 0; row < snap.Height; row++ {
		for col := 0; col < snap.Width; col++ {
			switch snap.At(grid.Pos{Row: row, Col: col}) {
			case grid.Start:
				b.WriteString("S")
			case grid.Goal:
				b.WriteString("G")
			case grid.Wall:
				b.WriteString("█")
			case grid.Path:
				b.WriteString("•")
			case grid.Visited:
				b.WriteString("·")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return min(max(v, 0), 1)
}

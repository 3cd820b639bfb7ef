// Package search runs an incremental A* over a grid.Grid.
//
// The engine advances one observable action per Step: a frontier pop while
// searching, then one Path cell per call while walking the predecessor chain
// from the goal back to the start. Hosts either poll Step until a terminal
// result or hand a hook to Run.
//
// Edges cost 1 and the heuristic is Manhattan distance, which is consistent on
// a 4-connected grid, so the first pop of the goal carries an optimal cost.
// The open set has no decrease-key: improved positions are pushed again and
// stale entries are expanded as if current. Equal priorities pop in push order.
package search

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/zimka1/grid-path-visualizer/grid"
)

// ErrInvalidEndpoint indicates a start or goal outside the grid or on a wall.
var ErrInvalidEndpoint = errors.New("search: invalid endpoint")

// Kind identifies a step result
type Kind uint8

const (
	// Continue: one frontier pop; Pos is the popped cell
	Continue Kind = iota
	// PathStep: one cell marked Path; Pos is that cell
	PathStep
	// Found: terminal, reconstruction complete
	Found
	// NotFound: terminal, open set exhausted
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Continue:
		return "continue"
	case PathStep:
		return "path"
	case Found:
		return "found"
	case NotFound:
		return "not-found"
	}
	return "unknown"
}

// StepResult reports what one Step did
type StepResult struct {
	Kind Kind
	Pos  grid.Pos
}

// Terminal reports whether the result ends the run
func (r StepResult) Terminal() bool {
	return r.Kind == Found || r.Kind == NotFound
}

// Stats summarizes a run so far
type Stats struct {
	Pops       int
	Pushes     int
	PathCells  int // Cells marked Path
	PathLength int // Edges start..goal, equals gScore[goal]; valid after Found
}

type phase uint8

const (
	phaseSearch phase = iota
	phaseTrace
	phaseDone
)

const unreached = math.MaxInt

// Manhattan is the search heuristic
func Manhattan(p, q grid.Pos) int {
	return p.Manhattan(q)
}

// Engine owns the state of a single run. It is not safe for concurrent use.
type Engine struct {
	g           *grid.Grid
	start, goal grid.Pos

	open     openSet
	gScore   []int
	cameFrom []int // Flat index of predecessor, -1 if none
	seq      uint64

	phase  phase
	trace  grid.Pos // Last cell reached while walking back from goal
	result StepResult
	stats  Stats
}

// New prepares a run from start to goal over g.
// The grid must not be edited by anyone else until the run ends or is dropped.
func New(g *grid.Grid, start, goal grid.Pos) (*Engine, error) {
	for _, p := range []grid.Pos{start, goal} {
		r, err := g.Role(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
		}
		if r == grid.Wall {
			return nil, fmt.Errorf("%w: %v is a wall", ErrInvalidEndpoint, p)
		}
	}

	size := g.Width() * g.Height()
	e := &Engine{
		g:        g,
		start:    start,
		goal:     goal,
		open:     make(openSet, 0, size),
		gScore:   make([]int, size),
		cameFrom: make([]int, size),
	}
	for i := range e.gScore {
		e.gScore[i] = unreached
		e.cameFrom[i] = -1
	}

	if start == goal {
		// Zero-length path: no pops, no marks
		e.finish(StepResult{Kind: Found, Pos: goal})
		return e, nil
	}

	e.gScore[e.index(start)] = 0
	e.push(start, Manhattan(start, goal))
	return e, nil
}

func (e *Engine) index(p grid.Pos) int {
	return p.Row*e.g.Width() + p.Col
}

func (e *Engine) pos(i int) grid.Pos {
	return grid.Pos{Row: i / e.g.Width(), Col: i % e.g.Width()}
}

func (e *Engine) push(p grid.Pos, priority int) {
	heap.Push(&e.open, entry{pos: p, priority: priority, seq: e.seq})
	e.seq++
	e.stats.Pushes++
}

func (e *Engine) finish(r StepResult) StepResult {
	e.phase = phaseDone
	e.result = r
	return r
}

// Step performs exactly one observable action. After a terminal result every
// further call returns that same result without touching the grid.
func (e *Engine) Step() StepResult {
	switch e.phase {
	case phaseSearch:
		return e.expand()
	case phaseTrace:
		return e.traceBack()
	}
	return e.result
}

// expand pops one frontier entry. Popping the goal is not reported on its
// own; it hands over to the trace phase within the same call.
func (e *Engine) expand() StepResult {
	if e.open.Len() == 0 {
		return e.finish(StepResult{Kind: NotFound, Pos: e.goal})
	}

	cur := heap.Pop(&e.open).(entry).pos
	e.stats.Pops++

	if cur == e.goal {
		e.stats.PathLength = e.gScore[e.index(e.goal)]
		e.phase = phaseTrace
		e.trace = e.goal
		return e.traceBack()
	}

	if err := e.g.Mark(cur, grid.Visited); err != nil {
		panic(fmt.Sprintf("search: marking popped cell: %v", err))
	}

	base := e.gScore[e.index(cur)]
	for _, n := range e.g.Neighbors4(cur) {
		ni := e.index(n)
		tentative := base + 1
		if tentative < e.gScore[ni] {
			e.gScore[ni] = tentative
			e.cameFrom[ni] = e.index(cur)
			e.push(n, tentative+Manhattan(n, e.goal))
		}
	}

	return StepResult{Kind: Continue, Pos: cur}
}

// traceBack moves one predecessor closer to start, marking it Path
func (e *Engine) traceBack() StepResult {
	prev := e.cameFrom[e.index(e.trace)]
	if prev < 0 {
		panic(fmt.Sprintf("search: broken predecessor chain at %v", e.trace))
	}
	p := e.pos(prev)
	if p == e.start {
		return e.finish(StepResult{Kind: Found, Pos: e.goal})
	}

	if err := e.g.Mark(p, grid.Path); err != nil {
		panic(fmt.Sprintf("search: marking path cell: %v", err))
	}
	e.trace = p
	e.stats.PathCells++
	return StepResult{Kind: PathStep, Pos: p}
}

// Run steps to completion, calling hook synchronously after every step in the
// order Step would have produced them. It returns the terminal result.
func (e *Engine) Run(hook func(StepResult)) StepResult {
	for {
		r := e.Step()
		if hook != nil {
			hook(r)
		}
		if r.Terminal() {
			return r
		}
	}
}

// Done reports whether a terminal result has been produced
func (e *Engine) Done() bool { return e.phase == phaseDone }

// Found reports whether the run ended with a path
func (e *Engine) Found() bool { return e.phase == phaseDone && e.result.Kind == Found }

// Stats returns counters for the run so far
func (e *Engine) Stats() Stats { return e.stats }

// GScore returns the best known cost from start to p
func (e *Engine) GScore(p grid.Pos) (int, bool) {
	if !e.g.InBounds(p) {
		return 0, false
	}
	if p == e.start {
		return 0, true
	}
	v := e.gScore[e.index(p)]
	return v, v != unreached
}

// Route returns the path start..goal, both inclusive, once Found.
// Nil before completion or when no path exists.
func (e *Engine) Route() []grid.Pos {
	if !e.Found() {
		return nil
	}
	if e.start == e.goal {
		return []grid.Pos{e.start}
	}
	route := []grid.Pos{e.goal}
	for i := e.cameFrom[e.index(e.goal)]; i >= 0; i = e.cameFrom[i] {
		route = append(route, e.pos(i))
		if e.pos(i) == e.start {
			break
		}
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// Package session is the interaction state machine gating edits and search runs.
//
// A Session moves Editing -> Running -> Done and back to Editing on reset. It
// owns the grid for its whole lifetime and is driven from a single goroutine:
// Handle for discrete input, Advance once per observable search step.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zimka1/grid-path-visualizer/grid"
	"github.com/zimka1/grid-path-visualizer/maze"
	"github.com/zimka1/grid-path-visualizer/search"
)

// Session holds the grid plus everything the user has set up around it
type Session struct {
	id     uuid.UUID
	grid   *grid.Grid
	logger *slog.Logger
	notify Notifier

	phase     Phase
	placement Placement

	pointer    grid.Pos
	hasPointer bool

	// Mirrors of the grid's endpoints as placed during this edit cycle
	start, goal       grid.Pos
	hasStart, hasGoal bool

	engine *search.Engine
	last   search.StepResult
	steps  int

	maze      MazeOptions
	mazeCount int64
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the structured logger; a session_id attribute is added
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithNotifier sets the diagnostic sink
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notify = n }
}

// WithMaze sets maze generation parameters
func WithMaze(m MazeOptions) Option {
	return func(s *Session) { s.maze = m }
}

// New creates a session in Editing with Wall placement active
func New(g *grid.Grid, opts ...Option) *Session {
	s := &Session{
		id:        uuid.New(),
		grid:      g,
		phase:     Editing,
		placement: PlaceWall,
		maze:      MazeOptions{Braiding: 0.2},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("session_id", s.id.String())
	if s.notify == nil {
		s.notify = NotifierFunc(func(Diagnostic) {})
	}
	s.logger.Debug("session created", "height", g.Height(), "width", g.Width())
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Placement() Placement { return s.placement }

// Snapshot returns a read-only copy of the grid for rendering
func (s *Session) Snapshot() grid.Snapshot { return s.grid.Snapshot() }

// Pointer returns the last known pointer cell
func (s *Session) Pointer() (grid.Pos, bool) { return s.pointer, s.hasPointer }

// Start returns the mirrored start cell
func (s *Session) Start() (grid.Pos, bool) { return s.start, s.hasStart }

// Goal returns the mirrored goal cell
func (s *Session) Goal() (grid.Pos, bool) { return s.goal, s.hasGoal }

// Steps returns the number of Advance calls made in the current run
func (s *Session) Steps() int { return s.steps }

// LastResult returns the most recent engine step result
func (s *Session) LastResult() search.StepResult { return s.last }

// Stats returns engine counters for the current or finished run
func (s *Session) Stats() search.Stats {
	if s.engine == nil {
		return search.Stats{}
	}
	return s.engine.Stats()
}

// Handle applies one input event and reports what happened to it
func (s *Session) Handle(ev Event) Outcome {
	switch ev := ev.(type) {
	case PointerMove:
		if !s.grid.InBounds(ev.Cell) {
			return Ignored
		}
		s.pointer, s.hasPointer = ev.Cell, true
		return Accepted

	case MovePointer:
		s.movePointer(ev.DRow, ev.DCol)
		return Accepted

	case ClickPointer:
		if !s.hasPointer {
			return Ignored
		}
		return s.click(s.pointer)

	case PointerClick:
		return s.click(ev.Cell)

	case SetPlacementMode:
		if s.phase == Done {
			return Ignored
		}
		s.placement = ev.Kind
		return Accepted

	case RequestRun:
		return s.run()

	case RequestReset:
		return s.reset()

	case GenerateMaze:
		if s.phase != Editing {
			return Ignored
		}
		s.generateMaze()
		return Accepted
	}
	return Ignored
}

func (s *Session) movePointer(dRow, dCol int) {
	p := s.pointer
	if s.hasPointer {
		p = p.Add(grid.Pos{Row: dRow, Col: dCol})
	}
	p.Row = clamp(p.Row, 0, s.grid.Height()-1)
	p.Col = clamp(p.Col, 0, s.grid.Width()-1)
	s.pointer, s.hasPointer = p, true
}

func (s *Session) click(p grid.Pos) Outcome {
	switch s.phase {
	case Running:
		return Rejected
	case Done:
		return Ignored
	}
	if !s.grid.InBounds(p) {
		return Ignored
	}

	s.pointer, s.hasPointer = p, true
	s.mustSetRole(p, s.placement.Role())
	s.syncEndpoints(p)
	return Accepted
}

// mustSetRole treats a grid error as a broken contract: every position
// reaching here has been bounds-checked already
func (s *Session) mustSetRole(p grid.Pos, r grid.Role) {
	if err := s.grid.SetRole(p, r); err != nil {
		panic(fmt.Sprintf("session: %v", err))
	}
}

// syncEndpoints re-derives the mirrors after a placement at p
func (s *Session) syncEndpoints(p grid.Pos) {
	if s.hasStart {
		if r, _ := s.grid.Role(s.start); r != grid.Start {
			s.hasStart = false
		}
	}
	if s.hasGoal {
		if r, _ := s.grid.Role(s.goal); r != grid.Goal {
			s.hasGoal = false
		}
	}

	switch r, _ := s.grid.Role(p); r {
	case grid.Start:
		s.start, s.hasStart = p, true
	case grid.Goal:
		s.goal, s.hasGoal = p, true
	}
}

func (s *Session) run() Outcome {
	if s.phase != Editing {
		return Ignored
	}
	if !s.hasStart || !s.hasGoal {
		s.diagnose(ErrInvalidRunRequest, "Please set both start and goal positions before running.")
		return Rejected
	}

	e, err := search.New(s.grid, s.start, s.goal)
	if err != nil {
		panic(fmt.Sprintf("session: endpoints out of sync with grid: %v", err))
	}
	s.engine = e
	s.steps = 0
	s.last = search.StepResult{}
	s.phase = Running
	s.logger.Info("search started", "start", s.start.String(), "goal", s.goal.String())
	return Accepted
}

// Advance performs one engine step while Running. The bool is false when
// there was nothing to step.
func (s *Session) Advance() (search.StepResult, bool) {
	if s.phase != Running {
		return search.StepResult{}, false
	}
	r := s.engine.Step()
	s.steps++
	s.last = r
	if r.Terminal() {
		s.complete(r)
	}
	return r, true
}

// RunToCompletion steps the current run to its end, calling hook after every
// step. Returns false if no run is in progress.
func (s *Session) RunToCompletion(hook func(search.StepResult)) (search.StepResult, bool) {
	if s.phase != Running {
		return search.StepResult{}, false
	}
	for {
		r, _ := s.Advance()
		if hook != nil {
			hook(r)
		}
		if r.Terminal() {
			return r, true
		}
	}
}

func (s *Session) complete(r search.StepResult) {
	s.phase = Done
	stats := s.engine.Stats()
	if r.Kind == search.NotFound {
		s.logger.Info("search exhausted", "pops", stats.Pops, "steps", s.steps)
		s.diagnose(ErrNoPathFound, "No path found.")
		return
	}
	s.logger.Info("path found",
		"length", stats.PathLength,
		"pops", stats.Pops,
		"pushes", stats.Pushes,
		"steps", s.steps)
}

func (s *Session) reset() Outcome {
	if s.phase != Done {
		return Ignored
	}
	s.grid.ResetSearchMarks()
	s.hasStart, s.hasGoal = false, false
	s.engine = nil
	s.steps = 0
	s.last = search.StepResult{}
	s.phase = Editing
	s.logger.Debug("session reset")
	return Accepted
}

func (s *Session) generateMaze() {
	var keep []grid.Pos
	if p, ok := s.grid.Start(); ok {
		keep = append(keep, p)
	}
	if p, ok := s.grid.Goal(); ok {
		keep = append(keep, p)
	}

	seed := s.maze.Seed
	if seed != 0 {
		seed += s.mazeCount
	}
	s.mazeCount++

	layout := maze.Generate(maze.Config{
		Height:     s.grid.Height(),
		Width:      s.grid.Width(),
		Braiding:   s.maze.Braiding,
		OpenBorder: s.maze.OpenBorder,
		Keep:       keep,
		Seed:       seed,
	})
	if err := maze.Apply(s.grid, layout); err != nil {
		panic(fmt.Sprintf("session: applying maze: %v", err))
	}
	s.logger.Debug("maze generated", "walls", s.grid.Count(grid.Wall), "seed", seed)
}

// ApplyPreset places walls, start and goal as if clicked, then restores the
// active placement kind. Only valid while Editing.
func (s *Session) ApplyPreset(p Preset) error {
	if s.phase != Editing {
		return ErrNotEditing
	}

	var errs []error
	check := func(c grid.Pos) bool {
		if !s.grid.InBounds(c) {
			errs = append(errs, fmt.Errorf("preset cell %v: %w", c, grid.ErrOutOfBounds))
			return false
		}
		return true
	}

	saved, pointer, hasPointer := s.placement, s.pointer, s.hasPointer
	defer func() {
		s.placement = saved
		s.pointer, s.hasPointer = pointer, hasPointer
	}()

	s.placement = PlaceWall
	for _, w := range p.Walls {
		if check(w) {
			if r, _ := s.grid.Role(w); r == grid.Empty {
				s.click(w)
			}
		}
	}
	if p.Start != nil && check(*p.Start) {
		s.placement = PlaceStart
		s.click(*p.Start)
	}
	if p.Goal != nil && check(*p.Goal) {
		s.placement = PlaceGoal
		s.click(*p.Goal)
	}
	return errors.Join(errs...)
}

// AdoptEndpoints mirrors whatever Start/Goal the grid already holds, for grids
// built from a parsed layout
func (s *Session) AdoptEndpoints() {
	if s.phase != Editing {
		return
	}
	s.start, s.hasStart = s.grid.Start()
	s.goal, s.hasGoal = s.grid.Goal()
}

func (s *Session) diagnose(err error, msg string) {
	s.logger.Warn(msg, "error", err)
	s.notify.Notify(Diagnostic{Err: err, Message: msg})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package session

import (
	"errors"

	"github.com/zimka1/grid-path-visualizer/grid"
)

var (
	// ErrInvalidRunRequest is reported when a run is requested without both endpoints.
	ErrInvalidRunRequest = errors.New("session: start and goal must be set before running")
	// ErrNoPathFound is reported when a run exhausts the frontier.
	ErrNoPathFound = errors.New("session: no path found")
	// ErrNotEditing is returned by operations that only make sense while editing.
	ErrNotEditing = errors.New("session: not in editing phase")
)

// Phase of the interaction state machine
type Phase uint8

const (
	Editing Phase = iota
	Running
	Done
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "EDIT"
	case Running:
		return "RUN"
	case Done:
		return "DONE"
	}
	return "?"
}

// Placement is the kind a click places while editing
type Placement uint8

const (
	PlaceWall Placement = iota
	PlaceStart
	PlaceGoal
)

func (p Placement) String() string {
	switch p {
	case PlaceWall:
		return "wall"
	case PlaceStart:
		return "start"
	case PlaceGoal:
		return "goal"
	}
	return "?"
}

// Role maps the placement kind to the grid role it assigns
func (p Placement) Role() grid.Role {
	switch p {
	case PlaceStart:
		return grid.Start
	case PlaceGoal:
		return grid.Goal
	}
	return grid.Wall
}

// Outcome tells the caller what Handle did with an event
type Outcome uint8

const (
	// Accepted: the event changed session or grid state
	Accepted Outcome = iota
	// Ignored: the event does not apply in the current phase
	Ignored
	// Rejected: the event was refused and a diagnostic may have been raised
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Ignored:
		return "ignored"
	case Rejected:
		return "rejected"
	}
	return "?"
}

// Diagnostic is an advisory notice for the user
type Diagnostic struct {
	Err     error
	Message string
}

// Notifier receives diagnostics as they happen
type Notifier interface {
	Notify(Diagnostic)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Diagnostic)

func (f NotifierFunc) Notify(d Diagnostic) { f(d) }

// Preset is a startup layout applied through the normal placement rules
type Preset struct {
	Walls []grid.Pos
	Start *grid.Pos
	Goal  *grid.Pos
}

// MazeOptions parameterizes GenerateMaze
type MazeOptions struct {
	Braiding   float64
	OpenBorder bool
	Seed       int64 // 0 = time based; otherwise the n-th maze uses Seed+n
}

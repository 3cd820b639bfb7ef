// Package input translates tcell events into session events.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/zimka1/grid-path-visualizer/grid"
	"github.com/zimka1/grid-path-visualizer/session"
)

// Locator resolves screen coordinates to grid cells
type Locator interface {
	CellAt(x, y int) (grid.Pos, bool)
}

// Action is the translated form of one terminal event. At most one of the
// fields is set.
type Action struct {
	Event  session.Event
	Quit   bool
	Resize bool
}

// Mapper turns terminal events into actions. It tracks the left button so a
// held button yields one click, not one per motion report.
type Mapper struct {
	keys    *KeyTable
	locator Locator
	held    bool
}

// NewMapper creates a mapper; a nil table uses DefaultKeyTable
func NewMapper(keys *KeyTable, locator Locator) *Mapper {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Mapper{keys: keys, locator: locator}
}

// Translate maps ev to an action. The zero Action means nothing to do.
func (m *Mapper) Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.key(ev)
	case *tcell.EventMouse:
		return m.mouse(ev)
	case *tcell.EventResize:
		return Action{Resize: true}
	}
	return Action{}
}

func (m *Mapper) key(ev *tcell.EventKey) Action {
	e, ok := m.keys.Lookup(ev)
	if !ok {
		return Action{}
	}

	switch e.Intent {
	case IntentQuit:
		return Action{Quit: true}
	case IntentPlacement:
		return Action{Event: session.SetPlacementMode{Kind: e.Placement}}
	case IntentPlace:
		return Action{Event: session.ClickPointer{}}
	case IntentMotion:
		return Action{Event: session.MovePointer{DRow: e.DRow, DCol: e.DCol}}
	case IntentRun:
		return Action{Event: session.RequestRun{}}
	case IntentReset:
		return Action{Event: session.RequestReset{}}
	case IntentMaze:
		return Action{Event: session.GenerateMaze{}}
	}
	return Action{}
}

func (m *Mapper) mouse(ev *tcell.EventMouse) Action {
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasHeld := m.held
	m.held = pressed

	x, y := ev.Position()
	cell, ok := m.locator.CellAt(x, y)
	if !ok {
		return Action{}
	}
	if pressed && !wasHeld {
		return Action{Event: session.PointerClick{Cell: cell}}
	}
	return Action{Event: session.PointerMove{Cell: cell}}
}

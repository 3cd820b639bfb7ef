package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/zimka1/grid-path-visualizer/grid"
	"github.com/zimka1/grid-path-visualizer/render"
	"github.com/zimka1/grid-path-visualizer/session"
)

func newMapper() *Mapper {
	return NewMapper(nil, render.NewLayout(10, 10))
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// TestKeyBindings verifies every default key maps to its session event
func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"Wall", runeKey('w'), Action{Event: session.SetPlacementMode{Kind: session.PlaceWall}}},
		{"Start", runeKey('s'), Action{Event: session.SetPlacementMode{Kind: session.PlaceStart}}},
		{"Goal", runeKey('g'), Action{Event: session.SetPlacementMode{Kind: session.PlaceGoal}}},
		{"GoalUpper", runeKey('G'), Action{Event: session.SetPlacementMode{Kind: session.PlaceGoal}}},
		{"Run", runeKey(' '), Action{Event: session.RequestRun{}}},
		{"Reset", runeKey('r'), Action{Event: session.RequestReset{}}},
		{"Maze", runeKey('m'), Action{Event: session.GenerateMaze{}}},
		{"Left", runeKey('h'), Action{Event: session.MovePointer{DCol: -1}}},
		{"Down", runeKey('j'), Action{Event: session.MovePointer{DRow: 1}}},
		{"Up", runeKey('k'), Action{Event: session.MovePointer{DRow: -1}}},
		{"Right", runeKey('l'), Action{Event: session.MovePointer{DCol: 1}}},
		{"ArrowUp", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), Action{Event: session.MovePointer{DRow: -1}}},
		{"ArrowRight", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), Action{Event: session.MovePointer{DCol: 1}}},
		{"Enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Action{Event: session.ClickPointer{}}},
		{"Quit", runeKey('q'), Action{Quit: true}},
		{"Escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Action{Quit: true}},
		{"CtrlC", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Action{Quit: true}},
		{"Unbound", runeKey('x'), Action{}},
		{"UnboundSpecial", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), Action{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newMapper().Translate(tt.ev))
		})
	}
}

// TestMouseClickOncePerPress verifies a held button clicks once then tracks
func TestMouseClickOncePerPress(t *testing.T) {
	m := newMapper()

	press := m.Translate(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))
	assert.Equal(t, Action{Event: session.PointerClick{Cell: grid.Pos{Row: 3, Col: 2}}}, press)

	drag := m.Translate(tcell.NewEventMouse(7, 3, tcell.Button1, tcell.ModNone))
	assert.Equal(t, Action{Event: session.PointerMove{Cell: grid.Pos{Row: 3, Col: 3}}}, drag)

	release := m.Translate(tcell.NewEventMouse(7, 3, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, Action{Event: session.PointerMove{Cell: grid.Pos{Row: 3, Col: 3}}}, release)

	again := m.Translate(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, Action{Event: session.PointerClick{Cell: grid.Pos{}}}, again)
}

func TestMouseOutsideGrid(t *testing.T) {
	m := newMapper()
	assert.Equal(t, Action{}, m.Translate(tcell.NewEventMouse(20, 0, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, Action{}, m.Translate(tcell.NewEventMouse(0, 10, tcell.ButtonNone, tcell.ModNone)))

	// A press that started outside does not click once dragged inside
	m.Translate(tcell.NewEventMouse(25, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, Action{Event: session.PointerMove{Cell: grid.Pos{Row: 0, Col: 0}}},
		m.Translate(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone)))
}

func TestRightButtonDoesNotPlace(t *testing.T) {
	m := newMapper()
	got := m.Translate(tcell.NewEventMouse(2, 2, tcell.Button2, tcell.ModNone))
	assert.Equal(t, Action{Event: session.PointerMove{Cell: grid.Pos{Row: 2, Col: 1}}}, got)
}

func TestResize(t *testing.T) {
	assert.Equal(t, Action{Resize: true}, newMapper().Translate(tcell.NewEventResize(80, 24)))
}

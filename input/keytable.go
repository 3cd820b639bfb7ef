package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/zimka1/grid-path-visualizer/session"
)

// IntentType discriminates what a key asks for
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit

	// Editing
	IntentPlacement // w, s, g
	IntentPlace     // Enter, places at the pointer
	IntentMaze      // m

	// Pointer
	IntentMotion // arrows, hjkl

	// Run control
	IntentRun   // space
	IntentReset // r
)

// KeyEntry describes what a key does
type KeyEntry struct {
	Intent     IntentType
	Placement  session.Placement
	DRow, DCol int
}

// KeyTable maps keys to entries
type KeyTable struct {
	// Non-rune keys (Ctrl+*, arrows, Enter, Escape)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable keys, matched case-insensitively
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyCtrlQ:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyEnter:  {Intent: IntentPlace},
			tcell.KeyUp:     {Intent: IntentMotion, DRow: -1},
			tcell.KeyDown:   {Intent: IntentMotion, DRow: 1},
			tcell.KeyLeft:   {Intent: IntentMotion, DCol: -1},
			tcell.KeyRight:  {Intent: IntentMotion, DCol: 1},
		},

		Runes: map[rune]KeyEntry{
			'w': {Intent: IntentPlacement, Placement: session.PlaceWall},
			's': {Intent: IntentPlacement, Placement: session.PlaceStart},
			'g': {Intent: IntentPlacement, Placement: session.PlaceGoal},
			' ': {Intent: IntentRun},
			'r': {Intent: IntentReset},
			'm': {Intent: IntentMaze},
			'q': {Intent: IntentQuit},

			'h': {Intent: IntentMotion, DCol: -1},
			'j': {Intent: IntentMotion, DRow: 1},
			'k': {Intent: IntentMotion, DRow: -1},
			'l': {Intent: IntentMotion, DCol: 1},
		},
	}
}

// Lookup returns the entry for a key event
func (t *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() != tcell.KeyRune {
		e, ok := t.SpecialKeys[ev.Key()]
		return e, ok
	}
	r := ev.Rune()
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	e, ok := t.Runes[r]
	return e, ok
}

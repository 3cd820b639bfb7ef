// Package render draws grid snapshots and session status onto a tcell screen.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/zimka1/grid-path-visualizer/grid"
	"github.com/zimka1/grid-path-visualizer/session"
)

// HelpText is shown on the last status line
const HelpText = "w wall  s start  g goal  space run  r reset  m maze  arrows/hjkl move  enter place  q quit"

// Status is the per-frame text shown under the grid
type Status struct {
	Phase     session.Phase
	Placement session.Placement
	Steps     int
	Found     bool
	Length    int    // Path length, shown when Found
	Message   string // Latest diagnostic, empty for none
}

// Renderer owns drawing to the screen
type Renderer struct {
	screen tcell.Screen
	layout Layout
}

// NewRenderer creates a renderer for a rows x cols grid
func NewRenderer(screen tcell.Screen, rows, cols int) *Renderer {
	return &Renderer{
		screen: screen,
		layout: NewLayout(rows, cols),
	}
}

// Layout returns the screen mapping used for drawing and hit-testing
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render draws one full frame and shows it. The pointer cell, if any, is
// bracketed.
func (r *Renderer) Render(snap grid.Snapshot, pointer grid.Pos, hasPointer bool, st Status) {
	r.screen.Clear()
	r.drawGrid(snap, pointer, hasPointer)
	r.drawStatus(st)
	r.screen.Show()
}

func (r *Renderer) drawGrid(snap grid.Snapshot, pointer grid.Pos, hasPointer bool) {
	for row := 0; row < snap.Height; row++ {
		for col := 0; col < snap.Width; col++ {
			p := grid.Pos{Row: row, Col: col}
			style := StyleForRole(snap.At(p))
			left, right := ' ', ' '
			if hasPointer && p == pointer {
				left, right = '[', ']'
				style = style.Bold(true)
			}
			x, y := r.layout.ScreenOf(p)
			r.screen.SetContent(x, y, left, nil, style)
			r.screen.SetContent(x+1, y, right, nil, style)
		}
	}
}

func (r *Renderer) drawStatus(st Status) {
	y := r.layout.StatusRow()

	var bg tcell.Color
	switch st.Phase {
	case session.Running:
		bg = RgbPhaseRunBg
	case session.Done:
		bg = RgbPhaseDoneBg
	default:
		bg = RgbPhaseEditBg
	}
	phaseStyle := tcell.StyleDefault.Background(bg).Foreground(RgbStatusText).Bold(true)
	x := r.drawText(r.layout.OriginX, y, " "+st.Phase.String()+" ", phaseStyle)

	info := fmt.Sprintf(" mode:%s  steps:%d", st.Placement, st.Steps)
	if st.Phase == session.Done && st.Found {
		info += fmt.Sprintf("  length:%d", st.Length)
	}
	r.drawText(x, y, info, tcell.StyleDefault.Foreground(RgbHelpText))

	if st.Message != "" {
		r.drawText(r.layout.OriginX, y+1, st.Message, tcell.StyleDefault.Foreground(RgbMessage))
	}
	r.drawText(r.layout.OriginX, y+2, HelpText, tcell.StyleDefault.Foreground(RgbHelpText))
}

// drawText writes s from (x, y) and returns the column after it
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/zimka1/grid-path-visualizer/grid"
)

// Cell colors
var (
	RgbEmpty   = tcell.NewRGBColor(255, 255, 255) // White
	RgbWall    = tcell.NewRGBColor(80, 80, 80)    // Dark gray
	RgbStart   = tcell.NewRGBColor(0, 255, 0)     // Green
	RgbGoal    = tcell.NewRGBColor(255, 0, 0)     // Red
	RgbVisited = tcell.NewRGBColor(0, 0, 255)     // Blue
	RgbPath    = tcell.NewRGBColor(255, 255, 0)   // Yellow

	RgbPointer    = tcell.NewRGBColor(255, 165, 0) // Orange brackets around the pointer cell
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbHelpText   = tcell.NewRGBColor(180, 180, 180)
	RgbMessage    = tcell.NewRGBColor(255, 80, 80)

	// Status bar backgrounds per phase
	RgbPhaseEditBg = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbPhaseRunBg  = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPhaseDoneBg = tcell.NewRGBColor(144, 238, 144) // Light grass green
)

// RoleColor returns the fill color of a cell role
func RoleColor(r grid.Role) tcell.Color {
	switch r {
	case grid.Wall:
		return RgbWall
	case grid.Start:
		return RgbStart
	case grid.Goal:
		return RgbGoal
	case grid.Visited:
		return RgbVisited
	case grid.Path:
		return RgbPath
	}
	return RgbEmpty
}

// StyleForRole fills the cell with its role color
func StyleForRole(r grid.Role) tcell.Style {
	return tcell.StyleDefault.Background(RoleColor(r)).Foreground(RgbPointer)
}

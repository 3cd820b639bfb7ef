package session

import "github.com/zimka1/grid-path-visualizer/grid"

// Event is a discrete input consumed by Session.Handle
type Event interface {
	isEvent()
}

// PointerClick places the active kind at Cell
type PointerClick struct{ Cell grid.Pos }

// PointerMove records the cell under the pointer
type PointerMove struct{ Cell grid.Pos }

// MovePointer shifts the pointer cell, clamped to the grid
type MovePointer struct{ DRow, DCol int }

// ClickPointer places the active kind at the current pointer cell
type ClickPointer struct{}

// SetPlacementMode switches the active placement kind
type SetPlacementMode struct{ Kind Placement }

// RequestRun starts a search
type RequestRun struct{}

// RequestReset clears search marks and endpoints after a run
type RequestReset struct{}

// GenerateMaze replaces the walls with a generated maze
type GenerateMaze struct{}

func (PointerClick) isEvent()     {}
func (PointerMove) isEvent()      {}
func (MovePointer) isEvent()      {}
func (ClickPointer) isEvent()     {}
func (SetPlacementMode) isEvent() {}
func (RequestRun) isEvent()       {}
func (RequestReset) isEvent()     {}
func (GenerateMaze) isEvent()     {}

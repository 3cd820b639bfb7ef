package audio

import (
	"time"

	"github.com/zimka1/grid-path-visualizer/search"
)

// Cue identifies a short sound tied to a session event
type Cue int

const (
	CueVisit    Cue = iota // Frontier pop
	CuePath                // Path cell traced
	CueFound               // Run ended with a path
	CueNotFound            // Run exhausted the open set
	CueReject              // Input refused
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueVisit:
		return "visit"
	case CuePath:
		return "path"
	case CueFound:
		return "found"
	case CueNotFound:
		return "not-found"
	case CueReject:
		return "reject"
	}
	return "unknown"
}

// CueFor maps an engine step to its cue
func CueFor(k search.Kind) Cue {
	switch k {
	case search.PathStep:
		return CuePath
	case search.Found:
		return CueFound
	case search.NotFound:
		return CueNotFound
	}
	return CueVisit
}

// Envelope timings
const (
	visitDuration = 25 * time.Millisecond
	visitAttack   = 2 * time.Millisecond
	visitRelease  = 15 * time.Millisecond

	pathDuration = 60 * time.Millisecond
	pathAttack   = 5 * time.Millisecond
	pathRelease  = 30 * time.Millisecond

	foundNote1Duration = 80 * time.Millisecond
	foundNote2Duration = 280 * time.Millisecond
	foundAttack        = 5 * time.Millisecond
	foundNote1Release  = 40 * time.Millisecond
	foundNote2Release  = 200 * time.Millisecond

	failDuration = 220 * time.Millisecond
	failAttack   = 5 * time.Millisecond
	failRelease  = 80 * time.Millisecond

	rejectDuration = 80 * time.Millisecond
	rejectAttack   = 5 * time.Millisecond
	rejectRelease  = 20 * time.Millisecond
)

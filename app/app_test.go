package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimka1/grid-path-visualizer/audio"
	"github.com/zimka1/grid-path-visualizer/config"
	"github.com/zimka1/grid-path-visualizer/grid"
	"github.com/zimka1/grid-path-visualizer/render"
	"github.com/zimka1/grid-path-visualizer/session"
)

type recordingPlayer struct {
	cues []audio.Cue
}

func (p *recordingPlayer) Play(c audio.Cue) { p.cues = append(p.cues, c) }
func (p *recordingPlayer) Close()           {}

func (p *recordingPlayer) count(c audio.Cue) int {
	n := 0
	for _, x := range p.cues {
		if x == c {
			n++
		}
	}
	return n
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 20)
	t.Cleanup(screen.Fini)
	return screen
}

func demoConfig() *config.Config {
	cfg := config.Default()
	start, goal := grid.Pos{Row: 2, Col: 0}, grid.Pos{Row: 9, Col: 9}
	cfg.Preset = &config.Preset{
		Start: &start,
		Goal:  &goal,
		Walls: []grid.Pos{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 1, Col: 2}},
	}
	return cfg
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func screenRow(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(mainc)
	}
	return strings.TrimRight(b.String(), " \x00")
}

// TestDemoRun drives the demo board from space to Done one tick at a time
func TestDemoRun(t *testing.T) {
	screen := newScreen(t)
	player := &recordingPlayer{}
	a, err := New(screen, demoConfig(), nil, player)
	require.NoError(t, err)

	assert.False(t, a.Tick(), "nothing to advance while editing")
	assert.False(t, a.HandleEvent(key(' ')))
	require.Equal(t, session.Running, a.Session().Phase())

	for i := 0; i < 1000 && a.Session().Phase() == session.Running; i++ {
		require.True(t, a.Tick())
	}
	require.Equal(t, session.Done, a.Session().Phase())
	a.Draw()

	assert.Equal(t, 16, a.Session().Stats().PathLength)
	assert.Equal(t, 15, player.count(audio.CuePath))
	assert.Equal(t, 1, player.count(audio.CueFound))
	assert.Equal(t, audio.CueFound, player.cues[len(player.cues)-1])
	assert.Equal(t, a.Session().Steps(), len(player.cues))
	assert.Contains(t, screenRow(screen, 10), "DONE")
	assert.Contains(t, screenRow(screen, 10), "length:16")

	// A traced cell renders yellow
	var pathCell grid.Pos
	snap := a.Session().Snapshot()
	for i, r := range snap.Cells {
		if r == grid.Path {
			pathCell = grid.Pos{Row: i / snap.Width, Col: i % snap.Width}
			break
		}
	}
	x, y := render.NewLayout(10, 10).ScreenOf(pathCell)
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	assert.Equal(t, render.RgbPath, bg)

	assert.False(t, a.HandleEvent(key('r')))
	assert.Equal(t, session.Editing, a.Session().Phase())
	assert.False(t, a.Tick())
}

// TestRunWithoutGoal verifies the rejection diagnostic reaches the status line
func TestRunWithoutGoal(t *testing.T) {
	screen := newScreen(t)
	player := &recordingPlayer{}
	a, err := New(screen, config.Default(), nil, player)
	require.NoError(t, err)

	a.HandleEvent(key(' '))
	a.Draw()

	assert.Equal(t, session.Editing, a.Session().Phase())
	assert.Equal(t, "Please set both start and goal positions before running.", a.Message())
	assert.Equal(t, []audio.Cue{audio.CueReject}, player.cues)
	assert.Equal(t, a.Message(), screenRow(screen, 11))

	// Switching mode clears it
	a.HandleEvent(key('s'))
	assert.Empty(t, a.Message())
}

// TestMouseEditing places endpoints and a wall with clicks
func TestMouseEditing(t *testing.T) {
	screen := newScreen(t)
	a, err := New(screen, config.Default(), nil, nil)
	require.NoError(t, err)

	click := func(p grid.Pos) {
		x, y := render.NewLayout(10, 10).ScreenOf(p)
		a.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
		a.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	}

	click(grid.Pos{Row: 0, Col: 1})
	a.HandleEvent(key('s'))
	click(grid.Pos{Row: 0, Col: 0})
	a.HandleEvent(key('g'))
	click(grid.Pos{Row: 0, Col: 2})

	snap := a.Session().Snapshot()
	assert.Equal(t, grid.Start, snap.At(grid.Pos{Row: 0, Col: 0}))
	assert.Equal(t, grid.Wall, snap.At(grid.Pos{Row: 0, Col: 1}))
	assert.Equal(t, grid.Goal, snap.At(grid.Pos{Row: 0, Col: 2}))

	a.HandleEvent(key(' '))
	require.Equal(t, session.Running, a.Session().Phase())

	// Clicks are refused while running
	a.HandleEvent(key('w'))
	click(grid.Pos{Row: 5, Col: 5})
	snap = a.Session().Snapshot()
	assert.Equal(t, grid.Empty, snap.At(grid.Pos{Row: 5, Col: 5}))
}

func TestKeyboardPointer(t *testing.T) {
	screen := newScreen(t)
	a, err := New(screen, config.Default(), nil, nil)
	require.NoError(t, err)

	a.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	a.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	a.HandleEvent(key('l'))
	a.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	p, ok := a.Session().Pointer()
	require.True(t, ok)
	assert.Equal(t, grid.Pos{Row: 1, Col: 1}, p)
	assert.Equal(t, grid.Wall, a.Session().Snapshot().At(p))
}

func TestZeroDelayFinishesInOneTick(t *testing.T) {
	cfg := demoConfig()
	cfg.StepDelay = 0
	player := &recordingPlayer{}
	a, err := New(newScreen(t), cfg, nil, player)
	require.NoError(t, err)

	a.HandleEvent(key(' '))
	require.True(t, a.Tick())
	assert.Equal(t, session.Done, a.Session().Phase())
	assert.Equal(t, []audio.Cue{audio.CueFound}, player.cues)
}

func TestNoPathMessage(t *testing.T) {
	cfg := config.Default()
	cfg.StepDelay = 0
	cfg.Preset = &config.Preset{Layout: "S#G"}
	player := &recordingPlayer{}
	a, err := New(newScreen(t), cfg, nil, player)
	require.NoError(t, err)

	a.HandleEvent(key(' '))
	a.Tick()
	assert.Equal(t, session.Done, a.Session().Phase())
	assert.Equal(t, "No path found.", a.Message())
	assert.Equal(t, []audio.Cue{audio.CueNotFound}, player.cues)
}

func TestMazeKey(t *testing.T) {
	cfg := demoConfig()
	cfg.Maze.Seed = 3
	a, err := New(newScreen(t), cfg, nil, nil)
	require.NoError(t, err)

	a.HandleEvent(key('m'))
	snap := a.Session().Snapshot()
	assert.Greater(t, len(snap.Cells), 0)
	assert.Equal(t, grid.Start, snap.At(grid.Pos{Row: 2, Col: 0}))
	assert.Equal(t, grid.Goal, snap.At(grid.Pos{Row: 9, Col: 9}))
}

func TestPresetErrors(t *testing.T) {
	cfg := config.Default()
	outside := grid.Pos{Row: 20, Col: 0}
	cfg.Preset = &config.Preset{Start: &outside}
	_, err := New(newScreen(t), cfg, nil, nil)
	assert.ErrorIs(t, err, ErrPreset)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	cfg.Preset = &config.Preset{Layout: "S.S"}
	_, err = New(newScreen(t), cfg, nil, nil)
	assert.ErrorIs(t, err, ErrPreset)
	assert.ErrorIs(t, err, grid.ErrBadLayout)
}

// TestRunQuits verifies the loop exits on q and on context cancellation
func TestRunQuits(t *testing.T) {
	screen := newScreen(t)
	a, err := New(screen, demoConfig(), nil, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}

	b, err := New(newScreen(t), demoConfig(), nil, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { done <- b.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

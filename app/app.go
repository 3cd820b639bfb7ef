// Package app hosts a session on a terminal: it forwards input, paces the
// search with a ticker, plays cues and redraws after every change.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zimka1/grid-path-visualizer/audio"
	"github.com/zimka1/grid-path-visualizer/config"
	"github.com/zimka1/grid-path-visualizer/grid"
	"github.com/zimka1/grid-path-visualizer/input"
	"github.com/zimka1/grid-path-visualizer/render"
	"github.com/zimka1/grid-path-visualizer/search"
	"github.com/zimka1/grid-path-visualizer/session"
)

// ErrPreset wraps failures applying the configured starting board
var ErrPreset = errors.New("app: preset")

// minTick bounds the ticker when the step delay is zero
const minTick = time.Millisecond

// App owns the screen for its lifetime. All state is touched from the Run
// goroutine only.
type App struct {
	screen   tcell.Screen
	session  *session.Session
	renderer *render.Renderer
	mapper   *input.Mapper
	player   audio.Player
	logger   *slog.Logger

	stepDelay time.Duration
	message   string
}

// New builds the board from cfg and wires a session to screen. A nil player
// is silent and a nil logger discards.
func New(screen tcell.Screen, cfg *config.Config, logger *slog.Logger, player audio.Player) (*App, error) {
	if player == nil {
		player = audio.Silent{}
	}
	if logger == nil {
		logger = NewLogger("info", "text", io.Discard)
	}

	g, fromLayout, err := buildGrid(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		screen:    screen,
		player:    player,
		logger:    logger,
		stepDelay: cfg.StepDelay,
	}
	a.session = session.New(g,
		session.WithLogger(logger),
		session.WithNotifier(a),
		session.WithMaze(session.MazeOptions{
			Braiding:   cfg.Maze.Braiding,
			OpenBorder: cfg.Maze.OpenBorder,
			Seed:       cfg.Maze.Seed,
		}),
	)
	a.logger = a.logger.With("session_id", a.session.ID().String())

	switch {
	case fromLayout:
		a.session.AdoptEndpoints()
	case cfg.Preset != nil:
		err := a.session.ApplyPreset(session.Preset{
			Walls: cfg.Preset.Walls,
			Start: cfg.Preset.Start,
			Goal:  cfg.Preset.Goal,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPreset, err)
		}
	}

	a.renderer = render.NewRenderer(screen, g.Height(), g.Width())
	a.mapper = input.NewMapper(nil, a.renderer.Layout())
	return a, nil
}

// buildGrid returns an empty grid of the configured size, or the parsed
// preset layout whose own size wins
func buildGrid(cfg *config.Config) (*grid.Grid, bool, error) {
	if cfg.Preset != nil && cfg.Preset.Layout != "" {
		g, err := grid.Parse(cfg.Preset.Layout)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrPreset, err)
		}
		return g, true, nil
	}
	g, err := grid.New(cfg.Grid.Height, cfg.Grid.Width)
	return g, false, err
}

// Session exposes the hosted session
func (a *App) Session() *session.Session {
	return a.session
}

// Notify records the latest diagnostic for the status line
func (a *App) Notify(d session.Diagnostic) {
	a.message = d.Message
}

// Message returns the diagnostic currently shown
func (a *App) Message() string {
	return a.message
}

// Run draws the first frame and processes events until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\nEVENT POLLER CRASHED: %v\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(max(a.stepDelay, minTick))
	defer ticker.Stop()

	a.Draw()
	a.logger.Info("started", "step_delay", a.stepDelay)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("stopped", "reason", ctx.Err())
			return nil

		case ev := <-events:
			if a.HandleEvent(ev) {
				a.logger.Info("quit requested")
				return nil
			}
			a.Draw()

		case <-ticker.C:
			if a.Tick() {
				a.Draw()
			}
		}
	}
}

// HandleEvent applies one terminal event and reports whether to quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	act := a.mapper.Translate(ev)
	switch {
	case act.Quit:
		return true
	case act.Resize:
		a.screen.Sync()
		return false
	case act.Event == nil:
		return false
	}

	outcome := a.session.Handle(act.Event)
	a.logger.Debug("input", "event", fmt.Sprintf("%T", act.Event), "outcome", outcome.String())

	switch outcome {
	case session.Rejected:
		a.player.Play(audio.CueReject)
	case session.Accepted:
		switch act.Event.(type) {
		case session.RequestRun, session.RequestReset, session.GenerateMaze, session.SetPlacementMode:
			a.message = ""
		}
	}
	return false
}

// Tick advances a running search by one step, or to the end when the step
// delay is zero. It reports whether anything changed.
func (a *App) Tick() bool {
	if a.session.Phase() != session.Running {
		return false
	}
	if a.stepDelay == 0 {
		final, _ := a.session.RunToCompletion(nil)
		a.player.Play(audio.CueFor(final.Kind))
		return true
	}

	r, ok := a.session.Advance()
	if ok {
		a.player.Play(audio.CueFor(r.Kind))
	}
	return ok
}

// Draw renders the current session state
func (a *App) Draw() {
	pointer, hasPointer := a.session.Pointer()
	last := a.session.LastResult()
	a.renderer.Render(a.session.Snapshot(), pointer, hasPointer, render.Status{
		Phase:     a.session.Phase(),
		Placement: a.session.Placement(),
		Steps:     a.session.Steps(),
		Found:     last.Kind == search.Found,
		Length:    a.session.Stats().PathLength,
		Message:   a.message,
	})
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zimka1/grid-path-visualizer/app"
	"github.com/zimka1/grid-path-visualizer/audio"
	"github.com/zimka1/grid-path-visualizer/config"
)

var (
	configFlag  = flag.String("config", "", "HCL config file (default $GRIDPATH_CONFIG)")
	debugFlag   = flag.Bool("debug", false, "Write debug logs to the configured log file")
	noAudioFlag = flag.Bool("no-audio", false, "Disable sound cues")
	delayFlag   = flag.Duration("delay", -1, "Delay between search steps, 0 runs instantly")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(config.Options{
		File: *configFlag,
		Override: func(c *config.Config) {
			if *debugFlag {
				c.Log.Enabled = true
				c.Log.Level = "debug"
			}
			if *noAudioFlag {
				c.Audio.Enabled = false
			}
			if *delayFlag >= 0 {
				c.StepDelay = *delayFlag
			}
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridpath: %v\n", err)
		os.Exit(2)
	}

	logger, logFile, err := app.SetupLogging(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridpath: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	var player audio.Player = audio.Silent{}
	if cfg.Audio.Enabled {
		acfg := audio.DefaultConfig()
		acfg.MasterVolume = cfg.Audio.Volume
		player = audio.Open(acfg, logger)
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nGRIDPATH CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	a, err := app.New(screen, cfg, logger, player)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "gridpath: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	runErr := a.Run(ctx)
	screen.Fini()
	logger.Info("exiting", "uptime", time.Since(start).Round(time.Millisecond))

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "gridpath: %v\n", runErr)
		os.Exit(1)
	}
}

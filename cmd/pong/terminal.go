package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-pong/pkg/audio"
	"github.com/opd-ai/go-pong/pkg/config"
	"github.com/opd-ai/go-pong/pkg/engine"
	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/logging"
	"github.com/opd-ai/go-pong/pkg/render"
)

// keyRepeatSteps is how many paddle steps one key event is worth. Terminals
// report presses and repeats but never releases.
const keyRepeatSteps = 20

type terminalOptions struct {
	LogPath string
	Sound   bool
}

// terminalGame couples a simulation to a tcell screen
type terminalGame struct {
	sim      *engine.Simulation
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	logger   *logging.Logger
}

func newTerminalGame(sim *engine.Simulation, screen tcell.Screen, logger *logging.Logger) *terminalGame {
	w, h := screen.Size()
	g := &terminalGame{
		sim:      sim,
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen, w, h, 1),
		logger:   logger.With("component", "terminal"),
	}
	g.fit()
	return g
}

// fit scales the arena, walls included, to the current screen size
func (g *terminalGame) fit() {
	cfg := g.sim.Config()
	height := cfg.Window.Height
	if cfg.Arena.Walls {
		height += 2 * cfg.Arena.WallThickness
	}
	g.renderer.FitArena(cfg.Window.Width, height)
}

// handleEvent applies one input event and reports whether to quit
func (g *terminalGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		w, h := ev.Size()
		g.renderer.Resize(w, h)
		g.fit()
		g.screen.Sync()
	}
	return false
}

func (g *terminalGame) handleKey(key tcell.Key, r rune) bool {
	arena := g.sim.Arena()
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		g.move(arena.RightPaddle, engine.Up)
	case tcell.KeyDown:
		g.move(arena.RightPaddle, engine.Down)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return true
		case 'w', 'W':
			g.move(arena.LeftPaddle, engine.Up)
		case 's', 'S':
			g.move(arena.LeftPaddle, engine.Down)
		case 'r':
			if err := g.sim.Reset(); err != nil {
				g.logger.Error(context.Background(), "reset failed", err)
			}
		}
	}
	return false
}

func (g *terminalGame) move(paddle entity.ID, direction float64) {
	for i := 0; i < keyRepeatSteps; i++ {
		if err := g.sim.MovePaddle(paddle, direction); err != nil {
			g.logger.Debug(context.Background(), "paddle move failed", "paddle", paddle, "error", err.Error())
			return
		}
	}
}

// frame advances the simulation one tick and redraws
func (g *terminalGame) frame() {
	g.sim.Step(0)
	g.sim.CheckGoal()

	score := g.sim.Score()
	g.renderer.SetStatus(fmt.Sprintf(" %d : %d   W/S  Up/Down  r reset  q quit", score.Left, score.Right))
	entity.Draw(g.sim.Store(), g.renderer)
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed. The returned channel is closed when the poller exits.
func pollEvents(screen tcell.Screen, done <-chan struct{}, buffer int) <-chan tcell.Event {
	events := make(chan tcell.Event, buffer)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
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
	return events
}

// runTerminal plays in the current terminal until the user quits or ctx is
// cancelled. Logs go to opts.LogPath since stdout belongs to the screen.
func runTerminal(ctx context.Context, cfg *config.GameConfig, opts terminalOptions) error {
	logFile, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := logging.NewLoggerWithWriter(logFile, logging.ParseLevel(os.Getenv(logging.LevelEnvVar)))

	sim, err := newSimulation(cfg, logger)
	if err != nil {
		return err
	}

	if opts.Sound {
		sounds := audio.NewSoundManager(logger)
		if err := sounds.Initialize(); err != nil {
			logger.Warn(ctx, "sound disabled", "error", err.Error())
		} else {
			detach := sounds.Attach(sim.EventBus())
			defer sounds.Cleanup()
			defer detach()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	g := newTerminalGame(sim, screen, logger)

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done, 100)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Physics.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if g.handleEvent(ev) {
				score := sim.Score()
				logger.Info(ctx, "quit", "tick", sim.Tick(), "left", score.Left, "right", score.Right)
				return nil
			}
		case <-ticker.C:
			g.frame()
		}
	}
}

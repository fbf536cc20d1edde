package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/opd-ai/go-pong/pkg/engine"
	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/health"
	"github.com/opd-ai/go-pong/pkg/logging"
	"github.com/opd-ai/go-pong/pkg/physics"
	"github.com/opd-ai/go-pong/pkg/render"
)

const (
	probeStallLimit = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

type headlessOptions struct {
	// Frames > 0 runs that many steps unpaced, then prints the final state.
	// Frames == 0 runs at the tick rate until ctx is cancelled.
	Frames     int
	HealthAddr string
}

// probe mirrors the simulation for readers on other goroutines. The
// simulation itself is only touched by the stepping loop.
type probe struct {
	mu    sync.RWMutex
	state engine.GameState
	ball  physics.Vector2D
	found bool
}

func (p *probe) update(sim *engine.Simulation) {
	state := sim.Snapshot()
	ball, err := sim.Store().Position(sim.Arena().Ball)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
	p.ball, p.found = ball, err == nil
}

func (p *probe) tick() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state.Tick
}

func (p *probe) ballPosition() (physics.Vector2D, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ball, p.found
}

func (p *probe) stateHandler(w http.ResponseWriter, r *http.Request) {
	p.mu.RLock()
	state := p.state
	p.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// healthChecker builds the readiness checks for a headless run. The ball is
// allowed one arena width sideways before a goal resets it; vertically it
// must stay inside the walls when they exist.
func healthChecker(sim *engine.Simulation, p *probe) *health.HealthChecker {
	cfg := sim.Config()
	limit := physics.Vector2D{X: cfg.Window.Width, Y: cfg.Window.Height}
	if cfg.Arena.Walls {
		limit.Y = cfg.Window.Height/2 + cfg.Arena.WallThickness
	}

	hc := health.NewHealthChecker()
	hc.AddCheck(health.NewTickProgressCheck(p.tick, probeStallLimit))
	hc.AddCheck(health.NewBallContainedCheck(p.ballPosition, limit))
	return hc
}

func runHeadless(ctx context.Context, sim *engine.Simulation, opts headlessOptions, out io.Writer, logger *logging.Logger) error {
	logger = logger.With("component", "headless")
	renderer := render.NewNullRenderer(logger)

	p := &probe{}
	p.update(sim)

	if opts.HealthAddr != "" {
		mux := http.NewServeMux()
		hc := healthChecker(sim, p)
		mux.HandleFunc("/health", hc.LivenessHandler)
		mux.HandleFunc("/ready", hc.ReadinessHandler)
		mux.HandleFunc("/state", p.stateHandler)

		server := &http.Server{
			Addr:         opts.HealthAddr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info(ctx, "Starting health check server", "address", opts.HealthAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "Health check server failed", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "Health check server shutdown failed", err)
			}
		}()
	}

	var bounces int
	step := func() {
		stats := sim.Step(0)
		bounces += stats.Bounces
		sim.CheckGoal()
		entity.Draw(sim.Store(), renderer)
		p.update(sim)
	}

	if opts.Frames > 0 {
		for i := 0; i < opts.Frames && ctx.Err() == nil; i++ {
			step()
		}
	} else {
		ticker := time.NewTicker(time.Second / time.Duration(sim.Config().Physics.TickRate))
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
				step()
			}
		}
	}

	score := sim.Score()
	logger.Info(ctx, "Run complete",
		"ticks", sim.Tick(),
		"bounces", bounces,
		"frames_drawn", renderer.Frames(),
		"left", score.Left,
		"right", score.Right,
	)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(sim.Snapshot())
}

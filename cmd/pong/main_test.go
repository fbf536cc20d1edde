package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-pong/pkg/config"
	"github.com/opd-ai/go-pong/pkg/engine"
	"github.com/opd-ai/go-pong/pkg/health"
	"github.com/opd-ai/go-pong/pkg/logging"
	"github.com/opd-ai/go-pong/pkg/physics"
)

func spawned(t *testing.T) *engine.Simulation {
	t.Helper()
	sim, err := newSimulation(config.DefaultConfig(), logging.Discard())
	if err != nil {
		t.Fatalf("newSimulation failed: %v", err)
	}
	return sim
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := loadConfig(ctx, filepath.Join(dir, "missing.json"), logging.Discard())
		if err != nil {
			t.Fatalf("loadConfig failed: %v", err)
		}
		if cfg.Window.Width != config.DefaultWindowWidth {
			t.Errorf("Expected default width, got %v", cfg.Window.Width)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(dir, "config.json")
		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		t.Setenv(config.EnvBallSpeed, "7")

		cfg, err := loadConfig(ctx, path, logging.Discard())
		if err != nil {
			t.Fatalf("loadConfig failed: %v", err)
		}
		if cfg.Ball.Speed != 7 {
			t.Errorf("Expected ball speed 7, got %v", cfg.Ball.Speed)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadConfig(ctx, path, logging.Discard()); err == nil {
			t.Error("Expected an error for malformed JSON")
		}
	})

	t.Run("invalid override", func(t *testing.T) {
		t.Setenv(config.EnvTickRate, "-1")
		_, err := loadConfig(ctx, filepath.Join(dir, "missing.json"), logging.Discard())
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestRunHeadless_FixedFrames(t *testing.T) {
	sim := spawned(t)
	var out bytes.Buffer

	// The default serve misses both paddles and leaves on the left at tick 129
	err := runHeadless(context.Background(), sim, headlessOptions{Frames: 130}, &out, logging.Discard())
	if err != nil {
		t.Fatalf("runHeadless failed: %v", err)
	}

	var state engine.GameState
	if err := json.Unmarshal(out.Bytes(), &state); err != nil {
		t.Fatalf("output is not a game state: %v", err)
	}
	if state.Tick != 130 {
		t.Errorf("Expected tick 130, got %d", state.Tick)
	}
	if state.Score != (engine.Score{Right: 1}) {
		t.Errorf("Expected score 0:1, got %+v", state.Score)
	}
	if len(state.Entities) != 5 {
		t.Errorf("Expected 5 entities, got %d", len(state.Entities))
	}
}

func TestRunHeadless_StopsOnCancel(t *testing.T) {
	sim := spawned(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := runHeadless(ctx, sim, headlessOptions{}, &out, logging.Discard()); err != nil {
		t.Fatalf("runHeadless failed: %v", err)
	}
	if sim.Tick() != 0 {
		t.Errorf("Expected no ticks after cancel, got %d", sim.Tick())
	}
}

func TestProbeEndpoints(t *testing.T) {
	sim := spawned(t)
	p := &probe{}
	sim.Step(0)
	p.update(sim)
	hc := healthChecker(sim, p)

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()
	hc.ReadinessHandler(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected ready, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/state", nil)
	w = httptest.NewRecorder()
	p.stateHandler(w, req)
	var state engine.GameState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Tick != 1 {
		t.Errorf("Expected tick 1, got %d", state.Tick)
	}

	// A ball below the bottom wall fails readiness
	if err := sim.Store().SetPosition(sim.Arena().Ball, physics.Vector2D{Y: -400}); err != nil {
		t.Fatal(err)
	}
	p.update(sim)
	if status := hc.CheckHealth(context.Background()); status.Checks["ball"].Status != health.StatusUnhealthy {
		t.Errorf("Expected ball check to fail, got %+v", status.Checks["ball"])
	}
}

func newTestTerminal(t *testing.T) *terminalGame {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return newTerminalGame(spawned(t), screen, logging.Discard())
}

func TestTerminalGame_Keys(t *testing.T) {
	tests := []struct {
		name       string
		key        tcell.Key
		r          rune
		quit       bool
		left, right float64
	}{
		{"w moves left paddle up", tcell.KeyRune, 'w', false, keyRepeatSteps, 0},
		{"s moves left paddle down", tcell.KeyRune, 's', false, -keyRepeatSteps, 0},
		{"up arrow moves right paddle", tcell.KeyUp, 0, false, 0, keyRepeatSteps},
		{"down arrow moves right paddle", tcell.KeyDown, 0, false, 0, -keyRepeatSteps},
		{"q quits", tcell.KeyRune, 'q', true, 0, 0},
		{"escape quits", tcell.KeyEscape, 0, true, 0, 0},
		{"ctrl-c quits", tcell.KeyCtrlC, 0, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestTerminal(t)
			if quit := g.handleKey(tt.key, tt.r); quit != tt.quit {
				t.Errorf("handleKey quit = %v, want %v", quit, tt.quit)
			}
			arena := g.sim.Arena()
			left, _ := g.sim.Store().Position(arena.LeftPaddle)
			right, _ := g.sim.Store().Position(arena.RightPaddle)
			if left.Y != tt.left || right.Y != tt.right {
				t.Errorf("paddles at y=%v and y=%v, want %v and %v", left.Y, right.Y, tt.left, tt.right)
			}
		})
	}
}

func TestTerminalGame_ResetKey(t *testing.T) {
	g := newTestTerminal(t)
	g.frame()
	g.handleKey(tcell.KeyRune, 'r')

	pos, _ := g.sim.Store().Position(g.sim.Arena().Ball)
	if pos != (physics.Vector2D{}) {
		t.Errorf("Expected ball at the origin after reset, got %v", pos)
	}
}

func TestTerminalGame_FrameAndResize(t *testing.T) {
	g := newTestTerminal(t)
	g.frame()

	lines := g.renderer.Lines()
	if len(lines) != 24 {
		t.Fatalf("Expected 24 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], " 0 : 0") {
		t.Errorf("Expected score on the status row, got %q", lines[0])
	}
	if !strings.ContainsRune(strings.Join(lines, ""), 'O') {
		t.Error("Expected the ball to be drawn")
	}

	if g.handleEvent(tcell.NewEventResize(120, 40)) {
		t.Error("resize should not quit")
	}
	g.frame()
	if lines := g.renderer.Lines(); len(lines) != 40 || len(lines[0]) != 120 {
		t.Errorf("Expected a 120x40 buffer after resize, got %dx%d", len(lines[0]), len(lines))
	}
}

func TestPollEvents_ExitsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}

	// Nobody reads the unbuffered channel, so the poller must leave via done
	done := make(chan struct{})
	events := pollEvents(screen, done, 0)
	close(done)
	if err := screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}
	screen.Fini()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event poller did not exit")
		}
	}
}

package engine

import (
	"errors"
	"testing"

	"github.com/opd-ai/go-pong/pkg/config"
	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/event"
	"github.com/opd-ai/go-pong/pkg/physics"
)

func TestSpawnArena_Placement(t *testing.T) {
	sim := NewSimulation(config.DefaultConfig())
	var spawned []entity.Kind
	sim.EventBus().Subscribe(event.EntitySpawned, func(e event.Event) {
		spawned = append(spawned, e.(*event.SpawnEvent).Role)
	})

	arena, err := sim.SpawnArena()
	if err != nil {
		t.Fatalf("SpawnArena failed: %v", err)
	}
	store := sim.Store()

	tests := []struct {
		name string
		id   entity.ID
		pos  physics.Vector2D
		size physics.Vector2D
	}{
		{"ball", arena.Ball, physics.Vector2D{}, physics.Vector2D{X: 5, Y: 5}},
		{"left_paddle", arena.LeftPaddle, physics.Vector2D{X: -590}, physics.Vector2D{X: 10, Y: 50}},
		{"right_paddle", arena.RightPaddle, physics.Vector2D{X: 590}, physics.Vector2D{X: 10, Y: 50}},
		{"top_wall", arena.Walls[0], physics.Vector2D{Y: 365}, physics.Vector2D{X: 1280, Y: 10}},
		{"bottom_wall", arena.Walls[1], physics.Vector2D{Y: -365}, physics.Vector2D{X: 1280, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := store.Position(tt.id)
			if err != nil {
				t.Fatalf("Position failed: %v", err)
			}
			if pos != tt.pos {
				t.Errorf("position = %+v, want %+v", pos, tt.pos)
			}
			if size, _ := store.Shape(tt.id); size != tt.size {
				t.Errorf("size = %+v, want %+v", size, tt.size)
			}
		})
	}

	if v := velocityOf(t, store, arena.Ball); v != (physics.Vector2D{X: -5, Y: 5}) {
		t.Errorf("ball velocity = %+v, want (-5, 5)", v)
	}
	if store.Has(arena.LeftPaddle, entity.KindVelocity) {
		t.Error("paddles should not carry a velocity")
	}
	if len(spawned) != 5 || spawned[0] != entity.KindBall {
		t.Errorf("unexpected spawn events %v", spawned)
	}
}

func TestSpawnArena_WithoutWalls(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Arena.Walls = false
	sim := NewSimulation(cfg)

	arena, err := sim.SpawnArena()
	if err != nil {
		t.Fatalf("SpawnArena failed: %v", err)
	}
	if len(arena.Walls) != 0 || sim.Store().Len() != 3 {
		t.Errorf("Expected ball and paddles only, got %d entities", sim.Store().Len())
	}
}

func TestSpawnArena_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ball.Size = 0
	_, err := NewSimulation(cfg).SpawnArena()
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestArena_WallBounce(t *testing.T) {
	tests := []struct {
		name  string
		start physics.Vector2D
		vel   physics.Vector2D
		wantY float64
	}{
		{"top", physics.Vector2D{Y: 355}, physics.Vector2D{X: -5, Y: 5}, -5},
		{"bottom", physics.Vector2D{Y: -355}, physics.Vector2D{X: -5, Y: -5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSimulation(config.DefaultConfig())
			arena, err := sim.SpawnArena()
			if err != nil {
				t.Fatalf("SpawnArena failed: %v", err)
			}
			store := sim.Store()
			_ = store.SetPosition(arena.Ball, tt.start)
			_ = store.SetVelocity(arena.Ball, tt.vel)

			stats := sim.Step(1)

			if stats.Bounces != 1 {
				t.Fatalf("Expected 1 bounce, got %+v", stats)
			}
			if v := velocityOf(t, store, arena.Ball); v.Y != tt.wantY || v.X != tt.vel.X {
				t.Errorf("velocity = %+v, want y=%v", v, tt.wantY)
			}
		})
	}
}

func TestSimulation_BallOutAndGoal(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		wantSide  physics.Side
		wantScore Score
		wantVelX  float64
	}{
		{"left_exit", -700, physics.SideLeft, Score{Right: 1}, -5},
		{"right_exit", 700, physics.SideRight, Score{Left: 1}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewSimulation(config.DefaultConfig())
			arena, _ := sim.SpawnArena()
			store := sim.Store()
			var resets int
			sim.EventBus().Subscribe(event.BallReset, func(event.Event) { resets++ })

			if side, out := sim.BallOut(); out {
				t.Fatalf("ball at origin reported out on %v", side)
			}
			_ = store.SetPosition(arena.Ball, physics.Vector2D{X: tt.x, Y: 40})

			side, scored := sim.CheckGoal()
			if !scored || side != tt.wantSide {
				t.Fatalf("CheckGoal() = %v, %v", side, scored)
			}
			if sim.Score() != tt.wantScore {
				t.Errorf("score = %+v, want %+v", sim.Score(), tt.wantScore)
			}
			if pos, _ := store.Position(arena.Ball); pos != (physics.Vector2D{}) {
				t.Errorf("ball not served from origin: %+v", pos)
			}
			if v := velocityOf(t, store, arena.Ball); v.X != tt.wantVelX || v.Y != 5 {
				t.Errorf("serve velocity = %+v", v)
			}
			if resets != 1 {
				t.Errorf("Expected 1 reset event, got %d", resets)
			}
		})
	}
}

func TestSimulation_Reset(t *testing.T) {
	sim := NewSimulation(config.DefaultConfig())
	if err := sim.Reset(); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Reset before spawn: expected ErrNotFound, got %v", err)
	}

	arena, _ := sim.SpawnArena()
	store := sim.Store()
	_ = store.SetPosition(arena.Ball, physics.Vector2D{X: 100, Y: 100})
	_ = store.SetVelocity(arena.Ball, physics.Vector2D{X: 1, Y: 1})

	if err := sim.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if pos, _ := store.Position(arena.Ball); pos != (physics.Vector2D{}) {
		t.Errorf("ball at %+v after reset", pos)
	}
	if v := velocityOf(t, store, arena.Ball); v != sim.ServeVelocity() {
		t.Errorf("velocity %+v after reset, want %+v", v, sim.ServeVelocity())
	}
	if _, scored := sim.CheckGoal(); scored {
		t.Error("CheckGoal should not score with the ball in play")
	}
}

func TestSimulation_Snapshot(t *testing.T) {
	sim := NewSimulation(config.DefaultConfig())
	arena, _ := sim.SpawnArena()
	sim.Step(1)

	state := sim.Snapshot()
	if state.Tick != 1 {
		t.Errorf("Expected tick 1, got %d", state.Tick)
	}
	if len(state.Entities) != 5 {
		t.Fatalf("Expected 5 entities, got %d", len(state.Entities))
	}
	ball := state.Entities[0]
	if ball.ID != arena.Ball || ball.Role != "ball" {
		t.Errorf("unexpected first entity %+v", ball)
	}
	if ball.Position != (physics.Vector2D{X: -5, Y: 5}) {
		t.Errorf("ball snapshot position %+v", ball.Position)
	}
	if state.Entities[1].Role != "collider|paddle" {
		t.Errorf("paddle role = %q", state.Entities[1].Role)
	}
}

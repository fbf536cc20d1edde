// Package engine runs the Pong frame pipeline. A Simulation owns the entity
// store and schedules the motion, collision, resolution and projection
// systems through an EngoEngine/ecs world.
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-pong/pkg/config"
	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/event"
	"github.com/opd-ai/go-pong/pkg/logging"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// Score holds points per side
type Score struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Simulation is the explicit game context. It is not safe for concurrent
// use; drivers step it from a single goroutine.
type Simulation struct {
	config *config.GameConfig
	store  *entity.Store
	world  *ecs.World
	bus    *event.Bus
	logger *logging.Logger
	runID  string

	resolution *ResolutionSystem
	frame      *Frame
	last       []Collision
	tick       uint64

	arena Arena
	score Score
}

// Option customizes a Simulation
type Option func(*Simulation)

// WithLogger sets the simulation logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// WithEventBus shares an existing event bus
func WithEventBus(bus *event.Bus) Option {
	return func(s *Simulation) { s.bus = bus }
}

// WithStore runs the pipeline over an existing store
func WithStore(store *entity.Store) Option {
	return func(s *Simulation) { s.store = store }
}

// NewSimulation creates a simulation with the four core systems registered.
// A nil config falls back to config.DefaultConfig.
func NewSimulation(cfg *config.GameConfig, opts ...Option) *Simulation {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Simulation{
		config: cfg,
		world:  &ecs.World{},
		runID:  logging.GenerateCorrelationID(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = entity.NewStore()
	}
	if s.bus == nil {
		s.bus = event.NewEventBus()
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.logger = s.logger.With("component", "engine", "run_id", s.runID)

	s.resolution = &ResolutionSystem{
		logger:          s.logger,
		bus:             s.bus,
		DedupeAxisFlips: cfg.Physics.DedupeAxisFlips,
	}
	s.schedule(&MotionSystem{logger: s.logger}, MotionPriority)
	s.schedule(&CollisionSystem{logger: s.logger, bus: s.bus}, CollisionPriority)
	s.schedule(s.resolution, ResolutionPriority)
	s.schedule(&ProjectionSystem{logger: s.logger}, ProjectionPriority)
	return s
}

// scheduledSystem adapts a System to ecs.System and ecs.Prioritizer
type scheduledSystem struct {
	sim      *Simulation
	system   System
	priority int
}

func (s *scheduledSystem) Update(float32) {
	if s.sim.frame == nil {
		return
	}
	s.system.Update(s.sim.frame)
}

func (s *scheduledSystem) Remove(ecs.BasicEntity) {}

func (s *scheduledSystem) Priority() int { return s.priority }

func (s *Simulation) schedule(system System, priority int) {
	s.world.AddSystem(&scheduledSystem{sim: s, system: system, priority: priority})
}

// Systems returns the scheduled system names in execution order
func (s *Simulation) Systems() []string {
	names := make([]string, 0, len(s.world.Systems()))
	for _, sys := range s.world.Systems() {
		if scheduled, ok := sys.(*scheduledSystem); ok {
			names = append(names, scheduled.system.Name())
		}
	}
	return names
}

// Step runs one frame. A non-positive dt uses the configured time step.
func (s *Simulation) Step(dt float64) FrameStats {
	if dt <= 0 {
		dt = s.config.Physics.TimeStep
	}
	if dt <= 0 {
		dt = config.DefaultTimeStep
	}
	s.tick++

	ctx := logging.WithCorrelationID(context.Background(), s.runID)
	s.frame = &Frame{
		ctx:        ctx,
		Store:      s.store,
		DeltaTime:  dt,
		Tick:       s.tick,
		Collisions: s.last[:0],
	}
	s.world.Update(float32(dt))
	frame := s.frame
	s.frame = nil
	s.last = frame.Collisions

	stats := FrameStats{Tick: s.tick, Collisions: len(frame.Collisions), Bounces: frame.Bounces}
	s.bus.Publish(event.NewFrameEvent(s, stats.Tick, stats.Collisions, stats.Bounces))
	return stats
}

// SetDedupeAxisFlips toggles once-per-axis velocity flips
func (s *Simulation) SetDedupeAxisFlips(enabled bool) {
	s.resolution.DedupeAxisFlips = enabled
}

// Tick returns the number of completed steps
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Store returns the entity store
func (s *Simulation) Store() *entity.Store {
	return s.store
}

// EventBus returns the event bus
func (s *Simulation) EventBus() *event.Bus {
	return s.bus
}

// Config returns the configuration the simulation was built with
func (s *Simulation) Config() *config.GameConfig {
	return s.config
}

// Collisions returns a copy of the collisions detected in the last frame
func (s *Simulation) Collisions() []Collision {
	out := make([]Collision, len(s.last))
	copy(out, s.last)
	return out
}

// Arena returns the entities created by SpawnArena
func (s *Simulation) Arena() Arena {
	return s.arena
}

// Score returns the current score
func (s *Simulation) Score() Score {
	return s.score
}

// Direction values for MovePaddle
const (
	Up   = 1.0
	Down = -1.0
)

// MovePaddle shifts a paddle along Y by paddle speed * direction, keeping
// it inside the arena.
func (s *Simulation) MovePaddle(id entity.ID, direction float64) error {
	if !s.store.Has(id, entity.KindPaddle) {
		return fmt.Errorf("entity %d is not a paddle: %w", id, entity.ErrNotFound)
	}
	pos, err := s.store.Position(id)
	if err != nil {
		return err
	}
	shape, err := s.store.Shape(id)
	if err != nil {
		return err
	}
	limit := math.Max(0, s.config.Window.Height/2-shape.Y/2)
	pos.Y = math.Max(-limit, math.Min(limit, pos.Y+s.config.Paddle.Speed*direction))
	return s.store.SetPosition(id, pos)
}

// ServeVelocity returns the configured starting velocity of the ball
func (s *Simulation) ServeVelocity() physics.Vector2D {
	b := s.config.Ball
	return physics.Vector2D{X: b.DirectionX, Y: b.DirectionY}.Scale(b.Speed)
}

// Reset puts the ball back at the origin with the starting velocity
func (s *Simulation) Reset() error {
	return s.serve(s.ServeVelocity())
}

func (s *Simulation) serve(velocity physics.Vector2D) error {
	if !s.arena.spawned {
		return fmt.Errorf("arena ball: %w", entity.ErrNotFound)
	}
	ball := s.arena.Ball
	if err := s.store.SetPosition(ball, physics.Vector2D{}); err != nil {
		return logging.WrapError(err, "reset ball")
	}
	if err := s.store.SetVelocity(ball, velocity); err != nil {
		return logging.WrapError(err, "reset ball")
	}
	_ = s.store.SetTransform(ball, entity.Transform{})
	s.bus.Publish(event.NewResetEvent(s, ball, velocity))
	return nil
}

// BallOut reports which vertical arena edge the ball has crossed
func (s *Simulation) BallOut() (physics.Side, bool) {
	if !s.arena.spawned {
		return physics.SideNone, false
	}
	pos, err := s.store.Position(s.arena.Ball)
	if err != nil {
		return physics.SideNone, false
	}
	half := s.config.Window.Width / 2
	switch {
	case pos.X < -half:
		return physics.SideLeft, true
	case pos.X > half:
		return physics.SideRight, true
	}
	return physics.SideNone, false
}

// CheckGoal scores a point when the ball has left the arena and serves the
// ball towards the side that conceded.
func (s *Simulation) CheckGoal() (physics.Side, bool) {
	side, out := s.BallOut()
	if !out {
		return physics.SideNone, false
	}
	serve := s.ServeVelocity()
	speedX := math.Abs(serve.X)
	if side == physics.SideLeft {
		s.score.Right++
		serve.X = -speedX
	} else {
		s.score.Left++
		serve.X = speedX
	}
	ctx := logging.WithCorrelationID(context.Background(), s.runID)
	s.logger.Info(ctx, "goal", "conceded", side.String(), "left", s.score.Left, "right", s.score.Right)
	if err := s.serve(serve); err != nil {
		s.logger.Error(ctx, "serve failed", err)
	}
	return side, true
}

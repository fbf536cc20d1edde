package engine

import (
	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/event"
	"github.com/opd-ai/go-pong/pkg/logging"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// Scheduling priorities. The ecs world runs higher priorities first.
const (
	MotionPriority     = 40
	CollisionPriority  = 30
	ResolutionPriority = 20
	ProjectionPriority = 10
)

// System is one stage of the frame pipeline
type System interface {
	Name() string
	Update(f *Frame)
}

// MotionSystem advances every moving entity by its velocity
type MotionSystem struct {
	logger *logging.Logger
}

// Name implements System
func (*MotionSystem) Name() string { return "motion" }

// Update integrates Position += Velocity * dt
func (m *MotionSystem) Update(f *Frame) {
	for id := range f.Store.Query(entity.KindPosition|entity.KindVelocity, 0) {
		pos, err := f.Store.Position(id)
		if err != nil {
			m.logger.Debug(f.Context(), "motion skipped entity", "entity", id, "error", err.Error())
			continue
		}
		vel, err := f.Store.Velocity(id)
		if err != nil {
			m.logger.Debug(f.Context(), "motion skipped entity", "entity", id, "error", err.Error())
			continue
		}
		if err := f.Store.SetPosition(id, physics.Integrate(pos, vel, f.DeltaTime)); err != nil {
			m.logger.Debug(f.Context(), "motion skipped entity", "entity", id, "error", err.Error())
		}
	}
}

// CollisionSystem tests the ball against every collider and records hits
// in the frame. It does not touch velocities.
type CollisionSystem struct {
	logger *logging.Logger
	bus    *event.Bus
}

// Name implements System
func (*CollisionSystem) Name() string { return "collision" }

// Update detects ball/collider overlaps
func (c *CollisionSystem) Update(f *Frame) {
	ball, ignored, ok := findBall(f.Store)
	if !ok {
		return
	}
	if ignored > 0 {
		c.logger.Warn(f.Context(), "multiple balls found, using first", "ball", ball, "ignored", ignored)
	}
	ballPos, err := f.Store.Position(ball)
	if err != nil {
		return
	}
	ballShape, err := f.Store.Shape(ball)
	if err != nil {
		return
	}
	circle := physics.BoundingCircle{Center: ballPos, Radius: ballShape.X / 2}

	for id := range f.Store.Query(entity.KindCollider|entity.KindPosition|entity.KindShape, 0) {
		if id == ball {
			continue
		}
		pos, err := f.Store.Position(id)
		if err != nil {
			continue
		}
		shape, err := f.Store.Shape(id)
		if err != nil {
			continue
		}
		side := physics.CollideWithSide(circle, physics.NewAABB(pos, shape))
		if side == physics.SideNone {
			continue
		}
		f.Collisions = append(f.Collisions, Collision{Ball: ball, Collider: id, Side: side})
		c.logger.Debug(f.Context(), "collision detected", "ball", ball, "collider", id, "side", side.String())
		c.bus.Publish(event.NewCollisionEvent(c, ball, id, side))
	}
}

// findBall returns the first ball in insertion order and the number of
// further balls that were ignored.
func findBall(store *entity.Store) (ball entity.ID, ignored int, ok bool) {
	for id := range store.Query(entity.KindBall|entity.KindPosition|entity.KindShape, 0) {
		if !ok {
			ball, ok = id, true
			continue
		}
		ignored++
	}
	return ball, ignored, ok
}

// ResolutionSystem turns recorded collisions into velocity sign flips
type ResolutionSystem struct {
	logger *logging.Logger
	bus    *event.Bus

	// DedupeAxisFlips flips each axis at most once per frame
	DedupeAxisFlips bool
}

// Name implements System
func (*ResolutionSystem) Name() string { return "resolution" }

// Update applies collisions in the order they were detected
func (r *ResolutionSystem) Update(f *Frame) {
	var flippedX, flippedY bool
	for _, hit := range f.Collisions {
		if r.DedupeAxisFlips {
			if hit.Side.Horizontal() && flippedX || hit.Side.Vertical() && flippedY {
				continue
			}
		}
		vel, err := f.Store.Velocity(hit.Ball)
		if err != nil {
			r.logger.Debug(f.Context(), "resolution skipped collision", "ball", hit.Ball, "error", err.Error())
			continue
		}
		vel = physics.Reflect(vel, hit.Side)
		if err := f.Store.SetVelocity(hit.Ball, vel); err != nil {
			continue
		}
		flippedX = flippedX || hit.Side.Horizontal()
		flippedY = flippedY || hit.Side.Vertical()
		f.Bounces++
		r.bus.Publish(event.NewBounceEvent(r, hit.Ball, hit.Side, vel))
	}
}

// ProjectionSystem copies 2D positions into render transforms
type ProjectionSystem struct {
	logger *logging.Logger
}

// Name implements System
func (*ProjectionSystem) Name() string { return "projection" }

// Update writes Translation = (x, y, 0)
func (p *ProjectionSystem) Update(f *Frame) {
	for id := range f.Store.Query(entity.KindPosition|entity.KindTransform, 0) {
		pos, err := f.Store.Position(id)
		if err != nil {
			p.logger.Debug(f.Context(), "projection skipped entity", "entity", id, "error", err.Error())
			continue
		}
		err = f.Store.SetTransform(id, entity.Transform{
			Translation: [3]float32{float32(pos.X), float32(pos.Y), 0},
		})
		if err != nil {
			p.logger.Debug(f.Context(), "projection skipped entity", "entity", id, "error", err.Error())
		}
	}
}

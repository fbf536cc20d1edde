package engine

import (
	"context"

	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// Collision records one ball/collider overlap detected during a frame
type Collision struct {
	Ball     entity.ID
	Collider entity.ID
	Side     physics.Side
}

// Frame is the per-step context handed to every system. The store is only
// lent for the duration of Simulation.Step.
type Frame struct {
	ctx        context.Context
	Store      *entity.Store
	DeltaTime  float64
	Tick       uint64
	Collisions []Collision
	Bounces    int
}

// Context returns the context the frame was stepped with
func (f *Frame) Context() context.Context {
	if f.ctx == nil {
		return context.Background()
	}
	return f.ctx
}

// FrameStats summarizes a completed step
type FrameStats struct {
	Tick       uint64
	Collisions int
	Bounces    int
}

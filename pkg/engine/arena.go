package engine

import (
	"context"

	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/event"
	"github.com/opd-ai/go-pong/pkg/logging"
	"github.com/opd-ai/go-pong/pkg/physics"
)

// Arena lists the entities spawned for a match
type Arena struct {
	Ball        entity.ID
	LeftPaddle  entity.ID
	RightPaddle entity.ID
	Walls       []entity.ID

	spawned bool
}

// SpawnArena creates the ball, both paddles and, when enabled, the top and
// bottom walls. Placement is derived from the window size with the origin at
// the centre of the screen.
func (s *Simulation) SpawnArena() (Arena, error) {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return Arena{}, logging.WrapError(err, "spawn arena")
	}
	ctx := logging.WithCorrelationID(context.Background(), s.runID)

	halfW := cfg.Window.Width / 2
	halfH := cfg.Window.Height / 2
	paddleX := halfW - cfg.Paddle.Padding

	arena := Arena{spawned: true}
	arena.Ball = s.spawn(ctx, entity.Ball(s.ServeVelocity(), cfg.Ball.Size), entity.KindBall)
	arena.LeftPaddle = s.spawn(ctx,
		entity.Paddle(physics.Vector2D{X: -paddleX}, cfg.Paddle.Width, cfg.Paddle.Height),
		entity.KindPaddle)
	arena.RightPaddle = s.spawn(ctx,
		entity.Paddle(physics.Vector2D{X: paddleX}, cfg.Paddle.Width, cfg.Paddle.Height),
		entity.KindPaddle)

	if cfg.Arena.Walls {
		wallY := halfH + cfg.Arena.WallThickness/2
		for _, y := range []float64{wallY, -wallY} {
			id := s.spawn(ctx, entity.Wall(physics.Vector2D{Y: y}, cfg.Window.Width, cfg.Arena.WallThickness), entity.KindCollider)
			arena.Walls = append(arena.Walls, id)
		}
	}

	s.arena = arena
	s.logger.Info(ctx, "arena spawned",
		"ball", arena.Ball,
		"left_paddle", arena.LeftPaddle,
		"right_paddle", arena.RightPaddle,
		"walls", len(arena.Walls))
	return arena, nil
}

func (s *Simulation) spawn(ctx context.Context, b entity.Bundle, role entity.Kind) entity.ID {
	id := s.store.Spawn(b)
	s.logger.Debug(ctx, "entity spawned", "entity", id, "role", role.String())
	s.bus.Publish(event.NewSpawnEvent(s, id, role))
	return id
}

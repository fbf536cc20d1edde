// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-pong/pkg/engine"
	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/logging"
)

// Button names registered with engo
const (
	ButtonLeftUp    = "leftUp"
	ButtonLeftDown  = "leftDown"
	ButtonRightUp   = "rightUp"
	ButtonRightDown = "rightDown"
)

// InputPriority runs input before the simulation step
const InputPriority = 20

// PaddleControl binds an up and a down button to one paddle
type PaddleControl struct {
	Paddle entity.ID
	Up     string
	Down   string
}

// InputSystem moves paddles while their buttons are held
type InputSystem struct {
	sim      *engine.Simulation
	controls []PaddleControl
	logger   *logging.Logger

	// pressed reports whether a button is held
	pressed func(name string) bool
}

// NewInputSystem creates a new input system for both paddles of the arena
func NewInputSystem(sim *engine.Simulation, logger *logging.Logger) *InputSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	arena := sim.Arena()
	return &InputSystem{
		sim: sim,
		controls: []PaddleControl{
			{Paddle: arena.LeftPaddle, Up: ButtonLeftUp, Down: ButtonLeftDown},
			{Paddle: arena.RightPaddle, Up: ButtonRightUp, Down: ButtonRightDown},
		},
		logger:  logger.With("component", "input"),
		pressed: func(name string) bool { return engo.Input.Button(name).Down() },
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(ecs.BasicEntity) {}

// Priority implements ecs.Prioritizer
func (is *InputSystem) Priority() int { return InputPriority }

// Update polls the buttons and moves the paddles
func (is *InputSystem) Update(dt float32) {
	for _, c := range is.controls {
		direction := Direction(is.pressed(c.Up), is.pressed(c.Down))
		if direction == 0 {
			continue
		}
		if err := is.sim.MovePaddle(c.Paddle, direction); err != nil {
			is.logger.Debug(context.Background(), "paddle move failed", "paddle", c.Paddle, "error", err.Error())
		}
	}
}

// Direction folds two held buttons into a MovePaddle direction
func Direction(up, down bool) float64 {
	switch {
	case up && !down:
		return engine.Up
	case down && !up:
		return engine.Down
	}
	return 0
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonLeftUp, engo.KeyW)
	engo.Input.RegisterButton(ButtonLeftDown, engo.KeyS)
	engo.Input.RegisterButton(ButtonRightUp, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonRightDown, engo.KeyArrowDown)
}

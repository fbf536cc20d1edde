// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Default simulation constants. Magnitudes are in pixels per tick at a
// time step of 1.
const (
	DefaultWindowWidth   = 1280
	DefaultWindowHeight  = 720
	DefaultBallSize      = 5
	DefaultBallSpeed     = 5
	DefaultPaddleSpeed   = 1
	DefaultPaddleWidth   = 10
	DefaultPaddleHeight  = 50
	DefaultPaddlePadding = 50
	DefaultWallThickness = 10
	DefaultTimeStep      = 1
	DefaultTickRate      = 60
	MaxTickRate          = 1000
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains configuration for a Pong game
type GameConfig struct {
	Window  WindowConfig  `json:"window"`
	Ball    BallConfig    `json:"ball"`
	Paddle  PaddleConfig  `json:"paddle"`
	Arena   ArenaConfig   `json:"arena"`
	Physics PhysicsConfig `json:"physics"`
}

// WindowConfig describes the playfield resolution. The simulation's origin
// is the center of the window.
type WindowConfig struct {
	Title  string  `json:"title"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BallConfig contains ball configuration. The starting velocity is
// (DirectionX, DirectionY) * Speed.
type BallConfig struct {
	Size       float64 `json:"size"`
	Speed      float64 `json:"speed"`
	DirectionX float64 `json:"directionX"`
	DirectionY float64 `json:"directionY"`
}

// PaddleConfig contains paddle configuration
type PaddleConfig struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Speed   float64 `json:"speed"`
	Padding float64 `json:"padding"`
}

// ArenaConfig controls the boundary colliders
type ArenaConfig struct {
	Walls         bool    `json:"walls"`
	WallThickness float64 `json:"wallThickness"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	TimeStep        float64 `json:"timeStep"`
	TickRate        int     `json:"tickRate"`
	DedupeAxisFlips bool    `json:"dedupeAxisFlips"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("cannot save nil config: %w", ErrInvalidConfig)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Title:  "Go Pong",
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Ball: BallConfig{
			Size:       DefaultBallSize,
			Speed:      DefaultBallSpeed,
			DirectionX: -1,
			DirectionY: 1,
		},
		Paddle: PaddleConfig{
			Width:   DefaultPaddleWidth,
			Height:  DefaultPaddleHeight,
			Speed:   DefaultPaddleSpeed,
			Padding: DefaultPaddlePadding,
		},
		Arena: ArenaConfig{
			Walls:         true,
			WallThickness: DefaultWallThickness,
		},
		Physics: PhysicsConfig{
			TimeStep:        DefaultTimeStep,
			TickRate:        DefaultTickRate,
			DedupeAxisFlips: false,
		},
	}
}

// Validate checks that the configuration describes a playable arena
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0, "window width must be positive, got %v", c.Window.Width)
	check(c.Window.Height > 0, "window height must be positive, got %v", c.Window.Height)
	check(c.Ball.Size > 0, "ball size must be positive, got %v", c.Ball.Size)
	check(c.Ball.Speed >= 0, "ball speed must not be negative, got %v", c.Ball.Speed)
	check(c.Paddle.Width > 0, "paddle width must be positive, got %v", c.Paddle.Width)
	check(c.Paddle.Height > 0, "paddle height must be positive, got %v", c.Paddle.Height)
	check(c.Paddle.Speed >= 0, "paddle speed must not be negative, got %v", c.Paddle.Speed)
	check(c.Paddle.Padding >= 0 && c.Paddle.Padding < c.Window.Width/2,
		"paddle padding must lie within half the window width, got %v", c.Paddle.Padding)
	check(!c.Arena.Walls || c.Arena.WallThickness > 0,
		"wall thickness must be positive when walls are enabled, got %v", c.Arena.WallThickness)
	check(c.Physics.TimeStep > 0, "time step must be positive, got %v", c.Physics.TimeStep)
	check(c.Physics.TickRate > 0 && c.Physics.TickRate <= MaxTickRate,
		"tick rate must lie in (0, %d], got %v", MaxTickRate, c.Physics.TickRate)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

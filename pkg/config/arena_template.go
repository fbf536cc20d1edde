package config

import (
	"fmt"
	"sort"
)

// ArenaTemplate is a named preset for the playfield geometry
type ArenaTemplate struct {
	Name        string
	Description string
	Window      WindowConfig
	Ball        BallConfig
	Paddle      PaddleConfig
	Arena       ArenaConfig
}

var arenaTemplates = map[string]ArenaTemplate{
	"classic": {
		Name:        "Classic",
		Description: "1280x720 window with the standard paddle and ball sizes",
		Window:      WindowConfig{Title: "Go Pong", Width: DefaultWindowWidth, Height: DefaultWindowHeight},
		Ball:        BallConfig{Size: DefaultBallSize, Speed: DefaultBallSpeed, DirectionX: -1, DirectionY: 1},
		Paddle: PaddleConfig{
			Width: DefaultPaddleWidth, Height: DefaultPaddleHeight,
			Speed: DefaultPaddleSpeed, Padding: DefaultPaddlePadding,
		},
		Arena: ArenaConfig{Walls: true, WallThickness: DefaultWallThickness},
	},
	"small": {
		Name:        "Small",
		Description: "640x360 window, same speeds, shorter rallies",
		Window:      WindowConfig{Title: "Go Pong", Width: 640, Height: 360},
		Ball:        BallConfig{Size: DefaultBallSize, Speed: DefaultBallSpeed, DirectionX: -1, DirectionY: 1},
		Paddle: PaddleConfig{
			Width: DefaultPaddleWidth, Height: DefaultPaddleHeight,
			Speed: DefaultPaddleSpeed, Padding: 30,
		},
		Arena: ArenaConfig{Walls: true, WallThickness: DefaultWallThickness},
	},
	"open": {
		Name:        "Open",
		Description: "classic layout without top and bottom walls",
		Window:      WindowConfig{Title: "Go Pong", Width: DefaultWindowWidth, Height: DefaultWindowHeight},
		Ball:        BallConfig{Size: DefaultBallSize, Speed: DefaultBallSpeed, DirectionX: -1, DirectionY: 0},
		Paddle: PaddleConfig{
			Width: DefaultPaddleWidth, Height: DefaultPaddleHeight,
			Speed: DefaultPaddleSpeed, Padding: DefaultPaddlePadding,
		},
		Arena: ArenaConfig{Walls: false},
	},
}

// GetArenaTemplate returns the named template, or nil if it does not exist
func GetArenaTemplate(name string) *ArenaTemplate {
	t, ok := arenaTemplates[name]
	if !ok {
		return nil
	}
	return &t
}

// ListArenaTemplates returns the available template keys in sorted order
func ListArenaTemplates() []string {
	names := make([]string, 0, len(arenaTemplates))
	for name := range arenaTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyArenaTemplate replaces the geometry sections of config with the
// template's. Physics settings are left alone.
func ApplyArenaTemplate(config *GameConfig, name string) error {
	t := GetArenaTemplate(name)
	if t == nil {
		return fmt.Errorf("unknown arena template %q: %w", name, ErrInvalidConfig)
	}
	config.Window = t.Window
	config.Ball = t.Ball
	config.Paddle = t.Paddle
	config.Arena = t.Arena
	return nil
}

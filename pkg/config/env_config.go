package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvWindowWidth     = "PONG_WINDOW_WIDTH"
	EnvWindowHeight    = "PONG_WINDOW_HEIGHT"
	EnvBallSpeed       = "PONG_BALL_SPEED"
	EnvPaddleSpeed     = "PONG_PADDLE_SPEED"
	EnvTimeStep        = "PONG_TIME_STEP"
	EnvTickRate        = "PONG_TICK_RATE"
	EnvDedupeAxisFlips = "PONG_DEDUPE_AXIS_FLIPS"
	EnvArenaTemplate   = "PONG_ARENA"
)

// ApplyEnvironmentOverrides applies PONG_* environment variables on top of
// config. An arena template is applied first so that the individual
// overrides win. Unparseable values keep the current setting.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	if name := getEnvOrDefault(EnvArenaTemplate, ""); name != "" {
		if err := ApplyArenaTemplate(config, name); err != nil {
			return err
		}
	}

	config.Window.Width = getEnvAsFloatOrDefault(EnvWindowWidth, config.Window.Width)
	config.Window.Height = getEnvAsFloatOrDefault(EnvWindowHeight, config.Window.Height)
	config.Ball.Speed = getEnvAsFloatOrDefault(EnvBallSpeed, config.Ball.Speed)
	config.Paddle.Speed = getEnvAsFloatOrDefault(EnvPaddleSpeed, config.Paddle.Speed)
	config.Physics.TimeStep = getEnvAsFloatOrDefault(EnvTimeStep, config.Physics.TimeStep)
	config.Physics.TickRate = getEnvAsIntOrDefault(EnvTickRate, config.Physics.TickRate)
	config.Physics.DedupeAxisFlips = getEnvAsBoolOrDefault(EnvDedupeAxisFlips, config.Physics.DedupeAxisFlips)

	return config.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// cmd/pong/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-pong/pkg/config"
	"github.com/opd-ai/go-pong/pkg/engine"
	"github.com/opd-ai/go-pong/pkg/logging"
	engorender "github.com/opd-ai/go-pong/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal', 'engo' or 'headless'")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (Engo only)")
	width := flag.Int("width", 0, "Arena width in world units (overrides config)")
	height := flag.Int("height", 0, "Arena height in world units (overrides config)")
	frames := flag.Int("frames", 0, "Frames to simulate before printing the final state; 0 runs until interrupted (headless only)")
	healthAddr := flag.String("health", "", "Address for /health, /ready and /state endpoints, e.g. ':8080' (headless only)")
	logPath := flag.String("log", "pong.log", "Log file (terminal only)")
	sound := flag.Bool("sound", false, "Play bounce and serve tones (terminal only)")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, err := loadConfig(ctx, *configPath, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	if *width > 0 {
		gameConfig.Window.Width = float64(*width)
	}
	if *height > 0 {
		gameConfig.Window.Height = float64(*height)
	}
	if err := gameConfig.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *renderer {
	case "engo":
		sim, err := newSimulation(gameConfig, logger)
		if err != nil {
			logger.Error(ctx, "Failed to spawn arena", err)
			os.Exit(1)
		}
		engorender.Run(sim, *fullscreen, logger)
	case "headless":
		sim, err := newSimulation(gameConfig, logger)
		if err != nil {
			logger.Error(ctx, "Failed to spawn arena", err)
			os.Exit(1)
		}
		opts := headlessOptions{Frames: *frames, HealthAddr: *healthAddr}
		if err := runHeadless(ctx, sim, opts, os.Stdout, logger); err != nil {
			logger.Error(ctx, "Headless run failed", err)
			os.Exit(1)
		}
	case "terminal":
		opts := terminalOptions{LogPath: *logPath, Sound: *sound}
		if err := runTerminal(ctx, gameConfig, opts); err != nil {
			logger.Error(ctx, "Terminal run failed", err)
			os.Exit(1)
		}
	default:
		logger.Error(ctx, "Unknown renderer", nil, "renderer", *renderer)
		os.Exit(2)
	}
}

// loadConfig reads the file at path, falling back to defaults when it does
// not exist, and applies PONG_* environment overrides.
func loadConfig(ctx context.Context, path string, logger *logging.Logger) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, logging.WrapError(err, "apply environment configuration")
	}
	return gameConfig, nil
}

func newSimulation(cfg *config.GameConfig, logger *logging.Logger) (*engine.Simulation, error) {
	sim := engine.NewSimulation(cfg, engine.WithLogger(logger))
	if _, err := sim.SpawnArena(); err != nil {
		return nil, err
	}
	return sim, nil
}

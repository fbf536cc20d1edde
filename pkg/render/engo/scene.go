// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-pong/pkg/engine"
	"github.com/opd-ai/go-pong/pkg/entity"
	"github.com/opd-ai/go-pong/pkg/logging"
)

// SimulationPriority runs the simulation after input and before rendering
const SimulationPriority = 10

// maxStepsPerFrame bounds catch-up after a stall
const maxStepsPerFrame = 5

// SimulationSystem steps the simulation at the configured tick rate and
// mirrors the result into the renderer.
type SimulationSystem struct {
	sim         *engine.Simulation
	renderer    entity.Renderer
	logger      *logging.Logger
	tickRate    float64
	accumulator float64
}

// NewSimulationSystem creates the system driving sim from engo frames
func NewSimulationSystem(sim *engine.Simulation, renderer entity.Renderer, logger *logging.Logger) *SimulationSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SimulationSystem{
		sim:      sim,
		renderer: renderer,
		logger:   logger.With("component", "engo_simulation"),
		tickRate: float64(sim.Config().Physics.TickRate),
	}
}

// Remove satisfies the ecs.System interface
func (ss *SimulationSystem) Remove(ecs.BasicEntity) {}

// Priority implements ecs.Prioritizer
func (ss *SimulationSystem) Priority() int { return SimulationPriority }

// Update runs as many fixed steps as the elapsed time allows
func (ss *SimulationSystem) Update(dt float32) {
	ss.accumulator += float64(dt) * ss.tickRate
	steps := 0
	for ss.accumulator >= 1 && steps < maxStepsPerFrame {
		ss.sim.Step(0)
		ss.sim.CheckGoal()
		ss.accumulator--
		steps++
	}
	if steps == maxStepsPerFrame && ss.accumulator >= 1 {
		ss.logger.Debug(context.Background(), "dropping simulation backlog", "ticks", int(ss.accumulator))
		ss.accumulator = 0
	}
	if ss.renderer != nil {
		entity.Draw(ss.sim.Store(), ss.renderer)
	}
}

// GameScene represents the main game scene in Engo
type GameScene struct {
	sim    *engine.Simulation
	logger *logging.Logger

	// Rendering components
	camera   *Camera
	assets   *AssetManager
	renderer *EngoRenderer
	net      *sprite

	input      *InputSystem
	simulation *SimulationSystem
}

// NewGameScene creates a new game scene around a spawned simulation
func NewGameScene(sim *engine.Simulation, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		sim:    sim,
		logger: logger.With("component", "engo_scene"),
		assets: NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	ctx := context.Background()
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(ctx, "unexpected updater", nil)
		return
	}
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	window := scene.sim.Config().Window
	scene.camera = NewCamera(engo.GameWidth(), engo.GameHeight())
	scene.camera.FitArena(window.Width, window.Height)

	if err := scene.assets.LoadAssets(int(engo.GameHeight())); err != nil {
		scene.logger.Error(ctx, "failed to load assets", err)
	} else {
		scene.addNet(renderSystem)
	}

	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, scene.assets)

	SetupInputBindings()
	scene.input = NewInputSystem(scene.sim, scene.logger)
	world.AddSystem(scene.input)

	scene.simulation = NewSimulationSystem(scene.sim, scene.renderer, scene.logger)
	world.AddSystem(scene.simulation)

	scene.logger.Info(ctx, "scene ready", "width", engo.GameWidth(), "height", engo.GameHeight())
}

// addNet places the dashed center line behind the game objects
func (scene *GameScene) addNet(renderSystem *common.RenderSystem) {
	texture := scene.assets.NetTexture()
	if texture == nil {
		return
	}
	net := &sprite{BasicEntity: ecs.NewBasic()}
	net.RenderComponent = common.RenderComponent{Drawable: texture, Color: NetColor}
	net.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: engo.GameWidth()/2 - texture.Width()/2},
		Width:    texture.Width(),
		Height:   texture.Height(),
	}
	renderSystem.Add(&net.BasicEntity, &net.RenderComponent, &net.SpaceComponent)
	scene.net = net
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	score := scene.sim.Score()
	scene.logger.Info(context.Background(), "scene exit",
		"tick", scene.sim.Tick(), "left", score.Left, "right", score.Right)
}

// Run opens a window and blocks until it is closed
func Run(sim *engine.Simulation, fullscreen bool, logger *logging.Logger) {
	window := sim.Config().Window
	engo.Run(engo.RunOptions{
		Title:      window.Title,
		Width:      int(window.Width),
		Height:     int(window.Height),
		Fullscreen: fullscreen,
		VSync:      true,
	}, NewGameScene(sim, logger))
}

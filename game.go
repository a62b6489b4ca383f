package main

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ghostrun/ecs/system"
	"github.com/milk9111/ghostrun/prefabs"
	"github.com/milk9111/ghostrun/script"
	"github.com/milk9111/ghostrun/sim"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	baseZoom   = 0.35
)

type Config struct {
	PlayerPath string
	LevelPath  string
	ScriptPath string
	Debug      bool
	Watch      bool
}

type Game struct {
	cfg     Config
	world   *sim.World
	input   *Input
	driver  *script.Driver
	watcher *prefabs.Watcher
	log     *slog.Logger

	cam    camera
	debug  bool
	frames int
}

func NewGame(cfg Config, log *slog.Logger) (*Game, error) {
	player, err := prefabs.LoadPlayerSpec(cfg.PlayerPath)
	if err != nil {
		return nil, err
	}
	level, err := prefabs.LoadLevelSpec(cfg.LevelPath)
	if err != nil {
		return nil, err
	}

	world, err := sim.NewWorld(sim.Options{Player: player, Level: level, Logger: log})
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		input: NewInput(world.DashVariant()),
		log:   log,
		debug: cfg.Debug,
		cam:   camera{zoom: baseZoom, screenW: baseWidth, screenH: baseHeight},
	}
	if err := g.useInput(); err != nil {
		return nil, err
	}

	pos := world.Character().Position()
	g.cam.centerX, g.cam.centerY = pos.Y, pos.Z

	if cfg.Watch {
		w, err := prefabs.NewWatcher(watchDirs()...)
		if err != nil {
			log.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// useInput drives the player from the script when one is configured and
// from the keyboard otherwise.
func (g *Game) useInput() error {
	if g.cfg.ScriptPath == "" {
		g.driver = nil
		g.world.SetInput(g.input)
		return nil
	}
	d, err := script.Load(g.cfg.ScriptPath, g.world.State, script.WithLogger(g.log))
	if err != nil {
		return err
	}
	g.driver = d
	g.world.SetInput(d)
	return nil
}

func (g *Game) source() system.InputSource {
	if g.driver != nil && !g.driver.Done() {
		return g.driver
	}
	return g.input
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.world.Respawn(); err != nil {
			g.log.Warn("respawn failed", "err", err)
		}
	}

	g.pollReload()
	g.world.SetInput(g.source())
	g.world.Step()
	for _, evt := range g.world.ECS.Events().Drain() {
		g.log.Debug("player state", "event", evt.Type, "entity", evt.Entity.String(), "value", evt.Data)
	}

	bounds := g.world.Bounds()
	pos := g.world.Character().Position()
	g.cam.follow(cp.Vector{X: pos.Y, Y: pos.Z}, bounds.Width, bounds.Height)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x16, G: 0x18, B: 0x20, A: 0xff})
	drawSpace(screen, g.world.Physics.Space(), g.cam)
	if g.debug {
		drawProbes(screen, g.world, g.cam)
		ebitenutil.DebugPrint(screen, debugText(g.world, ebiten.ActualFPS()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

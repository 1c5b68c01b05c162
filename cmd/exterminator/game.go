package main

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-exterminator/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-exterminator/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-exterminator/pkg/ui"
	"go.uber.org/zap"
)

const stickDeadzone = 0.2

type Game struct {
	world   *simulation.World
	watcher *simulation.ConfigWatcher
	log     *zap.SugaredLogger

	cave *ebiten.Image

	panel *ui.UIPanel

	widgetMaxSpeed         *ui.Slider
	widgetMaxForce         *ui.Slider
	widgetChaseRadius      *ui.Slider
	widgetAvoidRadius      *ui.Slider
	widgetSeparationRadius *ui.Slider
	widgetPlayerWeight     *ui.Slider
	widgetCohesionWeight   *ui.Slider
	widgetAlignmentWeight  *ui.Slider
	widgetMaxAgents        *ui.Slider
	widgetFireRate         *ui.Slider
	widgetGodMode          *ui.Checkbox

	last simulation.StepReport
}

func newGame(w *simulation.World, cave image.Image, watcher *simulation.ConfigWatcher, log *zap.SugaredLogger) *Game {
	g := &Game{world: w, watcher: watcher, log: log}
	if cave != nil {
		g.cave = ebiten.NewImageFromImage(cave)
	}

	cfg := w.Config()
	panel := ui.NewUIPanel(w.Arena().Width()-250, 10, 240, w.Arena().Height()-20, "Tuning (Tab)")

	panel.AddSection("Swarm")
	g.widgetMaxSpeed = panel.AddSlider("Max Speed", 50, 500, cfg.Agent.MaxSpeed)
	g.widgetMaxForce = panel.AddSlider("Max Force", 1, 60, cfg.Agent.MaxForce)
	g.widgetChaseRadius = panel.AddSlider("Chase Radius", 0, 400, cfg.Agent.ChaseRadius)
	g.widgetAvoidRadius = panel.AddSlider("Avoid Radius", 0, 300, cfg.Agent.AvoidRadius)
	g.widgetSeparationRadius = panel.AddSlider("Separation Radius", 0, 100, cfg.Agent.SeparationRadius)
	g.widgetMaxAgents = panel.AddSlider("Max Agents", 1, 200, float64(cfg.Swarm.MaxAgents))

	panel.AddSection("Weights")
	g.widgetPlayerWeight = panel.AddSlider("Player", 0, 10, cfg.Agent.PlayerWeight)
	g.widgetCohesionWeight = panel.AddSlider("Cohesion", 0, 5, cfg.Agent.CohesionWeight)
	g.widgetAlignmentWeight = panel.AddSlider("Alignment", 0, 5, cfg.Agent.AlignmentWeight)

	panel.AddSection("Player")
	g.widgetFireRate = panel.AddSlider("Fire Interval", 0.02, 1, cfg.Player.FireRate)
	g.widgetGodMode = panel.AddCheckbox("God Mode (G)", w.GodMode())

	panel.AddSection("Game")
	panel.AddButton("New Game (N)", w.NewGame)
	panel.AddButton("Next Level (Space)", g.nextLevel)

	panel.Visible = false
	g.panel = panel
	return g
}

func (g *Game) nextLevel() {
	if g.world.LevelComplete() {
		g.world.NextLevel()
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.drainConfig()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.Visible = !g.panel.Visible
	}
	g.panel.Update(ui.ReadPointer())
	g.applyPanel()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.world.SetGodMode(!g.world.GodMode())
		g.widgetGodMode.Set(g.world.GodMode())
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.world.NewGame()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.nextLevel()
	}

	g.last = g.world.Step(1/float64(ebiten.TPS()), readInput())
	return nil
}

// readInput maps WASD to movement and the arrow keys to aim. A gamepad's
// sticks take over when deflected.
func readInput() simulation.Input {
	var in simulation.Input
	axis := func(neg, pos ebiten.Key) float64 {
		v := 0.0
		if ebiten.IsKeyPressed(neg) {
			v--
		}
		if ebiten.IsKeyPressed(pos) {
			v++
		}
		return v
	}
	in.Move = geometry.Vector2D{X: axis(ebiten.KeyA, ebiten.KeyD), Y: axis(ebiten.KeyW, ebiten.KeyS)}
	in.Aim = geometry.Vector2D{X: axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight), Y: axis(ebiten.KeyArrowUp, ebiten.KeyArrowDown)}

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		id := ids[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.Move = geometry.Vector2D{X: lx, Y: ly}
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			in.Aim = geometry.Vector2D{X: rx, Y: ry}
		}
	}
	return in
}

// applyPanel pushes edited sliders into the live world.
func (g *Game) applyPanel() {
	if g.widgetGodMode.Changed() {
		g.world.SetGodMode(g.widgetGodMode.Value)
	}

	moved := false
	for _, s := range []*ui.Slider{
		g.widgetMaxSpeed, g.widgetMaxForce, g.widgetChaseRadius, g.widgetAvoidRadius,
		g.widgetSeparationRadius, g.widgetPlayerWeight, g.widgetCohesionWeight,
		g.widgetAlignmentWeight, g.widgetMaxAgents, g.widgetFireRate,
	} {
		// No short circuit: every slider's flag must be cleared.
		moved = s.Changed() || moved
	}
	if !moved {
		return
	}

	cfg := *g.world.Config()
	cfg.Agent.MaxSpeed = g.widgetMaxSpeed.Value
	cfg.Agent.InitialSpeed = min(cfg.Agent.InitialSpeed, cfg.Agent.MaxSpeed)
	cfg.Agent.MaxForce = g.widgetMaxForce.Value
	cfg.Agent.ChaseRadius = g.widgetChaseRadius.Value
	cfg.Agent.AvoidRadius = g.widgetAvoidRadius.Value
	cfg.Agent.SeparationRadius = g.widgetSeparationRadius.Value
	cfg.Agent.PlayerWeight = g.widgetPlayerWeight.Value
	cfg.Agent.CohesionWeight = g.widgetCohesionWeight.Value
	cfg.Agent.AlignmentWeight = g.widgetAlignmentWeight.Value
	cfg.Swarm.MaxAgents = int(math.Round(g.widgetMaxAgents.Value))
	cfg.Player.FireRate = g.widgetFireRate.Value
	cfg.World.GodMode = g.world.GodMode()
	g.world.ApplyTuning(&cfg)
}

// drainConfig applies a reloaded config file without blocking the frame.
func (g *Game) drainConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-g.watcher.Configs:
		if !ok {
			g.watcher = nil
			return
		}
		g.world.ApplyTuning(cfg)
		g.syncPanel()
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.Warnf("config reload: %v", err)
		}
	default:
	}
}

// syncPanel moves the widgets to the world's current tuning.
func (g *Game) syncPanel() {
	cfg := g.world.Config()
	set := func(s *ui.Slider, v float64) {
		s.SetValue(v)
		s.Changed()
	}
	set(g.widgetMaxSpeed, cfg.Agent.MaxSpeed)
	set(g.widgetMaxForce, cfg.Agent.MaxForce)
	set(g.widgetChaseRadius, cfg.Agent.ChaseRadius)
	set(g.widgetAvoidRadius, cfg.Agent.AvoidRadius)
	set(g.widgetSeparationRadius, cfg.Agent.SeparationRadius)
	set(g.widgetPlayerWeight, cfg.Agent.PlayerWeight)
	set(g.widgetCohesionWeight, cfg.Agent.CohesionWeight)
	set(g.widgetAlignmentWeight, cfg.Agent.AlignmentWeight)
	set(g.widgetMaxAgents, float64(cfg.Swarm.MaxAgents))
	set(g.widgetFireRate, cfg.Player.FireRate)
	g.widgetGodMode.Set(g.world.GodMode())
}

func (g *Game) Layout(w, h int) (int, int) {
	a := g.world.Arena()
	return int(a.Width()), int(a.Height())
}

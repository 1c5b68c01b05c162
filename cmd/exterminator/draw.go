package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-exterminator/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-exterminator/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-exterminator/pkg/obstacle"
	"golang.org/x/image/colornames"
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// rockShades tint the rock variants.
var rockShades = [obstacle.Variants]color.RGBA{
	colornames.Sienna,
	colornames.Saddlebrown,
	colornames.Peru,
	colornames.Dimgray,
	colornames.Slategray,
	colornames.Rosybrown,
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.world
	screen.Fill(colornames.Darkslategray)

	if g.cave != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(w.Arena().Min.X, w.Arena().Min.Y)
		screen.DrawImage(g.cave, op)
	}

	for _, o := range w.Obstacles().Obstacles() {
		r := o.Bounds()
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), rockShades[o.Variant], true)
	}

	agentColor := colornames.Crimson
	if w.Swarm().AvoidanceMode() {
		agentColor = colornames.Orange
	}
	for _, a := range w.Swarm().Agents() {
		drawBoid(screen, a, agentColor)
	}

	for _, b := range w.Player().Bullets() {
		r := b.Bounds()
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), colornames.Gold, false)
	}
	g.drawPlayer(screen)

	g.panel.Draw(screen)
	g.drawHUD(screen)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.world.Player()
	r := p.Bounds()
	body := colornames.Limegreen
	if g.world.GodMode() {
		body = colornames.Deepskyblue
	}
	if g.world.GameOver() {
		body = colornames.Gray
	}
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), body, true)

	// Walk cycle: a stripe that shifts with the animation frame.
	stripe := float32(r.Height) / 4
	vector.FillRect(screen, float32(r.X), float32(r.Y)+stripe*float32(p.Frame()), float32(r.Width), 2, colornames.Darkgreen, false)

	c := p.Center()
	tip := c.Add(geometry.NewVectorPolar(float64(r.Width), p.AimAngle()))
	vector.StrokeLine(screen, float32(c.X), float32(c.Y), float32(tip.X), float32(tip.Y), 2, colornames.White, true)
}

// drawBoid draws an agent as a triangle pointing along its velocity.
func drawBoid(screen *ebiten.Image, b *behavior.Boid, clr color.RGBA) {
	angle := math.Atan2(b.Vel.Y, b.Vel.X)

	tipX := b.Pos.X + math.Cos(angle)*12
	tipY := b.Pos.Y + math.Sin(angle)*12
	rightX := b.Pos.X + math.Cos(angle+2.5)*10
	rightY := b.Pos.Y + math.Sin(angle+2.5)*10
	leftX := b.Pos.X + math.Cos(angle-2.5)*10
	leftY := b.Pos.Y + math.Sin(angle-2.5)*10

	cr, cg, cb := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1,
		}
	}
	vertices := []ebiten.Vertex{vertex(tipX, tipY), vertex(rightX, rightY), vertex(leftX, leftY)}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.world
	msg := fmt.Sprintf("Score: %d   Lives: %d   Level: %d   Kills: %d/%d   Agents: %d",
		w.Score(), w.Lives(), w.Level(), w.LevelKills(), w.RequiredKills(), w.Swarm().Len())
	if w.GodMode() {
		msg += "   [GOD]"
	}
	msg += fmt.Sprintf("\nFPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrint(screen, msg)

	cx, cy := int(w.Arena().Width()/2), int(w.Arena().Height()/2)
	switch {
	case w.GameOver():
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("GAME OVER\nscore %d\npress N for a new game", w.Score()), cx-70, cy-20)
	case w.LevelComplete():
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LEVEL %d COMPLETE\npress Space to continue", w.Level()), cx-70, cy-20)
	}
}

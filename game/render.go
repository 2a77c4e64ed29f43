package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Orb palette: warm amber bodies over a dark backdrop.
var (
	orbColor    = rl.Color{R: 255, G: 176, B: 46, A: 255}
	glowColor   = rl.Color{R: 255, G: 140, B: 20, A: 255}
	trailColor  = rl.Color{R: 255, G: 200, B: 90, A: 255}
	centerColor = rl.Color{R: 90, G: 200, B: 120, A: 255}
)

// Draw renders one frame: center marker, orbs with their tier-gated trail and
// glow treatment, and the HUD.
func (l *Loop) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 24, A: 255})

	cfg := l.cfg
	features := FeaturesFor(l.controller.Mode())

	// Stand-in for the mascot: the simulation only needs its center point.
	rl.DrawCircleLines(int32(cfg.Derived.CenterX), int32(cfg.Derived.CenterY), 30, centerColor)

	for _, orb := range l.Frame() {
		if features.Trails {
			l.drawTrail(orb)
		}
		l.drawOrb(orb, features)
	}

	l.drawHUD()
	if l.showPanel {
		l.drawPanel()
	}

	rl.EndDrawing()
}

// drawTrail renders an orb's trail as segments fading toward the oldest point.
func (l *Loop) drawTrail(orb OrbFrame) {
	n := len(orb.Trail)
	for i := 1; i < n; i++ {
		a := orb.Trail[i-1]
		b := orb.Trail[i]
		c := trailColor
		c.A = uint8(30 + 170*i/n)
		rl.DrawLineV(rl.Vector2{X: a.X, Y: a.Y}, rl.Vector2{X: b.X, Y: b.Y}, c)
	}
}

// drawOrb renders one orb with the active glow tier.
func (l *Loop) drawOrb(orb OrbFrame, features Features) {
	r := l.cfg.Derived.OrbRadius32

	switch features.Glow {
	case GlowFull:
		// Layered additive halo
		for layer, scale := range []float32{2.4, 1.8, 1.3} {
			c := glowColor
			c.A = uint8(28 + layer*22)
			rl.DrawCircleV(rl.Vector2{X: orb.X, Y: orb.Y}, r*scale, c)
		}
	case GlowSimple:
		c := glowColor
		c.A = 60
		rl.DrawCircleV(rl.Vector2{X: orb.X, Y: orb.Y}, r*1.6, c)
	}

	rl.DrawCircleV(rl.Vector2{X: orb.X, Y: orb.Y}, r, orbColor)

	if features.RotationEffects {
		l.drawOrbSparks(orb, r)
	}
}

// drawOrbSparks renders the rotation-synced sparkle points around an orb.
func (l *Loop) drawOrbSparks(orb OrbFrame, r float32) {
	entity := l.orbs[orb.ID]
	rot := l.rotMap.Get(entity)

	for i := 0; i < 3; i++ {
		a := float64(rot.Angle)*2 + float64(i)*2*math.Pi/3
		x := orb.X + float32(math.Cos(a))*r*1.5
		y := orb.Y + float32(math.Sin(a))*r*1.5
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, 2, rl.White)
	}
}

// drawHUD renders the status line.
func (l *Loop) drawHUD() {
	m := l.monitor.Metrics()
	mode := l.controller.Mode()

	rl.DrawText(fmt.Sprintf("FPS: %.0f  score: %d  mode: %s", m.FPS, m.QualityScore, mode), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("excitation: %s  [E]", l.excitation), 10, 35, 20, rl.White)
	if !l.controller.Auto() {
		rl.DrawText("manual quality override  [A to release]", 10, 60, 20, rl.Yellow)
	}
	if l.paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}
}

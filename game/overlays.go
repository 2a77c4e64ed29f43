package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawPanel renders the control panel: quality override, orbit shape sliders,
// and the interaction toggle.
func (l *Loop) drawPanel() {
	cfg := l.cfg

	panelX := float32(cfg.Screen.Width) - 230
	panelY := float32(10)
	rl.DrawRectangle(int32(panelX)-10, int32(panelY)-5, 235, 235, rl.Color{R: 0, G: 0, B: 0, A: 180})

	// Quality tier override
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 26}, "Auto") {
		l.SetAuto()
	}
	if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 26}, "Quality") {
		l.SetMode(ModeQuality)
	}
	panelY += 32
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 26}, "Balanced") {
		l.SetMode(ModeBalanced)
	}
	if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 26}, "Performance") {
		l.SetMode(ModePerformance)
	}
	panelY += 44

	// Orbit radius
	rl.DrawText(fmt.Sprintf("orbit radius: %.0f", cfg.Orbs.OrbitRadius), int32(panelX), int32(panelY), 14, rl.RayWhite)
	panelY += 18
	newRadius := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 210, Height: 18},
		"", "",
		float32(cfg.Orbs.OrbitRadius), 50, 300,
	)
	panelY += 28

	// Speed multiplier
	rl.DrawText(fmt.Sprintf("speed: %.2fx", cfg.Orbs.Speed), int32(panelX), int32(panelY), 14, rl.RayWhite)
	panelY += 18
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 210, Height: 18},
		"", "",
		float32(cfg.Orbs.Speed), 0.1, 3,
	)
	panelY += 28

	if float64(newRadius) != cfg.Orbs.OrbitRadius || float64(newSpeed) != cfg.Orbs.Speed {
		l.Reconfigure(float64(newRadius), float64(newSpeed))
	}

	// Interaction toggle
	cfg.Orbs.Interaction = gui.CheckBox(
		rl.Rectangle{X: panelX, Y: panelY, Width: 18, Height: 18},
		"pointer interaction",
		cfg.Orbs.Interaction,
	)
}

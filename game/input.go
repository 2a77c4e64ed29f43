package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HandleInput processes window, keyboard, and pointer input for the graphical
// front end. Pointer events only register interaction sources; the simulation
// consumes and expires them on its own schedule.
func (l *Loop) HandleInput() {
	if l.state == loopStopped {
		return
	}

	// Mirror window visibility into the monitor so minimized frames do not
	// read as poor performance.
	l.SetVisible(!rl.IsWindowMinimized())

	if rl.IsKeyPressed(rl.KeySpace) {
		l.SetPaused(!l.paused)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		l.showPanel = !l.showPanel
	}

	// Manual quality override
	if rl.IsKeyPressed(rl.KeyQ) {
		l.SetMode(ModeQuality)
	}
	if rl.IsKeyPressed(rl.KeyB) {
		l.SetMode(ModeBalanced)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		l.SetMode(ModePerformance)
	}
	if rl.IsKeyPressed(rl.KeyA) {
		l.SetAuto()
	}

	// Cycle excitation for demonstration; a real host drives this externally.
	if rl.IsKeyPressed(rl.KeyE) {
		l.SetExcitation((l.excitation + 1) % 4)
	}

	if !l.cfg.Orbs.Interaction {
		return
	}

	mouse := rl.GetMousePosition()

	// Hover: pointer within a slightly padded orb radius.
	hoverRadius := l.cfg.Derived.OrbRadius32 * 1.5
	for i, entity := range l.orbs {
		inter := l.interMap.Get(entity)
		if inter.Dormant {
			continue
		}
		pos := l.posMap.Get(entity)
		dx := mouse.X - pos.X
		dy := mouse.Y - pos.Y
		l.SetHovered(i, dx*dx+dy*dy < hoverRadius*hoverRadius)
	}

	// Click/tap: register a repulsion source at the pointer.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		l.AddRepulsion(mouse.X, mouse.Y)
	}
}

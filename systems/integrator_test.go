package systems

import (
	"math"
	"testing"

	"github.com/Angleito/seiron-orbs/components"
)

func TestClampDT(t *testing.T) {
	tests := []struct {
		name string
		dt   float32
		want float32
	}{
		{"normal frame", 0.016, 0.016},
		{"upper bound", 0.1, 0.1},
		{"tab-resume spike", 5.0, 0.1},
		{"negative", -0.5, 0},
		{"zero", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampDT(tc.dt, 0.1); got != tc.want {
				t.Errorf("ClampDT(%f) = %f, want %f", tc.dt, got, tc.want)
			}
		})
	}
}

func TestIntegrate_ZeroForceAdvancesByVelocity(t *testing.T) {
	for _, dt := range []float32{0, 0.004, 0.016, 0.033, 0.1} {
		pos := components.Position{X: 10, Y: 20}
		vel := components.Velocity{X: 30, Y: -40}

		// No acceleration, no damping: displacement is exactly velocity * dt
		Integrate(&pos, &vel, 0, 0, dt, 0, 1e9)

		wantX := 10 + 30*dt
		wantY := 20 - 40*dt
		if math.Abs(float64(pos.X-wantX)) > 1e-5 || math.Abs(float64(pos.Y-wantY)) > 1e-5 {
			t.Errorf("dt=%f: pos = (%f, %f), want (%f, %f)", dt, pos.X, pos.Y, wantX, wantY)
		}
		if vel.X != 30 || vel.Y != -40 {
			t.Errorf("dt=%f: velocity changed under zero force: (%f, %f)", dt, vel.X, vel.Y)
		}
	}
}

func TestIntegrate_SemiImplicitOrder(t *testing.T) {
	pos := components.Position{}
	vel := components.Velocity{}

	// Velocity must be updated before position: from rest with a=100, dt=0.1
	// position moves by (a*dt)*dt = 1, not 0.
	Integrate(&pos, &vel, 100, 0, 0.1, 0, 1e9)

	if math.Abs(float64(pos.X-1)) > 1e-4 {
		t.Errorf("expected semi-implicit step to move position by 1, got %f", pos.X)
	}
}

func TestIntegrate_SpeedClamp(t *testing.T) {
	pos := components.Position{}
	vel := components.Velocity{X: 1000, Y: 0}

	Integrate(&pos, &vel, 0, 0, 0.016, 0, 100)

	if speed := velocityMagnitude(vel.X, vel.Y); speed > 100.001 {
		t.Errorf("expected speed clamped to 100, got %f", speed)
	}
}

func TestIntegrate_SpikeDisplacementBound(t *testing.T) {
	// A simulated 5-second spike must be clamped before integration; the
	// per-frame displacement can then never exceed maxSpeed * maxDT.
	const maxSpeed = 600
	const maxDT = 0.1

	pos := components.Position{X: 100, Y: 100}
	vel := components.Velocity{X: maxSpeed, Y: 0}
	startX := pos.X

	dt := ClampDT(5.0, maxDT)
	Integrate(&pos, &vel, 0, 0, dt, 0, maxSpeed)

	if moved := pos.X - startX; moved > maxSpeed*maxDT+1e-3 {
		t.Errorf("displacement %f exceeds bound %f", moved, float32(maxSpeed*maxDT))
	}
}

func TestIntegrate_DampingSlowsVelocity(t *testing.T) {
	pos := components.Position{}
	vel := components.Velocity{X: 100, Y: 0}

	Integrate(&pos, &vel, 0, 0, 0.016, 2.0, 1e9)

	if vel.X >= 100 {
		t.Errorf("expected damping to reduce velocity, got %f", vel.X)
	}
	if vel.X <= 0 {
		t.Errorf("expected damping not to reverse velocity, got %f", vel.X)
	}
}

func TestAdvanceAngle(t *testing.T) {
	rot := components.Rotation{Angle: 0, AngVel: 1}
	AdvanceAngle(&rot, 0.5)
	if math.Abs(float64(rot.Angle-0.5)) > 1e-6 {
		t.Errorf("expected angle 0.5, got %f", rot.Angle)
	}

	// Wrapping stays in [0, 2pi)
	rot = components.Rotation{Angle: 6.2, AngVel: 1}
	AdvanceAngle(&rot, 0.2)
	if rot.Angle < 0 || rot.Angle >= 2*math.Pi {
		t.Errorf("expected wrapped angle in [0, 2pi), got %f", rot.Angle)
	}
}

func TestCorrupted(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		pos  components.Position
		vel  components.Velocity
		want bool
	}{
		{"clean", components.Position{X: 1, Y: 2}, components.Velocity{X: 3, Y: 4}, false},
		{"nan position", components.Position{X: nan, Y: 2}, components.Velocity{}, true},
		{"inf position", components.Position{X: 1, Y: inf}, components.Velocity{}, true},
		{"nan velocity", components.Position{}, components.Velocity{Y: nan}, true},
		{"inf velocity", components.Position{}, components.Velocity{X: inf}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Corrupted(&tc.pos, &tc.vel); got != tc.want {
				t.Errorf("Corrupted = %v, want %v", got, tc.want)
			}
		})
	}
}

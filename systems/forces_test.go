package systems

import (
	"math"
	"testing"
)

func TestSpring_PullsTowardTarget(t *testing.T) {
	tests := []struct {
		name           string
		px, py, tx, ty float32
		k              float32
		wantAX, wantAY float32
	}{
		{"right of target", 10, 0, 0, 0, 2, -20, 0},
		{"below target", 0, -5, 0, 5, 1, 0, 10},
		{"at target", 3, 3, 3, 3, 10, 0, 0},
		{"zero stiffness", 10, 10, 0, 0, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ax, ay := Spring(tc.px, tc.py, tc.tx, tc.ty, tc.k)
			if ax != tc.wantAX || ay != tc.wantAY {
				t.Errorf("Spring = (%f, %f), want (%f, %f)", ax, ay, tc.wantAX, tc.wantAY)
			}
		})
	}
}

func TestGravity_PointsTowardCenter(t *testing.T) {
	ax, ay := Gravity(100, 0, 0, 0, 1, 50, 1000, 10)
	if ax >= 0 {
		t.Errorf("expected pull in -x toward center, got ax=%f", ax)
	}
	if math.Abs(float64(ay)) > 1e-5 {
		t.Errorf("expected no y component on the x axis, got ay=%f", ay)
	}
}

func TestGravity_InverseSquareFalloff(t *testing.T) {
	aNear, _ := Gravity(100, 0, 0, 0, 1, 50, 1000, 10)
	aFar, _ := Gravity(200, 0, 0, 0, 1, 50, 1000, 10)

	// Doubling distance should quarter the magnitude
	ratio := aNear / aFar
	if math.Abs(float64(ratio)-4) > 0.01 {
		t.Errorf("expected 4x falloff at 2x distance, got ratio %f", ratio)
	}
}

func TestGravity_MinDistanceClamp(t *testing.T) {
	// At the center itself the clamp must keep the result finite
	ax, ay := Gravity(0, 0, 0, 0, 1, 50, 1000, 10)
	if !Finite2(ax, ay) {
		t.Fatalf("expected finite acceleration at zero distance, got (%f, %f)", ax, ay)
	}

	// Inside the clamp radius the magnitude must not exceed the clamped value
	axClamp, ayClamp := Gravity(10, 0, 0, 0, 1, 50, 1000, 10)
	axInside, ayInside := Gravity(1, 0, 0, 0, 1, 50, 1000, 10)
	magClamp := velocityMagnitude(axClamp, ayClamp)
	magInside := velocityMagnitude(axInside, ayInside)
	if magInside > magClamp+1e-3 {
		t.Errorf("expected clamped magnitude inside min distance: %f > %f", magInside, magClamp)
	}
}

func TestRepulsion_PushesAway(t *testing.T) {
	tests := []struct {
		name   string
		px, py float32
		sx, sy float32
	}{
		{"source left", 100, 100, 50, 100},
		{"source above", 100, 100, 100, 50},
		{"source diagonal", 100, 100, 80, 80},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ax, ay := Repulsion(tc.px, tc.py, tc.sx, tc.sy, 1000, 10)

			// Acceleration must point from source toward the point
			dx := tc.px - tc.sx
			dy := tc.py - tc.sy
			if dot := ax*dx + ay*dy; dot <= 0 {
				t.Errorf("expected repulsion away from source, dot=%f", dot)
			}
		})
	}
}

func TestRepulsion_FiniteAtSource(t *testing.T) {
	ax, ay := Repulsion(100, 100, 100, 100, 1e6, 10)
	if !Finite2(ax, ay) {
		t.Errorf("expected finite repulsion at zero distance, got (%f, %f)", ax, ay)
	}
}

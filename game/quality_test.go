package game

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   PerformanceMode
		wantOK bool
	}{
		{"quality", ModeQuality, true},
		{"balanced", ModeBalanced, true},
		{"performance", ModePerformance, true},
		{"turbo", ModeBalanced, false},
		{"", ModeBalanced, false},
	}

	for _, tc := range tests {
		got, ok := ParseMode(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFeaturesFor(t *testing.T) {
	q := FeaturesFor(ModeQuality)
	if q.MaxOrbs != 7 || !q.Collision || !q.Trails || q.Glow != GlowFull || !q.RotationEffects {
		t.Errorf("quality features wrong: %+v", q)
	}

	b := FeaturesFor(ModeBalanced)
	if b.MaxOrbs != 5 || !b.Collision || !b.Trails || b.Glow != GlowSimple || b.RotationEffects {
		t.Errorf("balanced features wrong: %+v", b)
	}

	p := FeaturesFor(ModePerformance)
	if p.MaxOrbs != 3 || p.Collision || p.Trails || p.Glow != GlowNone || p.RotationEffects {
		t.Errorf("performance features wrong: %+v", p)
	}
}

func TestQualityController_Transitions(t *testing.T) {
	tests := []struct {
		name  string
		from  PerformanceMode
		score int
		want  PerformanceMode
	}{
		{"balanced holds at 70", ModeBalanced, 70, ModeBalanced},
		{"balanced drops below 40", ModeBalanced, 39, ModePerformance},
		{"balanced holds at exactly 40", ModeBalanced, 40, ModeBalanced},
		{"balanced promotes above 95", ModeBalanced, 96, ModeQuality},
		{"balanced holds at exactly 95", ModeBalanced, 95, ModeBalanced},
		{"quality demotes below 60", ModeQuality, 59, ModeBalanced},
		{"quality holds at exactly 60", ModeQuality, 60, ModeQuality},
		{"quality drops straight to performance below 40", ModeQuality, 10, ModePerformance},
		{"performance recovers above 80", ModePerformance, 81, ModeBalanced},
		{"performance holds at exactly 80", ModePerformance, 80, ModePerformance},
		{"performance holds at 79", ModePerformance, 79, ModePerformance},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewQualityController()
			c.mode = tc.from

			prev, changed := c.Update(tc.score)
			if prev != tc.from {
				t.Errorf("prev = %v, want %v", prev, tc.from)
			}
			if c.Mode() != tc.want {
				t.Errorf("mode = %v, want %v", c.Mode(), tc.want)
			}
			if changed != (tc.want != tc.from) {
				t.Errorf("changed = %v, want %v", changed, tc.want != tc.from)
			}
		})
	}
}

func TestQualityController_SingleStepPerWindow(t *testing.T) {
	// A score of 85 seen from performance recovers to balanced only;
	// quality needs a second window above 95.
	c := NewQualityController()
	c.mode = ModePerformance

	c.Update(85)
	if c.Mode() != ModeBalanced {
		t.Fatalf("expected balanced after first window, got %v", c.Mode())
	}

	c.Update(96)
	if c.Mode() != ModeQuality {
		t.Errorf("expected quality after second window, got %v", c.Mode())
	}
}

func TestQualityController_HysteresisBand(t *testing.T) {
	// Oscillating between 41 and 79 never leaves performance once entered.
	c := NewQualityController()
	c.Update(10)
	if c.Mode() != ModePerformance {
		t.Fatalf("expected performance, got %v", c.Mode())
	}

	for i := 0; i < 20; i++ {
		score := 41
		if i%2 == 1 {
			score = 79
		}
		if _, changed := c.Update(score); changed {
			t.Fatalf("tier flapped inside hysteresis band at window %d", i)
		}
	}
}

func TestQualityController_ForceBlocksAuto(t *testing.T) {
	c := NewQualityController()
	c.Force(ModeQuality)

	if _, changed := c.Update(5); changed {
		t.Error("forced controller changed tier on score update")
	}
	if c.Mode() != ModeQuality {
		t.Errorf("forced tier lost: %v", c.Mode())
	}

	c.Release()
	if _, changed := c.Update(5); !changed || c.Mode() != ModePerformance {
		t.Errorf("released controller did not resume auto transitions: %v", c.Mode())
	}
}

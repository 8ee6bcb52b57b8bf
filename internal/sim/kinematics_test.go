package sim

import (
	"math"
	"testing"

	"github.com/litescript/ls-helios/internal/astro"
	"github.com/litescript/ls-helios/internal/config"
)

// testConfig returns the default catalog with a pinned epoch so runs are
// reproducible.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.EpochSeconds = 1700000000
	return cfg
}

func mustSystem(t *testing.T, cfg config.Config) *System {
	t.Helper()
	s, err := NewSystem(cfg)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	return s
}

func TestMeanMotionFormula(t *testing.T) {
	tests := []struct {
		name       string
		periodDays float64
	}{
		{"Mercury", 87.969},
		{"Earth", 365.256},
		{"Neptune", 60182.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := astro.MeanMotion(tt.periodDays)
			want := 2 * math.Pi / (tt.periodDays * 86400)
			if math.Abs(got-want) > 1e-18 {
				t.Errorf("MeanMotion(%v) = %v, want %v", tt.periodDays, got, want)
			}
			if got <= 0 {
				t.Errorf("mean motion must be positive, got %v", got)
			}
		})
	}

	// Earth's value as a literal sanity check.
	earth := astro.MeanMotion(365.256)
	if math.Abs(earth-1.991e-7) > 1e-9 {
		t.Errorf("Earth mean motion = %v, want ~1.991e-7 rad/s", earth)
	}
}

func TestSystemMeanMotionsMatchCatalog(t *testing.T) {
	s := mustSystem(t, testConfig())
	for _, b := range s.Bodies {
		want := 2 * math.Pi / (b.Def.PeriodDays * 86400)
		if b.MeanMotion != want {
			t.Errorf("%s: mean motion %v, want %v", b.Def.Name, b.MeanMotion, want)
		}
	}
}

func TestAdvanceMonotonic(t *testing.T) {
	s := mustSystem(t, testConfig())

	before := make([]float64, len(s.Bodies))
	for i, b := range s.Bodies {
		before[i] = b.Angle
	}
	moonBefore := s.Moon.Angle

	s.Advance(0.016, 1.0, 1e6)

	for i, b := range s.Bodies {
		if b.Angle <= before[i] {
			t.Errorf("%s: angle did not increase: %v -> %v", b.Def.Name, before[i], b.Angle)
		}
	}
	if s.Moon.Angle <= moonBefore {
		t.Errorf("moon angle did not increase: %v -> %v", moonBefore, s.Moon.Angle)
	}
}

func TestAdvanceDeterministic(t *testing.T) {
	a := mustSystem(t, testConfig())
	b := mustSystem(t, testConfig())

	dts := []float64{0.016, 0.033, 0.05, 0.008, 0.016}
	for _, dt := range dts {
		a.Advance(dt, 1.5, 2e6)
		b.Advance(dt, 1.5, 2e6)
	}

	for i := range a.Bodies {
		if a.Bodies[i].Angle != b.Bodies[i].Angle {
			t.Errorf("%s: angles diverged: %v != %v",
				a.Bodies[i].Def.Name, a.Bodies[i].Angle, b.Bodies[i].Angle)
		}
		if a.Bodies[i].SpinAngle != b.Bodies[i].SpinAngle {
			t.Errorf("%s: spin diverged", a.Bodies[i].Def.Name)
		}
	}
	if a.Moon.Angle != b.Moon.Angle {
		t.Errorf("moon angles diverged: %v != %v", a.Moon.Angle, b.Moon.Angle)
	}
}

func TestAdvanceEndToEndDelta(t *testing.T) {
	// Catalog entry with period 365.256 d at timeScale=1, speedBoost=1e6,
	// dt=0.016 s must advance by meanMotion·1e6·0.016 ≈ 3.19e-3 rad.
	cfg := testConfig()
	s := mustSystem(t, cfg)

	var earth *Body
	for _, b := range s.Bodies {
		if b.Def.Name == "Earth" {
			earth = b
		}
	}
	if earth == nil {
		t.Fatal("no Earth in catalog")
	}

	before := earth.Angle
	s.Advance(0.016, 1.0, 1e6)
	delta := earth.Angle - before

	want := astro.MeanMotion(365.256) * 1e6 * 0.016
	if math.Abs(delta-want) > 1e-12 {
		t.Errorf("Δangle = %v, want %v", delta, want)
	}
	if math.Abs(delta-3.186e-3) > 5e-5 {
		t.Errorf("Δangle = %v, want ≈3.19e-3 rad", delta)
	}
}

func TestPositionsOnOrbitalPlane(t *testing.T) {
	cfg := testConfig()
	s := mustSystem(t, cfg)
	s.Advance(0.02, 1, 1e6)

	for _, b := range s.Bodies {
		if b.Pos.Y != 0 {
			t.Errorf("%s: orbit left the y=0 plane: %v", b.Def.Name, b.Pos)
		}
		wantR := b.Def.SemiMajorAU * cfg.UnitsPerAU
		if math.Abs(b.Pos.Norm()-wantR) > 1e-9 {
			t.Errorf("%s: radial distance %v, want %v", b.Def.Name, b.Pos.Norm(), wantR)
		}
	}
}

func TestEpochDerivedPhase(t *testing.T) {
	cfg := testConfig()
	s := mustSystem(t, cfg)

	for _, b := range s.Bodies {
		period := b.Def.PeriodDays * 86400
		want := b.MeanMotion*math.Mod(cfg.EpochSeconds, period) + b.Def.PhaseOffset
		if math.Abs(b.Angle-want) > 1e-12 {
			t.Errorf("%s: initial angle %v, want %v", b.Def.Name, b.Angle, want)
		}
	}
}

func TestDifferentEpochsDifferentPhases(t *testing.T) {
	cfgA := testConfig()
	cfgB := testConfig()
	cfgB.EpochSeconds = cfgA.EpochSeconds + 12345

	a := mustSystem(t, cfgA)
	b := mustSystem(t, cfgB)

	same := 0
	for i := range a.Bodies {
		if a.Bodies[i].Angle == b.Bodies[i].Angle {
			same++
		}
	}
	if same == len(a.Bodies) {
		t.Error("different epochs produced identical starting configurations")
	}
}

func TestMoonCarriedByHost(t *testing.T) {
	s := mustSystem(t, testConfig())

	host := s.MoonHost()
	if host == nil {
		t.Fatal("expected a moon host in the default catalog")
	}
	if host.Def.Name != "Earth" {
		t.Errorf("moon host = %s, want Earth", host.Def.Name)
	}

	world := s.MoonWorldPos()
	rel := world.Sub(host.Pos)
	if math.Abs(rel.Norm()-s.Moon.Def.Distance) > 1e-9 {
		t.Errorf("moon distance from host = %v, want %v", rel.Norm(), s.Moon.Def.Distance)
	}

	// Advancing moves the host; the moon must stay at its parent-relative
	// distance.
	s.Advance(0.05, 1, 2e6)
	world = s.MoonWorldPos()
	rel = world.Sub(host.Pos)
	if math.Abs(rel.Norm()-s.Moon.Def.Distance) > 1e-9 {
		t.Errorf("after advance, moon distance = %v, want %v", rel.Norm(), s.Moon.Def.Distance)
	}
}

func TestNewSystemRejectsInvalidCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.Bodies[0].PeriodDays = -3
	if _, err := NewSystem(cfg); err == nil {
		t.Fatal("expected error for invalid catalog")
	}
}

func TestSpinIndependentOfOrbitBoost(t *testing.T) {
	// speedBoost inflates orbital motion only; spin advances at
	// spinRate·timeScale·dt regardless.
	a := mustSystem(t, testConfig())
	b := mustSystem(t, testConfig())

	a.Advance(0.016, 1, 1e6)
	b.Advance(0.016, 1, 2e6)

	for i := range a.Bodies {
		if a.Bodies[i].SpinAngle != b.Bodies[i].SpinAngle {
			t.Errorf("%s: spin affected by speed boost", a.Bodies[i].Def.Name)
		}
		if a.Bodies[i].Angle == b.Bodies[i].Angle {
			t.Errorf("%s: orbit not affected by speed boost", a.Bodies[i].Def.Name)
		}
	}
}

package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/litescript/ls-helios/internal/astro"
	"github.com/litescript/ls-helios/internal/config"
)

// baseSpinRate is the nominal own-axis rotation speed in radians per
// simulation second before the per-body random factor.
const baseSpinRate = 0.6

// Body is the mutable orbital state of one catalog entry. Angle accumulates
// without wraparound for the whole session.
type Body struct {
	Def        config.BodyDef
	MeanMotion float64    // radians per simulation second
	Angle      float64    // current orbital phase, unbounded
	SpinAngle  float64    // own-axis rotation
	SpinRate   float64    // randomized once at creation, constant after
	Pos        astro.Vec3 // heliocentric position, scene units
}

// Moon is the single satellite, expressed in its host body's frame so the
// host's motion carries it implicitly.
type Moon struct {
	Def        config.MoonDef
	MeanMotion float64
	Angle      float64
	Rel        astro.Vec3 // position relative to the host body
}

// System owns all orbital state and advances it once per frame.
type System struct {
	Bodies []*Body
	Moon   Moon

	moonHost   int // index into Bodies, -1 if no body hosts the moon
	unitsPerAU float64
	elapsed    float64 // accumulated simulation seconds, drives the shader
}

// NewSystem builds the orbital state from the catalog. The initial phase of
// every body is derived from the configured epoch, or from the wall clock
// when the epoch is unset, so two sessions started at different times begin
// in different but period-consistent configurations.
func NewSystem(cfg config.Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("build system: %w", err)
	}

	epoch := cfg.EpochSeconds
	if epoch == 0 {
		epoch = float64(time.Now().Unix())
	}

	// Spin rates are the only randomized quantity. Seeding from the epoch
	// keeps a pinned epoch fully reproducible.
	rng := rand.New(rand.NewSource(int64(math.Float64bits(epoch))))

	s := &System{
		Bodies:     make([]*Body, 0, len(cfg.Bodies)),
		moonHost:   -1,
		unitsPerAU: cfg.UnitsPerAU,
	}

	for i, def := range cfg.Bodies {
		mm := astro.MeanMotion(def.PeriodDays)
		b := &Body{
			Def:        def,
			MeanMotion: mm,
			Angle:      astro.PhaseAtEpoch(mm, def.PeriodDays, epoch, def.PhaseOffset),
			SpinRate:   baseSpinRate * (0.5 + rng.Float64()),
		}
		b.Pos = astro.OrbitPosition(b.Angle, def.SemiMajorAU*cfg.UnitsPerAU)
		s.Bodies = append(s.Bodies, b)
		if def.HasMoon && s.moonHost < 0 {
			s.moonHost = i
		}
	}

	mm := astro.MeanMotion(cfg.Moon.PeriodDays)
	s.Moon = Moon{
		Def:        cfg.Moon,
		MeanMotion: mm,
		Angle:      astro.PhaseAtEpoch(mm, cfg.Moon.PeriodDays, epoch, 0),
	}
	s.Moon.Rel = astro.OrbitPosition(s.Moon.Angle, cfg.Moon.Distance)

	return s, nil
}

// Advance moves every angle forward by dt seconds of wall time under the
// given time warp and recomputes Cartesian positions. Orbital motion is
// boosted by speedBoost; own-axis spin is not.
func (s *System) Advance(dt, timeScale, speedBoost float64) {
	warp := dt * timeScale

	for _, b := range s.Bodies {
		b.Angle += b.MeanMotion * warp * speedBoost
		b.SpinAngle += b.SpinRate * warp
		b.Pos = astro.OrbitPosition(b.Angle, b.Def.SemiMajorAU*s.unitsPerAU)
	}

	s.Moon.Angle += s.Moon.MeanMotion * warp * speedBoost
	s.Moon.Rel = astro.OrbitPosition(s.Moon.Angle, s.Moon.Def.Distance)

	s.elapsed += warp
}

// Elapsed returns accumulated simulation seconds since startup.
func (s *System) Elapsed() float64 {
	return s.elapsed
}

// MoonHost returns the body carrying the moon, or nil if the catalog has
// none.
func (s *System) MoonHost() *Body {
	if s.moonHost < 0 {
		return nil
	}
	return s.Bodies[s.moonHost]
}

// MoonWorldPos resolves the moon's heliocentric position from its host's
// frame. Returns the zero vector if no host exists.
func (s *System) MoonWorldPos() astro.Vec3 {
	host := s.MoonHost()
	if host == nil {
		return astro.Vec3{}
	}
	return host.Pos.Add(s.Moon.Rel)
}

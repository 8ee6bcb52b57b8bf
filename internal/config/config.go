// Package config holds the static body catalog and global tuning for the
// visualizer. The catalog is compiled in; scale factors and bloom tuning can
// be overridden through HELIOS_* environment variables, optionally loaded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidCatalog indicates a body entry that cannot be simulated.
var ErrInvalidCatalog = errors.New("invalid catalog entry")

// BodyClass categorizes bodies for rendering glyphs.
type BodyClass int

const (
	ClassInner BodyClass = iota
	ClassGiant
)

// BodyDef is one orbiting body in the static catalog.
type BodyDef struct {
	Name         string
	Radius       float64 // visual radius, scene units
	SemiMajorAU  float64 // orbital distance in AU
	PeriodDays   float64 // sidereal period
	AxialTiltDeg float64
	Color        colorful.Color
	PhaseOffset  float64 // radians added to the computed angle
	Class        BodyClass
	HasRing      bool
	HasMoon      bool
}

// MoonDef is the single satellite, attached to the body with HasMoon set.
type MoonDef struct {
	Radius     float64
	Distance   float64 // orbit distance in scene units, parent-relative
	PeriodDays float64
	Color      colorful.Color
}

// BloomConfig tunes the selective bloom pass.
type BloomConfig struct {
	Strength  float64 // multiplier applied to the blurred bloom buffer
	Radius    int     // blur taps on each side
	Threshold float64 // luminance below which the bright pass rejects a cell
}

// Config is the full static configuration consumed by the core.
type Config struct {
	// Global scale factors.
	UnitsPerAU  float64 // AU to scene units
	RadiusScale float64 // visual exaggeration of body radii
	TimeScale   float64 // simulation seconds per wall second
	SpeedBoost  float64 // extra orbital time warp so motion is visible
	LabelScale  float64

	// EpochSeconds pins the initial-phase epoch for reproducible output.
	// Zero means derive it from the wall clock at startup.
	EpochSeconds float64

	// Central luminous body.
	StarName   string
	StarRadius float64 // scene units

	FPS    int
	Bloom  BloomConfig
	Bodies []BodyDef
	Moon   MoonDef
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("bad catalog color %q: %v", s, err))
	}
	return c
}

// Default returns the stock configuration: a Sol-like catalog with visually
// exaggerated radii and a time warp that makes Mercury complete an orbit in
// about a minute of wall time.
func Default() Config {
	return Config{
		UnitsPerAU:   6.0,
		RadiusScale:  1.0,
		TimeScale:    1.0,
		SpeedBoost:   2.0e6,
		LabelScale:   1.0,
		EpochSeconds: 0,
		StarName:     "Sol",
		StarRadius:   2.6,
		FPS:          30,
		Bloom: BloomConfig{
			Strength:  0.9,
			Radius:    2,
			Threshold: 0.15,
		},
		Bodies: []BodyDef{
			{Name: "Mercury", Radius: 0.4, SemiMajorAU: 0.387, PeriodDays: 87.969, AxialTiltDeg: 0.03, Color: mustHex("#9c8e84"), PhaseOffset: 0.0, Class: ClassInner},
			{Name: "Venus", Radius: 0.9, SemiMajorAU: 0.723, PeriodDays: 224.701, AxialTiltDeg: 177.4, Color: mustHex("#d9b077"), PhaseOffset: 1.1, Class: ClassInner},
			{Name: "Earth", Radius: 1.0, SemiMajorAU: 1.000, PeriodDays: 365.256, AxialTiltDeg: 23.44, Color: mustHex("#4f94d4"), PhaseOffset: 2.3, Class: ClassInner, HasMoon: true},
			{Name: "Mars", Radius: 0.5, SemiMajorAU: 1.524, PeriodDays: 686.980, AxialTiltDeg: 25.19, Color: mustHex("#c1613c"), PhaseOffset: 3.6, Class: ClassInner},
			{Name: "Jupiter", Radius: 2.4, SemiMajorAU: 5.203, PeriodDays: 4332.589, AxialTiltDeg: 3.13, Color: mustHex("#d8a36b"), PhaseOffset: 4.2, Class: ClassGiant},
			{Name: "Saturn", Radius: 2.0, SemiMajorAU: 9.537, PeriodDays: 10759.22, AxialTiltDeg: 26.73, Color: mustHex("#e3c98a"), PhaseOffset: 5.0, Class: ClassGiant, HasRing: true},
			{Name: "Uranus", Radius: 1.4, SemiMajorAU: 19.19, PeriodDays: 30688.5, AxialTiltDeg: 97.77, Color: mustHex("#9fd4d9"), PhaseOffset: 0.7, Class: ClassGiant},
			{Name: "Neptune", Radius: 1.35, SemiMajorAU: 30.07, PeriodDays: 60182.0, AxialTiltDeg: 28.32, Color: mustHex("#5a77d4"), PhaseOffset: 1.9, Class: ClassGiant},
		},
		Moon: MoonDef{
			Radius:     0.27,
			Distance:   1.6,
			PeriodDays: 27.322,
			Color:      mustHex("#b8b8b0"),
		},
	}
}

// Validate checks that every catalog entry can be simulated. Invalid data is
// fatal: a non-positive period or distance has no defined mean motion.
func (c Config) Validate() error {
	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		switch {
		case b.Name == "":
			return fmt.Errorf("%w: body with empty name", ErrInvalidCatalog)
		case seen[b.Name]:
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidCatalog, b.Name)
		case b.Radius <= 0:
			return fmt.Errorf("%w: body %q has non-positive radius %v", ErrInvalidCatalog, b.Name, b.Radius)
		case b.SemiMajorAU <= 0:
			return fmt.Errorf("%w: body %q has non-positive semi-major axis %v", ErrInvalidCatalog, b.Name, b.SemiMajorAU)
		case b.PeriodDays <= 0:
			return fmt.Errorf("%w: body %q has non-positive period %v", ErrInvalidCatalog, b.Name, b.PeriodDays)
		}
		seen[b.Name] = true
	}
	if c.Moon.PeriodDays <= 0 || c.Moon.Distance <= 0 {
		return fmt.Errorf("%w: moon has non-positive period or distance", ErrInvalidCatalog)
	}
	if c.UnitsPerAU <= 0 || c.RadiusScale <= 0 {
		return fmt.Errorf("%w: non-positive scale factor", ErrInvalidCatalog)
	}
	if c.StarRadius <= 0 {
		return fmt.Errorf("%w: non-positive star radius", ErrInvalidCatalog)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: non-positive fps", ErrInvalidCatalog)
	}
	return nil
}

// LoadDotenv loads a .env file into the process environment if present.
// A missing file is not an error.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv overlays HELIOS_* environment variables onto the configuration.
// Unset or malformed values leave the existing value untouched and are
// reported through the returned warnings.
func ApplyEnv(c Config) (Config, []string) {
	var warnings []string

	envFloat := func(key string, dst *float64) {
		v := os.Getenv(key)
		if v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not a number, ignored", key, v))
			return
		}
		*dst = f
	}
	envInt := func(key string, dst *int) {
		v := os.Getenv(key)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q is not an integer, ignored", key, v))
			return
		}
		*dst = n
	}

	envFloat("HELIOS_TIME_SCALE", &c.TimeScale)
	envFloat("HELIOS_SPEED_BOOST", &c.SpeedBoost)
	envFloat("HELIOS_UNITS_PER_AU", &c.UnitsPerAU)
	envFloat("HELIOS_RADIUS_SCALE", &c.RadiusScale)
	envFloat("HELIOS_LABEL_SCALE", &c.LabelScale)
	envFloat("HELIOS_EPOCH", &c.EpochSeconds)
	envFloat("HELIOS_BLOOM_STRENGTH", &c.Bloom.Strength)
	envFloat("HELIOS_BLOOM_THRESHOLD", &c.Bloom.Threshold)
	envInt("HELIOS_BLOOM_RADIUS", &c.Bloom.Radius)
	envInt("HELIOS_FPS", &c.FPS)

	return c, warnings
}

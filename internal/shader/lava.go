// Package shader implements procedural surface shading for the central star.
package shader

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-helios/internal/noise"
)

// LavaConfig tunes the cracked-lava surface of the central body.
type LavaConfig struct {
	Scale          float64 // surface coordinate multiplier
	Speed          float64 // time rate of the noise animation
	CrackThreshold float64 // field value below which lava is exactly zero
	GlowIntensity  float64 // overall brightness multiplier
	ColorHot       colorful.Color
	ColorMid       colorful.Color
	ColorDark      colorful.Color
}

// DefaultLavaConfig returns the stock star surface tuning.
func DefaultLavaConfig() LavaConfig {
	hot, _ := colorful.Hex("#ffdd55")
	mid, _ := colorful.Hex("#ff5a1f")
	dark, _ := colorful.Hex("#3a0c02")
	return LavaConfig{
		Scale:          3.0,
		Speed:          0.15,
		CrackThreshold: 0.55,
		GlowIntensity:  1.0,
		ColorHot:       hot,
		ColorMid:       mid,
		ColorDark:      dark,
	}
}

// Lava evaluates the animated star surface. Every evaluation is a pure
// function of (u, v, t); no state is carried between frames.
type Lava struct {
	cfg LavaConfig
}

// NewLava creates a lava shader with the given tuning.
func NewLava(cfg LavaConfig) *Lava {
	return &Lava{cfg: cfg}
}

// Config returns the shader tuning.
func (l *Lava) Config() LavaConfig {
	return l.cfg
}

// At returns the surface color at 2D surface coordinate (u, v) for elapsed
// simulation time t seconds.
func (l *Lava) At(u, v, t float64) colorful.Color {
	c := l.cfg

	su := u * c.Scale
	sv := v * c.Scale
	tt := t * c.Speed

	// Base field, then a second field sampled through a warp that depends on
	// the first. The warp breaks up the lattice structure and gives the
	// cracks their ragged shape.
	n := noise.FBM(su, sv, tt)
	n2 := noise.FBM(su+n*2.7+5.2, sv+n*2.7+1.3, tt*0.6)

	lava := Smoothstep(c.CrackThreshold, 1.0, math.Max(n, n2))

	col := c.ColorDark.BlendRgb(c.ColorMid, n)
	col = col.BlendRgb(c.ColorHot, lava)

	// Slow breathing pulsation around full brightness.
	pulse := c.GlowIntensity * (0.8 + 0.2*math.Sin(2*math.Pi*tt))
	return scale(col, pulse)
}

// Smoothstep returns 0 for x <= edge0, 1 for x >= edge1, and a smooth cubic
// ramp in between. Exactly zero below the lower edge, which is what produces
// sharp-edged cracks instead of a gradual glow.
func Smoothstep(edge0, edge1, x float64) float64 {
	if x <= edge0 {
		return 0
	}
	if x >= edge1 {
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	return t * t * (3 - 2*t)
}

// scale multiplies all channels by s and clamps to valid RGB.
func scale(c colorful.Color, s float64) colorful.Color {
	return colorful.Color{R: c.R * s, G: c.G * s, B: c.B * s}.Clamped()
}

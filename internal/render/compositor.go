package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-helios/internal/config"
	"github.com/litescript/ls-helios/internal/logging"
	"github.com/litescript/ls-helios/internal/scene"
)

// onceKeyBloomTarget deduplicates the degraded-bloom warning across frames.
const onceKeyBloomTarget = "bloom-target"

// glowRamp maps bloom energy spilling into empty cells to halo glyphs,
// dimmest first.
var glowRamp = []rune{'░', '▒', '▓'}

// Compositor renders the scene in two passes: a masked bloom extraction and
// the normal base pass, then composites the blurred bloom on top. It owns
// the side table of saved appearances; the table must be empty outside of a
// frame.
type Compositor struct {
	cfg     config.BloomConfig
	logger  *logging.Logger
	enabled bool

	saved map[*scene.Node]scene.Appearance

	width, height int
}

// NewCompositor creates a compositor with bloom enabled.
func NewCompositor(cfg config.BloomConfig, logger *logging.Logger) *Compositor {
	return &Compositor{
		cfg:     cfg,
		logger:  logger,
		enabled: true,
		saved:   make(map[*scene.Node]scene.Appearance),
	}
}

// SetEnabled toggles the bloom pass; the base pass always runs.
func (c *Compositor) SetEnabled(on bool) {
	c.enabled = on
}

// Enabled reports whether the bloom pass runs.
func (c *Compositor) Enabled() bool {
	return c.enabled
}

// Resize updates the viewport. Callers apply resizes only at frame
// boundaries, never mid-frame.
func (c *Compositor) Resize(w, h int) {
	c.width = w
	c.height = h
}

// SideTableEmpty reports whether any appearance overrides are outstanding.
// A non-empty table outside RenderFrame is a leaked override.
func (c *Compositor) SideTableEmpty() bool {
	return len(c.saved) == 0
}

// RenderFrame produces one composited frame. On bloom target failure the
// frame degrades to the base pass alone; only a dead viewport returns an
// error.
func (c *Compositor) RenderFrame(g *scene.Graph, v View) (*Buffer, error) {
	base, err := NewBuffer(c.width, c.height)
	if err != nil {
		c.logger.WarnOnce(onceKeyBloomTarget, "render target unavailable (%dx%d), skipping frames", c.width, c.height)
		return nil, err
	}
	c.logger.ClearOnce(onceKeyBloomTarget)

	var bloom *floatImage
	if c.enabled {
		bloom = c.renderBloom(g, v)
	}

	// Base pass with true appearances.
	Rasterize(g, base, v)

	if bloom != nil {
		c.combine(base, bloom)
	}
	return base, nil
}

// renderBloom runs the extract pass: mask everything without the bloom tag,
// rasterize offscreen, bright-pass and blur. Restoration of masked
// appearances is deferred so it runs on every exit path; the side table is
// guaranteed empty when this returns.
func (c *Compositor) renderBloom(g *scene.Graph, v View) *floatImage {
	off, err := NewBuffer(c.width, c.height)
	if err != nil {
		// Degrade to base-only rather than dropping the frame.
		c.logger.WarnOnce(onceKeyBloomTarget, "bloom target unavailable: %v, using base pass only", err)
		return nil
	}

	c.mask(g)
	defer c.restore()

	Rasterize(g, off, v)

	img := brightPass(off, c.cfg.Threshold)
	img.blur(c.cfg.Radius)
	return img
}

// mask saves the appearance of every visible node lacking the bloom tag and
// substitutes an unlit black appearance.
func (c *Compositor) mask(g *scene.Graph) {
	g.Root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if !n.Bloom && n.Kind != scene.KindGroup {
			c.saved[n] = n.Appearance
			n.Appearance = scene.Blackout()
		}
		return true
	})
}

// restore reinstates every saved appearance and empties the side table.
func (c *Compositor) restore() {
	for n, app := range c.saved {
		n.Appearance = app
		delete(c.saved, n)
	}
}

// combine additively composites the bloom buffer over the base render.
// Cells that are empty but receive enough bloom energy are promoted to halo
// glyphs, which is what makes the glow spill past the star's silhouette.
func (c *Compositor) combine(base *Buffer, bloom *floatImage) {
	for y := 0; y < base.H; y++ {
		for x := 0; x < base.W; x++ {
			r, gg, b := bloom.at(x, y)
			r *= c.cfg.Strength
			gg *= c.cfg.Strength
			b *= c.cfg.Strength

			energy := 0.2126*r + 0.7152*gg + 0.0722*b
			if energy < 0.02 {
				continue
			}

			cell := base.At(x, y)
			if cell.Glyph == ' ' {
				idx := int(energy * float64(len(glowRamp)))
				if idx >= len(glowRamp) {
					idx = len(glowRamp) - 1
				}
				cell.Glyph = glowRamp[idx]
				cell.Color = colorful.Color{R: r, G: gg, B: b}.Clamped()
			} else {
				cell.Color = colorful.Color{
					R: cell.Color.R + r,
					G: cell.Color.G + gg,
					B: cell.Color.B + b,
				}.Clamped()
			}
			base.Set(x, y, cell)
		}
	}
}

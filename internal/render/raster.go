package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-helios/internal/astro"
	"github.com/litescript/ls-helios/internal/noise"
	"github.com/litescript/ls-helios/internal/scene"
)

// starfieldDensity is the fraction of cells carrying a backdrop star.
const starfieldDensity = 0.015

// View carries the per-frame parameters of a rasterization pass.
type View struct {
	Proj    astro.ProjectionConfig
	OriginX int // screen cell of the scene origin
	OriginY int
	Time    float64 // simulation seconds, drives procedural surfaces
	SkySeed int     // starfield variation seed
}

// Rasterize draws the scene tree into the buffer. Node appearances are read
// as-is, so the bloom compositor can mask nodes by swapping appearances
// without the rasterizer knowing.
func Rasterize(g *scene.Graph, buf *Buffer, v View) {
	g.Root.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		switch n.Kind {
		case scene.KindStarfield:
			drawStarfield(buf, n, v)
		case scene.KindOrbitGuide:
			drawOrbitGuide(buf, n, v)
		case scene.KindMesh:
			drawMesh(buf, n, v)
		case scene.KindRing:
			drawRing(buf, n, v)
		case scene.KindLabel:
			drawLabel(buf, n, v)
		}
		return true
	})
}

// project converts a node's world position to screen cells.
func project(world astro.Vec3, v View) (int, int) {
	p := astro.ProjectTopDown(world, v.Proj)
	return v.OriginX + int(math.Round(p.X)), v.OriginY + int(math.Round(p.Y))
}

// drawStarfield scatters dim backdrop stars using the stable lattice hash,
// so the field does not shimmer between frames.
func drawStarfield(buf *Buffer, n *scene.Node, v View) {
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			h := noise.CellHash(x, y, v.SkySeed)
			if h >= starfieldDensity {
				continue
			}
			// Brightness tier from a second hash channel.
			tier := noise.CellHash(x, y, v.SkySeed+1)
			glyph := '˙'
			bright := 0.5
			switch {
			case tier > 0.85:
				glyph = '∗'
				bright = 1.0
			case tier > 0.5:
				glyph = '·'
				bright = 0.75
			}
			c := n.Appearance.Color
			col := colorful.Color{R: c.R * bright, G: c.G * bright, B: c.B * bright}
			buf.SetIfEmpty(x, y, Cell{Glyph: glyph, Color: col})
		}
	}
}

// drawOrbitGuide draws a dotted circular orbit path around the scene origin.
// The guide radius goes through the same radial mapping as body positions so
// guides and bodies stay on the same circles.
func drawOrbitGuide(buf *Buffer, n *scene.Node, v View) {
	rx := astro.DisplayRadius(n.Radius, v.Proj)
	ry := rx * v.Proj.Aspect
	if rx < 1 {
		return
	}

	steps := int(2 * math.Pi * rx)
	if steps < 8 {
		steps = 8
	}
	if steps > 720 {
		steps = 720
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := v.OriginX + int(math.Round(rx*math.Cos(theta)))
		y := v.OriginY + int(math.Round(ry*math.Sin(theta)))
		buf.SetIfEmpty(x, y, Cell{Glyph: n.Appearance.Glyph, Color: n.Appearance.Color})
	}
}

// drawMesh draws a body disc. Small bodies collapse to a single glyph;
// larger ones fill an ellipse of cells, shaded per cell when the node has a
// procedural surface.
func drawMesh(buf *Buffer, n *scene.Node, v View) {
	sx, sy := project(n.World, v)

	rx := astro.MeshRadius(n.Radius, v.Proj)
	ry := rx * v.Proj.Aspect

	if rx < 1 {
		buf.Set(sx, sy, Cell{Glyph: n.Appearance.Glyph, Color: n.Appearance.Color})
		return
	}

	irx := int(math.Ceil(rx))
	iry := int(math.Ceil(ry))
	if iry < 1 {
		iry = 1
	}

	for dy := -iry; dy <= iry; dy++ {
		for dx := -irx; dx <= irx; dx++ {
			u := float64(dx) / rx
			w := float64(dy) / (rx * v.Proj.Aspect)
			if u*u+w*w > 1 {
				continue
			}
			col := n.Appearance.Color
			if n.Appearance.Surface != nil {
				col = n.Appearance.Surface(u, w, v.Time)
			}
			buf.Set(sx+dx, sy+dy, Cell{Glyph: '█', Color: col})
		}
	}
}

// drawRing draws a thin ellipse around the node's parent position.
func drawRing(buf *Buffer, n *scene.Node, v View) {
	sx, sy := project(n.World, v)

	rx := astro.MeshRadius(n.Radius, v.Proj)
	ry := rx * v.Proj.Aspect * 0.6
	if rx < 1.5 {
		return
	}

	steps := int(4 * math.Pi * rx)
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := sx + int(math.Round(rx*math.Cos(theta)))
		y := sy + int(math.Round(ry*math.Sin(theta)))
		buf.SetIfEmpty(x, y, Cell{Glyph: n.Appearance.Glyph, Color: n.Appearance.Color})
	}
}

// drawLabel writes the node's text to the right of its projected position.
// Labels may overwrite orbit-guide dots but not body cells.
func drawLabel(buf *Buffer, n *scene.Node, v View) {
	if n.Text == "" {
		return
	}
	sx, sy := project(n.World, v)
	x := sx + 2

	for i, r := range n.Text {
		cx := x + i
		if cx >= buf.W {
			break
		}
		existing := buf.At(cx, sy)
		if existing.Glyph == ' ' || existing.Glyph == '·' || existing.Glyph == '˙' {
			buf.Set(cx, sy, Cell{Glyph: r, Color: n.Appearance.Color})
		}
	}
}

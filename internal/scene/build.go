package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-helios/internal/config"
	"github.com/litescript/ls-helios/internal/shader"
	"github.com/litescript/ls-helios/internal/sim"
)

// Graph is the built scene with direct handles to the nodes the frame loop
// touches every tick.
type Graph struct {
	Root *Node

	Star       *Node            // star mesh, bloom-tagged
	BodyGroups map[string]*Node // body name -> group node
	BodyMeshes map[string]*Node
	Labels     map[string]*Node
	MoonNode   *Node // nil if the catalog has no moon host
	Guides     []*Node
	Starfield  *Node
}

// Build constructs the scene tree from the catalog: starfield and orbit
// guides under the root, the star with its procedural surface, and one group
// per body owning its mesh, label and optional ring. The moon node is
// attached under its host body's mesh so the host's motion carries it.
func Build(cfg config.Config, sys *sim.System, lava *shader.Lava) (*Graph, error) {
	root := New("root", KindGroup)

	g := &Graph{
		Root:       root,
		BodyGroups: make(map[string]*Node, len(cfg.Bodies)),
		BodyMeshes: make(map[string]*Node, len(cfg.Bodies)),
		Labels:     make(map[string]*Node, len(cfg.Bodies)),
	}

	// Backdrop first so everything else draws over it.
	g.Starfield = New("starfield", KindStarfield)
	g.Starfield.Appearance = Appearance{Glyph: '·', Color: colorful.Color{R: 0.35, G: 0.35, B: 0.4}}
	if err := root.Attach(g.Starfield); err != nil {
		return nil, err
	}

	// Orbit-path guides, one per body.
	for _, def := range cfg.Bodies {
		guide := New(def.Name+"-orbit", KindOrbitGuide)
		guide.Radius = def.SemiMajorAU * cfg.UnitsPerAU
		guide.Appearance = Appearance{Glyph: '·', Color: colorful.Color{R: 0.25, G: 0.25, B: 0.28}}
		if err := root.Attach(guide); err != nil {
			return nil, err
		}
		g.Guides = append(g.Guides, guide)
	}

	// Central star: the only bloom participant.
	starGroup := New(cfg.StarName, KindGroup)
	if err := root.Attach(starGroup); err != nil {
		return nil, err
	}

	g.Star = New(cfg.StarName+"-mesh", KindMesh)
	g.Star.Radius = cfg.StarRadius * cfg.RadiusScale
	g.Star.Bloom = true
	g.Star.Appearance = Appearance{
		Glyph:   '@',
		Color:   lava.Config().ColorMid,
		Surface: lava.At,
	}
	if err := starGroup.Attach(g.Star); err != nil {
		return nil, err
	}

	starLabel := New(cfg.StarName+"-label", KindLabel)
	starLabel.Text = cfg.StarName
	starLabel.Appearance = Appearance{Color: colorful.Color{R: 0.8, G: 0.8, B: 0.8}}
	if err := starGroup.Attach(starLabel); err != nil {
		return nil, err
	}
	g.Labels[cfg.StarName] = starLabel

	// Orbiting bodies.
	for _, b := range sys.Bodies {
		def := b.Def

		group := New(def.Name, KindGroup)
		group.Local = b.Pos
		if err := root.Attach(group); err != nil {
			return nil, err
		}
		g.BodyGroups[def.Name] = group

		mesh := New(def.Name+"-mesh", KindMesh)
		mesh.Radius = def.Radius * cfg.RadiusScale
		mesh.Appearance = Appearance{Glyph: bodyGlyph(def.Class), Color: def.Color}
		if err := group.Attach(mesh); err != nil {
			return nil, err
		}
		g.BodyMeshes[def.Name] = mesh

		label := New(def.Name+"-label", KindLabel)
		label.Text = def.Name
		label.Appearance = Appearance{Color: colorful.Color{R: 0.75, G: 0.75, B: 0.75}}
		if err := group.Attach(label); err != nil {
			return nil, err
		}
		g.Labels[def.Name] = label

		if def.HasRing {
			ring := New(def.Name+"-ring", KindRing)
			ring.Radius = mesh.Radius * 1.8
			ring.Appearance = Appearance{Glyph: '-', Color: def.Color}
			if err := group.Attach(ring); err != nil {
				return nil, err
			}
		}

		if def.HasMoon && g.MoonNode == nil {
			moon := New("moon", KindMesh)
			moon.Radius = cfg.Moon.Radius * cfg.RadiusScale
			moon.Local = sys.Moon.Rel
			moon.Appearance = Appearance{Glyph: '∘', Color: cfg.Moon.Color}
			// Under the mesh, not the group: the moon belongs to the
			// body's rotating frame.
			if err := mesh.Attach(moon); err != nil {
				return nil, err
			}
			g.MoonNode = moon
		}
	}

	root.ResolveWorld()
	return g, nil
}

// Sync writes the current kinematic state into the scene and re-resolves
// world positions. Called once per frame after System.Advance.
func (g *Graph) Sync(sys *sim.System) {
	for _, b := range sys.Bodies {
		if group, ok := g.BodyGroups[b.Def.Name]; ok {
			group.Local = b.Pos
		}
	}
	if g.MoonNode != nil {
		g.MoonNode.Local = sys.Moon.Rel
	}
	g.Root.ResolveWorld()
}

func bodyGlyph(class config.BodyClass) rune {
	if class == config.ClassGiant {
		return '○'
	}
	return '•'
}

package astro

import "math"

// ProjectedPoint is a 2D screen-space position in cell units relative to the
// projection origin. Positive X is right, positive Y is down (screen rows).
type ProjectedPoint struct {
	X float64
	Y float64
	R float64 // original radial distance in scene units
}

// ScaleMode defines how radial distances map to display units.
type ScaleMode int

const (
	// ScaleLog compresses radii logarithmically so inner and outer orbits
	// both fit a terminal canvas: r_display = log10(r + 1).
	ScaleLog ScaleMode = iota

	// ScaleLinear maps scene units directly to display units.
	ScaleLinear
)

// ProjectionConfig configures the top-down scene projection.
type ProjectionConfig struct {
	CellsPerUnit float64   // horizontal cells per display unit
	MeshScale    float64   // cells per scene unit for local sizes (discs, rings)
	Aspect       float64   // vertical squash for cell aspect ratio, typically 0.5
	Zoom         float64   // user zoom multiplier
	Mode         ScaleMode // radial mapping
}

// DefaultProjectionConfig returns a projection tuned for terminal cells,
// which are roughly twice as tall as they are wide.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		CellsPerUnit: 12.0,
		MeshScale:    1.0,
		Aspect:       0.5,
		Zoom:         1.0,
		Mode:         ScaleLog,
	}
}

// DisplayRadius maps a radial distance in scene units to horizontal cells.
func DisplayRadius(r float64, cfg ProjectionConfig) float64 {
	rd := r
	if cfg.Mode == ScaleLog {
		rd = math.Log10(r + 1)
	}
	return rd * cfg.CellsPerUnit * cfg.Zoom
}

// MeshRadius maps a local mesh size in scene units to horizontal cells.
// Local sizes are never radially compressed; a disc keeps its shape at any
// distance from the origin.
func MeshRadius(r float64, cfg ProjectionConfig) float64 {
	return r * cfg.MeshScale * cfg.Zoom
}

// ProjectTopDown projects a scene-space position onto the screen plane.
// The view looks down the +Y axis: scene X maps to screen columns and scene
// Z maps to screen rows, squashed by the cell aspect ratio. The radial
// distance is remapped per the scale mode while the polar angle is kept.
func ProjectTopDown(v Vec3, cfg ProjectionConfig) ProjectedPoint {
	r := math.Hypot(v.X, v.Z)
	rd := DisplayRadius(r, cfg)

	var x, y float64
	if r > 0 {
		x = rd * v.X / r
		y = rd * v.Z / r * cfg.Aspect
	}
	return ProjectedPoint{X: x, Y: y, R: v.Norm()}
}

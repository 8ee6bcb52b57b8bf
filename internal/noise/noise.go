// Package noise provides deterministic coherent value noise over 3D
// coordinates, used for the lava surface shader and the starfield backdrop.
package noise

import "math"

// Octaves is the number of layers summed by FBM.
const Octaves = 5

// hash maps an integer lattice point to a pseudo-random value in [0,1).
// Deterministic with no state, so the same lattice point always produces
// the same value.
func hash(ix, iy, iz int64) float64 {
	h := uint64(ix)*0x9E3779B185EBCA87 ^ uint64(iy)*0xC2B2AE3D27D4EB4F ^ uint64(iz)*0x165667B19E3779F9
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}

// fade is the cubic smoothstep blending curve. Using a smooth curve rather
// than linear interpolation removes axis-aligned creases at lattice planes.
func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Noise samples coherent value noise at a 3D point. The result is in [0,1],
// continuous everywhere and seamless across integer lattice boundaries.
func Noise(x, y, z float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	fz := math.Floor(z)

	ix := int64(fx)
	iy := int64(fy)
	iz := int64(fz)

	tx := fade(x - fx)
	ty := fade(y - fy)
	tz := fade(z - fz)

	// Hash the 8 corners of the surrounding lattice cell.
	n000 := hash(ix, iy, iz)
	n100 := hash(ix+1, iy, iz)
	n010 := hash(ix, iy+1, iz)
	n110 := hash(ix+1, iy+1, iz)
	n001 := hash(ix, iy, iz+1)
	n101 := hash(ix+1, iy, iz+1)
	n011 := hash(ix, iy+1, iz+1)
	n111 := hash(ix+1, iy+1, iz+1)

	// Trilinear interpolation with faded weights.
	n00 := lerp(n000, n100, tx)
	n10 := lerp(n010, n110, tx)
	n01 := lerp(n001, n101, tx)
	n11 := lerp(n011, n111, tx)

	n0 := lerp(n00, n10, ty)
	n1 := lerp(n01, n11, ty)

	return lerp(n0, n1, tz)
}

// FBM sums Octaves layers of Noise at doubling frequency and halving
// amplitude. Each octave samples at a fixed domain offset to decorrelate
// the layers. The result is normalized back to [0,1].
func FBM(x, y, z float64) float64 {
	var sum, norm float64
	amp := 1.0
	freq := 1.0

	for i := 0; i < Octaves; i++ {
		off := float64(i) * 17.31
		sum += amp * Noise(x*freq+off, y*freq+off, z*freq+off)
		norm += amp
		amp *= 0.5
		freq *= 2
	}

	return sum / norm
}

// CellHash exposes the lattice hash for stable per-cell effects such as the
// starfield backdrop. The result is in [0,1).
func CellHash(ix, iy, iz int) float64 {
	return hash(int64(ix), int64(iy), int64(iz))
}

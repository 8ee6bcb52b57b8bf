package astro

import "math"

// MeanMotion returns the constant angular speed of a circular orbit in
// radians per second of simulation time, derived from the sidereal period.
func MeanMotion(periodDays float64) float64 {
	return 2 * math.Pi / (periodDays * SecondsPerDay)
}

// OrbitPosition converts an orbital phase angle and radial distance to a
// Cartesian position in the orbital plane. Orbits are coplanar circles in
// the y=0 plane; the angle grows counterclockwise when viewed from +Y.
func OrbitPosition(angle, distance float64) Vec3 {
	return Vec3{
		X: math.Cos(angle) * distance,
		Y: 0,
		Z: math.Sin(angle) * distance,
	}
}

// PhaseAtEpoch computes the initial orbital phase for a body at a given
// epoch. The phase is derived from where the body would be in its period at
// that absolute time, so two sessions started at different wall-clock times
// begin in different but period-consistent configurations.
func PhaseAtEpoch(meanMotion, periodDays, epochSeconds, phaseOffset float64) float64 {
	periodSeconds := periodDays * SecondsPerDay
	return meanMotion*math.Mod(epochSeconds, periodSeconds) + phaseOffset
}

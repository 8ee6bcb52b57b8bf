// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Selective bloom compositor, lava surface shader, headless frame dump
// 0.1.0 - Initial release: animated orbit view, starfield, labels, HUD

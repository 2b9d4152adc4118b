// Package sim holds the server-side simulation state: player location
// and movement validation, teleport/keep-alive correlation, and chunk
// view-distance bookkeeping.
package sim

import "math"

// Location is a position and look direction in world space.
type Location struct {
	X, Y, Z    float64
	Yaw, Pitch float32
}

// NewLocation returns a Location at (x, y, z) facing yaw=0, pitch=0.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// Relative returns the displacement from l to other, keeping other's
// look direction (movement packets carry absolute yaw/pitch, not a
// delta).
func (l Location) Relative(other Location) Location {
	return Location{
		X:     other.X - l.X,
		Y:     other.Y - l.Y,
		Z:     other.Z - l.Z,
		Yaw:   other.Yaw,
		Pitch: other.Pitch,
	}
}

// Add returns l shifted by delta's x/y/z, keeping delta's look direction
// (used to apply a relative move).
func (l Location) Add(delta Location) Location {
	return Location{
		X:     l.X + delta.X,
		Y:     l.Y + delta.Y,
		Z:     l.Z + delta.Z,
		Yaw:   delta.Yaw,
		Pitch: delta.Pitch,
	}
}

// Magnitude returns the Euclidean length of l's x/y/z as a displacement
// vector, used by the movement anti-cheat gate.
func (l Location) Magnitude() float64 {
	return math.Sqrt(l.X*l.X + l.Y*l.Y + l.Z*l.Z)
}

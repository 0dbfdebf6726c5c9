// Package vec provides the 2D vector math used by the asteroids simulation.
// Vectors are plain values: every operation returns a new Vector and none of
// them can fail.
package vec

import "math"

// Vector is a 2D point or displacement in world units.
type Vector struct {
	X, Y float64
}

// Zero is the origin.
var Zero = Vector{}

// New creates a vector from its components.
func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by k.
func (v Vector) Scale(k float64) Vector {
	return Vector{X: v.X * k, Y: v.Y * k}
}

// Multiply returns the component-wise product of v and o.
func (v Vector) Multiply(o Vector) Vector {
	return Vector{X: v.X * o.X, Y: v.Y * o.Y}
}

// Flip negates both components.
func (v Vector) Flip() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vector) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Len returns the distance from the origin.
func (v Vector) Len() float64 {
	return Dist(v, Zero)
}

// Unit returns v scaled to length 1.
// The zero vector maps to the zero vector.
func (v Vector) Unit() Vector {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// Clamp restricts each component independently to [-limit, limit].
func (v Vector) Clamp(limit float64) Vector {
	limit = math.Abs(limit)
	return Vector{X: clampAxis(v.X, limit), Y: clampAxis(v.Y, limit)}
}

// Limit caps the magnitude of v at max, keeping its direction.
func (v Vector) Limit(max float64) Vector {
	if max <= 0 {
		return Zero
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

// Wrap folds each axis of v into [0, res) so the world behaves as a torus.
// Axes with a non-positive resolution are left untouched.
func (v Vector) Wrap(res Vector) Vector {
	return Vector{X: wrapAxis(v.X, res.X), Y: wrapAxis(v.Y, res.Y)}
}

// Angle returns the unit heading for an angle in degrees.
func Angle(deg float64) Vector {
	r := Radians(deg)
	return Vector{X: math.Cos(r), Y: math.Sin(r)}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func clampAxis(x, limit float64) float64 {
	if x > limit {
		return limit
	}
	if x < -limit {
		return -limit
	}
	return x
}

func wrapAxis(x, size float64) float64 {
	if size <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x >= 0 && x < size {
		return x
	}
	x = math.Mod(x, size)
	if x < 0 {
		x += size
	}
	// x+size can round up to size for tiny negative x
	if x >= size {
		x = 0
	}
	return x
}

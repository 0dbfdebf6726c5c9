// Package geom implements polygon geometry for the asteroids simulation:
// placing local-space outlines in the world, edge intersection, point
// containment and the bounds test used for toroidal ghost copies.
package geom

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// Epsilon below which three points are treated as collinear.
const Epsilon = 2.220446049250313e-16

// Polygon is a closed outline. The last point connects back to the first.
type Polygon []vec.Vector

// Segment is a line segment between two points.
type Segment struct {
	A, B vec.Vector
}

// ToPath builds a closed polygon from an ordered list of local-space points.
// The input slice is copied.
func ToPath(points []vec.Vector) Polygon {
	p := make(Polygon, len(points))
	copy(p, points)
	return p
}

// Segments returns the closed edge list of the polygon.
func (p Polygon) Segments() []Segment {
	n := len(p)
	if n < 2 {
		return nil
	}
	segs := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		segs = append(segs, Segment{A: p[i], B: p[(i+1)%n]})
	}
	return segs
}

// Translate returns the polygon shifted by d.
func (p Polygon) Translate(d vec.Vector) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Add(d)
	}
	return out
}

// Denormalize maps local vertices into world space for a body at pos with
// the given heading in degrees.
func Denormalize(local Polygon, pos vec.Vector, angle float64) Polygon {
	rad := vec.Radians(angle)
	out := make(Polygon, len(local))
	for i, pt := range local {
		mag := pt.Len()
		theta := math.Atan2(pt.Y, pt.X) + rad
		out[i] = vec.Vector{
			X: pos.X + math.Cos(theta)*mag,
			Y: pos.Y + math.Sin(theta)*mag,
		}
	}
	return out
}

// AllInsideBounds reports whether every point lies within [0, res.X] x [0, res.Y].
func AllInsideBounds(points []vec.Vector, res vec.Vector) bool {
	for _, pt := range points {
		if pt.X < 0 || pt.X > res.X || pt.Y < 0 || pt.Y > res.Y {
			return false
		}
	}
	return true
}

// GhostOffsets are the translations to the eight toroidal neighbours of a
// res-sized world.
func GhostOffsets(res vec.Vector) []vec.Vector {
	return []vec.Vector{
		{X: -res.X, Y: 0}, {X: res.X, Y: 0},
		{X: 0, Y: -res.Y}, {X: 0, Y: res.Y},
		{X: -res.X, Y: -res.Y}, {X: res.X, Y: -res.Y},
		{X: -res.X, Y: res.Y}, {X: res.X, Y: res.Y},
	}
}

// Ghosts returns poly followed by its copies at every neighbour offset when
// it crosses a world edge. A polygon fully inside the world has no ghosts.
func Ghosts(poly Polygon, res vec.Vector) []Polygon {
	out := []Polygon{poly}
	if AllInsideBounds(poly, res) {
		return out
	}
	for _, off := range GhostOffsets(res) {
		out = append(out, poly.Translate(off))
	}
	return out
}

// turn returns the orientation of c relative to the line a->b:
// 1 counter-clockwise, -1 clockwise, 0 near-collinear.
func turn(a, b, c vec.Vector) int {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	switch {
	case cross > Epsilon:
		return 1
	case cross < -Epsilon:
		return -1
	default:
		return 0
	}
}

// SegmentsIntersect reports whether the endpoints of each segment straddle
// the other.
func SegmentsIntersect(s, o Segment) bool {
	return turn(s.A, o.A, o.B) != turn(s.B, o.A, o.B) &&
		turn(s.A, s.B, o.A) != turn(s.A, s.B, o.B)
}

// PolygonsCollide reports whether any edge of a crosses any edge of b.
func PolygonsCollide(a, b Polygon) bool {
	sb := b.Segments()
	for _, ea := range a.Segments() {
		for _, eb := range sb {
			if SegmentsIntersect(ea, eb) {
				return true
			}
		}
	}
	return false
}

// PointInPolygon reports whether pt lies inside poly using the even-odd rule.
func PointInPolygon(poly Polygon, pt vec.Vector) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PointTester answers point-in-polygon queries. Hosts with a faster
// containment test can supply their own.
type PointTester interface {
	ContainsPoint(poly Polygon, pt vec.Vector) bool
}

// EvenOdd is the default PointTester.
type EvenOdd struct{}

// ContainsPoint implements PointTester.
func (EvenOdd) ContainsPoint(poly Polygon, pt vec.Vector) bool {
	return PointInPolygon(poly, pt)
}

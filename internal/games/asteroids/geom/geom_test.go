package geom

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

func square(size float64) Polygon {
	h := size / 2
	return ToPath([]vec.Vector{
		vec.New(-h, -h),
		vec.New(h, -h),
		vec.New(h, h),
		vec.New(-h, h),
	})
}

func TestSegments(t *testing.T) {
	p := square(2)
	segs := p.Segments()

	if len(segs) != 4 {
		t.Fatalf("Segments() len = %d, expected 4", len(segs))
	}
	last := segs[3]
	if last.A != p[3] || last.B != p[0] {
		t.Errorf("closing segment = %v, expected %v -> %v", last, p[3], p[0])
	}

	if got := ToPath([]vec.Vector{vec.Zero}).Segments(); got != nil {
		t.Errorf("single point Segments() = %v, expected nil", got)
	}
}

func TestToPathCopies(t *testing.T) {
	pts := []vec.Vector{vec.New(1, 1), vec.New(2, 2), vec.New(3, 1)}
	p := ToPath(pts)
	pts[0] = vec.New(99, 99)

	if p[0] != vec.New(1, 1) {
		t.Errorf("ToPath shares storage with input: p[0] = %v", p[0])
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Segment
		expected bool
	}{
		{
			name:     "crossing",
			a:        Segment{vec.New(0, 0), vec.New(10, 10)},
			b:        Segment{vec.New(0, 10), vec.New(10, 0)},
			expected: true,
		},
		{
			name:     "parallel",
			a:        Segment{vec.New(0, 0), vec.New(10, 0)},
			b:        Segment{vec.New(0, 1), vec.New(10, 1)},
			expected: false,
		},
		{
			name:     "disjoint",
			a:        Segment{vec.New(0, 0), vec.New(1, 1)},
			b:        Segment{vec.New(5, 0), vec.New(6, -1)},
			expected: false,
		},
		{
			name:     "collinear overlap counts as no turn",
			a:        Segment{vec.New(0, 0), vec.New(10, 0)},
			b:        Segment{vec.New(5, 0), vec.New(15, 0)},
			expected: false,
		},
		{
			name:     "T junction",
			a:        Segment{vec.New(0, 0), vec.New(10, 0)},
			b:        Segment{vec.New(5, -5), vec.New(5, 5)},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentsIntersect(tc.a, tc.b); got != tc.expected {
				t.Errorf("SegmentsIntersect() = %v, expected %v", got, tc.expected)
			}
			if got := SegmentsIntersect(tc.b, tc.a); got != tc.expected {
				t.Errorf("SegmentsIntersect() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	p := square(10)

	tests := []struct {
		name     string
		pt       vec.Vector
		expected bool
	}{
		{"centre", vec.Zero, true},
		{"near corner inside", vec.New(4.9, 4.9), true},
		{"outside right", vec.New(6, 0), false},
		{"outside above", vec.New(0, -6), false},
		{"far away", vec.New(100, 100), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PointInPolygon(p, tc.pt); got != tc.expected {
				t.Errorf("PointInPolygon(%v) = %v, expected %v", tc.pt, got, tc.expected)
			}
			if got := (EvenOdd{}).ContainsPoint(p, tc.pt); got != tc.expected {
				t.Errorf("EvenOdd.ContainsPoint(%v) = %v, expected %v", tc.pt, got, tc.expected)
			}
		})
	}

	if PointInPolygon(Polygon{vec.Zero, vec.New(1, 1)}, vec.Zero) {
		t.Error("degenerate polygon should contain nothing")
	}
}

func TestDenormalize(t *testing.T) {
	local := ToPath([]vec.Vector{vec.New(10, 0), vec.New(-10, 8), vec.New(-10, -8)})

	got := Denormalize(local, vec.New(100, 100), 90)
	// a heading of 90 degrees rotates the nose from +x to +y
	if math.Abs(got[0].X-100) > 1e-9 || math.Abs(got[0].Y-110) > 1e-9 {
		t.Errorf("Denormalize nose = %v, expected (100, 110)", got[0])
	}

	same := Denormalize(local, vec.New(5, 5), 0)
	for i, pt := range local {
		want := pt.Add(vec.New(5, 5))
		if math.Abs(same[i].X-want.X) > 1e-9 || math.Abs(same[i].Y-want.Y) > 1e-9 {
			t.Errorf("Denormalize at 0 degrees [%d] = %v, expected %v", i, same[i], want)
		}
	}
}

func TestAllInsideBounds(t *testing.T) {
	res := vec.New(100, 100)

	tests := []struct {
		name     string
		pts      []vec.Vector
		expected bool
	}{
		{"inside", []vec.Vector{vec.New(1, 1), vec.New(50, 50)}, true},
		{"on edges is inclusive", []vec.Vector{vec.New(0, 0), vec.New(100, 100)}, true},
		{"left of bounds", []vec.Vector{vec.New(-0.1, 50)}, false},
		{"below bounds", []vec.Vector{vec.New(50, 100.1)}, false},
		{"empty", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AllInsideBounds(tc.pts, res); got != tc.expected {
				t.Errorf("AllInsideBounds() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCollideBroadPhase(t *testing.T) {
	a := Body{Key: Key{Kind: 1, ID: 1, P: vec.New(0, 0)}, Geometry: square(10)}
	overlapping := Body{Key: Key{Kind: 2, ID: 2, P: vec.New(5, 5)}, Geometry: square(10)}
	far := Body{Key: Key{Kind: 2, ID: 3, P: vec.New(500, 0)}, Geometry: square(1000)}

	if !Collide(nil, a, overlapping, 100) {
		t.Error("overlapping squares should collide")
	}
	// far's outline would overlap a, but its centre is beyond the broad phase
	if Collide(nil, a, far, 100) {
		t.Error("bodies beyond the broad phase radius should not collide")
	}
}

func TestCache(t *testing.T) {
	c := NewCache(2)
	b1 := Body{Key: Key{Kind: 1, ID: 1, P: vec.New(1, 1)}, Geometry: square(2)}
	b2 := Body{Key: Key{Kind: 1, ID: 2, P: vec.New(2, 2)}, Geometry: square(2)}
	b3 := Body{Key: Key{Kind: 1, ID: 3, P: vec.New(3, 3)}, Geometry: square(2)}

	first := c.Denormalize(b1)
	again := c.Denormalize(b1)
	if &first[0] != &again[0] {
		t.Error("second lookup should return the memoized outline")
	}

	c.Denormalize(b2)
	c.Denormalize(b3) // exceeds the limit and starts over

	stats := c.Stats()
	if stats.Entries != 1 {
		t.Errorf("Entries = %d, expected 1 after overflow reset", stats.Entries)
	}
	if stats.Hits != 1 || stats.Misses != 3 {
		t.Errorf("Hits/Misses = %d/%d, expected 1/3", stats.Hits, stats.Misses)
	}

	c.Reset()
	if c.Stats().Entries != 0 {
		t.Error("Reset should empty the cache")
	}

	var nilCache *Cache
	if got := nilCache.Denormalize(b1); len(got) != 4 {
		t.Errorf("nil cache Denormalize len = %d, expected 4", len(got))
	}
}

func TestGhosts(t *testing.T) {
	res := vec.New(800, 600)

	tests := []struct {
		name     string
		at       vec.Vector
		expected int
	}{
		{"inside", vec.New(400, 300), 1},
		{"left edge", vec.New(5, 300), 9},
		{"corner", vec.New(795, 595), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly := square(20).Translate(tt.at)
			ghosts := Ghosts(poly, res)
			if len(ghosts) != tt.expected {
				t.Fatalf("len(Ghosts()) = %d, expected %d", len(ghosts), tt.expected)
			}
			if ghosts[0][0] != poly[0] {
				t.Errorf("Ghosts()[0] = %v, expected the original outline first", ghosts[0])
			}
		})
	}

	offsets := GhostOffsets(res)
	seen := make(map[vec.Vector]bool)
	for _, off := range offsets {
		if off == vec.Zero {
			t.Error("GhostOffsets() contains the zero offset")
		}
		seen[off] = true
	}
	if len(seen) != 8 {
		t.Errorf("GhostOffsets() has %d distinct offsets, expected 8", len(seen))
	}
}

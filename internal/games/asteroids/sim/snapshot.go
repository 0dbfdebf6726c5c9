package sim

import "math"

// Snapshot is a flat summary of a World for determinism checks and logs.
type Snapshot struct {
	Time      float64
	Level     int
	Lives     int
	Points    int
	Phase     string
	View      string
	Paused    bool
	NextID    uint64
	Asteroids int
	Shots     int
	Particles int

	ShipX, ShipY   float64
	ShipVX, ShipVY float64
	ShipAngle      float64

	// Each asteroid is 6 floats: ID, X, Y, VX, VY, Size.
	AsteroidData []float64
	// Each shot is 4 floats: X, Y, VX, VY.
	ShotData []float64
}

// Snapshot returns the current world state as a Snapshot.
func (w World) Snapshot() Snapshot {
	asteroidData := make([]float64, 0, len(w.Asteroids)*6)
	for _, a := range w.Asteroids {
		asteroidData = append(asteroidData, float64(a.ID), a.P.X, a.P.Y, a.V.X, a.V.Y, a.Size)
	}
	shotData := make([]float64, 0, len(w.Shots)*4)
	for _, s := range w.Shots {
		shotData = append(shotData, s.P.X, s.P.Y, s.V.X, s.V.Y)
	}

	return Snapshot{
		Time:         w.Time,
		Level:        w.Level,
		Lives:        w.Lives,
		Points:       w.Points,
		Phase:        w.Phase().String(),
		View:         w.View.String(),
		Paused:       w.Paused,
		NextID:       uint64(w.NextID),
		Asteroids:    len(w.Asteroids),
		Shots:        len(w.Shots),
		Particles:    len(w.Particles),
		ShipX:        w.Ship.P.X,
		ShipY:        w.Ship.P.Y,
		ShipVX:       w.Ship.V.X,
		ShipVY:       w.Ship.V.Y,
		ShipAngle:    w.Ship.Angle,
		AsteroidData: asteroidData,
		ShotData:     shotData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := math.Float64bits(snap.Time)
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Points)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Asteroids) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Shots)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Particles) //#nosec G115 -- hash computation
	h = h*31 + snap.NextID
	if snap.Paused {
		h = h*31 + 1
	}
	for _, s := range []string{snap.Phase, snap.View} {
		for i := 0; i < len(s); i++ {
			h = h*31 + uint64(s[i])
		}
	}

	for _, v := range []float64{snap.ShipX, snap.ShipY, snap.ShipVX, snap.ShipVY, snap.ShipAngle} {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.AsteroidData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.ShotData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}

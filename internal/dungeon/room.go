package dungeon

// Feature is a structural decoration a dungeon type may add to a room.
type Feature string

const (
	FeatureRails  Feature = "rails"
	FeatureTomb   Feature = "tomb"
	FeaturePuzzle Feature = "puzzle"
)

// Room is one node of a dungeon's room graph.
type Room struct {
	Archetype string
	X         int
	Y         int
	Width     int
	Height    int

	// Connections holds indices into the owning dungeon's Rooms.
	Connections []int

	SpawnerSlots int
	HasTreasure  bool
	HasBoss      bool
	HasTraps     bool
	HasPuzzle    bool

	Traps    []*Trap
	Features []Feature

	Cleared    bool
	IsEntrance bool
}

// Rect returns the room's grid rectangle.
func (r *Room) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
}

// Center returns the room's center cell.
func (r *Room) Center() Point {
	return r.Rect().Center()
}

// Interior returns the area inset by n cells from each edge. An axis too
// small to inset collapses onto its center cell.
func (r *Room) Interior(n int) Rect {
	in := Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
	c := r.Center()

	if r.Width > 2*n {
		in.X += n
		in.W -= 2 * n
	} else {
		in.X = c.X
		in.W = 1
	}
	if r.Height > 2*n {
		in.Y += n
		in.H -= 2 * n
	} else {
		in.Y = c.Y
		in.H = 1
	}
	return in
}

// ConnectedTo reports whether the room has an edge to room index j.
func (r *Room) ConnectedTo(j int) bool {
	for _, c := range r.Connections {
		if c == j {
			return true
		}
	}
	return false
}

// HasFeature reports whether the room carries feature f.
func (r *Room) HasFeature(f Feature) bool {
	for _, have := range r.Features {
		if have == f {
			return true
		}
	}
	return false
}

// AddFeature tags the room with f once.
func (r *Room) AddFeature(f Feature) {
	if !r.HasFeature(f) {
		r.Features = append(r.Features, f)
	}
}

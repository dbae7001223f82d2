package generation

import (
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

const (
	// DefaultAttemptBudget caps placement attempts for one dungeon.
	DefaultAttemptBudget = 100

	// roomGap is the empty space between a parent and a child room.
	roomGap = 3

	// roomPadding is added around every room when testing for overlap.
	roomPadding = 1
)

// Direction is a cardinal direction on the grid. North is -Y.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// BuildGraph grows the room graph from the rooms already in d until it holds
// target rooms or the attempt budget runs out. Each attempt picks an
// archetype and a parent, then tries the four directions in shuffled order.
// Running out of attempts just leaves a smaller dungeon.
func (g *Generator) BuildGraph(d *dungeon.Dungeon, target int, src rng.Source) {
	attempts := 0
	for len(d.Rooms) < target && attempts < g.attemptBudget {
		attempts++

		archetype, ok := g.pickArchetype(src)
		if !ok {
			break
		}
		parent := rng.Intn(src, len(d.Rooms))

		room, ok := g.MakeRoom(archetype, 0, 0, src)
		if !ok {
			continue
		}
		g.attach(d, room, parent, src)
	}

	if len(d.Rooms) < target {
		logger.Debug("room budget exhausted",
			"dungeon", d.ID,
			"placed", len(d.Rooms),
			"target", target,
			"attempts", attempts)
	}
}

// attach tries to place room next to parent in each direction, shuffled.
// On success the room is appended to d and connected to parent.
func (g *Generator) attach(d *dungeon.Dungeon, room *dungeon.Room, parent int, src rng.Source) (int, bool) {
	p, ok := d.Room(parent)
	if !ok {
		return -1, false
	}

	dirs := []Direction{North, East, South, West}
	rng.Shuffle(src, len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})

	for _, dir := range dirs {
		room.X, room.Y = adjacentPosition(p, room.Width, room.Height, dir)
		if !fits(d, room.Rect()) {
			continue
		}
		idx := d.AddRoom(room)
		d.Connect(parent, idx)
		return idx, true
	}
	return -1, false
}

// adjacentPosition places a w by h room roomGap cells past the parent's edge
// in direction dir, centered on the parent's other axis.
func adjacentPosition(p *dungeon.Room, w, h int, dir Direction) (int, int) {
	switch dir {
	case North:
		return p.X + p.Width/2 - w/2, p.Y - roomGap - h
	case South:
		return p.X + p.Width/2 - w/2, p.Y + p.Height + roomGap
	case East:
		return p.X + p.Width + roomGap, p.Y + p.Height/2 - h/2
	default:
		return p.X - roomGap - w, p.Y + p.Height/2 - h/2
	}
}

// fits reports whether r, padded, is clear of every placed room's padded
// rectangle.
func fits(d *dungeon.Dungeon, r dungeon.Rect) bool {
	candidate := r.Pad(roomPadding)
	for _, placed := range d.Rooms {
		if candidate.Overlaps(placed.Rect().Pad(roomPadding)) {
			return false
		}
	}
	return true
}

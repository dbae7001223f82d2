package generation

import (
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// BuildCorridors replaces d's corridors with one L-shaped corridor per
// undirected edge, visiting edges in ascending canonical order. A coin flip
// per edge picks whether the horizontal leg comes first.
func (g *Generator) BuildCorridors(d *dungeon.Dungeon, src rng.Source) {
	d.Corridors = nil
	for _, e := range d.Edges() {
		d.Corridors = append(d.Corridors, LCorridor(d, e, rng.Chance(src, 0.5), g.corridorWidth))
	}
}

// LCorridor joins the centers of the rooms on edge e with two legs.
func LCorridor(d *dungeon.Dungeon, e dungeon.Edge, horizontalFirst bool, width int) *dungeon.Corridor {
	from := d.Rooms[e.A].Center()
	to := d.Rooms[e.B].Center()

	corner := dungeon.Point{X: from.X, Y: to.Y}
	if horizontalFirst {
		corner = dungeon.Point{X: to.X, Y: from.Y}
	}

	return &dungeon.Corridor{
		From: e.A,
		To:   e.B,
		Segments: []dungeon.Segment{
			{From: from, To: corner},
			{From: corner, To: to},
		},
		Width: width,
	}
}

// ValidCorridor reports whether c still matches the room graph: it must join
// an existing edge and run from one room center to the other along axis
// aligned legs.
func ValidCorridor(d *dungeon.Dungeon, c *dungeon.Corridor) bool {
	if c == nil || c.From >= c.To || len(c.Segments) == 0 {
		return false
	}
	a, okA := d.Room(c.From)
	b, okB := d.Room(c.To)
	if !okA || !okB || !a.ConnectedTo(c.To) {
		return false
	}

	if c.Segments[0].From != a.Center() || c.Segments[len(c.Segments)-1].To != b.Center() {
		return false
	}
	for i, s := range c.Segments {
		if s.From.X != s.To.X && s.From.Y != s.To.Y {
			return false
		}
		if i > 0 && c.Segments[i-1].To != s.From {
			return false
		}
	}
	return true
}

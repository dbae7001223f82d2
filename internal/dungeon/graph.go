package dungeon

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Edge is an undirected room connection in canonical order (A < B).
type Edge struct {
	A int
	B int
}

// CanonicalEdge orders a and b so the lower index comes first.
func CanonicalEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Connect records a mutual connection between rooms a and b. Self loops,
// out of range indices and duplicate edges are rejected.
func (d *Dungeon) Connect(a, b int) bool {
	ra, okA := d.Room(a)
	rb, okB := d.Room(b)
	if !okA || !okB || a == b || ra.ConnectedTo(b) {
		return false
	}
	ra.Connections = append(ra.Connections, b)
	rb.Connections = append(rb.Connections, a)
	return true
}

// Edges returns every undirected edge once, sorted ascending.
func (d *Dungeon) Edges() []Edge {
	seen := mapset.New[Edge]()
	var edges []Edge
	for i, r := range d.Rooms {
		for _, j := range r.Connections {
			e := CanonicalEdge(i, j)
			if seen.Has(e) {
				continue
			}
			seen.Put(e)
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// SetEdges replaces every room's connections with the given edge list.
// Invalid or duplicate edges are skipped; the number applied is returned.
func (d *Dungeon) SetEdges(edges []Edge) int {
	for _, r := range d.Rooms {
		r.Connections = nil
	}
	applied := 0
	for _, e := range edges {
		if d.Connect(e.A, e.B) {
			applied++
		}
	}
	return applied
}

// Reachable returns the set of room indices reachable from start.
func (d *Dungeon) Reachable(start int) mapset.Set[int] {
	visited := mapset.New[int]()
	if _, ok := d.Room(start); !ok {
		return visited
	}

	queue := []int{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited.Has(current) {
			continue
		}
		visited.Put(current)

		for _, n := range d.Rooms[current].Connections {
			if !visited.Has(n) {
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// IsConnected reports whether every room is reachable from the entrance.
func (d *Dungeon) IsConnected() bool {
	entrance := d.EntranceIndex()
	if entrance < 0 {
		return false
	}
	return d.Reachable(entrance).Size() == len(d.Rooms)
}

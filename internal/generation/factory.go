package generation

import (
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// MakeRoom stamps a room from an archetype at grid position x,y. Width is
// drawn before height. Returns false for an unknown archetype.
func (g *Generator) MakeRoom(archetypeID string, x, y int, src rng.Source) (*dungeon.Room, bool) {
	a, ok := g.data.Archetype(archetypeID)
	if !ok {
		return nil, false
	}

	return &dungeon.Room{
		Archetype:    archetypeID,
		X:            x,
		Y:            y,
		Width:        rng.Range(src, a.Width.Min, a.Width.Max),
		Height:       rng.Range(src, a.Height.Min, a.Height.Max),
		SpawnerSlots: a.SpawnerSlots,
		HasTreasure:  a.HasTreasure,
		HasBoss:      a.HasBoss,
		HasTraps:     a.HasTraps,
		HasPuzzle:    a.HasPuzzle,
	}, true
}

// pickArchetype draws a room archetype weighted by Weight. Archetypes with
// weight 0 are never picked. Iteration is in sorted id order.
func (g *Generator) pickArchetype(src rng.Source) (string, bool) {
	var ids []string
	var weights []int
	for _, id := range g.data.ArchetypeIDs() {
		a := g.data.RoomArchetypes[id]
		if a.Weight > 0 {
			ids = append(ids, id)
			weights = append(weights, a.Weight)
		}
	}

	i := weightedIndex(weights, src)
	if i < 0 {
		return "", false
	}
	return ids[i], true
}

// weightedIndex draws r in [0, sum) and subtracts weights in order until the
// remainder is no longer positive. Returns -1 when nothing has weight.
func weightedIndex(weights []int, src rng.Source) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}

	r := src.Next() * float64(total)
	for i, w := range weights {
		r -= float64(w)
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

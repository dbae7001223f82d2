// Package generation grows seeded dungeons: a room graph rooted at the
// entrance, an optional boss room, L-shaped corridors and room content.
package generation

import (
	"fmt"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// DefaultCorridorWidth is used when no width option is given.
const DefaultCorridorWidth = 2

// Generator builds dungeons from a fixed set of game data tables.
type Generator struct {
	data          *config.GameData
	corridorWidth int
	attemptBudget int
}

// Option customizes a Generator.
type Option func(*Generator)

// WithCorridorWidth sets the width of generated corridors.
func WithCorridorWidth(width int) Option {
	return func(g *Generator) {
		if width > 0 {
			g.corridorWidth = width
		}
	}
}

// WithAttemptBudget overrides the number of room placement attempts.
func WithAttemptBudget(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.attemptBudget = n
		}
	}
}

// New creates a generator. Invalid game data is rejected here so that a
// broken table never surfaces halfway through generation.
func New(data *config.GameData, opts ...Option) (*Generator, error) {
	if data == nil {
		return nil, fmt.Errorf("generation: no game data")
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("generation: %w", err)
	}

	g := &Generator{
		data:          data,
		corridorWidth: DefaultCorridorWidth,
		attemptBudget: DefaultAttemptBudget,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Data returns the game data the generator reads.
func (g *Generator) Data() *config.GameData {
	return g.data
}

// Generate builds a complete dungeon. The result depends only on the
// arguments and the game data, so the same seed always yields the same
// dungeon. The only error is an unknown dungeon type.
func (g *Generator) Generate(id string, origin dungeon.Vec3, typeID string, seed int64) (*dungeon.Dungeon, error) {
	dtype, ok := g.data.DungeonType(typeID)
	if !ok {
		return nil, fmt.Errorf("unknown dungeon type %q", typeID)
	}

	src := rng.New(seed)
	d := dungeon.New(id, typeID, origin, seed)

	// Decided up front so a boss room never pushes the count past max_rooms
	wantBoss := rng.Chance(src, dtype.BossChance)
	target := rng.Range(src, dtype.MinRooms, dtype.MaxRooms)
	if wantBoss && target == dtype.MaxRooms {
		target--
	}

	entrance, ok := g.MakeRoom(config.EntranceArchetype, 0, 0, src)
	if !ok {
		return nil, fmt.Errorf("missing %q room archetype", config.EntranceArchetype)
	}
	entrance.IsEntrance = true
	d.AddRoom(entrance)

	g.BuildGraph(d, target, src)

	hasBoss := false
	if wantBoss {
		hasBoss = g.PlaceBoss(d, dtype, src)
	}

	g.BuildCorridors(d, src)
	g.Populate(d, dtype, src)

	logger.Debug("dungeon generated",
		"id", id,
		"type", typeID,
		"seed", seed,
		"target_rooms", target,
		"rooms", len(d.Rooms),
		"corridors", len(d.Corridors),
		"enemies", len(d.Enemies),
		"chests", len(d.Chests),
		"boss_rolled", wantBoss,
		"boss", hasBoss)

	return d, nil
}

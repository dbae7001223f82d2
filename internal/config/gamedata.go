// Package config loads the static game data tables and session settings for
// dungeon generation.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Archetypes with special meaning to the generator. Both must have weight 0.
const (
	EntranceArchetype = "entrance"
	BossArchetype     = "boss"
	CorridorArchetype = "corridor"
)

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DungeonType describes one family of dungeons.
type DungeonType struct {
	Name       string   `yaml:"name"`
	MinRooms   int      `yaml:"min_rooms"`
	MaxRooms   int      `yaml:"max_rooms"`
	Enemies    []string `yaml:"enemies"`
	LootTable  string   `yaml:"loot_table"`
	BossChance float64  `yaml:"boss_chance"`
	Bosses     []string `yaml:"bosses"`
	Traps      []string `yaml:"traps,omitempty"`
	Biomes     []string `yaml:"biomes,omitempty"`

	// Structural flags gate optional content.
	HasRails   bool `yaml:"rails,omitempty"`
	HasTombs   bool `yaml:"tombs,omitempty"`
	HasTraps   bool `yaml:"traps_enabled,omitempty"`
	HasPuzzles bool `yaml:"puzzles,omitempty"`
}

// RoomArchetype is the template rooms are stamped from.
type RoomArchetype struct {
	// Weight 0 means the archetype is never picked at random.
	Weight       int      `yaml:"weight"`
	Width        IntRange `yaml:"width"`
	Height       IntRange `yaml:"height"`
	SpawnerSlots int      `yaml:"spawner_slots"`
	HasTreasure  bool     `yaml:"has_treasure,omitempty"`
	HasBoss      bool     `yaml:"has_boss,omitempty"`
	HasTraps     bool     `yaml:"has_traps,omitempty"`
	HasPuzzle    bool     `yaml:"has_puzzle,omitempty"`
}

// LootEntry is one weighted row of a loot table.
type LootEntry struct {
	Item     string   `yaml:"item"`
	Weight   int      `yaml:"weight"`
	Quantity IntRange `yaml:"quantity"`
}

// LootTable is an ordered list of weighted entries. Order matters for draws.
type LootTable struct {
	Entries []LootEntry `yaml:"entries"`
}

// TotalWeight sums the weights of every entry.
func (t *LootTable) TotalWeight() int {
	total := 0
	for _, e := range t.Entries {
		total += e.Weight
	}
	return total
}

// GameData holds every static table the generator reads. Immutable once loaded.
type GameData struct {
	DungeonTypes   map[string]*DungeonType   `yaml:"dungeon_types"`
	RoomArchetypes map[string]*RoomArchetype `yaml:"room_archetypes"`
	LootTables     map[string]*LootTable     `yaml:"loot_tables"`
}

// LoadGameData reads game data tables from a YAML file and validates them.
func LoadGameData(filename string) (*GameData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read game data file: %w", err)
	}

	var gd GameData
	if err := yaml.Unmarshal(data, &gd); err != nil {
		return nil, fmt.Errorf("failed to parse game data YAML: %w", err)
	}

	if err := gd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game data in %s: %w", filename, err)
	}
	return &gd, nil
}

// DungeonType returns a dungeon type by id.
func (g *GameData) DungeonType(id string) (*DungeonType, bool) {
	t, ok := g.DungeonTypes[id]
	return t, ok
}

// Archetype returns a room archetype by id.
func (g *GameData) Archetype(id string) (*RoomArchetype, bool) {
	a, ok := g.RoomArchetypes[id]
	return a, ok
}

// LootTable returns a loot table by id.
func (g *GameData) LootTable(id string) (*LootTable, bool) {
	t, ok := g.LootTables[id]
	return t, ok
}

// ArchetypeIDs returns every room archetype id in sorted order.
func (g *GameData) ArchetypeIDs() []string {
	return sortedKeys(g.RoomArchetypes)
}

// DungeonTypeIDs returns every dungeon type id in sorted order.
func (g *GameData) DungeonTypeIDs() []string {
	return sortedKeys(g.DungeonTypes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the tables for broken references and impossible ranges.
// Every problem found is reported, not just the first.
func (g *GameData) Validate() error {
	var errs []error

	if len(g.DungeonTypes) == 0 {
		errs = append(errs, errors.New("no dungeon types defined"))
	}

	for _, id := range []string{EntranceArchetype, BossArchetype} {
		a, ok := g.RoomArchetypes[id]
		if !ok {
			errs = append(errs, fmt.Errorf("required room archetype %q is missing", id))
			continue
		}
		if a.Weight != 0 {
			errs = append(errs, fmt.Errorf("room archetype %q must have weight 0, has %d", id, a.Weight))
		}
	}

	selectable := 0
	for _, id := range g.ArchetypeIDs() {
		a := g.RoomArchetypes[id]
		if a == nil {
			errs = append(errs, fmt.Errorf("room archetype %q is empty", id))
			continue
		}
		if a.Weight < 0 {
			errs = append(errs, fmt.Errorf("room archetype %q has negative weight", id))
		}
		if a.Weight > 0 {
			selectable++
		}
		if a.Width.Min < 1 || a.Width.Max < a.Width.Min {
			errs = append(errs, fmt.Errorf("room archetype %q has invalid width range %d-%d", id, a.Width.Min, a.Width.Max))
		}
		if a.Height.Min < 1 || a.Height.Max < a.Height.Min {
			errs = append(errs, fmt.Errorf("room archetype %q has invalid height range %d-%d", id, a.Height.Min, a.Height.Max))
		}
		if a.SpawnerSlots < 0 {
			errs = append(errs, fmt.Errorf("room archetype %q has negative spawner slots", id))
		}
	}
	if selectable == 0 {
		errs = append(errs, errors.New("no room archetype has a positive weight"))
	}

	for _, id := range sortedKeys(g.LootTables) {
		t := g.LootTables[id]
		if t == nil || len(t.Entries) == 0 {
			errs = append(errs, fmt.Errorf("loot table %q has no entries", id))
			continue
		}
		for i, e := range t.Entries {
			if e.Item == "" {
				errs = append(errs, fmt.Errorf("loot table %q entry %d has no item", id, i))
			}
			if e.Weight <= 0 {
				errs = append(errs, fmt.Errorf("loot table %q entry %q has non-positive weight", id, e.Item))
			}
			if e.Quantity.Min < 1 || e.Quantity.Max < e.Quantity.Min {
				errs = append(errs, fmt.Errorf("loot table %q entry %q has invalid quantity range", id, e.Item))
			}
		}
	}

	for _, id := range g.DungeonTypeIDs() {
		errs = append(errs, g.validateDungeonType(id)...)
	}

	return errors.Join(errs...)
}

func (g *GameData) validateDungeonType(id string) []error {
	var errs []error
	t := g.DungeonTypes[id]
	if t == nil {
		return []error{fmt.Errorf("dungeon type %q is empty", id)}
	}

	if t.MinRooms < 1 {
		errs = append(errs, fmt.Errorf("dungeon type %q: min_rooms must be at least 1", id))
	}
	if t.MaxRooms < t.MinRooms {
		errs = append(errs, fmt.Errorf("dungeon type %q: max_rooms %d below min_rooms %d", id, t.MaxRooms, t.MinRooms))
	}
	if len(t.Enemies) == 0 {
		errs = append(errs, fmt.Errorf("dungeon type %q: no enemy archetypes", id))
	}
	if _, ok := g.LootTables[t.LootTable]; !ok {
		errs = append(errs, fmt.Errorf("dungeon type %q: unknown loot table %q", id, t.LootTable))
	}
	if t.BossChance < 0 || t.BossChance > 1 {
		errs = append(errs, fmt.Errorf("dungeon type %q: boss_chance %.2f outside [0,1]", id, t.BossChance))
	}
	if t.BossChance > 0 && len(t.Bosses) == 0 {
		errs = append(errs, fmt.Errorf("dungeon type %q: boss_chance set but no bosses listed", id))
	}
	if t.HasTraps && len(t.Traps) == 0 {
		errs = append(errs, fmt.Errorf("dungeon type %q: traps enabled but no trap archetypes", id))
	}
	return errs
}

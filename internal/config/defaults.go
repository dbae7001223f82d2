package config

// DefaultGameData returns the built-in dungeon tables.
// Each call returns a fresh copy that callers may modify.
func DefaultGameData() *GameData {
	return &GameData{
		DungeonTypes: map[string]*DungeonType{
			"cave": {
				Name:       "Cave",
				MinRooms:   5,
				MaxRooms:   12,
				Enemies:    []string{"bat", "cave_spider", "slime"},
				LootTable:  "cave",
				BossChance: 0.3,
				Bosses:     []string{"cave_troll", "brood_mother"},
				Biomes:     []string{"hills", "mountains"},
			},
			"crypt": {
				Name:       "Crypt",
				MinRooms:   6,
				MaxRooms:   14,
				Enemies:    []string{"skeleton", "zombie", "wraith"},
				LootTable:  "crypt",
				BossChance: 0.5,
				Bosses:     []string{"lich", "bone_knight"},
				Traps:      []string{"spike_pit", "poison_dart"},
				Biomes:     []string{"plains", "swamp"},
				HasTombs:   true,
				HasTraps:   true,
			},
			"mine": {
				Name:       "Abandoned Mine",
				MinRooms:   6,
				MaxRooms:   14,
				Enemies:    []string{"kobold", "goblin", "rock_golem"},
				LootTable:  "mine",
				BossChance: 0.2,
				Bosses:     []string{"foreman_golem"},
				Traps:      []string{"cave_in", "spike_pit"},
				Biomes:     []string{"desert", "mountains"},
				HasRails:   true,
				HasTraps:   true,
			},
			"temple": {
				Name:       "Sunken Temple",
				MinRooms:   8,
				MaxRooms:   16,
				Enemies:    []string{"cultist", "temple_guardian", "serpent"},
				LootTable:  "temple",
				BossChance: 0.8,
				Bosses:     []string{"high_priest", "stone_colossus"},
				Traps:      []string{"poison_dart", "fire_jet", "spike_pit"},
				Biomes:     []string{"forest", "jungle"},
				HasTraps:   true,
				HasPuzzles: true,
			},
		},
		RoomArchetypes: map[string]*RoomArchetype{
			EntranceArchetype: {
				Weight: 0,
				Width:  IntRange{6, 8},
				Height: IntRange{6, 8},
			},
			BossArchetype: {
				Weight:  0,
				Width:   IntRange{8, 10},
				Height:  IntRange{8, 10},
				HasBoss: true,
			},
			"chamber": {
				Weight:       40,
				Width:        IntRange{6, 10},
				Height:       IntRange{6, 10},
				SpawnerSlots: 2,
			},
			CorridorArchetype: {
				Weight:       20,
				Width:        IntRange{3, 5},
				Height:       IntRange{8, 12},
				SpawnerSlots: 1,
			},
			"den": {
				Weight:       14,
				Width:        IntRange{8, 12},
				Height:       IntRange{8, 12},
				SpawnerSlots: 4,
			},
			"treasury": {
				Weight:       10,
				Width:        IntRange{5, 7},
				Height:       IntRange{5, 7},
				SpawnerSlots: 1,
				HasTreasure:  true,
			},
			"gauntlet": {
				Weight:       10,
				Width:        IntRange{6, 8},
				Height:       IntRange{6, 8},
				SpawnerSlots: 1,
				HasTraps:     true,
			},
			"puzzle_hall": {
				Weight:    6,
				Width:     IntRange{7, 9},
				Height:    IntRange{7, 9},
				HasPuzzle: true,
			},
		},
		LootTables: map[string]*LootTable{
			"cave": {Entries: []LootEntry{
				{Item: "copper_coin", Weight: 50, Quantity: IntRange{5, 20}},
				{Item: "torch", Weight: 20, Quantity: IntRange{1, 3}},
				{Item: "healing_potion", Weight: 15, Quantity: IntRange{1, 2}},
				{Item: "iron_ore", Weight: 10, Quantity: IntRange{1, 4}},
				{Item: "glowing_mushroom", Weight: 5, Quantity: IntRange{1, 1}},
			}},
			"crypt": {Entries: []LootEntry{
				{Item: "silver_coin", Weight: 40, Quantity: IntRange{3, 12}},
				{Item: "bone_charm", Weight: 20, Quantity: IntRange{1, 1}},
				{Item: "healing_potion", Weight: 20, Quantity: IntRange{1, 2}},
				{Item: "ancient_ring", Weight: 12, Quantity: IntRange{1, 1}},
				{Item: "portal_stone", Weight: 8, Quantity: IntRange{1, 1}},
			}},
			"mine": {Entries: []LootEntry{
				{Item: "copper_coin", Weight: 30, Quantity: IntRange{5, 25}},
				{Item: "iron_ore", Weight: 30, Quantity: IntRange{2, 6}},
				{Item: "gold_nugget", Weight: 15, Quantity: IntRange{1, 3}},
				{Item: "pickaxe", Weight: 15, Quantity: IntRange{1, 1}},
				{Item: "gem", Weight: 10, Quantity: IntRange{1, 2}},
			}},
			"temple": {Entries: []LootEntry{
				{Item: "gold_coin", Weight: 35, Quantity: IntRange{2, 10}},
				{Item: "sacred_relic", Weight: 15, Quantity: IntRange{1, 1}},
				{Item: "mana_potion", Weight: 20, Quantity: IntRange{1, 3}},
				{Item: "healing_potion", Weight: 20, Quantity: IntRange{1, 3}},
				{Item: "portal_stone", Weight: 10, Quantity: IntRange{1, 1}},
			}},
		},
	}
}

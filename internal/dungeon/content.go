package dungeon

// EntityHandle is an opaque reference to an entity materialized by the host
// game. It is never persisted.
type EntityHandle any

// EnemySpawn is the intent to spawn one enemy. Spawned and Defeated only move
// from false to true.
type EnemySpawn struct {
	Archetype string
	X         int
	Y         int
	Room      int
	Spawned   bool
	Defeated  bool
	Handle    EntityHandle
}

// MarkSpawned records a materialized entity. Returns false if already spawned.
func (e *EnemySpawn) MarkSpawned(h EntityHandle) bool {
	if e.Spawned {
		return false
	}
	e.Spawned = true
	e.Handle = h
	return true
}

// MarkDefeated flags the enemy as defeated. Only a spawned enemy can be
// defeated, and only once.
func (e *EnemySpawn) MarkDefeated() bool {
	if !e.Spawned || e.Defeated {
		return false
	}
	e.Defeated = true
	e.Handle = nil
	return true
}

// ChestTier controls how many loot draws a chest receives.
type ChestTier string

const (
	TierNormal   ChestTier = "normal"
	TierTreasure ChestTier = "treasure"
	TierBoss     ChestTier = "boss"
)

// LootItem is one resolved (item, quantity) pair.
type LootItem struct {
	Item     string
	Quantity int
}

// LootChest holds loot resolved at generation time.
type LootChest struct {
	X      int
	Y      int
	Room   int
	Tier   ChestTier
	Items  []LootItem
	Opened bool
}

// Open marks the chest opened and returns its contents. A chest opens once;
// later calls return nil.
func (c *LootChest) Open() []LootItem {
	if c.Opened {
		return nil
	}
	c.Opened = true
	return c.Items
}

// Trap sits hidden in a room until triggered.
type Trap struct {
	Archetype string
	X         int
	Y         int
	Triggered bool
	Visible   bool
}

// Trigger springs the trap and reveals it. Returns false if already triggered.
func (t *Trap) Trigger() bool {
	if t.Triggered {
		return false
	}
	t.Triggered = true
	t.Visible = true
	return true
}

// Boss is the optional boss of a dungeon. Defeated is only reachable after
// Spawned.
type Boss struct {
	Room      int
	Archetype string
	Spawned   bool
	Defeated  bool
	Handle    EntityHandle
}

// MarkSpawned records the materialized boss. Returns false if already spawned.
func (b *Boss) MarkSpawned(h EntityHandle) bool {
	if b.Spawned {
		return false
	}
	b.Spawned = true
	b.Handle = h
	return true
}

// MarkDefeated flags the boss as defeated once it has spawned.
func (b *Boss) MarkDefeated() bool {
	if !b.Spawned || b.Defeated {
		return false
	}
	b.Defeated = true
	b.Handle = nil
	return true
}

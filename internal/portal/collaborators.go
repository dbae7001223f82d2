package portal

import (
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
)

// WorldQuery answers terrain questions about the overworld. It is never
// asked to change anything.
type WorldQuery interface {
	HeightAt(x, y float64) float64
	BiomeAt(x, y float64) string
}

// EntitySpawner materializes enemies and bosses. A nil handle, or a nil
// pointer, map or slice, means the spawn failed; the runtime will try again
// on a later frame.
type EntitySpawner interface {
	Spawn(archetype string, x, y, z float64) dungeon.EntityHandle
}

// NotificationSink shows fire-and-forget messages to the player.
type NotificationSink interface {
	Notify(n Notification)
}

// Inventory is the player's inventory, used for portal stones.
type Inventory interface {
	HasItem(id string) bool
	RemoveItem(id string, count int)
}

// ClearRecorder records dungeon clears. It reports whether this was the
// first clear of the dungeon type.
type ClearRecorder interface {
	RecordClear(dungeonType, dungeonID string) (bool, error)
}

// Collaborators bundles the host game's services. Nil fields are replaced by
// no-op implementations; Clears may stay nil.
type Collaborators struct {
	World     WorldQuery
	Spawner   EntitySpawner
	Notifier  NotificationSink
	Inventory Inventory
	Clears    ClearRecorder
}

func (c Collaborators) withDefaults() Collaborators {
	if c.World == nil {
		c.World = NoopWorld{}
	}
	if c.Spawner == nil {
		c.Spawner = NoopSpawner{}
	}
	if c.Notifier == nil {
		c.Notifier = NoopNotifier{}
	}
	if c.Inventory == nil {
		c.Inventory = NoopInventory{}
	}
	return c
}

// NotificationKind identifies a notification.
type NotificationKind string

const (
	NotifyPortalOpened  NotificationKind = "portal_opened"
	NotifyDiscovered    NotificationKind = "dungeon_discovered"
	NotifyBossAppears   NotificationKind = "boss_appears"
	NotifyBossDefeated  NotificationKind = "boss_defeated"
	NotifyCleared       NotificationKind = "dungeon_cleared"
	NotifyTrapTriggered NotificationKind = "trap_triggered"
)

// Notification is a message for the player-facing layer.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	DungeonID   string           `json:"dungeon_id,omitempty"`
	DungeonType string           `json:"dungeon_type,omitempty"`
	PortalID    string           `json:"portal_id,omitempty"`
	Message     string           `json:"message"`
	FirstClear  bool             `json:"first_clear,omitempty"`
}

// NoopWorld is flat, featureless ground at height 0.
type NoopWorld struct{}

func (NoopWorld) HeightAt(x, y float64) float64 { return 0 }
func (NoopWorld) BiomeAt(x, y float64) string   { return "" }

// NoopHandle is the entity handle returned by NoopSpawner.
type NoopHandle struct {
	Archetype string
	X, Y, Z   float64
}

// NoopSpawner accepts every spawn without creating anything.
type NoopSpawner struct{}

func (NoopSpawner) Spawn(archetype string, x, y, z float64) dungeon.EntityHandle {
	return &NoopHandle{Archetype: archetype, X: x, Y: y, Z: z}
}

// NoopNotifier drops notifications.
type NoopNotifier struct{}

func (NoopNotifier) Notify(Notification) {}

// NoopInventory is always empty.
type NoopInventory struct{}

func (NoopInventory) HasItem(string) bool { return false }

func (NoopInventory) RemoveItem(string, int) {}

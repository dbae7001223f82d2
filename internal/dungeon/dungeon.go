// Package dungeon holds the generated dungeon model: rooms stored in a flat
// arena, the corridors derived from their connections, and the content
// descriptors placed in them.
package dungeon

// Corridor joins the centers of two connected rooms with an L of two legs.
// From is always the lower room index.
type Corridor struct {
	From     int
	To       int
	Segments []Segment
	Width    int
}

// Dungeon is the aggregate root produced by the generator.
type Dungeon struct {
	ID     string
	Type   string
	Origin Vec3
	Seed   int64

	Rooms     []*Room
	Corridors []*Corridor
	Enemies   []*EnemySpawn
	Chests    []*LootChest
	Boss      *Boss

	Discovered bool
	Cleared    bool
}

// New creates an empty dungeon.
func New(id, typeID string, origin Vec3, seed int64) *Dungeon {
	return &Dungeon{
		ID:     id,
		Type:   typeID,
		Origin: origin,
		Seed:   seed,
	}
}

// AddRoom appends a room to the arena and returns its index.
func (d *Dungeon) AddRoom(r *Room) int {
	d.Rooms = append(d.Rooms, r)
	return len(d.Rooms) - 1
}

// Room returns the room at index i.
func (d *Dungeon) Room(i int) (*Room, bool) {
	if i < 0 || i >= len(d.Rooms) {
		return nil, false
	}
	return d.Rooms[i], true
}

// EntranceIndex returns the index of the entrance room, or -1.
func (d *Dungeon) EntranceIndex() int {
	for i, r := range d.Rooms {
		if r.IsEntrance {
			return i
		}
	}
	return -1
}

// Entrance returns the entrance room, or nil.
func (d *Dungeon) Entrance() *Room {
	if i := d.EntranceIndex(); i >= 0 {
		return d.Rooms[i]
	}
	return nil
}

// BossRoom returns the index of the boss room, or -1 when there is no boss.
func (d *Dungeon) BossRoom() int {
	if d.Boss == nil {
		return -1
	}
	return d.Boss.Room
}

// EnemiesIn returns the spawn descriptors belonging to room i.
func (d *Dungeon) EnemiesIn(i int) []*EnemySpawn {
	var out []*EnemySpawn
	for _, e := range d.Enemies {
		if e.Room == i {
			out = append(out, e)
		}
	}
	return out
}

// ChestsIn returns the chests belonging to room i.
func (d *Dungeon) ChestsIn(i int) []*LootChest {
	var out []*LootChest
	for _, c := range d.Chests {
		if c.Room == i {
			out = append(out, c)
		}
	}
	return out
}

// RoomWorldRect returns room i's rectangle in world units.
func (d *Dungeon) RoomWorldRect(i int, cellSize float64) (WorldRect, bool) {
	r, ok := d.Room(i)
	if !ok {
		return WorldRect{}, false
	}
	return ToWorld(r.Rect(), d.Origin, cellSize), true
}

// EntranceCenter returns the world-space center of the entrance room.
func (d *Dungeon) EntranceCenter(cellSize float64) (Vec3, bool) {
	wr, ok := d.RoomWorldRect(d.EntranceIndex(), cellSize)
	if !ok {
		return Vec3{}, false
	}
	x, y := wr.Center()
	return Vec3{X: x, Y: y, Z: d.Origin.Z}, true
}

// Bounds returns the grid rectangle enclosing every room.
func (d *Dungeon) Bounds() Rect {
	if len(d.Rooms) == 0 {
		return Rect{}
	}
	first := d.Rooms[0]
	minX, minY := first.X, first.Y
	maxX, maxY := first.X+first.Width, first.Y+first.Height
	for _, r := range d.Rooms[1:] {
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
		maxX = max(maxX, r.X+r.Width)
		maxY = max(maxY, r.Y+r.Height)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// RoomCleared reports whether every enemy of room i has been defeated.
// A room without enemies is never cleared by this check alone.
func (d *Dungeon) RoomCleared(i int) bool {
	enemies := d.EnemiesIn(i)
	if len(enemies) == 0 {
		return false
	}
	for _, e := range enemies {
		if !e.Defeated {
			return false
		}
	}
	return true
}

// AllRoomsCleared reports whether every room is flagged cleared.
func (d *Dungeon) AllRoomsCleared() bool {
	for _, r := range d.Rooms {
		if !r.Cleared {
			return false
		}
	}
	return len(d.Rooms) > 0
}

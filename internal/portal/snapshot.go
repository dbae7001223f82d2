package portal

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/generation"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// SnapshotVersion is the current snapshot layout.
const SnapshotVersion = 1

// Snapshot is the persistent form of a Runtime. Room connections are stored
// once, as an edge list, instead of on each room.
type Snapshot struct {
	Version  int           `yaml:"version" json:"version"`
	Portals  []PortalData  `yaml:"portals" json:"portals"`
	Dungeons []DungeonData `yaml:"dungeons" json:"dungeons"`
	Session  SessionData   `yaml:"session" json:"session"`
}

// Vec3Data is a serialized world position.
type Vec3Data struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// PortalData is a serialized portal.
type PortalData struct {
	ID          string   `yaml:"id" json:"id"`
	Position    Vec3Data `yaml:"position" json:"position"`
	DungeonType string   `yaml:"dungeon_type" json:"dungeon_type"`
	DungeonID   string   `yaml:"dungeon_id,omitempty" json:"dungeon_id,omitempty"`
	Active      bool     `yaml:"active" json:"active"`
	Phase       float64  `yaml:"phase" json:"phase"`
}

// SessionData is the serialized session.
type SessionData struct {
	InDungeon      bool     `yaml:"in_dungeon" json:"in_dungeon"`
	DungeonID      string   `yaml:"dungeon_id,omitempty" json:"dungeon_id,omitempty"`
	PortalID       string   `yaml:"portal_id,omitempty" json:"portal_id,omitempty"`
	ReturnPosition Vec3Data `yaml:"return_position" json:"return_position"`
}

// DungeonData is a serialized dungeon.
type DungeonData struct {
	ID         string         `yaml:"id" json:"id"`
	Type       string         `yaml:"type" json:"type"`
	Origin     Vec3Data       `yaml:"origin" json:"origin"`
	Seed       int64          `yaml:"seed" json:"seed"`
	Rooms      []RoomData     `yaml:"rooms" json:"rooms"`
	Edges      []EdgeData     `yaml:"edges" json:"edges"`
	Corridors  []CorridorData `yaml:"corridors,omitempty" json:"corridors,omitempty"`
	Enemies    []EnemyData    `yaml:"enemies,omitempty" json:"enemies,omitempty"`
	Chests     []ChestData    `yaml:"chests,omitempty" json:"chests,omitempty"`
	Boss       *BossData      `yaml:"boss,omitempty" json:"boss,omitempty"`
	Discovered bool           `yaml:"discovered" json:"discovered"`
	Cleared    bool           `yaml:"cleared" json:"cleared"`
}

// RoomData is a serialized room without its connections.
type RoomData struct {
	Archetype    string     `yaml:"archetype" json:"archetype"`
	X            int        `yaml:"x" json:"x"`
	Y            int        `yaml:"y" json:"y"`
	Width        int        `yaml:"width" json:"width"`
	Height       int        `yaml:"height" json:"height"`
	SpawnerSlots int        `yaml:"spawner_slots,omitempty" json:"spawner_slots,omitempty"`
	HasTreasure  bool       `yaml:"has_treasure,omitempty" json:"has_treasure,omitempty"`
	HasBoss      bool       `yaml:"has_boss,omitempty" json:"has_boss,omitempty"`
	HasTraps     bool       `yaml:"has_traps,omitempty" json:"has_traps,omitempty"`
	HasPuzzle    bool       `yaml:"has_puzzle,omitempty" json:"has_puzzle,omitempty"`
	Traps        []TrapData `yaml:"traps,omitempty" json:"traps,omitempty"`
	Features     []string   `yaml:"features,omitempty" json:"features,omitempty"`
	Cleared      bool       `yaml:"cleared,omitempty" json:"cleared,omitempty"`
	IsEntrance   bool       `yaml:"is_entrance,omitempty" json:"is_entrance,omitempty"`
}

// EdgeData is one undirected connection, A < B.
type EdgeData struct {
	A int `yaml:"a" json:"a"`
	B int `yaml:"b" json:"b"`
}

// CorridorData is a serialized corridor.
type CorridorData struct {
	From     int           `yaml:"from" json:"from"`
	To       int           `yaml:"to" json:"to"`
	Segments []SegmentData `yaml:"segments" json:"segments"`
	Width    int           `yaml:"width" json:"width"`
}

// SegmentData is one corridor leg.
type SegmentData struct {
	X1 int `yaml:"x1" json:"x1"`
	Y1 int `yaml:"y1" json:"y1"`
	X2 int `yaml:"x2" json:"x2"`
	Y2 int `yaml:"y2" json:"y2"`
}

// EnemyData is a serialized enemy spawn descriptor.
type EnemyData struct {
	Archetype string `yaml:"archetype" json:"archetype"`
	X         int    `yaml:"x" json:"x"`
	Y         int    `yaml:"y" json:"y"`
	Room      int    `yaml:"room" json:"room"`
	Spawned   bool   `yaml:"spawned,omitempty" json:"spawned,omitempty"`
	Defeated  bool   `yaml:"defeated,omitempty" json:"defeated,omitempty"`
}

// ChestData is a serialized loot chest.
type ChestData struct {
	X      int        `yaml:"x" json:"x"`
	Y      int        `yaml:"y" json:"y"`
	Room   int        `yaml:"room" json:"room"`
	Tier   string     `yaml:"tier" json:"tier"`
	Items  []ItemData `yaml:"items" json:"items"`
	Opened bool       `yaml:"opened,omitempty" json:"opened,omitempty"`
}

// ItemData is one resolved loot entry.
type ItemData struct {
	Item     string `yaml:"item" json:"item"`
	Quantity int    `yaml:"quantity" json:"quantity"`
}

// TrapData is a serialized trap.
type TrapData struct {
	Archetype string `yaml:"archetype" json:"archetype"`
	X         int    `yaml:"x" json:"x"`
	Y         int    `yaml:"y" json:"y"`
	Triggered bool   `yaml:"triggered,omitempty" json:"triggered,omitempty"`
	Visible   bool   `yaml:"visible,omitempty" json:"visible,omitempty"`
}

// BossData is a serialized boss.
type BossData struct {
	Room      int    `yaml:"room" json:"room"`
	Archetype string `yaml:"archetype" json:"archetype"`
	Spawned   bool   `yaml:"spawned,omitempty" json:"spawned,omitempty"`
	Defeated  bool   `yaml:"defeated,omitempty" json:"defeated,omitempty"`
}

// Serialize captures every portal, dungeon and the session.
func (r *Runtime) Serialize() *Snapshot {
	snap := &Snapshot{
		Version: SnapshotVersion,
		Session: SessionData{
			InDungeon:      r.session.InDungeon(),
			DungeonID:      r.session.DungeonID,
			PortalID:       r.session.PortalID,
			ReturnPosition: vecData(r.session.ReturnPosition),
		},
	}
	for _, p := range r.Portals() {
		snap.Portals = append(snap.Portals, PortalData{
			ID:          p.ID,
			Position:    vecData(p.Position),
			DungeonType: p.DungeonType,
			DungeonID:   p.DungeonID,
			Active:      p.Active,
			Phase:       p.Phase,
		})
	}
	for _, d := range r.Dungeons() {
		snap.Dungeons = append(snap.Dungeons, DungeonToData(d))
	}
	return snap
}

// Deserialize replaces the runtime's state with a snapshot. Connections are
// rebuilt from each dungeon's edge list, and corridors that are missing or
// no longer match the edges are regenerated. On error the runtime is left
// untouched.
//
// Entity handles do not survive a reload, so enemies and bosses that were
// spawned but not defeated are reset to unspawned and appear again when the
// player next enters their room.
func (r *Runtime) Deserialize(snap *Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	dungeons := make(map[string]*dungeon.Dungeon, len(snap.Dungeons))
	var dungeonOrder []string
	for i := range snap.Dungeons {
		dd := &snap.Dungeons[i]
		if _, dup := dungeons[dd.ID]; dup || dd.ID == "" {
			return fmt.Errorf("dungeon %d: missing or duplicate id %q", i, dd.ID)
		}
		d, err := r.dungeonFromData(dd)
		if err != nil {
			return fmt.Errorf("dungeon %q: %w", dd.ID, err)
		}
		dungeons[d.ID] = d
		dungeonOrder = append(dungeonOrder, d.ID)
	}

	portals := make(map[string]*Portal, len(snap.Portals))
	var portalOrder []string
	for _, pd := range snap.Portals {
		if _, dup := portals[pd.ID]; dup || pd.ID == "" {
			return fmt.Errorf("missing or duplicate portal id %q", pd.ID)
		}
		if _, ok := r.data.DungeonType(pd.DungeonType); !ok {
			return fmt.Errorf("portal %q: unknown dungeon type %q", pd.ID, pd.DungeonType)
		}
		portals[pd.ID] = &Portal{
			ID:          pd.ID,
			Position:    vecFromData(pd.Position),
			DungeonType: pd.DungeonType,
			DungeonID:   pd.DungeonID,
			Active:      pd.Active,
			Phase:       pd.Phase,
		}
		portalOrder = append(portalOrder, pd.ID)
	}

	session := Session{}
	if snap.Session.InDungeon {
		if _, ok := dungeons[snap.Session.DungeonID]; !ok {
			return fmt.Errorf("session is inside unknown dungeon %q", snap.Session.DungeonID)
		}
		session = Session{
			State:          InDungeon,
			DungeonID:      snap.Session.DungeonID,
			PortalID:       snap.Session.PortalID,
			ReturnPosition: vecFromData(snap.Session.ReturnPosition),
		}
	}

	r.dungeons, r.dungeonOrder = dungeons, dungeonOrder
	r.portals, r.portalOrder = portals, portalOrder
	r.session = session

	logger.Info("registry loaded", "portals", len(portals), "dungeons", len(dungeons))
	return nil
}

// DungeonToData converts a dungeon to its serialized form.
func DungeonToData(d *dungeon.Dungeon) DungeonData {
	dd := DungeonData{
		ID:         d.ID,
		Type:       d.Type,
		Origin:     vecData(d.Origin),
		Seed:       d.Seed,
		Discovered: d.Discovered,
		Cleared:    d.Cleared,
	}

	for _, room := range d.Rooms {
		rd := RoomData{
			Archetype:    room.Archetype,
			X:            room.X,
			Y:            room.Y,
			Width:        room.Width,
			Height:       room.Height,
			SpawnerSlots: room.SpawnerSlots,
			HasTreasure:  room.HasTreasure,
			HasBoss:      room.HasBoss,
			HasTraps:     room.HasTraps,
			HasPuzzle:    room.HasPuzzle,
			Cleared:      room.Cleared,
			IsEntrance:   room.IsEntrance,
		}
		for _, t := range room.Traps {
			rd.Traps = append(rd.Traps, TrapData{
				Archetype: t.Archetype,
				X:         t.X,
				Y:         t.Y,
				Triggered: t.Triggered,
				Visible:   t.Visible,
			})
		}
		for _, f := range room.Features {
			rd.Features = append(rd.Features, string(f))
		}
		dd.Rooms = append(dd.Rooms, rd)
	}

	for _, e := range d.Edges() {
		dd.Edges = append(dd.Edges, EdgeData{A: e.A, B: e.B})
	}

	for _, c := range d.Corridors {
		cd := CorridorData{From: c.From, To: c.To, Width: c.Width}
		for _, s := range c.Segments {
			cd.Segments = append(cd.Segments, SegmentData{X1: s.From.X, Y1: s.From.Y, X2: s.To.X, Y2: s.To.Y})
		}
		dd.Corridors = append(dd.Corridors, cd)
	}

	for _, e := range d.Enemies {
		dd.Enemies = append(dd.Enemies, EnemyData{
			Archetype: e.Archetype,
			X:         e.X,
			Y:         e.Y,
			Room:      e.Room,
			Spawned:   e.Spawned,
			Defeated:  e.Defeated,
		})
	}

	for _, c := range d.Chests {
		cd := ChestData{X: c.X, Y: c.Y, Room: c.Room, Tier: string(c.Tier), Opened: c.Opened}
		for _, it := range c.Items {
			cd.Items = append(cd.Items, ItemData{Item: it.Item, Quantity: it.Quantity})
		}
		dd.Chests = append(dd.Chests, cd)
	}

	if d.Boss != nil {
		dd.Boss = &BossData{
			Room:      d.Boss.Room,
			Archetype: d.Boss.Archetype,
			Spawned:   d.Boss.Spawned,
			Defeated:  d.Boss.Defeated,
		}
	}
	return dd
}

func (r *Runtime) dungeonFromData(dd *DungeonData) (*dungeon.Dungeon, error) {
	if _, ok := r.data.DungeonType(dd.Type); !ok {
		return nil, fmt.Errorf("unknown dungeon type %q", dd.Type)
	}

	d := dungeon.New(dd.ID, dd.Type, vecFromData(dd.Origin), dd.Seed)
	d.Discovered = dd.Discovered
	d.Cleared = dd.Cleared

	entrances := 0
	for _, rd := range dd.Rooms {
		room := &dungeon.Room{
			Archetype:    rd.Archetype,
			X:            rd.X,
			Y:            rd.Y,
			Width:        rd.Width,
			Height:       rd.Height,
			SpawnerSlots: rd.SpawnerSlots,
			HasTreasure:  rd.HasTreasure,
			HasBoss:      rd.HasBoss,
			HasTraps:     rd.HasTraps,
			HasPuzzle:    rd.HasPuzzle,
			Cleared:      rd.Cleared,
			IsEntrance:   rd.IsEntrance,
		}
		if room.IsEntrance {
			entrances++
		}
		for _, td := range rd.Traps {
			room.Traps = append(room.Traps, &dungeon.Trap{
				Archetype: td.Archetype,
				X:         td.X,
				Y:         td.Y,
				Triggered: td.Triggered,
				Visible:   td.Visible,
			})
		}
		for _, f := range rd.Features {
			room.Features = append(room.Features, dungeon.Feature(f))
		}
		d.AddRoom(room)
	}
	if entrances != 1 {
		return nil, fmt.Errorf("%d entrance rooms, want 1", entrances)
	}

	edges := make([]dungeon.Edge, 0, len(dd.Edges))
	for _, ed := range dd.Edges {
		if ed.A == ed.B || ed.A < 0 || ed.B < 0 || ed.A >= len(d.Rooms) || ed.B >= len(d.Rooms) {
			return nil, fmt.Errorf("invalid edge %d-%d", ed.A, ed.B)
		}
		edges = append(edges, dungeon.CanonicalEdge(ed.A, ed.B))
	}
	d.SetEdges(edges)
	if !d.IsConnected() {
		return nil, errors.New("room graph is not connected")
	}

	r.restoreCorridors(d, dd.Corridors)

	inRoom := func(room int) bool { return room >= 0 && room < len(d.Rooms) }

	for _, ed := range dd.Enemies {
		if !inRoom(ed.Room) {
			return nil, fmt.Errorf("enemy in unknown room %d", ed.Room)
		}
		e := &dungeon.EnemySpawn{Archetype: ed.Archetype, X: ed.X, Y: ed.Y, Room: ed.Room}
		if ed.Defeated {
			e.Spawned, e.Defeated = true, true
		}
		d.Enemies = append(d.Enemies, e)
	}

	for _, cd := range dd.Chests {
		if !inRoom(cd.Room) {
			return nil, fmt.Errorf("chest in unknown room %d", cd.Room)
		}
		c := &dungeon.LootChest{X: cd.X, Y: cd.Y, Room: cd.Room, Tier: dungeon.ChestTier(cd.Tier), Opened: cd.Opened}
		for _, it := range cd.Items {
			c.Items = append(c.Items, dungeon.LootItem{Item: it.Item, Quantity: it.Quantity})
		}
		d.Chests = append(d.Chests, c)
	}

	if bd := dd.Boss; bd != nil {
		if !inRoom(bd.Room) || d.Rooms[bd.Room].IsEntrance {
			return nil, fmt.Errorf("boss in invalid room %d", bd.Room)
		}
		d.Boss = &dungeon.Boss{Room: bd.Room, Archetype: bd.Archetype}
		if bd.Defeated {
			d.Boss.Spawned, d.Boss.Defeated = true, true
		}
	}
	return d, nil
}

// restoreCorridors loads saved corridors when they match the edge list one
// to one, and otherwise rebuilds them from a sequence derived from the
// dungeon seed.
func (r *Runtime) restoreCorridors(d *dungeon.Dungeon, saved []CorridorData) {
	edges := d.Edges()
	if len(saved) == len(edges) {
		seen := mapset.New[dungeon.Edge]()
		var corridors []*dungeon.Corridor
		for _, cd := range saved {
			c := &dungeon.Corridor{From: cd.From, To: cd.To, Width: cd.Width}
			for _, s := range cd.Segments {
				c.Segments = append(c.Segments, dungeon.Segment{
					From: dungeon.Point{X: s.X1, Y: s.Y1},
					To:   dungeon.Point{X: s.X2, Y: s.Y2},
				})
			}
			e := dungeon.Edge{A: c.From, B: c.To}
			if seen.Has(e) || !generation.ValidCorridor(d, c) {
				corridors = nil
				break
			}
			seen.Put(e)
			corridors = append(corridors, c)
		}
		if len(corridors) == len(edges) {
			d.Corridors = corridors
			return
		}
	}

	if len(saved) > 0 {
		logger.Warning("corridors do not match room graph, rebuilding", "dungeon", d.ID)
	}
	r.gen.BuildCorridors(d, rng.New(rng.DeriveSeed(d.Seed, "corridors")))
}

func vecData(v dungeon.Vec3) Vec3Data {
	return Vec3Data{X: v.X, Y: v.Y, Z: v.Z}
}

func vecFromData(v Vec3Data) dungeon.Vec3 {
	return dungeon.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

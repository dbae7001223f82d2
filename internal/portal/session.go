package portal

import (
	"fmt"
	"math"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// SessionState is where the player currently is.
type SessionState int

const (
	Overworld SessionState = iota
	InDungeon
)

func (s SessionState) String() string {
	if s == InDungeon {
		return "in_dungeon"
	}
	return "overworld"
}

// Session tracks the player's trip into a dungeon.
type Session struct {
	State     SessionState
	DungeonID string
	PortalID  string

	// ReturnPosition is where the player stood when they entered.
	ReturnPosition dungeon.Vec3
}

// InDungeon reports whether the player is inside a dungeon.
func (s Session) InDungeon() bool {
	return s.State == InDungeon
}

// Frame reports what happened during one Update.
type Frame struct {
	InDungeon bool
	DungeonID string

	// Room is the room the player stands in, or -1.
	Room int

	// NearExit is set when the player may leave through the entrance.
	NearExit bool

	EnemiesSpawned int
	BossSpawned    bool
}

// Session returns a copy of the current session.
func (r *Runtime) Session() Session {
	return r.session
}

// CurrentDungeon returns the dungeon the player is in, if any.
func (r *Runtime) CurrentDungeon() (*dungeon.Dungeon, bool) {
	if !r.session.InDungeon() {
		return nil, false
	}
	return r.Dungeon(r.session.DungeonID)
}

// EnterPortal moves the player through a portal and returns the world-space
// center of the dungeon's entrance room. The dungeon is generated the first
// time the portal is used. Entering fails for an unknown or inactive portal,
// when the player is already in a dungeon, or when the bound dungeon was
// discarded.
func (r *Runtime) EnterPortal(portalID string, playerPos dungeon.Vec3) (dungeon.Vec3, bool) {
	p, ok := r.portals[portalID]
	if !ok || !p.Active || r.session.InDungeon() {
		return dungeon.Vec3{}, false
	}

	if !p.Bound() {
		if err := r.bind(p); err != nil {
			logger.Error("failed to generate dungeon", "portal", p.ID, "error", err)
			return dungeon.Vec3{}, false
		}
	}

	d, ok := r.dungeons[p.DungeonID]
	if !ok {
		return dungeon.Vec3{}, false
	}
	center, ok := d.EntranceCenter(r.cfg.CellSize)
	if !ok {
		return dungeon.Vec3{}, false
	}

	r.session = Session{
		State:          InDungeon,
		DungeonID:      d.ID,
		PortalID:       p.ID,
		ReturnPosition: playerPos,
	}

	if !d.Discovered {
		d.Discovered = true
		r.notify(NotifyDiscovered, d, fmt.Sprintf("You have discovered a %s!", r.dungeonName(d)))
	}

	logger.Debug("entered dungeon", "dungeon", d.ID, "portal", p.ID)
	return center, true
}

// bind generates the portal's dungeon, seeded from the world seed and the
// portal id.
func (r *Runtime) bind(p *Portal) error {
	id := nextID(r.dungeonIDs, r.dungeonIDTaken)
	seed := rng.DeriveSeed(r.cfg.WorldSeed, p.ID)

	d, err := r.gen.Generate(id, p.Position, p.DungeonType, seed)
	if err != nil {
		return err
	}
	r.addDungeon(d)
	p.DungeonID = d.ID

	logger.Info("portal bound", "portal", p.ID, "dungeon", d.ID, "type", d.Type, "rooms", len(d.Rooms))
	return nil
}

// ExitDungeon returns the player to the exact spot they entered from.
func (r *Runtime) ExitDungeon() (dungeon.Vec3, bool) {
	if !r.session.InDungeon() {
		return dungeon.Vec3{}, false
	}
	pos := r.session.ReturnPosition
	logger.Debug("left dungeon", "dungeon", r.session.DungeonID)
	r.session = Session{}
	return pos, true
}

// Update advances one frame. Portals animate; inside a dungeon, content in
// the player's room is spawned and the exit is offered near the entrance.
// Leaving is always an explicit ExitDungeon call.
func (r *Runtime) Update(dt float64, playerPos dungeon.Vec3) Frame {
	r.animatePortals(dt)

	frame := Frame{Room: -1}
	d, ok := r.CurrentDungeon()
	if !ok {
		return frame
	}
	frame.InDungeon = true
	frame.DungeonID = d.ID

	for i := range d.Rooms {
		wr, _ := d.RoomWorldRect(i, r.cfg.CellSize)
		if !wr.Contains(playerPos.X, playerPos.Y) {
			continue
		}
		if frame.Room < 0 {
			frame.Room = i
		}
		spawned, boss := r.spawnRoom(d, i)
		frame.EnemiesSpawned += spawned
		frame.BossSpawned = frame.BossSpawned || boss
		r.visitRoom(d, i)
	}

	if center, ok := d.EntranceCenter(r.cfg.CellSize); ok {
		dist := math.Hypot(playerPos.X-center.X, playerPos.Y-center.Y)
		frame.NearExit = dist < r.cfg.ExitRadius
	}
	return frame
}

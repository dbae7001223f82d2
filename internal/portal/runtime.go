// Package portal owns the world portals and the dungeons behind them for one
// game session. It binds portals to freshly generated dungeons, moves the
// player in and out, and spawns dungeon content as the player walks through
// it.
//
// A Runtime is driven from a single update loop and holds no locks.
package portal

import (
	"fmt"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/generation"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/pkg/idgen"
)

// Runtime is the registry of portals and dungeons for one session.
type Runtime struct {
	cfg  config.RuntimeConfig
	data *config.GameData
	gen  *generation.Generator

	world     WorldQuery
	spawner   EntitySpawner
	notifier  NotificationSink
	inventory Inventory
	clears    ClearRecorder

	portalIDs  idgen.Generator
	dungeonIDs idgen.Generator

	portals      map[string]*Portal
	portalOrder  []string
	dungeons     map[string]*dungeon.Dungeon
	dungeonOrder []string

	session Session
}

// Option customizes a Runtime.
type Option func(*Runtime)

// WithPortalIDs sets the generator for new portal ids.
func WithPortalIDs(g idgen.Generator) Option {
	return func(r *Runtime) { r.portalIDs = g }
}

// WithDungeonIDs sets the generator for new dungeon ids.
func WithDungeonIDs(g idgen.Generator) Option {
	return func(r *Runtime) { r.dungeonIDs = g }
}

// New creates a runtime. Broken game data is rejected here rather than when
// a portal is first entered.
func New(cfg config.RuntimeConfig, data *config.GameData, c Collaborators, opts ...Option) (*Runtime, error) {
	gen, err := generation.New(data, generation.WithCorridorWidth(cfg.CorridorWidth))
	if err != nil {
		return nil, fmt.Errorf("portal runtime: %w", err)
	}

	defaults := config.DefaultConfig().Runtime
	if cfg.CellSize <= 0 {
		cfg.CellSize = defaults.CellSize
	}
	if cfg.ExitRadius <= 0 {
		cfg.ExitRadius = defaults.ExitRadius
	}
	if cfg.PortalStoneItem == "" {
		cfg.PortalStoneItem = defaults.PortalStoneItem
	}

	c = c.withDefaults()
	r := &Runtime{
		cfg:        cfg,
		data:       data,
		gen:        gen,
		world:      c.World,
		spawner:    c.Spawner,
		notifier:   c.Notifier,
		inventory:  c.Inventory,
		clears:     c.Clears,
		portalIDs:  idgen.NewSeeded("portal", cfg.WorldSeed),
		dungeonIDs: idgen.NewSeeded("dungeon", cfg.WorldSeed),
		portals:    make(map[string]*Portal),
		dungeons:   make(map[string]*dungeon.Dungeon),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the runtime settings in effect.
func (r *Runtime) Config() config.RuntimeConfig {
	return r.cfg
}

// Portal returns a portal by id.
func (r *Runtime) Portal(id string) (*Portal, bool) {
	p, ok := r.portals[id]
	return p, ok
}

// Portals returns every portal in creation order.
func (r *Runtime) Portals() []*Portal {
	out := make([]*Portal, 0, len(r.portalOrder))
	for _, id := range r.portalOrder {
		out = append(out, r.portals[id])
	}
	return out
}

// Dungeon returns a dungeon by id.
func (r *Runtime) Dungeon(id string) (*dungeon.Dungeon, bool) {
	d, ok := r.dungeons[id]
	return d, ok
}

// Dungeons returns every live dungeon in generation order.
func (r *Runtime) Dungeons() []*dungeon.Dungeon {
	out := make([]*dungeon.Dungeon, 0, len(r.dungeonOrder))
	for _, id := range r.dungeonOrder {
		out = append(out, r.dungeons[id])
	}
	return out
}

// DiscardDungeon drops a dungeon from the registry. Portals bound to it are
// deactivated and never rebound. The dungeon the player is standing in
// cannot be discarded.
func (r *Runtime) DiscardDungeon(id string) bool {
	if _, ok := r.dungeons[id]; !ok {
		return false
	}
	if r.session.InDungeon() && r.session.DungeonID == id {
		return false
	}

	delete(r.dungeons, id)
	r.dungeonOrder = removeID(r.dungeonOrder, id)

	for _, p := range r.portals {
		if p.DungeonID == id {
			p.Active = false
		}
	}
	logger.Info("dungeon discarded", "dungeon", id)
	return true
}

func (r *Runtime) addPortal(p *Portal) {
	r.portals[p.ID] = p
	r.portalOrder = append(r.portalOrder, p.ID)
}

func (r *Runtime) addDungeon(d *dungeon.Dungeon) {
	r.dungeons[d.ID] = d
	r.dungeonOrder = append(r.dungeonOrder, d.ID)
}

// nextID draws ids until taken reports one free. Reloaded registries may
// already hold ids a fresh generator would hand out.
func nextID(g idgen.Generator, taken func(id string) bool) string {
	for {
		if id := g.Generate(); !taken(id) {
			return id
		}
	}
}

func (r *Runtime) portalIDTaken(id string) bool {
	_, ok := r.portals[id]
	return ok
}

// dungeonIDTaken also counts ids still held by portals. A discarded
// dungeon leaves the registry but its id stays on the portal it was bound
// to and must never name another dungeon.
func (r *Runtime) dungeonIDTaken(id string) bool {
	if _, ok := r.dungeons[id]; ok {
		return true
	}
	for _, p := range r.portals {
		if p.DungeonID == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (r *Runtime) notify(kind NotificationKind, d *dungeon.Dungeon, msg string) {
	n := Notification{Kind: kind, Message: msg}
	if d != nil {
		n.DungeonID = d.ID
		n.DungeonType = d.Type
	}
	r.notifier.Notify(n)
}

// dungeonName returns the display name of a dungeon's type.
func (r *Runtime) dungeonName(d *dungeon.Dungeon) string {
	if t, ok := r.data.DungeonType(d.Type); ok && t.Name != "" {
		return t.Name
	}
	return d.Type
}

package portal

import (
	"fmt"
	"math"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// Portal is a world-placed entry into a dungeon. DungeonID is empty until
// the portal is first entered and is never reassigned after that.
type Portal struct {
	ID          string
	Position    dungeon.Vec3
	DungeonType string
	DungeonID   string
	Active      bool

	// Phase is the render animation phase in [0,1).
	Phase float64
}

// Bound reports whether the portal has a dungeon.
func (p *Portal) Bound() bool {
	return p.DungeonID != ""
}

// CreatePortal places an active, unbound portal on the ground at x,y.
// Returns false for an unknown dungeon type.
func (r *Runtime) CreatePortal(x, y float64, dungeonType string) (*Portal, bool) {
	if _, ok := r.data.DungeonType(dungeonType); !ok {
		logger.Debug("portal for unknown dungeon type ignored", "type", dungeonType)
		return nil, false
	}

	p := &Portal{
		ID:          nextID(r.portalIDs, r.portalIDTaken),
		Position:    dungeon.Vec3{X: x, Y: y, Z: r.world.HeightAt(x, y)},
		DungeonType: dungeonType,
		Active:      true,
	}
	r.addPortal(p)

	logger.Info("portal created", "portal", p.ID, "type", dungeonType, "x", x, "y", y)
	return p, true
}

// CreatePortalFromStone consumes one portal stone from the inventory and
// opens a portal. Nothing is consumed when it fails.
func (r *Runtime) CreatePortalFromStone(x, y float64, dungeonType string) (*Portal, bool) {
	if !r.inventory.HasItem(r.cfg.PortalStoneItem) {
		return nil, false
	}
	if _, ok := r.data.DungeonType(dungeonType); !ok {
		return nil, false
	}

	r.inventory.RemoveItem(r.cfg.PortalStoneItem, 1)
	p, ok := r.CreatePortal(x, y, dungeonType)
	if !ok {
		return nil, false
	}

	name := dungeonType
	if t, ok := r.data.DungeonType(dungeonType); ok && t.Name != "" {
		name = t.Name
	}
	r.notifier.Notify(Notification{
		Kind:        NotifyPortalOpened,
		DungeonType: dungeonType,
		PortalID:    p.ID,
		Message:     fmt.Sprintf("A portal to a %s tears open.", name),
	})
	return p, true
}

// ScatterPortals places count portals at random spots within radius of
// cx,cy. Each spot gets a dungeon type whose biomes include the biome there,
// or any type if none match. The same world seed and area always produce
// the same spots and types.
func (r *Runtime) ScatterPortals(cx, cy, radius float64, count int) []*Portal {
	src := rng.New(rng.DeriveSeed(r.cfg.WorldSeed, fmt.Sprintf("scatter:%g:%g:%g", cx, cy, radius)))

	var placed []*Portal
	for range count {
		angle := src.Next() * 2 * math.Pi
		dist := math.Sqrt(src.Next()) * radius
		x := cx + math.Cos(angle)*dist
		y := cy + math.Sin(angle)*dist

		candidates := r.typesForBiome(r.world.BiomeAt(x, y))
		typeID := candidates[rng.Intn(src, len(candidates))]

		if p, ok := r.CreatePortal(x, y, typeID); ok {
			placed = append(placed, p)
		}
	}
	return placed
}

// typesForBiome lists the dungeon types native to biome, in sorted order,
// falling back to every type.
func (r *Runtime) typesForBiome(biome string) []string {
	all := r.data.DungeonTypeIDs()
	if biome == "" {
		return all
	}

	var native []string
	for _, id := range all {
		t := r.data.DungeonTypes[id]
		for _, b := range t.Biomes {
			if b == biome {
				native = append(native, id)
				break
			}
		}
	}
	if len(native) == 0 {
		return all
	}
	return native
}

// animatePortals advances every portal's render phase.
func (r *Runtime) animatePortals(dt float64) {
	step := dt * r.cfg.AnimationSpeed
	if step <= 0 {
		return
	}
	for _, p := range r.portals {
		if p.Active {
			p.Phase = math.Mod(p.Phase+step, 1)
		}
	}
}

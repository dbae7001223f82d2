package render

import (
	"strings"
	"testing"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/generation"
)

// twoRooms is an entrance joined to a boss room by one straight corridor.
func twoRooms() *dungeon.Dungeon {
	d := dungeon.New("dungeon_1", "crypt", dungeon.Vec3{}, 7)
	d.AddRoom(&dungeon.Room{Archetype: "entrance", X: 0, Y: 0, Width: 5, Height: 5, IsEntrance: true})
	d.AddRoom(&dungeon.Room{Archetype: "boss", X: 8, Y: 0, Width: 5, Height: 5, HasBoss: true})
	d.Connect(0, 1)
	d.Corridors = []*dungeon.Corridor{{
		From:     0,
		To:       1,
		Segments: []dungeon.Segment{{From: dungeon.Point{X: 2, Y: 2}, To: dungeon.Point{X: 10, Y: 2}}},
		Width:    1,
	}}
	d.Boss = &dungeon.Boss{Room: 1, Archetype: "lich"}
	return d
}

func mapRows(t *testing.T, out string) []string {
	t.Helper()
	parts := strings.SplitN(out, strings.Repeat("=", 60)+"\n", 2)
	if len(parts) != 2 {
		t.Fatalf("map header missing:\n%s", out)
	}
	grid := strings.SplitN(parts[1], "\n\n", 2)[0]
	return strings.Split(grid, "\n")
}

func TestMapDrawsRoomsAndCorridor(t *testing.T) {
	rows := mapRows(t, Map(twoRooms(), Options{}))

	want := []string{
		"#####   #####",
		"#...#   #...#",
		"#.E.+:::+.B.#",
		"#...#   #...#",
		"#####   #####",
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d:\n%s", len(rows), len(want), strings.Join(rows, "\n"))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestMapHidesUntriggeredTraps(t *testing.T) {
	d := twoRooms()
	d.Rooms[1].Traps = []*dungeon.Trap{{Archetype: "spike_trap", X: 9, Y: 1}}

	if rows := mapRows(t, Map(d, Options{})); rows[1] != "#...#   #...#" {
		t.Errorf("hidden trap drawn: %q", rows[1])
	}
	if rows := mapRows(t, Map(d, Options{ShowHidden: true})); rows[1] != "#...#   #^..#" {
		t.Errorf("ShowHidden row = %q", rows[1])
	}

	d.Rooms[1].Traps[0].Trigger()
	if rows := mapRows(t, Map(d, Options{})); rows[1] != "#...#   #^..#" {
		t.Errorf("triggered trap not drawn: %q", rows[1])
	}
}

func TestMapContents(t *testing.T) {
	d := twoRooms()
	d.Enemies = []*dungeon.EnemySpawn{{Archetype: "ghoul", X: 1, Y: 3, Room: 0}}
	d.Chests = []*dungeon.LootChest{{X: 11, Y: 3, Room: 1, Tier: dungeon.TierBoss}}

	rows := mapRows(t, Map(d, Options{}))
	if rows[3] != "#e..#   #..C#" {
		t.Errorf("row 3 = %q", rows[3])
	}

	d.Boss.MarkSpawned("h")
	d.Boss.MarkDefeated()
	if rows := mapRows(t, Map(d, Options{})); rows[2] != "#.E.+:::+...#" {
		t.Errorf("defeated boss still drawn: %q", rows[2])
	}
}

func TestDetails(t *testing.T) {
	out := Details(twoRooms())
	for _, want := range []string{
		"0 entrance     (0,0) 5x5 -> 1 [entrance]",
		"1 boss         (8,0) 5x5 -> 0 [boss]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Details() missing %q:\n%s", want, out)
		}
	}
}

func TestMapGeneratedDungeon(t *testing.T) {
	g, err := generation.New(config.DefaultGameData())
	if err != nil {
		t.Fatalf("generation.New() error: %v", err)
	}
	d, err := g.Generate("dungeon_1", dungeon.Vec3{}, "mine", 42)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	out := Map(d, Options{Legend: true})
	if strings.Count(out, string(glyphEntrance)) < 1 {
		t.Error("entrance not drawn")
	}
	if !strings.Contains(out, "Legend:") {
		t.Error("legend missing")
	}
	if got := strings.Count(Details(d), "\n"); got != len(d.Rooms)+1 {
		t.Errorf("Details() has %d lines, want %d", got, len(d.Rooms)+1)
	}
}

func TestMapEmpty(t *testing.T) {
	d := dungeon.New("x", "cave", dungeon.Vec3{}, 0)
	if got := Map(d, Options{}); got != "(empty dungeon)\n" {
		t.Errorf("Map(empty) = %q", got)
	}
}

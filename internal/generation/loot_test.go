package generation

import (
	"testing"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
)

// fixedSource replays a fixed list of values, repeating the last one.
type fixedSource struct {
	values []float64
	i      int
}

func (f *fixedSource) Next() float64 {
	v := f.values[min(f.i, len(f.values)-1)]
	f.i++
	return v
}

func TestWeightedIndex(t *testing.T) {
	weights := []int{1, 3, 6}
	tests := []struct {
		next float64
		want int
	}{
		{0.0, 0},
		{0.05, 0},
		{0.1, 0},
		{0.15, 1},
		{0.4, 1},
		{0.41, 2},
		{0.999, 2},
	}

	for _, tt := range tests {
		got := weightedIndex(weights, &fixedSource{values: []float64{tt.next}})
		if got != tt.want {
			t.Errorf("weightedIndex(next=%v) = %d, want %d", tt.next, got, tt.want)
		}
	}

	if got := weightedIndex(nil, &fixedSource{values: []float64{0.5}}); got != -1 {
		t.Errorf("weightedIndex(nil) = %d, want -1", got)
	}
}

func TestDrawLoot(t *testing.T) {
	table := &config.LootTable{Entries: []config.LootEntry{
		{Item: "coin", Weight: 1, Quantity: config.IntRange{Min: 5, Max: 5}},
		{Item: "gem", Weight: 1, Quantity: config.IntRange{Min: 1, Max: 3}},
	}}

	// 0.75*2 = 1.5 crosses into the second entry; 0.99 picks the top quantity
	item, ok := DrawLoot(table, &fixedSource{values: []float64{0.75, 0.99}})
	if !ok {
		t.Fatal("DrawLoot failed")
	}
	if item != (dungeon.LootItem{Item: "gem", Quantity: 3}) {
		t.Errorf("DrawLoot() = %+v, want gem x3", item)
	}

	item, _ = DrawLoot(table, &fixedSource{values: []float64{0.2}})
	if item != (dungeon.LootItem{Item: "coin", Quantity: 5}) {
		t.Errorf("DrawLoot() = %+v, want coin x5", item)
	}

	if _, ok := DrawLoot(&config.LootTable{}, &fixedSource{values: []float64{0.5}}); ok {
		t.Error("DrawLoot on an empty table should fail")
	}
}

func TestRollChest(t *testing.T) {
	table := &config.LootTable{Entries: []config.LootEntry{
		{Item: "coin", Weight: 1, Quantity: config.IntRange{Min: 1, Max: 1}},
	}}

	items := RollChest(table, 5, &fixedSource{values: []float64{0.3}})
	if len(items) != 5 {
		t.Errorf("len(RollChest(5)) = %d, want 5", len(items))
	}
}

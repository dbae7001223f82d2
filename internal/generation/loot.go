package generation

import (
	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// Draw counts per chest tier.
const (
	treasureDraws   = 3
	bossDraws       = 5
	normalDrawsMin  = 1
	normalDrawsMax  = 2
	normalChestRate = 0.3
)

// DrawLoot makes one weighted draw from table and rolls its quantity.
func DrawLoot(table *config.LootTable, src rng.Source) (dungeon.LootItem, bool) {
	weights := make([]int, len(table.Entries))
	for i, e := range table.Entries {
		weights[i] = e.Weight
	}

	i := weightedIndex(weights, src)
	if i < 0 {
		return dungeon.LootItem{}, false
	}
	entry := table.Entries[i]
	return dungeon.LootItem{
		Item:     entry.Item,
		Quantity: rng.Range(src, entry.Quantity.Min, entry.Quantity.Max),
	}, true
}

// RollChest makes draws independent loot draws.
func RollChest(table *config.LootTable, draws int, src rng.Source) []dungeon.LootItem {
	items := make([]dungeon.LootItem, 0, draws)
	for range draws {
		if item, ok := DrawLoot(table, src); ok {
			items = append(items, item)
		}
	}
	return items
}

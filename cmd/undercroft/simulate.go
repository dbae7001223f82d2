package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/notify"
	"github.com/lawnchairsociety/undercroft/internal/pkg/idgen"
	"github.com/lawnchairsociety/undercroft/internal/portal"
	"github.com/lawnchairsociety/undercroft/internal/store"
)

var (
	simPortals int
	simRadius  float64
	simRuns    int
	simStones  int
	simSlot    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play through dungeons and save the registry",
	Long: `Load the saved registry, scatter portals around the origin if none
exist, then enter unplayed portals one at a time, walk every room, defeat
everything, loot every chest and leave. The registry is saved through the
configured storage driver afterwards.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simPortals, "portals", 6, "Portals to scatter on a fresh world")
	simulateCmd.Flags().Float64Var(&simRadius, "radius", 200, "Scatter radius around the origin")
	simulateCmd.Flags().IntVar(&simRuns, "runs", 3, "Dungeons to play through")
	simulateCmd.Flags().IntVar(&simStones, "stones", 1, "Portal stones in the player's inventory")
	simulateCmd.Flags().StringVar(&simSlot, "slot", "", "Storage slot (default from config)")
}

// newRuntime wires a runtime to the simulated world, the log and, when the
// store can record clears, the store's clear log.
func newRuntime(cfg *config.Config, data *config.GameData, st store.Store, sinks ...portal.NotificationSink) (*portal.Runtime, error) {
	if cfg.Notify.LogNotifications {
		sinks = append(sinks, notify.LogSink{})
	}

	c := portal.Collaborators{
		World:     newSimWorld(data, cfg.Runtime.WorldSeed),
		Spawner:   &simSpawner{},
		Notifier:  notify.Multi(sinks),
		Inventory: &simInventory{items: map[string]int{cfg.Runtime.PortalStoneItem: simStones}},
	}
	if rec, ok := st.(portal.ClearRecorder); ok {
		c.Clears = rec
	}

	return portal.New(cfg.Runtime, data, c,
		portal.WithPortalIDs(idgen.NewSeeded("portal", cfg.Runtime.WorldSeed)),
		portal.WithDungeonIDs(idgen.NewUUID("dungeon")))
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	cfg, data, err := loadConfig()
	if err != nil {
		return err
	}
	slot := simSlot
	if slot == "" {
		slot = cfg.Storage.Slot
	}

	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	rt, err := newRuntime(cfg, data, st)
	if err != nil {
		return err
	}

	loaded, err := store.LoadRuntime(ctx, st, slot, rt)
	if err != nil {
		return err
	}
	if !loaded {
		placed := rt.ScatterPortals(0, 0, simRadius, simPortals)
		logger.Info("scattered portals", "count", len(placed), "radius", simRadius)
		if p, ok := rt.CreatePortalFromStone(5, 5, data.DungeonTypeIDs()[0]); ok {
			logger.Info("portal stone used", "portal", p.ID, "type", p.DungeonType)
		}
	}
	// A saved session means the last run never left its dungeon
	rt.ExitDungeon()

	out := cmd.OutOrStdout()
	played := 0
	for _, p := range rt.Portals() {
		if played >= simRuns {
			break
		}
		if p.Bound() || !p.Active {
			continue
		}
		res, ok := playThrough(rt, p.ID, dungeon.Vec3{X: p.Position.X + 1, Y: p.Position.Y, Z: p.Position.Z})
		if !ok {
			logger.Warning("play-through did not finish", "portal", p.ID)
			continue
		}
		played++
		fmt.Fprintf(out, "%-8s %s rooms=%d enemies=%d boss=%v loot=%d cleared=%v\n",
			res.Type, res.DungeonID, res.Rooms, res.Enemies, res.Boss, len(res.Loot), res.Cleared)
	}
	if played == 0 {
		fmt.Fprintln(out, "no unplayed portals left")
	}

	if err := store.SaveRuntime(ctx, st, slot, rt); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %d portals and %d dungeons to slot %q (%s)\n",
		len(rt.Portals()), len(rt.Dungeons()), slot, cfg.Storage.Driver)
	return nil
}

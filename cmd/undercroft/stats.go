package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/generation"
)

var (
	statsType  string
	statsSeeds int
	statsFirst int64
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize many generated dungeons of one type",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsType, "type", "cave", "Dungeon type")
	statsCmd.Flags().IntVar(&statsSeeds, "seeds", 1000, "Number of seeds to generate")
	statsCmd.Flags().Int64Var(&statsFirst, "first-seed", 1, "First seed of the run")
}

// typeStats accumulates per-dungeon counts over a run of seeds.
type typeStats struct {
	runs       int
	bosses     int
	traps      int
	rooms      map[int]int
	minRooms   int
	maxRooms   int
	totalRooms int
	enemies    int
	chests     int
}

func (s *typeStats) add(d *dungeon.Dungeon) {
	n := len(d.Rooms)
	if s.runs == 0 || n < s.minRooms {
		s.minRooms = n
	}
	s.maxRooms = max(s.maxRooms, n)
	s.runs++
	s.rooms[n]++
	s.totalRooms += n
	s.enemies += len(d.Enemies)
	s.chests += len(d.Chests)
	if d.Boss != nil {
		s.bosses++
	}
	for _, r := range d.Rooms {
		s.traps += len(r.Traps)
	}
}

func (s *typeStats) String() string {
	var b strings.Builder
	runs := float64(s.runs)

	fmt.Fprintf(&b, "%s over %d seeds\n", statsType, s.runs)
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "boss frequency: %.3f\n", float64(s.bosses)/runs)
	fmt.Fprintf(&b, "rooms:          %d..%d (mean %.2f)\n", s.minRooms, s.maxRooms, float64(s.totalRooms)/runs)
	fmt.Fprintf(&b, "enemies/dungeon %.2f\n", float64(s.enemies)/runs)
	fmt.Fprintf(&b, "chests/dungeon  %.2f\n", float64(s.chests)/runs)
	fmt.Fprintf(&b, "traps/dungeon   %.2f\n\n", float64(s.traps)/runs)

	peak := 0
	for _, c := range s.rooms {
		peak = max(peak, c)
	}
	for n := s.minRooms; n <= s.maxRooms; n++ {
		bar := int(math.Round(40 * float64(s.rooms[n]) / float64(peak)))
		fmt.Fprintf(&b, "%3d %6d %s\n", n, s.rooms[n], strings.Repeat("#", bar))
	}
	return b.String()
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsSeeds <= 0 {
		return fmt.Errorf("--seeds must be positive")
	}
	cfg, data, err := loadConfig()
	if err != nil {
		return err
	}
	gen, err := generation.New(data, generation.WithCorridorWidth(cfg.Runtime.CorridorWidth))
	if err != nil {
		return err
	}

	s := &typeStats{rooms: make(map[int]int)}
	for i := range statsSeeds {
		seed := statsFirst + int64(i)
		d, err := gen.Generate(fmt.Sprintf("stats-%d", seed), dungeon.Vec3{}, statsType, seed)
		if err != nil {
			return err
		}
		s.add(d)
	}

	fmt.Fprint(cmd.OutOrStdout(), s.String())
	return nil
}

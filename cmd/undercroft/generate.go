package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/generation"
	"github.com/lawnchairsociety/undercroft/internal/portal"
	"github.com/lawnchairsociety/undercroft/internal/render"
)

var (
	genType       string
	genSeed       int64
	genFormat     string
	genOutput     string
	genLegend     bool
	genShowHidden bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one dungeon and print it",
	Long: `Generate a dungeon from a type and seed. The same type and seed always
produce the same dungeon. Output is an ASCII map or the YAML record the
runtime persists.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genType, "type", "cave", "Dungeon type")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 1, "Generation seed")
	generateCmd.Flags().StringVar(&genFormat, "format", "map", "Output format (map or yaml)")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "Output file (empty for stdout)")
	generateCmd.Flags().BoolVar(&genLegend, "legend", true, "Show legend with the map")
	generateCmd.Flags().BoolVar(&genShowHidden, "show-hidden", false, "Show hidden traps on the map")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, data, err := loadConfig()
	if err != nil {
		return err
	}

	gen, err := generation.New(data, generation.WithCorridorWidth(cfg.Runtime.CorridorWidth))
	if err != nil {
		return err
	}
	d, err := gen.Generate(fmt.Sprintf("%s-%d", genType, genSeed), dungeon.Vec3{}, genType, genSeed)
	if err != nil {
		return err
	}

	var out string
	switch genFormat {
	case "map":
		out = render.Map(d, render.Options{ShowHidden: genShowHidden, Legend: genLegend})
	case "yaml":
		b, err := yaml.Marshal(portal.DungeonToData(d))
		if err != nil {
			return fmt.Errorf("failed to encode dungeon: %w", err)
		}
		out = string(b)
	default:
		return fmt.Errorf("unknown format %q (want map or yaml)", genFormat)
	}

	if genOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}
	if err := os.WriteFile(genOutput, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dungeon written to %s\n", genOutput)
	return nil
}

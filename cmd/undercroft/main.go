package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/logger"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "undercroft",
	Short: "Procedural dungeons behind overworld portals",
	Long: `Undercroft generates seeded dungeons and runs the portal layer that
binds them to the overworld. Use the subcommands to inspect generated
dungeons, play through a simulated session or serve live notifications.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg, err := logger.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load logging config: %w", err)
		}
		return logger.Initialize(logCfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "data/undercroft.yaml", "Path to config YAML file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and the game data it points at. Without
// a data file the built-in tables are used.
func loadConfig() (*config.Config, *config.GameData, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DataFile == "" {
		return cfg, config.DefaultGameData(), nil
	}
	data, err := config.LoadGameData(cfg.DataFile)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("game data loaded", "file", cfg.DataFile, "dungeon_types", len(data.DungeonTypes))
	return cfg, data, nil
}

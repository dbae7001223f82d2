package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/undercroft/internal/database"
	"github.com/lawnchairsociety/undercroft/internal/logger"
)

var (
	migSQLite     string
	migPgHost     string
	migPgPort     int
	migPgUser     string
	migPgPassword string
	migPgDatabase string
	migPgSSLMode  string
	migDryRun     bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy saved registries and clears from SQLite to PostgreSQL",
	Long: `Copy every registry snapshot and dungeon clear from a SQLite database
into PostgreSQL. Connection settings default to the storage section of the
config file; flags override them.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migSQLite, "sqlite", "", "Path to SQLite database (default from config)")
	migrateCmd.Flags().StringVar(&migPgHost, "pg-host", "", "PostgreSQL host")
	migrateCmd.Flags().IntVar(&migPgPort, "pg-port", 0, "PostgreSQL port")
	migrateCmd.Flags().StringVar(&migPgUser, "pg-user", "", "PostgreSQL user")
	migrateCmd.Flags().StringVar(&migPgPassword, "pg-password", "", "PostgreSQL password")
	migrateCmd.Flags().StringVar(&migPgDatabase, "pg-database", "", "PostgreSQL database name")
	migrateCmd.Flags().StringVar(&migPgSSLMode, "pg-sslmode", "", "PostgreSQL SSL mode")
	migrateCmd.Flags().BoolVar(&migDryRun, "dry-run", false, "Show what would be copied without writing")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	srcCfg := database.FromStorage(cfg.Storage)
	srcCfg.Driver = "sqlite"
	if migSQLite != "" {
		srcCfg.SQLitePath = migSQLite
	}

	dstCfg := database.FromStorage(cfg.Storage)
	dstCfg.Driver = "postgres"
	pg := &dstCfg.Postgres
	if migPgHost != "" {
		pg.Host = migPgHost
	}
	if migPgPort != 0 {
		pg.Port = migPgPort
	}
	if migPgUser != "" {
		pg.User = migPgUser
	}
	if migPgPassword != "" {
		pg.Password = migPgPassword
	}
	if migPgDatabase != "" {
		pg.Database = migPgDatabase
	}
	if migPgSSLMode != "" {
		pg.SSLMode = migPgSSLMode
	}

	logger.Info("opening source database", "path", srcCfg.SQLitePath)
	src, err := database.OpenWithConfig(srcCfg)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer src.Close()

	logger.Info("opening target database", "host", pg.Host, "port", pg.Port, "database", pg.Database)
	dst, err := database.OpenWithConfig(dstCfg)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}
	defer dst.Close()

	stats, err := src.Copy(dst, migDryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "snapshots: %d\nclears:    %d\n", stats.Snapshots, stats.Clears)
	if migDryRun {
		fmt.Fprintln(out, "(dry run, nothing was written)")
	}
	return nil
}

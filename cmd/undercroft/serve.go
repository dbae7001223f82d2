package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/notify"
	"github.com/lawnchairsociety/undercroft/internal/portal"
	"github.com/lawnchairsociety/undercroft/internal/store"
)

var (
	serveAddr     string
	serveInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve portal notifications over websocket",
	Long: `Start the notification hub and a demo session that opens a new portal
and plays through it on a fixed interval. Clients connected to /ws receive
every notification as JSON.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 10*time.Second, "Time between demo play-throughs")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			logger.Info("received shutdown signal, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg, data, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Notify.ListenAddr = serveAddr
	}

	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	hub := notify.NewHub(cfg.Notify)
	go hub.Run(ctx)

	rt, err := newRuntime(cfg, data, st, hub)
	if err != nil {
		return err
	}
	if _, err := store.LoadRuntime(ctx, st, cfg.Storage.Slot, rt); err != nil {
		return err
	}
	rt.ExitDungeon()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok clients=%d\n", hub.ClientCount())
	})
	srv := &http.Server{
		Addr:              cfg.Notify.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Always("notification hub listening", "addr", cfg.Notify.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	ticker := time.NewTicker(serveInterval)
	defer ticker.Stop()
	// The runtime is only touched from this loop
	round := 0
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warning("hub shutdown", "error", err)
			}
			return store.SaveRuntime(shutdownCtx, st, cfg.Storage.Slot, rt)
		case err := <-errChan:
			return err
		case <-ticker.C:
			round++
			demoRound(rt, round)
		}
	}
}

// demoRound scatters one portal on a ring around the origin and plays it.
func demoRound(rt *portal.Runtime, round int) {
	placed := rt.ScatterPortals(float64(round)*50, 0, 25, 1)
	if len(placed) == 0 {
		return
	}
	p := placed[0]
	res, ok := playThrough(rt, p.ID, dungeon.Vec3{X: p.Position.X + 1, Y: p.Position.Y, Z: p.Position.Z})
	if !ok {
		logger.Warning("demo play-through did not finish", "portal", p.ID)
		return
	}
	logger.Info("demo round", "round", round, "dungeon", res.DungeonID, "type", res.Type, "cleared", res.Cleared)
}

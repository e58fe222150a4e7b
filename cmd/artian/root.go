package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/artian/internal/config"
	"github.com/hyperengineering/artian/internal/events"
	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/tracker"
	"github.com/hyperengineering/artian/internal/transfer"
	"github.com/hyperengineering/artian/internal/types"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	dbPathOverride string
	jsonOutput     bool
)

var rootCmd = &cobra.Command{
	Use:           "artian",
	Short:         "Artian - weapon roll tracker",
	Long:          "Record artian attribute rolls and gogma skill rolls per weapon, and move them in and out as JSON.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathOverride, "db", "",
		"Database path (overrides config and ARTIAN_DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format where supported")

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(infoCmd)
}

// app is everything a command needs, wired over one open store.
type app struct {
	cfg       *config.Config
	store     *store.SQLiteStore
	bus       *events.Bus[events.DataImported]
	gateway   *transfer.Gateway
	workspace *tracker.Workspace
	sweep     migrate.SweepReport
}

// openApp loads config, opens the store, runs the data migration sweep and
// builds the gateway and workspace.
func openApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPathOverride != "" {
		cfg.Database.Path = dbPathOverride
	}

	slog.SetDefault(newLogger(logOut, cfg.Log))
	initShapes()

	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	slog.Debug("store initialized", "component", "cli", "path", db.Path())

	report, err := migrate.Sweep(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate data: %w", err)
	}

	bus := events.NewBus[events.DataImported]()
	strategies := shape.All()
	a := &app{
		cfg:       cfg,
		store:     db,
		bus:       bus,
		gateway:   transfer.New(db, bus, strategies...),
		workspace: tracker.NewWorkspace(db, bus, cfg.Tracker.Options(), strategies...),
		sweep:     report,
	}

	// Configured mode first; a remembered shell choice wins.
	if mode, err := types.ParseMode(cfg.Tracker.Mode); err == nil {
		if err := a.workspace.Activate(mode); err != nil {
			a.Close()
			return nil, err
		}
	}
	if err := a.workspace.RestoreMode(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close stops tracker timers and closes the store.
func (a *app) Close() {
	a.workspace.Close()
	if err := a.store.Close(); err != nil {
		slog.Error("store close error", "component", "cli", "error", err)
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

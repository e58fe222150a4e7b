package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
	"github.com/hyperengineering/artian/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database location, size, data version and roll counts",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

// modeCounts tallies one mode across every weapon.
type modeCounts struct {
	Weapons int `json:"weapons"`
	Rolls   int `json:"rolls"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	var sizeBytes int64
	if info, statErr := os.Stat(a.store.Path()); statErr == nil {
		sizeBytes = info.Size()
	}

	schemaVersion, err := a.store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("schema version: %w", err)
	}
	dataVersion, err := migrate.StoredVersion(ctx, a.store)
	if err != nil {
		return err
	}
	lastModified, modified, err := a.store.LastModified(ctx)
	if err != nil {
		return err
	}

	counts, unreadable, err := countRolls(cmd, a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if jsonOutput {
		result := map[string]any{
			"path":           a.store.Path(),
			"size_bytes":     sizeBytes,
			"schema_version": schemaVersion,
			"data_version":   dataVersion,
			"active_mode":    a.workspace.ActiveMode(),
			"modes":          counts,
			"unreadable":     unreadable,
		}
		if modified {
			result["last_modified"] = lastModified
		}
		return printJSON(out, result)
	}

	fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Artian database"))
	fmt.Fprintf(out, "Path:          %s\n", a.store.Path())
	fmt.Fprintf(out, "Size:          %s\n", humanize.Bytes(uint64(sizeBytes)))
	fmt.Fprintf(out, "Schema:        v%d\n", schemaVersion)
	fmt.Fprintf(out, "Data version:  v%d\n", dataVersion)
	fmt.Fprintf(out, "Active mode:   %s\n", a.workspace.ActiveMode())
	if modified {
		fmt.Fprintf(out, "Last change:   %s\n", humanize.Time(lastModified))
	}
	for _, mode := range a.workspace.Modes() {
		c := counts[mode]
		fmt.Fprintf(out, "%-14s %s across %s\n",
			string(mode)+":",
			humanize.Comma(int64(c.Rolls))+" roll(s)",
			humanize.Comma(int64(c.Weapons))+" weapon(s)")
	}
	if unreadable > 0 {
		fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s Unreadable entries: %d", ui.IconWarn, unreadable)))
	}
	return nil
}

func countRolls(cmd *cobra.Command, a *app) (map[types.Mode]modeCounts, int, error) {
	ctx := cmd.Context()
	counts := make(map[types.Mode]modeCounts)

	keys, err := a.store.Keys(ctx)
	if err != nil {
		return nil, 0, err
	}

	unreadable := 0
	for _, key := range keys {
		if store.IsReserved(key) {
			continue
		}
		raw, err := a.store.Read(ctx, key)
		if err != nil {
			return nil, 0, err
		}
		entry, err := migrate.MigrateEntry(raw)
		if err != nil {
			unreadable++
			continue
		}
		for _, s := range shape.All() {
			if !shape.HasMeaningfulData(s, entry) {
				continue
			}
			c := counts[s.Mode()]
			c.Weapons++
			c.Rolls += len(s.Rolls(entry))
			counts[s.Mode()] = c
		}
	}
	return counts, unreadable, nil
}

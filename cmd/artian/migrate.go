package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/ui"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade stored rolls to the current data version",
	Long:  "Upgrade stored rolls to the current data version. Every command does this on start; this one reports what happened.",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	r := a.sweep
	out := cmd.OutOrStdout()

	if jsonOutput {
		return printJSON(out, map[string]any{
			"from":     r.From,
			"to":       migrate.CurrentVersion,
			"ran":      r.Ran,
			"migrated": nonNil(r.Migrated),
			"removed":  nonNil(r.Removed),
			"skipped":  nonNil(r.Skipped),
		})
	}

	if !r.Ran {
		fmt.Fprintf(out, "%s data is at v%d\n", ui.Good.Render(ui.IconDone+" Up to date:"), r.From)
		return nil
	}

	fmt.Fprintf(out, "%s v%d → v%d\n", ui.Good.Render(ui.IconDone+" Migrated:"), r.From, r.To)
	fmt.Fprintln(out, ui.LabelValue("Migrated", listOrDash(r.Migrated)))
	fmt.Fprintln(out, ui.LabelValue("Removed", listOrDash(r.Removed)))
	if len(r.Skipped) > 0 {
		fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Unreadable entries left in place: "+strings.Join(r.Skipped, ", ")))
	}
	return nil
}

func listOrDash(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	return strings.Join(keys, ", ")
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}

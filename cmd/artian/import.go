package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/artian/internal/transfer"
	"github.com/hyperengineering/artian/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import [file|-]",
	Short: "Import rolls from a JSON export",
	Long:  "Import rolls from a JSON export. Weapons that already hold rolls in a mode are skipped, never overwritten.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read import data: %w", err)
	}

	a, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.gateway.Import(ctx, string(data))
	if err != nil {
		if errors.Is(err, transfer.ErrParse) || errors.Is(err, transfer.ErrInvalidFormat) || errors.Is(err, transfer.ErrUnsupportedVersion) {
			return errors.New(transfer.UserMessage(err))
		}
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, map[string]any{
			"version":            res.Version,
			"imported_count":     res.ImportedCount(),
			"imported_standard":  res.ImportedStandard,
			"imported_skillpair": res.ImportedSkillPair,
			"skipped_count":      res.SkippedCount,
			"invalid_count":      res.InvalidCount,
			"imported_keys":      res.ImportedKeys,
			"message":            res.Message(),
		})
	}

	if res.ImportedCount() > 0 {
		fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" "+res.Message()))
	} else {
		fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" "+res.Message()))
	}
	for _, e := range res.ItemErrors() {
		fmt.Fprintln(out, ui.Muted.Render("  - "+e.Error()))
	}
	return nil
}

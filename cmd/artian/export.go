package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hyperengineering/artian/internal/transfer"
	"github.com/hyperengineering/artian/internal/ui"
)

var (
	exportLegacy  bool
	exportCompact bool
	exportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all recorded rolls as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportLegacy, "legacy", false, "Emit a flat map of standard rolls with no envelope")
	exportCmd.Flags().BoolVar(&exportCompact, "compact", false, "Do not indent the output")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.gateway.Export(ctx, transfer.ExportOptions{
		Legacy: a.cfg.Export.Legacy || exportLegacy,
		Indent: a.cfg.Export.Indent && !exportCompact,
	})
	if err != nil {
		return err
	}

	if exportOutput == "" || exportOutput == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if err := os.WriteFile(exportOutput, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		ui.Good.Render(ui.IconBox+" Exported"),
		exportOutput,
		ui.Muted.Render("("+humanize.Bytes(uint64(len(data)+1))+")"))
	return nil
}

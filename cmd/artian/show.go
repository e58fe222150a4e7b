package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/artian/internal/catalog"
	"github.com/hyperengineering/artian/internal/types"
	"github.com/hyperengineering/artian/internal/ui"
)

var (
	showMode string
	showDesc bool
)

var showCmd = &cobra.Command{
	Use:   "show <weapon>",
	Short: "Show the recorded rolls for a weapon",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showMode, "mode", "", "Mode to show: standard or gogma (default: active mode)")
	showCmd.Flags().BoolVar(&showDesc, "desc", false, "Show newest rolls first")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	item, ok := catalog.Weapon(strings.Join(args, " "))
	if !ok {
		return fmt.Errorf("unknown weapon %q", strings.Join(args, " "))
	}

	a, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	mode := a.workspace.ActiveMode()
	if showMode != "" {
		if mode, err = types.ParseMode(showMode); err != nil {
			return err
		}
	}

	tr, err := a.workspace.Tracker(mode)
	if err != nil {
		return err
	}
	if err := tr.SelectItem(ctx, item); err != nil {
		return err
	}

	table, err := tr.Render(ctx)
	if err != nil {
		return err
	}
	if showDesc && table.Sort != types.SortDescending {
		if table, err = tr.ToggleSort(ctx); err != nil {
			return err
		}
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), table)
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderTable(table))
	return nil
}

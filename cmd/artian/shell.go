package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/artian/internal/catalog"
	"github.com/hyperengineering/artian/internal/tracker"
	"github.com/hyperengineering/artian/internal/types"
	"github.com/hyperengineering/artian/internal/ui"
)

const shellPrompt = "artian> "

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Record rolls interactively",
	Long:  "Start a line-oriented shell for selecting weapons and recording rolls. Type help for commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

const shellHelp = `Commands:
  items                 list weapons
  fields                list fields for the active mode
  select <weapon>       select a weapon by id or name
  mode <standard|gogma> switch mode
  focus <type|none>     choose the gogma focus type
  pick <field>          record a field (into the selected cell, if any)
  cell <row> <pos>      select a recorded cell to overwrite (pos from 1)
  del <row>             delete a roll (repeat to confirm)
  sort                  toggle roll order
  clear                 delete this weapon's rolls in this mode (repeat to confirm)
  clear-mode            delete this mode's rolls for every weapon (repeat to confirm)
  clear-all             delete everything (repeat to confirm)
  dismiss               hide the stored data notice
  show                  redraw the table
  help                  show this help
  quit                  leave the shell`

// shell runs commands against one workspace.
type shell struct {
	app *app
	out io.Writer
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	sh := &shell{app: a, out: cmd.OutOrStdout()}
	return sh.run(ctx, cmd.InOrStdin())
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(sh.out, ui.Heading(ui.IconRoll, "Artian roll tracker"))
	fmt.Fprintln(sh.out, ui.Muted.Render("Type help for commands."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		quit, err := sh.exec(ctx, fields[0], fields[1:])
		if err != nil {
			sh.report(err)
		}
		if quit {
			return nil
		}
	}
}

// exec runs one command and redraws the table after a change.
func (sh *shell) exec(ctx context.Context, name string, args []string) (quit bool, err error) {
	ws := sh.app.workspace
	tr := ws.Active()

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
		return false, nil

	case "items":
		fmt.Fprint(sh.out, ui.RenderItems(catalog.Weapons, tr.Session().Item))
		return false, nil

	case "fields":
		fmt.Fprint(sh.out, ui.RenderFields(tr.Mode(), tr.Strategy().Fields()))
		if tr.Strategy().RequiresFocus() {
			names := make([]string, 0, len(catalog.FocusTypes))
			for _, f := range catalog.FocusTypes {
				names = append(names, f.ID)
			}
			fmt.Fprintln(sh.out, ui.LabelValue("Focus types", strings.Join(names, ", ")))
		}
		return false, nil

	case "select":
		if len(args) == 0 {
			return false, errors.New("usage: select <weapon>")
		}
		item, ok := catalog.Weapon(strings.Join(args, " "))
		if !ok {
			return false, fmt.Errorf("unknown weapon %q", strings.Join(args, " "))
		}
		if err := ws.SelectItem(ctx, item); err != nil {
			return false, err
		}

	case "mode":
		if len(args) != 1 {
			return false, errors.New("usage: mode <standard|gogma>")
		}
		mode, err := types.ParseMode(args[0])
		if err != nil {
			return false, err
		}
		if err := ws.SetMode(ctx, mode); err != nil {
			return false, err
		}

	case "focus":
		if len(args) != 1 {
			return false, errors.New("usage: focus <type|none>")
		}
		focus := args[0]
		if focus == "none" {
			focus = ""
		}
		if err := tr.SetFocus(focus); err != nil {
			return false, err
		}

	case "pick":
		if len(args) != 1 {
			return false, errors.New("usage: pick <field>")
		}
		if err := tr.SelectField(ctx, args[0]); err != nil {
			return false, err
		}

	case "cell":
		if len(args) != 2 {
			return false, errors.New("usage: cell <row> <pos>")
		}
		row, err1 := strconv.Atoi(args[0])
		pos, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return false, errors.New("row and position must be numbers")
		}
		if err := tr.SelectCell(ctx, types.CellRef{Number: row, Position: pos - 1}); err != nil {
			return false, err
		}

	case "del", "delete":
		if len(args) != 1 {
			return false, errors.New("usage: del <row>")
		}
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return false, errors.New("row must be a number")
		}
		deleted, err := tr.RequestDelete(ctx, row)
		if err != nil {
			return false, err
		}
		if !deleted {
			fmt.Fprintln(sh.out, ui.Warn.Render(fmt.Sprintf("%s Run del %d again to delete roll %d.", ui.IconTrash, row, row)))
		}

	case "sort":
		table, err := tr.ToggleSort(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprint(sh.out, ui.RenderTable(table))
		return false, nil

	case "clear":
		if _, err := tr.ClearItem(ctx); err != nil {
			return false, err
		}

	case "clear-mode":
		if _, err := tr.ClearMode(ctx); err != nil {
			return false, err
		}

	case "clear-all":
		cleared, err := ws.ClearAll(ctx)
		if err != nil {
			return false, err
		}
		if cleared {
			fmt.Fprintln(sh.out, ui.Good.Render(ui.IconDone+" All data cleared."))
		} else {
			fmt.Fprintln(sh.out, ui.Bad.Render(ui.IconTrash+" Run clear-all again to delete everything."))
			return false, nil
		}

	case "dismiss":
		tr.DismissNotice()

	case "show":

	default:
		return false, fmt.Errorf("unknown command %q (type help)", name)
	}

	return false, sh.show(ctx)
}

func (sh *shell) show(ctx context.Context) error {
	table, err := sh.app.workspace.Active().Render(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, ui.RenderTable(table))
	return nil
}

func (sh *shell) report(err error) {
	var inputErr *tracker.InputError
	if errors.As(err, &inputErr) {
		fmt.Fprintln(sh.out, ui.Bad.Render(ui.IconError+" "+inputErr.Message))
		return
	}
	fmt.Fprintln(sh.out, ui.Bad.Render(ui.IconError+" "+err.Error()))
}

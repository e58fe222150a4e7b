package tracker

import (
	"context"
	"slices"

	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/types"
)

// Cell is one slot of a rendered row.
type Cell struct {
	Ref      types.CellRef
	FieldID  string
	Label    string
	Class    string
	Selected bool
}

// Empty reports whether the slot holds no field.
func (c Cell) Empty() bool {
	return c.FieldID == ""
}

// Row is one rendered record.
type Row struct {
	Number int
	// Armed rows are awaiting delete confirmation.
	Armed bool
	// Current marks the incomplete record new fields are appended to.
	Current bool
	Cells   []Cell
}

// Table is a rendered snapshot of the selected weapon in one mode.
type Table struct {
	Mode   types.Mode
	Item   *types.CategoryItem
	Header []string
	Rows   []Row
	Sort   types.SortOrder

	// Next is the number the next new record will get.
	Next int

	Focus          string
	Notice         string
	Indicators     map[string]string
	ClearArmed     bool
	ClearModeArmed bool
}

// Header returns the column titles for mode, or nil when no strategy is
// registered for it.
func Header(mode types.Mode) []string {
	s, ok := shape.Get(mode)
	if !ok {
		return nil
	}
	return s.Header()
}

// Render reconciles the selected weapon's records, writing back the
// reconciled form when it differs from what was stored, and builds the
// table in the current sort order.
func (t *Tracker) Render(ctx context.Context) (Table, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renderLocked(ctx)
}

// ToggleSort flips the row order and re-renders.
func (t *Tracker) ToggleSort(ctx context.Context) (Table, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.session.Sort = t.session.Sort.Flip()
	return t.renderLocked(ctx)
}

func (t *Tracker) renderLocked(ctx context.Context) (Table, error) {
	sess := t.session.clone()
	table := Table{
		Mode:           t.strategy.Mode(),
		Item:           sess.Item,
		Header:         t.strategy.Header(),
		Sort:           sess.Sort,
		Next:           1,
		Focus:          sess.Focus,
		Indicators:     sess.Indicators,
		ClearArmed:     sess.ClearArmed,
		ClearModeArmed: sess.ClearModeArmed,
	}
	if sess.Item == nil {
		return table, nil
	}

	itemID := sess.Item.ID
	l, err := loadEntry(ctx, t.store, t.strategy, itemID)
	if err != nil {
		return Table{}, err
	}
	if l.corrupt {
		table.Notice = t.session.Notice
		t.session.Current = t.strategy.NewRoll(1)
		return table, nil
	}

	rolls := Reconcile(l.rolls)
	if !sameRolls(l.rolls, rolls) {
		if rolls, err = persistRolls(ctx, t.store, t.strategy, itemID, l.entry, rolls); err != nil {
			return Table{}, err
		}
	}

	current := DeriveCurrent(t.strategy, rolls)
	t.session.Current = current
	table.Next = current.Number
	table.Notice = t.session.Notice

	for _, r := range rolls {
		table.Rows = append(table.Rows, t.buildRow(r, current, sess))
	}
	if sess.Sort == types.SortDescending {
		slices.Reverse(table.Rows)
	}
	return table, nil
}

func (t *Tracker) buildRow(r types.Roll, current types.Roll, sess Session) Row {
	row := Row{
		Number:  r.Number,
		Armed:   sess.ArmedRow == r.Number,
		Current: r.Number == current.Number,
		Cells:   make([]Cell, t.strategy.SlotCount()),
	}
	for pos := range row.Cells {
		ref := types.CellRef{Number: r.Number, Position: pos}
		cell := Cell{Ref: ref, Selected: sess.Selected != nil && *sess.Selected == ref}
		if pos < len(r.Slots) && r.Slots[pos].Filled() {
			info := t.strategy.Describe(string(r.Slots[pos]))
			cell.FieldID = string(r.Slots[pos])
			cell.Label = info.Label
			cell.Class = info.Class
		}
		row.Cells[pos] = cell
	}
	return row
}

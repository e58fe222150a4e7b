// Package tracker records rolls for the selected weapon in one mode and
// keeps the persisted entry reconciled: records numbered 1..N, no empty
// records stored, and picks always fill the first incomplete record.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hyperengineering/artian/internal/catalog"
	"github.com/hyperengineering/artian/internal/events"
	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

// Tracker is the reconciliation engine for one recording mode.
type Tracker struct {
	mu       sync.Mutex
	store    store.Store
	strategy shape.Strategy
	opts     Options
	session  Session

	armTimer       Timer
	clearTimer     Timer
	clearModeTimer Timer
	flashTimers    map[string]Timer
}

// New creates a tracker for the strategy's mode.
func New(st store.Store, strategy shape.Strategy, opts Options) *Tracker {
	opts = opts.withDefaults()
	return &Tracker{
		store:    st,
		strategy: strategy,
		opts:     opts,
		session: Session{
			Sort:       opts.Sort,
			Current:    strategy.NewRoll(1),
			Indicators: map[string]string{},
		},
		flashTimers: map[string]Timer{},
	}
}

// Mode returns the recording mode.
func (t *Tracker) Mode() types.Mode {
	return t.strategy.Mode()
}

// Strategy returns the record strategy.
func (t *Tracker) Strategy() shape.Strategy {
	return t.strategy
}

// Session returns a copy of the current interaction state.
func (t *Tracker) Session() Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.clone()
}

// SelectItem makes item the subject of subsequent picks and loads its entry.
func (t *Tracker) SelectItem(ctx context.Context, item types.CategoryItem) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.session.Item = &item
	t.session.Selected = nil
	t.disarmLocked()

	return t.reloadLocked(ctx)
}

// reloadLocked re-reads the selected entry and re-derives the current record.
func (t *Tracker) reloadLocked(ctx context.Context) error {
	t.session.Notice = ""
	if t.session.Item == nil {
		t.session.Current = t.strategy.NewRoll(1)
		return nil
	}

	l, err := loadEntry(ctx, t.store, t.strategy, t.session.Item.ID)
	if err != nil {
		return err
	}
	if l.corrupt {
		t.session.Notice = corruptNotice(*t.session.Item)
	}
	t.session.Current = DeriveCurrent(t.strategy, Reconcile(l.rolls))
	return nil
}

// SetFocus chooses the skill-pair focus type. An empty id clears it.
func (t *Tracker) SetFocus(focusID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if focusID != "" {
		if _, ok := catalog.LookupFocus(focusID); !ok {
			return t.rejectLocked(ControlFocus, "Unknown focus type", t.opts.FieldErrorTimeout,
				fmt.Errorf("%q: %w", focusID, ErrUnknownFocus))
		}
	}
	t.session.Focus = focusID
	return nil
}

// SelectField records fieldID. With a cell selected it overwrites that
// cell; otherwise it fills the next open slot of the current record,
// starting a new record once the current one is complete.
func (t *Tracker) SelectField(ctx context.Context, fieldID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	control := FieldControl(fieldID)
	if t.session.Item == nil {
		return t.rejectLocked(control, "Select a weapon first", t.opts.FieldErrorTimeout, ErrNoItemSelected)
	}
	if t.opts.RequireFocus && t.strategy.RequiresFocus() && t.session.Focus == "" {
		return t.rejectLocked(control, "Select a focus type first", t.opts.FieldErrorTimeout, ErrFocusRequired)
	}

	itemID := t.session.Item.ID
	l, err := loadEntry(ctx, t.store, t.strategy, itemID)
	if err != nil {
		return err
	}
	if l.corrupt {
		t.session.Notice = corruptNotice(*t.session.Item)
		return t.rejectLocked(control, "Stored data is unreadable; clear this weapon first", t.opts.FieldErrorTimeout,
			fmt.Errorf("%q: %w", itemID, ErrCorruptEntry))
	}
	rolls := Reconcile(l.rolls)

	if ref := t.session.Selected; ref != nil {
		idx := findRoll(rolls, ref.Number)
		if idx < 0 {
			t.session.Selected = nil
			return fmt.Errorf("row %d: %w", ref.Number, ErrRecordNotFound)
		}
		updated, err := t.strategy.Place(rolls[idx], ref.Position, fieldID)
		if err != nil {
			return t.rejectLocked(control, placeMessage(err), t.opts.FieldErrorTimeout, err)
		}
		rolls[idx] = updated
	} else {
		current := DeriveCurrent(t.strategy, rolls)
		updated, err := t.strategy.Append(current, fieldID)
		if err != nil {
			return t.rejectLocked(control, placeMessage(err), t.opts.FieldErrorTimeout, err)
		}
		if idx := findRoll(rolls, updated.Number); idx >= 0 {
			rolls[idx] = updated
		} else {
			rolls = append(rolls, updated)
		}
	}

	saved, err := persistRolls(ctx, t.store, t.strategy, itemID, l.entry, rolls)
	if err != nil {
		return err
	}

	t.session.Selected = nil
	t.session.Notice = ""
	t.disarmLocked()
	t.session.Current = DeriveCurrent(t.strategy, saved)

	slog.Debug("field recorded",
		"component", "tracker",
		"action", "select_field",
		"mode", string(t.strategy.Mode()),
		"key", itemID,
		"field", fieldID,
		"current", t.session.Current.Number,
	)
	return nil
}

// corruptNotice names item in the notice shown while its entry is unreadable.
func corruptNotice(item types.CategoryItem) string {
	return fmt.Sprintf("Stored data for %s could not be read and is shown as empty. Clear it to record new rolls.", item.Name)
}

func placeMessage(err error) string {
	switch {
	case errors.Is(err, shape.ErrClassMismatch):
		return "That skill does not belong in this slot"
	case errors.Is(err, shape.ErrUnknownField):
		return "Unknown field for this mode"
	default:
		return err.Error()
	}
}

// SelectCell toggles ref as the target of the next field pick. Selecting
// the already selected cell clears the selection.
func (t *Tracker) SelectCell(ctx context.Context, ref types.CellRef) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session.Item == nil {
		return ErrNoItemSelected
	}
	if sel := t.session.Selected; sel != nil && *sel == ref {
		t.session.Selected = nil
		return nil
	}
	if ref.Position < 0 || ref.Position >= t.strategy.SlotCount() {
		return fmt.Errorf("position %d: %w", ref.Position+1, shape.ErrPositionOutOfRange)
	}

	l, err := loadEntry(ctx, t.store, t.strategy, t.session.Item.ID)
	if err != nil {
		return err
	}
	if findRoll(Reconcile(l.rolls), ref.Number) < 0 {
		return fmt.Errorf("row %d: %w", ref.Number, ErrRecordNotFound)
	}

	t.session.Selected = &ref
	return nil
}

// RequestDelete arms row number on the first call and deletes it on a
// second call while still armed. It reports whether a record was deleted.
func (t *Tracker) RequestDelete(ctx context.Context, number int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session.Item == nil {
		return false, ErrNoItemSelected
	}

	itemID := t.session.Item.ID
	l, err := loadEntry(ctx, t.store, t.strategy, itemID)
	if err != nil {
		return false, err
	}
	rolls := Reconcile(l.rolls)
	idx := findRoll(rolls, number)
	if idx < 0 {
		t.disarmLocked()
		return false, fmt.Errorf("row %d: %w", number, ErrRecordNotFound)
	}

	if t.session.ArmedRow != number {
		t.armTimer = stopTimer(t.armTimer)
		t.session.ArmedRow = number
		t.armTimer = t.opts.Clock.AfterFunc(t.opts.ArmTimeout, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.session.ArmedRow == number {
				t.session.ArmedRow = 0
			}
		})
		return false, nil
	}

	rolls = append(rolls[:idx], rolls[idx+1:]...)

	saved, err := persistRolls(ctx, t.store, t.strategy, itemID, l.entry, rolls)
	if err != nil {
		return false, err
	}

	t.session.Selected = nil
	t.disarmLocked()
	t.session.Current = DeriveCurrent(t.strategy, saved)

	slog.Info("record deleted",
		"component", "tracker",
		"action", "delete",
		"mode", string(t.strategy.Mode()),
		"key", itemID,
		"number", number,
		"remaining", len(saved),
	)
	return true, nil
}

// ClearItem empties this mode's records for the selected weapon after an
// arming call. The other mode's records are kept. An unreadable entry is
// removed outright; this is the only way to discard it.
func (t *Tracker) ClearItem(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session.Item == nil {
		return false, t.rejectLocked(ControlClearItem, "Select a weapon first", t.opts.SelectionErrorTimeout, ErrNoItemSelected)
	}

	if !t.session.ClearArmed {
		t.clearTimer = stopTimer(t.clearTimer)
		t.session.ClearArmed = true
		t.clearTimer = t.opts.Clock.AfterFunc(t.opts.ArmTimeout, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.session.ClearArmed = false
		})
		return false, nil
	}

	itemID := t.session.Item.ID
	l, err := loadEntry(ctx, t.store, t.strategy, itemID)
	if err != nil {
		return false, err
	}
	if _, err := persistRolls(ctx, t.store, t.strategy, itemID, l.entry, nil); err != nil {
		return false, err
	}

	t.session.Selected = nil
	t.session.Notice = ""
	t.disarmLocked()
	t.session.Current = t.strategy.NewRoll(1)

	slog.Info("weapon data cleared",
		"component", "tracker",
		"action", "clear_item",
		"mode", string(t.strategy.Mode()),
		"key", itemID,
	)
	return true, nil
}

// ClearMode empties this mode's records for every weapon after an arming
// call. Entries left with no records at all are removed.
func (t *Tracker) ClearMode(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.session.ClearModeArmed {
		t.clearModeTimer = stopTimer(t.clearModeTimer)
		t.session.ClearModeArmed = true
		t.clearModeTimer = t.opts.Clock.AfterFunc(t.opts.ArmTimeout, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.session.ClearModeArmed = false
		})
		return false, nil
	}

	keys, err := t.store.Keys(ctx)
	if err != nil {
		return false, fmt.Errorf("list keys: %w", err)
	}

	cleared := 0
	for _, key := range keys {
		if store.IsReserved(key) {
			continue
		}
		raw, err := t.store.Read(ctx, key)
		if err != nil {
			return false, fmt.Errorf("read %q: %w", key, err)
		}
		entry, err := migrate.MigrateEntry(raw)
		if err != nil {
			slog.Warn("skipping unreadable entry",
				"component", "tracker",
				"action", "clear_mode",
				"key", key,
				"error", err,
			)
			continue
		}
		if _, err := persistRolls(ctx, t.store, t.strategy, key, entry, nil); err != nil {
			return false, err
		}
		cleared++
	}

	t.session.Selected = nil
	t.disarmLocked()
	t.session.Current = t.strategy.NewRoll(1)

	slog.Info("mode data cleared",
		"component", "tracker",
		"action", "clear_mode",
		"mode", string(t.strategy.Mode()),
		"entries", cleared,
	)
	return true, nil
}

// Reset drops interaction state after the store was wiped. The selected
// weapon, focus and sort order are kept.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.session.Selected = nil
	t.session.Notice = ""
	t.disarmLocked()
	t.session.Current = t.strategy.NewRoll(1)
}

// DismissNotice clears the corrupt data notice.
func (t *Tracker) DismissNotice() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.Notice = ""
}

// OnDataImported reloads the selected weapon when the import wrote it.
func (t *Tracker) OnDataImported(ctx context.Context, e events.DataImported) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session.Item == nil || !e.Touches(t.session.Item.ID) {
		return
	}

	t.session.Selected = nil
	t.disarmLocked()
	if err := t.reloadLocked(ctx); err != nil {
		slog.Error("reload after import failed",
			"component", "tracker",
			"mode", string(t.strategy.Mode()),
			"key", t.session.Item.ID,
			"batch", e.BatchID.String(),
			"error", err,
		)
		return
	}
	slog.Debug("reloaded after import",
		"component", "tracker",
		"mode", string(t.strategy.Mode()),
		"key", t.session.Item.ID,
		"batch", e.BatchID.String(),
	)
}

// Close stops pending timers.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.disarmLocked()
	for control, timer := range t.flashTimers {
		timer.Stop()
		delete(t.flashTimers, control)
	}
}

// disarmLocked cancels every armed confirmation.
func (t *Tracker) disarmLocked() {
	t.armTimer = stopTimer(t.armTimer)
	t.clearTimer = stopTimer(t.clearTimer)
	t.clearModeTimer = stopTimer(t.clearModeTimer)
	t.session.ArmedRow = 0
	t.session.ClearArmed = false
	t.session.ClearModeArmed = false
}

// rejectLocked flashes message on control and returns it as an InputError.
func (t *Tracker) rejectLocked(control, message string, d time.Duration, cause error) error {
	if prev, ok := t.flashTimers[control]; ok {
		prev.Stop()
	}
	t.session.Indicators[control] = message

	var timer Timer
	timer = t.opts.Clock.AfterFunc(d, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.flashTimers[control] == timer {
			delete(t.flashTimers, control)
			delete(t.session.Indicators, control)
		}
	})
	t.flashTimers[control] = timer

	return &InputError{Control: control, Message: message, ClearAfter: d, Err: cause}
}

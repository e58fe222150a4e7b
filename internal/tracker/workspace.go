package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hyperengineering/artian/internal/events"
	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

// Workspace owns one tracker per mode over a shared store, the active
// mode, and the store-wide "delete all" confirmation.
type Workspace struct {
	mu       sync.Mutex
	store    store.Store
	opts     Options
	trackers map[types.Mode]*Tracker
	order    []types.Mode
	active   types.Mode

	clearAllArmed bool
	clearAllTimer Timer
	unsubscribe   []func()
}

// NewWorkspace creates a tracker for each strategy and subscribes them to
// bus. The first strategy's mode starts active.
func NewWorkspace(st store.Store, bus *events.Bus[events.DataImported], opts Options, strategies ...shape.Strategy) *Workspace {
	opts = opts.withDefaults()
	w := &Workspace{
		store:    st,
		opts:     opts,
		trackers: make(map[types.Mode]*Tracker, len(strategies)),
	}
	for _, s := range strategies {
		t := New(st, s, opts)
		w.trackers[s.Mode()] = t
		w.order = append(w.order, s.Mode())
		if bus != nil {
			w.unsubscribe = append(w.unsubscribe, bus.Subscribe(t.OnDataImported))
		}
	}
	if len(w.order) > 0 {
		w.active = w.order[0]
	}
	return w
}

// Modes returns the workspace's modes in creation order.
func (w *Workspace) Modes() []types.Mode {
	return append([]types.Mode(nil), w.order...)
}

// Tracker returns the tracker for mode.
func (w *Workspace) Tracker(mode types.Mode) (*Tracker, error) {
	t, ok := w.trackers[mode]
	if !ok {
		return nil, fmt.Errorf("%q: %w", mode, ErrUnknownMode)
	}
	return t, nil
}

// Active returns the tracker for the active mode.
func (w *Workspace) Active() *Tracker {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.trackers[w.active]
}

// ActiveMode returns the active mode.
func (w *Workspace) ActiveMode() types.Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// Activate switches the active mode without remembering it.
func (w *Workspace) Activate(mode types.Mode) error {
	if _, ok := w.trackers[mode]; !ok {
		return fmt.Errorf("%q: %w", mode, ErrUnknownMode)
	}

	w.mu.Lock()
	w.active = mode
	w.mu.Unlock()
	return nil
}

// SetMode switches the active mode and remembers it in the store.
func (w *Workspace) SetMode(ctx context.Context, mode types.Mode) error {
	if err := w.Activate(mode); err != nil {
		return err
	}

	if err := w.store.Write(ctx, store.ModeKey, string(mode)); err != nil {
		return fmt.Errorf("save mode: %w", err)
	}
	return nil
}

// RestoreMode activates the mode remembered in the store, if any.
func (w *Workspace) RestoreMode(ctx context.Context) error {
	raw, err := w.store.Read(ctx, store.ModeKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read mode: %w", err)
	}

	mode, err := types.ParseMode(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("ignoring stored mode",
			"component", "tracker",
			"action", "restore_mode",
			"value", raw,
		)
		return nil
	}
	if _, ok := w.trackers[mode]; !ok {
		return nil
	}

	w.mu.Lock()
	w.active = mode
	w.mu.Unlock()
	return nil
}

// SelectItem selects item in every mode so switching modes keeps the weapon.
func (w *Workspace) SelectItem(ctx context.Context, item types.CategoryItem) error {
	for _, mode := range w.order {
		if err := w.trackers[mode].SelectItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll wipes the whole store after an arming call, keeping the data
// version marker. Every tracker keeps its selected weapon.
func (w *Workspace) ClearAll(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.clearAllArmed {
		w.clearAllTimer = stopTimer(w.clearAllTimer)
		w.clearAllArmed = true
		w.clearAllTimer = w.opts.Clock.AfterFunc(w.opts.ArmTimeout, func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			w.clearAllArmed = false
		})
		return false, nil
	}

	w.clearAllTimer = stopTimer(w.clearAllTimer)
	w.clearAllArmed = false

	if err := w.store.Clear(ctx); err != nil {
		return false, fmt.Errorf("clear store: %w", err)
	}
	if err := migrate.WriteVersion(ctx, w.store); err != nil {
		return false, err
	}
	for _, mode := range w.order {
		w.trackers[mode].Reset()
	}

	slog.Info("all data cleared",
		"component", "tracker",
		"action", "clear_all",
	)
	return true, nil
}

// ClearAllArmed reports whether ClearAll is awaiting confirmation.
func (w *Workspace) ClearAllArmed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clearAllArmed
}

// Close unsubscribes the trackers and stops pending timers.
func (w *Workspace) Close() {
	w.mu.Lock()
	w.clearAllTimer = stopTimer(w.clearAllTimer)
	unsubscribe := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()

	for _, u := range unsubscribe {
		u()
	}
	for _, mode := range w.order {
		w.trackers[mode].Close()
	}
}

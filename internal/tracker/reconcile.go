package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

// Reconcile drops records with no filled slot, orders the rest by their
// existing numbers and renumbers them 1..N. The input is not modified.
func Reconcile(rolls []types.Roll) []types.Roll {
	out := make([]types.Roll, 0, len(rolls))
	for _, r := range rolls {
		if r.FilledCount() > 0 {
			out = append(out, r.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	for i := range out {
		out[i].Number = i + 1
	}
	return out
}

// DeriveCurrent returns the record new fields are appended to: the first
// incomplete record, otherwise a fresh one numbered past the last. rolls
// must already be reconciled.
func DeriveCurrent(s shape.Strategy, rolls []types.Roll) types.Roll {
	for _, r := range rolls {
		if !s.Complete(r) {
			return r.Clone()
		}
	}
	return s.NewRoll(len(rolls) + 1)
}

func sameRolls(a, b []types.Roll) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Number != b[i].Number || len(a[i].Slots) != len(b[i].Slots) {
			return false
		}
		for j := range a[i].Slots {
			if a[i].Slots[j] != b[i].Slots[j] {
				return false
			}
		}
	}
	return true
}

func findRoll(rolls []types.Roll, number int) int {
	for i, r := range rolls {
		if r.Number == number {
			return i
		}
	}
	return -1
}

// loaded is one item's entry as read from the store.
type loaded struct {
	entry   types.WeaponEntry
	rolls   []types.Roll
	corrupt bool
}

// loadEntry reads and migrates the entry for itemID. A missing key is an
// empty entry; an unreadable value is reported as corrupt, not as an error.
func loadEntry(ctx context.Context, st store.Store, s shape.Strategy, itemID string) (loaded, error) {
	raw, err := st.Read(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return loaded{entry: types.WeaponEntry{}}, nil
	}
	if err != nil {
		return loaded{}, fmt.Errorf("load %q: %w", itemID, err)
	}

	entry, err := migrate.MigrateEntry(raw)
	if err != nil {
		slog.Warn("corrupt entry ignored",
			"component", "tracker",
			"mode", string(s.Mode()),
			"key", itemID,
			"error", err,
		)
		return loaded{entry: types.WeaponEntry{}, corrupt: true}, nil
	}
	return loaded{entry: entry, rolls: s.Rolls(entry)}, nil
}

// persistRolls reconciles rolls into entry and writes the result. An entry
// left with both arrays empty is removed from the store.
func persistRolls(ctx context.Context, st store.Store, s shape.Strategy, itemID string, entry types.WeaponEntry, rolls []types.Roll) ([]types.Roll, error) {
	rolls = Reconcile(rolls)
	entry = s.WithRolls(entry, rolls)

	if entry.IsEmpty() {
		if err := st.Remove(ctx, itemID); err != nil {
			return nil, fmt.Errorf("remove %q: %w", itemID, err)
		}
		slog.Debug("entry removed",
			"component", "tracker",
			"mode", string(s.Mode()),
			"key", itemID,
		)
		return rolls, nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", itemID, err)
	}
	if err := st.Write(ctx, itemID, string(data)); err != nil {
		return nil, fmt.Errorf("persist %q: %w", itemID, err)
	}
	return rolls, nil
}

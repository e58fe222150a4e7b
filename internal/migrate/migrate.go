// Package migrate upgrades stored weapon entries to the current nested
// layout and normalizes attribute ids to their leveled form.
package migrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

// CurrentVersion is the data version written by this build.
const CurrentVersion = 3

// MigrateEntry decodes raw into the current layout. Bare arrays have their
// attribute ids migrated; nested entries pass through as stored.
func MigrateEntry(raw string) (types.WeaponEntry, error) {
	switch shape := ClassifyStoredShape(raw); shape {
	case ShapeV1, ShapeV2:
		var rolls []types.StandardRoll
		if err := json.Unmarshal([]byte(raw), &rolls); err != nil {
			return types.WeaponEntry{}, fmt.Errorf("decode %s entry: %w", shape, err)
		}
		for i := range rolls {
			rolls[i].Attributes = migrateSlots(rolls[i].Attributes)
		}
		return types.WeaponEntry{Artian: rolls, Gogma: []types.SkillPairRoll{}}, nil

	case ShapeV3:
		var entry types.WeaponEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return types.WeaponEntry{}, fmt.Errorf("decode %s entry: %w", shape, err)
		}
		if entry.Artian == nil {
			entry.Artian = []types.StandardRoll{}
		}
		if entry.Gogma == nil {
			entry.Gogma = []types.SkillPairRoll{}
		}
		return entry, nil

	default:
		return types.WeaponEntry{}, ErrUnrecognizedShape
	}
}

// NormalizeEntry migrates the attribute ids of an already nested entry.
// The startup sweep never does this; import does.
func NormalizeEntry(entry types.WeaponEntry) types.WeaponEntry {
	out := types.WeaponEntry{
		Artian: make([]types.StandardRoll, len(entry.Artian)),
		Gogma:  append([]types.SkillPairRoll{}, entry.Gogma...),
	}
	for i, r := range entry.Artian {
		out.Artian[i] = types.StandardRoll{Number: r.Number, Attributes: migrateSlots(r.Attributes)}
	}
	return out
}

func migrateSlots(slots []types.Slot) []types.Slot {
	out := make([]types.Slot, len(slots))
	for i, s := range slots {
		out[i] = types.Slot(MigrateFieldID(string(s)))
	}
	return out
}

// StoredVersion reads the data version marker. A missing or unparseable
// marker is version 0.
func StoredVersion(ctx context.Context, s store.Store) (int, error) {
	raw, err := s.Read(ctx, store.DataVersionKey)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read data version: %w", err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, nil
	}
	return v, nil
}

// WriteVersion stamps the store with CurrentVersion.
func WriteVersion(ctx context.Context, s store.Store) error {
	if err := s.Write(ctx, store.DataVersionKey, strconv.Itoa(CurrentVersion)); err != nil {
		return fmt.Errorf("write data version: %w", err)
	}
	return nil
}

// SweepReport describes what a sweep did.
type SweepReport struct {
	From     int
	To       int
	Ran      bool
	Migrated []string
	Removed  []string
	Skipped  []string
}

// Sweep migrates every stored entry when the data version marker is behind
// CurrentVersion, then rewrites the marker. Entries already nested are left
// byte-for-byte alone. Malformed entries are logged and left in place.
func Sweep(ctx context.Context, s store.Store) (SweepReport, error) {
	from, err := StoredVersion(ctx, s)
	if err != nil {
		return SweepReport{}, err
	}
	report := SweepReport{From: from, To: from}
	if from >= CurrentVersion {
		return report, nil
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		return report, fmt.Errorf("list keys: %w", err)
	}

	for _, key := range keys {
		if store.IsReserved(key) {
			continue
		}
		if err := sweepKey(ctx, s, key, &report); err != nil {
			return report, err
		}
	}

	if err := WriteVersion(ctx, s); err != nil {
		return report, err
	}
	report.Ran = true
	report.To = CurrentVersion

	slog.Info("data migration complete",
		"component", "migrate",
		"action", "sweep",
		"from", from,
		"to", CurrentVersion,
		"migrated", len(report.Migrated),
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func sweepKey(ctx context.Context, s store.Store, key string, report *SweepReport) error {
	raw, err := s.Read(ctx, key)
	if err != nil {
		return fmt.Errorf("read %q: %w", key, err)
	}

	shape := ClassifyStoredShape(raw)
	if shape == ShapeV3 {
		return nil
	}

	entry, err := MigrateEntry(raw)
	if err != nil {
		slog.Warn("skipping unmigratable entry",
			"component", "migrate",
			"action", "sweep",
			"key", key,
			"shape", shape.String(),
			"error", err,
		)
		report.Skipped = append(report.Skipped, key)
		return nil
	}

	if entry.IsEmpty() {
		if err := s.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove empty %q: %w", key, err)
		}
		report.Removed = append(report.Removed, key)
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.Write(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}

	slog.Debug("entry migrated",
		"component", "migrate",
		"action", "sweep",
		"key", key,
		"shape", shape.String(),
	)
	report.Migrated = append(report.Migrated, key)
	return nil
}

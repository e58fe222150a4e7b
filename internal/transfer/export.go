package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/tracker"
	"github.com/hyperengineering/artian/internal/types"
)

// exportDateLayout is ISO 8601 with milliseconds.
const exportDateLayout = "2006-01-02T15:04:05.000Z07:00"

// ExportOptions control the export encoding.
type ExportOptions struct {
	// Legacy emits a flat {itemId: StandardRecord[]} map with no envelope.
	Legacy bool
	// Indent pretty-prints with two spaces.
	Indent bool
}

// Envelope is the versioned export document.
type Envelope struct {
	Version    int                              `json:"version"`
	ExportDate string                           `json:"exportDate"`
	Standard   map[string][]types.StandardRoll  `json:"standard"`
	Gogma      map[string][]types.SkillPairRoll `json:"gogma"`
}

// Export serializes every entry holding meaningful data. Entries that
// cannot be read are left out and logged.
func (g *Gateway) Export(ctx context.Context, opts ExportOptions) ([]byte, error) {
	env, err := g.collect(ctx)
	if err != nil {
		return nil, err
	}

	var doc any = env
	if opts.Legacy {
		doc = env.Standard
	}

	var data []byte
	if opts.Indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	slog.Info("data exported",
		"component", "transfer",
		"action", "export",
		"standard", len(env.Standard),
		"gogma", len(env.Gogma),
		"legacy", opts.Legacy,
	)
	return data, nil
}

func (g *Gateway) collect(ctx context.Context) (Envelope, error) {
	env := Envelope{
		Version:    migrate.CurrentVersion,
		ExportDate: g.now().UTC().Format(exportDateLayout),
		Standard:   map[string][]types.StandardRoll{},
		Gogma:      map[string][]types.SkillPairRoll{},
	}

	keys, err := g.store.Keys(ctx)
	if err != nil {
		return env, fmt.Errorf("list keys: %w", err)
	}

	for _, key := range keys {
		if store.IsReserved(key) {
			continue
		}
		raw, err := g.store.Read(ctx, key)
		if err != nil {
			return env, fmt.Errorf("read %q: %w", key, err)
		}
		entry, err := migrate.MigrateEntry(raw)
		if err != nil {
			slog.Warn("skipping unreadable entry",
				"component", "transfer",
				"action", "export",
				"key", key,
				"error", err,
			)
			continue
		}

		if s, ok := g.strategies[types.ModeStandard]; ok && shape.HasMeaningfulData(s, entry) {
			env.Standard[key] = reconciled(s, entry).Artian
		}
		if s, ok := g.strategies[types.ModeSkillPair]; ok && shape.HasMeaningfulData(s, entry) {
			env.Gogma[key] = reconciled(s, entry).Gogma
		}
	}
	return env, nil
}

// reconciled returns entry with s's records filtered and renumbered.
func reconciled(s shape.Strategy, entry types.WeaponEntry) types.WeaponEntry {
	return s.WithRolls(entry, tracker.Reconcile(s.Rolls(entry)))
}

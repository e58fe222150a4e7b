package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/multierr"

	"github.com/hyperengineering/artian/internal/events"
	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/tracker"
	"github.com/hyperengineering/artian/internal/types"
)

// Import merges text into the store. Items whose target mode already holds
// data are skipped; invalid items are skipped with their error collected in
// Result.Errors. Items written before a later failure stay written.
//
// The returned error is non-nil only when the whole import is rejected
// (ErrParse, ErrInvalidFormat, ErrUnsupportedVersion) or the store fails.
func (g *Gateway) Import(ctx context.Context, text string) (Result, error) {
	if !gjson.Valid(text) {
		return Result{}, ErrParse
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return Result{}, ErrInvalidFormat
	}

	var (
		res Result
		err error
	)
	version := root.Get("version")
	switch {
	case !version.Exists():
		err = g.importLegacy(ctx, root, &res)
	case version.Type == gjson.Number && (version.Int() == 2 || version.Int() == 3) && version.Num == float64(version.Int()):
		res.Version = int(version.Int())
		err = g.importVersioned(ctx, root, &res)
	default:
		return Result{}, fmt.Errorf("version %s: %w", version.Raw, ErrUnsupportedVersion)
	}
	if err != nil {
		return res, err
	}

	if len(res.ImportedKeys) > 0 && g.bus != nil {
		g.bus.Publish(ctx, events.NewDataImported(res.ImportedKeys, g.now()))
	}

	slog.Info("data imported",
		"component", "transfer",
		"action", "import",
		"version", res.Version,
		"standard", res.ImportedStandard,
		"gogma", res.ImportedSkillPair,
		"skipped", res.SkippedCount,
		"invalid", res.InvalidCount,
	)
	return res, nil
}

func (g *Gateway) importLegacy(ctx context.Context, root gjson.Result, res *Result) error {
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		err = g.importItem(ctx, types.ModeStandard, key.String(), value, res)
		return err == nil
	})
	return err
}

func (g *Gateway) importVersioned(ctx context.Context, root gjson.Result, res *Result) error {
	sections := []struct {
		mode  types.Mode
		names []string
	}{
		{types.ModeStandard, []string{SectionStandard}},
		{types.ModeSkillPair, skillPairAliases},
	}

	for _, sec := range sections {
		body := firstPresent(root, sec.names)
		if !body.IsObject() {
			continue
		}
		var err error
		body.ForEach(func(key, value gjson.Result) bool {
			err = g.importItem(ctx, sec.mode, key.String(), value, res)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func firstPresent(root gjson.Result, names []string) gjson.Result {
	for _, n := range names {
		if v := root.Get(n); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// importItem validates and writes one item's section. Only store failures
// are returned.
func (g *Gateway) importItem(ctx context.Context, mode types.Mode, itemID string, value gjson.Result, res *Result) error {
	s, ok := g.strategies[mode]
	if !ok {
		return nil
	}

	incoming, err := g.validateItem(mode, itemID, value)
	if err != nil {
		res.SkippedCount++
		res.InvalidCount++
		res.Errors = multierr.Append(res.Errors, err)
		slog.Warn("skipping invalid import item",
			"component", "transfer",
			"action", "import",
			"key", itemID,
			"section", sectionName(mode),
			"error", err,
		)
		return nil
	}

	existing, err := g.existingEntry(ctx, itemID)
	if err != nil {
		return err
	}
	if shape.HasMeaningfulData(s, existing) {
		res.SkippedCount++
		slog.Debug("skipping item with existing data",
			"component", "transfer",
			"action", "import",
			"key", itemID,
			"section", sectionName(mode),
		)
		return nil
	}

	rolls := tracker.Reconcile(s.Rolls(incoming))
	if len(rolls) == 0 {
		return nil
	}

	entry := s.WithRolls(existing, rolls)
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode %q: %w", itemID, err)
	}
	if err := g.store.Write(ctx, itemID, string(data)); err != nil {
		return fmt.Errorf("write %q: %w", itemID, err)
	}

	if mode == types.ModeSkillPair {
		res.ImportedSkillPair++
	} else {
		res.ImportedStandard++
	}
	if !slices.Contains(res.ImportedKeys, itemID) {
		res.ImportedKeys = append(res.ImportedKeys, itemID)
	}
	return nil
}

func (g *Gateway) validateItem(mode types.Mode, itemID string, value gjson.Result) (types.WeaponEntry, error) {
	if strings.TrimSpace(itemID) == "" || store.IsReserved(itemID) {
		return types.WeaponEntry{}, fmt.Errorf("%s %q: reserved or empty key: %w", sectionName(mode), itemID, ErrInvalidItem)
	}
	entry, err := decodeSection(mode, value)
	if err != nil {
		return types.WeaponEntry{}, fmt.Errorf("%s %q: %w: %w", sectionName(mode), itemID, ErrInvalidItem, err)
	}
	return entry, nil
}

// existingEntry reads the stored entry for itemID. Missing or unreadable
// entries count as empty so an import can replace them.
func (g *Gateway) existingEntry(ctx context.Context, itemID string) (types.WeaponEntry, error) {
	raw, err := g.store.Read(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return types.WeaponEntry{}, nil
	}
	if err != nil {
		return types.WeaponEntry{}, fmt.Errorf("read %q: %w", itemID, err)
	}

	entry, err := migrate.MigrateEntry(raw)
	if err != nil {
		slog.Warn("replacing unreadable entry",
			"component", "transfer",
			"action", "import",
			"key", itemID,
			"error", err,
		)
		return types.WeaponEntry{}, nil
	}
	return entry, nil
}

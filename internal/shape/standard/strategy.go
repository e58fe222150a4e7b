// Package standard is the 5-slot attribute record strategy.
package standard

import (
	"fmt"

	"github.com/hyperengineering/artian/internal/catalog"
	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/types"
)

// Slots is the number of attributes in a complete record.
const Slots = 5

// Strategy implements shape.Strategy for standard records.
type Strategy struct{}

// New creates a standard record strategy.
func New() *Strategy {
	return &Strategy{}
}

func (s *Strategy) Mode() types.Mode { return types.ModeStandard }

func (s *Strategy) SlotCount() int { return Slots }

func (s *Strategy) RequiresFocus() bool { return false }

func (s *Strategy) Header() []string {
	header := []string{"Roll #"}
	for i := 1; i <= Slots; i++ {
		header = append(header, fmt.Sprintf("Attribute %d", i))
	}
	return header
}

func (s *Strategy) Fields() []shape.FieldInfo {
	out := make([]shape.FieldInfo, 0, len(catalog.Attributes))
	for _, a := range catalog.Attributes {
		out = append(out, describe(a))
	}
	return out
}

// Describe resolves bare legacy ids as level I.
func (s *Strategy) Describe(fieldID string) shape.FieldInfo {
	base, level := migrate.ParseFieldID(fieldID)
	a, ok := catalog.LookupAttribute(catalog.LeveledID(base, level))
	if !ok {
		return shape.FieldInfo{ID: fieldID, Label: fieldID}
	}
	info := describe(a)
	info.ID = fieldID
	return info
}

func describe(a catalog.Attribute) shape.FieldInfo {
	group := a.BaseID
	for _, b := range catalog.BaseAttributes {
		if b.ID == a.BaseID {
			group = b.Name
		}
	}
	return shape.FieldInfo{ID: a.ID, Label: a.Name, Class: a.CSSClass, Group: group}
}

func (s *Strategy) Rolls(entry types.WeaponEntry) []types.Roll {
	out := make([]types.Roll, 0, len(entry.Artian))
	for _, r := range entry.Artian {
		out = append(out, types.Roll{
			Number: r.Number,
			Slots:  append([]types.Slot{}, r.Attributes...),
		})
	}
	return out
}

func (s *Strategy) WithRolls(entry types.WeaponEntry, rolls []types.Roll) types.WeaponEntry {
	artian := make([]types.StandardRoll, 0, len(rolls))
	for _, r := range rolls {
		artian = append(artian, types.StandardRoll{
			Number:     r.Number,
			Attributes: append([]types.Slot{}, r.Slots...),
		})
	}
	entry.Artian = artian
	return entry
}

func (s *Strategy) NewRoll(number int) types.Roll {
	return types.Roll{Number: number, Slots: []types.Slot{}}
}

// Complete requires all five attributes to be present.
func (s *Strategy) Complete(r types.Roll) bool {
	return len(r.Slots) >= Slots && r.FilledCount() >= Slots
}

// Append fills the first empty position, growing the record up to five.
func (s *Strategy) Append(r types.Roll, fieldID string) (types.Roll, error) {
	if err := validate(fieldID); err != nil {
		return r, err
	}
	out := r.Clone()
	for i, slot := range out.Slots {
		if i < Slots && !slot.Filled() {
			out.Slots[i] = types.Slot(fieldID)
			return out, nil
		}
	}
	if len(out.Slots) >= Slots {
		return r, shape.ErrRecordFull
	}
	out.Slots = append(out.Slots, types.Slot(fieldID))
	return out, nil
}

// Place overwrites pos, padding shorter records with empty slots.
func (s *Strategy) Place(r types.Roll, pos int, fieldID string) (types.Roll, error) {
	if pos < 0 || pos >= Slots {
		return r, fmt.Errorf("position %d: %w", pos+1, shape.ErrPositionOutOfRange)
	}
	if err := validate(fieldID); err != nil {
		return r, err
	}
	out := r.Clone()
	for len(out.Slots) <= pos {
		out.Slots = append(out.Slots, "")
	}
	out.Slots[pos] = types.Slot(fieldID)
	return out, nil
}

func validate(fieldID string) error {
	if _, ok := catalog.LookupAttribute(fieldID); !ok {
		return fmt.Errorf("%q: %w", fieldID, shape.ErrUnknownField)
	}
	return nil
}

var _ shape.Strategy = (*Strategy)(nil)

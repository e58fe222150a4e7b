// Package skillpair is the group skill plus set bonus record strategy.
package skillpair

import (
	"fmt"

	"github.com/hyperengineering/artian/internal/catalog"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/types"
)

// Slot positions within a skill-pair record.
const (
	GroupSlot    = 0
	SetBonusSlot = 1
)

var slotClass = [...]catalog.SkillClass{
	GroupSlot:    catalog.ClassGroup,
	SetBonusSlot: catalog.ClassSetBonus,
}

// Strategy implements shape.Strategy for skill-pair records.
type Strategy struct{}

// New creates a skill-pair record strategy.
func New() *Strategy {
	return &Strategy{}
}

func (s *Strategy) Mode() types.Mode { return types.ModeSkillPair }

func (s *Strategy) SlotCount() int { return len(slotClass) }

func (s *Strategy) RequiresFocus() bool { return true }

func (s *Strategy) Header() []string {
	return []string{"Roll #", "Group Skill", "Set Bonus"}
}

func (s *Strategy) Fields() []shape.FieldInfo {
	out := make([]shape.FieldInfo, 0, len(catalog.GroupSkills)+len(catalog.SetBonusSkills))
	for _, sk := range catalog.GroupSkills {
		out = append(out, describe(sk, catalog.ClassGroup))
	}
	for _, sk := range catalog.SetBonusSkills {
		out = append(out, describe(sk, catalog.ClassSetBonus))
	}
	return out
}

func (s *Strategy) Describe(fieldID string) shape.FieldInfo {
	sk, class, ok := catalog.LookupSkill(fieldID)
	if !ok {
		return shape.FieldInfo{ID: fieldID, Label: fieldID}
	}
	return describe(sk, class)
}

func describe(sk catalog.Skill, class catalog.SkillClass) shape.FieldInfo {
	group := "Group Skills"
	if class == catalog.ClassSetBonus {
		group = "Set Bonus Skills"
	}
	return shape.FieldInfo{ID: sk.ID, Label: sk.Name, Class: sk.Color.CSSClass(), Group: group}
}

func (s *Strategy) Rolls(entry types.WeaponEntry) []types.Roll {
	out := make([]types.Roll, 0, len(entry.Gogma))
	for _, r := range entry.Gogma {
		out = append(out, types.Roll{
			Number: r.Number,
			Slots:  []types.Slot{r.GroupSkill, r.SetBonus},
		})
	}
	return out
}

func (s *Strategy) WithRolls(entry types.WeaponEntry, rolls []types.Roll) types.WeaponEntry {
	gogma := make([]types.SkillPairRoll, 0, len(rolls))
	for _, r := range rolls {
		r = normalize(r.Clone())
		gogma = append(gogma, types.SkillPairRoll{
			Number:     r.Number,
			GroupSkill: r.Slots[GroupSlot],
			SetBonus:   r.Slots[SetBonusSlot],
		})
	}
	entry.Gogma = gogma
	return entry
}

func (s *Strategy) NewRoll(number int) types.Roll {
	return types.Roll{Number: number, Slots: make([]types.Slot, len(slotClass))}
}

func (s *Strategy) Complete(r types.Roll) bool {
	r = normalize(r.Clone())
	return r.Slots[GroupSlot].Filled() && r.Slots[SetBonusSlot].Filled()
}

// Append sets the slot matching the skill's class, replacing any skill
// already recorded there.
func (s *Strategy) Append(r types.Roll, fieldID string) (types.Roll, error) {
	_, class, ok := catalog.LookupSkill(fieldID)
	if !ok {
		return r, fmt.Errorf("%q: %w", fieldID, shape.ErrUnknownField)
	}
	out := normalize(r.Clone())
	out.Slots[slotFor(class)] = types.Slot(fieldID)
	return out, nil
}

// Place rejects skills whose class does not match the slot.
func (s *Strategy) Place(r types.Roll, pos int, fieldID string) (types.Roll, error) {
	if pos < 0 || pos >= len(slotClass) {
		return r, fmt.Errorf("position %d: %w", pos+1, shape.ErrPositionOutOfRange)
	}
	_, class, ok := catalog.LookupSkill(fieldID)
	if !ok {
		return r, fmt.Errorf("%q: %w", fieldID, shape.ErrUnknownField)
	}
	if slotClass[pos] != class {
		return r, fmt.Errorf("%q is a %s skill: %w", fieldID, class, shape.ErrClassMismatch)
	}
	out := normalize(r.Clone())
	out.Slots[pos] = types.Slot(fieldID)
	return out, nil
}

func slotFor(class catalog.SkillClass) int {
	if class == catalog.ClassGroup {
		return GroupSlot
	}
	return SetBonusSlot
}

func normalize(r types.Roll) types.Roll {
	for len(r.Slots) < len(slotClass) {
		r.Slots = append(r.Slots, "")
	}
	r.Slots = r.Slots[:len(slotClass)]
	return r
}

var _ shape.Strategy = (*Strategy)(nil)

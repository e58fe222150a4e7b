package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects which record array of a WeaponEntry is being tracked.
type Mode string

const (
	ModeStandard  Mode = "standard"
	ModeSkillPair Mode = "gogma"
)

// Modes lists every recording mode in display order.
var Modes = []Mode{ModeStandard, ModeSkillPair}

// ParseMode accepts the mode names and their aliases ("artian", "skill-pair").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "artian":
		return ModeStandard, nil
	case "gogma", "skill-pair", "skillpair":
		return ModeSkillPair, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// SortOrder is the row ordering of a rendered table.
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// Flip returns the opposite order.
func (o SortOrder) Flip() SortOrder {
	if o == SortDescending {
		return SortAscending
	}
	return SortDescending
}

// CategoryItem is a selectable subject that records are keyed by.
type CategoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Slot holds one field id. The empty Slot is an unfilled position and
// encodes as JSON null.
type Slot string

// Filled reports whether the slot holds a field id.
func (s Slot) Filled() bool {
	return s != ""
}

func (s Slot) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("slot must be a string or null: %w", err)
	}
	*s = Slot(v)
	return nil
}

// StandardRoll is a 5-slot attribute record.
type StandardRoll struct {
	Number     int    `json:"number" validate:"min=1"`
	Attributes []Slot `json:"attributes" validate:"max=5"`
}

// MarshalJSON ensures nil Attributes marshal as [] not null.
func (r StandardRoll) MarshalJSON() ([]byte, error) {
	if r.Attributes == nil {
		r.Attributes = []Slot{}
	}
	type Alias StandardRoll
	return json.Marshal(Alias(r))
}

// SkillPairRoll is a group skill plus set bonus record.
type SkillPairRoll struct {
	Number     int  `json:"number" validate:"min=1"`
	GroupSkill Slot `json:"groupSkill"`
	SetBonus   Slot `json:"setBonus"`
}

// WeaponEntry is the persisted payload for one CategoryItem.
type WeaponEntry struct {
	Artian []StandardRoll  `json:"artian"`
	Gogma  []SkillPairRoll `json:"gogma"`
}

// MarshalJSON ensures nil slices in WeaponEntry marshal as [] not null.
func (e WeaponEntry) MarshalJSON() ([]byte, error) {
	if e.Artian == nil {
		e.Artian = []StandardRoll{}
	}
	if e.Gogma == nil {
		e.Gogma = []SkillPairRoll{}
	}
	type Alias WeaponEntry
	return json.Marshal(Alias(e))
}

// IsEmpty reports whether both arrays are empty.
func (e WeaponEntry) IsEmpty() bool {
	return len(e.Artian) == 0 && len(e.Gogma) == 0
}

// Roll is the mode-independent view of a record used by the tracker.
// Standard rolls carry up to 5 slots; skill-pair rolls carry exactly 2.
type Roll struct {
	Number int
	Slots  []Slot
}

// FilledCount returns the number of non-empty slots.
func (r Roll) FilledCount() int {
	n := 0
	for _, s := range r.Slots {
		if s.Filled() {
			n++
		}
	}
	return n
}

// Clone returns a copy that shares no backing array with r.
func (r Roll) Clone() Roll {
	out := Roll{Number: r.Number}
	if r.Slots != nil {
		out.Slots = append([]Slot(nil), r.Slots...)
	}
	return out
}

// CellRef addresses one slot of one persisted record.
type CellRef struct {
	Number   int `json:"number"`
	Position int `json:"position"`
}

// Package shape defines the per-mode record strategies the tracker is
// parameterized over. A Strategy knows how many slots a record has, when a
// record is complete, and which fields may go where. Everything else about
// reconciliation is shared.
package shape

import (
	"github.com/hyperengineering/artian/internal/types"
)

// FieldInfo describes one selectable field for display.
type FieldInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	// Class is the style class (level or skill colour).
	Class string `json:"class"`
	// Group is the heading the field is listed under.
	Group string `json:"group"`
}

// Strategy provides mode-specific record behavior.
type Strategy interface {
	// Mode returns the recording mode this strategy handles.
	Mode() types.Mode

	// SlotCount is the number of field positions in a record.
	SlotCount() int

	// Header returns the table column titles, row number first.
	Header() []string

	// Fields lists every field that may be selected in this mode.
	Fields() []FieldInfo

	// Describe returns display information for a stored field id.
	// Unknown ids are described by the id itself with no class.
	Describe(fieldID string) FieldInfo

	// RequiresFocus reports whether a focus type must be chosen before
	// fields can be recorded.
	RequiresFocus() bool

	// Rolls extracts this mode's records from entry.
	Rolls(entry types.WeaponEntry) []types.Roll

	// WithRolls returns entry with this mode's records replaced. The other
	// mode's array is carried over untouched.
	WithRolls(entry types.WeaponEntry, rolls []types.Roll) types.WeaponEntry

	// NewRoll returns an empty record numbered number.
	NewRoll(number int) types.Roll

	// Complete reports whether r has every slot filled.
	Complete(r types.Roll) bool

	// Append places fieldID into the next open slot of r.
	Append(r types.Roll, fieldID string) (types.Roll, error)

	// Place overwrites slot pos of r with fieldID.
	Place(r types.Roll, pos int, fieldID string) (types.Roll, error)
}

// HasMeaningfulData reports whether entry holds at least one record with a
// filled slot in the strategy's mode.
func HasMeaningfulData(s Strategy, entry types.WeaponEntry) bool {
	for _, r := range s.Rolls(entry) {
		if r.FilledCount() > 0 {
			return true
		}
	}
	return false
}

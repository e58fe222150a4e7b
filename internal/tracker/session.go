package tracker

import (
	"maps"

	"github.com/hyperengineering/artian/internal/types"
)

// Control names used for flashed indicators.
const (
	ControlClearItem = "clear-item"
	ControlFocus     = "focus"
)

// FieldControl returns the indicator control for a field button.
func FieldControl(fieldID string) string {
	return "field:" + fieldID
}

// Session is the interaction state a tracker owns for one mode.
type Session struct {
	Item     *types.CategoryItem
	Current  types.Roll
	Selected *types.CellRef
	Sort     types.SortOrder
	Focus    string

	// ArmedRow is the row number awaiting delete confirmation, 0 for none.
	ArmedRow       int
	ClearArmed     bool
	ClearModeArmed bool

	// Notice is a dismissable message about corrupt stored data.
	Notice string

	// Indicators maps a control to the message flashed on it.
	Indicators map[string]string
}

func (s Session) clone() Session {
	out := s
	if s.Item != nil {
		item := *s.Item
		out.Item = &item
	}
	if s.Selected != nil {
		ref := *s.Selected
		out.Selected = &ref
	}
	out.Current = s.Current.Clone()
	out.Indicators = maps.Clone(s.Indicators)
	if out.Indicators == nil {
		out.Indicators = map[string]string{}
	}
	return out
}

package tracker

import (
	"time"

	"github.com/hyperengineering/artian/internal/types"
)

// Options tune tracker behavior. Zero durations fall back to defaults.
type Options struct {
	// RequireFocus gates skill-pair picks on a chosen focus type.
	RequireFocus bool

	// ArmTimeout is how long a delete or clear stays armed.
	ArmTimeout time.Duration

	// FieldErrorTimeout is how long a rejected field pick stays flagged.
	FieldErrorTimeout time.Duration

	// SelectionErrorTimeout is how long "select a weapon first" stays shown.
	SelectionErrorTimeout time.Duration

	// Sort is the initial row order.
	Sort types.SortOrder

	Clock Clock
}

// DefaultOptions returns the standard timeouts with focus required.
func DefaultOptions() Options {
	return Options{
		RequireFocus:          true,
		ArmTimeout:            3 * time.Second,
		FieldErrorTimeout:     500 * time.Millisecond,
		SelectionErrorTimeout: 2 * time.Second,
		Sort:                  types.SortAscending,
		Clock:                 RealClock(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ArmTimeout <= 0 {
		o.ArmTimeout = d.ArmTimeout
	}
	if o.FieldErrorTimeout <= 0 {
		o.FieldErrorTimeout = d.FieldErrorTimeout
	}
	if o.SelectionErrorTimeout <= 0 {
		o.SelectionErrorTimeout = d.SelectionErrorTimeout
	}
	if o.Sort == "" {
		o.Sort = d.Sort
	}
	if o.Clock == nil {
		o.Clock = d.Clock
	}
	return o
}

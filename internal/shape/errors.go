package shape

import "errors"

var (
	// ErrUnknownField indicates a field id that is not selectable in the mode.
	ErrUnknownField = errors.New("unknown field")

	// ErrClassMismatch indicates a skill placed into the other class's slot.
	ErrClassMismatch = errors.New("field does not belong in this slot")

	// ErrRecordFull indicates an append to a record with no open slot.
	ErrRecordFull = errors.New("record is full")

	// ErrPositionOutOfRange indicates a slot index outside the record.
	ErrPositionOutOfRange = errors.New("position out of range")
)

package store

import "errors"

var (
	ErrNotFound = errors.New("key not found")
	ErrEmptyKey = errors.New("empty key")
)

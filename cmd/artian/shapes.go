package main

import (
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/shape/skillpair"
	"github.com/hyperengineering/artian/internal/shape/standard"
)

// initShapes registers the record strategy for each mode.
// Called once per command before any store operations.
func initShapes() {
	shape.Register(standard.New())
	shape.Register(skillpair.New())
}

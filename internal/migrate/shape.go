package migrate

import (
	"github.com/tidwall/gjson"
)

// Shape is the discriminant of a stored entry's layout.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeV1 is a bare array of standard records with at least one unleveled id.
	ShapeV1
	// ShapeV2 is a bare array of standard records with leveled ids only.
	ShapeV2
	// ShapeV3 is the nested {artian, gogma} object.
	ShapeV3
)

func (s Shape) String() string {
	switch s {
	case ShapeV1:
		return "v1"
	case ShapeV2:
		return "v2"
	case ShapeV3:
		return "v3"
	default:
		return "unknown"
	}
}

// ClassifyStoredShape reports which layout raw is stored in. It is the only
// place entry layouts are told apart.
func ClassifyStoredShape(raw string) Shape {
	if !gjson.Valid(raw) {
		return ShapeUnknown
	}

	root := gjson.Parse(raw)
	switch {
	case root.IsArray():
		return classifyArray(root)
	case root.IsObject():
		if root.Get("artian").Exists() || root.Get("gogma").Exists() {
			return ShapeV3
		}
	}
	return ShapeUnknown
}

func classifyArray(root gjson.Result) Shape {
	shape := ShapeV2
	root.ForEach(func(_, record gjson.Result) bool {
		if !record.IsObject() {
			shape = ShapeUnknown
			return false
		}
		attrs := record.Get("attributes")
		if attrs.Exists() && !attrs.IsArray() {
			shape = ShapeUnknown
			return false
		}
		attrs.ForEach(func(_, id gjson.Result) bool {
			if id.Type == gjson.String && !isLeveled(id.Str) {
				shape = ShapeV1
				return false
			}
			return true
		})
		return true
	})
	return shape
}

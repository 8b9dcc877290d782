package model

import "fmt"

// Kind classifies a raw field of a census row.
type Kind byte

const (
	// NumericField is a field passed through as a float.
	NumericField Kind = iota
	// CategoryField is a category of one of the features.
	CategoryField
	// TargetField is a category of the target feature.
	TargetField
	// MissingField is the missing-value marker.
	MissingField
)

func (k Kind) String() string {
	switch k {
	case NumericField:
		return "numeric"
	case CategoryField:
		return "category"
	case TargetField:
		return "target"
	case MissingField:
		return "missing"
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// Field is the classified form of a raw field.
type Field struct {
	Kind    Kind
	Feature string
	Index   int
	Value   float64
}

// Numeric creates a numeric passthrough field.
func Numeric(v float64) Field {
	return Field{
		Kind:  NumericField,
		Index: -1,
		Value: v,
	}
}

// Category creates a field for the category at the given index of the feature.
func Category(feature string, index int) Field {
	return Field{
		Kind:    CategoryField,
		Feature: feature,
		Index:   index,
		Value:   float64(index),
	}
}

// Target creates a field for the target category at the given index.
func Target(index int) Field {
	return Field{
		Kind:  TargetField,
		Index: index,
		Value: float64(index),
	}
}

// Missing creates a missing-value field.
func Missing() Field {
	return Field{
		Kind:  MissingField,
		Index: -1,
	}
}

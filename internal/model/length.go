package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// LengthKind is the discriminator of a Length.
type LengthKind string

const (
	// LengthKindPixel is an absolute length in pixels.
	LengthKindPixel LengthKind = "px"
	// LengthKindFractional is a length relative to a screen dimension.
	LengthKindFractional LengthKind = "/"
)

// Length is a screen coordinate or distance, either absolute pixels or a
// fraction of the screen dimension it is resolved against.
//
// Length values are immutable, use NewPixelLength or NewFractionalLength to
// create them.
type Length struct {
	kind        LengthKind
	value       int
	numerator   int
	denominator int
}

// NewPixelLength returns an absolute length, value must be non negative.
func NewPixelLength(value int) (Length, error) {
	if value < 0 {
		return Length{}, fmt.Errorf("pixel length must be non negative, got %d: %w", value, ErrNotValid)
	}
	return Length{kind: LengthKindPixel, value: value}, nil
}

// NewFractionalLength returns a numerator/denominator length, denominator must not be zero.
func NewFractionalLength(numerator, denominator int) (Length, error) {
	if denominator == 0 {
		return Length{}, fmt.Errorf("fractional length denominator must not be zero: %w", ErrNotValid)
	}
	return Length{kind: LengthKindFractional, numerator: numerator, denominator: denominator}, nil
}

// Px is like NewPixelLength but panics on invalid values, meant for literals.
func Px(value int) Length {
	l, err := NewPixelLength(value)
	if err != nil {
		panic(err)
	}
	return l
}

// Frac is like NewFractionalLength but panics on invalid values, meant for literals.
func Frac(numerator, denominator int) Length {
	l, err := NewFractionalLength(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Length) Kind() LengthKind { return l.kind }
func (l Length) Value() int       { return l.value }
func (l Length) Numerator() int   { return l.numerator }
func (l Length) Denominator() int { return l.denominator }

// IsZero returns true for the zero Length (no kind set).
func (l Length) IsZero() bool { return l.kind == "" }

// Resolve returns the length in pixels for a screen dimension.
// Fractional lengths are rounded half away from zero.
func (l Length) Resolve(dimension int) int {
	switch l.kind {
	case LengthKindFractional:
		return int(math.Round(float64(dimension) * float64(l.numerator) / float64(l.denominator)))
	default:
		return l.value
	}
}

// Equal returns true when both lengths have the same kind and values.
func (l Length) Equal(other Length) bool {
	return l == other
}

func (l Length) String() string {
	switch l.kind {
	case LengthKindPixel:
		return fmt.Sprintf("%dpx", l.value)
	case LengthKindFractional:
		return fmt.Sprintf("%d/%d", l.numerator, l.denominator)
	default:
		return "<unset>"
	}
}

type lengthJSON struct {
	Type        LengthKind `json:"type"`
	Value       *int       `json:"value,omitempty"`
	Numerator   *int       `json:"numerator,omitempty"`
	Denominator *int       `json:"denominator,omitempty"`
}

func (l Length) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case LengthKindPixel:
		return json.Marshal(lengthJSON{Type: l.kind, Value: &l.value})
	case LengthKindFractional:
		return json.Marshal(lengthJSON{Type: l.kind, Numerator: &l.numerator, Denominator: &l.denominator})
	default:
		return nil, fmt.Errorf("length kind is not set: %w", ErrNotValid)
	}
}

// UnmarshalJSON decodes and validates a length, unknown fields are ignored.
func (l *Length) UnmarshalJSON(data []byte) error {
	var raw lengthJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("could not decode length: %w", err)
	}

	var (
		res Length
		err error
	)
	switch raw.Type {
	case LengthKindPixel:
		if raw.Value == nil {
			return fmt.Errorf("pixel length value is required: %w", ErrNotValid)
		}
		res, err = NewPixelLength(*raw.Value)
	case LengthKindFractional:
		if raw.Numerator == nil || raw.Denominator == nil {
			return fmt.Errorf("fractional length numerator and denominator are required: %w", ErrNotValid)
		}
		res, err = NewFractionalLength(*raw.Numerator, *raw.Denominator)
	default:
		return fmt.Errorf("unknown length type %q: %w", raw.Type, ErrNotValid)
	}
	if err != nil {
		return err
	}

	*l = res
	return nil
}

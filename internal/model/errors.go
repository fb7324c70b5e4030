package model

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrUnknownPattern   = errors.New("unknown layout pattern")
	ErrTooManyBoxes     = errors.New("too many boxes")
)

// InvalidDimensionError is returned when a container or box dimension is
// zero, negative, or not a finite number.
type InvalidDimensionError struct {
	Subject string  // "container" or "box"
	Field   string  // "length", "width" or "height"
	Value   float64 // offending value
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("%s %s must be a positive number, got %g", e.Subject, e.Field, e.Value)
}

// Is lets errors.Is(err, ErrInvalidDimension) match.
func (e *InvalidDimensionError) Is(target error) bool {
	return target == ErrInvalidDimension
}

// UnknownPatternError is returned for a pattern name with no registered strategy.
type UnknownPatternError struct {
	Pattern Pattern
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("unknown layout pattern %q", string(e.Pattern))
}

// Is lets errors.Is(err, ErrUnknownPattern) match.
func (e *UnknownPatternError) Is(target error) bool {
	return target == ErrUnknownPattern
}

// TooManyBoxesError is returned when a layout would place more boxes than the
// calculator enumerates.
type TooManyBoxesError struct {
	Count float64 // boxes that would fit; may exceed the int range
	Limit int
}

func (e *TooManyBoxesError) Error() string {
	return fmt.Sprintf("layout would place %.0f boxes, more than the limit of %d", e.Count, e.Limit)
}

// Is lets errors.Is(err, ErrTooManyBoxes) match.
func (e *TooManyBoxesError) Is(target error) bool {
	return target == ErrTooManyBoxes
}

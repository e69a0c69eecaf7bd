package storage

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCapacity       = errors.New("invalid storage capacity")
	ErrInvalidEffectiveIndex = errors.New("invalid effective index")
	ErrInvalidConfig         = errors.New("invalid storage configuration")
)

// A CapacityError is returned when a requested capacity (or hole) cannot be provided.
// It matches ErrInvalidCapacity.
type CapacityError struct {
	ExpectedCapacity int
	Occupied         int
	HoleSize         int
	reason           string
}

func (err CapacityError) Error() string {
	if err.reason != "" {
		return fmt.Sprintf("%s: %s", ErrInvalidCapacity, err.reason)
	}
	return fmt.Sprintf("%s: occupied + holeSize == %d + %d > %d == expectedCapacity",
		ErrInvalidCapacity, err.Occupied, err.HoleSize, err.ExpectedCapacity)
}

func (err CapacityError) Is(target error) bool {
	return target == ErrInvalidCapacity
}

// An EffectiveIndexError is returned when an effective index lies outside [First, Last].
// It matches ErrInvalidEffectiveIndex.
type EffectiveIndexError struct {
	Index int
	First int
	Last  int
}

func (err EffectiveIndexError) BelowFirst() bool {
	return err.Index < err.First
}

func (err EffectiveIndexError) AboveLast() bool {
	return err.Index > err.Last
}

func (err EffectiveIndexError) Error() string {
	if err.BelowFirst() {
		return fmt.Sprintf("%s: effectiveIndex = %d < %d = firstItemEffectiveIndex", ErrInvalidEffectiveIndex, err.Index, err.First)
	}
	return fmt.Sprintf("%s: effectiveIndex = %d > %d = lastItemEffectiveIndex", ErrInvalidEffectiveIndex, err.Index, err.Last)
}

func (err EffectiveIndexError) Is(target error) bool {
	return target == ErrInvalidEffectiveIndex
}

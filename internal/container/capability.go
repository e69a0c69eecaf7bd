package container

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/jlibgo/jlib/internal/observer"
	"github.com/jlibgo/jlib/internal/sequence"
)

var (
	ErrCapabilityNotConfigured = errors.New("capability not configured")
	ErrItemNotFound            = errors.New("item not found")
)

type Capability int

const (
	CountCapability Capability = iota + 1
	EmptinessCapability
	ContainsItemCapability
	ContainsItemsCapability
	RemoveItemCapability
	RemoveItemsCapability
	RemoveAllCapability
	RetainCapability
	ToSliceCapability
	TraverseCapability
	EqualItemsCapability
	CreateTraverserCapability
	ToSetCapability
)

var capabilityNames = map[Capability]string{
	CountCapability:           "count",
	EmptinessCapability:       "emptiness",
	ContainsItemCapability:    "contains-item",
	ContainsItemsCapability:   "contains-items",
	RemoveItemCapability:      "remove-item",
	RemoveItemsCapability:     "remove-items",
	RemoveAllCapability:       "remove-all",
	RetainCapability:          "retain",
	ToSliceCapability:         "to-slice",
	TraverseCapability:        "traverse",
	EqualItemsCapability:      "equal-items",
	CreateTraverserCapability: "create-traverser",
	ToSetCapability:           "to-set",
}

func (c Capability) String() string {
	name, ok := capabilityNames[c]
	if !ok {
		return fmt.Sprintf("capability(%d)", int(c))
	}
	return name
}

// A CapabilityError is returned when a capability without implementation is invoked,
// it matches ErrCapabilityNotConfigured.
type CapabilityError struct {
	Capability Capability
}

func (err CapabilityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCapabilityNotConfigured, err.Capability)
}

func (err CapabilityError) Is(target error) bool {
	return target == ErrCapabilityNotConfigured
}

type Counter interface {
	Count() (int, error)
}

type EmptinessChecker interface {
	IsEmpty() (bool, error)
}

type ItemContainer[T any] interface {
	Contains(item T) (bool, error)
}

type ItemsContainer[T any] interface {
	// ContainsAll reports whether every item of items is contained.
	ContainsAll(items []T) (bool, error)
}

type ItemRemover[T any] interface {
	// Remove removes one occurrence of item, an error matching ErrItemNotFound is returned if there is none.
	Remove(item T, observers ...observer.ValueObserver[T]) error
}

type ItemsRemover[T any] interface {
	// RemoveItems removes one occurrence of each item of items. If an item is not contained the call fails
	// with an error matching ErrItemNotFound before anything is removed.
	RemoveItems(items []T, observers ...observer.ValueObserver[T]) error
}

type AllRemover[T any] interface {
	RemoveAll(observers ...observer.ValueObserver[T]) error
}

type Retainer[T any] interface {
	// Retain removes every item that is not in items.
	Retain(items []T, observers ...observer.ValueObserver[T]) error
}

type SliceConverter[T any] interface {
	ToSlice() ([]T, error)
}

// A SetConverter returns the distinct items of a container. Only containers of comparable items can
// implement it: the items are hashed.
type SetConverter interface {
	ToSet() (*hashset.Set, error)
}

type Traversable[T any] interface {
	// ForEach calls fn for each item, the iteration stops at the first error.
	ForEach(fn func(item T) error) error
}

type EqualItemsChecker[T any] interface {
	// ContainsEqualItems reports whether the container holds the same items as items, in the same order.
	ContainsEqualItems(items []T) (bool, error)
}

type TraverserCreator[T any] interface {
	CreateTraverser() (*sequence.Traverser[T], error)
}

// Equality reports whether two items are equal.
type Equality[T any] func(a, b T) bool

func ComparableEquality[T comparable](a, b T) bool {
	return a == b
}

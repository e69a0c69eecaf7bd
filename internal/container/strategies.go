package container

import (
	"errors"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/jlibgo/jlib/internal/utils"
)

// errStopIteration is returned by ForEach callbacks to stop an iteration early.
var errStopIteration = errors.New("stop iteration")

func forEachUntilStopped[T any](traversable Traversable[T], fn func(item T) error) error {
	err := traversable.ForEach(fn)
	if errors.Is(err, errStopIteration) {
		return nil
	}
	return err
}

type emptinessFromCount struct {
	counter Counter
}

// IsEmptyFromCount returns an EmptinessChecker that compares the count to zero.
func IsEmptyFromCount(counter Counter) EmptinessChecker {
	return emptinessFromCount{counter: counter}
}

func (e emptinessFromCount) IsEmpty() (bool, error) {
	count, err := e.counter.Count()
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

type emptinessFromTraversable[T any] struct {
	traversable Traversable[T]
}

// IsEmptyFromTraversable returns an EmptinessChecker that stops the traversal at the first item.
func IsEmptyFromTraversable[T any](traversable Traversable[T]) EmptinessChecker {
	return emptinessFromTraversable[T]{traversable: traversable}
}

func (e emptinessFromTraversable[T]) IsEmpty() (bool, error) {
	empty := true
	err := forEachUntilStopped(e.traversable, func(item T) error {
		empty = false
		return errStopIteration
	})
	return empty, err
}

type countFromTraversable[T any] struct {
	traversable Traversable[T]
}

func CountFromTraversable[T any](traversable Traversable[T]) Counter {
	return countFromTraversable[T]{traversable: traversable}
}

func (c countFromTraversable[T]) Count() (int, error) {
	count := 0
	err := c.traversable.ForEach(func(item T) error {
		count++
		return nil
	})
	return count, err
}

// EqualityMembership implements ItemContainer and ItemsContainer by comparing the traversed items with an Equality.
type EqualityMembership[T any] struct {
	traversable Traversable[T]
	equal       Equality[T]
}

func ContainsByEquality[T any](traversable Traversable[T], equal Equality[T]) *EqualityMembership[T] {
	return &EqualityMembership[T]{traversable: traversable, equal: equal}
}

func (m *EqualityMembership[T]) Contains(item T) (bool, error) {
	found := false
	err := forEachUntilStopped(m.traversable, func(e T) error {
		if m.equal(e, item) {
			found = true
			return errStopIteration
		}
		return nil
	})
	return found, err
}

func (m *EqualityMembership[T]) ContainsAll(items []T) (bool, error) {
	found := make([]bool, len(items))
	remaining := len(items)

	err := forEachUntilStopped(m.traversable, func(e T) error {
		for i, item := range items {
			if !found[i] && m.equal(e, item) {
				found[i] = true
				remaining--
			}
		}
		if remaining == 0 {
			return errStopIteration
		}
		return nil
	})
	return remaining == 0, err
}

// ComparableMembership implements ItemContainer and ItemsContainer with a hash set of the traversed items.
type ComparableMembership[T comparable] struct {
	traversable Traversable[T]
}

func ContainsComparable[T comparable](traversable Traversable[T]) *ComparableMembership[T] {
	return &ComparableMembership[T]{traversable: traversable}
}

func (m *ComparableMembership[T]) Contains(item T) (bool, error) {
	return ContainsByEquality(m.traversable, ComparableEquality[T]).Contains(item)
}

func (m *ComparableMembership[T]) ContainsAll(items []T) (bool, error) {
	set := hashset.New()
	err := m.traversable.ForEach(func(item T) error {
		set.Add(item)
		return nil
	})
	if err != nil {
		return false, err
	}

	for _, item := range items {
		if !set.Contains(item) {
			return false, nil
		}
	}
	return true, nil
}

type sliceFromTraversable[T any] struct {
	traversable Traversable[T]
}

func ToSliceFromTraversable[T any](traversable Traversable[T]) SliceConverter[T] {
	return sliceFromTraversable[T]{traversable: traversable}
}

func (s sliceFromTraversable[T]) ToSlice() ([]T, error) {
	var items []T
	err := s.traversable.ForEach(func(item T) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return utils.EmptySliceIfNil(items), nil
}

type setFromTraversable[T comparable] struct {
	traversable Traversable[T]
}

func ToSetFromTraversable[T comparable](traversable Traversable[T]) SetConverter {
	return setFromTraversable[T]{traversable: traversable}
}

func (s setFromTraversable[T]) ToSet() (*hashset.Set, error) {
	set := hashset.New()
	err := s.traversable.ForEach(func(item T) error {
		set.Add(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

type equalItemsFromTraversable[T any] struct {
	traversable Traversable[T]
	equal       Equality[T]
}

func ContainsEqualItemsFromTraversable[T any](traversable Traversable[T], equal Equality[T]) EqualItemsChecker[T] {
	return equalItemsFromTraversable[T]{traversable: traversable, equal: equal}
}

func (e equalItemsFromTraversable[T]) ContainsEqualItems(items []T) (bool, error) {
	i := 0
	equal := true

	err := forEachUntilStopped(e.traversable, func(item T) error {
		if i >= len(items) || !e.equal(item, items[i]) {
			equal = false
			return errStopIteration
		}
		i++
		return nil
	})
	if err != nil {
		return false, err
	}
	return equal && i == len(items), nil
}

package sequence

import (
	"github.com/jlibgo/jlib/internal/observer"
)

// Bounds is implemented by anything having an inclusive index range. An empty range has
// LastIndex() == FirstIndex() - 1.
type Bounds interface {
	FirstIndex() int
	LastIndex() int
}

// An IndexSequence is a sequence of items addressed by consecutive indices in [FirstIndex(), LastIndex()].
type IndexSequence[T any] interface {
	Bounds
	Len() int
	IsEmpty() bool
	Get(index int) (T, error)
}

type ReplaceIndexSequence[T any] interface {
	IndexSequence[T]

	// Replace replaces the item at index, observers are notified with the new item.
	Replace(index int, item T, observers ...observer.ValueObserver[T]) error
}

type InsertIndexSequence[T any] interface {
	IndexSequence[T]

	// Insert inserts items before the item at index, the following items have their index increased by
	// len(items). Observers are notified once per inserted item.
	Insert(index int, items []T, observers ...observer.ValueObserver[T]) error

	// Append adds items after the last item.
	Append(items []T, observers ...observer.ValueObserver[T]) error
}

type RemoveIndexSequence[T any] interface {
	IndexSequence[T]

	// Remove removes the item at index and returns it, observers are notified with the removed item.
	Remove(index int, observers ...observer.ValueObserver[T]) (T, error)
}

type MutableIndexSequence[T any] interface {
	ReplaceIndexSequence[T]
	InsertIndexSequence[T]
	RemoveIndexSequence[T]
}

// A Versioned sequence increments its structure version after each insertion or removal,
// traversers use it to detect mutations performed by other code paths.
type Versioned interface {
	StructureVersion() uint64
}

// AssertIndexValid returns an IndexError if index is not in [seq.FirstIndex(), seq.LastIndex()].
func AssertIndexValid(seq Bounds, index int) error {
	first, last := seq.FirstIndex(), seq.LastIndex()
	if index < first || index > last {
		return IndexError{Index: index, FirstIndex: first, LastIndex: last}
	}
	return nil
}

// AssertIndexRangeValid checks that both bounds are valid indices, then that from <= to.
func AssertIndexRangeValid(seq Bounds, from, to int) error {
	if err := AssertIndexValid(seq, from); err != nil {
		return err
	}
	if err := AssertIndexValid(seq, to); err != nil {
		return err
	}
	if from > to {
		return RangeError{From: from, To: to}
	}
	return nil
}

// Equal reports whether a and b have the same bounds and equal items at every index.
func Equal[T any](a, b IndexSequence[T], eq func(a, b T) bool) bool {
	if a.FirstIndex() != b.FirstIndex() || a.LastIndex() != b.LastIndex() {
		return false
	}

	for i := a.FirstIndex(); i <= a.LastIndex(); i++ {
		itemA, errA := a.Get(i)
		itemB, errB := b.Get(i)
		if errA != nil || errB != nil || !eq(itemA, itemB) {
			return false
		}
	}
	return true
}

// Values returns the items of seq in index order.
func Values[T any](seq IndexSequence[T]) ([]T, error) {
	values := make([]T, 0, max(seq.Len(), 0))
	for i := seq.FirstIndex(); i <= seq.LastIndex(); i++ {
		item, err := seq.Get(i)
		if err != nil {
			return nil, err
		}
		values = append(values, item)
	}
	return values, nil
}

func structureVersion(seq any) (uint64, bool) {
	versioned, ok := seq.(Versioned)
	if !ok {
		return 0, false
	}
	return versioned.StructureVersion(), true
}

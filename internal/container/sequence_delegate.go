package container

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/jlibgo/jlib/internal/observer"
	"github.com/jlibgo/jlib/internal/sequence"
)

// Sequence is the sequence type a SequenceDelegate forwards to, *sequence.ArraySequence implements it.
type Sequence[T any] interface {
	sequence.MutableIndexSequence[T]
	RemoveRange(from, to int, observers ...observer.ValueObserver[T]) error
	RemoveAll(observers ...observer.ValueObserver[T]) error
}

// A SequenceDelegate implements every capability on top of a Sequence.
type SequenceDelegate[T any] struct {
	seq   Sequence[T]
	equal Equality[T]

	//returns a membership predicate for items
	membership func(items []T) func(item T) bool
}

func NewSequenceDelegate[T any](seq Sequence[T], equal Equality[T]) *SequenceDelegate[T] {
	return &SequenceDelegate[T]{
		seq:   seq,
		equal: equal,
		membership: func(items []T) func(item T) bool {
			return func(item T) bool {
				for _, e := range items {
					if equal(e, item) {
						return true
					}
				}
				return false
			}
		},
	}
}

// NewComparableSequenceDelegate returns a SequenceDelegate whose bulk membership tests use a hash set.
func NewComparableSequenceDelegate[T comparable](seq Sequence[T]) *SequenceDelegate[T] {
	d := NewSequenceDelegate(seq, ComparableEquality[T])
	d.membership = func(items []T) func(item T) bool {
		set := hashset.New()
		for _, item := range items {
			set.Add(item)
		}
		return func(item T) bool {
			return set.Contains(item)
		}
	}
	return d
}

// FromSequence returns a GodContainer with every capability forwarded to seq, except ToSet which
// requires comparable items (see FromComparableSequence).
func FromSequence[T any](seq Sequence[T], equal Equality[T]) *GodContainer[T] {
	return NewSequenceDelegate(seq, equal).GodContainer()
}

func FromComparableSequence[T comparable](seq Sequence[T]) *GodContainer[T] {
	d := NewComparableSequenceDelegate(seq)
	c := d.GodContainer()
	c.SetSetConverter(ToSetFromTraversable[T](d))
	return c
}

func (d *SequenceDelegate[T]) GodContainer() *GodContainer[T] {
	return New(Delegates[T]{
		Counter:          d,
		EmptinessChecker: d,
		ItemContainer:    d,
		ItemsContainer:   d,
		ItemRemover:      d,
		ItemsRemover:     d,
		AllRemover:       d,
		Retainer:         d,
		SliceConverter:   d,
		Traversable:      d,
		EqualItems:       d,
		TraverserCreator: d,
	})
}

func (d *SequenceDelegate[T]) Count() (int, error) {
	return d.seq.Len(), nil
}

func (d *SequenceDelegate[T]) IsEmpty() (bool, error) {
	return d.seq.IsEmpty(), nil
}

func (d *SequenceDelegate[T]) Contains(item T) (bool, error) {
	index, err := d.indexOf(item, nil)
	return index >= 0, err
}

func (d *SequenceDelegate[T]) ContainsAll(items []T) (bool, error) {
	values, err := sequence.Values[T](d.seq)
	if err != nil {
		return false, err
	}

	contains := d.membership(values)
	for _, item := range items {
		if !contains(item) {
			return false, nil
		}
	}
	return true, nil
}

// indexOf returns the index of the first item equal to item whose position is not in excluded,
// -1 is returned if there is no such item.
func (d *SequenceDelegate[T]) indexOf(item T, excluded *bitset.BitSet) (int, error) {
	first := d.seq.FirstIndex()

	for i := first; i <= d.seq.LastIndex(); i++ {
		if excluded != nil && excluded.Test(uint(i-first)) {
			continue
		}
		e, err := d.seq.Get(i)
		if err != nil {
			return -1, err
		}
		if d.equal(e, item) {
			return i, nil
		}
	}
	return -1, nil
}

func (d *SequenceDelegate[T]) Remove(item T, observers ...observer.ValueObserver[T]) error {
	index, err := d.indexOf(item, nil)
	if err != nil {
		return err
	}
	if index < 0 {
		return fmt.Errorf("%w: %v", ErrItemNotFound, item)
	}

	_, err = d.seq.Remove(index, observers...)
	return err
}

func (d *SequenceDelegate[T]) RemoveItems(items []T, observers ...observer.ValueObserver[T]) error {
	marks := bitset.New(uint(max(d.seq.Len(), 0)))

	for _, item := range items {
		index, err := d.indexOf(item, marks)
		if err != nil {
			return err
		}
		if index < 0 {
			return fmt.Errorf("%w: %v", ErrItemNotFound, item)
		}
		marks.Set(uint(index - d.seq.FirstIndex()))
	}

	return d.removeMarked(marks, observers)
}

func (d *SequenceDelegate[T]) RemoveAll(observers ...observer.ValueObserver[T]) error {
	return d.seq.RemoveAll(observers...)
}

func (d *SequenceDelegate[T]) Retain(items []T, observers ...observer.ValueObserver[T]) error {
	keep := d.membership(items)
	first := d.seq.FirstIndex()
	marks := bitset.New(uint(max(d.seq.Len(), 0)))

	for i := first; i <= d.seq.LastIndex(); i++ {
		item, err := d.seq.Get(i)
		if err != nil {
			return err
		}
		if !keep(item) {
			marks.Set(uint(i - first))
		}
	}

	return d.removeMarked(marks, observers)
}

// removeMarked removes the items whose position is set in marks. Consecutive items are removed as ranges,
// starting with the range having the highest indices so that the remaining positions stay valid.
func (d *SequenceDelegate[T]) removeMarked(marks *bitset.BitSet, observers []observer.ValueObserver[T]) error {
	first := d.seq.FirstIndex()

	var ranges [][2]int
	for pos, ok := marks.NextSet(0); ok; pos, ok = marks.NextSet(pos + 1) {
		index := first + int(pos)

		if n := len(ranges); n > 0 && ranges[n-1][1] == index-1 {
			ranges[n-1][1] = index
		} else {
			ranges = append(ranges, [2]int{index, index})
		}
	}

	for i := len(ranges) - 1; i >= 0; i-- {
		if err := d.seq.RemoveRange(ranges[i][0], ranges[i][1], observers...); err != nil {
			return err
		}
	}
	return nil
}

func (d *SequenceDelegate[T]) ToSlice() ([]T, error) {
	return sequence.Values[T](d.seq)
}

func (d *SequenceDelegate[T]) ForEach(fn func(item T) error) error {
	for i := d.seq.FirstIndex(); i <= d.seq.LastIndex(); i++ {
		item, err := d.seq.Get(i)
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

func (d *SequenceDelegate[T]) ContainsEqualItems(items []T) (bool, error) {
	return ContainsEqualItemsFromTraversable[T](d, d.equal).ContainsEqualItems(items)
}

func (d *SequenceDelegate[T]) CreateTraverser() (*sequence.Traverser[T], error) {
	return sequence.NewTraverser[T](d.seq), nil
}

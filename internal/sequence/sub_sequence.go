package sequence

import (
	"fmt"

	"github.com/jlibgo/jlib/internal/observer"
	"github.com/rs/zerolog"
)

var (
	_ = MutableIndexSequence[int]((*SubSequence[int])(nil))
)

// A SubSequence is a window [FirstIndex(), LastIndex()] over a base sequence. The view shares the index space
// of its base and holds no items: reads and mutations are delegated to the base, so any change made to the
// base is immediately visible through the view.
//
// Insertions and removals performed through the view move its upper bound. If the base is modified by other
// code paths so that the window no longer lies within the bounds of the base, every operation fails with an
// error matching ErrViewInvalidated.
//
// Mutations are only supported if the base supports them, ErrUnsupportedOperation is returned otherwise.
type SubSequence[T any] struct {
	base   IndexSequence[T]
	first  int
	last   int
	logger zerolog.Logger
}

func NewSubsequenceView[T any](base IndexSequence[T], from, to int) (*SubSequence[T], error) {
	if err := AssertIndexRangeValid(base, from, to); err != nil {
		return nil, err
	}

	return &SubSequence[T]{
		base:   base,
		first:  from,
		last:   to,
		logger: zerolog.Nop(),
	}, nil
}

func (v *SubSequence[T]) SetLogger(logger zerolog.Logger) {
	v.logger = logger
}

func (v *SubSequence[T]) Base() IndexSequence[T] {
	return v.base
}

func (v *SubSequence[T]) FirstIndex() int {
	return v.first
}

func (v *SubSequence[T]) LastIndex() int {
	return v.last
}

func (v *SubSequence[T]) Len() int {
	return v.last - v.first + 1
}

func (v *SubSequence[T]) IsEmpty() bool {
	return v.last < v.first
}

func (v *SubSequence[T]) StructureVersion() uint64 {
	version, _ := structureVersion(v.base)
	return version
}

// checkWindow returns an error if the window is not within the bounds of the base.
func (v *SubSequence[T]) checkWindow() error {
	baseFirst, baseLast := v.base.FirstIndex(), v.base.LastIndex()

	var err error
	switch {
	case v.first < baseFirst:
		err = IndexError{Index: v.first, FirstIndex: baseFirst, LastIndex: baseLast}
	case v.IsEmpty() && v.first > baseLast+1:
		err = IndexError{Index: v.first, FirstIndex: baseFirst, LastIndex: baseLast + 1}
	case !v.IsEmpty() && v.last > baseLast:
		err = IndexError{Index: v.last, FirstIndex: baseFirst, LastIndex: baseLast}
	default:
		return nil
	}

	v.logger.Warn().
		Int("viewFirst", v.first).
		Int("viewLast", v.last).
		Int("baseFirst", baseFirst).
		Int("baseLast", baseLast).
		Msg("sub-sequence view invalidated")

	return fmt.Errorf("%w: %w", ErrViewInvalidated, err)
}

func (v *SubSequence[T]) checkIndex(index int) error {
	if err := v.checkWindow(); err != nil {
		return err
	}
	return AssertIndexValid(v, index)
}

func (v *SubSequence[T]) Get(index int) (T, error) {
	if err := v.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return v.base.Get(index)
}

func (v *SubSequence[T]) Replace(index int, item T, observers ...observer.ValueObserver[T]) error {
	base, ok := v.base.(ReplaceIndexSequence[T])
	if !ok {
		return fmt.Errorf("%w: the base sequence does not support replacement", ErrUnsupportedOperation)
	}
	if err := v.checkIndex(index); err != nil {
		return err
	}
	return base.Replace(index, item, observers...)
}

func (v *SubSequence[T]) Insert(index int, items []T, observers ...observer.ValueObserver[T]) error {
	if err := v.checkIndex(index); err != nil {
		return err
	}
	return v.insert(index, items, observers)
}

// Append inserts items after the last item of the view.
func (v *SubSequence[T]) Append(items []T, observers ...observer.ValueObserver[T]) error {
	if err := v.checkWindow(); err != nil {
		return err
	}
	return v.insert(v.last+1, items, observers)
}

func (v *SubSequence[T]) insert(index int, items []T, observers []observer.ValueObserver[T]) error {
	base, ok := v.base.(InsertIndexSequence[T])
	if !ok {
		return fmt.Errorf("%w: the base sequence does not support insertion", ErrUnsupportedOperation)
	}

	lenBefore := base.Len()
	var err error
	if index > base.LastIndex() {
		err = base.Append(items, observers...)
	} else {
		err = base.Insert(index, items, observers...)
	}

	//some items may have been inserted before a failure
	v.last += base.Len() - lenBefore
	return err
}

func (v *SubSequence[T]) Remove(index int, observers ...observer.ValueObserver[T]) (T, error) {
	base, ok := v.base.(RemoveIndexSequence[T])
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: the base sequence does not support removal", ErrUnsupportedOperation)
	}
	if err := v.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}

	lenBefore := base.Len()
	item, err := base.Remove(index, observers...)
	v.last -= lenBefore - base.Len()
	return item, err
}

func (v *SubSequence[T]) Values() ([]T, error) {
	if err := v.checkWindow(); err != nil {
		return nil, err
	}
	return Values[T](v)
}

func (v *SubSequence[T]) SubsequenceView(from, to int) (*SubSequence[T], error) {
	if err := v.checkWindow(); err != nil {
		return nil, err
	}
	view, err := NewSubsequenceView[T](v, from, to)
	if err != nil {
		return nil, err
	}
	view.SetLogger(v.logger)
	return view, nil
}

func (v *SubSequence[T]) CreateTraverser() *Traverser[T] {
	return NewTraverser[T](v)
}

func (v *SubSequence[T]) CreateTraverserAt(index int) (*Traverser[T], error) {
	return NewTraverserAt[T](v, index)
}

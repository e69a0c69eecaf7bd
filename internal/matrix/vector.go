package matrix

import (
	"github.com/jlibgo/jlib/internal/observer"
	"github.com/jlibgo/jlib/internal/sequence"
)

var _ = sequence.ReplaceIndexSequence[int]((*Vector[int])(nil))

// A Vector is a column or a row (or a part of it) of a matrix, seen as a sequence. Indices are the row
// indices for a column and the column indices for a row. Items can be replaced but not inserted or removed.
type Vector[T any] struct {
	matrix   *Matrix[T]
	vertical bool
	fixed    int //column index of a column, row index of a row
	first    int
	last     int
}

func (v *Vector[T]) Matrix() *Matrix[T] {
	return v.matrix
}

func (v *Vector[T]) IsColumn() bool {
	return v.vertical
}

func (v *Vector[T]) FirstIndex() int {
	return v.first
}

func (v *Vector[T]) LastIndex() int {
	return v.last
}

func (v *Vector[T]) Len() int {
	return v.last - v.first + 1
}

func (v *Vector[T]) IsEmpty() bool {
	return v.last < v.first
}

func (v *Vector[T]) cell(index int) (column, row int) {
	if v.vertical {
		return v.fixed, index
	}
	return index, v.fixed
}

func (v *Vector[T]) Get(index int) (T, error) {
	if err := sequence.AssertIndexValid(v, index); err != nil {
		var zero T
		return zero, err
	}
	return v.matrix.Get(v.cell(index))
}

func (v *Vector[T]) Replace(index int, item T, observers ...observer.ValueObserver[T]) error {
	if err := sequence.AssertIndexValid(v, index); err != nil {
		return err
	}

	column, row := v.cell(index)
	return observer.Operate(item, func() error {
		return v.matrix.Set(column, row, item)
	}, observers...)
}

func (v *Vector[T]) Values() ([]T, error) {
	return sequence.Values[T](v)
}

func (v *Vector[T]) CreateTraverser() *sequence.Traverser[T] {
	return sequence.NewTraverser[T](v)
}

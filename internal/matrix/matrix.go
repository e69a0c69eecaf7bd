package matrix

import (
	"errors"
	"fmt"

	"github.com/jlibgo/jlib/internal/sequence"
)

var (
	ErrInvalidBounds = errors.New("invalid matrix bounds")
)

// A Matrix is a fixed-size two-dimensional array whose column and row indices range over inclusive intervals.
// Cells are addressed by (column, row).
//
// Matrix is not safe for concurrent use.
type Matrix[T any] struct {
	minColumn, maxColumn int
	minRow, maxRow       int
	cells                []T //row-major
}

// New creates a matrix with column indices in [0, width-1] and row indices in [0, height-1].
func New[T any](width, height int) (*Matrix[T], error) {
	return NewWithBounds[T](0, width-1, 0, height-1)
}

func NewWithBounds[T any](minColumn, maxColumn, minRow, maxRow int) (*Matrix[T], error) {
	if maxColumn < minColumn || maxRow < minRow {
		return nil, fmt.Errorf("%w: columns [%d, %d], rows [%d, %d]", ErrInvalidBounds, minColumn, maxColumn, minRow, maxRow)
	}

	m := &Matrix[T]{
		minColumn: minColumn,
		maxColumn: maxColumn,
		minRow:    minRow,
		maxRow:    maxRow,
	}
	m.cells = make([]T, m.Width()*m.Height())
	return m, nil
}

func (m *Matrix[T]) Width() int {
	return m.maxColumn - m.minColumn + 1
}

func (m *Matrix[T]) Height() int {
	return m.maxRow - m.minRow + 1
}

func (m *Matrix[T]) MinColumnIndex() int { return m.minColumn }
func (m *Matrix[T]) MaxColumnIndex() int { return m.maxColumn }
func (m *Matrix[T]) MinRowIndex() int    { return m.minRow }
func (m *Matrix[T]) MaxRowIndex() int    { return m.maxRow }

func (m *Matrix[T]) checkColumn(column int) error {
	if column < m.minColumn || column > m.maxColumn {
		return fmt.Errorf("column: %w", sequence.IndexError{Index: column, FirstIndex: m.minColumn, LastIndex: m.maxColumn})
	}
	return nil
}

func (m *Matrix[T]) checkRow(row int) error {
	if row < m.minRow || row > m.maxRow {
		return fmt.Errorf("row: %w", sequence.IndexError{Index: row, FirstIndex: m.minRow, LastIndex: m.maxRow})
	}
	return nil
}

func (m *Matrix[T]) cellIndex(column, row int) (int, error) {
	if err := m.checkColumn(column); err != nil {
		return -1, err
	}
	if err := m.checkRow(row); err != nil {
		return -1, err
	}
	return (row-m.minRow)*m.Width() + column - m.minColumn, nil
}

func (m *Matrix[T]) Get(column, row int) (T, error) {
	i, err := m.cellIndex(column, row)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.cells[i], nil
}

func (m *Matrix[T]) Set(column, row int, item T) error {
	i, err := m.cellIndex(column, row)
	if err != nil {
		return err
	}
	m.cells[i] = item
	return nil
}

// ForEach calls fn for each cell, row by row, the iteration stops at the first error.
func (m *Matrix[T]) ForEach(fn func(column, row int, item T) error) error {
	for row := m.minRow; row <= m.maxRow; row++ {
		for column := m.minColumn; column <= m.maxColumn; column++ {
			if err := fn(column, row, m.cells[(row-m.minRow)*m.Width()+column-m.minColumn]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Matrix[T]) Column(column int) (*Vector[T], error) {
	return m.ColumnRange(column, m.minRow, m.maxRow)
}

// ColumnRange returns the cells of the column whose row index is in [minRow, maxRow].
func (m *Matrix[T]) ColumnRange(column, minRow, maxRow int) (*Vector[T], error) {
	if err := m.checkColumn(column); err != nil {
		return nil, err
	}
	if err := m.checkRowRange(minRow, maxRow); err != nil {
		return nil, err
	}

	return &Vector[T]{
		matrix:   m,
		vertical: true,
		fixed:    column,
		first:    minRow,
		last:     maxRow,
	}, nil
}

func (m *Matrix[T]) checkRowRange(minRow, maxRow int) error {
	if err := m.checkRow(minRow); err != nil {
		return err
	}
	if err := m.checkRow(maxRow); err != nil {
		return err
	}
	if minRow > maxRow {
		return sequence.RangeError{From: minRow, To: maxRow}
	}
	return nil
}

func (m *Matrix[T]) Row(row int) (*Vector[T], error) {
	return m.RowRange(row, m.minColumn, m.maxColumn)
}

// RowRange returns the cells of the row whose column index is in [minColumn, maxColumn].
func (m *Matrix[T]) RowRange(row, minColumn, maxColumn int) (*Vector[T], error) {
	if err := m.checkRow(row); err != nil {
		return nil, err
	}
	if err := m.checkColumn(minColumn); err != nil {
		return nil, err
	}
	if err := m.checkColumn(maxColumn); err != nil {
		return nil, err
	}
	if minColumn > maxColumn {
		return nil, sequence.RangeError{From: minColumn, To: maxColumn}
	}

	return &Vector[T]{
		matrix: m,
		fixed:  row,
		first:  minColumn,
		last:   maxColumn,
	}, nil
}

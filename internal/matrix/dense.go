package matrix

import (
	"slices"

	"gonum.org/v1/gonum/mat"
)

// FromDense creates a matrix holding a copy of the elements of d, element (i, j) of d is the cell at
// column j and row i.
func FromDense(d *mat.Dense) (*Matrix[float64], error) {
	rows, columns := d.Dims()

	m, err := New[float64](columns, rows)
	if err != nil {
		return nil, err
	}

	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			m.cells[row*columns+column] = d.At(row, column)
		}
	}
	return m, nil
}

// ToDense returns a dense matrix holding a copy of the cells of m.
func ToDense(m *Matrix[float64]) *mat.Dense {
	return mat.NewDense(m.Height(), m.Width(), slices.Clone(m.cells))
}

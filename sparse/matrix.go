/*
   Row oriented sparse storage for adjacency and transition matrices,
   plus the dense row/column vectors needed to drive power iteration.
*/
package sparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a single nonzero entry of a matrix row.
type Cell struct {
	Column int
	Value  float64
}

// Row holds the nonzero cells of a matrix row in insertion order. Column
// indices are neither sorted nor deduplicated.
type Row []Cell

// Len returns the number of nonzero cells in the row, i.e. the out-degree of
// the node the row describes.
func (r Row) Len() int { return len(r) }

// Matrix is an m x n sparse matrix stored as a list of rows. Every algorithm
// in this module walks the matrix one row at a time, in row order, so each
// row is kept as its own cell list.
//
// The row list may hold more than m rows when an input references rows past
// its declared bound. Those extra rows are stored and rendered but take no
// part in normalization or multiplication.
type Matrix struct {
	m, n int
	rows []Row
}

// New returns an m x n matrix with m empty rows.
func New(m, n int) *Matrix {
	return &Matrix{
		m:    m,
		n:    n,
		rows: make([]Row, m),
	}
}

// Dims returns the declared number of rows and columns of the matrix.
func (mat *Matrix) Dims() (m, n int) { return mat.m, mat.n }

// Row returns row i. Out of range indices panic.
func (mat *Matrix) Row(i int) Row { return mat.rows[i] }

// Append adds a cell to row i.
func (mat *Matrix) Append(i, column int, value float64) {
	mat.rows[i] = append(mat.rows[i], Cell{Column: column, Value: value})
}

// Grow extends the row list so that it holds at least rows rows. New rows are
// empty. The declared row count reported by Dims is left unchanged and the
// row list never shrinks.
func (mat *Matrix) Grow(rows int) {
	for len(mat.rows) < rows {
		mat.rows = append(mat.rows, nil)
	}
}

// StoredRows returns the length of the row list, which is at least m.
func (mat *Matrix) StoredRows() int { return len(mat.rows) }

// active returns the rows within the declared bound.
func (mat *Matrix) active() []Row { return mat.rows[:mat.m] }

// NNZ returns the number of stored cells.
func (mat *Matrix) NNZ() int {
	var nnz int
	for _, row := range mat.rows {
		nnz += len(row)
	}
	return nnz
}

// String renders the matrix in the adjacency-list format understood by the
// adjlist package. Cells holding a weight other than 1 are rendered as
// column:value.
func (mat *Matrix) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SparseMatrix: %d by %d", mat.m, mat.n)
	for i, row := range mat.rows {
		fmt.Fprintf(&sb, "\nrow %d: ", i)
		for _, cell := range row {
			sb.WriteString(strconv.Itoa(cell.Column))
			if cell.Value != 1 {
				sb.WriteByte(':')
				sb.WriteString(strconv.FormatFloat(cell.Value, 'g', -1, 64))
			}
			sb.WriteByte(' ')
		}
		sb.WriteString("-1")
	}
	return sb.String()
}

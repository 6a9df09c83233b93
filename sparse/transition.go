package sparse

// Normalize turns a freshly loaded 0/1 adjacency matrix into the row
// stochastic transition matrix H by dividing every cell by the out-degree of
// its row. Empty rows are left untouched; dangling nodes are handled by the
// rankers. Rows past the declared bound are left as loaded. The matrix is
// modified in place.
func Normalize(mat *Matrix) {
	for _, row := range mat.active() {
		nnz := float64(len(row))
		for j := range row {
			row[j].Value /= nnz
		}
	}
}

// AbsorbentNodes returns a column vector with a 1 for every row without
// outgoing edges and a 0 everywhere else. Rows past the declared bound are
// not part of the result.
func AbsorbentNodes(mat *Matrix) ColVec {
	res := NewColVec(mat.m)
	for i, row := range mat.active() {
		if len(row) == 0 {
			res.values[i] = 1
		}
	}
	return res
}

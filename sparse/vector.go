package sparse

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// RowVec is a dense row vector. RowVec and ColVec share their storage layout
// but are distinct types so that only the products that make sense for a
// given orientation compile; use Transpose to switch between the two.
type RowVec struct {
	values []float64
}

// ColVec is a dense column vector.
type ColVec struct {
	values []float64
}

// NewRowVec returns a zero row vector of length n.
func NewRowVec(n int) RowVec { return RowVec{values: make([]float64, n)} }

// NewColVec returns a zero column vector of length n.
func NewColVec(n int) ColVec { return ColVec{values: make([]float64, n)} }

// RowVecFrom returns a row vector of length n whose i-th entry is fn(i).
func RowVecFrom(n int, fn func(i int) float64) RowVec {
	return RowVec{values: fill(n, fn)}
}

// ColVecFrom returns a column vector of length n whose i-th entry is fn(i).
func ColVecFrom(n int, fn func(i int) float64) ColVec {
	return ColVec{values: fill(n, fn)}
}

// RowVecOf returns a row vector holding a copy of values.
func RowVecOf(values ...float64) RowVec { return RowVec{values: clone(values)} }

// ColVecOf returns a column vector holding a copy of values.
func ColVecOf(values ...float64) ColVec { return ColVec{values: clone(values)} }

// Len returns the number of entries in the vector.
func (v RowVec) Len() int { return len(v.values) }

// At returns entry i. Out of range indices panic.
func (v RowVec) At(i int) float64 { return v.values[i] }

// Set stores value at entry i. Out of range indices panic.
func (v RowVec) Set(i int, value float64) { v.values[i] = value }

// Values returns a copy of the vector entries.
func (v RowVec) Values() []float64 { return clone(v.values) }

// Sum returns the total mass held by the vector.
func (v RowVec) Sum() float64 { return floats.Sum(v.values) }

// Mul returns a new vector holding v * k.
func (v RowVec) Mul(k float64) RowVec {
	res := RowVec{values: clone(v.values)}
	floats.Scale(k, res.values)
	return res
}

// Div returns a new vector holding v / k.
func (v RowVec) Div(k float64) RowVec {
	res := RowVec{values: clone(v.values)}
	for i := range res.values {
		res.values[i] /= k
	}
	return res
}

// Scale multiplies every entry of v by k in place.
func (v RowVec) Scale(k float64) { floats.Scale(k, v.values) }

// AddConst adds k to every entry of v in place.
func (v RowVec) AddConst(k float64) { floats.AddConst(k, v.values) }

// Transpose copies v into a column vector.
func (v RowVec) Transpose() ColVec { return ColVec{values: clone(v.values)} }

// Dot returns the scalar product of v and col. Both vectors must have the
// same length.
func (v RowVec) Dot(col ColVec) float64 {
	if len(v.values) != len(col.values) {
		panic("sparse: dimension mismatch in row x column product")
	}
	return floats.Dot(v.values, col.values)
}

// MulMatrix returns v x mat. The vector must hold one entry per matrix row;
// the result holds one entry per matrix column. Only stored cells of the
// declared rows are visited: for every row i each cell scatters v[i]*value
// into its column.
func (v RowVec) MulMatrix(mat *Matrix) RowVec {
	if len(v.values) != mat.m {
		panic("sparse: dimension mismatch in row x matrix product")
	}
	res := NewRowVec(mat.n)
	for i, row := range mat.active() {
		vi := v.values[i]
		for _, cell := range row {
			res.values[cell.Column] += vi * cell.Value
		}
	}
	return res
}

// String renders the vector as a bracketed, comma separated list.
func (v RowVec) String() string {
	parts := make([]string, len(v.values))
	for i, x := range v.values {
		parts[i] = formatFloat(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Len returns the number of entries in the vector.
func (v ColVec) Len() int { return len(v.values) }

// At returns entry i. Out of range indices panic.
func (v ColVec) At(i int) float64 { return v.values[i] }

// Set stores value at entry i. Out of range indices panic.
func (v ColVec) Set(i int, value float64) { v.values[i] = value }

// Values returns a copy of the vector entries.
func (v ColVec) Values() []float64 { return clone(v.values) }

// Sum returns the sum of all entries.
func (v ColVec) Sum() float64 { return floats.Sum(v.values) }

// Mul returns a new vector holding v * k.
func (v ColVec) Mul(k float64) ColVec {
	res := ColVec{values: clone(v.values)}
	floats.Scale(k, res.values)
	return res
}

// Div returns a new vector holding v / k.
func (v ColVec) Div(k float64) ColVec {
	res := ColVec{values: clone(v.values)}
	for i := range res.values {
		res.values[i] /= k
	}
	return res
}

// Scale multiplies every entry of v by k in place.
func (v ColVec) Scale(k float64) { floats.Scale(k, v.values) }

// Transpose copies v into a row vector.
func (v ColVec) Transpose() RowVec { return RowVec{values: clone(v.values)} }

// String renders one entry per line.
func (v ColVec) String() string {
	parts := make([]string, len(v.values))
	for i, x := range v.values {
		parts[i] = formatFloat(x)
	}
	return strings.Join(parts, "\n")
}

func fill(n int, fn func(i int) float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = fn(i)
	}
	return values
}

func clone(values []float64) []float64 {
	return append(make([]float64, 0, len(values)), values...)
}

func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

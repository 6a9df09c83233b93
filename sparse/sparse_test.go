package sparse

import (
	"math"
	"testing"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(MatrixTestSuite))
var _ = gc.Suite(new(VectorTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type MatrixTestSuite struct{}

// threeNodeGraph returns 0 -> {1, 2}, 1 -> {2} and a dangling node 2.
func threeNodeGraph() *Matrix {
	mat := New(3, 3)
	mat.Append(0, 1, 1)
	mat.Append(0, 2, 1)
	mat.Append(1, 2, 1)
	return mat
}

func (s *MatrixTestSuite) TestNewMatrix(c *gc.C) {
	mat := New(4, 2)
	m, n := mat.Dims()
	c.Assert(m, gc.Equals, 4)
	c.Assert(n, gc.Equals, 2)
	for i := 0; i < m; i++ {
		c.Assert(mat.Row(i).Len(), gc.Equals, 0)
	}
	c.Assert(mat.NNZ(), gc.Equals, 0)

	empty := New(0, 0)
	m, n = empty.Dims()
	c.Assert(m, gc.Equals, 0)
	c.Assert(n, gc.Equals, 0)
	c.Assert(empty.String(), gc.Equals, "SparseMatrix: 0 by 0")
}

func (s *MatrixTestSuite) TestRowOutOfRangePanics(c *gc.C) {
	mat := New(2, 2)
	c.Assert(func() { mat.Row(2) }, gc.PanicMatches, ".*index out of range.*")
}

func (s *MatrixTestSuite) TestGrow(c *gc.C) {
	mat := New(1, 3)
	mat.Grow(3)
	mat.Append(2, 0, 1)
	m, n := mat.Dims()
	c.Assert(m, gc.Equals, 1)
	c.Assert(n, gc.Equals, 3)
	c.Assert(mat.StoredRows(), gc.Equals, 3)
	c.Assert(mat.Row(2), gc.DeepEquals, Row{{Column: 0, Value: 1}})
	c.Assert(mat.NNZ(), gc.Equals, 1)
	c.Assert(mat.String(), gc.Equals, "SparseMatrix: 1 by 3\nrow 0: -1\nrow 1: -1\nrow 2: 0 -1")

	// Growing to a smaller size is a no-op.
	mat.Grow(1)
	c.Assert(mat.StoredRows(), gc.Equals, 3)
}

func (s *MatrixTestSuite) TestRowsPastDeclaredBoundAreInert(c *gc.C) {
	mat := New(2, 2)
	mat.Append(0, 1, 1)
	mat.Append(0, 0, 1)
	mat.Grow(4)
	mat.Append(3, 0, 1)
	mat.Append(3, 1, 1)

	Normalize(mat)
	c.Assert(mat.Row(0), gc.DeepEquals, Row{{Column: 1, Value: 0.5}, {Column: 0, Value: 0.5}})
	c.Assert(mat.Row(3), gc.DeepEquals, Row{{Column: 0, Value: 1}, {Column: 1, Value: 1}})

	dangling := AbsorbentNodes(mat)
	c.Assert(dangling.Values(), gc.DeepEquals, []float64{0, 1})

	res := RowVecOf(0.5, 0.5).MulMatrix(mat)
	c.Assert(res.Values(), gc.DeepEquals, []float64{0.25, 0.25})
}

func (s *MatrixTestSuite) TestString(c *gc.C) {
	mat := threeNodeGraph()
	c.Assert(mat.String(), gc.Equals, "SparseMatrix: 3 by 3\nrow 0: 1 2 -1\nrow 1: 2 -1\nrow 2: -1")

	Normalize(mat)
	c.Assert(mat.String(), gc.Equals, "SparseMatrix: 3 by 3\nrow 0: 1:0.5 2:0.5 -1\nrow 1: 2 -1\nrow 2: -1")
}

func (s *MatrixTestSuite) TestNormalize(c *gc.C) {
	mat := threeNodeGraph()
	Normalize(mat)

	c.Assert(mat.Row(0), gc.DeepEquals, Row{{Column: 1, Value: 0.5}, {Column: 2, Value: 0.5}})
	c.Assert(mat.Row(1), gc.DeepEquals, Row{{Column: 2, Value: 1}})
	c.Assert(mat.Row(2).Len(), gc.Equals, 0)
}

func (s *MatrixTestSuite) TestNormalizedRowsAreStochastic(c *gc.C) {
	mat := New(5, 5)
	for i := 0; i < 5; i++ {
		for j := 0; j <= i; j++ {
			mat.Append(i, (i+j)%5, 1)
		}
	}
	Normalize(mat)

	for i := 0; i < 5; i++ {
		var sum float64
		for _, cell := range mat.Row(i) {
			sum += cell.Value
		}
		c.Assert(math.Abs(sum-1) < 1e-12, gc.Equals, true, gc.Commentf("row %d sums to %v", i, sum))
	}
}

func (s *MatrixTestSuite) TestNormalizeKeepsDuplicates(c *gc.C) {
	mat := New(2, 2)
	mat.Append(0, 1, 1)
	mat.Append(0, 1, 1)
	Normalize(mat)

	c.Assert(mat.Row(0), gc.DeepEquals, Row{{Column: 1, Value: 0.5}, {Column: 1, Value: 0.5}})
	res := RowVecOf(1, 0).MulMatrix(mat)
	c.Assert(res.Values(), gc.DeepEquals, []float64{0, 1})
}

func (s *MatrixTestSuite) TestAbsorbentNodes(c *gc.C) {
	mat := threeNodeGraph()
	c.Assert(AbsorbentNodes(mat).Values(), gc.DeepEquals, []float64{0, 0, 1})

	// Normalization does not change which rows are dangling.
	Normalize(mat)
	c.Assert(AbsorbentNodes(mat).Values(), gc.DeepEquals, []float64{0, 0, 1})

	c.Assert(AbsorbentNodes(New(3, 3)).Values(), gc.DeepEquals, []float64{1, 1, 1})
	c.Assert(AbsorbentNodes(New(0, 0)).Len(), gc.Equals, 0)
}

type VectorTestSuite struct{}

func (s *VectorTestSuite) TestConstructors(c *gc.C) {
	c.Assert(NewRowVec(3).Values(), gc.DeepEquals, []float64{0, 0, 0})
	c.Assert(NewColVec(2).Values(), gc.DeepEquals, []float64{0, 0})
	c.Assert(RowVecFrom(3, func(i int) float64 { return float64(i * 2) }).Values(), gc.DeepEquals, []float64{0, 2, 4})
	c.Assert(ColVecFrom(2, func(i int) float64 { return float64(i + 1) }).Values(), gc.DeepEquals, []float64{1, 2})

	src := []float64{1, 2}
	v := RowVecOf(src...)
	src[0] = 42
	c.Assert(v.At(0), gc.Equals, 1.0)
}

func (s *VectorTestSuite) TestMulMatrix(c *gc.C) {
	mat := threeNodeGraph()
	Normalize(mat)

	res := RowVecOf(0.2, 0.4, 0.4).MulMatrix(mat)
	c.Assert(res.Values(), gc.DeepEquals, []float64{0, 0.1, 0.5})
}

func (s *VectorTestSuite) TestMulMatrixRectangular(c *gc.C) {
	mat := New(2, 3)
	mat.Append(0, 2, 2)
	mat.Append(1, 0, 3)

	res := RowVecOf(1, 2).MulMatrix(mat)
	c.Assert(res.Len(), gc.Equals, 3)
	c.Assert(res.Values(), gc.DeepEquals, []float64{6, 0, 2})
}

func (s *VectorTestSuite) TestDimensionMismatchPanics(c *gc.C) {
	mat := New(3, 3)
	c.Assert(func() { RowVecOf(1, 2).MulMatrix(mat) }, gc.PanicMatches, "sparse: dimension mismatch in row x matrix product")
	c.Assert(func() { RowVecOf(1, 2).Dot(ColVecOf(1)) }, gc.PanicMatches, "sparse: dimension mismatch in row x column product")
}

func (s *VectorTestSuite) TestDot(c *gc.C) {
	c.Assert(RowVecOf(1, 2, 3).Dot(ColVecOf(4, 5, 6)), gc.Equals, 32.0)
	c.Assert(NewRowVec(0).Dot(NewColVec(0)), gc.Equals, 0.0)
}

func (s *VectorTestSuite) TestScalarOps(c *gc.C) {
	v := RowVecOf(1, 2, 4)

	c.Assert(v.Mul(2).Values(), gc.DeepEquals, []float64{2, 4, 8})
	c.Assert(v.Div(2).Values(), gc.DeepEquals, []float64{0.5, 1, 2})
	// Mul and Div allocate a fresh vector.
	c.Assert(v.Values(), gc.DeepEquals, []float64{1, 2, 4})

	v.Scale(0.5)
	c.Assert(v.Values(), gc.DeepEquals, []float64{0.5, 1, 2})
	v.AddConst(1)
	c.Assert(v.Values(), gc.DeepEquals, []float64{1.5, 2, 3})
	c.Assert(v.Sum(), gc.Equals, 6.5)

	col := ColVecOf(3, 6)
	c.Assert(col.Div(3).Values(), gc.DeepEquals, []float64{1, 2})
	c.Assert(col.Mul(-1).Values(), gc.DeepEquals, []float64{-3, -6})
	col.Scale(2)
	c.Assert(col.Values(), gc.DeepEquals, []float64{6, 12})
	c.Assert(col.Sum(), gc.Equals, 18.0)
}

func (s *VectorTestSuite) TestTransposeCopies(c *gc.C) {
	row := RowVecOf(1, 2)
	col := row.Transpose()
	col.Set(0, 9)
	c.Assert(row.At(0), gc.Equals, 1.0)
	c.Assert(col.Values(), gc.DeepEquals, []float64{9, 2})

	back := col.Transpose()
	back.Set(1, 7)
	c.Assert(col.At(1), gc.Equals, 2.0)
	c.Assert(back.Values(), gc.DeepEquals, []float64{9, 7})
}

func (s *VectorTestSuite) TestString(c *gc.C) {
	c.Assert(RowVecOf(0.5, 1, 0.25).String(), gc.Equals, "[0.5, 1.0, 0.25]")
	c.Assert(NewRowVec(0).String(), gc.Equals, "[]")
	c.Assert(ColVecOf(0, 1, 1e-20).String(), gc.Equals, "0.0\n1.0\n1e-20")
	c.Assert(NewColVec(0).String(), gc.Equals, "")
}

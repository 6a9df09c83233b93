package ranker

import "github.com/Ahmed-Sermani/go-pagerank/sparse"

// stepFunc advances the rank estimate by one power-iteration step. It may
// modify its argument in place.
type stepFunc func(rt sparse.RowVec) sparse.RowVec

// makePlainStepFunc returns a stepFunc computing r x H. Mass sitting on
// dangling nodes is lost.
func makePlainStepFunc(h *sparse.Matrix) stepFunc {
	return func(rt sparse.RowVec) sparse.RowVec {
		return rt.MulMatrix(h)
	}
}

// makeDanglingStepFunc returns a stepFunc that treats every dangling node as
// if it linked to all n nodes.
func makeDanglingStepFunc(h *sparse.Matrix) stepFunc {
	_, n := h.Dims()
	// d[i] = 1/n for dangling rows, so r.d is the mass each node receives
	// from the dangling ones.
	danglingOverN := sparse.AbsorbentNodes(h).Div(float64(n))

	return func(rt sparse.RowVec) sparse.RowVec {
		leaked := rt.Dot(danglingOverN)
		next := rt.MulMatrix(h)
		next.AddConst(leaked)
		return next
	}
}

// makeDampedStepFunc returns a stepFunc for the damped random surfer: with
// probability alpha follow a link (or jump anywhere from a dangling node),
// otherwise teleport to a node picked uniformly at random.
func makeDampedStepFunc(h *sparse.Matrix, alpha float64) stepFunc {
	_, n := h.Dims()
	dangling := sparse.AbsorbentNodes(h)

	return func(rt sparse.RowVec) sparse.RowVec {
		correction := (alpha*rt.Dot(dangling) + 1 - alpha) / float64(n)
		rt.Scale(alpha)
		next := rt.MulMatrix(h)
		next.AddConst(correction)
		return next
	}
}

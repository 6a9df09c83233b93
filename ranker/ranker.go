/*
   Implements the power-iteration flavour of Google's PageRank
   https://en.wikipedia.org/wiki/PageRank over a row stochastic sparse
   transition matrix.
*/
package ranker

import (
	"context"
	"math"
	"strings"

	"github.com/Ahmed-Sermani/go-pagerank/iteration"
	"github.com/Ahmed-Sermani/go-pagerank/sparse"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

/*
   The rank of a page is the probability that a random surfer is found on
   it. Starting from a uniform distribution, the surfer's position is pushed
   through the transition matrix H (row i spreads the mass of node i evenly
   across its outgoing links) a fixed number of times.

   Three models are available:

       Plain: r <- r x H. Mass parked on dangling nodes (no outgoing links)
       vanishes at every step, so the total shrinks.

       DanglingCorrected: the surfer stuck on a dangling node jumps to any
       node uniformly at random; the total mass is conserved.

       Damped: with probability alpha the surfer behaves as above, with
       probability 1 - alpha it teleports to any node uniformly at random.
*/

// ErrUnknownVariant is returned when a ranking variant cannot be resolved.
var ErrUnknownVariant = xerrors.New("unknown ranking variant")

// Variant selects the transition model used by Run.
type Variant int

const (
	Plain Variant = iota
	DanglingCorrected
	Damped
)

var variantNames = [...]string{
	Plain:             "plain",
	DanglingCorrected: "dangling",
	Damped:            "damped",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "unknown"
	}
	return variantNames[v]
}

// ParseVariant resolves the textual name of a variant.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, n := range variantNames {
		if n == name {
			return Variant(v), nil
		}
	}
	return 0, xerrors.Errorf("%q: %w", name, ErrUnknownVariant)
}

// Ranker computes rank vectors over a normalized transition matrix.
type Ranker struct {
	cfg Config
}

// NewRanker returns a new Ranker instance using the provided config options.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranker config validation failed: %w", err)
	}
	return &Ranker{cfg: cfg}, nil
}

// Run computes the rank vector of h using the requested variant.
func (r *Ranker) Run(ctx context.Context, h *sparse.Matrix, variant Variant) (sparse.RowVec, error) {
	switch variant {
	case Plain:
		return r.Plain(ctx, h)
	case DanglingCorrected:
		return r.DanglingCorrected(ctx, h)
	case Damped:
		return r.Damped(ctx, h)
	default:
		return sparse.RowVec{}, xerrors.Errorf("run %d: %w", int(variant), ErrUnknownVariant)
	}
}

// Plain iterates r <- r x H.
func (r *Ranker) Plain(ctx context.Context, h *sparse.Matrix) (sparse.RowVec, error) {
	return r.iterate(ctx, h, Plain, makePlainStepFunc(h))
}

// DanglingCorrected iterates r <- r x H and hands the mass that sat on
// dangling nodes back to every node in equal shares.
func (r *Ranker) DanglingCorrected(ctx context.Context, h *sparse.Matrix) (sparse.RowVec, error) {
	return r.iterate(ctx, h, DanglingCorrected, makeDanglingStepFunc(h))
}

// Damped iterates the Google matrix: alpha * (H + dangling redistribution)
// plus a uniform teleportation term of weight 1 - alpha.
func (r *Ranker) Damped(ctx context.Context, h *sparse.Matrix) (sparse.RowVec, error) {
	return r.iterate(ctx, h, Damped, makeDampedStepFunc(h, r.cfg.DampingFactor))
}

// iterate starts from the uniform distribution and applies stepFn exactly
// cfg.Iterations times.
func (r *Ranker) iterate(ctx context.Context, h *sparse.Matrix, variant Variant, stepFn stepFunc) (sparse.RowVec, error) {
	m, n := h.Dims()
	var (
		logger = r.cfg.Logger.WithField("variant", variant.String())
		rt     = sparse.RowVecFrom(m, func(int) float64 { return 1 / float64(n) })
		prev   []float64
	)

	ex := iteration.NewExecutor(
		func(_ context.Context, _ int) error {
			rt = stepFn(rt)
			return nil
		},
		iteration.Hooks{
			PreStep: func(context.Context, int) error {
				prev = rt.Values()
				return nil
			},
			PostStep: func(_ context.Context, step int) error {
				logger.WithFields(logrus.Fields{
					"step": step,
					"mass": rt.Sum(),
					"sad":  sumOfAbsDiffs(prev, rt),
				}).Debug("power iteration step")
				return nil
			},
		},
	)

	if err := ex.RunSteps(ctx, r.cfg.Iterations); err != nil {
		return sparse.RowVec{}, xerrors.Errorf("%s ranker: %w", variant, err)
	}
	return rt, nil
}

// sumOfAbsDiffs returns the L1 distance between two consecutive estimates.
// Vectors of different length are compared over their common prefix.
func sumOfAbsDiffs(prev []float64, cur sparse.RowVec) float64 {
	var sad float64
	for i := 0; i < len(prev) && i < cur.Len(); i++ {
		sad += math.Abs(cur.At(i) - prev[i])
	}
	return sad
}

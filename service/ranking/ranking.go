package ranking

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/adjlist"
	"github.com/Ahmed-Sermani/go-pagerank/ranker"
	"github.com/Ahmed-Sermani/go-pagerank/render"
	"github.com/Ahmed-Sermani/go-pagerank/sparse"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Config encapsulates the settings for configuring the ranking service.
type Config struct {
	// The adjacency list to rank: a local path or an http(s) URL.
	Source string

	// The client used to fetch http(s) sources. Defaults to
	// http.DefaultClient.
	URLGetter adjlist.URLGetter

	// The ranking variants to run on every pass, in order.
	Variants []ranker.Variant

	// The number of power-iteration steps per variant.
	Iterations int

	// The damping factor used by the damped variant.
	DampingFactor float64

	// The time between subsequent passes. A zero interval runs a single
	// pass and returns.
	UpdateInterval time.Duration

	// If set, the normalized transition graph is written to this path in
	// DOT format on every pass.
	DotOutput string

	// Rank vectors are printed here. Defaults to os.Stdout.
	Output io.Writer

	// A clock instance for scheduling passes. Defaults to the wall clock.
	Clock clock.Clock

	// The logger to use.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Source == "" {
		err = multierror.Append(err, xerrors.Errorf("graph source not specified"))
	}
	if len(cfg.Variants) == 0 {
		err = multierror.Append(err, xerrors.Errorf("no ranking variants specified"))
	}
	if cfg.UpdateInterval < 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for update interval"))
	}
	if cfg.Logger == nil {
		err = multierror.Append(err, xerrors.Errorf("logger not provided"))
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	return err
}

// Service loads an adjacency list, turns it into a transition matrix and
// prints the rank vector produced by each configured variant.
type Service struct {
	cfg    Config
	ranker *ranker.Ranker
}

// NewService creates a new ranking service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranking service: config validation failed: %w", err)
	}

	r, err := ranker.NewRanker(ranker.Config{
		Iterations:    cfg.Iterations,
		DampingFactor: cfg.DampingFactor,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, xerrors.Errorf("ranking service: %w", err)
	}

	return &Service{
		cfg:    cfg,
		ranker: r,
	}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "ranking" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	for {
		if err := svc.rank(ctx); err != nil {
			if xerrors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if svc.cfg.UpdateInterval == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-svc.cfg.Clock.After(svc.cfg.UpdateInterval):
		}
	}
}

func (svc *Service) rank(ctx context.Context) error {
	var (
		start  = svc.cfg.Clock.Now()
		logger = svc.cfg.Logger.WithField("run_id", uuid.New().String())
	)

	mat, err := adjlist.Loader{URLGetter: svc.cfg.URLGetter}.Load(ctx, svc.cfg.Source)
	if err != nil {
		return xerrors.Errorf("load graph: %w", err)
	}
	m, n := mat.Dims()
	logger.WithFields(logrus.Fields{
		"source": svc.cfg.Source,
		"rows":   m,
		"cols":   n,
		"nnz":    mat.NNZ(),
	}).Info("loaded adjacency matrix")
	logger.Debugf("adjacency matrix:\n%s", mat)

	sparse.Normalize(mat)

	if svc.cfg.DotOutput != "" {
		if err := writeDOT(svc.cfg.DotOutput, mat); err != nil {
			return err
		}
		logger.WithField("path", svc.cfg.DotOutput).Info("wrote transition graph")
	}

	for _, variant := range svc.cfg.Variants {
		rt, err := svc.ranker.Run(ctx, mat, variant)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(svc.cfg.Output, "%s: %s\n", variant, rt); err != nil {
			return xerrors.Errorf("write %s ranks: %w", variant, err)
		}
	}

	logger.WithField("elapsed", svc.cfg.Clock.Now().Sub(start).String()).Info("ranking pass completed")
	return nil
}

func writeDOT(path string, mat *sparse.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("create %s: %w", path, err)
	}
	if err := render.DOT(mat, f); err != nil {
		_ = f.Close()
		return xerrors.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

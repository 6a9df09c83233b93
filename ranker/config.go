package ranker

import (
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	// DefaultIterations is the number of power-iteration steps used when the
	// caller does not ask for anything else.
	DefaultIterations = 10

	// DefaultDampingFactor is the probability of following an outgoing link
	// in the damped random-surfer model.
	DefaultDampingFactor = 0.99
)

// Config encapsulates the settings for configuring a Ranker.
type Config struct {
	// The number of power-iteration steps. Every run executes exactly this
	// many steps.
	Iterations int

	// The damping factor (alpha) used by the damped ranker.
	DampingFactor float64

	// The logger to use.
	Logger *logrus.Entry
}

// DefaultConfig returns a Config populated with the default iteration count
// and damping factor.
func DefaultConfig(logger *logrus.Entry) Config {
	return Config{
		Iterations:    DefaultIterations,
		DampingFactor: DefaultDampingFactor,
		Logger:        logger,
	}
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Iterations < 0 {
		err = multierror.Append(err, xerrors.Errorf("number of iterations must be non-negative"))
	}
	if cfg.DampingFactor < 0 || cfg.DampingFactor > 1 {
		err = multierror.Append(err, xerrors.Errorf("damping factor must be in the [0, 1] range"))
	}
	if cfg.Logger == nil {
		err = multierror.Append(err, xerrors.Errorf("logger not provided"))
	}
	return err
}

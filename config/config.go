package config

import (
	"strings"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/ranker"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

// EnvPrefix is prepended to the upper-cased key of every setting when it is
// looked up in the environment (e.g. PAGERANK_ITERATIONS).
const EnvPrefix = "PAGERANK"

// Config holds the runtime configuration of the ranking tool. Values come
// from .pagerank.yaml, PAGERANK_* env vars (optionally seeded from .env) and
// CLI flags.
type Config struct {
	Source         string        `mapstructure:"source"`
	Iterations     int           `mapstructure:"iterations"`
	Damping        float64       `mapstructure:"damping"`
	Variants       []string      `mapstructure:"variants"`
	UpdateInterval time.Duration `mapstructure:"update_interval"`
	DotOutput      string        `mapstructure:"dot_output"`
	LogLevel       string        `mapstructure:"log_level"`
	LogJSON        bool          `mapstructure:"log_json"`
}

// SetDefaults registers the built-in default of every setting with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source", "exemple.dat")
	v.SetDefault("iterations", ranker.DefaultIterations)
	v.SetDefault("damping", ranker.DefaultDampingFactor)
	v.SetDefault("variants", []string{
		ranker.Plain.String(),
		ranker.DanglingCorrected.String(),
		ranker.Damped.String(),
	})
	v.SetDefault("update_interval", time.Duration(0))
	v.SetDefault("dot_output", "")
	v.SetDefault("log_level", logrus.InfoLevel.String())
	v.SetDefault("log_json", false)
}

// Load reads the configuration from v. A .env file in the working directory,
// if present, is loaded first; it never overrides variables that are already
// set.
func Load(v *viper.Viper) (Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, xerrors.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, xerrors.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// RankingVariants resolves the configured variant names.
func (cfg Config) RankingVariants() ([]ranker.Variant, error) {
	var (
		variants []ranker.Variant
		err      error
	)
	for _, name := range cfg.Variants {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			v, parseErr := ranker.ParseVariant(part)
			if parseErr != nil {
				err = multierror.Append(err, parseErr)
				continue
			}
			variants = append(variants, v)
		}
	}
	return variants, err
}

// Level returns the configured log level.
func (cfg Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(cfg.LogLevel)
}

func (cfg Config) validate() error {
	var err error
	if cfg.Source == "" {
		err = multierror.Append(err, xerrors.Errorf("source must be specified"))
	}
	if cfg.Iterations < 0 {
		err = multierror.Append(err, xerrors.Errorf("iterations must be non-negative"))
	}
	if cfg.Damping < 0 || cfg.Damping > 1 {
		err = multierror.Append(err, xerrors.Errorf("damping must be in the [0, 1] range"))
	}
	if _, levelErr := cfg.Level(); levelErr != nil {
		err = multierror.Append(err, levelErr)
	}
	if _, variantErr := cfg.RankingVariants(); variantErr != nil {
		err = multierror.Append(err, variantErr)
	}
	return err
}

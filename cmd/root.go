package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ahmed-Sermani/go-pagerank/config"
	"github.com/Ahmed-Sermani/go-pagerank/service"
	"github.com/Ahmed-Sermani/go-pagerank/service/ranking"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

// NewRootCommand returns the pagerank command. Settings are resolved from
// flags, PAGERANK_* environment variables and the optional config file, in
// that order of precedence.
func NewRootCommand(logger *logrus.Entry) *cobra.Command {
	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "pagerank [source]",
		Short: "Rank the nodes of a graph by power iteration",
		Long: "pagerank loads an adjacency list, normalizes it into a row stochastic " +
			"transition matrix and prints the rank vector computed by the plain, " +
			"dangling-corrected and damped power-iteration models.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set("source", args[0])
			}
			if err := readConfigFile(cmd, v); err != nil {
				return err
			}
			return run(cmd.Context(), v, cmd.OutOrStdout(), logger)
		},
	}

	flags := rootCmd.Flags()
	flags.String("config", "", "config file (default .pagerank.yaml)")
	flags.String("source", "exemple.dat", "The adjacency list to rank (local path or http(s) URL)")
	flags.Int("iterations", 10, "The number of power-iteration steps")
	flags.Float64("damping", 0.99, "The damping factor used by the damped model")
	flags.StringSlice("variants", []string{"plain", "dangling", "damped"}, "The ranking models to run (plain, dangling, damped)")
	flags.Duration("update-interval", 0, "The time between subsequent ranking passes (0 runs a single pass)")
	flags.String("dot-output", "", "Write the normalized transition graph in DOT format to this path")
	flags.String("log-level", "info", "The log level")
	flags.Bool("log-json", false, "Emit logs as JSON")

	if err := bindFlags(v, flags); err != nil {
		panic(err)
	}

	return rootCmd
}

// Execute runs the root command until it completes or the process receives
// SIGINT or SIGHUP.
func Execute(logger *logrus.Entry) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGHUP)
	defer cancel()

	return NewRootCommand(logger).ExecuteContext(ctx)
}

var flagKeys = map[string]string{
	"source":          "source",
	"iterations":      "iterations",
	"damping":         "damping",
	"variants":        "variants",
	"update_interval": "update-interval",
	"dot_output":      "dot-output",
	"log_level":       "log-level",
	"log_json":        "log-json",
}

// bindFlags makes every config key resolve to its command line flag when the
// flag is set.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return xerrors.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

func readConfigFile(cmd *cobra.Command, v *viper.Viper) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return xerrors.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName(".pagerank")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	// It's fine if no config file is found; we use defaults.
	_ = v.ReadInConfig()
	return nil
}

func run(ctx context.Context, v *viper.Viper, out io.Writer, logger *logrus.Entry) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger.Logger.SetLevel(level)
	if cfg.LogJSON {
		logger.Logger.SetFormatter(new(logrus.JSONFormatter))
	}

	variants, _ := cfg.RankingVariants()
	svc, err := ranking.NewService(ranking.Config{
		Source:         cfg.Source,
		Variants:       variants,
		Iterations:     cfg.Iterations,
		DampingFactor:  cfg.Damping,
		UpdateInterval: cfg.UpdateInterval,
		DotOutput:      cfg.DotOutput,
		Output:         out,
		Logger:         logger.WithField("service", "ranking"),
	})
	if err != nil {
		return err
	}

	return service.ServiceGroup{svc}.Run(ctx)
}

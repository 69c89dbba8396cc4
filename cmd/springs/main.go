// Package main is the springs command-line tool.
//
// It reads condition records (one "pattern groups" line each), counts the
// arrangements of every record as parsed and unfolded, and prints both totals:
//
//	springs count input
//	springs count --strategy table --workers 4 a.txt b.txt
//	springs record "?###???????? 3,2,1"
//	springs config init springs.yaml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/hotsprings/internal/config"
	"github.com/gitrdm/hotsprings/internal/logging"
	"github.com/gitrdm/hotsprings/pkg/springs"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run builds a fresh command tree and executes it with args.
func run(ctx context.Context, out, errOut io.Writer, args []string) error {
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// options collects flag values shared by the subcommands.
type options struct {
	configPath    string
	verbose       bool
	workers       int
	multiplicity  int
	strategy      string
	collectErrors bool
	metricsFile   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "springs",
		Short: "Count spring arrangements for condition records",
		Long: `springs counts, for every condition record, how many ways its unknown
springs ('?') can be resolved to operational ('.') or damaged ('#') so that
the damaged runs match the record's group sizes in order.

Each record is counted as written and unfolded (five copies joined by '?').`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVar(&opts.workers, "workers", 0, "worker goroutines (0 = one per CPU)")
	flags.IntVar(&opts.multiplicity, "multiplicity", 0, "unfold copies for part two (default from config, 5)")
	flags.StringVar(&opts.strategy, "strategy", "", "counting strategy: memo, table or automaton")
	flags.BoolVar(&opts.collectErrors, "collect-errors", false, "report every malformed line instead of stopping at the first")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	root.AddCommand(
		newCountCmd(opts),
		newRecordCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// setup loads config, applies flag overrides and builds the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("multiplicity") {
		cfg.Multiplicity = o.multiplicity
	}
	if flags.Changed("strategy") {
		cfg.Strategy = o.strategy
	}
	if flags.Changed("collect-errors") && o.collectErrors {
		cfg.ErrorPolicy = springs.CollectAll.String()
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = o.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, o.verbose)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logger.With(zap.String("run_id", uuid.NewString()))
	return nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprintf(out, "springs %s (go %s)\n", springs.GetVersion(), springs.GetVersionInfo().GoVersion)
				return nil
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(springs.GetVersionInfo())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}

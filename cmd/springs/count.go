package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/hotsprings/internal/batch"
	"github.com/gitrdm/hotsprings/internal/metrics"
	"github.com/gitrdm/hotsprings/pkg/springs"
)

const defaultInput = "input"

func newCountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count [FILE...]",
		Short: "Sum plain and unfolded arrangement counts over record files",
		Long: `Reads every FILE ("-" for stdin, "input" when none is given), counts each
record as written and unfolded, and prints both totals.

Any malformed line fails the run. With --collect-errors every malformed
line across all files is reported before failing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{defaultInput}
			}
			return runCount(cmd.Context(), cmd, opts, args)
		},
	}
}

func runCount(ctx context.Context, cmd *cobra.Command, opts *options, paths []string) error {
	cfg := opts.cfg
	strategy, err := springs.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}
	policy, err := springs.ParseErrorPolicy(cfg.ErrorPolicy)
	if err != nil {
		return err
	}

	records, err := loadRecords(ctx, cmd.InOrStdin(), paths, policy)
	if err != nil {
		return err
	}
	opts.logger.Debug("records loaded", zap.Int("records", len(records)), zap.Strings("files", paths))

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}

	totals, err := batch.Sum(ctx, records, batch.Options{
		Workers:      cfg.Workers,
		Multiplicity: cfg.Multiplicity,
		Strategy:     strategy,
		Logger:       opts.logger,
		Metrics:      m,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "part one: %d\n", totals.Plain)
	fmt.Fprintf(out, "part two: %d\n", totals.Unfolded)

	if m != nil {
		if err := m.WriteFile(cfg.MetricsFile); err != nil {
			return err
		}
		opts.logger.Debug("metrics written", zap.String("path", cfg.MetricsFile))
	}
	return nil
}

// loadRecords parses every path concurrently and returns the records in
// argument order. Under FailFast the first failing file cancels the rest;
// under CollectAll every file is read and all errors are joined.
//
// Stdin is drained once before the fan-out; each "-" argument parses its own
// reader over the same bytes.
func loadRecords(ctx context.Context, stdin io.Reader, paths []string, policy springs.ErrorPolicy) ([]springs.Record, error) {
	var stdinData []byte
	if slices.Contains(paths, "-") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		stdinData = data
	}

	perFile := make([][]springs.Record, len(paths))
	fileErrs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := readFile(stdinData, path, policy)
			perFile[i] = records
			if err == nil {
				return nil
			}
			err = fmt.Errorf("%s: %w", path, err)
			if policy == springs.FailFast {
				return err
			}
			fileErrs[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := errors.Join(fileErrs...); err != nil {
		return nil, err
	}

	var all []springs.Record
	for _, records := range perFile {
		all = append(all, records...)
	}
	return all, nil
}

// readFile parses one path, "-" meaning the buffered stdin contents.
func readFile(stdinData []byte, path string, policy springs.ErrorPolicy) ([]springs.Record, error) {
	if path == "-" {
		return springs.ReadRecords(bytes.NewReader(stdinData), policy)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return springs.ReadRecords(f, policy)
}

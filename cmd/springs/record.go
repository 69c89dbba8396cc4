package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitrdm/hotsprings/pkg/springs"
)

func newRecordCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "record LINE",
		Short: "Count a single record and show memo statistics",
		Example: `  springs record "?###???????? 3,2,1"
  springs record '?###????????' 3,2,1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			r, err := springs.ParseRecord(line)
			if err != nil {
				return fmt.Errorf("%q: %w", line, err)
			}
			strategy, err := springs.ParseStrategy(opts.cfg.Strategy)
			if err != nil {
				return err
			}

			unfolded := springs.UnfoldN(r, opts.cfg.Multiplicity)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "record:   %s\n", r)
			fmt.Fprintf(out, "plain:    %d\n", strategy.Count(r))
			fmt.Fprintf(out, "unfolded: %d (x%d, %d cells, %d unknown)\n",
				strategy.Count(unfolded), opts.cfg.Multiplicity, unfolded.Len(), unfolded.Unknowns())

			_, stats := springs.CountWithStats(unfolded)
			fmt.Fprintf(out, "memo:     %d states, %d hits, %d misses (hit ratio %.2f)\n",
				stats.States, stats.Hits, stats.Misses, stats.HitRatio())
			return nil
		},
	}
}

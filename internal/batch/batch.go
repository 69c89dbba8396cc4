// Package batch sums arrangement counts across many condition records.
//
// Every record is counted twice, once as parsed and once unfolded. Records
// are independent, so each one becomes a task on a bounded worker pool with
// its own memo table. Results land in per-record slots and are summed in
// input order once all tasks finish, so totals do not depend on scheduling.
package batch

import (
	"context"
	"fmt"
	"math/bits"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gitrdm/hotsprings/internal/metrics"
	"github.com/gitrdm/hotsprings/internal/parallel"
	"github.com/gitrdm/hotsprings/pkg/springs"
)

// ErrOverflow is returned when a total does not fit in a uint64.
var ErrOverflow = fmt.Errorf("arrangement total overflows uint64")

// Options configures Sum.
type Options struct {
	// Workers bounds concurrency; 0 means one per CPU.
	Workers int
	// Multiplicity is the unfold factor for the second total; 0 means
	// springs.DefaultMultiplicity.
	Multiplicity int
	// Strategy selects the counting algorithm.
	Strategy springs.Strategy
	// Logger receives per-record debug events and a summary; nil disables logging.
	Logger *zap.Logger
	// Metrics, when set, records per-record timings and memo statistics.
	Metrics *metrics.Metrics
}

// Totals are the summed counts of a batch.
type Totals struct {
	Records  int
	Plain    uint64
	Unfolded uint64
}

// Result holds the counts of a single record.
type Result struct {
	Plain    uint64
	Unfolded uint64
}

// Sum counts every record plain and unfolded and returns both totals.
// It stops dispatching when ctx is cancelled and returns ctx.Err().
func Sum(ctx context.Context, records []springs.Record, opts Options) (Totals, error) {
	results, err := CountAll(ctx, records, opts)
	if err != nil {
		return Totals{}, err
	}

	totals := Totals{Records: len(results)}
	var carry uint64
	for _, r := range results {
		totals.Plain, carry = bits.Add64(totals.Plain, r.Plain, 0)
		if carry != 0 {
			return Totals{}, fmt.Errorf("plain total: %w", ErrOverflow)
		}
		totals.Unfolded, carry = bits.Add64(totals.Unfolded, r.Unfolded, 0)
		if carry != 0 {
			return Totals{}, fmt.Errorf("unfolded total: %w", ErrOverflow)
		}
	}

	logger(opts).Info("batch counted",
		zap.Int("records", totals.Records),
		zap.Uint64("plain", totals.Plain),
		zap.Uint64("unfolded", totals.Unfolded),
		zap.Stringer("strategy", opts.Strategy),
	)
	return totals, nil
}

// CountAll counts every record plain and unfolded and returns the results
// in input order.
func CountAll(ctx context.Context, records []springs.Record, opts Options) ([]Result, error) {
	k := opts.Multiplicity
	if k == 0 {
		k = springs.DefaultMultiplicity
	}
	log := logger(opts)

	pool := parallel.NewWorkerPool(opts.Workers)
	defer pool.Shutdown()

	results := make([]Result, len(records))
	var wg sync.WaitGroup
	for i, rec := range records {
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			results[i] = Result{
				Plain:    count(rec, opts, metrics.VariantPlain),
				Unfolded: count(springs.UnfoldN(rec, k), opts, metrics.VariantUnfolded),
			}
			log.Debug("record counted",
				zap.Int("index", i),
				zap.Stringer("record", rec),
				zap.Uint64("plain", results[i].Plain),
				zap.Uint64("unfolded", results[i].Unfolded),
			)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("dispatch record %d: %w", i, err)
		}
	}
	wg.Wait()
	return results, nil
}

// count runs one strategy on one record and feeds the metrics.
func count(r springs.Record, opts Options, variant string) uint64 {
	start := time.Now()
	var n uint64
	if opts.Strategy == springs.Memo && opts.Metrics != nil {
		var stats springs.SearchStats
		n, stats = springs.CountWithStats(r)
		opts.Metrics.ObserveMemo(stats)
	} else {
		n = opts.Strategy.Count(r)
	}
	if opts.Metrics != nil {
		opts.Metrics.ObserveCount(variant, time.Since(start))
	}
	return n
}

func logger(opts Options) *zap.Logger {
	if opts.Logger == nil {
		return zap.NewNop()
	}
	return opts.Logger
}

package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/mtgtools/revealsim/internal/card"
)

// Params configures one Monte Carlo run.
type Params struct {
	XMin   int // smallest reveal size, inclusive
	XMax   int // largest reveal size, inclusive
	Trials int // trials per reveal size
	// Workers caps the worker pool; <=0 means runtime.NumCPU().
	Workers int
	// Seed makes the whole run reproducible. 0 derives a seed from the
	// clock, matching the reference behavior of an unseeded generator.
	Seed uint64
}

// DefaultParams mirrors the reference run: X in 4..10, 10k trials per X.
func DefaultParams() Params {
	return Params{XMin: 4, XMax: 10, Trials: 10000}
}

var ErrBadRange = errors.New("invalid reveal size range")

func (p Params) validate() error {
	if p.XMin <= 0 || p.XMax < p.XMin {
		return ErrBadRange
	}
	if p.Trials <= 0 {
		return fmt.Errorf("trials must be >= 1, got %d", p.Trials)
	}
	return nil
}

// Results maps a reveal size to its per-trial covered-type counts. Every X
// in the configured range has exactly Trials entries, each in [0, 9].
type Results map[int][]int

// Run performs Trials independent reveal-and-select trials for each reveal
// size in [XMin, XMax]. Trials share nothing but the read-only deck; each
// gets its own seeded random stream, so a fixed Seed reproduces the run
// exactly regardless of worker count. The context is checked between
// reveal-size batches; an empty deck yields all-zero outcomes.
func Run(ctx context.Context, deck []card.Card, p Params) (Results, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(Results, p.XMax-p.XMin+1)
	for x := p.XMin; x <= p.XMax; x++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcomes, err := runBatch(deck, x, p.Trials, seed, workers)
		if err != nil {
			return nil, err
		}
		results[x] = outcomes
	}
	return results, nil
}

// runBatch runs all trials for one reveal size across a worker pool.
func runBatch(deck []card.Card, x, trials int, seed uint64, workers int) ([]int, error) {
	outcomes := make([]int, trials)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			// strided assignment keeps per-trial seeds independent of
			// the worker count
			for trial := w; trial < trials; trial += workers {
				rng := NewSeededRNG(mixSeed(seed, uint64(x)<<32|uint64(trial)))
				n := SelectCoverage(Sample(deck, x, rng)).Count()
				if n < 0 || n > card.NumTypes {
					errs[w] = fmt.Errorf("simulation fault at x=%d trial=%d: outcome %d out of range", x, trial, n)
					return
				}
				outcomes[trial] = n
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return outcomes, nil
}

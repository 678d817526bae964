package fftcheck

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/cwbudde/fftcheck/comm"
	m "github.com/cwbudde/fftcheck/internal/math"
)

// Run launches cfg's execution model, validates the named candidate against
// the reference kernel on every rank and returns the reports ordered by rank.
// All ranks share one run id unless opts sets one.
func Run[T Complex](ctx context.Context, cfg Config, candidate string, opts ...Option) ([]Report, error) {
	var (
		mu      sync.Mutex
		reports []Report
	)

	err := launch[T](cfg, candidate, opts, func(d *Driver[T]) error {
		report, err := d.ValidateReport(ctx)
		if err != nil {
			return err
		}

		mu.Lock()
		reports = append(reports, report)
		mu.Unlock()

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(reports, func(a, b Report) int { return a.Rank - b.Rank })

	return reports, nil
}

// LaunchResult is the outcome of validating one launch of a sweep.
type LaunchResult struct {
	Launch  comm.LaunchConfig `json:"launch"`
	Passed  bool              `json:"passed"`
	Reports []Report          `json:"reports"`
}

// SweepOptions selects and orders the launches of a sweep.
type SweepOptions struct {
	Models ModelFilter
	// EarlyExit stops the sweep after the first launch that fails validation.
	EarlyExit bool
}

// Sweep validates the candidate on every launch of cfg selected by so, in
// order. All launches share one run id unless opts sets one. A failed
// validation is reported in the results, not as an error.
func Sweep[T Complex](ctx context.Context, cfg Config, candidate string, so SweepOptions, opts ...Option) ([]LaunchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	launches, err := cfg.SelectLaunches(so.Models)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithRunID(uuid.NewString())}, opts...)

	results := make([]LaunchResult, 0, len(launches))

	for _, lc := range launches {
		single := cfg
		single.Launch = lc
		single.Launches = nil

		reports, err := Run[T](ctx, single, candidate, opts...)
		if err != nil {
			return results, fmt.Errorf("launch %s ranks=%d threads=%d: %w", lc.Model, lc.Ranks, lc.Threads, err)
		}

		result := LaunchResult{Launch: lc, Passed: len(reports) > 0 && reports[0].Passed, Reports: reports}
		results = append(results, result)

		if !result.Passed && so.EarlyExit {
			break
		}
	}

	return results, nil
}

// LifecycleReport summarizes one rank's steady-state run.
type LifecycleReport struct {
	RunID       string `json:"run_id"`
	Model       string `json:"model"`
	Rank        int    `json:"rank"`
	ProblemSize int    `json:"problem_size"`
	Iterations  int    `json:"iterations"`
	// Observed is the last sample published by Best.
	Observed string `json:"observed"`
}

// Exercise drives the steady-state lifecycle on every rank: Init, then
// Reset, Compute and Best for each iteration, then Destroy. It performs no
// timing; an external runner measures what it needs around the calls.
func Exercise[T Complex](cfg Config, candidate string, iterations int, opts ...Option) ([]LifecycleReport, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("%w: iterations=%d", ErrInvalidConfig, iterations)
	}

	var (
		mu      sync.Mutex
		reports []LifecycleReport
	)

	err := launch[T](cfg, candidate, opts, func(d *Driver[T]) error {
		report, err := exerciseRank(d, iterations)
		if err != nil {
			return err
		}

		mu.Lock()
		reports = append(reports, report)
		mu.Unlock()

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(reports, func(a, b LifecycleReport) int { return a.Rank - b.Rank })

	return reports, nil
}

func exerciseRank[T Complex](d *Driver[T], iterations int) (LifecycleReport, error) {
	c, err := d.Init()
	if err != nil {
		return LifecycleReport{}, fmt.Errorf("init: %w", err)
	}

	report := LifecycleReport{RunID: d.runID, Model: d.model, Rank: d.comm.Rank(), ProblemSize: c.Len()}

	for i := range iterations {
		if err := d.Reset(c); err != nil {
			return report, fmt.Errorf("iteration %d: %w", i, err)
		}

		if err := d.Compute(c); err != nil {
			return report, fmt.Errorf("iteration %d: compute: %w", i, err)
		}

		if err := d.Reset(c); err != nil {
			return report, fmt.Errorf("iteration %d: %w", i, err)
		}

		if err := d.Best(c); err != nil {
			return report, fmt.Errorf("iteration %d: best: %w", i, err)
		}

		report.Iterations++
	}

	report.Observed = fmt.Sprint(m.ToComplex128(c.Observed()))

	if err := d.Destroy(c); err != nil {
		return report, fmt.Errorf("destroy: %w", err)
	}

	d.logger.Debug("lifecycle finished", slog.Int("iterations", report.Iterations))

	return report, nil
}

// launch builds a Driver for every rank of cfg's model and runs fn on each.
func launch[T Complex](cfg Config, candidate string, opts []Option, fn func(*Driver[T]) error) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Shared run id first, so an explicit WithRunID in opts still wins.
	opts = append([]Option{WithRunID(uuid.NewString())}, opts...)

	return comm.Launch(cfg.Launch, func(c comm.Communicator) error {
		k, err := LookupKernel[T](candidate, comm.WorkersOf(c))
		if err != nil {
			return err
		}

		d, err := NewDriver(c, k, ReferenceKernel[T](), cfg, opts...)
		if err != nil {
			return err
		}

		return fn(d)
	})
}

package fftcheck

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cwbudde/fftcheck/comm"
	m "github.com/cwbudde/fftcheck/internal/math"
)

// trialBuffers are the validation-local buffers, allocated once per
// validation call and never shared with a steady-state Context.
type trialBuffers[T Complex] struct {
	re, im    []float64
	input     []T
	want, got []T
}

func newTrialBuffers[T Complex](n int) *trialBuffers[T] {
	return &trialBuffers[T]{
		re:    make([]float64, n),
		im:    make([]float64, n),
		input: make([]T, n),
		want:  make([]T, n),
		got:   make([]T, n),
	}
}

// Validate reports whether the candidate agrees with the baseline on every
// trial. The verdict is the same on every rank. It is a collective operation;
// ctx only carries tracing and is never used to abandon a trial, since a rank
// leaving the protocol early would block the others.
func (d *Driver[T]) Validate(ctx context.Context) (bool, error) {
	report, err := d.ValidateReport(ctx)
	return report.Passed, err
}

// ValidateReport runs the validation protocol and describes the outcome.
//
// Each trial draws a random input on every rank, broadcasts the
// coordinator's draw, runs baseline and candidate on private copies, waits on
// a barrier, lets the coordinator compare, and broadcasts its verdict. The
// first failing trial ends validation.
func (d *Driver[T]) ValidateReport(ctx context.Context) (Report, error) {
	n := d.cfg.TrialSize()
	tol := d.cfg.Tol()

	report := Report{
		RunID:       d.runID,
		Model:       d.model,
		Rank:        d.comm.Rank(),
		Ranks:       d.comm.Size(),
		Workers:     comm.WorkersOf(d.comm),
		Candidate:   kernelName(d.candidate),
		Baseline:    kernelName(d.baseline),
		CPU:         d.features.String(),
		TrialSize:   n,
		Trials:      d.cfg.Trials,
		Tolerance:   tol.Abs,
		FailedTrial: -1,
	}

	ctx, span := d.tracer.Start(ctx, "fftcheck.validate", trace.WithAttributes(
		attribute.String("run_id", d.runID),
		attribute.Int("rank", report.Rank),
		attribute.Int("trial_size", n),
		attribute.Int("trials", d.cfg.Trials),
		attribute.String("candidate", report.Candidate),
	))
	defer span.End()

	buf := newTrialBuffers[T](n)

	for trial := range d.cfg.Trials {
		passed, mismatch, err := d.runTrial(ctx, trial, buf, tol)
		report.TrialsRun++

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return report, fmt.Errorf("trial %d: %w", trial, err)
		}

		if !passed {
			report.FailedTrial = trial
			report.Mismatch = mismatch
			span.SetAttributes(attribute.Bool("passed", false), attribute.Int("failed_trial", trial))

			attrs := []any{slog.Int("trial", trial), slog.String("candidate", report.Candidate)}
			if mismatch != nil {
				attrs = append(attrs, slog.String("mismatch", mismatch.String()))
			}

			d.logger.Info("validation failed", attrs...)
			d.metrics.recordValidation(ctx, report.Candidate, false)

			return report, nil
		}
	}

	report.Passed = true
	d.metrics.recordValidation(ctx, report.Candidate, true)
	span.SetAttributes(attribute.Bool("passed", true))
	d.logger.Info("validation passed",
		slog.Int("trials", report.TrialsRun),
		slog.Int("trial_size", n),
		slog.String("candidate", report.Candidate))

	return report, nil
}

// runTrial executes one trial. Every rank runs every collective of the trial
// regardless of its own state. The mismatch is only reported on the
// coordinator.
func (d *Driver[T]) runTrial(ctx context.Context, trial int, buf *trialBuffers[T], tol Tolerance) (bool, *Mismatch, error) {
	_, span := d.tracer.Start(ctx, "fftcheck.trial", trace.WithAttributes(attribute.Int("trial", trial)))
	defer span.End()

	if err := d.fillShared(buf.re, buf.im); err != nil {
		return false, nil, err
	}

	for i := range buf.input {
		buf.input[i] = m.ComplexFromFloat64[T](buf.re[i], buf.im[i])
	}

	copy(buf.want, buf.input)
	d.baseline.Transform(buf.want)

	copy(buf.got, buf.input)
	d.candidate.Transform(buf.got)

	if err := d.comm.Barrier(); err != nil {
		return false, nil, fmt.Errorf("barrier: %w", err)
	}

	passed := true

	var mismatch *Mismatch

	if d.comm.IsCoordinator(d.comm.Rank()) {
		if mm, found := FirstMismatch(buf.want, buf.got, tol); found {
			passed = false
			mismatch = &mm
		}
	}

	if err := comm.BroadcastBool(d.comm, &passed); err != nil {
		return false, nil, fmt.Errorf("broadcast verdict: %w", err)
	}

	span.SetAttributes(attribute.Bool("passed", passed))
	d.metrics.recordTrial(ctx, kernelName(d.candidate), passed)
	d.logger.Debug("trial finished", slog.Int("trial", trial), slog.Bool("passed", passed))

	return passed, mismatch, nil
}

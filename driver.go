package fftcheck

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/cwbudde/fftcheck/comm"
	"github.com/cwbudde/fftcheck/internal/cpu"
)

const tracerName = "github.com/cwbudde/fftcheck"

// Driver is the lifecycle controller for one rank. It creates, refreshes and
// releases Contexts, runs the candidate and baseline kernels on them, and
// validates the candidate against the baseline.
//
// Every rank of a group builds its own Driver over its own Communicator and
// must call the collective operations (Init, Reset, Validate) in the same
// order as the other ranks.
type Driver[T Complex] struct {
	comm      comm.Communicator
	candidate Kernel[T]
	baseline  Kernel[T]
	cfg       Config
	rng       *rand.Rand

	runID    string
	model    string
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *driverMetrics
	features cpu.Features
}

// Option configures a Driver.
type Option func(*options)

type options struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	runID  string
}

// WithLogger sets the structured logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTracer sets the tracer for validation spans. The default is the global
// OpenTelemetry provider's tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) { o.tracer = tracer }
}

// WithMeter sets the meter for trial and validation counters. The default is
// the global OpenTelemetry provider's meter.
func WithMeter(meter metric.Meter) Option {
	return func(o *options) { o.meter = meter }
}

// WithRunID sets the run identifier shared by all ranks of a launch. The
// default is a random UUID per driver.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// NewDriver returns a driver for the rank behind c.
func NewDriver[T Complex](c comm.Communicator, candidate, baseline Kernel[T], cfg Config, opts ...Option) (*Driver[T], error) {
	if c == nil {
		return nil, ErrNilCommunicator
	}

	if candidate == nil || baseline == nil {
		return nil, ErrNilKernel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}

	if o.meter == nil {
		o.meter = otel.Meter(tracerName)
	}

	metrics, err := newDriverMetrics(o.meter)
	if err != nil {
		return nil, err
	}

	if o.runID == "" {
		o.runID = uuid.NewString()
	}

	model := cfg.Launch.Model
	if resolved, err := comm.LookupModel(model); err == nil {
		model = resolved.Name
	}

	return &Driver[T]{
		comm:      c,
		candidate: candidate,
		baseline:  baseline,
		cfg:       cfg,
		rng:       newRankRNG(cfg.Seed, c.Rank()),
		runID:     o.runID,
		model:     model,
		logger:    o.logger.With(slog.String("run_id", o.runID), slog.Int("rank", c.Rank())),
		tracer:    o.tracer,
		metrics:   metrics,
		features:  cpu.DetectFeatures(),
	}, nil
}

// RunID returns the run identifier.
func (d *Driver[T]) RunID() string {
	return d.runID
}

// Init allocates a Context of the configured problem size and populates it
// with Reset. It is a collective operation.
func (d *Driver[T]) Init() (*Context[T], error) {
	ctx := newContext[T](d.cfg.ProblemSize)

	if err := d.Reset(ctx); err != nil {
		return nil, err
	}

	d.logger.Debug("context initialized", slog.Int("problem_size", ctx.Len()))

	return ctx, nil
}

// Reset refills ctx's scratch sequences with uniform values in [-1, 1),
// replicates the coordinator's draws to every rank and rebuilds the primary
// buffer. It is a collective operation.
func (d *Driver[T]) Reset(ctx *Context[T]) error {
	if err := ctx.check(); err != nil {
		return err
	}

	if err := d.fillShared(ctx.Real, ctx.Imag); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	ctx.rebuild()

	return nil
}

// Compute runs the candidate kernel on ctx's primary buffer in place.
func (d *Driver[T]) Compute(ctx *Context[T]) error {
	if err := ctx.check(); err != nil {
		return err
	}

	d.candidate.Transform(ctx.X)
	ctx.publish()

	return nil
}

// Best runs the baseline kernel on ctx's primary buffer in place.
func (d *Driver[T]) Best(ctx *Context[T]) error {
	if err := ctx.check(); err != nil {
		return err
	}

	d.baseline.Transform(ctx.X)
	ctx.publish()

	return nil
}

// Destroy releases ctx. It must be called exactly once per Context; later
// calls, and any other use of ctx, return ErrContextDestroyed.
func (d *Driver[T]) Destroy(ctx *Context[T]) error {
	if err := ctx.check(); err != nil {
		return err
	}

	ctx.release()

	return nil
}

// fillShared draws re and im on this rank and overwrites them with the
// coordinator's draws.
func (d *Driver[T]) fillShared(re, im []float64) error {
	FillRand(d.rng, re, -1.0, 1.0)
	FillRand(d.rng, im, -1.0, 1.0)

	if err := comm.BroadcastFloat64s(d.comm, re); err != nil {
		return fmt.Errorf("broadcast real part: %w", err)
	}

	if err := comm.BroadcastFloat64s(d.comm, im); err != nil {
		return fmt.Errorf("broadcast imaginary part: %w", err)
	}

	return nil
}

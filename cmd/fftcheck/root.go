package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cwbudde/fftcheck"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config    string
	Model     string
	Ranks     int
	Threads   int
	Trials    int
	Seed      uint64
	Precision int
	Verbose   bool
	Format    string // "json" | "text"
	Trace     string

	IncludeModels []string
	ExcludeModels []string
	EarlyExit     bool
}

// sweepOptions returns the launch selection given on the command line.
func (o *RootOptions) sweepOptions() fftcheck.SweepOptions {
	return fftcheck.SweepOptions{
		Models:    fftcheck.ModelFilter{Include: o.IncludeModels, Exclude: o.ExcludeModels},
		EarlyExit: o.EarlyExit,
	}
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

var errValidationFailed = errors.New("validation failed")

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fftcheck",
		Short: "Validate FFT kernels across execution models",
		Long: `fftcheck drives an FFT candidate through the init/reset/compute/best/destroy
lifecycle and validates it against the reference kernel on randomized inputs,
under serial, shared-memory, distributed or hybrid execution.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			if opts.Precision != 64 && opts.Precision != 128 {
				return fmt.Errorf("invalid precision %d: must be 64 or 128", opts.Precision)
			}

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.Config, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opts.Model, "model", "m", "", "execution model (serial|shared|distributed|hybrid or an alias)")
	flags.IntVar(&opts.Ranks, "ranks", 0, "number of ranks for distributed models")
	flags.IntVar(&opts.Threads, "threads", 0, "workers per rank for threaded models (0 = GOMAXPROCS)")
	flags.IntVar(&opts.Trials, "trials", 0, "number of validation trials")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random seed")
	flags.IntVar(&opts.Precision, "precision", 128, "complex precision in bits (64|128)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.Trace, "trace", "", "write OpenTelemetry spans to this file")
	flags.StringSliceVar(&opts.IncludeModels, "include-models", nil, "only run launches of these models")
	flags.StringSliceVar(&opts.ExcludeModels, "exclude-models", nil, "skip launches of these models")
	flags.BoolVar(&opts.EarlyExit, "early-exit", false, "stop after the first launch that fails validation")
	cmd.MarkFlagsMutuallyExclusive("include-models", "exclude-models")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewModelsCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then flags that were set explicitly. A launch given with --model,
// --ranks or --threads replaces the file's launch list.
func loadConfig(cmd *cobra.Command, opts *RootOptions) (fftcheck.Config, error) {
	cfg := fftcheck.DefaultConfig()

	if opts.Config != "" {
		loaded, err := fftcheck.LoadConfig(opts.Config)
		if err != nil {
			return fftcheck.Config{}, err
		}

		cfg = loaded
	}

	flags := cmd.Flags()

	if flags.Changed("model") {
		cfg.Launch.Model = opts.Model
	}

	if flags.Changed("ranks") {
		cfg.Launch.Ranks = opts.Ranks
	}

	if flags.Changed("threads") {
		cfg.Launch.Threads = opts.Threads
	}

	if flags.Changed("model") || flags.Changed("ranks") || flags.Changed("threads") {
		cfg.Launches = nil
	}

	if flags.Changed("trials") {
		cfg.Trials = opts.Trials
	}

	if flags.Changed("seed") {
		cfg.Seed = opts.Seed
	}

	if err := cfg.Validate(); err != nil {
		return fftcheck.Config{}, err
	}

	return cfg, nil
}

// newLogger logs to w, which keeps stdout clean for JSON output.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cwbudde/fftcheck"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var candidate string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a candidate kernel against the reference",
		Long: `Validate runs the configured number of randomized trials on every selected
launch. Every rank transforms the coordinator's input with the candidate and
the reference, the coordinator compares the results, and its verdict is
shared by all ranks. The command exits non-zero when any launch fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts)
			if err != nil {
				return err
			}

			results, err := sweep(cmd, rootOpts, cfg, candidate)
			if err != nil {
				return err
			}

			if err := writeResults(cmd.OutOrStdout(), rootOpts.Format, results); err != nil {
				return err
			}

			return verdict(results)
		},
	}

	cmd.Flags().StringVar(&candidate, "candidate", fftcheck.KernelParallel, "candidate kernel name")

	return cmd
}

// sweep validates candidate on the selected launches of cfg. extra options
// are applied after the logger and tracer.
func sweep(cmd *cobra.Command, opts *RootOptions, cfg fftcheck.Config, candidate string, extra ...fftcheck.Option) ([]fftcheck.LaunchResult, error) {
	traceOpts, shutdown, err := startTracing(opts.Trace)
	if err != nil {
		return nil, err
	}

	driverOpts := []fftcheck.Option{fftcheck.WithLogger(newLogger(cmd.ErrOrStderr(), opts.Verbose))}
	driverOpts = append(driverOpts, traceOpts...)
	driverOpts = append(driverOpts, extra...)

	var results []fftcheck.LaunchResult

	if opts.Precision == 64 {
		results, err = fftcheck.Sweep[complex64](context.Background(), cfg, candidate, opts.sweepOptions(), driverOpts...)
	} else {
		results, err = fftcheck.Sweep[complex128](context.Background(), cfg, candidate, opts.sweepOptions(), driverOpts...)
	}

	if serr := shutdown(); err == nil && serr != nil {
		err = fmt.Errorf("failed to flush traces: %w", serr)
	}

	return results, err
}

// verdict returns errValidationFailed unless at least one launch ran and
// every launch passed.
func verdict(results []fftcheck.LaunchResult) error {
	if len(results) == 0 {
		return fmt.Errorf("%w: no launch selected", errValidationFailed)
	}

	for _, r := range results {
		if !r.Passed {
			return errValidationFailed
		}
	}

	return nil
}

func writeResults(w io.Writer, format string, results []fftcheck.LaunchResult) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(results)
	}

	return writeResultsText(w, results)
}

func writeResultsText(w io.Writer, results []fftcheck.LaunchResult) error {
	for _, res := range results {
		for _, r := range res.Reports {
			if _, err := fmt.Fprintln(w, r.String()); err != nil {
				return err
			}
		}
	}

	return nil
}

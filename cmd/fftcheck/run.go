package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cwbudde/fftcheck"
)

// runOutput is the JSON document written by run.
type runOutput struct {
	RunID      string                     `json:"run_id"`
	Lifecycle  []fftcheck.LifecycleReport `json:"lifecycle"`
	Validation []fftcheck.LaunchResult    `json:"validation,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		candidate    string
		iterations   int
		skipValidate bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Exercise the kernel lifecycle on every rank",
		Long: `Run initializes a context of the configured problem size on every selected
launch, then resets, computes and runs the baseline for the given number of
iterations before destroying the context. No timing is taken. Unless
--skip-validate is set, the candidate is validated afterwards.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts)
			if err != nil {
				return err
			}

			launches, err := cfg.SelectLaunches(rootOpts.sweepOptions().Models)
			if err != nil {
				return err
			}

			out := runOutput{RunID: uuid.NewString()}
			idOpt := fftcheck.WithRunID(out.RunID)
			logger := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose)

			for _, lc := range launches {
				single := cfg
				single.Launch = lc
				single.Launches = nil

				var lifecycle []fftcheck.LifecycleReport

				if rootOpts.Precision == 64 {
					lifecycle, err = fftcheck.Exercise[complex64](single, candidate, iterations, fftcheck.WithLogger(logger), idOpt)
				} else {
					lifecycle, err = fftcheck.Exercise[complex128](single, candidate, iterations, fftcheck.WithLogger(logger), idOpt)
				}

				if err != nil {
					return err
				}

				out.Lifecycle = append(out.Lifecycle, lifecycle...)
			}

			if !skipValidate {
				out.Validation, err = sweep(cmd, rootOpts, cfg, candidate, idOpt)
				if err != nil {
					return err
				}
			}

			if err := writeRun(cmd.OutOrStdout(), rootOpts.Format, out); err != nil {
				return err
			}

			if skipValidate {
				return nil
			}

			return verdict(out.Validation)
		},
	}

	cmd.Flags().StringVar(&candidate, "candidate", fftcheck.KernelParallel, "candidate kernel name")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "lifecycle iterations")
	cmd.Flags().BoolVar(&skipValidate, "skip-validate", false, "do not validate after the run")

	return cmd
}

func writeRun(w io.Writer, format string, out runOutput) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(out)
	}

	for _, r := range out.Lifecycle {
		if _, err := fmt.Fprintf(w, "run %s model=%s rank %d: %d iterations at size %d, observed %s\n",
			r.RunID, r.Model, r.Rank, r.Iterations, r.ProblemSize, r.Observed); err != nil {
			return err
		}
	}

	return writeResultsText(w, out.Validation)
}

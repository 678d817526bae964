package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/fftcheck"
	"github.com/cwbudde/fftcheck/comm"
)

type modelInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Description string   `json:"description"`
}

type kernelInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewModelsCommand creates the models command.
func NewModelsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "models",
		Short:         "List execution models and kernels",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var models []modelInfo
			for _, m := range comm.Models() {
				models = append(models, modelInfo{Name: m.Name, Aliases: m.Aliases, Description: m.Description})
			}

			var kernels []kernelInfo
			for _, name := range fftcheck.KernelNames() {
				kernels = append(kernels, kernelInfo{Name: name, Description: fftcheck.KernelDescription(name)})
			}

			w := cmd.OutOrStdout()

			if rootOpts.Format == "json" {
				return json.NewEncoder(w).Encode(struct {
					Models  []modelInfo  `json:"models"`
					Kernels []kernelInfo `json:"kernels"`
				}{models, kernels})
			}

			fmt.Fprintln(w, "Models:")
			for _, m := range models {
				fmt.Fprintf(w, "  %-12s %-10s %s\n", m.Name, strings.Join(m.Aliases, ","), m.Description)
			}

			fmt.Fprintln(w, "Kernels:")
			for _, k := range kernels {
				fmt.Fprintf(w, "  %-12s %s\n", k.Name, k.Description)
			}

			return nil
		},
	}
}

package fftcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/fftcheck/comm"
)

func TestRunAcrossModels(t *testing.T) {
	t.Parallel()

	launches := []comm.LaunchConfig{
		{Model: "serial"},
		{Model: "omp", Threads: 3},
		{Model: "mpi", Ranks: 4},
		{Model: "mpi+omp", Ranks: 2, Threads: 2},
	}

	for _, lc := range launches {
		for _, candidate := range []string{KernelReference, KernelParallel, KernelConjugate} {
			t.Run(lc.Model+"/"+candidate, func(t *testing.T) {
				t.Parallel()

				cfg := testConfig()
				cfg.Launch = lc

				reports, err := Run[complex128](context.Background(), cfg, candidate, WithLogger(quietLogger()))
				require.NoError(t, err)
				require.Len(t, reports, max(lc.Ranks, 1))

				want := candidate != KernelConjugate

				for rank, r := range reports {
					assert.Equal(t, rank, r.Rank)
					assert.Equal(t, want, r.Passed)
					assert.Equal(t, reports[0].RunID, r.RunID)
					assert.Equal(t, reports[0].TrialsRun, r.TrialsRun)
				}

				if !want {
					assert.Equal(t, 1, reports[0].TrialsRun)
					assert.NotNil(t, reports[0].Mismatch)
				}
			})
		}
	}
}

func TestRunModelNames(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Launch = comm.LaunchConfig{Model: "MPI+OMP", Ranks: 2, Threads: 1}

	reports, err := Run[complex64](context.Background(), cfg, KernelDIT, WithLogger(quietLogger()), WithRunID("fixed"))
	require.NoError(t, err)

	for _, r := range reports {
		assert.Equal(t, comm.ModelHybrid, r.Model)
		assert.Equal(t, "fixed", r.RunID)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Launch = comm.LaunchConfig{Model: comm.ModelDistributed, Ranks: 3}

	_, err := Run[complex128](context.Background(), cfg, "radix-7", WithLogger(quietLogger()))
	require.ErrorIs(t, err, ErrUnknownKernel)

	cfg.Launch = comm.LaunchConfig{Model: comm.ModelSerial, Ranks: 2}
	_, err = Run[complex128](context.Background(), cfg, KernelReference)
	require.ErrorIs(t, err, comm.ErrInvalidLaunch)

	cfg.Trials = 0
	_, err = Run[complex128](context.Background(), cfg, KernelReference)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExercise(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Launch = comm.LaunchConfig{Model: comm.ModelDistributed, Ranks: 3}

	reports, err := Exercise[complex128](cfg, KernelNaive, 4, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Len(t, reports, 3)

	for rank, r := range reports {
		assert.Equal(t, rank, r.Rank)
		assert.Equal(t, 4, r.Iterations)
		assert.Equal(t, cfg.ProblemSize, r.ProblemSize)
		// Ranks agree on the input, so they publish the same baseline sample.
		assert.Equal(t, reports[0].Observed, r.Observed)
	}

	_, err = Exercise[complex128](cfg, KernelNaive, -1)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func sweepConfig() Config {
	cfg := testConfig()
	cfg.Trials = 2
	cfg.Launches = []comm.LaunchConfig{
		{Model: "serial"},
		{Model: "mpi", Ranks: 2},
		{Model: "mpi+omp", Ranks: 2, Threads: 2},
	}

	return cfg
}

func TestSweepRunsEveryLaunch(t *testing.T) {
	t.Parallel()

	results, err := Sweep[complex128](context.Background(), sweepConfig(), KernelDIT, SweepOptions{}, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Len(t, results, 3)

	runID := results[0].Reports[0].RunID

	for i, res := range results {
		assert.True(t, res.Passed, "launch %d", i)
		assert.Equal(t, sweepConfig().Launches[i], res.Launch)
		require.Len(t, res.Reports, max(res.Launch.Ranks, 1))

		for _, r := range res.Reports {
			assert.Equal(t, runID, r.RunID, "one run id per sweep")
		}
	}
}

func TestSweepEarlyExit(t *testing.T) {
	t.Parallel()

	cfg := sweepConfig()

	results, err := Sweep[complex128](context.Background(), cfg, KernelConjugate,
		SweepOptions{EarlyExit: true}, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)

	results, err = Sweep[complex128](context.Background(), cfg, KernelConjugate,
		SweepOptions{}, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, res := range results {
		assert.False(t, res.Passed)
	}
}

func TestSweepModelFilter(t *testing.T) {
	t.Parallel()

	cfg := sweepConfig()

	results, err := Sweep[complex128](context.Background(), cfg, KernelReference,
		SweepOptions{Models: ModelFilter{Include: []string{"MPI"}}}, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "mpi", results[0].Launch.Model)

	results, err = Sweep[complex128](context.Background(), cfg, KernelReference,
		SweepOptions{Models: ModelFilter{Exclude: []string{"none", "hybrid"}}}, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "mpi", results[0].Launch.Model)

	_, err = Sweep[complex128](context.Background(), cfg, KernelReference,
		SweepOptions{Models: ModelFilter{Include: []string{"cuda"}}})
	require.ErrorIs(t, err, comm.ErrUnknownModel)
}

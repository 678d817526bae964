package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/fftcheck"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestValidateReferencePasses(t *testing.T) {
	out, err := execute(t, "validate", "--candidate", "reference", "--trials", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS candidate=reference")
}

func TestValidateConjugateFails(t *testing.T) {
	out, err := execute(t, "validate", "--candidate", "conjugate", "--model", "mpi", "--ranks", "3")
	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "FAIL candidate=conjugate")
	assert.Contains(t, out, "failed_trial=0")
}

func TestValidateJSON(t *testing.T) {
	out, err := execute(t, "validate", "--format", "json", "--model", "hybrid", "--ranks", "2", "--threads", "2", "--precision", "64")
	require.NoError(t, err)

	var results []fftcheck.LaunchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
	require.Len(t, results[0].Reports, 2)

	for _, r := range results[0].Reports {
		assert.True(t, r.Passed)
		assert.Equal(t, "hybrid", r.Model)
		assert.Equal(t, fftcheck.KernelParallel, r.Candidate)
	}
}

func writeSweepConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sweep.yaml")
	data := "trials: 1\nlaunches:\n  - model: serial\n  - model: mpi\n    ranks: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	return path
}

func TestValidateSweepEarlyExit(t *testing.T) {
	path := writeSweepConfig(t)

	out, err := execute(t, "validate", "--config", path, "--candidate", "conjugate", "--format", "json", "--early-exit")
	require.ErrorIs(t, err, errValidationFailed)

	var results []fftcheck.LaunchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "serial", results[0].Launch.Model)

	out, err = execute(t, "validate", "--config", path, "--candidate", "conjugate", "--format", "json")
	require.ErrorIs(t, err, errValidationFailed)
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 2)
}

func TestValidateModelFilters(t *testing.T) {
	path := writeSweepConfig(t)

	out, err := execute(t, "validate", "--config", path, "--candidate", "reference", "--include-models", "mpi")
	require.NoError(t, err)
	assert.Contains(t, out, "model=distributed rank=1/2")
	assert.NotContains(t, out, "model=serial")

	out, err = execute(t, "validate", "--config", path, "--candidate", "reference", "--exclude-models", "mpi")
	require.NoError(t, err)
	assert.Contains(t, out, "model=serial")
	assert.NotContains(t, out, "model=distributed")

	_, err = execute(t, "validate", "--config", path, "--include-models", "mpi", "--exclude-models", "serial")
	require.Error(t, err)

	_, err = execute(t, "validate", "--config", path, "--exclude-models", "serial,mpi")
	require.ErrorIs(t, err, errValidationFailed)
}

func TestRunJSONIsOneDocument(t *testing.T) {
	out, err := execute(t, "run", "--format", "json", "--candidate", "reference", "-n", "1", "--trials", "1",
		"--model", "mpi", "--ranks", "2")
	require.NoError(t, err)

	var doc struct {
		RunID      string                     `json:"run_id"`
		Lifecycle  []fftcheck.LifecycleReport `json:"lifecycle"`
		Validation []fftcheck.LaunchResult    `json:"validation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.NotEmpty(t, doc.RunID)
	require.Len(t, doc.Lifecycle, 2)
	require.Len(t, doc.Validation, 1)

	for _, r := range doc.Lifecycle {
		assert.Equal(t, doc.RunID, r.RunID)
		assert.Equal(t, 1, r.Iterations)
	}

	for _, r := range doc.Validation[0].Reports {
		assert.Equal(t, doc.RunID, r.RunID)
		assert.True(t, r.Passed)
	}
}

func TestValidateWritesTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.json")

	_, err := execute(t, "validate", "--trials", "1", "--trace", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fftcheck.validate")
	assert.Contains(t, string(data), "fftcheck.trial")
}

func TestRootRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "models", "--format", "yaml")
	require.ErrorContains(t, err, "invalid format")

	_, err = execute(t, "validate", "--precision", "32")
	require.ErrorContains(t, err, "invalid precision")

	_, err = execute(t, "validate", "--model", "pvm")
	require.ErrorIs(t, err, fftcheck.ErrInvalidConfig)

	_, err = execute(t, "validate", "--candidate", "radix-3")
	require.ErrorIs(t, err, fftcheck.ErrUnknownKernel)
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--iterations", "2", "--model", "distributed", "--ranks", "2", "--candidate", "dit")
	require.NoError(t, err)
	assert.Contains(t, out, "rank 0: 2 iterations at size 4096")
	assert.Contains(t, out, "rank 1: 2 iterations at size 4096")
	assert.Contains(t, out, "PASS candidate=dit")

	out, err = execute(t, "run", "--iterations", "1", "--candidate", "conjugate", "--skip-validate")
	require.NoError(t, err)
	assert.NotContains(t, out, "FAIL")
}

func TestModelsCommand(t *testing.T) {
	out, err := execute(t, "models")
	require.NoError(t, err)

	for _, want := range []string{"serial", "none", "shared", "omp", "distributed", "mpi", "hybrid", "mpi+omp", "reference", "conjugate"} {
		assert.Contains(t, out, want)
	}
}

func TestConfigInitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fftcheck.yaml")

	_, err := execute(t, "config", "init", path, "--model", "mpi", "--ranks", "2", "--trials", "1")
	require.NoError(t, err)

	cfg, err := fftcheck.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mpi", cfg.Launch.Model)
	assert.Equal(t, 2, cfg.Launch.Ranks)
	assert.Equal(t, 1, cfg.Trials)

	out, err := execute(t, "validate", "--config", path, "--candidate", "naive")
	require.NoError(t, err)
	assert.Contains(t, out, "model=distributed rank=0/2")
	assert.Contains(t, out, "model=distributed rank=1/2")
}

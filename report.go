package fftcheck

import (
	"fmt"
	"strings"
)

// Report describes one rank's validation run. Passed is identical on every
// rank of a launch. Mismatch is only ever set on the coordinator.
type Report struct {
	RunID     string `json:"run_id"`
	Model     string `json:"model"`
	Rank      int    `json:"rank"`
	Ranks     int    `json:"ranks"`
	Workers   int    `json:"workers"`
	Candidate string `json:"candidate"`
	Baseline  string `json:"baseline"`
	CPU       string `json:"cpu"`

	TrialSize int     `json:"trial_size"`
	Trials    int     `json:"trials"`
	Tolerance float64 `json:"tolerance"`

	Passed    bool `json:"passed"`
	TrialsRun int  `json:"trials_run"`
	// FailedTrial is the zero-based failing trial, or -1.
	FailedTrial int       `json:"failed_trial"`
	Mismatch    *Mismatch `json:"mismatch,omitempty"`
}

// Verdict returns "PASS" or "FAIL".
func (r Report) Verdict() string {
	if r.Passed {
		return "PASS"
	}

	return "FAIL"
}

// String formats the report as a single line.
func (r Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s candidate=%s baseline=%s model=%s rank=%d/%d trials=%d/%d size=%d",
		r.Verdict(), r.Candidate, r.Baseline, r.Model, r.Rank, r.Ranks, r.TrialsRun, r.Trials, r.TrialSize)

	if !r.Passed {
		fmt.Fprintf(&b, " failed_trial=%d", r.FailedTrial)
	}

	if r.Mismatch != nil {
		fmt.Fprintf(&b, " (%s)", r.Mismatch)
	}

	return b.String()
}

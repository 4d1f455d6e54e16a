// SPDX-License-Identifier: MIT
// Package: axiomat/report
//
// report.go — pure aggregation of check results.

package report

import (
	"github.com/katalvlaran/axiomat/verify"
)

// Status is the aggregate categorical verdict.
type Status string

const (
	// StatusPass: every check passed.
	StatusPass Status = "PASS"
	// StatusMarginal: a small, bounded number of non-critical checks failed.
	// The run is suspect but not structurally broken.
	StatusMarginal Status = "MARGINAL"
	// StatusTension: critical failures, or more failures than the marginal
	// band tolerates.
	StatusTension Status = "TENSION"
)

// MaxMarginalFailures bounds how many non-critical failures still classify as
// MARGINAL rather than TENSION.
const MaxMarginalFailures = 2

// Summary is the aggregate over one run's checks. Construct via Summarize.
type Summary struct {
	// Total, Passed, Failed are plain counts.
	Total  int
	Passed int
	Failed int
	// CriticalFailed counts failing zero-tolerance checks. Any value above
	// zero forces TENSION: an exact identity that does not hold is never a
	// rounding artifact.
	CriticalFailed int
	// FailedNames lists failing check names in input order, so a caller can
	// enumerate exactly what broke without re-scanning the checks.
	FailedNames []string
	// Status is the categorical verdict.
	Status Status
}

// Summarize classifies a slice of check results. Pure: no recomputation, no
// mutation of the input, deterministic output for a given input.
func Summarize(checks []verify.Check) Summary {
	s := Summary{Total: len(checks)}

	// 1. Count outcomes.
	for _, c := range checks {
		if c.Status == verify.StatusPass {
			s.Passed++
			continue
		}
		s.Failed++
		s.FailedNames = append(s.FailedNames, c.Name)
		if c.Exact {
			s.CriticalFailed++
		}
	}

	// 2. Classify against the fixed thresholds.
	switch {
	case s.Failed == 0:
		s.Status = StatusPass
	case s.CriticalFailed == 0 && s.Failed <= MaxMarginalFailures:
		s.Status = StatusMarginal
	default:
		s.Status = StatusTension
	}

	return s
}

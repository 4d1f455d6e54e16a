// SPDX-License-Identifier: MIT
// Package: axiomat/verify
//
// types.go — check values, independent-path specs, sentinels.

package verify

import (
	"errors"

	"github.com/robaho/fixed"

	"github.com/katalvlaran/axiomat/seed"
)

// Status is the outcome of a single verification check.
type Status string

const (
	// StatusPass: the computed value agrees with the independently derived
	// target within the documented tolerance (or exactly, for closures).
	StatusPass Status = "PASS"
	// StatusFail: it does not. The Check's Reason names the failure class.
	StatusFail Status = "FAIL"
)

// Failure reason codes carried on Check.Reason.
const (
	// DriftDetected: a toleranced check's variance left the documented
	// residual band. This is a genuine disagreement between the two
	// derivation paths, not rounding noise.
	DriftDetected = "DRIFT_DETECTED"
	// ClosureBroken: an exact-integer closure did not hold.
	ClosureBroken = "CLOSURE_BROKEN"
)

// Check is one verification result. Immutable after creation; all numeric
// fields are canonical decimal strings so a Check serializes identically on
// every machine.
type Check struct {
	// Name is the stable check identifier (also the certificate key).
	Name string
	// Description says what property the check pins, for humans.
	Description string
	// Computed is the claimed value under test, canonically quantized.
	Computed string
	// Target is the independently derived expected value.
	Target string
	// Tolerance is the permitted absolute variance; "0" for exact checks.
	Tolerance string
	// Variance is |Computed - Target| as measured on the independent backend.
	Variance string
	// Status is PASS or FAIL.
	Status Status
	// Reason is empty on PASS, otherwise a failure reason code.
	Reason string
	// Exact marks zero-tolerance checks (integer closures and algebraically
	// forced identities). Exact failures are always critical.
	Exact bool
	// Coupled marks a check whose independent path reuses a fitted seed of
	// the primary derivation; see the package documentation.
	Coupled bool
}

// PathFunc recomputes a target value from the seed store ALONE, on the
// fixed-point backend. It must not consult the derivation engine, its cached
// values, or any formula body the engine uses for the same target.
type PathFunc func(s *seed.Store) (fixed.Fixed, error)

// IndependentPath declares one verified target.
type IndependentPath struct {
	// Target is the derived-value name this path checks.
	Target string
	// Description says how the independent route differs from the primary.
	Description string
	// Tolerance is a decimal literal: the expected residual of the known
	// rounding difference between backends. "0" demands exact agreement.
	Tolerance string
	// Coupled declares residual seed coupling (see package doc).
	Coupled bool
	// Recompute derives the expected value from seeds.
	Recompute PathFunc
}

// ClosureSpec declares one exact-integer closure over seeds: either the sum
// of Addends or the product of Factors must equal the Total seed, exactly.
type ClosureSpec struct {
	// Name is the stable check identifier.
	Name string
	// Description says what structural property the closure pins.
	Description string
	// Addends are seed names to sum. Mutually exclusive with Factors.
	Addends []string
	// Factors are seed names to multiply. Mutually exclusive with Addends.
	Factors []string
	// Total is the seed name holding the expected exact result.
	Total string
}

var (
	// ErrUnknownTarget is returned by Verify for a target with no registered
	// independent path.
	ErrUnknownTarget = errors.New("verify: unknown verification target")

	// ErrDuplicateTarget is returned by RegisterPath when the target already
	// has an independent path. One target, one path: a second "independent"
	// route through the same registry entry would be unverifiable itself.
	ErrDuplicateTarget = errors.New("verify: duplicate verification target")

	// ErrBadPath is returned by RegisterPath for a structurally invalid
	// path: empty target, nil Recompute, or an unparseable tolerance.
	ErrBadPath = errors.New("verify: invalid independent path")

	// ErrBadClosure is returned by AddClosure for a structurally invalid
	// closure spec (no terms, both term kinds, empty names).
	ErrBadClosure = errors.New("verify: invalid closure spec")

	// ErrNilClaim is returned by Verify when the claimed value is nil.
	ErrNilClaim = errors.New("verify: nil claimed value")

	// ErrBackend is returned when the fixed-point backend cannot represent a
	// value handed to it (parse failure, NaN). This is structural: the check
	// never produced a verdict.
	ErrBackend = errors.New("verify: fixed-point backend failure")
)

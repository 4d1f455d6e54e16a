// SPDX-License-Identifier: MIT
// Package: axiomat/verify
//
// verifier.go — target verification against independently recomputed values.
// All comparison arithmetic runs on the robaho/fixed backend so the verdict
// never depends on the engine's decimal context behaving correctly.

package verify

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/apd/v3"
	"github.com/robaho/fixed"

	"github.com/katalvlaran/axiomat/numctx"
	"github.com/katalvlaran/axiomat/seed"
)

// Verifier recomputes registered targets from the seed store alone and
// compares claimed values against them. Construct with New; register paths
// during initialization; Verify/RunClosures afterwards (any order, any count).
type Verifier struct {
	nctx     *numctx.Context
	seeds    *seed.Store
	paths    map[string]IndependentPath
	closures []ClosureSpec
}

// New creates a Verifier over the given precision context and seed store.
// Nil arguments are wiring bugs and panic, matching the engine's constructor.
func New(nctx *numctx.Context, seeds *seed.Store) *Verifier {
	if nctx == nil {
		panic("verify: New requires a non-nil numctx.Context")
	}
	if seeds == nil {
		panic("verify: New requires a non-nil seed.Store")
	}

	return &Verifier{
		nctx:  nctx,
		seeds: seeds,
		paths: make(map[string]IndependentPath),
	}
}

// RegisterPath installs one independent path.
// Errors: ErrBadPath (structure, tolerance literal), ErrDuplicateTarget.
func (v *Verifier) RegisterPath(p IndependentPath) error {
	// 1. Structural validation.
	if p.Target == "" || p.Recompute == nil {
		return fmt.Errorf("%w: target=%q recompute-nil=%t", ErrBadPath, p.Target, p.Recompute == nil)
	}
	if _, err := parseFixed(p.Tolerance); err != nil {
		return fmt.Errorf("%w: target %q: tolerance %q", ErrBadPath, p.Target, p.Tolerance)
	}
	// 2. One target, one path.
	if _, exists := v.paths[p.Target]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTarget, p.Target)
	}
	v.paths[p.Target] = p

	return nil
}

// AddClosure installs one exact-integer closure check.
// Errors: ErrBadClosure.
func (v *Verifier) AddClosure(c ClosureSpec) error {
	if c.Name == "" || c.Total == "" {
		return fmt.Errorf("%w: name=%q total=%q", ErrBadClosure, c.Name, c.Total)
	}
	if (len(c.Addends) == 0) == (len(c.Factors) == 0) {
		return fmt.Errorf("%w: %q: exactly one of Addends/Factors must be set", ErrBadClosure, c.Name)
	}
	for _, term := range append(append([]string(nil), c.Addends...), c.Factors...) {
		if term == "" {
			return fmt.Errorf("%w: %q: empty term name", ErrBadClosure, c.Name)
		}
	}
	v.closures = append(v.closures, c)

	return nil
}

// Targets returns the registered target names in sorted order.
func (v *Verifier) Targets() []string {
	names := make([]string, 0, len(v.paths))
	for n := range v.paths {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Verify compares claimed (typically the engine's cached value for target)
// against the independently recomputed expected value.
// Returns a fresh Check; the error return is reserved for STRUCTURAL problems
// (unknown target, nil claim, backend failure) — a numeric disagreement is a
// FAIL Check, not an error.
func (v *Verifier) Verify(target string, claimed *apd.Decimal) (Check, error) {
	// 1. Structural preconditions.
	p, ok := v.paths[target]
	if !ok {
		return Check{}, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
	if claimed == nil {
		return Check{}, fmt.Errorf("%w: target %q", ErrNilClaim, target)
	}

	// 2. Recompute the expected value from seeds alone, on the fixed backend.
	expected, err := p.Recompute(v.seeds)
	if err != nil {
		return Check{}, fmt.Errorf("verify: recompute %q: %w", target, err)
	}
	if expected.IsNaN() {
		return Check{}, fmt.Errorf("%w: recompute %q produced NaN", ErrBackend, target)
	}

	// 3. Quantize the claim through the shared precision context, then move
	//    it onto the independent backend for comparison.
	claimedCanon, err := v.nctx.CanonicalString(claimed)
	if err != nil {
		return Check{}, fmt.Errorf("verify: quantize claim for %q: %w", target, err)
	}
	claimedF, err := parseFixed(claimedCanon)
	if err != nil {
		return Check{}, fmt.Errorf("%w: claim %q for %q", ErrBackend, claimedCanon, target)
	}

	// 4. Variance and verdict, all in fixed-point.
	tol, err := parseFixed(p.Tolerance)
	if err != nil {
		return Check{}, fmt.Errorf("%w: tolerance %q for %q", ErrBackend, p.Tolerance, target)
	}
	variance := absFixed(claimedF.Sub(expected))

	chk := Check{
		Name:        target,
		Description: p.Description,
		Computed:    claimedCanon,
		Target:      expected.String(),
		Tolerance:   tol.String(),
		Variance:    variance.String(),
		Exact:       tol.IsZero(),
		Coupled:     p.Coupled,
	}
	if variance.Cmp(tol) <= 0 {
		chk.Status = StatusPass
	} else {
		chk.Status = StatusFail
		chk.Reason = DriftDetected
	}

	return chk, nil
}

// RunClosures evaluates every registered closure with exact int64 arithmetic.
// The error return is structural (unknown or non-integer seed); a broken
// closure is a FAIL Check with Reason ClosureBroken.
func (v *Verifier) RunClosures() ([]Check, error) {
	checks := make([]Check, 0, len(v.closures))
	for _, c := range v.closures {
		chk, err := v.runClosure(c)
		if err != nil {
			return nil, err
		}
		checks = append(checks, chk)
	}

	return checks, nil
}

// runClosure evaluates one closure spec.
func (v *Verifier) runClosure(c ClosureSpec) (Check, error) {
	// 1. Fold the terms exactly in int64; catalog seeds are three digits, so
	//    overflow is out of reach by orders of magnitude.
	var got int64
	if len(c.Addends) > 0 {
		for _, name := range c.Addends {
			term, err := v.seeds.Int64(name)
			if err != nil {
				return Check{}, fmt.Errorf("verify: closure %q: %w", c.Name, err)
			}
			got += term
		}
	} else {
		got = 1
		for _, name := range c.Factors {
			term, err := v.seeds.Int64(name)
			if err != nil {
				return Check{}, fmt.Errorf("verify: closure %q: %w", c.Name, err)
			}
			got *= term
		}
	}

	// 2. The expected total is itself a seed: closures never invent numbers.
	want, err := v.seeds.Int64(c.Total)
	if err != nil {
		return Check{}, fmt.Errorf("verify: closure %q: %w", c.Name, err)
	}

	// 3. Exact equality. No epsilon exists for integers.
	chk := Check{
		Name:        c.Name,
		Description: c.Description,
		Computed:    fmt.Sprintf("%d", got),
		Target:      fmt.Sprintf("%d", want),
		Tolerance:   "0",
		Variance:    fmt.Sprintf("%d", absInt64(got-want)),
		Exact:       true,
	}
	if got == want {
		chk.Status = StatusPass
	} else {
		chk.Status = StatusFail
		chk.Reason = ClosureBroken
	}

	return chk, nil
}

// parseFixed parses a decimal literal on the independent backend.
func parseFixed(s string) (fixed.Fixed, error) {
	f, err := fixed.NewSErr(s)
	if err != nil {
		return fixed.ZERO, err
	}
	if f.IsNaN() {
		return fixed.ZERO, fmt.Errorf("parse %q: NaN", s)
	}

	return f, nil
}

// absFixed returns |f| without relying on backend helpers beyond Sub/Cmp.
func absFixed(f fixed.Fixed) fixed.Fixed {
	if f.Cmp(fixed.ZERO) < 0 {
		return fixed.ZERO.Sub(f)
	}

	return f
}

// absInt64 returns |i| for the closure variance field.
func absInt64(i int64) int64 {
	if i < 0 {
		return -i
	}

	return i
}

// SPDX-License-Identifier: MIT
// Package: axiomat/derive
//
// types.go — formula specifications, cell states, sentinels and options.

package derive

import (
	"context"
	"errors"

	"github.com/cockroachdb/apd/v3"

	"github.com/katalvlaran/axiomat/numctx"
)

// EvalFunc is the opaque pure evaluation rule of a formula. It receives the
// engine's precision context and the resolved input values in declared order,
// and returns one value per declared output, in declared order.
// EvalFuncs MUST be pure: no I/O, no randomness, no retained pointers to the
// input slice (the engine may reuse it).
type EvalFunc func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error)

// FormulaSpec declares one node of the derivation DAG.
type FormulaSpec struct {
	// ID identifies the formula in error messages and diagnostics.
	ID string

	// Inputs lists the value names this formula consumes, in the order they
	// are handed to Eval. Each must resolve to a seed or another formula's
	// output.
	Inputs []string

	// Outputs lists the value names this formula produces, in the order Eval
	// returns them. Every output name may be bound by at most one formula.
	Outputs []string

	// Eval is the pure evaluation rule.
	Eval EvalFunc
}

// cellState tracks the lifecycle of one memoization cell.
// The three-color analogy: Pending=white, Computing=gray, Computed=black,
// with Failed as a sticky terminal for evaluation errors.
type cellState uint8

const (
	statePending   cellState = iota // never requested
	stateComputing                  // on the active resolution path
	stateComputed                   // value cached, immutable
	stateFailed                     // evaluation error cached, immutable
)

// cell is one memoized derived value. Owned exclusively by the Engine.
type cell struct {
	state   cellState
	formula *FormulaSpec // owning formula (shared across its outputs)
	value   *apd.Decimal // set iff state == stateComputed
	err     error        // set iff state == stateFailed
}

var (
	// ErrUnknownName is returned by Get when the requested name is bound to
	// neither a seed nor a formula output.
	// Usage: if errors.Is(err, ErrUnknownName) { /* fix the reference */ }.
	ErrUnknownName = errors.New("derive: unknown value name")

	// ErrCycleDetected is returned when resolution re-enters a name that is
	// already on the active resolution path. The wrapping message carries the
	// cycle, e.g. "a -> b -> a". Structural defect: always fatal.
	ErrCycleDetected = errors.New("derive: dependency cycle detected")

	// ErrDuplicateBinding is returned by Register when an output name is
	// already produced by a previously registered formula or shadows a seed.
	ErrDuplicateBinding = errors.New("derive: output name already bound")

	// ErrBadFormula is returned by Register for a structurally invalid spec:
	// empty ID, no outputs, or a nil Eval.
	ErrBadFormula = errors.New("derive: invalid formula spec")

	// ErrArityMismatch is returned when an Eval produces a number of values
	// different from the declared output count. The formula is a defect; its
	// cells are parked Failed.
	ErrArityMismatch = errors.New("derive: formula output arity mismatch")
)

// Option configures optional Engine behavior. Use with New(ctx, seeds, opts...).
type Option func(*engineOptions)

// engineOptions holds resolved optional settings.
type engineOptions struct {
	ctx       context.Context                        // cancellation; defaults to Background
	onCompute func(name string, v *apd.Decimal) error // post-evaluation hook, may be nil
}

// defaultOptions returns the baseline settings: Background context, no hook.
func defaultOptions() engineOptions {
	return engineOptions{ctx: context.Background()}
}

// WithContext returns an Option enabling cancellation of deep resolutions.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *engineOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithOnCompute returns an Option installing fn as a post-evaluation hook.
// fn runs once per freshly computed output name, after the value is cached.
// Returning an error aborts the active Get with that error; the computed
// values stay cached (they are valid; only the observation failed).
// fn MUST NOT call back into the Engine: it runs under the engine lock.
func WithOnCompute(fn func(name string, v *apd.Decimal) error) Option {
	return func(o *engineOptions) {
		o.onCompute = fn
	}
}

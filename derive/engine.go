// SPDX-License-Identifier: MIT
// Package: axiomat/derive
//
// engine.go — lazy, memoized resolution over the formula DAG with structural
// cycle detection. Cycle handling follows classic three-color DFS: a cell in
// the Computing state found on the active path is a back-edge, and the path
// stack from its first occurrence reconstructs the cycle for the error text.

package derive

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/apd/v3"

	"github.com/katalvlaran/axiomat/numctx"
	"github.com/katalvlaran/axiomat/seed"
)

// Engine is the derivation engine. Construct with New, bind formulas with
// Register, then resolve names with Get. Safe for concurrent Get calls.
type Engine struct {
	mu    sync.Mutex
	nctx  *numctx.Context
	seeds *seed.Store
	cells map[string]*cell // memoization arena, keyed by output name
	opts  engineOptions
	path  []string // active resolution path (guarded by mu)
}

// New creates an Engine over the given precision context and seed store.
// Both must be non-nil; nil arguments are wiring bugs and panic.
func New(nctx *numctx.Context, seeds *seed.Store, opts ...Option) *Engine {
	if nctx == nil {
		panic("derive: New requires a non-nil numctx.Context")
	}
	if seeds == nil {
		panic("derive: New requires a non-nil seed.Store")
	}

	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Engine{
		nctx:  nctx,
		seeds: seeds,
		cells: make(map[string]*cell),
		opts:  o,
	}
}

// Register binds a formula's outputs into the engine.
// Errors:
//   - ErrBadFormula         empty ID, empty Outputs, empty output/input name,
//     or nil Eval.
//   - ErrDuplicateBinding   an output is already produced elsewhere or
//     shadows a seed.
//
// Registration is all-or-nothing: on error, no output of the spec is bound.
func (e *Engine) Register(fs FormulaSpec) error {
	// 1. Structural validation of the spec itself.
	if fs.ID == "" || len(fs.Outputs) == 0 || fs.Eval == nil {
		return fmt.Errorf("%w: id=%q outputs=%d eval-nil=%t",
			ErrBadFormula, fs.ID, len(fs.Outputs), fs.Eval == nil)
	}
	for _, in := range fs.Inputs {
		if in == "" {
			return fmt.Errorf("%w: formula %q has an empty input name", ErrBadFormula, fs.ID)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// 2. Check every output before binding any (all-or-nothing).
	for _, out := range fs.Outputs {
		if out == "" {
			return fmt.Errorf("%w: formula %q has an empty output name", ErrBadFormula, fs.ID)
		}
		if _, exists := e.cells[out]; exists {
			return fmt.Errorf("%w: %q (formula %q)", ErrDuplicateBinding, out, fs.ID)
		}
		if e.seeds.Has(out) {
			return fmt.Errorf("%w: %q shadows a seed (formula %q)", ErrDuplicateBinding, out, fs.ID)
		}
	}

	// 3. Bind: one Pending cell per output, all sharing the owning spec.
	//    The spec is copied so later caller mutation cannot reach the engine.
	own := fs
	own.Inputs = append([]string(nil), fs.Inputs...)
	own.Outputs = append([]string(nil), fs.Outputs...)
	for _, out := range own.Outputs {
		e.cells[out] = &cell{state: statePending, formula: &own}
	}

	return nil
}

// Get resolves a named value: a seed directly, or a derived value through its
// formula chain, memoized. The returned decimal is an independent copy.
// Errors: ErrUnknownName, ErrCycleDetected, numctx.ErrArithmeticFatal (and any
// error an EvalFunc or OnCompute hook returns).
func (e *Engine) Get(name string) (*apd.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// The path stack must be empty between top-level calls; defensive reset
	// is wrong (it would hide a bug), so it is asserted instead.
	if len(e.path) != 0 {
		panic("derive: resolution path not empty between Get calls")
	}

	v, err := e.resolve(name)
	if err != nil {
		return nil, err
	}

	return new(apd.Decimal).Set(v), nil
}

// MustGet is Get for tests and examples; it panics on error.
func (e *Engine) MustGet(name string) *apd.Decimal {
	v, err := e.Get(name)
	if err != nil {
		panic(err)
	}

	return v
}

// Has reports whether name is bound to a seed or a formula output, WITHOUT
// forcing computation.
func (e *Engine) Has(name string) bool {
	if e.seeds.Has(name) {
		return true
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.cells[name]

	return ok
}

// Names returns all derived (formula-bound) names in sorted order. Seed names
// live on seed.Store.Names; the two sets are disjoint by Register's rules.
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.cells))
	for n := range e.cells {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Context returns the engine's precision context.
func (e *Engine) Context() *numctx.Context { return e.nctx }

// resolve is the recursive core of Get. Caller holds e.mu.
// Returned decimals are the cached cells themselves; Get copies at the top.
func (e *Engine) resolve(name string) (*apd.Decimal, error) {
	// 1. Cancellation check at every node; deep graphs stay interruptible.
	select {
	case <-e.opts.ctx.Done():
		return nil, e.opts.ctx.Err()
	default:
	}

	// 2. Seeds resolve directly; they are leaves by construction.
	if e.seeds.Has(name) {
		v, err := e.seeds.Get(name)
		if err != nil {
			return nil, err // unreachable after Has, but never swallowed
		}

		return v, nil
	}

	// 3. Unbound names are structural errors, not empty results.
	c, ok := e.cells[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	switch c.state {
	case stateComputed:
		// 4a. Memoized: pure cache hit.
		return c.value, nil
	case stateFailed:
		// 4b. Sticky failure: re-evaluating a pure formula cannot succeed,
		//     and silent retry would mask determinism bugs.
		return nil, c.err
	case stateComputing:
		// 4c. Back-edge: this name is already on the active path — a cycle.
		return nil, e.cycleError(name)
	}

	// 5. Pending: evaluate the owning formula. Mark the whole output set
	//    Computing first so any re-entry through ANY output is caught.
	spec := c.formula
	for _, out := range spec.Outputs {
		e.cells[out].state = stateComputing
	}
	e.path = append(e.path, name)

	outs, err := e.evaluate(spec)

	// 6. Backtrack the path stack regardless of outcome.
	e.path = e.path[:len(e.path)-1]

	if err != nil {
		// 7a. Park every output Failed with the same error; a later Get of a
		//     sibling output must report the original failure, not recompute.
		wrapped := fmt.Errorf("derive: formula %q: %w", spec.ID, err)
		for _, out := range spec.Outputs {
			e.cells[out].state = stateFailed
			e.cells[out].err = wrapped
		}

		return nil, wrapped
	}

	// 7b. Commit all outputs atomically (under mu), then fire the hook.
	for i, out := range spec.Outputs {
		e.cells[out].state = stateComputed
		e.cells[out].value = outs[i]
	}
	if e.opts.onCompute != nil {
		for i, out := range spec.Outputs {
			if hookErr := e.opts.onCompute(out, new(apd.Decimal).Set(outs[i])); hookErr != nil {
				return nil, fmt.Errorf("derive: OnCompute(%q): %w", out, hookErr)
			}
		}
	}

	return e.cells[name].value, nil
}

// evaluate resolves spec's inputs in declared order and runs its Eval.
// Caller holds e.mu and has already marked the outputs Computing.
func (e *Engine) evaluate(spec *FormulaSpec) ([]*apd.Decimal, error) {
	// 1. Resolve inputs depth-first, in declared order. Order is pinned for
	//    reproducible error messages; values are order-independent (pure).
	in := make([]*apd.Decimal, len(spec.Inputs))
	for i, dep := range spec.Inputs {
		v, err := e.resolve(dep)
		if err != nil {
			return nil, err
		}
		// Hand the formula a copy: EvalFuncs must not be able to mutate cells.
		in[i] = new(apd.Decimal).Set(v)
	}

	// 2. Run the pure evaluation rule under the engine's precision context.
	outs, err := spec.Eval(e.nctx, in)
	if err != nil {
		return nil, err
	}

	// 3. Arity and nil discipline: exactly one non-nil value per output.
	if len(outs) != len(spec.Outputs) {
		return nil, fmt.Errorf("%w: got %d values, declared %d",
			ErrArityMismatch, len(outs), len(spec.Outputs))
	}
	for i, v := range outs {
		if v == nil {
			return nil, fmt.Errorf("%w: output %q is nil", ErrArityMismatch, spec.Outputs[i])
		}
	}

	return outs, nil
}

// cycleError reconstructs the cycle from the active path stack.
// name is the re-entered value; the cycle is path[idx:] closed with name.
func (e *Engine) cycleError(name string) error {
	// 1. Locate the first occurrence of a name sharing the re-entered cell's
	//    formula; re-entry through a sibling output is the same cycle.
	idx := 0
	for i, p := range e.path {
		if p == name || e.sameFormula(p, name) {
			idx = i
			break
		}
	}
	// 2. Close the loop for the message: "a -> b -> a".
	segment := append(append([]string(nil), e.path[idx:]...), name)

	return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(segment, " -> "))
}

// sameFormula reports whether two derived names are outputs of one formula.
func (e *Engine) sameFormula(a, b string) bool {
	ca, oka := e.cells[a]
	cb, okb := e.cells[b]

	return oka && okb && ca.formula == cb.formula
}

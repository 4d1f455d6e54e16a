// Package derive implements the dependency-ordered value-derivation engine:
// a registry of named formulas over a seed store, evaluated lazily, memoized
// per name, with structural cycle detection.
//
// Model:
//
//   - A FormulaSpec declares an ordered input list, an ordered output list and
//     a pure evaluation rule. Inputs resolve to seeds or to other formulas'
//     outputs; the whole registry therefore forms a DAG — and a cycle is a
//     structural defect, reported as ErrCycleDetected, never an infinite
//     recursion.
//   - Every output name owns one memoization cell walking
//     Pending → Computing → Computed (or Failed). Computing encountered on the
//     active resolution path is precisely a back-edge, i.e. a cycle; the error
//     carries the full cycle path for diagnosis.
//
// Contract of Get:
//
//   - Computed: the cached value is returned, bit-identical on every call.
//   - Pending: all declared inputs are resolved recursively (depth-first, in
//     declared order), the formula evaluates once, all of its outputs are
//     cached, the value is returned.
//   - Failure modes: ErrUnknownName (name bound to nothing),
//     ErrCycleDetected (structural), numctx.ErrArithmeticFatal (a trapped
//     arithmetic condition inside evaluation — propagates and parks the cell
//     Failed; a corrupted number must never be served from cache as healthy).
//
// Evaluation is pure: no I/O, no randomness, no observable side effects beyond
// memoization. Two processes computing the same names from the same seeds
// produce identical cached values; the traversal is depth-first only because
// some order had to be pinned, not because the order is observable.
//
// Concurrency: a single engine mutex serializes resolution, which trivially
// guarantees the at-most-once-per-name evaluation discipline. Formulas are
// short pure arithmetic, so contention is not a practical concern; see
// concurrency_test.go for the guarantee under hammering.
//
// Options (applied at construction):
//
//   - WithOnCompute(fn)  observation hook after each formula evaluation;
//     a hook error aborts the active Get.
//   - WithContext(ctx)   cancellation for very deep graphs.
package derive

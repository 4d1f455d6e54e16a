// Package verify implements the independent ("anti-tautology") verification
// path: a small set of target values is recomputed directly from the seed
// store through formulas that are textually and structurally distinct from the
// derivation engine's, and compared against the engine's claimed values.
//
// Why a second path at all?
//
// If verification merely called back into the engine, a bug shared by both
// sides would validate itself. The contract here forbids any code-sharing of
// formula bodies between the two paths for the same target — and goes one
// step further: the independent path runs on a DIFFERENT arithmetic backend
// (robaho/fixed, 7-decimal fixed point) than the engine's decimal context, so
// not even the arithmetic library is shared.
//
// Tolerance discipline:
//
//   - A toleranced check's tolerance is the documented expected residual of
//     the known rounding difference between the two backends — never a number
//     widened until the check passes. A variance outside that band is genuine
//     drift (Reason == DriftDetected), not noise.
//   - Zero-tolerance ("integer closure") checks are expressible purely as
//     exact int64 arithmetic on seeds and use exact equality, never an
//     epsilon, since they have no rounding component.
//
// Residual coupling: an independent path that cannot avoid reusing a fitted
// seed of the primary derivation (rather than deriving it from orthogonal
// seeds) must declare Coupled=true. The flag is carried onto the resulting
// Check so a certificate reader can see which verifications are weakened, and
// the tolerance still covers backend rounding only — a mismatch in the shared
// seed between the two paths fails the check.
//
// Every VerificationCheck is created fresh per run and never mutated after
// creation; callers treat Check as a value.
package verify

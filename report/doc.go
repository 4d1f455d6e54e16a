// Package report aggregates verification check results into one categorical
// status. It is pure classification: no value is recomputed here, and no
// formatting happens here either — this is the seam where human-facing
// presentation layers (console, markdown, JSON pretty-printers) attach, and
// they consume Summary read-only.
//
// Classification thresholds (fixed):
//
//   - PASS      zero failures.
//   - MARGINAL  at most MaxMarginalFailures failures, none of them critical
//     (critical = a zero-tolerance check).
//   - TENSION   anything worse.
package report

// Package axiomat is a deterministic derivation-and-certification engine:
// seed a small set of axiom constants, derive a memoized graph of values
// from them at fixed decimal precision, then independently re-verify and
// cryptographically seal the whole run.
//
// 🚀 What is axiomat?
//
//	A bit-for-bit reproducible numeric pipeline that brings together:
//		• Seed store: named axiom constants, frozen before derivation
//		• Precision context: shared significant-digit and quantization rules
//		• Derivation engine: demand-driven DAG evaluation, at-most-once,
//		  with cycle detection and sticky failures
//		• Independent verifier: recomputes claims on a separate
//		  fixed-point backend, over different formula routes
//		• Certifier: canonical snapshots hashed into a layered
//		  SHA-256 / SHA3-256 certificate digest
//		• Report: a pure pass/marginal/tension summary over the checks
//
// ✨ Why choose axiomat?
//
//   - Deterministic - identical seeds and precision give identical digests,
//     on every platform, every run
//   - Honest checks - verification never reuses the engine's arithmetic,
//     so a shared bug cannot certify itself
//   - Pure Go - no cgo, no build-time code generation
//   - Extensible - register custom formulas, closures and independent
//     paths alongside the built-in catalog
//
// Under the hood, everything is organized under seven subpackages:
//
//	numctx/  — fixed-precision decimal context, parsing & canonical strings
//	seed/    — frozen store of named axiom constants
//	derive/  — memoized derivation engine over a formula DAG
//	verify/  — independent recomputation and closure checks
//	certify/ — canonical snapshots, layered digests, the certificate
//	report/  — pure summary of check outcomes
//	catalog/ — the canonical seed and formula tables, wired end to end
//
// Quick sketch of a run:
//
//	seeds ──> engine ──> snapshot ──┐
//	  │                             ├──> digest ──> certificate
//	  └──> verifier ──> checks ─────┘
//
// Dive into examples/ for runnable walkthroughs of the catalog pipeline
// and of wiring a custom value graph by hand.
//
//	go get github.com/katalvlaran/axiomat
package axiomat

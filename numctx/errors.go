// SPDX-License-Identifier: MIT
// Package: axiomat/numctx
//
// errors.go — sentinel errors for the numctx package.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Sentinels are NEVER wrapped with formatted strings at definition site;
//     implementations attach context using %w at the call site.

package numctx

import "errors"

// ErrBadPrecision indicates that the requested significant-digit count is
// outside the supported range (see MinPrecision / MaxPrecision).
// Classification: validation error (construction parameters).
// Usage: if errors.Is(err, ErrBadPrecision) { /* reject configuration */ }.
var ErrBadPrecision = errors.New("numctx: precision out of range")

// ErrBadQuantum indicates that the requested decimal-place count for
// quantization is outside the supported range (see MinPlaces / MaxPlaces).
// Usage: if errors.Is(err, ErrBadQuantum) { /* reject configuration */ }.
var ErrBadQuantum = errors.New("numctx: quantization places out of range")

// ErrArithmeticFatal indicates that a trapped arithmetic condition fired
// (overflow, underflow, invalid operation, impossible or undefined division).
// A value produced under such a condition is corrupted by definition; callers
// MUST abort the enclosing certification run rather than continue.
// Usage: if errors.Is(err, ErrArithmeticFatal) { /* abort the run */ }.
var ErrArithmeticFatal = errors.New("numctx: fatal arithmetic condition")

// ErrNilOperand indicates that a nil *apd.Decimal was passed to an arithmetic
// or quantization operation.
// Usage: if errors.Is(err, ErrNilOperand) { /* fix the caller */ }.
var ErrNilOperand = errors.New("numctx: nil operand")

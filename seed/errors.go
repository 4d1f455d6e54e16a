// SPDX-License-Identifier: MIT
// Package: axiomat/seed
//
// errors.go — sentinel errors for the seed package.
// Callers branch with errors.Is; context is attached via %w at call sites.

package seed

import "errors"

// ErrDuplicateSeed indicates an attempt to bind a seed name that is already
// bound. Seeds are axiomatic: a second binding is a configuration defect, not
// an update.
// Usage: if errors.Is(err, ErrDuplicateSeed) { /* fix the catalog */ }.
var ErrDuplicateSeed = errors.New("seed: duplicate seed")

// ErrUnknownSeed indicates a Get/Int64 for a name that was never bound.
// Usage: if errors.Is(err, ErrUnknownSeed) { /* fix the reference */ }.
var ErrUnknownSeed = errors.New("seed: unknown seed")

// ErrStoreFrozen indicates a Set after Freeze. Initialization is over; the
// store is read-only for the remainder of the process.
// Usage: if errors.Is(err, ErrStoreFrozen) { /* move the Set earlier */ }.
var ErrStoreFrozen = errors.New("seed: store is frozen")

// ErrNotInteger indicates an Int64 accessor call on a seed that carries a
// fractional part. Exact-integer closure checks must never silently truncate.
// Usage: if errors.Is(err, ErrNotInteger) { /* wrong seed for this check */ }.
var ErrNotInteger = errors.New("seed: seed is not an exact integer")

// ErrEmptyName indicates a Set with an empty seed name.
var ErrEmptyName = errors.New("seed: empty seed name")

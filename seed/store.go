// SPDX-License-Identifier: MIT
// Package: axiomat/seed
//
// store.go — the write-once-then-frozen seed store.

package seed

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cockroachdb/apd/v3"

	"github.com/katalvlaran/axiomat/numctx"
)

// Store holds the axiomatic inputs. Construct with NewStore; bind seeds with
// Set during initialization; call Freeze before handing the store to any
// downstream component.
type Store struct {
	mu     sync.RWMutex
	ctx    *numctx.Context
	values map[string]*apd.Decimal
	frozen bool
}

// NewStore creates an empty, unfrozen store whose literals are parsed under
// ctx. ctx must be non-nil; this is enforced by panic because a nil context is
// a wiring bug, not runtime data.
func NewStore(ctx *numctx.Context) *Store {
	if ctx == nil {
		panic("seed: NewStore requires a non-nil numctx.Context")
	}

	return &Store{
		ctx:    ctx,
		values: make(map[string]*apd.Decimal),
	}
}

// Set binds name to the decimal literal, parsing it under the store's context.
// Errors:
//   - ErrEmptyName               name is empty.
//   - ErrStoreFrozen             initialization is over.
//   - ErrDuplicateSeed           name already bound.
//   - numctx.ErrArithmeticFatal  literal does not parse.
func (s *Store) Set(name, literal string) error {
	// 1. Validate the name before touching any state.
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 2. The freeze check precedes the duplicate check: a late Set must fail
	//    for being late even when the name is new.
	if s.frozen {
		return fmt.Errorf("%w: Set(%q)", ErrStoreFrozen, name)
	}
	if _, exists := s.values[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSeed, name)
	}

	// 3. Parse exactly once, at the door.
	d, err := s.ctx.Parse(literal)
	if err != nil {
		return fmt.Errorf("seed: Set(%q): %w", name, err)
	}
	s.values[name] = d

	return nil
}

// Freeze ends initialization. Idempotent; every Set afterwards fails with
// ErrStoreFrozen.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Frozen reports whether initialization has ended.
func (s *Store) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.frozen
}

// Get returns an independent copy of the named seed value.
// Returning a copy keeps the store's values unreachable for mutation: apd
// decimals are mutable in place, and a caller writing through a shared pointer
// would corrupt the axioms for everyone after.
func (s *Store) Get(name string) (*apd.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeed, name)
	}

	return new(apd.Decimal).Set(v), nil
}

// Int64 returns the named seed as an exact int64.
// Errors: ErrUnknownSeed; ErrNotInteger when the seed carries a fractional
// part or exceeds the int64 range. Exact-integer closure checks go through
// this accessor so truncation can never masquerade as equality.
func (s *Store) Int64(name string) (int64, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	i, err := v.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrNotInteger, name, err)
	}

	return i, nil
}

// Has reports whether name is bound, without copying the value.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.values[name]

	return ok
}

// Names returns all bound seed names in sorted order. Sorted iteration is a
// repository-wide rule: every externally observable ordering is deterministic.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.values))
	for n := range s.values {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Context returns the precision context seeds were parsed under.
func (s *Store) Context() *numctx.Context { return s.ctx }

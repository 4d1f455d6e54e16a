// SPDX-License-Identifier: MIT
// Package: axiomat/certify
//
// certifier.go — the certification pipeline. Certify is the only entry point;
// every failure path aborts before a Certificate exists.

package certify

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"github.com/katalvlaran/axiomat/derive"
	"github.com/katalvlaran/axiomat/seed"
	"github.com/katalvlaran/axiomat/verify"
)

var (
	// ErrNilComponent is returned when Certify receives a nil engine, store
	// or verifier.
	ErrNilComponent = errors.New("certify: nil component")

	// ErrEmptyManifest is returned when the manifest has no version or names
	// nothing at all. An empty snapshot would certify nothing.
	ErrEmptyManifest = errors.New("certify: empty manifest")
)

// Certify runs the full certification pipeline over the supplied components.
// See the package documentation for the pipeline stages.
//
// Errors abort with no certificate: ErrNilComponent, ErrEmptyManifest, any
// structural error from the engine or store (derive.ErrUnknownName,
// derive.ErrCycleDetected, seed.ErrUnknownSeed, ...), any
// numctx.ErrArithmeticFatal, and structural verifier failures. A FAILED CHECK
// is not an error: it yields a COMPROMISED certificate.
func Certify(e *derive.Engine, s *seed.Store, v *verify.Verifier, m Manifest) (*Certificate, error) {
	// 1. Wiring and manifest validation.
	if e == nil || s == nil || v == nil {
		return nil, ErrNilComponent
	}
	if m.Version == "" || (len(m.Seeds) == 0 && len(m.Derived) == 0) {
		return nil, fmt.Errorf("%w: version=%q seeds=%d derived=%d",
			ErrEmptyManifest, m.Version, len(m.Seeds), len(m.Derived))
	}

	nctx := e.Context()

	// 2. Snapshot the seeds (block A inputs). Quantization through the shared
	//    context is what makes the snapshot machine-independent.
	seedEntries := make([]SnapshotEntry, 0, len(m.Seeds))
	for _, name := range m.Seeds {
		val, err := s.Get(name)
		if err != nil {
			return nil, fmt.Errorf("certify: seed snapshot: %w", err)
		}
		canon, err := nctx.CanonicalString(val)
		if err != nil {
			return nil, fmt.Errorf("certify: seed snapshot %q: %w", name, err)
		}
		seedEntries = append(seedEntries, SnapshotEntry{Name: name, Value: canon})
	}

	// 3. Snapshot the derived values (block B inputs), forcing computation.
	//    Cycles and arithmetic traps surface here and abort everything.
	derivedEntries := make([]SnapshotEntry, 0, len(m.Derived))
	for _, name := range m.Derived {
		val, err := e.Get(name)
		if err != nil {
			return nil, fmt.Errorf("certify: derived snapshot: %w", err)
		}
		canon, err := nctx.CanonicalString(val)
		if err != nil {
			return nil, fmt.Errorf("certify: derived snapshot %q: %w", name, err)
		}
		derivedEntries = append(derivedEntries, SnapshotEntry{Name: name, Value: canon})
	}

	// 4. Run the verification set: integer closures plus every registered
	//    independent-path target, claims supplied from the engine's cache.
	checks, err := v.RunClosures()
	if err != nil {
		return nil, fmt.Errorf("certify: closures: %w", err)
	}
	for _, target := range v.Targets() {
		claimed, getErr := e.Get(target)
		if getErr != nil {
			return nil, fmt.Errorf("certify: claim for %q: %w", target, getErr)
		}
		chk, vErr := v.Verify(target, claimed)
		if vErr != nil {
			return nil, fmt.Errorf("certify: verify %q: %w", target, vErr)
		}
		checks = append(checks, chk)
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i].Name < checks[j].Name })

	// 5. Canonicalize and digest. Entries are sorted inside canonicalRecords,
	//    so insertion order above cannot influence the digest.
	blockA := sha256.Sum256([]byte(canonicalRecords(seedEntries)))
	blockB := sha256.Sum256([]byte(canonicalRecords(derivedEntries) + "\n" + canonicalChecks(checks)))
	outer := sha3.Sum256(append(blockA[:], blockB[:]...))

	// 6. Verdict and assembly. The certificate is complete or absent, never
	//    partial.
	overall := StatusValid
	for _, chk := range checks {
		if chk.Status == verify.StatusFail {
			overall = StatusCompromised
			break
		}
	}

	cert := &Certificate{
		Version:       m.Version,
		RunID:         uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		Digest:        hex.EncodeToString(outer[:]),
		SeedDigest:    hex.EncodeToString(blockA[:]),
		DerivedDigest: hex.EncodeToString(blockB[:]),
		Seeds:         sortedEntries(seedEntries),
		Derived:       sortedEntries(derivedEntries),
		Checks:        checks,
		Overall:       overall,
	}

	return cert, nil
}

// SPDX-License-Identifier: MIT
// Package: axiomat/certify
//
// certificate.go — certificate and manifest types plus the wire encoding.

package certify

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/katalvlaran/axiomat/verify"
)

// OverallStatus is the certificate-level verdict.
type OverallStatus string

const (
	// StatusValid: every attached verification check passed.
	StatusValid OverallStatus = "VALID"
	// StatusCompromised: at least one check failed; the failing checks are
	// enumerated in the certificate, never collapsed into a bare boolean.
	StatusCompromised OverallStatus = "COMPROMISED"
)

// Manifest is the fixed, versioned list of values included in a snapshot.
// Changing the manifest (names OR version) legitimately changes the digest.
type Manifest struct {
	// Version tags the manifest revision, e.g. "axiomat/1".
	Version string
	// Seeds are seed names to snapshot (block A).
	Seeds []string
	// Derived are derived-value names to snapshot (block B).
	Derived []string
}

// SnapshotEntry is one canonically quantized name/value pair.
type SnapshotEntry struct {
	Name  string
	Value string // canonical decimal string (fixed fraction width)
}

// Certificate is the immutable result of one certification run.
type Certificate struct {
	// Version is the manifest version the snapshot was built from.
	Version string
	// RunID is a per-run uuid. Metadata only: NOT part of the digest.
	RunID string
	// Timestamp is the certification wall time. Metadata only: NOT digested.
	Timestamp time.Time
	// Digest is the hex SHA3-256 fingerprint over blockA ‖ blockB.
	Digest string
	// SeedDigest is the hex SHA-256 of the canonical seed records (block A).
	SeedDigest string
	// DerivedDigest is the hex SHA-256 of the canonical derived and check
	// records (block B).
	DerivedDigest string
	// Seeds and Derived are the snapshot entries, sorted by name.
	Seeds   []SnapshotEntry
	Derived []SnapshotEntry
	// Checks are the attached verification verdicts, sorted by name.
	Checks []verify.Check
	// Overall is VALID or COMPROMISED.
	Overall OverallStatus
}

// FailedChecks returns the names of failing checks, preserving sort order.
func (c *Certificate) FailedChecks() []string {
	var failed []string
	for _, chk := range c.Checks {
		if chk.Status == verify.StatusFail {
			failed = append(failed, chk.Name)
		}
	}

	return failed
}

// ErrNilCertificate is returned when marshaling a nil certificate.
var ErrNilCertificate = errors.New("certify: nil certificate")

// Wire types. Maps are used for the keyed sections; encoding/json emits map
// keys sorted, which keeps the wire form deterministic too.
type wireMetadata struct {
	Version   string `json:"version"`
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
	Digest    string `json:"digest"`
	SeedHash  string `json:"seed_block_sha256"`
	ValueHash string `json:"derived_block_sha256"`
}

type wireCheck struct {
	Description string      `json:"description,omitempty"`
	Computed    json.Number `json:"computed"`
	Target      json.Number `json:"target"`
	Tolerance   json.Number `json:"tolerance"`
	Variance    json.Number `json:"variance"`
	Status      string      `json:"status"`
	Reason      string      `json:"reason,omitempty"`
	Coupled     bool        `json:"coupled,omitempty"`
}

type wireSnapshot struct {
	Seeds   map[string]json.Number `json:"seeds"`
	Derived map[string]json.Number `json:"derived"`
}

type wireCertificate struct {
	Metadata      wireMetadata         `json:"metadata"`
	Snapshot      wireSnapshot         `json:"snapshot"`
	Checks        map[string]wireCheck `json:"checks"`
	OverallStatus string               `json:"overall_status"`
}

// MarshalJSON emits the certificate wire schema:
//
//	{
//	  "metadata": { "version", "run_id", "timestamp", "digest", ... },
//	  "snapshot": { "seeds": {...}, "derived": {...} },
//	  "checks":   { <name>: { "computed", "target", "tolerance",
//	                          "variance", "status", ... }, ... },
//	  "overall_status": "VALID" | "COMPROMISED"
//	}
//
// Numeric fields are emitted as JSON numbers carrying the exact canonical
// digits (json.Number, no float round-trip).
func (c *Certificate) MarshalJSON() ([]byte, error) {
	if c == nil {
		return nil, ErrNilCertificate
	}

	w := wireCertificate{
		Metadata: wireMetadata{
			Version:   c.Version,
			RunID:     c.RunID,
			Timestamp: c.Timestamp.UTC().Format(time.RFC3339),
			Digest:    c.Digest,
			SeedHash:  c.SeedDigest,
			ValueHash: c.DerivedDigest,
		},
		Snapshot: wireSnapshot{
			Seeds:   make(map[string]json.Number, len(c.Seeds)),
			Derived: make(map[string]json.Number, len(c.Derived)),
		},
		Checks:        make(map[string]wireCheck, len(c.Checks)),
		OverallStatus: string(c.Overall),
	}
	for _, e := range c.Seeds {
		w.Snapshot.Seeds[e.Name] = json.Number(e.Value)
	}
	for _, e := range c.Derived {
		w.Snapshot.Derived[e.Name] = json.Number(e.Value)
	}
	for _, chk := range c.Checks {
		w.Checks[chk.Name] = wireCheck{
			Description: chk.Description,
			Computed:    json.Number(chk.Computed),
			Target:      json.Number(chk.Target),
			Tolerance:   json.Number(chk.Tolerance),
			Variance:    json.Number(chk.Variance),
			Status:      string(chk.Status),
			Reason:      chk.Reason,
			Coupled:     chk.Coupled,
		}
	}

	return json.Marshal(w)
}

// SPDX-License-Identifier: MIT
// Package: axiomat/certify
//
// canonical.go — the byte-exact canonical serialization that digests are
// computed over. This format is part of the certificate contract: any change
// here is a digest-breaking change and requires a new manifest version.

package certify

import (
	"sort"
	"strings"

	"github.com/katalvlaran/axiomat/verify"
)

// canonicalRecords serializes snapshot entries as "name=value;" records,
// sorted by name. Values are already canonical decimal strings, so the result
// is independent of insertion order and of any incidental formatting.
func canonicalRecords(entries []SnapshotEntry) string {
	sorted := sortedEntries(entries)

	var b strings.Builder
	for _, e := range sorted {
		b.WriteString(e.Name)
		b.WriteByte('=')
		b.WriteString(e.Value)
		b.WriteByte(';')
	}

	return b.String()
}

// canonicalChecks serializes check verdicts as
// "check:name=computed|target|tolerance|status;" records, sorted by name.
// Variance and reason are deliberately excluded: they are derived diagnostics
// of the same comparison, and including them would double-count the inputs.
func canonicalChecks(checks []verify.Check) string {
	sorted := append([]verify.Check(nil), checks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	for _, c := range sorted {
		b.WriteString("check:")
		b.WriteString(c.Name)
		b.WriteByte('=')
		b.WriteString(c.Computed)
		b.WriteByte('|')
		b.WriteString(c.Target)
		b.WriteByte('|')
		b.WriteString(c.Tolerance)
		b.WriteByte('|')
		b.WriteString(string(c.Status))
		b.WriteByte(';')
	}

	return b.String()
}

// sortedEntries returns a name-sorted copy of entries.
func sortedEntries(entries []SnapshotEntry) []SnapshotEntry {
	out := append([]SnapshotEntry(nil), entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

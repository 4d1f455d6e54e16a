// Package certify produces the integrity certificate: a canonical, quantized
// snapshot of selected seeds and derived values, a layered cryptographic
// digest over that snapshot, and the attached verification verdicts.
//
// Pipeline (Certify):
//
//  1. The manifest names a fixed, versioned list of seed and derived values.
//  2. Every named value is fetched and quantized through the precision
//     context; nothing enters a snapshot at intermediate precision.
//  3. The snapshot is serialized canonically: keys sorted, one fixed
//     "name=value;" record per entry. Canonical form is insensitive to
//     insertion order and incidental formatting, and sensitive to any value
//     change.
//  4. Digest layering: block A = SHA-256 over the seed records, block B =
//     SHA-256 over the derived and check records, and the certificate digest
//     is SHA3-256 over A‖B. Tampering with either data class is thereby
//     independently detectable, and the outer fingerprint does not share a
//     hash family with the blocks.
//  5. All verification checks run (independent-path targets and integer
//     closures) and their verdicts are attached.
//  6. Overall status is VALID iff every check passed, otherwise COMPROMISED.
//
// Abort semantics: a structural error (unknown name, cycle) or a fatal
// arithmetic trap anywhere in the pipeline aborts certification with an error
// and NO certificate. A partial certificate over corrupted numbers would be
// worse than none.
//
// Determinism: the digest is a pure function of the canonical snapshot. The
// run id (uuid) and timestamp live in the metadata only and are explicitly
// excluded from the digested bytes.
package certify

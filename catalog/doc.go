// Package catalog binds the concrete, versioned content of the system: the
// seed constants, the formula graph over them, the independent verification
// paths, the integer closures and the certificate manifest. Everything
// upstream of this package is mechanism; catalog is the closed spec table the
// mechanism runs on.
//
// The table is closed on purpose. Names are enumerated here, once, and the
// manifest version tags the enumeration; adding, removing or re-literalling
// any entry is a digest-breaking change and must bump Version.
//
// Build wires a complete System (store, engine, verifier, manifest) from the
// table. Seed literals can be overridden via WithSeedOverride — that is the
// hook the CLI's seed file uses — but overrides may only re-literal EXISTING
// names: the closed table cannot be extended from outside.
package catalog

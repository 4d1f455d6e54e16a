// Package seed implements the write-once store of axiomatic inputs.
//
// Seeds are the ONLY free numeric inputs of the system: every other number a
// downstream component handles must be traceable, through formulas, back to a
// value held here. The store enforces that discipline structurally:
//
//   - Set(name, literal) is permitted only during initialization; once Freeze
//     is called, every further Set fails with ErrStoreFrozen.
//   - A name can be bound exactly once; rebinding fails with ErrDuplicateSeed.
//   - Get(name) of an unbound name fails with ErrUnknownSeed — there are no
//     defaults and no fallbacks.
//
// Literals are parsed under the store's numctx.Context exactly once, at Set,
// so a seed written with surplus digits is normalized at the door rather than
// drifting formula by formula.
//
// Concurrency: Set/Freeze belong to the single-threaded initialization phase;
// after Freeze the store is immutable and safe for unsynchronized concurrent
// reads. A mutex still guards the frozen flag so that a misplaced late Set
// fails cleanly instead of racing.
package seed

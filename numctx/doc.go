// Package numctx defines the fixed-precision arithmetic discipline shared by
// every numeric component of axiomat: the derivation engine, the independent
// verifier and the integrity certifier all route their arithmetic through a
// single immutable Context.
//
// Why a context at all?
//
// The same formula evaluated twice at different internal precisions (or on two
// machines with different default rounding) can silently diverge in its last
// digits. A certificate digest built over such values would not be reproducible.
// Context pins three things once, at construction:
//
//   - Precision: significant digits carried by intermediate arithmetic.
//   - Rounding:  ties-to-even (half-even), always.
//   - Traps:     overflow, underflow, invalid operation and impossible/undefined
//     division are fatal — they surface as ErrArithmeticFatal instead of
//     producing a quietly corrupted value.
//
// Quantization is a separate knob: before a value enters a certificate snapshot
// or an exact-equality check it is rounded to Places decimal places via
// Quantize / CanonicalString. This strips "infinite tail" noise left behind by
// higher-precision intermediate arithmetic, so discrete checks stay discrete.
//
// Errors:
//
//   - ErrBadPrecision      invalid significant-digit count at construction.
//   - ErrBadQuantum        invalid decimal-place count at construction.
//   - ErrArithmeticFatal   a trapped condition fired during an operation.
//   - ErrNilOperand        nil *apd.Decimal passed to an operation.
//
// Determinism:
//
// All operations are pure functions of their operands and the Context
// configuration. Two Contexts constructed with the same (precision, places)
// produce bit-identical results for identical inputs, on any machine.
package numctx

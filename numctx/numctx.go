// SPDX-License-Identifier: MIT
// Package: axiomat/numctx
//
// numctx.go — the immutable precision context and its arithmetic helpers.

package numctx

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Bounds for construction parameters. Precision below 10 digits cannot carry
// the catalog's rational seeds without visible truncation; precision above 100
// serves no certification purpose and only slows evaluation down.
const (
	MinPrecision uint32 = 10
	MaxPrecision uint32 = 100
	MinPlaces    int32  = 0
	MaxPlaces    int32  = 30

	// DefaultPrecision matches IEEE 754-2008 decimal128 significand width,
	// the widest precision with a hardware-specified reference behavior.
	DefaultPrecision uint32 = 34

	// DefaultPlaces is the snapshot quantum: seven decimal places, chosen to
	// equal the resolution of the verifier's fixed-point secondary backend so
	// that the two paths quantize onto the same lattice.
	DefaultPlaces int32 = 7
)

// fatalTraps is the set of conditions that must never produce a value.
// Inexact and Rounded are deliberately NOT trapped: rounding is the normal
// mode of operation at fixed precision.
const fatalTraps = apd.SystemOverflow |
	apd.SystemUnderflow |
	apd.Overflow |
	apd.Underflow |
	apd.InvalidOperation |
	apd.DivisionByZero |
	apd.DivisionImpossible |
	apd.DivisionUndefined

// Context is an immutable fixed-precision arithmetic configuration.
// The zero value is NOT usable; construct via New, MustNew or Default.
// A Context is safe for concurrent use: it is never mutated after New.
type Context struct {
	precision uint32       // significant digits for intermediate arithmetic
	places    int32        // decimal places for quantization
	actx      *apd.Context // configured apd context (rounding, traps)
}

// New constructs a Context carrying `precision` significant digits for
// intermediate arithmetic and quantizing to `places` decimal places.
// Rounding is always ties-to-even; fatal traps are always armed.
//
// Returns ErrBadPrecision or ErrBadQuantum when a parameter is out of range.
func New(precision uint32, places int32) (*Context, error) {
	// 1. Validate construction parameters against the documented bounds.
	if precision < MinPrecision || precision > MaxPrecision {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrBadPrecision, precision, MinPrecision, MaxPrecision)
	}
	if places < MinPlaces || places > MaxPlaces {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrBadQuantum, places, MinPlaces, MaxPlaces)
	}

	// 2. Derive the apd context from BaseContext so exponent bounds stay sane,
	//    then pin rounding and traps. The apd context is private to this
	//    Context and never escapes, which is what makes Context immutable.
	actx := apd.BaseContext.WithPrecision(precision)
	actx.Rounding = apd.RoundHalfEven
	actx.Traps = fatalTraps

	return &Context{precision: precision, places: places, actx: actx}, nil
}

// MustNew is New for static configuration; it panics on invalid parameters.
// Panics are acceptable here for the same reason option-constructor panics are
// acceptable: the arguments are compile-time constants, not runtime data.
func MustNew(precision uint32, places int32) *Context {
	c, err := New(precision, places)
	if err != nil {
		panic(err)
	}

	return c
}

// Default returns a fresh Context with DefaultPrecision and DefaultPlaces.
func Default() *Context {
	return MustNew(DefaultPrecision, DefaultPlaces)
}

// Precision reports the significant-digit count of intermediate arithmetic.
func (c *Context) Precision() uint32 { return c.precision }

// Places reports the decimal-place count used by Quantize/CanonicalString.
func (c *Context) Places() int32 { return c.places }

// Parse converts a decimal literal into a value under this Context.
// The literal is rounded to the working precision on entry, so a seed written
// with more digits than the Context carries is normalized exactly once, here,
// instead of drifting formula by formula.
func (c *Context) Parse(literal string) (*apd.Decimal, error) {
	d, _, err := c.actx.NewFromString(literal)
	if err != nil {
		return nil, fmt.Errorf("numctx: parse %q: %w: %v", literal, ErrArithmeticFatal, err)
	}

	return d, nil
}

// Add returns x + y at the working precision.
func (c *Context) Add(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.binary("add", c.actx.Add, x, y)
}

// Sub returns x - y at the working precision.
func (c *Context) Sub(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.binary("sub", c.actx.Sub, x, y)
}

// Mul returns x * y at the working precision.
func (c *Context) Mul(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.binary("mul", c.actx.Mul, x, y)
}

// Div returns x / y at the working precision.
// Division by zero is a trapped (fatal) condition, not an infinity.
func (c *Context) Div(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.binary("div", c.actx.Quo, x, y)
}

// Neg returns -x.
func (c *Context) Neg(x *apd.Decimal) (*apd.Decimal, error) {
	if x == nil {
		return nil, fmt.Errorf("numctx: neg: %w", ErrNilOperand)
	}
	d := new(apd.Decimal)
	if _, err := c.actx.Neg(d, x); err != nil {
		return nil, fmt.Errorf("numctx: neg: %w: %v", ErrArithmeticFatal, err)
	}

	return d, nil
}

// Abs returns |x|.
func (c *Context) Abs(x *apd.Decimal) (*apd.Decimal, error) {
	if x == nil {
		return nil, fmt.Errorf("numctx: abs: %w", ErrNilOperand)
	}
	d := new(apd.Decimal)
	if _, err := c.actx.Abs(d, x); err != nil {
		return nil, fmt.Errorf("numctx: abs: %w: %v", ErrArithmeticFatal, err)
	}

	return d, nil
}

// Quantize rounds x to the Context's decimal-place quantum, half-even.
// This is the boundary every value must cross before entering a certificate
// snapshot or an exact-equality verification check.
func (c *Context) Quantize(x *apd.Decimal) (*apd.Decimal, error) {
	if x == nil {
		return nil, fmt.Errorf("numctx: quantize: %w", ErrNilOperand)
	}
	d := new(apd.Decimal)
	// Exponent -places fixes exactly `places` fraction digits.
	if _, err := c.actx.Quantize(d, x, -c.places); err != nil {
		return nil, fmt.Errorf("numctx: quantize: %w: %v", ErrArithmeticFatal, err)
	}

	return d, nil
}

// CanonicalString quantizes x and renders it in fixed (non-scientific)
// notation with exactly Places fraction digits. This is the ONLY numeric
// string format permitted inside digests and exact comparisons: one value,
// one spelling.
func (c *Context) CanonicalString(x *apd.Decimal) (string, error) {
	q, err := c.Quantize(x)
	if err != nil {
		return "", err
	}
	// Quantize can legitimately yield "-0.0000000"; normalize the sign so the
	// canonical form of zero is unique.
	if q.IsZero() && q.Negative {
		q.Negative = false
	}

	return q.Text('f'), nil
}

// binary applies one apd two-operand operation with uniform nil-checking and
// trap wrapping. op names the operation for error context.
func (c *Context) binary(
	op string,
	fn func(d, x, y *apd.Decimal) (apd.Condition, error),
	x, y *apd.Decimal,
) (*apd.Decimal, error) {
	// 1. Reject nil operands before apd can panic on them.
	if x == nil || y == nil {
		return nil, fmt.Errorf("numctx: %s: %w", op, ErrNilOperand)
	}
	// 2. Execute under the configured precision/rounding/traps.
	d := new(apd.Decimal)
	if _, err := fn(d, x, y); err != nil {
		// 3. A non-nil error here means a trapped condition fired; surface it
		//    as the fatal sentinel so callers abort the certification run.
		return nil, fmt.Errorf("numctx: %s: %w: %v", op, ErrArithmeticFatal, err)
	}

	return d, nil
}

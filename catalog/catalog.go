// SPDX-License-Identifier: MIT
// Package: axiomat/catalog
//
// catalog.go — the closed tables: seeds, formulas, verification paths,
// closures, manifest. No evaluation logic lives here; see build.go.

package catalog

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/robaho/fixed"

	"github.com/katalvlaran/axiomat/certify"
	"github.com/katalvlaran/axiomat/derive"
	"github.com/katalvlaran/axiomat/numctx"
	"github.com/katalvlaran/axiomat/seed"
	"github.com/katalvlaran/axiomat/verify"
)

// Version tags this revision of the catalog tables. Any change to a seed
// literal, a formula, a tolerance or the manifest lists bumps it.
const Version = "axiomat/1"

// Seed names. Exported so consumers reference seeds by constant, not by
// string literal; the compiler then catches a misspelled name.
const (
	SeedBase     = "base"     // 72   — the dimensionless baseline
	SeedQuadrant = "quadrant" // 4    — fold count of the closure identity
	SeedSector   = "sector"   // 163  — numerator of the sector ratio
	SeedDivisor  = "divisor"  // 144  — common divisor of the ratio family
	SeedJoint    = "joint"    // 153  — joint count, exact integer
	SeedAxis     = "axis"     // 135  — axis count, exact integer
	SeedLattice  = "lattice"  // 288  — exact integer closure total
	SeedDrag     = "drag"     // 0.6819 — fitted drag correction (see Coupled)
)

// Derived value names.
const (
	ValRatio        = "ratio"         // sector / divisor
	ValHeight       = "height"        // base - ratio + drag
	ValClosure      = "closure"       // quadrant * (height - drag + ratio)
	ValPitch        = "pitch"         // joint / divisor
	ValInversePitch = "inverse_pitch" // divisor / joint
	ValInterval     = "interval"      // height / base
	ValOctaveSpan   = "octave_span"   // lattice / divisor
	ValAxisSum      = "axis_sum"      // axis + joint
	ValMidpoint     = "midpoint"      // axis_sum / quadrant
)

// seedTable is the single source of every free numeric input.
var seedTable = []struct {
	Name    string
	Literal string
}{
	{SeedBase, "72"},
	{SeedQuadrant, "4"},
	{SeedSector, "163"},
	{SeedDivisor, "144"},
	{SeedJoint, "153"},
	{SeedAxis, "135"},
	{SeedLattice, "288"},
	{SeedDrag, "0.6819"},
}

// formulaTable declares the derivation DAG. Order here is irrelevant: the
// engine resolves by dependency, not by declaration.
var formulaTable = []derive.FormulaSpec{
	{
		ID:      "ratio",
		Inputs:  []string{SeedSector, SeedDivisor},
		Outputs: []string{ValRatio},
		Eval:    evalDiv,
	},
	{
		ID:      "height",
		Inputs:  []string{SeedBase, ValRatio, SeedDrag},
		Outputs: []string{ValHeight},
		Eval:    evalHeight,
	},
	{
		ID:      "closure",
		Inputs:  []string{SeedQuadrant, ValHeight, SeedDrag, ValRatio},
		Outputs: []string{ValClosure},
		Eval:    evalClosure,
	},
	{
		ID:      "pitch_pair",
		Inputs:  []string{SeedJoint, SeedDivisor},
		Outputs: []string{ValPitch, ValInversePitch},
		Eval:    evalPitchPair,
	},
	{
		ID:      "interval",
		Inputs:  []string{ValHeight, SeedBase},
		Outputs: []string{ValInterval},
		Eval:    evalDiv,
	},
	{
		ID:      "octave_span",
		Inputs:  []string{SeedLattice, SeedDivisor},
		Outputs: []string{ValOctaveSpan},
		Eval:    evalDiv,
	},
	{
		ID:      "axis_sum",
		Inputs:  []string{SeedAxis, SeedJoint},
		Outputs: []string{ValAxisSum},
		Eval:    evalAdd,
	},
	{
		ID:      "midpoint",
		Inputs:  []string{ValAxisSum, SeedQuadrant},
		Outputs: []string{ValMidpoint},
		Eval:    evalDiv,
	},
}

// pathTable declares the independent verification routes. Each Recompute
// touches the seed store ONLY, runs on the fixed-point backend, and shares no
// formula body with the engine's route to the same target.
var pathTable = []verify.IndependentPath{
	{
		Target: ValHeight,
		Description: "height recomputed from seeds on the fixed-point backend; " +
			"reuses the fitted drag seed (no orthogonal route to drag exists)",
		// The documented residual: the fixed backend resolves 7 decimal
		// places, so the two routes may disagree by one unit in the 6th
		// place after independent rounding of the non-terminating ratio.
		Tolerance: "0.000001",
		Coupled:   true,
		Recompute: recomputeHeight,
	},
	{
		Target: ValClosure,
		Description: "closure verified against the algebraic identity " +
			"quadrant*base, which the primary chain never uses",
		// Algebraically forced: (height - drag + ratio) == base holds as an
		// identity, so the two routes must agree exactly after quantization.
		Tolerance: "0",
		Coupled:   false,
		Recompute: recomputeClosure,
	},
	{
		Target: ValMidpoint,
		Description: "midpoint verified as exact integer division of the " +
			"lattice total by the quadrant count",
		Tolerance: "0",
		Coupled:   false,
		Recompute: recomputeMidpoint,
	},
}

// closureTable declares the exact-integer closures. These never invent a
// number: totals are themselves seeds.
var closureTable = []verify.ClosureSpec{
	{
		Name:        "axis_joint_sum",
		Description: "axis + joint must equal lattice exactly",
		Addends:     []string{SeedAxis, SeedJoint},
		Total:       SeedLattice,
	},
	{
		Name:        "quadrant_base_product",
		Description: "quadrant * base must equal lattice exactly",
		Factors:     []string{SeedQuadrant, SeedBase},
		Total:       SeedLattice,
	},
}

// manifestSeeds / manifestDerived list what a certificate snapshots.
var (
	manifestSeeds = []string{
		SeedAxis, SeedBase, SeedDivisor, SeedDrag,
		SeedJoint, SeedLattice, SeedQuadrant, SeedSector,
	}
	manifestDerived = []string{
		ValAxisSum, ValClosure, ValHeight, ValInterval,
		ValInversePitch, ValMidpoint, ValOctaveSpan, ValPitch, ValRatio,
	}
)

// Manifest returns the versioned snapshot manifest for this catalog revision.
func Manifest() certify.Manifest {
	return certify.Manifest{
		Version: Version,
		Seeds:   append([]string(nil), manifestSeeds...),
		Derived: append([]string(nil), manifestDerived...),
	}
}

// ---- primary-path evaluation rules (decimal backend) ----

// evalDiv: out = in[0] / in[1].
func evalDiv(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
	q, err := ctx.Div(in[0], in[1])
	if err != nil {
		return nil, err
	}

	return []*apd.Decimal{q}, nil
}

// evalAdd: out = in[0] + in[1].
func evalAdd(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
	s, err := ctx.Add(in[0], in[1])
	if err != nil {
		return nil, err
	}

	return []*apd.Decimal{s}, nil
}

// evalHeight: height = base - ratio + drag.
func evalHeight(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
	d, err := ctx.Sub(in[0], in[1])
	if err != nil {
		return nil, err
	}
	h, err := ctx.Add(d, in[2])
	if err != nil {
		return nil, err
	}

	return []*apd.Decimal{h}, nil
}

// evalClosure: closure = quadrant * (height - drag + ratio). The inner sum
// algebraically reconstructs base; the formula deliberately walks back through
// the forward chain instead of shortcutting to the identity, so a drag or
// ratio inconsistency between the two chains cannot cancel silently.
func evalClosure(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
	quadrant, height, drag, ratio := in[0], in[1], in[2], in[3]

	d, err := ctx.Sub(height, drag)
	if err != nil {
		return nil, err
	}
	s, err := ctx.Add(d, ratio)
	if err != nil {
		return nil, err
	}
	c, err := ctx.Mul(quadrant, s)
	if err != nil {
		return nil, err
	}

	return []*apd.Decimal{c}, nil
}

// evalPitchPair: pitch = joint / divisor, inverse_pitch = divisor / joint.
func evalPitchPair(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
	p, err := ctx.Div(in[0], in[1])
	if err != nil {
		return nil, err
	}
	inv, err := ctx.Div(in[1], in[0])
	if err != nil {
		return nil, err
	}

	return []*apd.Decimal{p, inv}, nil
}

// ---- independent-path recomputations (fixed-point backend) ----

// seedFixed loads a seed onto the fixed backend via its exact decimal text.
func seedFixed(s *seed.Store, name string) (fixed.Fixed, error) {
	d, err := s.Get(name)
	if err != nil {
		return fixed.ZERO, err
	}
	f, err := fixed.NewSErr(d.Text('f'))
	if err != nil {
		return fixed.ZERO, err
	}

	return f, nil
}

// recomputeHeight: base - sector/divisor + drag, in fixed-point.
func recomputeHeight(s *seed.Store) (fixed.Fixed, error) {
	base, err := seedFixed(s, SeedBase)
	if err != nil {
		return fixed.ZERO, err
	}
	sector, err := seedFixed(s, SeedSector)
	if err != nil {
		return fixed.ZERO, err
	}
	divisor, err := seedFixed(s, SeedDivisor)
	if err != nil {
		return fixed.ZERO, err
	}
	drag, err := seedFixed(s, SeedDrag)
	if err != nil {
		return fixed.ZERO, err
	}

	return base.Sub(sector.Div(divisor)).Add(drag), nil
}

// recomputeClosure: quadrant * base — the algebraic identity, untouched by
// the forward chain.
func recomputeClosure(s *seed.Store) (fixed.Fixed, error) {
	quadrant, err := s.Int64(SeedQuadrant)
	if err != nil {
		return fixed.ZERO, err
	}
	base, err := s.Int64(SeedBase)
	if err != nil {
		return fixed.ZERO, err
	}

	return fixed.NewI(quadrant*base, 0), nil
}

// recomputeMidpoint: lattice / quadrant as exact integer division.
func recomputeMidpoint(s *seed.Store) (fixed.Fixed, error) {
	lattice, err := s.Int64(SeedLattice)
	if err != nil {
		return fixed.ZERO, err
	}
	quadrant, err := s.Int64(SeedQuadrant)
	if err != nil {
		return fixed.ZERO, err
	}
	// Exact integer division when it divides evenly; otherwise fall back to
	// fixed-point division (and let the zero-tolerance comparison fail, which
	// is the correct verdict for a non-integral midpoint claim).
	if quadrant != 0 && lattice%quadrant == 0 {
		return fixed.NewI(lattice/quadrant, 0), nil
	}

	return fixed.NewI(lattice, 0).Div(fixed.NewI(quadrant, 0)), nil
}

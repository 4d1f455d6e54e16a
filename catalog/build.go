// SPDX-License-Identifier: MIT
// Package: axiomat/catalog
//
// build.go — wiring the closed tables into a runnable System.

package catalog

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/axiomat/certify"
	"github.com/katalvlaran/axiomat/derive"
	"github.com/katalvlaran/axiomat/numctx"
	"github.com/katalvlaran/axiomat/report"
	"github.com/katalvlaran/axiomat/seed"
	"github.com/katalvlaran/axiomat/verify"
)

// ErrUnknownOverride is returned by Build when a seed override names a seed
// that is not in the catalog table. The table is closed: overrides re-literal
// existing seeds, they never add new ones.
var ErrUnknownOverride = errors.New("catalog: override for unknown seed")

// System is a fully wired derivation-and-certification setup.
type System struct {
	Context  *numctx.Context
	Seeds    *seed.Store
	Engine   *derive.Engine
	Verifier *verify.Verifier
	Manifest certify.Manifest
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	overrides  map[string]string
	engineOpts []derive.Option
}

// WithSeedOverride re-literals one existing catalog seed. Repeatable; the
// last override for a name wins. Unknown names fail Build with
// ErrUnknownOverride.
func WithSeedOverride(name, literal string) Option {
	return func(o *buildOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]string)
		}
		o.overrides[name] = literal
	}
}

// WithEngineOptions forwards options (hooks, cancellation) to the engine.
func WithEngineOptions(opts ...derive.Option) Option {
	return func(o *buildOptions) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// Build wires the catalog tables into a System under the given precision
// context. Errors are structural: an override for an unknown seed, an
// unparseable literal, or a table inconsistency (which would be a defect in
// this package, not in the caller).
func Build(nctx *numctx.Context, opts ...Option) (*System, error) {
	if nctx == nil {
		nctx = numctx.Default()
	}
	var o buildOptions
	for _, fn := range opts {
		fn(&o)
	}

	// 1. Overrides must hit existing table entries.
	known := make(map[string]struct{}, len(seedTable))
	for _, row := range seedTable {
		known[row.Name] = struct{}{}
	}
	for name := range o.overrides {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOverride, name)
		}
	}

	// 2. Seed store: table literals, overrides applied, then frozen.
	seeds := seed.NewStore(nctx)
	for _, row := range seedTable {
		literal := row.Literal
		if ov, ok := o.overrides[row.Name]; ok {
			literal = ov
		}
		if err := seeds.Set(row.Name, literal); err != nil {
			return nil, fmt.Errorf("catalog: seed %q: %w", row.Name, err)
		}
	}
	seeds.Freeze()

	// 3. Engine over the formula table.
	engine := derive.New(nctx, seeds, o.engineOpts...)
	for _, fs := range formulaTable {
		if err := engine.Register(fs); err != nil {
			return nil, fmt.Errorf("catalog: formula %q: %w", fs.ID, err)
		}
	}

	// 4. Verifier over the path and closure tables.
	verifier := verify.New(nctx, seeds)
	for _, p := range pathTable {
		if err := verifier.RegisterPath(p); err != nil {
			return nil, fmt.Errorf("catalog: path %q: %w", p.Target, err)
		}
	}
	for _, c := range closureTable {
		if err := verifier.AddClosure(c); err != nil {
			return nil, fmt.Errorf("catalog: closure %q: %w", c.Name, err)
		}
	}

	return &System{
		Context:  nctx,
		Seeds:    seeds,
		Engine:   engine,
		Verifier: verifier,
		Manifest: Manifest(),
	}, nil
}

// Certify runs the full certification pipeline over the system.
func (s *System) Certify() (*certify.Certificate, error) {
	return certify.Certify(s.Engine, s.Seeds, s.Verifier, s.Manifest)
}

// Summarize classifies a certificate's checks with the fixed report
// thresholds. Convenience for boundary layers.
func (s *System) Summarize(cert *certify.Certificate) report.Summary {
	if cert == nil {
		return report.Summary{}
	}

	return report.Summarize(cert.Checks)
}

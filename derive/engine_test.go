package derive_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/axiomat/derive"
	"github.com/katalvlaran/axiomat/numctx"
	"github.com/katalvlaran/axiomat/seed"
)

// newFixture builds a store with the standard integer seeds and an engine.
func newFixture(t *testing.T, opts ...derive.Option) (*seed.Store, *derive.Engine) {
	t.Helper()

	nctx := numctx.Default()
	s := seed.NewStore(nctx)
	require.NoError(t, s.Set("sector", "163"))
	require.NoError(t, s.Set("divisor", "144"))
	require.NoError(t, s.Set("drag", "0.6819"))
	s.Freeze()

	return s, derive.New(nctx, s, opts...)
}

// div is a two-input one-output EvalFunc: out = in[0] / in[1].
func div(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
	q, err := ctx.Div(in[0], in[1])
	if err != nil {
		return nil, err
	}

	return []*apd.Decimal{q}, nil
}

func canon(t *testing.T, e *derive.Engine, name string) string {
	t.Helper()
	v, err := e.Get(name)
	require.NoError(t, err)
	s, err := e.Context().CanonicalString(v)
	require.NoError(t, err)

	return s
}

func TestRegister_Validation(t *testing.T) {
	_, e := newFixture(t)

	assert.ErrorIs(t, e.Register(derive.FormulaSpec{ID: "", Outputs: []string{"x"}, Eval: div}),
		derive.ErrBadFormula)
	assert.ErrorIs(t, e.Register(derive.FormulaSpec{ID: "f", Outputs: nil, Eval: div}),
		derive.ErrBadFormula)
	assert.ErrorIs(t, e.Register(derive.FormulaSpec{ID: "f", Outputs: []string{"x"}}),
		derive.ErrBadFormula)
	assert.ErrorIs(t, e.Register(derive.FormulaSpec{ID: "f", Inputs: []string{""}, Outputs: []string{"x"}, Eval: div}),
		derive.ErrBadFormula)
}

func TestRegister_DuplicateBinding(t *testing.T) {
	_, e := newFixture(t)

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "ratio", Inputs: []string{"sector", "divisor"}, Outputs: []string{"ratio"}, Eval: div,
	}))
	err := e.Register(derive.FormulaSpec{
		ID: "ratio2", Inputs: []string{"sector", "divisor"}, Outputs: []string{"ratio"}, Eval: div,
	})
	assert.ErrorIs(t, err, derive.ErrDuplicateBinding)
}

func TestRegister_SeedShadowRejected(t *testing.T) {
	_, e := newFixture(t)

	err := e.Register(derive.FormulaSpec{
		ID: "shadow", Inputs: []string{"sector", "divisor"}, Outputs: []string{"drag"}, Eval: div,
	})
	assert.ErrorIs(t, err, derive.ErrDuplicateBinding)
}

func TestGet_SeedPassThrough(t *testing.T) {
	_, e := newFixture(t)
	assert.Equal(t, "163.0000000", canon(t, e, "sector"))
}

func TestGet_UnknownName(t *testing.T) {
	_, e := newFixture(t)
	_, err := e.Get("nonesuch")
	assert.ErrorIs(t, err, derive.ErrUnknownName)
}

func TestGet_ChainAndMemoization(t *testing.T) {
	_, e := newFixture(t)
	evals := 0

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "ratio",
		Inputs:  []string{"sector", "divisor"},
		Outputs: []string{"ratio"},
		Eval: func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
			evals++
			return div(ctx, in)
		},
	}))
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "drag_ratio",
		Inputs:  []string{"ratio", "drag"},
		Outputs: []string{"drag_ratio"},
		Eval: func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
			p, err := ctx.Mul(in[0], in[1])
			if err != nil {
				return nil, err
			}
			return []*apd.Decimal{p}, nil
		},
	}))

	// Requesting the downstream value forces the upstream formula exactly once.
	first := canon(t, e, "drag_ratio")
	assert.Equal(t, 1, evals, "upstream formula evaluated once")

	// Determinism: repeated Gets are bit-identical and hit the cache.
	second := canon(t, e, "drag_ratio")
	assert.Equal(t, first, second)
	assert.Equal(t, "0.7718729", first) // 163/144 * 0.6819, 7 places half-even
	_ = canon(t, e, "ratio")
	assert.Equal(t, 1, evals, "memoized: no recomputation on any later Get")
}

func TestGet_MultiOutputFormula(t *testing.T) {
	_, e := newFixture(t)
	evals := 0

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "ratio_pair",
		Inputs:  []string{"sector", "divisor"},
		Outputs: []string{"ratio", "inverse_ratio"},
		Eval: func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
			evals++
			r, err := ctx.Div(in[0], in[1])
			if err != nil {
				return nil, err
			}
			inv, err := ctx.Div(in[1], in[0])
			if err != nil {
				return nil, err
			}
			return []*apd.Decimal{r, inv}, nil
		},
	}))

	assert.Equal(t, "1.1319444", canon(t, e, "ratio"))
	assert.Equal(t, "0.8834356", canon(t, e, "inverse_ratio"))
	assert.Equal(t, 1, evals, "one evaluation serves every output")
}

func TestGet_CycleDetected(t *testing.T) {
	_, e := newFixture(t)

	identity := func(_ *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
		return []*apd.Decimal{in[0]}, nil
	}
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "a_from_b", Inputs: []string{"b"}, Outputs: []string{"a"}, Eval: identity,
	}))
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "b_from_a", Inputs: []string{"a"}, Outputs: []string{"b"}, Eval: identity,
	}))

	_, err := e.Get("a")
	require.ErrorIs(t, err, derive.ErrCycleDetected)
	assert.Contains(t, err.Error(), "a -> b -> a", "error must identify the cycle")

	// The other entry point reports the same structural defect.
	_, err = e.Get("b")
	assert.ErrorIs(t, err, derive.ErrCycleDetected)
}

func TestGet_SelfCycle(t *testing.T) {
	_, e := newFixture(t)

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "ouroboros",
		Inputs:  []string{"loop"},
		Outputs: []string{"loop"},
		Eval: func(_ *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
			return []*apd.Decimal{in[0]}, nil
		},
	}))

	_, err := e.Get("loop")
	assert.ErrorIs(t, err, derive.ErrCycleDetected)
}

func TestGet_EvalErrorIsSticky(t *testing.T) {
	_, e := newFixture(t)
	boom := errors.New("intentional failure")
	evals := 0

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "broken",
		Outputs: []string{"broken"},
		Eval: func(_ *numctx.Context, _ []*apd.Decimal) ([]*apd.Decimal, error) {
			evals++
			return nil, boom
		},
	}))

	_, err := e.Get("broken")
	require.ErrorIs(t, err, boom)
	_, err = e.Get("broken")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, evals, "failed cells must not re-evaluate")
}

func TestGet_ArithmeticFatalPropagates(t *testing.T) {
	_, e := newFixture(t)

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "div_zero",
		Inputs:  []string{"sector"},
		Outputs: []string{"poisoned"},
		Eval: func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
			zero, err := ctx.Parse("0")
			if err != nil {
				return nil, err
			}
			q, err := ctx.Div(in[0], zero)
			if err != nil {
				return nil, err
			}
			return []*apd.Decimal{q}, nil
		},
	}))

	_, err := e.Get("poisoned")
	assert.ErrorIs(t, err, numctx.ErrArithmeticFatal)
}

func TestGet_ArityMismatch(t *testing.T) {
	_, e := newFixture(t)

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "short",
		Outputs: []string{"x", "y"},
		Eval: func(ctx *numctx.Context, _ []*apd.Decimal) ([]*apd.Decimal, error) {
			one, err := ctx.Parse("1")
			if err != nil {
				return nil, err
			}
			return []*apd.Decimal{one}, nil // declared 2, produced 1
		},
	}))

	_, err := e.Get("x")
	assert.ErrorIs(t, err, derive.ErrArityMismatch)
}

func TestHas_NoForcing(t *testing.T) {
	_, e := newFixture(t)
	evals := 0

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "lazy",
		Inputs:  []string{"sector", "divisor"},
		Outputs: []string{"lazy"},
		Eval: func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
			evals++
			return div(ctx, in)
		},
	}))

	assert.True(t, e.Has("lazy"))
	assert.True(t, e.Has("sector"), "seeds are visible through Has")
	assert.False(t, e.Has("nonesuch"))
	assert.Equal(t, 0, evals, "Has must not force computation")
}

func TestNames_SortedDerivedOnly(t *testing.T) {
	_, e := newFixture(t)

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "r", Inputs: []string{"sector", "divisor"}, Outputs: []string{"ratio"}, Eval: div,
	}))
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "p", Inputs: []string{"divisor", "sector"}, Outputs: []string{"anti_ratio"}, Eval: div,
	}))

	assert.Equal(t, []string{"anti_ratio", "ratio"}, e.Names())
}

func TestOnComputeHook_ObservesAndAborts(t *testing.T) {
	var observed []string
	hookErr := errors.New("observer said no")

	_, e := newFixture(t, derive.WithOnCompute(func(name string, v *apd.Decimal) error {
		observed = append(observed, name)
		if name == "forbidden" {
			return hookErr
		}
		return nil
	}))

	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "ok", Inputs: []string{"sector", "divisor"}, Outputs: []string{"ratio"}, Eval: div,
	}))
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "nope", Inputs: []string{"divisor", "sector"}, Outputs: []string{"forbidden"}, Eval: div,
	}))

	_, err := e.Get("ratio")
	require.NoError(t, err)
	assert.Equal(t, []string{"ratio"}, observed)

	_, err = e.Get("forbidden")
	assert.ErrorIs(t, err, hookErr)

	// The hook only failed the observation; the value itself stayed cached.
	v, err := e.Get("forbidden")
	require.NoError(t, err)
	s, err := e.Context().CanonicalString(v)
	require.NoError(t, err)
	assert.Equal(t, "0.8834356", s)
}

func TestWithContext_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before any resolution

	_, e := newFixture(t, derive.WithContext(ctx))
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "r", Inputs: []string{"sector", "divisor"}, Outputs: []string{"ratio"}, Eval: div,
	}))

	_, err := e.Get("ratio")
	assert.ErrorIs(t, err, context.Canceled)
}

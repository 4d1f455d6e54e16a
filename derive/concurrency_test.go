package derive_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/axiomat/derive"
	"github.com/katalvlaran/axiomat/numctx"
	"github.com/katalvlaran/axiomat/seed"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestConcurrentGet_AtMostOnceEvaluation hammers one derived name from many
// goroutines and asserts the at-most-once discipline: the formula body runs
// exactly once, and every caller observes the same canonical value.
func TestConcurrentGet_AtMostOnceEvaluation(t *testing.T) {
	nctx := numctx.Default()
	s := seed.NewStore(nctx)
	require.NoError(t, s.Set("sector", "163"))
	require.NoError(t, s.Set("divisor", "144"))
	s.Freeze()

	var evals int64
	e := derive.New(nctx, s)
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "ratio",
		Inputs:  []string{"sector", "divisor"},
		Outputs: []string{"ratio"},
		Eval: func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
			atomic.AddInt64(&evals, 1)
			q, err := ctx.Div(in[0], in[1])
			if err != nil {
				return nil, err
			}
			return []*apd.Decimal{q}, nil
		},
	}))

	const workers = 64
	results := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(idx int) {
			defer wg.Done()
			v, err := e.Get("ratio")
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = nctx.CanonicalString(v)
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w], "worker %d", w)
		assert.Equal(t, "1.1319444", results[w], "worker %d", w)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&evals), "formula body must run exactly once")
}

// TestConcurrentGet_DistinctNames checks that concurrent resolution of a
// shared upstream dependency stays at-most-once as well.
func TestConcurrentGet_DistinctNames(t *testing.T) {
	nctx := numctx.Default()
	s := seed.NewStore(nctx)
	require.NoError(t, s.Set("sector", "163"))
	require.NoError(t, s.Set("divisor", "144"))
	s.Freeze()

	var upstream int64
	e := derive.New(nctx, s)
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID:      "ratio",
		Inputs:  []string{"sector", "divisor"},
		Outputs: []string{"ratio"},
		Eval: func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
			atomic.AddInt64(&upstream, 1)
			q, err := ctx.Div(in[0], in[1])
			if err != nil {
				return nil, err
			}
			return []*apd.Decimal{q}, nil
		},
	}))
	double := func(ctx *numctx.Context, in []*apd.Decimal) ([]*apd.Decimal, error) {
		two, err := ctx.Parse("2")
		if err != nil {
			return nil, err
		}
		d, err := ctx.Mul(in[0], two)
		if err != nil {
			return nil, err
		}
		return []*apd.Decimal{d}, nil
	}
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "double_a", Inputs: []string{"ratio"}, Outputs: []string{"double_a"}, Eval: double,
	}))
	require.NoError(t, e.Register(derive.FormulaSpec{
		ID: "double_b", Inputs: []string{"ratio"}, Outputs: []string{"double_b"}, Eval: double,
	}))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _, _ = e.Get("double_a") }()
	go func() { defer wg.Done(); _, _ = e.Get("double_b") }()
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&upstream),
		"shared dependency must evaluate once even under concurrent demand")
}

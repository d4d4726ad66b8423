package evaluator

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellConditioned() []float64 {
	return []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1}
}

func numbers(vs []float64) []Raw {
	out := make([]Raw, len(vs))
	for i, v := range vs {
		out[i] = Number(v)
	}
	return out
}

func TestEvaluateSum_WellConditioned(t *testing.T) {
	a := wellConditioned()

	r := EvaluateSum(numbers(a))
	require.True(t, r.OK(), r.Message())
	got, _ := r.Value()

	var want float64
	for _, ai := range a {
		want += math.Cos(2*ai) / (1 - math.Sin(2*ai))
	}
	requireRelClose(t, want, got)
	assert.InDelta(t, -57.3146640, got, 1e-7)

	requireRelClose(t, newOracle(t, sumTermExpr).sum(t, a), got)
}

func TestEvaluateSum_FromTextTokens(t *testing.T) {
	r := EvaluateSum(Texts("0", " 0", "0 ", "0e0", "-0", "0.0", "0", "0", "0", "0", "0"))
	require.True(t, r.OK(), r.Message())

	v, _ := r.Value()
	assert.Equal(t, 11.0, v)
}

func TestEvaluateSum_Singularity(t *testing.T) {
	for idx := 0; idx < SumArity; idx++ {
		a := wellConditioned()
		a[idx] = math.Pi / 4

		r := EvaluateSum(numbers(a))
		require.False(t, r.OK(), "index %d", idx)
		assert.Equal(t, KindDomainViolation, r.Kind())

		f := r.Failure()
		assert.Equal(t, idx+1, f.Index)
		assert.Equal(t, math.Pi/4, f.Value)
		assert.Equal(t, "a["+strconv.Itoa(idx)+"]", f.Field)
		assert.Contains(t, r.Message(), "a_"+strconv.Itoa(idx+1))

		v, ok := r.Value()
		assert.False(t, ok)
		assert.Zero(t, v)
	}
}

func TestEvaluateSum_FirstSingularityWins(t *testing.T) {
	a := wellConditioned()
	a[2] = math.Pi / 4
	a[7] = math.Pi/4 + math.Pi

	r := EvaluateSum(numbers(a))
	require.False(t, r.OK())
	assert.Equal(t, 3, r.Failure().Index)
}

func TestEvaluateSum_SingularityWithinEps(t *testing.T) {
	for _, idx := range []int{0, 5, SumArity - 1} {
		a := wellConditioned()
		a[idx] = math.Pi/4 + 1e-7

		// знаменатель ≈ 2e-14: не ноль, но меньше SumEps
		denom := 1 - math.Sin(2*a[idx])
		require.NotZero(t, denom)
		require.Less(t, math.Abs(denom), SumEps)

		r := EvaluateSum(numbers(a))
		require.False(t, r.OK(), "index %d", idx)
		assert.Equal(t, KindDomainViolation, r.Kind())
		assert.Equal(t, idx+1, r.Failure().Index)
		assert.Equal(t, a[idx], r.Failure().Value)
	}
}

func TestEvaluateSum_NearSingularityOutsideEps(t *testing.T) {
	a := wellConditioned()
	a[0] = math.Pi/4 + 1e-4

	r := EvaluateSum(numbers(a))
	require.True(t, r.OK(), r.Message())
}

func TestEvaluateSum_ArityMismatch(t *testing.T) {
	for _, n := range []int{0, 1, 10, 12, 20} {
		raws := make([]Raw, n)
		for i := range raws {
			raws[i] = Number(0.1)
		}

		r := EvaluateSum(raws)
		require.False(t, r.OK())
		assert.Equal(t, KindArityMismatch, r.Kind())
		assert.Contains(t, r.Message(), "11")
		assert.Contains(t, r.Message(), strconv.Itoa(n))
		assert.ErrorIs(t, r.Err(), ErrArityMismatch)
	}
}

func TestEvaluateSum_ArityCheckedBeforeContent(t *testing.T) {
	r := EvaluateSum(Texts("abc", "1"))
	assert.Equal(t, KindArityMismatch, r.Kind())
}

func TestEvaluateSum_InvalidToken(t *testing.T) {
	tokens := []string{"0.1", "0.2", "0.3", "0.4", "Infinity", "0.6", "0.7", "0.8", "0.9", "1.0", "1.1"}

	r := EvaluateSum(Texts(tokens...))
	require.False(t, r.OK())
	assert.Equal(t, KindInvalidInput, r.Kind())
	assert.Equal(t, "a[4]", r.Failure().Field)
}

func TestEvaluateSum_Deterministic(t *testing.T) {
	a := numbers([]float64{-0.5, -0.4, -0.3, -0.2, -0.1, 0, 0.1, 0.2, 0.3, 0.4, 0.5})

	first := EvaluateSum(a)
	second := EvaluateSum(a)
	require.True(t, first.OK())

	v1, _ := first.Value()
	v2, _ := second.Value()
	assert.Equal(t, math.Float64bits(v1), math.Float64bits(v2))
	assert.InDelta(t, 14.2076230, v1, 1e-7)
}

func TestSum_RejectsWrongSet(t *testing.T) {
	in, err := Validate(Positional(SumPrefix, Texts("1", "2")), 2)
	require.NoError(t, err)

	_, err = Sum(in)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

package evaluator

import (
	"fmt"
	"math"
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/stretchr/testify/require"
)

// Независимая проверка формул: те же выражения, но вычисленные
// интерпретатором govaluate, а не кодом пакета.
const (
	singleExpr  = "(((x - (((2.24 * y) * z) / x)) - 5) / ((x - y) + (1.6 * z))) + (12 * x)"
	sumTermExpr = "cos(2 * a) / (1 - sin(2 * a))"
)

type oracle struct {
	expr *govaluate.EvaluableExpression
}

func newOracle(t *testing.T, expr string) *oracle {
	t.Helper()
	funcs := map[string]govaluate.ExpressionFunction{
		"sin": func(args ...interface{}) (interface{}, error) { return math.Sin(toFloat(args[0])), nil },
		"cos": func(args ...interface{}) (interface{}, error) { return math.Cos(toFloat(args[0])), nil },
	}
	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(expr, funcs)
	require.NoError(t, err)
	return &oracle{expr: parsed}
}

func (o *oracle) eval(t *testing.T, params map[string]interface{}) float64 {
	t.Helper()
	v, err := o.expr.Evaluate(params)
	require.NoError(t, err)
	f, ok := v.(float64)
	require.True(t, ok, "выражение не вернуло число: %T", v)
	return f
}

func (o *oracle) sum(t *testing.T, a []float64) float64 {
	t.Helper()
	var s float64
	for _, ai := range a {
		s += o.eval(t, map[string]interface{}{"a": ai})
	}
	return s
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return math.NaN()
	}
}

func requireRelClose(t *testing.T, want, got float64) {
	t.Helper()
	diff := math.Abs(want - got)
	scale := math.Max(1, math.Abs(want))
	require.LessOrEqual(t, diff/scale, 1e-9, fmt.Sprintf("want %v, got %v", want, got))
}

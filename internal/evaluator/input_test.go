package evaluator

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Parsing(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2", 2},
		{"  -3.5\t", -3.5},
		{"1e-3", 0.001},
		{"+4.25E2", 425},
		{".5", 0.5},
		{"１．５", 1.5}, // полноширинные символы из веб-форм
	}
	for _, tc := range cases {
		in, err := Validate([]Field{{Name: "v", Raw: Text(tc.in)}}, 1)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, in.At(0).Value, tc.in)
	}
}

func TestValidate_Rejects(t *testing.T) {
	for _, s := range []string{"", "abc", "1,5", "Infinity", "-Inf", "NaN", "1e309", "0x", "1²", "2⁵", "①", "1e⁵"} {
		_, err := Validate([]Field{{Name: "v", Raw: Text(s)}}, 1)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, ErrInvalidInput), s)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "v", e.Field)
	}
}

func TestEvaluateSingle_SuperscriptIsInvalidInput(t *testing.T) {
	r := EvaluateSingle(Number(1), Text("2⁵"), Number(1))
	require.False(t, r.OK())
	assert.Equal(t, KindInvalidInput, r.Kind())
	assert.Equal(t, FieldY, r.Failure().Field)
}

func TestValidate_ParseErrorKeepsCause(t *testing.T) {
	_, err := Validate([]Field{{Name: "v", Raw: Text("abc")}}, 1)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestValidate_PreservesOrderAndNames(t *testing.T) {
	in, err := Validate(Positional("a", Texts("3", "1", "2")), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, in.Len())
	assert.Equal(t, []float64{3, 1, 2}, in.Values())
	assert.Equal(t, Scalar{Name: "a[1]", Value: 1}, in.At(1))
}

func TestValidate_Arity(t *testing.T) {
	_, err := Validate(Positional("a", Texts("1", "2")), 3)
	require.Error(t, err)

	e := AsError(err)
	assert.Equal(t, KindArityMismatch, e.Kind)
	assert.Equal(t, "ожидалось 3 чисел, получено: 2", e.Message)
}

func TestRaw_String(t *testing.T) {
	assert.Equal(t, " 1.5 ", Text(" 1.5 ").String())
	assert.Equal(t, "0.1", Number(0.1).String())
}

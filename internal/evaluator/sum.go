package evaluator

import "math"

const (
	// SumArity: ровно столько точек данных ожидает сумма.
	SumArity = 11

	// допуск для проверки 1 - sin(2a) ≈ 0
	SumEps = 1e-12

	SumPrefix = "a"
)

// Sum вычисляет S = Σ cos(2·a_i) / (1 - sin(2·a_i)), i = 1..11.
// Первое же недопустимое слагаемое прерывает всё вычисление.
func Sum(in InputSet) (float64, error) {
	if in.Len() != SumArity {
		return 0, arityMismatch(SumArity, in.Len())
	}

	var s float64
	for i := 1; i <= SumArity; i++ {
		ai := in.At(i - 1).Value
		denom := 1 - math.Sin(2*ai)

		if math.Abs(denom) < SumEps {
			return 0, domainViolation(in.At(i-1).Name, i, ai,
				"деление на ноль: 1 - sin(2*a_%d) ≈ 0 (a_%d = %v)", i, i, ai)
		}

		term := math.Cos(2*ai) / denom
		if !isFinite(term) {
			return 0, domainViolation(in.At(i-1).Name, i, ai,
				"некорректное слагаемое для i=%d (a_%d = %v)", i, i, ai)
		}

		s += term
	}
	return s, nil
}

// EvaluateSum проверяет сырые токены и считает сумму.
func EvaluateSum(values []Raw) Result {
	in, err := Validate(Positional(SumPrefix, values), SumArity)
	if err != nil {
		return Failure(err)
	}

	s, err := Sum(in)
	if err != nil {
		return Failure(err)
	}
	return Success(s)
}

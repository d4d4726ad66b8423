package evaluator

// Имена входов формулы S(x, y, z).
const (
	FieldX = "x"
	FieldY = "y"
	FieldZ = "z"
)

const SingleArity = 3

// Single вычисляет
//
//	S = (x - 2.24*y*z/x - 5) / (x - y + 1.6*z) + 12*x
//
// Знаменатель сравнивается с нулём точно, без eps.
func Single(in InputSet) (float64, error) {
	if in.Len() != SingleArity {
		return 0, arityMismatch(SingleArity, in.Len())
	}
	x := in.At(0).Value
	y := in.At(1).Value
	z := in.At(2).Value

	if x == 0 {
		return 0, domainViolation(FieldX, 0, x, "x = 0 → деление на ноль")
	}

	denominator := x - y + 1.6*z
	if denominator == 0 {
		return 0, domainViolation("denominator", 0, denominator,
			"знаменатель x - y + 1.6*z = 0 → деление на ноль (x = %g, y = %g, z = %g)", x, y, z)
	}

	s := (x-(2.24*y*z)/x-5)/denominator + 12*x
	if !isFinite(s) {
		return 0, domainViolation("S", 0, s,
			"результат не является конечным числом (x = %g, y = %g, z = %g)", x, y, z)
	}
	return s, nil
}

// EvaluateSingle проверяет x, y, z и вычисляет S.
func EvaluateSingle(x, y, z Raw) Result {
	in, err := Validate([]Field{
		{Name: FieldX, Raw: x},
		{Name: FieldY, Raw: y},
		{Name: FieldZ, Raw: z},
	}, SingleArity)
	if err != nil {
		return Failure(err)
	}

	s, err := Single(in)
	if err != nil {
		return Failure(err)
	}
	return Success(s)
}

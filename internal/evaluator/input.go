package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Raw — необработанное значение: текст из формы или уже разобранное число
// из внешнего источника.
type Raw struct {
	text  string
	num   float64
	isNum bool
}

func Text(s string) Raw {
	return Raw{text: s}
}

func Number(v float64) Raw {
	return Raw{num: v, isNum: true}
}

func Texts(ss ...string) []Raw {
	out := make([]Raw, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}
	return out
}

func (r Raw) String() string {
	if r.isNum {
		return strconv.FormatFloat(r.num, 'g', -1, 64)
	}
	return r.text
}

// Scalar хранит проверенное конечное число вместе с именем поля.
type Scalar struct {
	Name  string
	Value float64
}

// InputSet — упорядоченный набор проверенных значений фиксированной длины.
type InputSet struct {
	scalars []Scalar
}

func (s InputSet) Len() int {
	return len(s.scalars)
}

func (s InputSet) At(i int) Scalar {
	return s.scalars[i]
}

func (s InputSet) Values() []float64 {
	out := make([]float64, len(s.scalars))
	for i, sc := range s.scalars {
		out[i] = sc.Value
	}
	return out
}

type Field struct {
	Name string
	Raw  Raw
}

// Positional строит поля a[0], a[1], ... для позиционных данных.
func Positional(prefix string, raws []Raw) []Field {
	fields := make([]Field, len(raws))
	for i, r := range raws {
		fields[i] = Field{Name: fmt.Sprintf("%s[%d]", prefix, i), Raw: r}
	}
	return fields
}

// Validate проверяет количество и конечность входов.
// Количество проверяется первым: при неверной длине содержимое не разбирается.
func Validate(fields []Field, arity int) (InputSet, error) {
	if len(fields) != arity {
		return InputSet{}, arityMismatch(arity, len(fields))
	}

	scalars := make([]Scalar, len(fields))
	for i, f := range fields {
		v, err := parseRaw(f.Name, f.Raw)
		if err != nil {
			return InputSet{}, err
		}
		scalars[i] = Scalar{Name: f.Name, Value: v}
	}
	return InputSet{scalars: scalars}, nil
}

func parseRaw(name string, r Raw) (float64, error) {
	if r.isNum {
		if !isFinite(r.num) {
			return 0, invalidInput(name, nil, "некорректное число в поле %s: %v", name, r.num)
		}
		return r.num, nil
	}

	// только полноширинные формы из веб-форм; надстрочные и обведённые
	// цифры не превращаются в обычные и дают ошибку разбора
	s := strings.TrimSpace(width.Narrow.String(r.text))
	if s == "" {
		return 0, invalidInput(name, nil, "пустое значение в поле %s", name)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalidInput(name, err, "некорректное число в поле %s: %q", name, r.text)
	}
	if !isFinite(v) {
		return 0, invalidInput(name, nil, "некорректное число в поле %s: %q (NaN/Infinity)", name, r.text)
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

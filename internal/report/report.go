package report

import (
	"fmt"
	"strings"

	"lab1_calc/internal/evaluator"
)

// Digits знаков после точки в выводе.
const Digits = 7

// Text форматирует результат для человека: "S = 22.4153846" или "DomainViolation: x = 0 → ...".
func Text(r evaluator.Result) string {
	if v, ok := r.Value(); ok {
		return fmt.Sprintf("S = %.*f", Digits, v)
	}
	msg := r.Message()
	if msg == "" {
		msg = "неизвестная ошибка"
	}
	return r.Kind().String() + ": " + msg
}

// View — JSON-представление результата для API и CLI.
type View struct {
	OK      bool     `json:"ok"`
	Value   *float64 `json:"value,omitempty"`
	Text    string   `json:"text"`
	Kind    string   `json:"kind,omitempty"`
	Message string   `json:"message,omitempty"`
}

func NewView(r evaluator.Result) View {
	v := View{OK: r.OK(), Text: Text(r)}
	if val, ok := r.Value(); ok {
		v.Value = &val
		return v
	}
	v.Kind = r.Kind().String()
	v.Message = r.Message()
	return v
}

// Inputs перечисляет загруженные данные построчно: a[0] = ..., a[1] = ...
func Inputs(prefix string, tokens []string) string {
	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		lines[i] = fmt.Sprintf("%s[%d] = %s", prefix, i, tok)
	}
	return strings.Join(lines, "\n")
}

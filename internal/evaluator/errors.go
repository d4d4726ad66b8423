package evaluator

import (
	"errors"
	"fmt"
)

// Kind — класс ошибки вычисления.
// Порядок соответствует приоритету проверки: количество и корректность
// входов проверяются раньше любых защитных условий формулы.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindArityMismatch
	KindDomainViolation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindArityMismatch:
		return "ArityMismatch"
	case KindDomainViolation:
		return "DomainViolation"
	default:
		return "Unknown"
	}
}

func ParseKind(s string) Kind {
	switch s {
	case "InvalidInput":
		return KindInvalidInput
	case "ArityMismatch":
		return KindArityMismatch
	case "DomainViolation":
		return KindDomainViolation
	default:
		return KindUnknown
	}
}

var (
	ErrInvalidInput    = errors.New("evaluator: invalid input")
	ErrArityMismatch   = errors.New("evaluator: arity mismatch")
	ErrDomainViolation = errors.New("evaluator: domain violation")
	ErrUnknown         = errors.New("evaluator: unknown failure")
)

// Error — классифицированная ошибка с контекстом: какое поле или индекс
// и какое значение вызвали срабатывание.
type Error struct {
	Kind    Kind
	Field   string  // имя поля ("x") или позиция ("a[3]")
	Index   int     // номер слагаемого (с 1), 0 если не применимо
	Value   float64 // значение, на котором сработала проверка
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap возвращает сентинел класса, чтобы работал errors.Is.
func (e *Error) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case KindInvalidInput:
		sentinel = ErrInvalidInput
	case KindArityMismatch:
		sentinel = ErrArityMismatch
	case KindDomainViolation:
		sentinel = ErrDomainViolation
	default:
		sentinel = ErrUnknown
	}
	if e.cause != nil {
		return []error{sentinel, e.cause}
	}
	return []error{sentinel}
}

func invalidInput(field string, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

func arityMismatch(want, got int) *Error {
	return &Error{
		Kind:    KindArityMismatch,
		Message: fmt.Sprintf("ожидалось %d чисел, получено: %d", want, got),
	}
}

func domainViolation(field string, index int, value float64, format string, args ...any) *Error {
	return &Error{
		Kind:    KindDomainViolation,
		Field:   field,
		Index:   index,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

// AsError приводит произвольную ошибку к *Error.
// Всё, что не было классифицировано ядром, становится KindUnknown.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Kind:    KindUnknown,
		Message: err.Error(),
		cause:   err,
	}
}

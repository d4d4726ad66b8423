package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"lab1_calc/internal/evaluator"
	"lab1_calc/internal/report"
)

// Коды завершения.
const (
	ExitSuccess      = 0 // вычисление выполнено
	ExitFailure      = 1 // вычисление завершилось классифицированной ошибкой
	ExitCommandError = 2 // ошибка команды: конфигурация, файл, база
)

// ExitError — ошибка с кодом завершения процесса.
type ExitError struct {
	Code     int
	Message  string
	Err      error
	Reported bool // сообщение уже выведено форматтером
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode извлекает код завершения. Прочие ошибки считаются ошибкой команды.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// IsReported сообщает, что ошибка уже показана пользователю.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// OutputFormatter выводит результаты в текстовом или JSON-формате.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // подробный вывод, чтобы не портить JSON
	Verbose   bool
}

type CLIResponse struct {
	Status string    `json:"status"` // "ok" | "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "%s: %s\n", code, message)
	return err
}

// Result выводит итог вычисления. При ошибке вычисления возвращает
// ExitError с кодом ExitFailure.
func (f *OutputFormatter) Result(r evaluator.Result) error {
	if r.OK() {
		if f.Format == "json" {
			return f.Success(report.NewView(r))
		}
		return f.Success(report.Text(r))
	}

	if err := f.Error(r.Kind().String(), r.Message()); err != nil {
		return err
	}
	e := NewExitError(ExitFailure, report.Text(r))
	e.Reported = true
	return e
}

// VerboseLog выводит сообщение только в режиме --verbose.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

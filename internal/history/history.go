package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"lab1_calc/internal/evaluator"
)

type Variant string

const (
	VariantSingle Variant = "single"
	VariantSum    Variant = "sum"
)

var ErrNotFound = errors.New("history: запись не найдена")

// Record — одно выполненное вычисление. Ядро вычислителя ничего не хранит,
// журнал ведёт вызывающая сторона (сервер, CLI).
type Record struct {
	ID        string    `json:"id"`
	Variant   Variant   `json:"variant"`
	Inputs    []string  `json:"inputs"`
	OK        bool      `json:"ok"`
	Value     float64   `json:"value"`
	Kind      string    `json:"kind,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewRecord фиксирует результат вычисления с новым идентификатором.
func NewRecord(variant Variant, inputs []string, r evaluator.Result) Record {
	rec := Record{
		ID:        uuid.NewString(),
		Variant:   variant,
		Inputs:    inputs,
		OK:        r.OK(),
		CreatedAt: time.Now().UTC(),
	}
	if v, ok := r.Value(); ok {
		rec.Value = v
	} else {
		rec.Kind = r.Kind().String()
		rec.Message = r.Message()
	}
	return rec
}

// Result восстанавливает итог вычисления из записи.
func (r Record) Result() evaluator.Result {
	if r.OK {
		return evaluator.Success(r.Value)
	}
	return evaluator.Failure(&evaluator.Error{
		Kind:    evaluator.ParseKind(r.Kind),
		Message: r.Message,
	})
}

type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	// List возвращает не более limit последних записей, новые первыми.
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

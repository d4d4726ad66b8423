package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"lab1_calc/internal/dataset"
	"lab1_calc/internal/evaluator"
	"lab1_calc/internal/history"
	"lab1_calc/internal/sse"
)

// Server — HTTP-обвязка вокруг вычислителя: принимает сырые значения,
// ведёт журнал и рассылает результаты подписчикам.
type Server struct {
	store   history.Store
	hub     *sse.Hub
	fetcher *dataset.Fetcher
	log     *slog.Logger
	limit   int
	timeout time.Duration
}

type Options struct {
	Store   history.Store
	Hub     *sse.Hub
	Fetcher *dataset.Fetcher
	Logger  *slog.Logger
	// размер выдачи /api/history по умолчанию
	Limit int
	// FetchTimeout ограничивает загрузку данных для суммы.
	FetchTimeout time.Duration
}

func New(opts Options) *Server {
	s := &Server{
		store:   opts.Store,
		hub:     opts.Hub,
		fetcher: opts.Fetcher,
		log:     opts.Logger,
		limit:   opts.Limit,
		timeout: opts.FetchTimeout,
	}
	if s.store == nil {
		s.store = history.NewMemoryStore()
	}
	if s.hub == nil {
		s.hub = sse.NewHub(16)
	}
	if s.fetcher == nil {
		s.fetcher = &dataset.Fetcher{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.limit <= 0 {
		s.limit = 100
	}
	if s.timeout <= 0 {
		s.timeout = 10 * time.Second
	}
	return s
}

type event struct {
	Type   string         `json:"type"`
	Record history.Record `json:"record"`
}

// record сохраняет результат и оповещает подписчиков.
// Ошибка хранилища не отменяет ответ клиенту, только логируется.
func (s *Server) record(ctx context.Context, variant history.Variant, inputs []string, r evaluator.Result) history.Record {
	rec := history.NewRecord(variant, inputs, r)

	if err := s.store.Save(ctx, rec); err != nil {
		s.log.Error("history save failed", "id", rec.ID, "err", err)
	}

	attrs := []any{"id", rec.ID, "variant", variant, "ok", rec.OK}
	if rec.OK {
		s.log.Info("evaluation done", append(attrs, "value", rec.Value)...)
	} else {
		s.log.Info("evaluation failed", append(attrs, "kind", rec.Kind, "msg", rec.Message)...)
	}

	msg, err := json.Marshal(event{Type: "result", Record: rec})
	if err != nil {
		s.log.Error("event marshal failed", "id", rec.ID, "err", err)
		return rec
	}
	s.hub.Publish(sse.TopicAll, string(msg))
	s.hub.Publish(string(variant), string(msg))
	return rec
}

// statusFor выбирает HTTP-код по классу результата.
func statusFor(r evaluator.Result) int {
	if r.OK() {
		return http.StatusOK
	}
	if r.Kind() == evaluator.KindUnknown {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

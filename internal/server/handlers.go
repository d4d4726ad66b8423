package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"lab1_calc/internal/evaluator"
	"lab1_calc/internal/history"
	"lab1_calc/internal/report"
	"lab1_calc/internal/sse"
)

// предел тела POST-запроса, как и для файла данных
const maxRequestBody = 1 << 20

// rawValue принимает из JSON и строку, и число.
// Отсутствующее поле или null остаются пустыми и не проходят проверку.
type rawValue struct {
	raw evaluator.Raw
}

func (v *rawValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		v.raw = evaluator.Text("")
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v.raw = evaluator.Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		v.raw = evaluator.Number(f)
		return nil
	}
	// пусть решает валидатор: получится InvalidInput с именем поля
	v.raw = evaluator.Text(string(b))
	return nil
}

type singleRequest struct {
	X rawValue `json:"x"`
	Y rawValue `json:"y"`
	Z rawValue `json:"z"`
}

type sumRequest struct {
	Values []rawValue `json:"values"`
}

type evalResponse struct {
	ID      string          `json:"id"`
	Variant history.Variant `json:"variant"`
	Inputs  []string        `json:"inputs"`
	report.View
}

// Single вычисляет S(x, y, z). GET берёт значения из query, POST из JSON.
func (s *Server) Single(w http.ResponseWriter, r *http.Request) {
	var req singleRequest
	if r.Method == http.MethodPost {
		if err := decodeJSON(w, r, &req); err != nil {
			jsonError(w, err)
			return
		}
	} else {
		q := r.URL.Query()
		req.X.raw = evaluator.Text(q.Get(evaluator.FieldX))
		req.Y.raw = evaluator.Text(q.Get(evaluator.FieldY))
		req.Z.raw = evaluator.Text(q.Get(evaluator.FieldZ))
	}

	res := evaluator.EvaluateSingle(req.X.raw, req.Y.raw, req.Z.raw)
	inputs := []string{req.X.raw.String(), req.Y.raw.String(), req.Z.raw.String()}
	s.respond(r.Context(), w, history.VariantSingle, inputs, res)
}

// Sum вычисляет сумму по 11 точкам. POST берёт значения из JSON,
// GET загружает их из внешнего файла данных.
func (s *Server) Sum(w http.ResponseWriter, r *http.Request) {
	var raws []evaluator.Raw

	if r.Method == http.MethodPost {
		var req sumRequest
		if err := decodeJSON(w, r, &req); err != nil {
			jsonError(w, err)
			return
		}
		raws = make([]evaluator.Raw, len(req.Values))
		for i, v := range req.Values {
			raws[i] = v.raw
		}
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()

		tokens, err := s.fetcher.Fetch(ctx)
		if err != nil {
			s.log.Warn("data fetch failed", "err", err)
			s.respond(r.Context(), w, history.VariantSum, nil, evaluator.Failure(err))
			return
		}
		raws = evaluator.Texts(tokens...)
	}

	inputs := make([]string, len(raws))
	for i, raw := range raws {
		inputs[i] = raw.String()
	}
	s.respond(r.Context(), w, history.VariantSum, inputs, evaluator.EvaluateSum(raws))
}

func (s *Server) respond(ctx context.Context, w http.ResponseWriter, variant history.Variant, inputs []string, res evaluator.Result) {
	rec := s.record(ctx, variant, inputs, res)
	writeJSON(w, statusFor(res), evalResponse{
		ID:      rec.ID,
		Variant: variant,
		Inputs:  inputs,
		View:    report.NewView(res),
	})
}

// History отдаёт последние записи журнала, новые первыми.
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	limit, err := s.parseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.log.Error("history list failed", "err", err)
		http.Error(w, "ошибка журнала", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []history.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) HistoryItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("history get failed", "id", id, "err", err)
		http.Error(w, "ошибка журнала", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ExportCSV — экспорт журнала в CSV
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	limit, err := s.parseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.log.Error("history list failed", "err", err)
		http.Error(w, "ошибка журнала", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=history.csv")

	if err := history.WriteCSV(w, recs); err != nil {
		s.log.Error("csv export failed", "err", err)
	}
}

// Stream — SSE-стрим результатов. topic: all (по умолчанию), single или sum.
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = sse.TopicAll
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.hub.Subscribe(topic)
	defer cancel()

	// заголовки уходят сразу, чтобы клиент знал о подписке
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "event: msg\n")
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return s.limit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit: ожидалось положительное целое, получено %q", v)
	}
	return n, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func jsonError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, fmt.Sprintf("тело запроса больше %d байт", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "ошибка JSON: "+err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package server

import "net/http"

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// API эндпоинты
	mux.HandleFunc("GET /api/single", s.Single)
	mux.HandleFunc("POST /api/single", s.Single)
	mux.HandleFunc("GET /api/sum", s.Sum)
	mux.HandleFunc("POST /api/sum", s.Sum)
	mux.HandleFunc("GET /api/history", s.History)
	mux.HandleFunc("GET /api/history/{id}", s.HistoryItem)
	mux.HandleFunc("GET /api/export", s.ExportCSV)
	mux.HandleFunc("GET /stream", s.Stream)

	return mux
}

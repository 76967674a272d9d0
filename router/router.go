// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/premios-polls/cliparse"
	"github.com/danielhkuo/premios-polls/handlers"
	"github.com/danielhkuo/premios-polls/middleware"
	"github.com/danielhkuo/premios-polls/views"
)

// NewRouter registers every route on a fresh mux. Each router gets its own
// Prometheus registry, which is served on /metrics.
func NewRouter(db *sql.DB, cfg cliparse.Config, renderer *views.Renderer) *http.ServeMux {
	mux := http.NewServeMux()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.DatabaseType),
	)
	metrics := middleware.NewMetrics(reg)

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, renderer, metrics)
	adminHandler := handlers.NewAdminHandler(db)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(metrics.Instrument(pattern, h)))
	}
	admin := func(pattern string, h http.HandlerFunc) {
		handle(pattern, middleware.WithAdminKey(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Public polls
	handle("GET /{$}", pollHandler.Index)
	handle("GET /{id}/{$}", pollHandler.Detail)
	handle("GET /{id}/results/{$}", pollHandler.Results)
	handle("/{id}/vote/{$}", pollHandler.Vote)

	// Admin API
	admin("GET /admin/questions", adminHandler.ListQuestions)
	admin("POST /admin/questions", adminHandler.CreateQuestion)
	admin("GET /admin/questions/{id}", adminHandler.GetQuestion)
	admin("PUT /admin/questions/{id}", adminHandler.UpdateQuestion)
	admin("DELETE /admin/questions/{id}", adminHandler.DeleteQuestion)
	admin("POST /admin/questions/{id}/choices", adminHandler.AddChoice)
	admin("GET /admin/choices/{id}", adminHandler.GetChoice)
	admin("PUT /admin/choices/{id}", adminHandler.UpdateChoice)
	admin("DELETE /admin/choices/{id}", adminHandler.DeleteChoice)

	return mux
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets an ID (X-Request-ID, generated with uuid when absent)
that is logged on start and completion and echoed on the response.
Handlers log through middleware.Logger(r) to keep the ID attached.

# Metrics

NewMetrics registers request counters, latency histograms and an
in-flight gauge on a Prometheus registry:

	m := middleware.NewMetrics(reg)
	mux.HandleFunc(pattern, m.Instrument(pattern, handler))

# Admin Guard

	mux.HandleFunc("GET /admin/questions", middleware.WithAdminKey(cfg.AdminKey, h.List))

Requests without a valid X-Admin-Key get a 401 JSON error.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	err := middleware.ParseJSONBody(r, &req)
*/
package middleware

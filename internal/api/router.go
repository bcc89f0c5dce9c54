// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stremin/accountengine/internal/auth"
	"github.com/stremin/accountengine/internal/middleware"
)

// asChiMiddleware adapts a func(http.HandlerFunc) http.HandlerFunc
// middleware to Chi's func(http.Handler) http.Handler.
func asChiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// NewRouter assembles the HTTP surface: the seven accounts endpoints,
// plus /metrics and /ws/mutations as ambient additions. gate and jwtMgr
// may both be nil, in which case the three write endpoints are left
// unauthenticated (reads are never gated).
func NewRouter(h *Handler, ws http.HandlerFunc, gate *auth.Gate, jwtMgr *auth.JWTManager) http.Handler {
	r := chi.NewRouter()
	requireBearer := asChiMiddleware(auth.RequireBearer(gate, jwtMgr))

	r.Use(asChiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(asChiMiddleware(middleware.PrometheusMetrics))
	r.Use(asChiMiddleware(middleware.Compression))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))
	r.Use(httprate.LimitByIP(1000, time.Minute))

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	if ws != nil {
		r.Get("/ws/mutations", ws)
	}

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/filter/", h.FilterAccounts)
		r.Get("/group/", h.GroupAccounts)
		r.With(requireBearer).Post("/new/", h.NewAccount)
		r.With(requireBearer).Post("/likes/", h.AppendLikes)
		r.Get("/{id}/recommend/", h.RecommendAccounts)
		r.Get("/{id}/suggest/", h.SuggestAccounts)
		r.With(requireBearer).Post("/{id}/", h.PatchAccount)
	})

	return r
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/stremin/accountengine/internal/engine"
	"github.com/stremin/accountengine/internal/logging"
)

// writeJSON encodes v as the full response body with the given status
// code. There is no response envelope: the body is exactly the shape
// named for that endpoint.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("failed to encode response body")
		writeEmpty(w, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeEmpty writes a status code with no body: every error response
// takes this shape, and so does a successful write-endpoint response.
func writeEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// writeEngineError maps a sentinel error from internal/engine to its
// HTTP status code. Any non-sentinel error is a programmer/data-
// corruption bug and is logged before responding 500.
func writeEngineError(w http.ResponseWriter, err error) {
	switch err {
	case engine.ErrBadRequest:
		writeEmpty(w, http.StatusBadRequest)
	case engine.ErrNotFound:
		writeEmpty(w, http.StatusNotFound)
	default:
		logging.Error().Err(err).Msg("unexpected engine error")
		writeEmpty(w, http.StatusInternalServerError)
	}
}

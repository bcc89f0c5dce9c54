// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/stremin/accountengine/internal/cache"
	"github.com/stremin/accountengine/internal/engine"
	"github.com/stremin/accountengine/internal/eventprocessor"
	"github.com/stremin/accountengine/internal/logging"
	"github.com/stremin/accountengine/internal/metrics"
	"github.com/stremin/accountengine/internal/models"
	"github.com/stremin/accountengine/internal/validation"
)

// Handler holds everything the HTTP layer needs to serve the four
// queries and three mutations: the in-memory store they read and write,
// a flush-on-write response cache, and an event publisher mutations are
// announced on for the websocket feed and audit log.
type Handler struct {
	store     *engine.Store
	cache     *cache.Cache
	publisher *eventprocessor.Publisher
}

// NewHandler wires a Handler to the given store, cache, and publisher.
// cache and publisher may be nil, in which case caching and mutation
// broadcast are simply skipped.
func NewHandler(store *engine.Store, c *cache.Cache, pub *eventprocessor.Publisher) *Handler {
	return &Handler{
		store:     store,
		cache:     c,
		publisher: pub,
	}
}

// validateBody runs struct validation and logs the translated field
// errors; the response itself stays the same empty-body 400 either way,
// since this HTTP surface carries no JSON error envelope.
func (h *Handler) validateBody(s interface{}) bool {
	if ve := validation.ValidateStruct(s); ve != nil {
		logging.Warn().Str("error", ve.Error()).Msg("request body failed validation")
		return false
	}
	return true
}

func cacheKey(r *http.Request) string {
	return r.Method + " " + r.URL.Path + "?" + r.URL.RawQuery
}

// FilterAccounts handles GET /accounts/filter/.
func (h *Handler) FilterAccounts(w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r)
	if h.cache != nil {
		if body, ok := h.cache.Get(key); ok {
			writeJSON(w, http.StatusOK, json.RawMessage(body))
			return
		}
	}

	params, err := parseQuery(r.URL.RawQuery)
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := h.store.Filter(params)
	metrics.RecordQuery("filter", time.Since(start), err)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.respondCaching(w, key, models.FilterResultFrom(result))
}

// GroupAccounts handles GET /accounts/group/.
func (h *Handler) GroupAccounts(w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r)
	if h.cache != nil {
		if body, ok := h.cache.Get(key); ok {
			writeJSON(w, http.StatusOK, json.RawMessage(body))
			return
		}
	}

	params, err := parseQuery(r.URL.RawQuery)
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := h.store.Group(params)
	metrics.RecordQuery("group", time.Since(start), err)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.respondCaching(w, key, models.GroupResultFrom(result))
}

// RecommendAccounts handles GET /accounts/<id>/recommend/.
func (h *Handler) RecommendAccounts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	key := cacheKey(r)
	if h.cache != nil {
		if body, ok := h.cache.Get(key); ok {
			writeJSON(w, http.StatusOK, json.RawMessage(body))
			return
		}
	}

	params, err := parseQuery(r.URL.RawQuery)
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := h.store.Recommend(id, params)
	metrics.RecordQuery("recommend", time.Since(start), err)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.respondCaching(w, key, models.RecommendResultFrom(result))
}

// SuggestAccounts handles GET /accounts/<id>/suggest/.
func (h *Handler) SuggestAccounts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	key := cacheKey(r)
	if h.cache != nil {
		if body, ok := h.cache.Get(key); ok {
			writeJSON(w, http.StatusOK, json.RawMessage(body))
			return
		}
	}

	params, err := parseQuery(r.URL.RawQuery)
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := h.store.Suggest(id, params)
	metrics.RecordQuery("suggest", time.Since(start), err)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.respondCaching(w, key, models.SuggestResultFrom(result))
}

// NewAccount handles POST /accounts/new/.
func (h *Handler) NewAccount(w http.ResponseWriter, r *http.Request) {
	var body models.AccountJSON
	if err := decodeBody(r, &body); err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}
	if !h.validateBody(&body) {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	err := h.store.Insert(body.ToInsertInput())
	metrics.RecordMutation("insert", err)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.onMutation(eventprocessor.MutationInsert, body.ID)
	writeEmpty(w, http.StatusCreated)
}

// PatchAccount handles POST /accounts/<id>/.
func (h *Handler) PatchAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body models.PatchJSON
	if err := decodeBody(r, &body); err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}
	if !h.validateBody(&body) {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	err := h.store.Patch(id, body.ToPatchInput())
	metrics.RecordMutation("patch", err)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.onMutation(eventprocessor.MutationPatch, id)
	writeEmpty(w, http.StatusAccepted)
}

// AppendLikes handles POST /accounts/likes/.
func (h *Handler) AppendLikes(w http.ResponseWriter, r *http.Request) {
	var body models.LikesJSON
	if err := decodeBody(r, &body); err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return
	}
	if !h.validateBody(&body) {
		writeEmpty(w, http.StatusBadRequest)
		return
	}

	triples := body.ToAppendTriples()
	err := h.store.AppendLikes(triples)
	metrics.RecordMutation("like", err)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	for _, t := range triples {
		h.onMutation(eventprocessor.MutationLike, t.Liker)
	}
	writeEmpty(w, http.StatusAccepted)
}

// respondCaching writes v as the response body and, if caching is
// enabled, stores the encoded bytes under key for the next identical
// query.
func (h *Handler) respondCaching(w http.ResponseWriter, key string, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal response body")
		writeEmpty(w, http.StatusInternalServerError)
		return
	}
	if h.cache != nil {
		h.cache.Set(key, body)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// onMutation flushes the response cache and announces the mutation on
// the event bus: the cache is flushed fully on every successful
// mutation.
func (h *Handler) onMutation(kind eventprocessor.MutationKind, id int32) {
	if h.cache != nil {
		h.cache.Flush()
	}
	if h.publisher != nil {
		h.publisher.Publish(eventprocessor.Mutation{Kind: kind, AccountID: id})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		writeEmpty(w, http.StatusBadRequest)
		return 0, false
	}
	return int32(id), true
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

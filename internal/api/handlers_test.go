// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/stremin/accountengine/internal/cache"
	"github.com/stremin/accountengine/internal/engine"
	"github.com/stremin/accountengine/internal/models"
)

func newTestHandler(t *testing.T) (*Handler, *engine.Store) {
	t.Helper()
	st := engine.NewStore(10, 0)
	h := NewHandler(st, cache.New(), nil)
	return h, st
}

// requestWithID attaches a chi route param "id" to req the way chi's router
// would after matching a /{id}/... pattern.
func requestWithID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestNewAccountCreatedThenFilterFindsIt(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"id":1,"email":"a@example.com","sex":"f","status":"free","birth":0,"joined":0}`
	req := httptest.NewRequest(http.MethodPost, "/accounts/new/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.NewAccount(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("NewAccount status = %d, want 201", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("NewAccount body = %q, want empty", rec.Body.String())
	}

	req2 := httptest.NewRequest(http.MethodGet, "/accounts/filter/?sex_eq=f&limit=10", nil)
	rec2 := httptest.NewRecorder()
	h.FilterAccounts(rec2, req2)

	if rec2.Code != http.StatusOK {
		t.Fatalf("FilterAccounts status = %d, want 200", rec2.Code)
	}
	var result models.FilterResultJSON
	if err := json.Unmarshal(rec2.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode FilterAccounts body: %v", err)
	}
	if len(result.Accounts) != 1 || result.Accounts[0].ID != 1 {
		t.Fatalf("FilterAccounts result = %+v, want one account with id 1", result)
	}
}

func TestNewAccountRejectsInvalidEnum(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"id":1,"email":"a@example.com","sex":"x","status":"free","birth":0,"joined":0}`
	req := httptest.NewRequest(http.MethodPost, "/accounts/new/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.NewAccount(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("NewAccount with sex=x status = %d, want 400", rec.Code)
	}
}

func TestFilterCachesIdenticalQuery(t *testing.T) {
	h, _ := newTestHandler(t)
	mustNew(t, h, `{"id":1,"email":"a@example.com","sex":"f","status":"free","birth":0,"joined":0}`)

	req := httptest.NewRequest(http.MethodGet, "/accounts/filter/?sex_eq=f&limit=10", nil)
	rec := httptest.NewRecorder()
	h.FilterAccounts(rec, req)
	if h.cache.Len() != 1 {
		t.Fatalf("cache.Len() after first query = %d, want 1", h.cache.Len())
	}

	// a second identical query must be served from cache without error
	req2 := httptest.NewRequest(http.MethodGet, "/accounts/filter/?sex_eq=f&limit=10", nil)
	rec2 := httptest.NewRecorder()
	h.FilterAccounts(rec2, req2)
	if rec2.Code != http.StatusOK {
		t.Fatalf("cached FilterAccounts status = %d, want 200", rec2.Code)
	}
	if rec2.Body.String() != rec.Body.String() {
		t.Errorf("cached body = %q, want %q", rec2.Body.String(), rec.Body.String())
	}
}

func TestPatchFlushesCache(t *testing.T) {
	h, _ := newTestHandler(t)
	mustNew(t, h, `{"id":1,"email":"a@example.com","sex":"f","status":"free","birth":0,"joined":0,"city":"moscow"}`)

	req := httptest.NewRequest(http.MethodGet, "/accounts/filter/?city_eq=moscow&limit=10", nil)
	rec := httptest.NewRecorder()
	h.FilterAccounts(rec, req)
	if h.cache.Len() != 1 {
		t.Fatalf("cache.Len() = %d, want 1", h.cache.Len())
	}

	patchReq := requestWithID(
		httptest.NewRequest(http.MethodPost, "/accounts/1/", strings.NewReader(`{"city":"kazan"}`)), "1")
	patchRec := httptest.NewRecorder()
	h.PatchAccount(patchRec, patchReq)
	if patchRec.Code != http.StatusAccepted {
		t.Fatalf("PatchAccount status = %d, want 202", patchRec.Code)
	}
	if h.cache.Len() != 0 {
		t.Errorf("cache.Len() after patch = %d, want 0 (flushed)", h.cache.Len())
	}
}

func TestRecommendUnknownIDReturns404(t *testing.T) {
	h, _ := newTestHandler(t)
	req := requestWithID(
		httptest.NewRequest(http.MethodGet, "/accounts/999/recommend/?limit=10", nil), "999")
	rec := httptest.NewRecorder()
	h.RecommendAccounts(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("RecommendAccounts(999) status = %d, want 404", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("RecommendAccounts(999) body = %q, want empty", rec.Body.String())
	}
}

func mustNew(t *testing.T, h *Handler, body string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/accounts/new/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.NewAccount(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("mustNew: status = %d, want 201", rec.Code)
	}
}

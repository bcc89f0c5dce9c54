// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testGate(t *testing.T, plaintext string) *Gate {
	t.Helper()
	hash, err := HashToken(plaintext)
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	return NewGate(hash)
}

func TestRequireBearer(t *testing.T) {
	gate := testGate(t, "correct-token")
	jwtMgr, err := NewJWTManager("test-secret-at-least-32-bytes-long!", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	validJWT, err := jwtMgr.GenerateToken("operator")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	reached := func() http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}
	}

	tests := []struct {
		name       string
		gate       *Gate
		jwtMgr     *JWTManager
		header     string
		wantStatus int
	}{
		{"no auth configured passes through", nil, nil, "", http.StatusOK},
		{"missing header rejected", gate, jwtMgr, "", http.StatusUnauthorized},
		{"malformed header rejected", gate, jwtMgr, "Basic xyz", http.StatusUnauthorized},
		{"correct static token accepted", gate, jwtMgr, "Bearer correct-token", http.StatusOK},
		{"wrong static token rejected", gate, jwtMgr, "Bearer wrong-token", http.StatusUnauthorized},
		{"valid jwt accepted", gate, jwtMgr, "Bearer " + validJWT, http.StatusOK},
		{"jwt only, static token gate absent", nil, jwtMgr, "Bearer " + validJWT, http.StatusOK},
		{"jwt only, garbage token rejected", nil, jwtMgr, "Bearer garbage", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := RequireBearer(tt.gate, tt.jwtMgr)
			handler := mw(reached())

			req := httptest.NewRequest(http.MethodPost, "/accounts/new/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireBearer_JWTOnlyDoesNotBypassAuth(t *testing.T) {
	jwtMgr, err := NewJWTManager("another-test-secret-32-bytes-long!!", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	mw := RequireBearer(nil, jwtMgr)
	handler := mw(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/likes/", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d (configuring only a JWT secret must not disable auth)", rec.Code, http.StatusUnauthorized)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"valid bearer", "Bearer abc123", "abc123", true},
		{"case-insensitive scheme", "bearer abc123", "abc123", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"no token", "Bearer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			token, ok := bearerToken(req)
			if ok != tt.wantOK || token != tt.wantToken {
				t.Errorf("bearerToken() = (%q, %v), want (%q, %v)", token, ok, tt.wantToken, tt.wantOK)
			}
		})
	}
}

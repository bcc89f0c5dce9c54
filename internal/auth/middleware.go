// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package auth

import (
	"net/http"
	"strings"

	"github.com/stremin/accountengine/internal/logging"
)

var secLog = logging.NewSecurityLogger()

// RequireBearer builds a middleware gating a write endpoint behind the
// configured static token or a signed JWT, whichever validates. Either
// gate or jwtMgr may be nil (that form isn't configured), but when both
// are nil auth is disabled entirely and the returned middleware is a
// no-op passthrough, using the func(http.HandlerFunc) http.HandlerFunc
// shape so it composes directly with asChiMiddleware.
func RequireBearer(gate *Gate, jwtMgr *JWTManager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if gate == nil && jwtMgr == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logAuthAttempt(r, "", false, "missing bearer token")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if gate != nil && gate.Check(token) {
				logAuthAttempt(r, "static_token", true, "")
				next(w, r)
				return
			}
			if jwtMgr != nil {
				if _, err := jwtMgr.ValidateToken(token); err == nil {
					logAuthAttempt(r, "jwt", true, "")
					next(w, r)
					return
				}
			}
			logAuthAttempt(r, "", false, "bearer token did not validate")
			w.WriteHeader(http.StatusUnauthorized)
		}
	}
}

// logAuthAttempt records a bearer-auth attempt against a write endpoint.
// The raw token never reaches the log; only its sanitized form does.
func logAuthAttempt(r *http.Request, provider string, success bool, errMsg string) {
	details := map[string]string{"path": r.URL.Path}
	if token, ok := bearerToken(r); ok {
		details["token"] = token
	}
	secLog.LogEvent(&logging.SecurityEvent{
		Event:     "bearer_auth",
		Provider:  provider,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
		Success:   success,
		Error:     errMsg,
		Details:   details,
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

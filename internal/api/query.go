// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package api

import (
	"strings"

	"github.com/stremin/accountengine/internal/engine"
)

// parseQuery splits a raw query string on '&' into ordered key/value
// pairs, percent-decoding each half with '+' mapped to space. Planners
// rely on encounter order, so this intentionally bypasses
// net/url.Values, which collapses repeated keys into an unordered map.
func parseQuery(raw string) ([]engine.KV, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, "&")
	kvs := make([]engine.KV, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		dk, err := queryUnescape(key)
		if err != nil {
			return nil, err
		}
		dv, err := queryUnescape(value)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, engine.KV{Key: dk, Value: dv})
	}
	return kvs, nil
}

// queryUnescape decodes a x-www-form-urlencoded component: '+' becomes a
// space, then standard percent-decoding runs over the rest.
func queryUnescape(s string) (string, error) {
	s = strings.ReplaceAll(s, "+", " ")
	return percentDecode(s)
}

func percentDecode(s string) (string, error) {
	if !strings.ContainsRune(s, '%') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", errMalformedPercentEncoding
		}
		hi, ok1 := hexVal(s[i+1])
		lo, ok2 := hexVal(s[i+2])
		if !ok1 || !ok2 {
			return "", errMalformedPercentEncoding
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package api

import (
	"testing"

	"github.com/stremin/accountengine/internal/engine"
)

func TestParseQueryPreservesOrder(t *testing.T) {
	kvs, err := parseQuery("sex_eq=m&interests_contains=A,B&limit=10")
	if err != nil {
		t.Fatalf("parseQuery failed: %v", err)
	}
	want := []engine.KV{
		{Key: "sex_eq", Value: "m"},
		{Key: "interests_contains", Value: "A,B"},
		{Key: "limit", Value: "10"},
	}
	if len(kvs) != len(want) {
		t.Fatalf("len(kvs) = %d, want %d", len(kvs), len(want))
	}
	for i, w := range want {
		if kvs[i] != w {
			t.Errorf("kvs[%d] = %+v, want %+v", i, kvs[i], w)
		}
	}
}

func TestParseQueryPlusBecomesSpace(t *testing.T) {
	kvs, err := parseQuery("fname_eq=Ivan+Ivanov")
	if err != nil {
		t.Fatalf("parseQuery failed: %v", err)
	}
	if len(kvs) != 1 || kvs[0].Value != "Ivan Ivanov" {
		t.Fatalf("kvs = %+v, want fname_eq=\"Ivan Ivanov\"", kvs)
	}
}

func TestParseQueryPercentDecodes(t *testing.T) {
	kvs, err := parseQuery("email_domain=mail%2Eru")
	if err != nil {
		t.Fatalf("parseQuery failed: %v", err)
	}
	if len(kvs) != 1 || kvs[0].Value != "mail.ru" {
		t.Fatalf("kvs = %+v, want email_domain=mail.ru", kvs)
	}
}

func TestParseQueryEmptyStringIsNil(t *testing.T) {
	kvs, err := parseQuery("")
	if err != nil {
		t.Fatalf("parseQuery failed: %v", err)
	}
	if kvs != nil {
		t.Errorf("kvs = %v, want nil", kvs)
	}
}

func TestParseQueryRejectsMalformedEscape(t *testing.T) {
	if _, err := parseQuery("sex_eq=m%2"); err == nil {
		t.Error("parseQuery with truncated escape = nil error, want error")
	}
	if _, err := parseQuery("sex_eq=m%zz"); err == nil {
		t.Error("parseQuery with non-hex escape = nil error, want error")
	}
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package auth

import "testing"

func TestNilGateAllowsAnything(t *testing.T) {
	var g *Gate
	if !g.Check("whatever") {
		t.Error("nil Gate.Check = false, want true (auth disabled)")
	}
}

func TestGateRejectsEmptyHash(t *testing.T) {
	if g := NewGate(""); g != nil {
		t.Error("NewGate(\"\") = non-nil, want nil (disabled)")
	}
}

func TestGateAcceptsMatchingToken(t *testing.T) {
	hash, err := HashToken("s3cr3t")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	g := NewGate(hash)
	if !g.Check("s3cr3t") {
		t.Error("Check(matching token) = false, want true")
	}
}

func TestGateRejectsWrongToken(t *testing.T) {
	hash, err := HashToken("s3cr3t")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	g := NewGate(hash)
	if g.Check("wrong") {
		t.Error("Check(wrong token) = true, want false")
	}
	if g.Check("") {
		t.Error("Check(\"\") = true, want false")
	}
}

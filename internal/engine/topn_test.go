// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "testing"

func ascendingInt(a, b int) bool { return a < b }

func TestTopNKeepsSmallestK(t *testing.T) {
	tn := NewTopN[int](3, ascendingInt)
	for _, v := range []int{9, 1, 8, 2, 7, 3, 6, 4, 5} {
		tn.Push(v)
	}
	got := tn.IntoSorted()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("IntoSorted() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IntoSorted()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTopNUnderCapacityKeepsAll(t *testing.T) {
	tn := NewTopN[int](5, ascendingInt)
	for _, v := range []int{3, 1, 2} {
		tn.Push(v)
	}
	if tn.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tn.Len())
	}
	got := tn.IntoSorted()
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IntoSorted()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTopNClear(t *testing.T) {
	tn := NewTopN[int](3, ascendingInt)
	tn.Push(1)
	tn.Push(2)
	tn.Clear()
	if tn.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", tn.Len())
	}
}

func TestTopNDescendingOrder(t *testing.T) {
	descending := func(a, b int) bool { return a > b }
	tn := NewTopN[int](3, descending)
	for _, v := range []int{1, 5, 3, 9, 2, 8} {
		tn.Push(v)
	}
	got := tn.IntoSorted()
	want := []int{9, 8, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IntoSorted()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

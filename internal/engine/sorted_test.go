// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "testing"

func TestInsertSorted(t *testing.T) {
	var vec []int32
	for _, v := range []int32{5, 1, 3, 1, 9, 5} {
		vec = insertSorted(vec, v)
	}
	want := []int32{1, 3, 5, 9}
	if !equalInt32Slices(vec, want) {
		t.Errorf("insertSorted sequence = %v, want %v", vec, want)
	}
}

func TestContainsSorted(t *testing.T) {
	vec := []int32{1, 3, 5, 9}
	for _, v := range []int32{1, 5, 9} {
		if !containsSorted(vec, v) {
			t.Errorf("containsSorted(%v, %d) = false, want true", vec, v)
		}
	}
	for _, v := range []int32{0, 4, 10} {
		if containsSorted(vec, v) {
			t.Errorf("containsSorted(%v, %d) = true, want false", vec, v)
		}
	}
}

func TestRemoveSorted(t *testing.T) {
	vec := []int32{1, 3, 5, 9}
	vec = removeSorted(vec, 5)
	want := []int32{1, 3, 9}
	if !equalInt32Slices(vec, want) {
		t.Errorf("removeSorted = %v, want %v", vec, want)
	}
	// removing an absent value is a no-op
	vec = removeSorted(vec, 42)
	if !equalInt32Slices(vec, want) {
		t.Errorf("removeSorted of absent value changed slice: %v", vec)
	}
}

func TestRetainAllSorted(t *testing.T) {
	a := []int32{1, 2, 3, 4, 5}
	b := []int32{2, 4, 6}
	got := retainAllSorted(a, b)
	want := []int32{2, 4}
	if !equalInt32Slices(got, want) {
		t.Errorf("retainAllSorted = %v, want %v", got, want)
	}
}

func TestMergeSorted(t *testing.T) {
	a := []int32{1, 3, 5}
	b := []int32{2, 3, 6}
	got := mergeSorted(a, b)
	want := []int32{1, 2, 3, 5, 6}
	if !equalInt32Slices(got, want) {
		t.Errorf("mergeSorted = %v, want %v", got, want)
	}
}

func TestSortedSetDifference(t *testing.T) {
	a := []int32{1, 2, 3, 4}
	b := []int32{2, 4}
	got := sortedSetDifference(a, b)
	want := []int32{1, 3}
	if !equalInt32Slices(got, want) {
		t.Errorf("sortedSetDifference = %v, want %v", got, want)
	}
}

func TestInsertLikeSortedToleratesDuplicateLikers(t *testing.T) {
	var vec []Like
	vec = insertLikeSorted(vec, Like{LikerID: 3, Ts: 10})
	vec = insertLikeSorted(vec, Like{LikerID: 1, Ts: 20})
	vec = insertLikeSorted(vec, Like{LikerID: 3, Ts: 30})

	if len(vec) != 3 {
		t.Fatalf("len(vec) = %d, want 3 (duplicate likers are tolerated, not merged)", len(vec))
	}
	for i := 1; i < len(vec); i++ {
		if vec[i-1].LikerID > vec[i].LikerID {
			t.Errorf("vec not sorted by LikerID: %v", vec)
		}
	}
}

func equalInt32Slices(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "testing"

func TestInterestSetAddContains(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want []int
	}{
		{name: "empty", ids: nil, want: nil},
		{name: "single low bit", ids: []int{1}, want: []int{1}},
		{name: "single high bit", ids: []int{127}, want: []int{127}},
		{name: "spans both words", ids: []int{3, 64, 100}, want: []int{3, 64, 100}},
		{name: "out of range ignored", ids: []int{0, 128, -1}, want: nil},
		{name: "duplicates collapse", ids: []int{5, 5, 5}, want: []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := InterestSetFromList(tt.ids)
			if got := s.ToSlice(); !equalIntSlices(got, tt.want) {
				t.Errorf("ToSlice() = %v, want %v", got, tt.want)
			}
			for _, id := range tt.want {
				if !s.Contains(id) {
					t.Errorf("Contains(%d) = false, want true", id)
				}
			}
		})
	}
}

func TestInterestSetContainsAllAny(t *testing.T) {
	a := InterestSetFromList([]int{1, 2, 3, 64})
	b := InterestSetFromList([]int{2, 3})
	c := InterestSetFromList([]int{5, 6})

	if !a.ContainsAll(b) {
		t.Error("a should contain all of b")
	}
	if a.ContainsAll(c) {
		t.Error("a should not contain all of c")
	}
	if !a.ContainsAny(c.union(b)) {
		t.Error("a should share members with b ∪ c")
	}
	if a.ContainsAny(c) {
		t.Error("a and c share no members")
	}
}

func TestInterestSetCount(t *testing.T) {
	s := InterestSetFromList([]int{1, 2, 63, 64, 65, 127})
	if got := s.Count(); got != 6 {
		t.Errorf("Count() = %d, want 6", got)
	}
	if EmptyInterestSet().Count() != 0 {
		t.Error("EmptyInterestSet().Count() should be 0")
	}
}

func TestInterestSetCountCommon(t *testing.T) {
	a := InterestSetFromList([]int{1, 2, 3, 64, 127})
	b := InterestSetFromList([]int{2, 3, 127})
	if got := a.CountCommon(b); got != 3 {
		t.Errorf("CountCommon() = %d, want 3", got)
	}
}

// union is a tiny test helper: InterestSet has no public union, but
// tests only need it to build a combined membership check.
func (s InterestSet) union(other InterestSet) InterestSet {
	return InterestSet{lo: s.lo | other.lo, hi: s.hi | other.hi}
}

func equalIntSlices(a, b []int) bool {
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

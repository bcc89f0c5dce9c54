// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "math/bits"

// maxInterest is the highest interest id an InterestSet can hold.
const maxInterest = 127

// InterestSet is a fixed-width bitset over the integer range [1,127],
// stored as two uint64 words so it fits in 128 bits and stays on the
// stack on the hottest matcher path. Id 0 is never a member.
type InterestSet struct {
	lo uint64 // bits 0..63  (bit i represents interest id i)
	hi uint64 // bits 64..127
}

// EmptyInterestSet returns the empty set.
func EmptyInterestSet() InterestSet { return InterestSet{} }

// InterestSetFromList builds a set from a list of interest ids.
// Ids outside [1,127] are ignored.
func InterestSetFromList(ids []int) InterestSet {
	var s InterestSet
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts x into the set; no-op if x is outside [1,127].
func (s *InterestSet) Add(x int) {
	if x < 1 || x > maxInterest {
		return
	}
	if x < 64 {
		s.lo |= 1 << uint(x)
	} else {
		s.hi |= 1 << uint(x-64)
	}
}

// IsEmpty reports whether the set has no members.
func (s InterestSet) IsEmpty() bool {
	return s.lo == 0 && s.hi == 0
}

// Contains reports whether x is a member. Per the invariant, Contains
// can only ever be true for x in [1,127].
func (s InterestSet) Contains(x int) bool {
	if x < 1 || x > maxInterest {
		return false
	}
	if x < 64 {
		return s.lo&(1<<uint(x)) != 0
	}
	return s.hi&(1<<uint(x-64)) != 0
}

// ContainsAll reports whether every member of other is also in s.
func (s InterestSet) ContainsAll(other InterestSet) bool {
	return s.lo&other.lo == other.lo && s.hi&other.hi == other.hi
}

// ContainsAny reports whether s and other share at least one member.
func (s InterestSet) ContainsAny(other InterestSet) bool {
	return s.lo&other.lo != 0 || s.hi&other.hi != 0
}

// Count returns the number of members.
func (s InterestSet) Count() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}

// CountCommon returns the number of members shared with other.
func (s InterestSet) CountCommon(other InterestSet) int {
	return bits.OnesCount64(s.lo&other.lo) + bits.OnesCount64(s.hi&other.hi)
}

// ToSlice returns the members in ascending order.
func (s InterestSet) ToSlice() []int {
	out := make([]int, 0, s.Count())
	for x := 1; x <= 63; x++ {
		if s.lo&(1<<uint(x)) != 0 {
			out = append(out, x)
		}
	}
	for x := 64; x <= maxInterest; x++ {
		if s.hi&(1<<uint(x-64)) != 0 {
			out = append(out, x)
		}
	}
	return out
}

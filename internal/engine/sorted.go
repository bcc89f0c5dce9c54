// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "sort"

// insertSorted inserts value into vec (ascending, duplicate-free) if
// not already present, and returns the resulting slice.
func insertSorted(vec []int32, value int32) []int32 {
	pos := sort.Search(len(vec), func(i int) bool { return vec[i] >= value })
	if pos < len(vec) && vec[pos] == value {
		return vec
	}
	vec = append(vec, 0)
	copy(vec[pos+1:], vec[pos:])
	vec[pos] = value
	return vec
}

// containsSorted reports whether value is present in an ascending
// slice.
func containsSorted(vec []int32, value int32) bool {
	pos := sort.Search(len(vec), func(i int) bool { return vec[i] >= value })
	return pos < len(vec) && vec[pos] == value
}

// removeSorted removes value from vec if present, returning the
// resulting slice.
func removeSorted(vec []int32, value int32) []int32 {
	pos := sort.Search(len(vec), func(i int) bool { return vec[i] >= value })
	if pos < len(vec) && vec[pos] == value {
		vec = append(vec[:pos], vec[pos+1:]...)
	}
	return vec
}

// retainAllSorted keeps only the elements of vec1 that also appear in
// vec2 (both ascending), in place, preserving order.
func retainAllSorted(vec1 []int32, vec2 []int32) []int32 {
	pos1 := 0
	pos2 := 0
	for _, v2 := range vec2 {
		if pos2 >= len(vec1) {
			break
		}
		for pos2 < len(vec1) && vec1[pos2] < v2 {
			pos2++
		}
		if pos2 < len(vec1) && vec1[pos2] == v2 {
			if pos1 < pos2 {
				vec1[pos1] = v2
			}
			pos1++
			pos2++
		}
	}
	return vec1[:pos1]
}

// mergeSorted returns the sorted union (with duplicates collapsed) of
// two ascending slices.
func mergeSorted(vec1, vec2 []int32) []int32 {
	result := make([]int32, 0, len(vec1)+len(vec2))
	i, j := 0, 0
	for i < len(vec1) && j < len(vec2) {
		switch {
		case vec1[i] == vec2[j]:
			result = append(result, vec1[i])
			i++
			j++
		case vec1[i] < vec2[j]:
			result = append(result, vec1[i])
			i++
		default:
			result = append(result, vec2[j])
			j++
		}
	}
	result = append(result, vec1[i:]...)
	result = append(result, vec2[j:]...)
	return result
}

// sortedSetDifference returns the elements of vec1 not present in
// vec2 (both ascending).
func sortedSetDifference(vec1, vec2 []int32) []int32 {
	result := make([]int32, 0, len(vec1))
	i, j := 0, 0
	for i < len(vec1) {
		for j < len(vec2) && vec2[j] < vec1[i] {
			j++
		}
		if j < len(vec2) && vec2[j] == vec1[i] {
			i++
			continue
		}
		result = append(result, vec1[i])
		i++
	}
	return result
}

// insertLikeSorted inserts a Like keyed by LikerID into an
// ascending-by-LikerID slice that tolerates duplicate liker ids (one
// liker may like the same likee more than once with different
// timestamps; both entries are kept and merged at read time by
// SUGGEST). Matches the original's "binary_search then insert at
// either branch" behavior: both Ok and Err results from the search
// insert at the found position.
func insertLikeSorted(vec []Like, l Like) []Like {
	pos := sort.Search(len(vec), func(i int) bool { return vec[i].LikerID >= l.LikerID })
	vec = append(vec, Like{})
	copy(vec[pos+1:], vec[pos:])
	vec[pos] = l
	return vec
}

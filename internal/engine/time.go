// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "time"

// yearFromSeconds returns the UTC calendar year of a unix-seconds
// timestamp.
func yearFromSeconds(seconds int32) int32 {
	return int32(time.Unix(int64(seconds), 0).UTC().Year())
}

// secondsFromYear returns the unix-seconds timestamp of January 1st,
// 00:00:00 UTC of the given year, the lower bound of a "[from,to)"
// year-to-seconds range used by GROUP's birth/joined year predicates.
func secondsFromYear(year int32) int32 {
	t := time.Date(int(year), time.January, 1, 0, 0, 0, 0, time.UTC)
	return int32(t.Unix())
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "testing"

func TestYearFromSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds int32
		want    int32
	}{
		{name: "epoch", seconds: 0, want: 1970},
		{name: "y2k", seconds: 946684800, want: 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearFromSeconds(tt.seconds); got != tt.want {
				t.Errorf("yearFromSeconds(%d) = %d, want %d", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestSecondsFromYearRoundTrip(t *testing.T) {
	for _, year := range []int32{1970, 1990, 2000, 2020} {
		got := yearFromSeconds(secondsFromYear(year))
		if got != year {
			t.Errorf("yearFromSeconds(secondsFromYear(%d)) = %d, want %d", year, got, year)
		}
	}
}

func TestBirthYearPassesThroughNullDate(t *testing.T) {
	if got := birthYear(NullDate); got != NullDate {
		t.Errorf("birthYear(NullDate) = %d, want NullDate", got)
	}
	if got := birthYear(0); got != 1970 {
		t.Errorf("birthYear(0) = %d, want 1970", got)
	}
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import (
	"regexp"
	"strconv"
)

// phonePattern matches the only phone shape the domain accepts:
// literal "8", a 3-digit area/operator code in parens, then 1-9
// further digits.
var phonePattern = regexp.MustCompile(`^8\((\d{3})\)(\d{1,9})$`)

// Phone is the parsed representation of a phone number. Number is
// the subscriber digits prefixed with a literal "1" and parsed as an
// integer, which preserves leading zeros that a bare int conversion
// would otherwise drop (e.g. "0012345" stays distinguishable from
// "12345" because "10012345" != "112345").
type Phone struct {
	Code   int32
	Number int64
}

// ParsePhone parses s into a Phone, or reports ok=false if s does not
// match the accepted shape.
func ParsePhone(s string) (Phone, bool) {
	m := phonePattern.FindStringSubmatch(s)
	if m == nil {
		return Phone{}, false
	}
	code, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return Phone{}, false
	}
	number, err := strconv.ParseInt("1"+m[2], 10, 64)
	if err != nil {
		return Phone{}, false
	}
	return Phone{Code: int32(code), Number: number}, true
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import (
	"sort"
	"strings"
)

// keySet canonicalizes a set of predicate-key names into a single
// string usable as a map key: sorted, then joined. Two calls with the
// same names in any order produce the same string, which is how the
// planner matches a dynamic set of active predicates against a
// precomputed shape without a combinatorial chain of conditionals.
func keySet(names ...string) string {
	cp := append([]string(nil), names...)
	sort.Strings(cp)
	return strings.Join(cp, "\x00")
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

// Dict interns strings into dense positive integer codes. Code 0 is
// reserved to mean "absent" and is never assigned to a value. Codes are
// stable for the life of the process; entries are never removed, even
// when every account referencing a value is patched away from it.
//
// Not safe for concurrent use on its own: callers (Store) serialize
// access with their own lock.
type Dict struct {
	keyToCode map[string]int32
	codeToKey []string // index 0 unused
}

// NewDict returns an empty dictionary with code 0 reserved.
func NewDict() *Dict {
	return &Dict{
		keyToCode: make(map[string]int32),
		codeToKey: []string{""},
	}
}

// GetKey interns s, returning its existing code or assigning the next
// free one. Empty string always maps to 0.
func (d *Dict) GetKey(s string) int32 {
	if s == "" {
		return 0
	}
	if code, ok := d.keyToCode[s]; ok {
		return code
	}
	code := int32(len(d.codeToKey))
	d.keyToCode[s] = code
	d.codeToKey = append(d.codeToKey, s)
	return code
}

// GetExistingKey returns (code, true) if s has already been interned,
// or (0, false) otherwise. It never assigns a new code, so it is safe
// to call from read-only query planners.
func (d *Dict) GetExistingKey(s string) (int32, bool) {
	if s == "" {
		return 0, false
	}
	code, ok := d.keyToCode[s]
	return code, ok
}

// GetValue decodes code back to its string, or "" for code 0 or any
// code never assigned.
func (d *Dict) GetValue(code int32) string {
	if code <= 0 || int(code) >= len(d.codeToKey) {
		return ""
	}
	return d.codeToKey[code]
}

// MaxKey returns the highest code assigned so far.
func (d *Dict) MaxKey() int32 {
	return int32(len(d.codeToKey) - 1)
}

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package engine is the in-memory analytical query engine over the
// accounts dataset: dictionary-encoded attributes, bitset interests,
// posting-list secondary indexes, and the four query planners (FILTER,
// GROUP, RECOMMEND, SUGGEST) plus the three write mutations (insert,
// patch, append-likes).
//
// The package has no dependency on the HTTP layer, JSON encoding, or
// any third-party library: it is pure data structures and algorithms,
// guarded by a single reader/writer lock, exposed through Store.
package engine

import "errors"

// Sentinel errors the engine returns; the HTTP layer maps these to
// status codes (400, 404) without leaking any message to clients.
var (
	// ErrBadRequest marks a malformed payload, invalid enum value,
	// duplicate unique key on write, unparseable query parameter, or
	// invalid limit/order/null value.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound marks a patch, recommend, or suggest call against an
	// id that does not exist in the store.
	ErrNotFound = errors.New("not found")
)

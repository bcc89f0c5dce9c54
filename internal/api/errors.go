// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package api wires the engine's four queries and three mutations to
// an HTTP surface of plain status codes and bare JSON bodies, with no
// response envelope.
package api

import "errors"

// errMalformedPercentEncoding is returned by parseQuery when a '%' escape
// in a query string is not followed by two valid hex digits.
var errMalformedPercentEncoding = errors.New("malformed percent-encoding in query string")

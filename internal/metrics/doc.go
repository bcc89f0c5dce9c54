// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package metrics provides Prometheus instrumentation for the four
// query planners (FILTER, GROUP, RECOMMEND, SUGGEST) and the three
// mutations (insert, patch, append-likes), plus generic API request
// counters used by internal/middleware.
package metrics

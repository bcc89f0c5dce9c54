// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package cache provides a response cache external to the engine,
// consulted by query handlers before planning and flushed entirely on
// every successful mutation. There is no per-key TTL or invalidation
// logic: the engine gives no way to know which cached query results a
// given mutation touched, so flush-everything is the only correct
// policy.
package cache

import "sync"

// Cache stores fully-rendered response bodies keyed by the request's
// method, path and raw query (callers build the key; see api.cacheKey).
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates an empty response cache.
func New() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// Get returns the cached body for key, if present.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.entries[key]
	return body, ok
}

// Set stores body under key, overwriting any previous entry.
func (c *Cache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
}

// Flush discards every cached entry. Called after every successful
// mutation (insert/patch/append-likes), since any write can change the
// result of any previously cached query.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
}

// Len reports the number of cached entries, for metrics/tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

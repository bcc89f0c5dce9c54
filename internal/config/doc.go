// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package config loads server configuration in three layers: struct
// defaults, then an optional YAML file, then environment variables,
// via koanf. There is one process, one in-memory store, and one
// optional static bearer token, with no multi-provider auth or
// dynamic-reload machinery.
package config

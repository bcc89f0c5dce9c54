// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package main is the entry point for the accounts query server.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from environment variables and an
//     optional config file (Koanf v2)
//  2. Logging: configure the global zerolog logger from that config
//  3. Store: read options.txt for the startup clock, then bulk-load
//     data.zip into an in-memory engine.Store
//  4. Event bus: an in-process mutation publisher, consumed by the
//     optional audit log and the optional websocket feed
//  5. Auth: an optional bearer-token gate on the three write endpoints
//  6. Supervisor tree: a two-layer suture tree (data: audit follower;
//     api: HTTP server + websocket hub) for failure isolation
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables (ACCOUNTENGINE_ prefix), an
// optional config.yaml, then built-in defaults.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM, stopping
// the HTTP listener and any background services through the
// supervisor tree.
package main

// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package config

import "errors"

var (
	errDataDirRequired              = errors.New("config: data_dir is required")
	errInvalidPort                  = errors.New("config: server.port must be between 1 and 65535")
	errAuthEnabledWithoutCredential = errors.New("config: auth.enabled requires auth.token_hash or auth.jwt_secret")
	errAuditEnabledWithoutPath      = errors.New("config: audit.enabled requires audit.path")
)

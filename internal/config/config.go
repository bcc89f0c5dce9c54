// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package config

import "time"

// Config is the full set of settings the server reads at startup.
type Config struct {
	// DataDir holds options.txt and data.zip, loaded once at startup.
	DataDir string `koanf:"data_dir"`

	// NowOverride, if non-zero, replaces the "now" timestamp normally
	// read from options.txt, for tests and demos that want a fixed
	// clock.
	NowOverride int32 `koanf:"now_override"`

	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Cache   CacheConfig   `koanf:"cache"`
	Auth    AuthConfig    `koanf:"auth"`
	Audit   AuditConfig   `koanf:"audit"`
}

// ServerConfig is the HTTP listen address.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// LoggingConfig mirrors internal/logging.Config's koanf-relevant fields.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CacheConfig toggles the response cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`
}

// AuthConfig toggles and configures the write-endpoint bearer gate.
type AuthConfig struct {
	Enabled bool `koanf:"enabled"`
	// TokenHash is the bcrypt hash of the static bearer token, produced
	// by auth.HashToken. Empty disables the static-token form.
	TokenHash string `koanf:"token_hash"`
	// JWTSecret, if set, enables the signed-token form as an
	// alternative to the static token.
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
}

// AuditConfig toggles the badger-backed mutation log.
type AuditConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Default returns the built-in defaults, applied before the config
// file and environment variable layers.
func Default() *Config {
	return &Config{
		DataDir: "./data",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3857,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Auth: AuthConfig{
			Enabled:        false,
			SessionTimeout: 24 * time.Hour,
		},
		Audit: AuditConfig{
			Enabled: false,
			Path:    "./data/audit",
		},
	}
}

// Validate rejects configurations that would fail at startup anyway.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errDataDirRequired
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errInvalidPort
	}
	if c.Auth.Enabled && c.Auth.TokenHash == "" && c.Auth.JWTSecret == "" {
		return errAuthEnabledWithoutCredential
	}
	if c.Audit.Enabled && c.Audit.Path == "" {
		return errAuditEnabledWithoutPath
	}
	return nil
}

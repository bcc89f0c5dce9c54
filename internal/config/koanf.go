// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where a config file is searched for, in
// priority order. The first one found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/accountengine/config.yaml",
}

// ConfigPathEnvVar overrides the search paths with an exact file.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds a Config from three layers, later layers overriding
// earlier ones: struct defaults, an optional YAML file, then
// environment variables (ACCOUNTENGINE_SERVER_PORT etc).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("ACCOUNTENGINE_", ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// configSections lists the nested Config fields, so envTransform knows
// where to place the dot: everything else (data_dir, now_override)
// stays a flat top-level key.
var configSections = map[string]bool{
	"server":  true,
	"logging": true,
	"cache":   true,
	"auth":    true,
	"audit":   true,
}

// envTransform maps the remainder after the ACCOUNTENGINE_ prefix to a
// koanf path, e.g. SERVER_PORT -> server.port, AUTH_TOKEN_HASH ->
// auth.token_hash, DATA_DIR -> data_dir.
func envTransform(s string) string {
	s = strings.ToLower(s)
	if i := strings.Index(s, "_"); i >= 0 && configSections[s[:i]] {
		return s[:i] + "." + s[i+1:]
	}
	return s
}

// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

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

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/linkside/config.yaml",
	"/etc/linkside/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config
// file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults from defaultConfig
//  2. Config File: optional YAML file (if one exists)
//  3. Environment Variables: override any setting
//
// Precedence is ENV > File > Defaults. The result is validated before
// being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// CORS_ORIGINS=https://a,https://b -> api.cors_origins
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile searches the env override and then the default paths.
// Returns the first file found, or empty string.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when they arrive as strings from the environment.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as plain strings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return empty string and are skipped, so unrelated
// environment variables never pollute the config.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - RANKING_FRIENDS_HALF_LIFE_HOURS -> ranking.friends_half_life_hours
//   - RANKING_PAGE_SIZE -> ranking.limits.page_size
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":          "server.host",
		"http_port":          "server.port",
		"http_read_timeout":  "server.read_timeout",
		"http_write_timeout": "server.write_timeout",
		"shutdown_timeout":   "server.shutdown_timeout",

		// API mappings
		"cors_origins":        "api.cors_origins",
		"rate_limit_requests": "api.rate_limit_reqs",
		"rate_limit_window":   "api.rate_limit_window",
		"disable_rate_limit":  "api.rate_limit_disabled",

		// Ranking mappings
		"ranking_friends_half_life_hours":     "ranking.friends_half_life_hours",
		"ranking_public_half_life_hours":      "ranking.public_half_life_hours",
		"ranking_engagement_weight":           "ranking.engagement_weight",
		"ranking_max_engagement_boost":        "ranking.max_engagement_boost",
		"ranking_same_city_boost":             "ranking.same_city_boost",
		"ranking_same_course_boost":           "ranking.same_course_boost",
		"ranking_tag_boost":                   "ranking.tag_boost",
		"ranking_max_tag_boost":               "ranking.max_tag_boost",
		"ranking_new_author_boost":            "ranking.new_author_boost",
		"ranking_new_author_max_age_days":     "ranking.new_author_max_age_days",
		"ranking_new_author_max_posts":        "ranking.new_author_max_posts",
		"ranking_max_consecutive_same_author": "ranking.max_consecutive_same_author",
		"ranking_recent_weight":               "ranking.buckets.recent_weight",
		"ranking_trending_weight":             "ranking.buckets.trending_weight",
		"ranking_new_creator_weight":          "ranking.buckets.new_creator_weight",
		"ranking_injection_interval":          "ranking.buckets.injection_interval",
		"ranking_fetch_limit":                 "ranking.limits.fetch_limit",
		"ranking_page_size":                   "ranking.limits.page_size",
		"ranking_seen_id_cap":                 "ranking.limits.seen_id_cap",
		"ranking_primary_window_days":         "ranking.windows.primary_days",
		"ranking_fallback_window_days":        "ranking.windows.fallback_days",
		"ranking_extended_window_days":        "ranking.windows.extended_days",

		// Store mappings
		"seed_demo_data": "store.seed_demo_data",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload. The caller is
// responsible for mutex protection when swapping configuration.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}

// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/propagation"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/careerpath/config.yaml",
	"/etc/careerpath/config.yml",
}

// ConfigPathEnvVar names the variable that points at a config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, the lowest configuration layer.
func defaultConfig() *Config {
	rc := recommend.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 15 * time.Second,
			RequestTimeout:  45 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Store: StoreConfig{
			Backend:    BackendMemory,
			BadgerPath: "/data/careerpath",
		},
		Fetch: FetchConfig{
			MaxRetries:          2,
			InitialBackoff:      100 * time.Millisecond,
			MaxBackoff:          2 * time.Second,
			CallTimeout:         5 * time.Second,
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
			CatalogTTL:          5 * time.Minute,
			RefreshInterval:     0,
		},
		Recommend: RecommendConfig{
			Strategy:                  rc.Strategy,
			TopK:                      rc.TopK,
			PrereqWeight:              rc.Baseline.PrereqWeight,
			StyleWeight:               rc.Baseline.StyleWeight,
			Damping:                   rc.Baseline.OverlapDamping,
			Epsilon:                   rc.Epsilon,
			ScoreDecimals:             rc.ScoreDecimals,
			MaxConcurrentPropagations: rc.Limits.MaxConcurrentPropagations,
			FetchTimeout:              rc.Limits.FetchTimeout,
			PropagationTimeout:        rc.Limits.PropagationTimeout,
			Propagation:               propagation.DefaultConfig(),
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file and
// environment variables, in increasing priority, then validates it.
func LoadWithKoanf() (*Config, error) {
	k, err := load()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func load() (*koanf.Koanf, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment, e.g. SUPABASE_URL -> supabase.url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	return k, nil
}

// findConfigFile returns the first existing config file, or "".
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

// sliceConfigPaths are parsed as comma-separated lists when set from the
// environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
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

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_request_timeout":  "server.request_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Store
	"store_backend":      "store.backend",
	"badger_path":        "store.badger_path",
	"badger_in_memory":   "store.in_memory",
	"badger_sync_writes": "store.sync_writes",
	"seed_file":          "store.seed_file",

	// Supabase
	"supabase_url": "supabase.url",
	"supabase_key": "supabase.key",

	// Fetch resilience
	"fetch_max_retries":           "fetch.max_retries",
	"fetch_initial_backoff":       "fetch.initial_backoff",
	"fetch_max_backoff":           "fetch.max_backoff",
	"fetch_call_timeout":          "fetch.call_timeout",
	"fetch_breaker_max_requests":  "fetch.breaker_max_requests",
	"fetch_breaker_interval":      "fetch.breaker_interval",
	"fetch_breaker_timeout":       "fetch.breaker_timeout",
	"fetch_breaker_min_requests":  "fetch.breaker_min_requests",
	"fetch_breaker_failure_ratio": "fetch.breaker_failure_ratio",
	"catalog_cache_ttl":           "fetch.catalog_ttl",
	"catalog_refresh_interval":    "fetch.refresh_interval",

	// Recommendation engine
	"recommend_strategy":            "recommend.strategy",
	"recommend_top_k":               "recommend.top_k",
	"recommend_prereq_weight":       "recommend.prereq_weight",
	"recommend_style_weight":        "recommend.style_weight",
	"recommend_overlap_damping":     "recommend.overlap_damping",
	"recommend_epsilon":             "recommend.epsilon",
	"recommend_score_decimals":      "recommend.score_decimals",
	"recommend_max_propagations":    "recommend.max_concurrent_propagations",
	"recommend_fetch_timeout":       "recommend.fetch_timeout",
	"recommend_propagation_timeout": "recommend.propagation_timeout",
	"gcn_hidden_dim":                "recommend.propagation.hidden_dim",
	"gcn_iterations":                "recommend.propagation.iterations",
	"gcn_learning_rate":             "recommend.propagation.learning_rate",
	"gcn_seed":                      "recommend.propagation.seed",
}

// envTransformFunc maps an environment variable to its koanf path. Unmapped
// variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// GetKoanfInstance returns a Koanf instance loaded with every layer, for
// callers that need raw key access. Errors yield an empty instance.
func GetKoanfInstance() *koanf.Koanf {
	k, err := load()
	if err != nil {
		return koanf.New(".")
	}
	return k
}

// WatchConfigFile calls callback whenever the file at path changes.
func WatchConfigFile(path string, callback func()) error {
	return file.Provider(path).Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}

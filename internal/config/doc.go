// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package config provides centralized configuration management for CareerPath.

Configuration is assembled with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file, found via CONFIG_PATH or DefaultConfigPaths
 3. Environment variables listed in envTransformFunc

Unmapped environment variables are ignored so unrelated process state never
leaks into the configuration.

# Configuration Structure

  - ServerConfig: HTTP listener and timeouts
  - LoggingConfig: zerolog level, format and caller annotation
  - SecurityConfig: CORS origins and per-IP rate limiting
  - StoreConfig: profile store backend (supabase, badger or memory) and seed file
  - SupabaseConfig: PostgREST endpoint and key
  - FetchConfig: retries, circuit breaker and catalog cache around the store
  - RecommendConfig: scoring strategy, weights, limits and propagation

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	engine, err := recommend.NewEngine(cfg.EngineConfig(), store, logger)

# Environment Variables

Common variables:

  - SUPABASE_URL, SUPABASE_KEY: remote store credentials
  - STORE_BACKEND: supabase, badger or memory (default memory)
  - RECOMMEND_STRATEGY: baseline or graph (default baseline)
  - RECOMMEND_TOP_K: number of recommendations (default 5)
  - HTTP_PORT: listen port (default 8080)
  - LOG_LEVEL, LOG_FORMAT: logging (default info, json)
  - CORS_ORIGINS: comma-separated allowed origins

Config is immutable after loading and safe for concurrent reads.
*/
package config

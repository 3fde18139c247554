// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/profile"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/propagation"
)

// Store backends accepted by StoreConfig.Backend.
const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendSupabase = "supabase"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
	Store     StoreConfig     `koanf:"store"`
	Supabase  SupabaseConfig  `koanf:"supabase"`
	Fetch     FetchConfig     `koanf:"fetch"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RequestTimeout bounds one API request, recommendation included.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds cross-origin and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// StoreConfig selects and configures the profile store.
type StoreConfig struct {
	// Backend is memory, badger or supabase.
	Backend string `koanf:"backend"`

	// BadgerPath is the badger data directory.
	BadgerPath string `koanf:"badger_path"`

	// InMemory runs badger without touching disk.
	InMemory bool `koanf:"in_memory"`

	// SyncWrites fsyncs every badger write.
	SyncWrites bool `koanf:"sync_writes"`

	// SeedFile is a YAML or JSON file imported at startup into the memory or
	// badger store. Ignored for supabase.
	SeedFile string `koanf:"seed_file"`
}

// SupabaseConfig holds the PostgREST endpoint of the remote store.
type SupabaseConfig struct {
	URL string `koanf:"url"`
	Key string `koanf:"key"`
}

// FetchConfig tunes the resilience wrapper around the store.
type FetchConfig struct {
	MaxRetries          uint64        `koanf:"max_retries"`
	InitialBackoff      time.Duration `koanf:"initial_backoff"`
	MaxBackoff          time.Duration `koanf:"max_backoff"`
	CallTimeout         time.Duration `koanf:"call_timeout"`
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	CatalogTTL          time.Duration `koanf:"catalog_ttl"`

	// RefreshInterval reloads the catalog in the background; 0 disables it.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// RecommendConfig holds the recommendation engine settings.
type RecommendConfig struct {
	Strategy      string  `koanf:"strategy"`
	TopK          int     `koanf:"top_k"`
	PrereqWeight  float64 `koanf:"prereq_weight"`
	StyleWeight   float64 `koanf:"style_weight"`
	Damping       float64 `koanf:"overlap_damping"`
	Epsilon       float64 `koanf:"epsilon"`
	ScoreDecimals int     `koanf:"score_decimals"`

	MaxConcurrentPropagations int           `koanf:"max_concurrent_propagations"`
	FetchTimeout              time.Duration `koanf:"fetch_timeout"`
	PropagationTimeout        time.Duration `koanf:"propagation_timeout"`

	Propagation propagation.Config `koanf:"propagation"`
}

// EngineConfig converts the recommend section to the engine's configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Strategy: r.Strategy,
		TopK:     r.TopK,
		Baseline: recommend.BaselineConfig{
			PrereqWeight:   r.PrereqWeight,
			StyleWeight:    r.StyleWeight,
			OverlapDamping: r.Damping,
		},
		Epsilon:       r.Epsilon,
		ScoreDecimals: r.ScoreDecimals,
		Limits: recommend.LimitsConfig{
			MaxConcurrentPropagations: r.MaxConcurrentPropagations,
			FetchTimeout:              r.FetchTimeout,
			PropagationTimeout:        r.PropagationTimeout,
		},
		Propagation: r.Propagation,
	}
}

// ResilienceConfig converts the fetch section for profile.NewResilient.
func (c *Config) ResilienceConfig() profile.ResilienceConfig {
	f := c.Fetch
	return profile.ResilienceConfig{
		MaxRetries:          f.MaxRetries,
		InitialBackoff:      f.InitialBackoff,
		MaxBackoff:          f.MaxBackoff,
		CallTimeout:         f.CallTimeout,
		BreakerMaxRequests:  f.BreakerMaxRequests,
		BreakerInterval:     f.BreakerInterval,
		BreakerTimeout:      f.BreakerTimeout,
		BreakerMinRequests:  f.BreakerMinRequests,
		BreakerFailureRatio: f.BreakerFailureRatio,
		CatalogTTL:          f.CatalogTTL,
	}
}

// LoggerConfig converts the logging section for logging.Init.
func (c *Config) LoggerConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}

// BadgerConfig converts the store section for profile.OpenBadgerStore.
func (c *Config) BadgerConfig() profile.BadgerConfig {
	return profile.BadgerConfig{
		Path:       c.Store.BadgerPath,
		InMemory:   c.Store.InMemory,
		SyncWrites: c.Store.SyncWrites,
	}
}

// SupabaseStoreConfig converts the supabase section for profile.NewSupabaseStore.
func (c *Config) SupabaseStoreConfig() profile.SupabaseConfig {
	return profile.SupabaseConfig{URL: c.Supabase.URL, Key: c.Supabase.Key}
}

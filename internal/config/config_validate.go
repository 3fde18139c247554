// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/careerpath/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits keeps rate limiting within sensible bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMemory:
		return nil
	case BackendBadger:
		if !c.Store.InMemory && c.Store.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when STORE_BACKEND=badger")
		}
		return nil
	case BackendSupabase:
		return c.validateSupabase()
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, badger, supabase; got %q", c.Store.Backend)
	}
}

func (c *Config) validateSupabase() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("SUPABASE_URL is required when STORE_BACKEND=supabase")
	}
	u, err := url.Parse(c.Supabase.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SUPABASE_URL must be an http(s) URL, got %q", c.Supabase.URL)
	}
	if c.Supabase.Key == "" {
		return fmt.Errorf("SUPABASE_KEY is required when STORE_BACKEND=supabase")
	}
	if containsPlaceholder(c.Supabase.Key) {
		return fmt.Errorf("SUPABASE_KEY appears to be a placeholder value")
	}
	return nil
}

func (c *Config) validateFetch() error {
	f := c.Fetch
	if f.InitialBackoff <= 0 || f.MaxBackoff < f.InitialBackoff {
		return fmt.Errorf("fetch backoff must satisfy 0 < initial_backoff <= max_backoff")
	}
	if f.CallTimeout < 0 {
		return fmt.Errorf("FETCH_CALL_TIMEOUT must not be negative")
	}
	if f.BreakerFailureRatio <= 0 || f.BreakerFailureRatio > 1 {
		return fmt.Errorf("FETCH_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", f.BreakerFailureRatio)
	}
	if f.BreakerTimeout <= 0 {
		return fmt.Errorf("FETCH_BREAKER_TIMEOUT must be positive")
	}
	if f.CatalogTTL < 0 || f.RefreshInterval < 0 {
		return fmt.Errorf("catalog ttl and refresh interval must not be negative")
	}
	return nil
}

// ShouldWarnAboutCORS reports a wildcard origin, which is logged at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

var placeholderPatterns = []string{"changeme", "your-", "your_", "placeholder", "<", "xxx"}

// containsPlaceholder catches keys copied verbatim from example configs.
func containsPlaceholder(value string) bool {
	lower := strings.ToLower(value)
	for _, p := range placeholderPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

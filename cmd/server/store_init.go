// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/profile"
)

// initStore opens the configured backend and imports the seed file when one
// is set. The caller owns the returned store and must Close it.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (profile.Store, error) {
	var seed *profile.Seed
	if cfg.Store.SeedFile != "" && cfg.Store.Backend != config.BackendSupabase {
		s, err := profile.LoadSeedFile(cfg.Store.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		seed = s
	}

	switch cfg.Store.Backend {
	case config.BackendBadger:
		store, err := profile.OpenBadgerStore(cfg.BadgerConfig(), logger)
		if err != nil {
			return nil, err
		}
		if seed != nil {
			if err := store.Import(ctx, seed); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("import seed: %w", err)
			}
		}
		return store, nil

	case config.BackendSupabase:
		if cfg.Store.SeedFile != "" {
			logger.Warn().Str("seed_file", cfg.Store.SeedFile).Msg("Seed file ignored for supabase backend")
		}
		return profile.NewSupabaseStore(cfg.SupabaseStoreConfig(), logger)

	default:
		store := profile.NewMemoryStore(logger)
		if seed != nil {
			store.Import(seed)
		} else {
			logger.Warn().Msg("Memory store started without SEED_FILE; every lookup will return not found")
		}
		return store, nil
	}
}

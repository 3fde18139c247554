// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/algorithms"
)

// initRecommend builds the engine and installs the configured strategy.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, fetcher recommend.ProfileFetcher, logger zerolog.Logger) (*recommend.Engine, error) {
	ec := cfg.EngineConfig()

	engine, err := recommend.NewEngine(ec, fetcher, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	strategy, err := algorithms.New("", ec)
	if err != nil {
		return nil, err
	}
	engine.SetStrategy(strategy)

	logger.Info().
		Str("strategy", strategy.Name()).
		Int("top_k", ec.TopK).
		Int("max_propagations", ec.Limits.MaxConcurrentPropagations).
		Int64("seed", ec.Propagation.Seed).
		Msg("Recommendation engine initialized")
	return engine, nil
}

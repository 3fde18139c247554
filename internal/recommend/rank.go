// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
)

type rankedCareer struct {
	index int
	score float64
}

// Rank orders the catalog by score and returns the top entries along with the
// number of scores that had to be coerced.
//
// scores must be in catalog order with one entry per career. Non-finite scores
// become 0 and are logged. When decimals is positive, scores are rounded before
// sorting so that ties are decided by catalog order on the rounded values.
// The result has min(topK, len(catalog)) entries.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Rank(catalog []models.Career, scores []float64, topK, decimals int, logger zerolog.Logger) ([]models.Recommendation, int) {
	ranked := make([]rankedCareer, len(catalog))
	coerced := 0
	for i := range catalog {
		s := 0.0
		if i < len(scores) {
			s = scores[i]
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			logger.Warn().
				Str("career_id", catalog[i].ID).
				Float64("score", s).
				Msg("non-finite score coerced to 0")
			s = 0
			coerced++
		}
		ranked[i] = rankedCareer{index: i, score: roundScore(s, decimals)}
	}
	if coerced > 0 {
		metrics.RecommendCoercedScores.Add(float64(coerced))
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}
	out := make([]models.Recommendation, topK)
	for i := 0; i < topK; i++ {
		c := &catalog[ranked[i].index]
		out[i] = models.Recommendation{
			CareerID:   c.ID,
			CareerName: c.Name,
			FinalScore: ranked[i].score,
		}
	}
	return out, coerced
}

func roundScore(v float64, decimals int) float64 {
	if decimals <= 0 {
		return v
	}
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

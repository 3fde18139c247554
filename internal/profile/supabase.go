// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/supabase-community/supabase-go"

	"github.com/tomtom215/careerpath/internal/models"
)

// Column lists requested from PostgREST.
const (
	selectionColumns = "username,selected_subjects"
	styleColumns     = "username,concrete,logical,theoretical,practical,intuitive"
	careerColumns    = "career_id,career_name,prerequisites,Concrete,Logical,Theoretical,Practical,Intuitive"
	courseColumns    = "course_id,course_name"
)

// SupabaseConfig configures the remote store.
type SupabaseConfig struct {
	URL string
	Key string
}

// SupabaseStore reads profiles through the Supabase PostgREST API.
//
// The client has no context support, so cancellation is only honoured
// between calls; Resilient bounds each call with a timeout.
type SupabaseStore struct {
	client *supabase.Client
	logger zerolog.Logger
}

// NewSupabaseStore creates a client for cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSupabaseStore(cfg SupabaseConfig, logger zerolog.Logger) (*SupabaseStore, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, errors.New("supabase url and key are required")
	}
	client, err := supabase.NewClient(cfg.URL, cfg.Key, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &SupabaseStore{
		client: client,
		logger: logger.With().Str("component", "profile").Str("store", "supabase").Logger(),
	}, nil
}

// Name implements Store.
func (s *SupabaseStore) Name() string { return "supabase" }

// Ping implements Store by reading one course id.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var rows []CourseRow
	if _, err := s.client.From(TableCourses).Select("course_id", "", false).Limit(1, "").ExecuteTo(&rows); err != nil {
		return fmt.Errorf("ping supabase: %w", err)
	}
	return nil
}

// Close implements Store. The HTTP client needs no teardown.
func (s *SupabaseStore) Close() error { return nil }

// FetchUserSubjects implements recommend.ProfileFetcher.
func (s *SupabaseStore) FetchUserSubjects(ctx context.Context, username string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []SelectionRow
	_, err := s.client.From(TableSelections).
		Select(selectionColumns, "", false).
		Eq("username", username).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", TableSelections, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].Subjects(), nil
}

// FetchUserThinkingStyle implements recommend.ProfileFetcher.
func (s *SupabaseStore) FetchUserThinkingStyle(ctx context.Context, username string) (*models.ThinkingStyle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []StyleRow
	_, err := s.client.From(TableStyles).
		Select(styleColumns, "", false).
		Eq("username", username).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", TableStyles, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].ThinkingStyle()
}

// FetchCareerCatalog implements recommend.ProfileFetcher. Rows come back in
// table order.
func (s *SupabaseStore) FetchCareerCatalog(ctx context.Context) ([]models.Career, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []CareerRow
	if _, err := s.client.From(TableCareers).Select(careerColumns, "", false).ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", TableCareers, err)
	}
	return CareersFromRows(rows, s.logger), nil
}

// ListCourses implements CourseStore.
func (s *SupabaseStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []CourseRow
	if _, err := s.client.From(TableCourses).Select(courseColumns, "", false).ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", TableCourses, err)
	}
	out := make([]models.Course, len(rows))
	for i := range rows {
		out[i] = rows[i].Course()
	}
	return out, nil
}

// SaveSelection implements CourseStore. It upserts on username so a user
// keeps one selection row.
func (s *SupabaseStore) SaveSelection(ctx context.Context, sel *models.SubjectSelection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row, err := selectionRowFrom(sel)
	if err != nil {
		return err
	}
	_, _, err = s.client.From(TableSelections).
		Insert(row, true, "username", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert %s: %w", TableSelections, err)
	}
	s.logger.Debug().
		Str("username", row.Username).
		Int("subjects", strings.Count(*row.SelectedSubjects, ",")+1).
		Msg("selection saved")
	return nil
}

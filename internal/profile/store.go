// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"context"

	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// CourseStore serves the course listing and persists subject selections.
type CourseStore interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	SaveSelection(ctx context.Context, sel *models.SubjectSelection) error
}

// Store is a complete profile backend.
type Store interface {
	recommend.ProfileFetcher
	CourseStore

	// Name identifies the backend in logs and metric labels.
	Name() string

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Compile-time interface checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BadgerStore)(nil)
	_ Store = (*SupabaseStore)(nil)
	_ Store = (*Resilient)(nil)
)

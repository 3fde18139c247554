// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/models"
)

// MemoryStore keeps all rows in maps. It is used in development and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	selections map[string]SelectionRow
	styles     map[string]StyleRow
	careers    []CareerRow
	courses    []CourseRow
	logger     zerolog.Logger
}

// NewMemoryStore creates an empty store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMemoryStore(logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		selections: make(map[string]SelectionRow),
		styles:     make(map[string]StyleRow),
		logger:     logger.With().Str("component", "profile").Str("store", "memory").Logger(),
	}
}

// Import replaces the store contents with seed.
func (m *MemoryStore) Import(seed *Seed) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selections = make(map[string]SelectionRow, len(seed.Users))
	m.styles = make(map[string]StyleRow, len(seed.Users))
	for i := range seed.Users {
		sel, style := seed.Users[i].rows()
		if sel != nil {
			m.selections[sel.Username] = *sel
		}
		if style != nil {
			m.styles[style.Username] = *style
		}
	}
	m.careers = seed.careerRows()
	m.courses = seed.courseRows()
}

// PutCareerRows appends raw career rows, malformed ones included.
func (m *MemoryStore) PutCareerRows(rows ...CareerRow) {
	m.mu.Lock()
	m.careers = append(m.careers, rows...)
	m.mu.Unlock()
}

// PutStyle stores a thinking style row.
func (m *MemoryStore) PutStyle(row StyleRow) {
	m.mu.Lock()
	m.styles[row.Username] = row
	m.mu.Unlock()
}

// Name implements Store.
func (m *MemoryStore) Name() string { return "memory" }

// Ping implements Store.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

// FetchUserSubjects implements recommend.ProfileFetcher.
func (m *MemoryStore) FetchUserSubjects(ctx context.Context, username string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	row, ok := m.selections[username]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return row.Subjects(), nil
}

// FetchUserThinkingStyle implements recommend.ProfileFetcher.
func (m *MemoryStore) FetchUserThinkingStyle(ctx context.Context, username string) (*models.ThinkingStyle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	row, ok := m.styles[username]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return row.ThinkingStyle()
}

// FetchCareerCatalog implements recommend.ProfileFetcher.
func (m *MemoryStore) FetchCareerCatalog(ctx context.Context) ([]models.Career, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	rows := append([]CareerRow(nil), m.careers...)
	m.mu.RUnlock()
	return CareersFromRows(rows, m.logger), nil
}

// ListCourses implements CourseStore.
func (m *MemoryStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Course, len(m.courses))
	for i := range m.courses {
		out[i] = m.courses[i].Course()
	}
	return out, nil
}

// SaveSelection implements CourseStore. A later save replaces the earlier one.
func (m *MemoryStore) SaveSelection(ctx context.Context, sel *models.SubjectSelection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row, err := selectionRowFrom(sel)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.selections[row.Username] = row
	m.mu.Unlock()
	return nil
}

// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/models"
)

// seededStores returns every local store loaded with testSeed.
func seededStores(t *testing.T) map[string]Store {
	t.Helper()

	seed, err := ParseSeed([]byte(testSeed))
	if err != nil {
		t.Fatalf("ParseSeed() error = %v", err)
	}

	mem := NewMemoryStore(zerolog.Nop())
	mem.Import(seed)

	bdg, err := OpenBadgerStore(BadgerConfig{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	t.Cleanup(func() { _ = bdg.Close() })
	if err := bdg.Import(context.Background(), seed); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	return map[string]Store{"memory": mem, "badger": bdg}
}

func TestStoreContract(t *testing.T) {
	t.Parallel()

	for name, store := range seededStores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			if err := store.Ping(ctx); err != nil {
				t.Fatalf("Ping() error = %v", err)
			}

			subjects, err := store.FetchUserSubjects(ctx, "alice")
			if err != nil || !reflect.DeepEqual(subjects, []string{"Math", "Physics"}) {
				t.Errorf("FetchUserSubjects(alice) = %v, %v", subjects, err)
			}
			subjects, err = store.FetchUserSubjects(ctx, "nobody")
			if err != nil || subjects != nil {
				t.Errorf("FetchUserSubjects(nobody) = %v, %v; want nil, nil", subjects, err)
			}

			style, err := store.FetchUserThinkingStyle(ctx, "alice")
			if err != nil || style == nil || *style != models.NewThinkingStyle(5, 8, 2, 3, 1) {
				t.Errorf("FetchUserThinkingStyle(alice) = %v, %v", style, err)
			}
			style, err = store.FetchUserThinkingStyle(ctx, "nostyle")
			if err != nil || style != nil {
				t.Errorf("FetchUserThinkingStyle(nostyle) = %v, %v; want nil, nil", style, err)
			}

			catalog, err := store.FetchCareerCatalog(ctx)
			if err != nil {
				t.Fatalf("FetchCareerCatalog() error = %v", err)
			}
			// The row with a negative style is skipped; order is preserved.
			if len(catalog) != 2 || catalog[0].ID != "1" || catalog[1].ID != "2" {
				t.Fatalf("catalog = %+v", catalog)
			}
			if catalog[1].HasStyle {
				t.Error("career without style columns reports HasStyle")
			}

			courses, err := store.ListCourses(ctx)
			if err != nil || len(courses) != 2 || courses[0].CourseID != "101" {
				t.Errorf("ListCourses() = %+v, %v", courses, err)
			}

			sel := &models.SubjectSelection{Username: "newbie", SelectedSubjects: []string{"Biology", " Chemistry"}}
			if err := store.SaveSelection(ctx, sel); err != nil {
				t.Fatalf("SaveSelection() error = %v", err)
			}
			subjects, err = store.FetchUserSubjects(ctx, "newbie")
			if err != nil || !reflect.DeepEqual(subjects, []string{"Biology", "Chemistry"}) {
				t.Errorf("saved selection read back as %v, %v", subjects, err)
			}

			bad := &models.SubjectSelection{Username: "x", SelectedSubjects: []string{"a,b"}}
			if err := store.SaveSelection(ctx, bad); err == nil {
				t.Error("SaveSelection() accepted a subject with a comma")
			}
		})
	}
}

func TestBadgerStoreClosed(t *testing.T) {
	t.Parallel()

	s, err := OpenBadgerStore(BadgerConfig{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if _, err := s.FetchCareerCatalog(context.Background()); err == nil {
		t.Error("closed store served a catalog")
	}
}

func TestBadgerStorePersists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seed, err := ParseSeed([]byte(testSeed))
	if err != nil {
		t.Fatal(err)
	}

	s, err := OpenBadgerStore(BadgerConfig{Path: dir}, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	if err := s.Import(context.Background(), seed); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenBadgerStore(BadgerConfig{Path: dir}, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	catalog, err := reopened.FetchCareerCatalog(context.Background())
	if err != nil || len(catalog) != 2 {
		t.Errorf("catalog after reopen = %+v, %v", catalog, err)
	}
}

// CareerPath - Career Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/models"
)

// Key prefixes. Careers and courses are keyed by a zero-padded ordinal so
// that prefix iteration returns them in insertion order.
const (
	prefixSelection = "sel:"
	prefixStyle     = "ts:"
	prefixCareer    = "career:"
	prefixCourse    = "course:"
)

// ErrStoreClosed is returned by a closed BadgerStore.
var ErrStoreClosed = errors.New("profile store is closed")

// BadgerConfig configures the embedded store.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM; used by tests.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// BadgerStore is an embedded profile store for single-node deployments.
type BadgerStore struct {
	db     *badger.DB
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// OpenBadgerStore opens (or creates) the database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadgerStore(cfg BadgerConfig, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "profile").Str("store", "badger").Logger(),
	}
	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("profile store opened")
	return s, nil
}

// Import writes every seed row. Existing careers and courses are replaced so
// the catalog order matches the seed.
func (s *BadgerStore) Import(ctx context.Context, seed *Seed) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	for _, prefix := range []string{prefixCareer, prefixCourse} {
		if err := s.db.DropPrefix([]byte(prefix)); err != nil {
			return fmt.Errorf("drop %s rows: %w", prefix, err)
		}
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	put := func(key string, v interface{}) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		return wb.Set([]byte(key), data)
	}

	for i := range seed.Users {
		if err := ctx.Err(); err != nil {
			return err
		}
		sel, style := seed.Users[i].rows()
		if sel != nil {
			if err := put(prefixSelection+sel.Username, sel); err != nil {
				return err
			}
		}
		if style != nil {
			if err := put(prefixStyle+style.Username, style); err != nil {
				return err
			}
		}
	}
	for i := range seed.Careers {
		if err := put(prefixCareer+sequenceKey(i), &seed.Careers[i]); err != nil {
			return err
		}
	}
	for i := range seed.Courses {
		if err := put(prefixCourse+sequenceKey(i), &seed.Courses[i]); err != nil {
			return err
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush seed: %w", err)
	}

	s.logger.Info().
		Int("users", len(seed.Users)).
		Int("careers", len(seed.Careers)).
		Int("courses", len(seed.Courses)).
		Msg("seed imported")
	return nil
}

// Name implements Store.
func (s *BadgerStore) Name() string { return "badger" }

// Ping implements Store.
func (s *BadgerStore) Ping(context.Context) error {
	return s.checkOpen()
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// FetchUserSubjects implements recommend.ProfileFetcher.
func (s *BadgerStore) FetchUserSubjects(ctx context.Context, username string) ([]string, error) {
	var row SelectionRow
	found, err := s.get(ctx, prefixSelection+username, &row)
	if err != nil || !found {
		return nil, err
	}
	return row.Subjects(), nil
}

// FetchUserThinkingStyle implements recommend.ProfileFetcher.
func (s *BadgerStore) FetchUserThinkingStyle(ctx context.Context, username string) (*models.ThinkingStyle, error) {
	var row StyleRow
	found, err := s.get(ctx, prefixStyle+username, &row)
	if err != nil || !found {
		return nil, err
	}
	return row.ThinkingStyle()
}

// FetchCareerCatalog implements recommend.ProfileFetcher.
func (s *BadgerStore) FetchCareerCatalog(ctx context.Context) ([]models.Career, error) {
	var rows []CareerRow
	err := s.scan(ctx, prefixCareer, func(key string, val []byte) {
		var row CareerRow
		if err := json.Unmarshal(val, &row); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal career row")
			return
		}
		rows = append(rows, row)
	})
	if err != nil {
		return nil, err
	}
	return CareersFromRows(rows, s.logger), nil
}

// ListCourses implements CourseStore.
func (s *BadgerStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	err := s.scan(ctx, prefixCourse, func(key string, val []byte) {
		var row CourseRow
		if err := json.Unmarshal(val, &row); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal course row")
			return
		}
		out = append(out, row.Course())
	})
	return out, err
}

// SaveSelection implements CourseStore.
func (s *BadgerStore) SaveSelection(ctx context.Context, sel *models.SubjectSelection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	row, err := selectionRowFrom(sel)
	if err != nil {
		return err
	}
	data, err := json.Marshal(&row)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixSelection+row.Username), data)
	})
	if err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

func (s *BadgerStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// get decodes the value at key into dst and reports whether it existed.
func (s *BadgerStore) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := s.checkOpen(); err != nil {
		return false, err
	}

	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	return found, nil
}

func (s *BadgerStore) scan(ctx context.Context, prefix string, fn func(key string, val []byte)) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			key := string(item.Key())
			if err := item.Value(func(val []byte) error {
				fn(key, val)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", prefix, err)
	}
	return nil
}

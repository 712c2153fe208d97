package service

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// PersistFunc writes a favorites snapshot and reports the outcome.
// It is safe to run on any goroutine.
type PersistFunc func() error

// FavoritesService owns the in-memory favorites set and writes it through
// to the store on every mutation.
type FavoritesService struct {
	store  domain.FavoritesStore
	logger *slog.Logger

	mu      sync.Mutex
	set     domain.FavoritesSet
	version uint64 // bumped on every mutation

	writeMu sync.Mutex
	written uint64 // version of the newest snapshot on disk
}

// NewFavoritesService creates a new favorites service
func NewFavoritesService(store domain.FavoritesStore, logger *slog.Logger) *FavoritesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoritesService{
		store:  store,
		logger: logger,
	}
}

// Load reads the persisted favorites. A read failure is logged and
// leaves the set empty; the session continues without favorites.
func (s *FavoritesService) Load() domain.FavoritesSet {
	ids, err := s.store.LoadFavorites()
	if err != nil {
		s.logger.Error("failed to load favorites", "error", err)
		ids = nil
	}

	set := domain.NewFavoritesSet(ids)

	s.mu.Lock()
	s.set = set
	s.mu.Unlock()

	s.logger.Debug("favorites loaded", "count", set.Len())
	return set
}

// Current returns the in-memory set
func (s *FavoritesService) Current() domain.FavoritesSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

// Contains reports whether id is a favorite
func (s *FavoritesService) Contains(id string) bool {
	return s.Current().Contains(id)
}

// Toggle flips id in the in-memory set and returns the new set together with
// the write that persists it. The in-memory set is authoritative for the
// session whether or not the write succeeds.
func (s *FavoritesService) Toggle(id string) (domain.FavoritesSet, PersistFunc) {
	s.mu.Lock()
	s.set = s.set.Toggle(id)
	s.version++
	set, version := s.set, s.version
	s.mu.Unlock()

	s.logger.Info("favorite toggled", "id", id, "favorite", set.Contains(id), "count", set.Len())

	return set, func() error {
		return s.persist(set, version)
	}
}

// ToggleAsync is Toggle with the write run in the background; onDone
// receives the write result and may be nil.
func (s *FavoritesService) ToggleAsync(id string, onDone func(error)) domain.FavoritesSet {
	set, persist := s.Toggle(id)
	go func() {
		err := persist()
		if onDone != nil {
			onDone(err)
		}
	}()
	return set
}

// persist writes set unless a newer snapshot has already been written
func (s *FavoritesService) persist(set domain.FavoritesSet, version uint64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if version <= s.written {
		s.logger.Debug("skipping stale favorites write", "version", version, "written", s.written)
		return nil
	}

	if err := s.store.SaveFavorites(set.IDs()); err != nil {
		s.logger.Error("failed to save favorites", "error", err, "count", set.Len())
		return err
	}

	s.written = version
	return nil
}

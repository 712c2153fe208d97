package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// Bucket names
var (
	bucketFavorites = []byte("favorites")
)

// favoritesKey is the single key holding the JSON list of identifiers
const favoritesKey = "favorites"

// FavoritesStore implements domain.FavoritesStore using BoltDB.
type FavoritesStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewFavoritesStore opens (or creates) the database at path.
// An empty path gives a memory-only store.
func NewFavoritesStore(path string) (*FavoritesStore, error) {
	if path == "" {
		// Memory-only mode (no persistence)
		return &FavoritesStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open bolt db: %v", domain.ErrPersistence, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFavorites)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	return &FavoritesStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *FavoritesStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *FavoritesStore) get(bucket []byte, key string, dest interface{}) (bool, error) {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return true, json.Unmarshal(data, dest)
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if data == nil {
		return false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return true, json.Unmarshal(data, dest)
}

func (s *FavoritesStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			return b.Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	// Cache only what reached disk so a failed write is not reported back as saved
	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()
	return nil
}

// === Favorites ===

// LoadFavorites returns the stored identifiers, or nil when nothing was saved yet
func (s *FavoritesStore) LoadFavorites() ([]string, error) {
	var ids []string
	if _, err := s.get(bucketFavorites, favoritesKey, &ids); err != nil {
		return nil, fmt.Errorf("%w: reading favorites: %v", domain.ErrPersistence, err)
	}
	return ids, nil
}

// SaveFavorites replaces the stored list
func (s *FavoritesStore) SaveFavorites(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	if err := s.set(bucketFavorites, favoritesKey, ids); err != nil {
		return fmt.Errorf("%w: writing favorites: %v", domain.ErrPersistence, err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// fakeSource serves canned pages keyed by query and page
type fakeSource struct {
	mu      sync.Mutex
	pages   map[string]*domain.SearchPage
	details map[string]*domain.MovieDetail
	err     error
	calls   []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:   make(map[string]*domain.SearchPage),
		details: make(map[string]*domain.MovieDetail),
	}
}

func pageKey(query string, page int) string {
	return fmt.Sprintf("%s#%d", query, page)
}

func (f *fakeSource) addPage(query string, page, total int, results ...domain.SearchResult) {
	f.pages[pageKey(query, page)] = &domain.SearchPage{
		Query:        query,
		Page:         page,
		Results:      results,
		TotalResults: total,
		Found:        true,
	}
}

func (f *fakeSource) addDetail(id, title string) {
	d := domain.NewMovieDetail(domain.NewSearchResult(id, title, "2000", "movie", "N/A"), "N/A")
	f.details[id] = &d
}

func (f *fakeSource) Search(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pageKey(query, page))

	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.pages[pageKey(query, page)]; ok {
		return p, nil
	}
	return &domain.SearchPage{Query: query, Page: page, Found: false, Message: "Movie not found!"}, nil
}

func (f *fakeSource) GetDetail(ctx context.Context, id string) (*domain.MovieDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "detail:"+id)

	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, domain.ErrMovieNotFound
}

// memoryStore is a FavoritesStore with injectable failures
type memoryStore struct {
	mu      sync.Mutex
	ids     []string
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryStore) LoadFavorites() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]string(nil), m.ids...), nil
}

func (m *memoryStore) SaveFavorites(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.ids = append([]string(nil), ids...)
	return nil
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) stored() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ids...)
}

func result(id, title string) domain.SearchResult {
	return domain.NewSearchResult(id, title, "2005", "movie", "N/A")
}

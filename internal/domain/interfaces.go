package domain

import "context"

// MovieSource provides search and detail lookups against the movie database
type MovieSource interface {
	// Search returns one page of results. A "no results" answer is a page
	// with Found == false, not an error.
	Search(ctx context.Context, query string, page int) (*SearchPage, error)

	// GetDetail returns the full record for an identifier
	GetDetail(ctx context.Context, id string) (*MovieDetail, error)
}

// FavoritesStore persists the list of favorite identifiers
type FavoritesStore interface {
	LoadFavorites() ([]string, error)
	SaveFavorites(ids []string) error
	Close() error
}

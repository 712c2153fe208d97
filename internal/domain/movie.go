package domain

import (
	"fmt"
	"strings"
)

// PosterNotAvailable is the sentinel the movie database uses for a missing poster
const PosterNotAvailable = "N/A"

// Placeholder posters substituted for missing artwork
const (
	PlaceholderThumbURL  = "https://via.placeholder.com/50x75"
	PlaceholderPosterURL = "https://via.placeholder.com/200x300"
)

// SearchResult is a single row of a search response
type SearchResult struct {
	ID        string // External unique identifier (IMDb ID)
	Title     string // Display title
	Year      string // Release year, may be a range for series ("2008–2013")
	Type      string // "movie", "series", "episode"
	PosterURL string // Always a usable URL, see NormalizePoster
	hasPoster bool
}

// NewSearchResult builds a SearchResult with its poster normalized
func NewSearchResult(id, title, year, kind, poster string) SearchResult {
	url, ok := NormalizePoster(poster, PlaceholderThumbURL)
	return SearchResult{
		ID:        id,
		Title:     title,
		Year:      year,
		Type:      kind,
		PosterURL: url,
		hasPoster: ok,
	}
}

// HasPoster returns true if the movie database supplied real artwork
func (r SearchResult) HasPoster() bool {
	return r.hasPoster
}

// DisplayTitle returns "Title (Year)"
func (r SearchResult) DisplayTitle() string {
	return displayTitle(r.Title, r.Year)
}

// MovieDetail is the full record shown on the detail screen
type MovieDetail struct {
	SearchResult

	Genre    string
	Rating   string // IMDb rating, e.g. "7.8"
	Plot     string
	Rated    string // Content rating, e.g. "PG-13"
	Runtime  string
	Released string
	Director string
	Actors   string
}

// NewMovieDetail builds a MovieDetail from a search row plus detail fields.
// The poster is re-normalized against the larger placeholder.
func NewMovieDetail(base SearchResult, poster string) MovieDetail {
	url, ok := NormalizePoster(poster, PlaceholderPosterURL)
	base.PosterURL = url
	base.hasPoster = ok
	return MovieDetail{SearchResult: base}
}

// IMDbURL returns the public IMDb page for the movie
func (d MovieDetail) IMDbURL() string {
	return "https://www.imdb.com/title/" + d.ID + "/"
}

// HasRating returns true if the database has a usable rating
func (d MovieDetail) HasRating() bool {
	return d.Rating != "" && d.Rating != PosterNotAvailable
}

// NormalizePoster replaces the "not available" sentinel (and empty values)
// with the placeholder. The second result reports whether raw was usable.
func NormalizePoster(raw, placeholder string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, PosterNotAvailable) {
		return placeholder, false
	}
	return raw, true
}

func displayTitle(title, year string) string {
	if year == "" || year == PosterNotAvailable {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, year)
}

// SearchPage is one page of search results as returned by a MovieSource
type SearchPage struct {
	Query        string
	Page         int
	Results      []SearchResult
	TotalResults int

	// Found is false when the database answered with its "no results" status
	Found bool

	// Message carries the database's explanation when Found is false
	Message string
}

package omdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// MapSearchPage converts a decoded search response to a domain page.
// Rows without an identifier make the whole page malformed.
func MapSearchPage(resp *SearchResponse, query string, page int) (*domain.SearchPage, error) {
	out := &domain.SearchPage{
		Query: query,
		Page:  page,
	}

	if resp.Response != responseTrue {
		out.Found = false
		out.Message = resp.Error
		return out, nil
	}

	out.Found = true
	out.Results = make([]domain.SearchResult, 0, len(resp.Search))
	for i, item := range resp.Search {
		if item.ImdbID == "" {
			return nil, fmt.Errorf("%w: search row %d has no imdbID", domain.ErrMalformedResponse, i)
		}
		out.Results = append(out.Results, mapSearchItem(item))
	}

	out.TotalResults = parseTotal(resp.TotalResults, len(out.Results))
	return out, nil
}

func mapSearchItem(item SearchItem) domain.SearchResult {
	return domain.NewSearchResult(
		item.ImdbID,
		strings.TrimSpace(item.Title),
		item.Year,
		item.Type,
		item.Poster,
	)
}

// MapDetail converts a decoded detail response to a domain detail
func MapDetail(resp *DetailResponse) (*domain.MovieDetail, error) {
	if resp.Response != responseTrue {
		msg := resp.Error
		if msg == "" {
			msg = "no such identifier"
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrMovieNotFound, msg)
	}
	if resp.ImdbID == "" {
		return nil, fmt.Errorf("%w: detail has no imdbID", domain.ErrMalformedResponse)
	}

	base := domain.NewSearchResult(resp.ImdbID, strings.TrimSpace(resp.Title), resp.Year, resp.Type, resp.Poster)
	detail := domain.NewMovieDetail(base, resp.Poster)
	detail.Genre = notAvailable(resp.Genre)
	detail.Rating = notAvailable(resp.ImdbRating)
	detail.Plot = notAvailable(resp.Plot)
	detail.Rated = notAvailable(resp.Rated)
	detail.Runtime = notAvailable(resp.Runtime)
	detail.Released = notAvailable(resp.Released)
	detail.Director = notAvailable(resp.Director)
	detail.Actors = notAvailable(resp.Actors)
	return &detail, nil
}

// notAvailable blanks OMDb's "N/A" sentinel
func notAvailable(s string) string {
	s = strings.TrimSpace(s)
	if s == domain.PosterNotAvailable {
		return ""
	}
	return s
}

// parseTotal reads totalResults, falling back to the row count
func parseTotal(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < fallback {
		return fallback
	}
	return n
}

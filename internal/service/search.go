package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/cinesearch/internal/domain"
)

const (
	// resolveConcurrency bounds parallel detail lookups
	resolveConcurrency = 4

	noResultsMessage = "No movies found. Try searching for something else."
)

// SearchService turns MovieSource calls into tagged outcomes
type SearchService struct {
	source domain.MovieSource
	logger *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(source domain.MovieSource, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		source: source,
		logger: logger,
	}
}

// Search fetches one page of results. It never returns a bare error:
// failures are an OutcomeFailed carrying the error.
func (s *SearchService) Search(ctx context.Context, query string, page int) domain.SearchOutcome {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchOutcome{
			Kind:    domain.OutcomeFailed,
			Message: "Enter a title to search for.",
			Err:     domain.ErrEmptyQuery,
		}
	}

	s.logger.Debug("searching", "query", query, "page", page)

	result, err := s.source.Search(ctx, query, page)
	if err != nil {
		s.logger.Error("search failed", "query", query, "page", page, "error", err)
		return domain.SearchOutcome{
			Kind:    domain.OutcomeFailed,
			Message: failureMessage(err),
			Err:     err,
		}
	}

	if !result.Found || len(result.Results) == 0 {
		s.logger.Info("search returned no results", "query", query, "page", page, "message", result.Message)
		return domain.SearchOutcome{
			Kind:    domain.OutcomeEmpty,
			Message: noResultsMessage,
		}
	}

	s.logger.Debug("search complete", "query", query, "page", page, "results", len(result.Results))
	return domain.SearchOutcome{
		Kind: domain.OutcomeSuccess,
		Page: result,
	}
}

// SearchPages fetches up to maxPages pages and concatenates them, stopping at
// the last page. onProgress may be nil.
func (s *SearchService) SearchPages(ctx context.Context, query string, maxPages int, onProgress func(loaded, total int)) ([]domain.SearchResult, int, error) {
	return fetchPages(ctx, func(ctx context.Context, page int) ([]domain.SearchResult, int, error) {
		outcome := s.Search(ctx, query, page)
		switch outcome.Kind {
		case domain.OutcomeSuccess:
			return outcome.Page.Results, outcome.Page.TotalResults, nil
		case domain.OutcomeEmpty:
			return nil, 0, nil
		default:
			return nil, 0, outcome.Err
		}
	}, maxPages, onProgress)
}

// Detail fetches the full record for id
func (s *SearchService) Detail(ctx context.Context, id string) domain.DetailOutcome {
	s.logger.Debug("fetching detail", "id", id)

	detail, err := s.source.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			s.logger.Info("detail not found", "id", id, "error", err)
			return domain.DetailOutcome{
				Kind:    domain.OutcomeEmpty,
				Message: "This title is no longer available.",
			}
		}
		s.logger.Error("detail fetch failed", "id", id, "error", err)
		return domain.DetailOutcome{
			Kind:    domain.OutcomeFailed,
			Message: failureMessage(err),
			Err:     err,
		}
	}

	return domain.DetailOutcome{
		Kind:   domain.OutcomeSuccess,
		Detail: detail,
	}
}

// ResolveFavorites fetches details for ids concurrently, preserving order.
// Lookups that fail are logged and left out; the error is returned only
// when every lookup failed.
func (s *SearchService) ResolveFavorites(ctx context.Context, ids []string) ([]*domain.MovieDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	details := make([]*domain.MovieDetail, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	var mu sync.Mutex
	var firstErr error
	failures := 0

	for i, id := range ids {
		i, id := i, id // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			detail, err := s.source.GetDetail(ctx, id)
			if err != nil {
				s.logger.Warn("failed to resolve favorite", "id", id, "error", err)
				mu.Lock()
				failures++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				// Continue resolving the others
				return nil
			}
			details[i] = detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := make([]*domain.MovieDetail, 0, len(ids))
	for _, d := range details {
		if d != nil {
			resolved = append(resolved, d)
		}
	}

	if failures == len(ids) {
		return nil, firstErr
	}
	return resolved, nil
}

// FilterDetails ranks details whose title fuzzily matches query.
// An empty query returns the input unchanged.
func FilterDetails(details []*domain.MovieDetail, query string) []*domain.MovieDetail {
	query = strings.TrimSpace(query)
	if query == "" {
		return details
	}

	titles := make([]string, len(details))
	for i, d := range details {
		titles[i] = d.Title
	}

	matches := fuzzy.RankFindFold(query, titles)

	// Sort by distance (lower is better)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	results := make([]*domain.MovieDetail, 0, len(matches))
	for _, m := range matches {
		results = append(results, details[m.OriginalIndex])
	}
	return results
}

// failureMessage renders an error for the status line. Only failures that
// could succeed on a second attempt offer a retry.
func failureMessage(err error) string {
	var msg string
	switch {
	case errors.Is(err, domain.ErrInvalidAPIKey):
		msg = "The OMDb API key was rejected. Check omdb.api_key."
	case errors.Is(err, domain.ErrRequestLimit):
		msg = "The OMDb daily request limit was reached. Try again tomorrow."
	case errors.Is(err, domain.ErrNetwork):
		msg = "Could not reach the movie database."
	case errors.Is(err, domain.ErrMalformedResponse):
		msg = "The movie database sent a response we could not read."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		msg = "The request timed out."
	default:
		msg = "Something went wrong: " + err.Error()
	}

	if domain.ClassifyError(err).Retryable() {
		msg += " Press r to retry."
	}
	return msg
}

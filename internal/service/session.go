package service

import (
	"strings"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// SessionState is the phase of a search session
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionSearching
	SessionResults
	SessionEmpty
	SessionFailed
	SessionLoadingMore
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionSearching:
		return "searching"
	case SessionResults:
		return "results"
	case SessionEmpty:
		return "empty"
	case SessionFailed:
		return "failed"
	case SessionLoadingMore:
		return "loading more"
	default:
		return "unknown"
	}
}

// SearchRequest identifies one issued search call
type SearchRequest struct {
	Seq   uint64
	Query string
	Page  int
}

// SearchSession is the transient state of one query and its accumulated
// pages. It performs no I/O: callers execute the returned requests and feed
// outcomes back through Apply.
type SearchSession struct {
	Query   string
	Page    int // last page successfully applied
	Results []domain.SearchResult
	Total   int // total results reported by the database
	State   SessionState
	Notice  string // informational or error text for the status line
	Err     error  // last failure, kept after a failed load-more

	seq      uint64
	last     SearchRequest // most recently issued request
	pending  bool
	ids      map[string]struct{}
	received int // rows delivered by the database, duplicates included
}

// NewSearchSession returns an idle session
func NewSearchSession() *SearchSession {
	return &SearchSession{
		State: SessionIdle,
		ids:   make(map[string]struct{}),
	}
}

// Submit starts a new query, discarding whatever came before. Blank
// queries are rejected.
func (s *SearchSession) Submit(query string) (SearchRequest, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchRequest{}, false
	}

	s.Query = query
	s.Page = 1
	s.Results = nil
	s.Total = 0
	s.received = 0
	s.ids = make(map[string]struct{})
	s.State = SessionSearching
	s.Notice = ""
	s.Err = nil

	return s.issue(query, 1), true
}

// LoadMore requests the next page. It is a no-op unless the session is
// showing results with more available and nothing in flight. After a failed
// load-more only Retry asks again.
func (s *SearchSession) LoadMore() (SearchRequest, bool) {
	if s.State != SessionResults || s.pending || s.Err != nil || !s.HasMore() {
		return SearchRequest{}, false
	}

	s.State = SessionLoadingMore
	return s.issue(s.Query, s.Page+1), true
}

// Retry re-issues the last request after a failure that could succeed on a
// second attempt
func (s *SearchSession) Retry() (SearchRequest, bool) {
	if !s.CanRetry() || s.pending || s.last.Query == "" {
		return SearchRequest{}, false
	}

	if s.last.Page <= 1 {
		return s.Submit(s.last.Query)
	}
	if s.State != SessionResults {
		return SearchRequest{}, false
	}
	s.State = SessionLoadingMore
	s.Err = nil
	return s.issue(s.Query, s.last.Page), true
}

// Apply folds an outcome into the session. It returns false, leaving the
// session untouched, when req is not the latest issued request.
func (s *SearchSession) Apply(req SearchRequest, outcome domain.SearchOutcome) bool {
	if req.Seq != s.seq {
		return false
	}
	s.pending = false

	loadingMore := req.Page > 1

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		if !loadingMore {
			s.Results = nil
			s.ids = make(map[string]struct{})
			s.received = 0
		}
		s.received += len(outcome.Page.Results)
		s.appendNew(outcome.Page.Results)
		s.Page = req.Page
		if outcome.Page.TotalResults > s.Total {
			s.Total = outcome.Page.TotalResults
		}
		s.State = SessionResults
		s.Notice = ""
		s.Err = nil

	case domain.OutcomeEmpty:
		s.Results = nil
		s.ids = make(map[string]struct{})
		s.Total = 0
		s.received = 0
		s.Page = 1
		s.State = SessionEmpty
		s.Notice = outcome.Message
		s.Err = nil

	case domain.OutcomeFailed:
		s.Notice = outcome.Message
		s.Err = outcome.Err
		if loadingMore {
			// Keep what is already on screen
			s.State = SessionResults
		} else {
			s.Results = nil
			s.State = SessionFailed
		}
	}

	return true
}

// HasMore reports whether the database has pages beyond those loaded.
// Delivered rows are counted, not listed ones: an ID can repeat across pages.
func (s *SearchSession) HasMore() bool {
	return s.received < s.Total
}

// CanRetry reports whether the last failure is worth repeating
func (s *SearchSession) CanRetry() bool {
	return s.Err != nil && domain.ClassifyError(s.Err).Retryable()
}

// Busy reports whether a request is in flight
func (s *SearchSession) Busy() bool {
	return s.pending
}

func (s *SearchSession) issue(query string, page int) SearchRequest {
	s.seq++
	s.pending = true
	s.last = SearchRequest{Seq: s.seq, Query: query, Page: page}
	return s.last
}

// appendNew adds results whose ID has not been seen in this session
func (s *SearchSession) appendNew(results []domain.SearchResult) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	for _, r := range results {
		if _, dup := s.ids[r.ID]; dup {
			continue
		}
		s.ids[r.ID] = struct{}{}
		s.Results = append(s.Results, r)
	}
}

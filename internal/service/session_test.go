package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinesearch/internal/domain"
)

func success(total int, results ...domain.SearchResult) domain.SearchOutcome {
	return domain.SearchOutcome{
		Kind: domain.OutcomeSuccess,
		Page: &domain.SearchPage{Results: results, TotalResults: total, Found: true},
	}
}

func empty() domain.SearchOutcome {
	return domain.SearchOutcome{Kind: domain.OutcomeEmpty, Message: noResultsMessage}
}

func failed() domain.SearchOutcome {
	err := fmt.Errorf("%w: connection reset", domain.ErrNetwork)
	return domain.SearchOutcome{Kind: domain.OutcomeFailed, Err: err, Message: failureMessage(err)}
}

func TestSessionSubmitRejectsBlank(t *testing.T) {
	s := NewSearchSession()
	_, ok := s.Submit("   ")
	assert.False(t, ok)
	assert.Equal(t, SessionIdle, s.State)
}

func TestSessionSubmitResetsState(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.Submit("alien")
	s.Apply(req, success(20, result("tt1", "Alien"), result("tt2", "Aliens")))
	more, _ := s.LoadMore()
	s.Apply(more, success(20, result("tt3", "Alien 3")))
	require.Equal(t, 2, s.Page)

	for _, query := range []string{"batman", "x", "star wars"} {
		req, ok := s.Submit(query)
		require.True(t, ok)
		assert.Equal(t, 1, req.Page)
		assert.Equal(t, SessionSearching, s.State)
		assert.Empty(t, s.Results)

		s.Apply(req, success(1, result("tt9", query)))
		assert.Equal(t, 1, s.Page)
		assert.Len(t, s.Results, 1)
		assert.Equal(t, SessionResults, s.State)
	}
}

func TestSessionBatmanScenario(t *testing.T) {
	src := newFakeSource()
	src.addPage("batman", 1, 3, result("tt0372784", "Batman Begins"), result("tt1877830", "The Batman"))
	src.addPage("batman", 2, 3, result("tt0096895", "Batman"))
	svc := NewSearchService(src, nil)
	ctx := context.Background()

	s := NewSearchSession()
	req, ok := s.Submit("batman")
	require.True(t, ok)
	require.True(t, s.Apply(req, svc.Search(ctx, req.Query, req.Page)))

	assert.Len(t, s.Results, 2)
	assert.Equal(t, 1, s.Page)
	assert.True(t, s.HasMore())

	req, ok = s.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, SessionLoadingMore, s.State)
	require.True(t, s.Apply(req, svc.Search(ctx, req.Query, req.Page)))

	assert.Len(t, s.Results, 3)
	assert.Equal(t, 2, s.Page)
	assert.False(t, s.HasMore())

	_, ok = s.LoadMore()
	assert.False(t, ok, "no more pages")
}

func TestSessionLoadMoreAppendsOnlyNewItems(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.Submit("batman")
	s.Apply(req, success(10, result("tt1", "A"), result("tt2", "B")))

	req, ok := s.LoadMore()
	require.True(t, ok)
	s.Apply(req, success(10, result("tt2", "B"), result("tt3", "C")))

	ids := make([]string, len(s.Results))
	for i, r := range s.Results {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"tt1", "tt2", "tt3"}, ids)
	assert.Equal(t, 2, s.Page)

	// Four of ten rows delivered, so the next page is still available
	assert.True(t, s.HasMore())
	next, ok := s.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 3, next.Page)
}

func TestSessionRepeatedIDDoesNotRequestPastEnd(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.Submit("batman")
	s.Apply(req, success(5, result("tt1", "A"), result("tt2", "B"), result("tt3", "C")))
	require.True(t, s.HasMore())

	req, ok := s.LoadMore()
	require.True(t, ok)
	s.Apply(req, success(5, result("tt3", "C"), result("tt4", "D")))

	// All five reported rows arrived even though only four are listed
	assert.Len(t, s.Results, 4)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, SessionResults, s.State)
	assert.False(t, s.HasMore())

	_, ok = s.LoadMore()
	assert.False(t, ok, "no page beyond the reported total")
	assert.Len(t, s.Results, 4)
	assert.Equal(t, SessionResults, s.State)
}

func TestSessionRetryOnlyForRetryableFailures(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.Submit("batman")

	err := fmt.Errorf("%w: bad json", domain.ErrMalformedResponse)
	s.Apply(req, domain.SearchOutcome{Kind: domain.OutcomeFailed, Err: err, Message: failureMessage(err)})
	assert.Equal(t, SessionFailed, s.State)
	assert.False(t, s.CanRetry())
	assert.NotContains(t, s.Notice, "retry")

	_, ok := s.Retry()
	assert.False(t, ok)

	req, _ = s.Submit("batman")
	s.Apply(req, failed())
	assert.True(t, s.CanRetry())
}

func TestSessionLoadMoreFailureLeavesStateUnchanged(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.Submit("batman")
	s.Apply(req, success(10, result("tt1", "A"), result("tt2", "B")))
	before := append([]domain.SearchResult(nil), s.Results...)

	req, _ = s.LoadMore()
	s.Apply(req, failed())

	assert.Equal(t, SessionResults, s.State)
	assert.Equal(t, before, s.Results)
	assert.Equal(t, 1, s.Page)
	assert.ErrorIs(t, s.Err, domain.ErrNetwork)

	_, ok := s.LoadMore()
	assert.False(t, ok, "scrolling does not re-fire after a failure")

	retry, ok := s.Retry()
	require.True(t, ok)
	assert.Equal(t, 2, retry.Page)
	s.Apply(retry, success(10, result("tt3", "C")))
	assert.Equal(t, 2, s.Page)
	assert.Len(t, s.Results, 3)
	assert.NoError(t, s.Err)
}

func TestSessionEmptyClearsResults(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.Submit("batman")
	s.Apply(req, success(10, result("tt1", "A"), result("tt2", "B")))

	// On load-more
	req, _ = s.LoadMore()
	s.Apply(req, empty())
	assert.Empty(t, s.Results)
	assert.Equal(t, SessionEmpty, s.State)
	assert.Equal(t, noResultsMessage, s.Notice)

	// On a fresh submit
	req, _ = s.Submit("zzz")
	s.Apply(req, empty())
	assert.Empty(t, s.Results)
	assert.Equal(t, SessionEmpty, s.State)
}

func TestSessionSubmitFailure(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.Submit("batman")
	s.Apply(req, failed())

	assert.Equal(t, SessionFailed, s.State)
	assert.Contains(t, s.Notice, "retry")

	retry, ok := s.Retry()
	require.True(t, ok)
	assert.Equal(t, 1, retry.Page)
	assert.Equal(t, SessionSearching, s.State)
}

func TestSessionDiscardsStaleResponses(t *testing.T) {
	s := NewSearchSession()
	first, _ := s.Submit("batman")
	second, _ := s.Submit("superman")

	// The slower first response arrives after the second was issued
	assert.False(t, s.Apply(first, success(1, result("tt1", "Batman"))))
	assert.Equal(t, SessionSearching, s.State)
	assert.Empty(t, s.Results)

	assert.True(t, s.Apply(second, success(1, result("tt2", "Superman"))))
	require.Len(t, s.Results, 1)
	assert.Equal(t, "tt2", s.Results[0].ID)

	assert.False(t, s.Apply(first, success(1, result("tt1", "Batman"))), "late stale response still ignored")
	assert.Equal(t, "tt2", s.Results[0].ID)
}

func TestSessionSubmitOverridesLoadMore(t *testing.T) {
	s := NewSearchSession()
	req, _ := s.Submit("batman")
	s.Apply(req, success(10, result("tt1", "A")))
	more, _ := s.LoadMore()

	next, _ := s.Submit("alien")
	assert.False(t, s.Apply(more, success(10, result("tt2", "B"))))
	assert.True(t, s.Apply(next, success(1, result("tt5", "Alien"))))
	assert.Equal(t, "alien", s.Query)
	assert.Len(t, s.Results, 1)
}

func TestSessionLoadMoreGuards(t *testing.T) {
	s := NewSearchSession()
	_, ok := s.LoadMore()
	assert.False(t, ok, "idle")

	req, _ := s.Submit("batman")
	_, ok = s.LoadMore()
	assert.False(t, ok, "first page in flight")

	s.Apply(req, success(10, result("tt1", "A")))
	_, ok = s.LoadMore()
	assert.True(t, ok)

	_, ok = s.LoadMore()
	assert.False(t, ok, "second page in flight")
	assert.True(t, s.Busy())
}

package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinesearch/internal/domain"
)

func results(n int) []domain.SearchResult {
	out := make([]domain.SearchResult, n)
	for i := range out {
		out[i] = domain.NewSearchResult(fmt.Sprintf("tt%03d", i), fmt.Sprintf("Movie %d", i), "2000", "movie", "N/A")
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newFocusedList(rows []domain.SearchResult) *ResultsList {
	l := NewResultsList()
	l.SetSize(40, 12)
	l.SetFocused(true)
	l.SetResults(rows)
	return l
}

func TestResultsListNavigation(t *testing.T) {
	l := newFocusedList(results(5))

	l.Update(keyRunes("j"))
	l.Update(keyRunes("j"))
	assert.Equal(t, 2, l.cursor)

	l.Update(keyRunes("k"))
	assert.Equal(t, 1, l.cursor)

	l.Update(keyRunes("G"))
	assert.Equal(t, 4, l.cursor)

	// Moving past the end stays on the last row
	l.Update(keyRunes("j"))
	assert.Equal(t, 4, l.cursor)

	l.Update(keyRunes("g"))
	assert.Equal(t, 0, l.cursor)

	r, ok := l.SelectedResult()
	require.True(t, ok)
	assert.Equal(t, "tt000", r.ID)
}

func TestResultsListIgnoresKeysWhenBlurred(t *testing.T) {
	l := newFocusedList(results(3))
	l.SetFocused(false)

	l.Update(keyRunes("j"))
	assert.Equal(t, 0, l.cursor)
}

func TestResultsListSetResultsKeepsCursor(t *testing.T) {
	l := newFocusedList(results(3))
	l.Update(keyRunes("G"))
	require.Equal(t, 2, l.cursor)

	// Appending a page keeps the selection in place
	l.SetResults(results(6))
	assert.Equal(t, 2, l.cursor)

	// Shrinking clamps it
	l.SetResults(results(1))
	assert.Equal(t, 0, l.cursor)

	l.Reset()
	assert.Equal(t, 0, l.ItemCount())
	_, ok := l.SelectedResult()
	assert.False(t, ok)
}

func TestResultsListNearEnd(t *testing.T) {
	l := newFocusedList(results(10))
	assert.False(t, l.NearEnd(3))

	for i := 0; i < 7; i++ {
		l.Update(keyRunes("j"))
	}
	assert.True(t, l.NearEnd(3))

	l.ToggleFilter()
	assert.False(t, l.NearEnd(3), "filtered view never paginates")

	assert.False(t, NewResultsList().NearEnd(3))
}

func TestResultsListFilter(t *testing.T) {
	rows := []domain.SearchResult{
		domain.NewSearchResult("tt1", "Batman Begins", "2005", "movie", "N/A"),
		domain.NewSearchResult("tt2", "The Dark Knight", "2008", "movie", "N/A"),
		domain.NewSearchResult("tt3", "Batman Returns", "1992", "movie", "N/A"),
	}
	l := newFocusedList(rows)

	l.ToggleFilter()
	require.True(t, l.IsFilterTyping())

	l.Update(keyRunes("dark"))
	assert.Equal(t, 1, l.ItemCount())
	r, ok := l.SelectedResult()
	require.True(t, ok)
	assert.Equal(t, "tt2", r.ID)
	assert.Contains(t, l.View(), "[1/3]")

	// Enter keeps the filter but returns to navigation
	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, l.IsFiltering())
	assert.False(t, l.IsFilterTyping())

	l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, l.IsFiltering())
	assert.Equal(t, 3, l.ItemCount())
}

func TestResultsListViewMarksFavorites(t *testing.T) {
	rows := []domain.SearchResult{
		domain.NewSearchResult("tt1", "Batman Begins", "2005", "movie", "N/A"),
		domain.NewSearchResult("tt2", "The Dark Knight", "2008", "movie", "http://img/dk.jpg"),
	}
	l := newFocusedList(rows)
	l.SetFavorites(domain.NewFavoritesSet([]string{"tt2"}))

	view := l.View()
	lines := strings.Split(view, "\n")

	var begins, knight string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "Batman Begins"):
			begins = line
		case strings.Contains(line, "The Dark Knight"):
			knight = line
		}
	}
	require.NotEmpty(t, begins)
	require.NotEmpty(t, knight)
	assert.Contains(t, knight, "★")
	assert.NotContains(t, begins, "★")
}

func TestResultsListEmptyAndLoading(t *testing.T) {
	l := newFocusedList(nil)
	l.SetEmptyText("No movies found")
	assert.Contains(t, l.View(), "No movies found")

	l.SetLoading(true)
	l.SetSpinner("*")
	assert.Contains(t, l.View(), "Searching...")
}

func TestSearchBarSubmit(t *testing.T) {
	s := NewSearchBar()
	s.SetWidth(40)
	require.True(t, s.Focused())

	var submitted bool
	s, _, submitted = s.Update(keyRunes("alien"))
	assert.False(t, submitted)
	assert.Equal(t, "alien", s.Value())

	_, _, submitted = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)
}

func TestSearchBarClearAndBlur(t *testing.T) {
	s := NewSearchBar()
	s.SetValue("alien")

	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, "", s.Value())

	s.Blur()
	s, _, submitted := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, submitted)
	assert.False(t, s.Focused())
}

func TestDetailViewStates(t *testing.T) {
	base := domain.NewSearchResult("tt0468569", "The Dark Knight", "2008", "movie", "N/A")

	d := NewDetailView()
	d.SetSize(80, 24)
	d.Open(base)
	assert.Equal(t, DetailLoading, d.Status())
	assert.Equal(t, base, d.Base())
	_, ok := d.Detail()
	assert.False(t, ok)

	d.SetFailed("movie database is unreachable", true)
	assert.Equal(t, DetailFailed, d.Status())
	assert.Contains(t, d.View(), "movie database is unreachable")
	assert.Contains(t, d.View(), "retry")

	d.SetFailed("API key is invalid", false)
	assert.NotContains(t, d.View(), "retry")

	d.SetEmpty("Movie not found")
	assert.Equal(t, DetailEmpty, d.Status())

	detail := domain.NewMovieDetail(base, "N/A")
	detail.Director = "Christopher Nolan"
	d.SetDetail(detail)
	assert.Equal(t, DetailLoaded, d.Status())

	got, ok := d.Detail()
	require.True(t, ok)
	assert.Equal(t, "Christopher Nolan", got.Director)
	assert.Contains(t, d.View(), "Christopher Nolan")
}

func TestWordWrap(t *testing.T) {
	wrapped := wordWrap("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}
	assert.Equal(t, "the quick brown fox jumps over the lazy dog", strings.Join(strings.Fields(wrapped), " "))

	assert.Equal(t, "unchanged", wordWrap("unchanged", 0))
}

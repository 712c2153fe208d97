package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.Screen {
	case ScreenHelp:
		// Any key returns
		m.Screen = m.returnTo
		return m, nil

	case ScreenDetail:
		return m.handleDetailKey(msg)
	}

	if m.Focus == FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

// handleInputKey handles keys while the search bar has focus. Everything
// not bound here is typed into the query.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.FocusSwitch), key.Matches(msg, Keys.Escape):
		m.setFocus(FocusList)
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.SearchBar, cmd, submitted = m.SearchBar.Update(msg)
	if submitted {
		return m, m.submit()
	}
	return m, cmd
}

// handleListKey handles keys while the results list has focus
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The filter input takes every key while typing
	if m.Results.IsFilterTyping() {
		return m, m.Results.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.returnTo = ScreenSearch
		m.Screen = ScreenHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Results.IsFiltering() {
			m.Results.ClearFilter()
			return m, nil
		}
		m.setFocus(FocusInput)
		return m, nil

	case key.Matches(msg, Keys.FocusSwitch), key.Matches(msg, Keys.FocusSearch):
		m.setFocus(FocusInput)
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if m.Results.IsFiltering() {
			// Re-focus the existing filter
			return m, m.Results.Update(msg)
		}
		m.Results.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if r, ok := m.Results.SelectedResult(); ok {
			return m, m.openDetail(r)
		}
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		if r, ok := m.Results.SelectedResult(); ok {
			return m, m.toggleFavorite(r.ID)
		}
		return m, nil

	case key.Matches(msg, Keys.Retry):
		return m, m.retrySearch()

	case key.Matches(msg, Keys.Poster):
		if r, ok := m.Results.SelectedResult(); ok {
			return m, OpenPosterCmd(m.LinkSvc, r)
		}
		return m, nil
	}

	cmd := m.Results.Update(msg)
	return m, tea.Batch(cmd, m.maybeLoadMore())
}

// handleDetailKey handles keys on the detail screen
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	base := m.Detail.Base()

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.returnTo = ScreenDetail
		m.Screen = ScreenHelp
		return m, nil

	case key.Matches(msg, Keys.Back):
		m.closeDetail()
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		return m, m.toggleFavorite(base.ID)

	case key.Matches(msg, Keys.Retry):
		// Every open fetches again, so retry is just reopening
		return m, m.openDetail(base)

	case key.Matches(msg, Keys.Poster):
		if d, ok := m.Detail.Detail(); ok {
			return m, OpenPosterCmd(m.LinkSvc, d.SearchResult)
		}
		return m, OpenPosterCmd(m.LinkSvc, base)

	case key.Matches(msg, Keys.IMDb):
		d, ok := m.Detail.Detail()
		if !ok {
			d = domain.MovieDetail{SearchResult: base}
		}
		return m, OpenIMDbCmd(m.LinkSvc, d)
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/service"
	"github.com/mmcdole/cinesearch/internal/tui/components"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// Screen is the top-level view being shown
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenDetail
	ScreenHelp
)

// Focus is the search screen widget receiving keys
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

const (
	// Vertical layout: single footer line
	ChromeHeight = 1

	// DefaultLoadMoreThreshold is how close to the last row the cursor gets
	// before the next page is requested
	DefaultLoadMoreThreshold = 3

	statusDuration      = 3 * time.Second
	errorStatusDuration = 5 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	Screen   Screen
	returnTo Screen // screen to restore when help closes
	Focus    Focus
	Ready    bool

	// Services
	SearchSvc    *service.SearchService
	FavoritesSvc *service.FavoritesService
	LinkSvc      *service.LinkService

	// Data
	Session   *service.SearchSession
	Favorites domain.FavoritesSet

	// UI Components
	SearchBar components.SearchBar
	Results   *components.ResultsList
	Detail    components.DetailView
	Spinner   spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusID    int

	LoadMoreThreshold int

	// detailSeq identifies the detail fetch whose response is still wanted
	detailSeq uint64
}

// NewModel creates a new application model. The favorites service should
// already be loaded.
func NewModel(
	searchSvc *service.SearchService,
	favoritesSvc *service.FavoritesService,
	linkSvc *service.LinkService,
	loadMoreThreshold int,
) Model {
	if loadMoreThreshold <= 0 {
		loadMoreThreshold = DefaultLoadMoreThreshold
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Spinner{Frames: styles.SpinnerFrames, FPS: time.Second / 10}),
		spinner.WithStyle(styles.SpinnerStyle),
	)

	favorites := favoritesSvc.Current()
	results := components.NewResultsList()
	results.SetFavorites(favorites)

	return Model{
		Screen:            ScreenSearch,
		Focus:             FocusInput,
		SearchSvc:         searchSvc,
		FavoritesSvc:      favoritesSvc,
		LinkSvc:           linkSvc,
		Session:           service.NewSearchSession(),
		Favorites:         favorites,
		SearchBar:         components.NewSearchBar(),
		Results:           results,
		Detail:            components.NewDetailView(),
		Spinner:           sp,
		LoadMoreThreshold: loadMoreThreshold,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		textinput.Blink,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case DetailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case FavoritesSavedMsg:
		if msg.Err != nil {
			// The in-memory set stays as the user left it
			return m, m.setStatus("Could not save favorites", true)
		}
		return m, nil

	case LinkOpenedMsg:
		return m, m.setStatus("Opened "+msg.What, false)

	case ErrMsg:
		if errors.Is(msg.Err, service.ErrNoPoster) {
			return m, m.setStatus("No poster available for this title", true)
		}
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Cursor blink and other input messages
	if m.Screen == ScreenSearch && m.Focus == FocusInput {
		var cmd tea.Cmd
		m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleSearchResult folds a search response into the session. Responses to
// superseded requests are dropped.
func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if !m.Session.Apply(msg.Req, msg.Outcome) {
		return m, nil
	}
	m.syncResults()

	switch msg.Outcome.Kind {
	case domain.OutcomeEmpty:
		return m, m.setStatus(msg.Outcome.Message, false)
	case domain.OutcomeFailed:
		return m, m.setStatus(msg.Outcome.Message, true)
	}

	// A short first page can leave the cursor inside the threshold already
	return m, m.maybeLoadMore()
}

// handleDetailLoaded shows a detail response if it is for the open screen
func (m Model) handleDetailLoaded(msg DetailLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.detailSeq {
		return m, nil
	}

	switch msg.Outcome.Kind {
	case domain.OutcomeSuccess:
		m.Detail.SetDetail(*msg.Outcome.Detail)
	case domain.OutcomeEmpty:
		m.Detail.SetEmpty(msg.Outcome.Message)
	case domain.OutcomeFailed:
		m.Detail.SetFailed(msg.Outcome.Message, domain.ClassifyError(msg.Outcome.Err).Retryable())
	}
	return m, nil
}

// submit starts a new search from the search bar text
func (m *Model) submit() tea.Cmd {
	req, ok := m.Session.Submit(m.SearchBar.Value())
	if !ok {
		return m.setStatus("Enter a title to search for", true)
	}

	m.Results.Reset()
	m.setFocus(FocusList)
	m.syncResults()
	return SearchCmd(m.SearchSvc, req)
}

// maybeLoadMore requests the next page when the cursor is near the end
func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.Results.NearEnd(m.LoadMoreThreshold) {
		return nil
	}
	req, ok := m.Session.LoadMore()
	if !ok {
		return nil
	}
	m.syncResults()
	return SearchCmd(m.SearchSvc, req)
}

// retrySearch re-issues the request that last failed
func (m *Model) retrySearch() tea.Cmd {
	req, ok := m.Session.Retry()
	if !ok {
		return nil
	}
	if req.Page <= 1 {
		m.Results.Reset()
	}
	m.syncResults()
	return SearchCmd(m.SearchSvc, req)
}

// openDetail switches to the detail screen and starts a fresh fetch
func (m *Model) openDetail(r domain.SearchResult) tea.Cmd {
	m.detailSeq++
	m.Screen = ScreenDetail
	m.Detail.Open(r)
	m.Detail.SetFavorite(m.Favorites.Contains(r.ID))
	return LoadDetailCmd(m.SearchSvc, m.detailSeq, r.ID)
}

// closeDetail returns to the search screen, abandoning any pending fetch
func (m *Model) closeDetail() {
	m.detailSeq++
	m.Screen = ScreenSearch
}

// toggleFavorite flips id immediately and persists in the background
func (m *Model) toggleFavorite(id string) tea.Cmd {
	set, persist := m.FavoritesSvc.Toggle(id)
	m.Favorites = set
	m.Results.SetFavorites(set)
	m.Detail.SetFavorite(set.Contains(m.Detail.Base().ID))

	text := "Removed from favorites"
	if set.Contains(id) {
		text = "Added to favorites"
	}
	return tea.Batch(
		PersistFavoritesCmd(persist),
		m.setStatus(text, false),
	)
}

func (m *Model) setFocus(f Focus) {
	m.Focus = f
	if f == FocusInput {
		m.SearchBar.Focus()
		m.Results.SetFocused(false)
		return
	}
	m.SearchBar.Blur()
	m.Results.SetFocused(true)
}

// setStatus shows a toast and schedules its removal
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.StatusMsg = text
	m.StatusIsErr = isErr

	delay := statusDuration
	if isErr {
		delay = errorStatusDuration
	}
	return ClearStatusCmd(m.statusID, delay)
}

// syncResults pushes session state into the results list
func (m *Model) syncResults() {
	s := m.Session

	m.Results.SetLoading(s.State == service.SessionSearching)
	m.Results.SetLoadingMore(s.State == service.SessionLoadingMore)
	m.Results.SetResults(s.Results)

	switch s.State {
	case service.SessionIdle:
		m.Results.SetTitle("Results")
		m.Results.SetEmptyText("Search for a movie title above")
	case service.SessionEmpty, service.SessionFailed:
		m.Results.SetTitle(fmt.Sprintf("Results for %q", s.Query))
		m.Results.SetEmptyText(s.Notice)
	default:
		m.Results.SetTitle(fmt.Sprintf("Results for %q · %d of %d", s.Query, len(s.Results), s.Total))
	}
}

// updateLayout sizes components to the terminal
func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight

	m.SearchBar.SetWidth(m.Width)
	m.Results.SetSize(m.Width, contentHeight-components.SearchBarHeight)
	m.Detail.SetSize(m.Width, contentHeight)
}

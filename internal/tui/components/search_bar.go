package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// SearchBarHeight is the rendered height including the border
const SearchBarHeight = 3

// SearchBar is the query input at the top of the search screen
type SearchBar struct {
	input textinput.Model
	keys  SearchBarKeyMap
	width int
}

// NewSearchBar creates a focused search input
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "Search: "
	ti.PromptStyle = styles.InputPromptStyle
	ti.TextStyle = styles.InputTextStyle
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return SearchBar{
		input: ti,
		keys:  DefaultSearchBarKeyMap(),
	}
}

// Focus focuses the input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused returns true if the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current query text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// border(2) + padding(2) + prompt
	s.input.Width = width - 4 - len(s.input.Prompt)
	if s.input.Width < 10 {
		s.input.Width = 10
	}
}

func (s SearchBar) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. The bool result is true when the user submitted
// the query.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.input.Focused() {
		return s, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, s.keys.Submit):
			return s, nil, true
		case key.Matches(keyMsg, s.keys.Clear):
			s.input.SetValue("")
			return s, nil, false
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

// View renders the component
func (s SearchBar) View() string {
	style := styles.InactiveBorder
	if s.input.Focused() {
		style = styles.ActiveBorder
	}
	frameW, _ := style.GetFrameSize()

	return style.
		Width(s.width - frameW).
		Padding(0, 1).
		Render(s.input.View())
}

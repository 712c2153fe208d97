package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// Layout constants for the results list
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ResultsList is the scrollable list of accumulated search results.
// Filtering narrows what is shown without touching the underlying results.
type ResultsList struct {
	results   []domain.SearchResult
	favorites domain.FavoritesSet
	keys      ListKeyMap

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title     string
	emptyText string

	// Loading state
	loading     bool
	loadingMore bool
	spinner     string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into results
}

// NewResultsList creates an empty results list
func NewResultsList() *ResultsList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ResultsList{
		keys:        DefaultListKeyMap(),
		title:       "Results",
		emptyText:   "Search for a movie title above",
		filterInput: ti,
	}
}

// Update handles navigation and filter keys
func (l *ResultsList) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	// Filter input typing mode
	if l.filterActive && l.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, l.keys.Escape):
				l.clearFilter()
				return nil
			case key.Matches(keyMsg, l.keys.Enter):
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return nil
			case keyMsg.String() == "backspace" && l.filterInput.Value() == "":
				l.clearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	// Filter is active but blurred: navigating the filtered rows
	if l.filterActive {
		switch {
		case key.Matches(keyMsg, l.keys.Escape):
			l.clearFilter()
			return nil
		case key.Matches(keyMsg, l.keys.Filter):
			l.filterInput.Focus()
			return nil
		}
	}

	count := l.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, l.keys.Down):
		if l.cursor < count-1 {
			l.cursor++
			l.ensureVisible()
		}
	case key.Matches(keyMsg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
			l.ensureVisible()
		}
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
		l.offset = 0
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = count - 1
		l.ensureVisible()
	case key.Matches(keyMsg, l.keys.HalfDown):
		l.moveBy(l.maxVisible / 2)
	case key.Matches(keyMsg, l.keys.HalfUp):
		l.moveBy(-l.maxVisible / 2)
	case key.Matches(keyMsg, l.keys.PageDown):
		l.moveBy(l.maxVisible)
	case key.Matches(keyMsg, l.keys.PageUp):
		l.moveBy(-l.maxVisible)
	}

	return nil
}

// View renders the list inside its border
func (l *ResultsList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	content := l.renderContent()

	// Subtract frame (border) size so total rendered size equals l.width x l.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(l.width - frameW).
		Height(l.height - frameH).
		Render(content)
}

// SetSize updates the component dimensions
func (l *ResultsList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

func (l *ResultsList) SetFocused(focused bool) {
	l.focused = focused
}

func (l *ResultsList) SetTitle(title string) {
	l.title = title
}

// SetEmptyText sets what is shown when there are no rows
func (l *ResultsList) SetEmptyText(text string) {
	l.emptyText = text
}

// SetResults replaces the rows, keeping the cursor where it was when possible
func (l *ResultsList) SetResults(results []domain.SearchResult) {
	l.results = results
	if l.filterActive {
		l.reapplyFilter()
	}
	l.clampCursor()
}

// Reset clears rows, cursor, and filter for a fresh query
func (l *ResultsList) Reset() {
	l.results = nil
	l.cursor = 0
	l.offset = 0
	l.clearFilter()
}

// SetFavorites sets the set used to draw favorite stars
func (l *ResultsList) SetFavorites(favorites domain.FavoritesSet) {
	l.favorites = favorites
}

// SetLoading shows the full-list spinner used while the first page loads
func (l *ResultsList) SetLoading(loading bool) {
	l.loading = loading
}

// SetLoadingMore shows a spinner row below the results
func (l *ResultsList) SetLoadingMore(loading bool) {
	l.loadingMore = loading
}

// SetSpinner sets the current spinner glyph
func (l *ResultsList) SetSpinner(view string) {
	l.spinner = view
}

// SelectedResult returns the row under the cursor
func (l *ResultsList) SelectedResult() (domain.SearchResult, bool) {
	if l.ItemCount() == 0 || l.cursor >= l.ItemCount() {
		return domain.SearchResult{}, false
	}
	return l.results[l.mapIndex(l.cursor)], true
}

// ItemCount returns the number of visible rows (after filtering)
func (l *ResultsList) ItemCount() int {
	if l.filterActive && l.filterQuery != "" {
		return len(l.filteredIdx)
	}
	return len(l.results)
}

// NearEnd reports whether the cursor is within threshold rows of the end of
// the unfiltered results. Filtered views never trigger pagination.
func (l *ResultsList) NearEnd(threshold int) bool {
	if l.filterActive || len(l.results) == 0 {
		return false
	}
	return l.cursor >= len(l.results)-threshold
}

// ToggleFilter activates the filter input
func (l *ResultsList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (l *ResultsList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (l *ResultsList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all rows
func (l *ResultsList) ClearFilter() {
	l.clearFilter()
}

// Internal methods

func (l *ResultsList) moveBy(delta int) {
	l.cursor += delta
	l.clampCursor()
	l.ensureVisible()
}

func (l *ResultsList) clampCursor() {
	count := l.ItemCount()
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *ResultsList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interiorHeight := l.height - BorderHeight
	l.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ResultsList) ensureVisible() {
	// Size not known yet
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *ResultsList) clearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clampCursor()
}

func (l *ResultsList) applyFilter() {
	l.reapplyFilter()
	l.cursor = 0
	l.offset = 0
}

func (l *ResultsList) reapplyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query

	if query == "" {
		l.filteredIdx = nil
		return
	}

	titles := make([]string, len(l.results))
	for i, r := range l.results {
		titles[i] = strings.ToLower(r.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)

	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}
}

func (l *ResultsList) mapIndex(i int) int {
	if l.filterActive && l.filterQuery != "" && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

// Rendering

func (l *ResultsList) renderContent() string {
	itemWidth := l.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	if l.loading {
		loadingLine := l.spinner + styles.DimStyle.Render(" Searching...")
		return titleLine + "\n" + " " + "\n" + loadingLine + "\n" + " "
	}

	count := l.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(l.emptyText)
		if l.filterActive && l.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if l.filterActive {
			content += "\n" + l.renderFilterBar()
		}
		return content
	}

	var lines []string

	end := l.offset + l.maxVisible
	if end > count {
		end = count
	}

	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderResultItem(l.results[l.mapIndex(i)], i == l.cursor, itemWidth))
	}

	// Always reserve the indicator lines so the layout does not shift
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	footer := " "
	switch {
	case l.loadingMore:
		footer = l.spinner + styles.DimStyle.Render(" Loading more...")
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if l.filterActive {
		content += "\n" + l.renderFilterBar()
	}

	return content
}

func (l *ResultsList) renderResultItem(r domain.SearchResult, selected bool, width int) string {
	starChar := styles.NotFavoriteChar
	starFg := styles.DimGray
	if l.favorites.Contains(r.ID) {
		starChar = styles.FavoriteChar
		starFg = styles.Amber
	}

	posterChar := styles.NoPosterChar
	posterFg := styles.DimGray
	if r.HasPoster() {
		posterChar = styles.PosterChar
		posterFg = styles.Green
	}

	// Available space: star(1) + space(1) + poster(1) + space(1) + margins(2)
	available := width - 6
	if available < 5 {
		available = 5
	}
	title := styles.Truncate(r.DisplayTitle(), available)

	parts := []styles.RowPart{
		{Text: starChar, Foreground: &starFg},
		{Text: " "},
		{Text: posterChar, Foreground: &posterFg},
		{Text: " " + title},
	}

	return styles.RenderListRow(parts, selected, width)
}

func (l *ResultsList) renderFilterBar() string {
	input := l.filterInput.View()

	countStr := ""
	if l.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", l.ItemCount(), len(l.results)))
	}

	return input + countStr
}

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// Layout constants for the detail view
const (
	DetailBorderHeight     = 2
	DetailScrollIndicators = 2
)

// DetailStatus is the load state of the detail view
type DetailStatus int

const (
	DetailLoading DetailStatus = iota
	DetailLoaded
	DetailEmpty
	DetailFailed
)

// DetailView shows the full record of one movie. The header is fixed and
// the body scrolls in a viewport.
type DetailView struct {
	base      domain.SearchResult // row the view was opened from
	detail    *domain.MovieDetail
	status    DetailStatus
	message   string
	retryable bool
	favorite  bool
	spinner   string

	width    int
	height   int
	viewport viewport.Model
}

// NewDetailView creates an empty detail view
func NewDetailView() DetailView {
	vp := viewport.New(0, 0)
	vp.KeyMap = detailViewportKeyMap()
	return DetailView{viewport: vp}
}

// Open resets the view for r and shows the loading state
func (d *DetailView) Open(r domain.SearchResult) {
	d.base = r
	d.detail = nil
	d.status = DetailLoading
	d.message = ""
	d.refresh()
}

// SetDetail shows a loaded record
func (d *DetailView) SetDetail(detail domain.MovieDetail) {
	d.detail = &detail
	d.status = DetailLoaded
	d.message = ""
	d.refresh()
}

// SetEmpty shows a "no such movie" message
func (d *DetailView) SetEmpty(message string) {
	d.detail = nil
	d.status = DetailEmpty
	d.message = message
	d.refresh()
}

// SetFailed shows a load failure. The retry hint is only drawn when
// retryable is set.
func (d *DetailView) SetFailed(message string, retryable bool) {
	d.detail = nil
	d.status = DetailFailed
	d.message = message
	d.retryable = retryable
	d.refresh()
}

// SetFavorite sets whether the star is filled
func (d *DetailView) SetFavorite(favorite bool) {
	d.favorite = favorite
}

// SetSpinner sets the current spinner glyph
func (d *DetailView) SetSpinner(view string) {
	d.spinner = view
}

// SetSize updates the component dimensions
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.refresh()
}

// Status returns the load state
func (d DetailView) Status() DetailStatus {
	return d.status
}

// Base returns the search row the view was opened from
func (d DetailView) Base() domain.SearchResult {
	return d.base
}

// Detail returns the loaded record, if any
func (d DetailView) Detail() (domain.MovieDetail, bool) {
	if d.detail == nil {
		return domain.MovieDetail{}, false
	}
	return *d.detail, true
}

// Update scrolls the body
func (d DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the component
func (d DetailView) View() string {
	style := styles.ActiveBorder
	frameW, frameH := style.GetFrameSize()
	contentWidth := d.contentWidth()

	titleLine := styles.AccentStyle.Render(styles.Truncate("Details", contentWidth))

	var parts []string
	parts = append(parts, titleLine, "")

	switch d.status {
	case DetailLoading:
		parts = append(parts,
			d.renderHeader(d.base, contentWidth),
			"",
			d.spinner+styles.DimStyle.Render(" Loading details..."),
		)

	case DetailEmpty:
		parts = append(parts,
			d.renderHeader(d.base, contentWidth),
			"",
			styles.DimStyle.Render(d.message),
		)

	case DetailFailed:
		actions := styles.AccentStyle.Render("esc") + styles.DimStyle.Render(" back")
		if d.retryable {
			actions = styles.AccentStyle.Render("r") + styles.DimStyle.Render(" retry  ") + actions
		}
		parts = append(parts,
			d.renderHeader(d.base, contentWidth),
			"",
			styles.ErrorStyle.Render(d.message),
			actions,
		)

	case DetailLoaded:
		up := " "
		if !d.viewport.AtTop() {
			up = styles.DimStyle.Render("↑ more")
		}
		down := " "
		if !d.viewport.AtBottom() {
			down = styles.DimStyle.Render("↓ more")
		}
		parts = append(parts,
			d.renderHeader(d.detail.SearchResult, contentWidth),
			up,
			d.viewport.View(),
			down,
		)
	}

	return style.
		Width(d.width - frameW).
		Height(d.height - frameH).
		Render(strings.Join(parts, "\n"))
}

func (d *DetailView) contentWidth() int {
	// Border takes 2 chars, leave 1 char safety margin
	w := d.width - 3
	if w < 10 {
		w = 10
	}
	return w
}

// refresh re-renders the body into the viewport after a size or content change
func (d *DetailView) refresh() {
	contentWidth := d.contentWidth()
	headerLines := 3
	if d.detail != nil {
		headerLines = lipgloss.Height(d.renderHeader(d.detail.SearchResult, contentWidth))
	}

	// title + blank + header + scroll indicators
	bodyHeight := d.height - DetailBorderHeight - 2 - headerLines - DetailScrollIndicators
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	d.viewport.Width = contentWidth
	d.viewport.Height = bodyHeight

	if d.detail == nil {
		d.viewport.SetContent("")
		return
	}
	d.viewport.SetContent(renderDetailBody(*d.detail, contentWidth))
	d.viewport.GotoTop()
}

func (d DetailView) renderHeader(r domain.SearchResult, width int) string {
	var b strings.Builder

	star := styles.EmptyStar
	if d.favorite {
		star = styles.FavoriteStar
	}
	b.WriteString(star + " " + styles.TitleStyle.Render(styles.Truncate(r.Title, width-2)))
	b.WriteString("\n")

	// Meta line: Year · Rated · Runtime
	var meta []string
	if r.Year != "" {
		meta = append(meta, r.Year)
	}
	if d.detail != nil {
		if d.detail.Rated != "" {
			meta = append(meta, d.detail.Rated)
		}
		if d.detail.Runtime != "" {
			meta = append(meta, d.detail.Runtime)
		}
	}
	b.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(meta, " · "), width)))
	b.WriteString("\n")

	if d.detail != nil && d.detail.HasRating() {
		b.WriteString(renderRating(d.detail.Rating))
	} else {
		b.WriteString(styles.DimStyle.Render("No rating"))
	}

	return b.String()
}

// renderRating colors the IMDb rating by how good it is
func renderRating(rating string) string {
	text := "★ " + rating + "/10"
	value, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return styles.RatingStyle.Render(text)
	}

	var style lipgloss.Style
	switch {
	case value >= 7:
		style = lipgloss.NewStyle().Foreground(styles.Green)
	case value >= 5:
		style = lipgloss.NewStyle().Foreground(styles.Amber)
	default:
		style = lipgloss.NewStyle().Foreground(styles.Red)
	}
	return style.Bold(true).Render(text)
}

func renderDetailBody(detail domain.MovieDetail, width int) string {
	var b strings.Builder

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.LabelStyle.Render(label))
		b.WriteString(styles.ValueStyle.Render(styles.Truncate(value, width-12)))
		b.WriteString("\n")
	}

	field("Genre", detail.Genre)
	field("Director", detail.Director)
	field("Cast", detail.Actors)
	field("Released", detail.Released)
	field("Type", detail.Type)

	if detail.Plot != "" {
		plotWidth := width - 2
		if plotWidth > 80 {
			plotWidth = 80
		}
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(wordWrap(detail.Plot, plotWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if detail.HasPoster() {
		field("Poster", detail.PosterURL)
	} else {
		field("Poster", "not available")
	}
	b.WriteString(styles.LabelStyle.Render("IMDb"))
	b.WriteString(styles.LinkStyle.Render(detail.IMDbURL()))

	return b.String()
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for i, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

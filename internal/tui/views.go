package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinesearch/internal/service"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.Screen == ScreenHelp {
		return m.renderHelp()
	}

	spin := m.Spinner.View()

	var content string
	switch m.Screen {
	case ScreenDetail:
		m.Detail.SetSpinner(spin)
		content = m.Detail.View()
	default:
		m.Results.SetSpinner(spin)
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			m.SearchBar.View(),
			m.Results.View(),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderFooter(),
	)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while busy, otherwise the status toast
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	case m.Screen == ScreenSearch && m.Session.Busy():
		text := "Searching..."
		if m.Session.State == service.SessionLoadingMore {
			text = "Loading more..."
		}
		left = m.Spinner.View() + " " + styles.DimStyle.Render(text)
	}

	center := m.renderHints()

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHints returns context-specific key hints for the footer
func (m Model) renderHints() string {
	hint := func(k, desc string) string {
		return styles.AccentStyle.Render(k) + styles.DimStyle.Render(" "+desc)
	}

	var hints []string
	switch {
	case m.Screen == ScreenDetail:
		hints = []string{hint("f", "Favorite"), hint("o", "Poster"), hint("i", "IMDb"), hint("esc", "Back")}
	case m.Focus == FocusInput:
		hints = []string{hint("enter", "Search"), hint("tab", "Results")}
	case m.Session.CanRetry():
		hints = []string{hint("r", "Retry"), hint("s", "Search")}
	default:
		hints = []string{hint("enter", "Details"), hint("space", "Favorite"), hint("/", "Filter")}
	}
	return strings.Join(hints, "  ")
}

type helpEntry struct {
	key  string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var (
	searchHelp = []helpSection{
		{"Search", []helpEntry{
			{"Enter", "Run search"},
			{"Tab/Esc", "Go to results"},
			{"C-l", "Clear query"},
		}},
		{"Details", []helpEntry{
			{"f", "Toggle favorite"},
			{"o", "Open poster"},
			{"i", "Open IMDb page"},
			{"r", "Reload"},
			{"Esc", "Back"},
		}},
	}
	resultsHelp = []helpSection{
		{"Results", []helpEntry{
			{"j/k", "Up/down"},
			{"g/G", "First/last"},
			{"C-u/C-d", "Half page"},
			{"Enter", "Open details"},
			{"Space/f", "Toggle favorite"},
			{"/", "Filter results"},
			{"o", "Open poster"},
			{"r", "Retry failed request"},
			{"s/Tab", "Edit search"},
			{"q", "Quit"},
		}},
	}
)

func renderHelpColumn(sections []helpSection) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentStyle.Bold(true).Render(strings.ToUpper(section.title)))
		b.WriteString("\n")
		for _, e := range section.entries {
			b.WriteString("  ")
			b.WriteString(styles.HelpKeyStyle.Width(10).Render(e.key))
			b.WriteString(styles.HelpDescStyle.Render(e.desc))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(4).Render(renderHelpColumn(searchHelp)),
		renderHelpColumn(resultsHelp),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keyboard shortcuts"),
		columns,
		styles.DimStyle.Render("More results load as you reach the end of the list."),
		"",
		styles.DimStyle.Render("Press any key to return..."),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

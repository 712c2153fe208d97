package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// newTable returns a table styled like the interactive interface
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.DimStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func favoriteMark(favorites domain.FavoritesSet, id string) string {
	if favorites.Contains(id) {
		return styles.FavoriteChar
	}
	return ""
}

func posterMark(r domain.SearchResult) string {
	if r.HasPoster() {
		return "yes"
	}
	return "no"
}

// printResults writes search rows as a table
func printResults(w io.Writer, results []domain.SearchResult, favorites domain.FavoritesSet) {
	t := newTable("ID", "TITLE", "YEAR", "TYPE", "POSTER", "FAV")
	for _, r := range results {
		t.Row(r.ID, r.Title, r.Year, r.Type, posterMark(r), favoriteMark(favorites, r.ID))
	}
	fmt.Fprintln(w, t.Render())
}

// printDetails writes resolved favorites as a table
func printDetails(w io.Writer, details []*domain.MovieDetail) {
	t := newTable("ID", "TITLE", "YEAR", "GENRE", "RATING")
	for _, d := range details {
		rating := d.Rating
		if !d.HasRating() {
			rating = "-"
		}
		t.Row(d.ID, d.Title, d.Year, d.Genre, rating)
	}
	fmt.Fprintln(w, t.Render())
}

// printDetail writes one movie record
func printDetail(w io.Writer, d domain.MovieDetail, favorite bool) {
	title := styles.TitleStyle.Render(d.DisplayTitle())
	if favorite {
		title = styles.FavoriteStar + " " + title
	}
	fmt.Fprintln(w, title)

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(w, "%s%s\n", styles.LabelStyle.Render(label), value)
	}

	rating := ""
	if d.HasRating() {
		rating = d.Rating + "/10"
	}

	field("Rated", d.Rated)
	field("Runtime", d.Runtime)
	field("Genre", d.Genre)
	field("Rating", rating)
	field("Director", d.Director)
	field("Cast", d.Actors)
	field("Released", d.Released)
	field("Poster", d.PosterURL)
	field("IMDb", d.IMDbURL())

	if plot := strings.TrimSpace(d.Plot); plot != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, lipgloss.NewStyle().Width(80).Render(plot))
	}
}

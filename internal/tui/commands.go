package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/service"
)

// requestTimeout bounds a single remote call made from the UI
const requestTimeout = 60 * time.Second

// Command factories for async operations

// SearchCmd fetches one page of results for req
func SearchCmd(svc *service.SearchService, req service.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return SearchResultMsg{
			Req:     req,
			Outcome: svc.Search(ctx, req.Query, req.Page),
		}
	}
}

// LoadDetailCmd fetches the full record for id
func LoadDetailCmd(svc *service.SearchService, seq uint64, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return DetailLoadedMsg{
			Seq:     seq,
			ID:      id,
			Outcome: svc.Detail(ctx, id),
		}
	}
}

// PersistFavoritesCmd runs a favorites write off the event loop
func PersistFavoritesCmd(persist service.PersistFunc) tea.Cmd {
	return func() tea.Msg {
		return FavoritesSavedMsg{Err: persist()}
	}
}

// OpenPosterCmd opens the poster of r in the system browser
func OpenPosterCmd(svc *service.LinkService, r domain.SearchResult) tea.Cmd {
	return func() tea.Msg {
		if err := svc.OpenPoster(r); err != nil {
			return ErrMsg{Err: err, Context: "opening poster"}
		}
		return LinkOpenedMsg{What: "poster"}
	}
}

// OpenIMDbCmd opens the IMDb page of d in the system browser
func OpenIMDbCmd(svc *service.LinkService, d domain.MovieDetail) tea.Cmd {
	return func() tea.Msg {
		if err := svc.OpenIMDb(d); err != nil {
			return ErrMsg{Err: err, Context: "opening IMDb page"}
		}
		return LinkOpenedMsg{What: "IMDb page"}
	}
}

// ClearStatusCmd returns a command that clears status id after a delay
func ClearStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

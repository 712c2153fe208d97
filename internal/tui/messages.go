package tui

import (
	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchResultMsg carries the outcome of one search request
type SearchResultMsg struct {
	Req     service.SearchRequest
	Outcome domain.SearchOutcome
}

// DetailLoadedMsg carries the outcome of a detail fetch
type DetailLoadedMsg struct {
	Seq     uint64
	ID      string
	Outcome domain.DetailOutcome
}

// FavoritesSavedMsg reports the result of writing the favorites set
type FavoritesSavedMsg struct {
	Err error
}

// LinkOpenedMsg signals that a URL was handed to the system opener
type LinkOpenedMsg struct {
	What string
}

// ClearStatusMsg clears the status bar message if it is still the one
// identified by ID
type ClearStatusMsg struct {
	ID int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

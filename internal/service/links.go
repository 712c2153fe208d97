package service

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// ErrNoPoster is returned when a title has only the placeholder artwork
var ErrNoPoster = errors.New("no poster available")

// opener abstracts launching a URL in an external program (consumer-defined interface)
type opener interface {
	Open(url string) error
}

// LinkService opens movie artwork and pages outside the terminal
type LinkService struct {
	opener opener
	logger *slog.Logger
}

// NewLinkService creates a new link service
func NewLinkService(opener opener, logger *slog.Logger) *LinkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkService{
		opener: opener,
		logger: logger,
	}
}

// OpenPoster opens the poster image for r
func (s *LinkService) OpenPoster(r domain.SearchResult) error {
	if !r.HasPoster() {
		return ErrNoPoster
	}
	s.logger.Info("opening poster", "id", r.ID, "title", r.Title)
	return s.opener.Open(r.PosterURL)
}

// OpenIMDb opens the IMDb page for d
func (s *LinkService) OpenIMDb(d domain.MovieDetail) error {
	s.logger.Info("opening imdb page", "id", d.ID, "title", d.Title)
	return s.opener.Open(d.IMDbURL())
}

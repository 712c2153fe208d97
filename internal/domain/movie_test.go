package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchResultNormalizesPoster(t *testing.T) {
	tests := []struct {
		name       string
		poster     string
		wantURL    string
		wantPoster bool
	}{
		{"sentinel", "N/A", PlaceholderThumbURL, false},
		{"empty", "", PlaceholderThumbURL, false},
		{"lowercase sentinel", "n/a", PlaceholderThumbURL, false},
		{"real", "https://m.media-amazon.com/images/x.jpg", "https://m.media-amazon.com/images/x.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSearchResult("tt0372784", "Batman Begins", "2005", "movie", tt.poster)
			assert.Equal(t, tt.wantURL, r.PosterURL)
			assert.Equal(t, tt.wantPoster, r.HasPoster())
		})
	}
}

func TestNewMovieDetailUsesLargePlaceholder(t *testing.T) {
	base := NewSearchResult("tt1", "Title", "2001", "movie", "N/A")
	d := NewMovieDetail(base, "N/A")
	assert.Equal(t, PlaceholderPosterURL, d.PosterURL)
	assert.False(t, d.HasPoster())
	assert.Equal(t, "https://www.imdb.com/title/tt1/", d.IMDbURL())
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "Batman (1989)", NewSearchResult("tt1", "Batman", "1989", "", "").DisplayTitle())
	assert.Equal(t, "Batman", NewSearchResult("tt1", "Batman", "", "", "").DisplayTitle())
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, ErrorKindNone, ClassifyError(nil))
	assert.Equal(t, ErrorKindNetwork, ClassifyError(fmt.Errorf("search: %w", ErrNetwork)))
	assert.Equal(t, ErrorKindNetwork, ClassifyError(context.DeadlineExceeded))
	assert.Equal(t, ErrorKindRejected, ClassifyError(ErrInvalidAPIKey))
	assert.Equal(t, ErrorKindRejected, ClassifyError(fmt.Errorf("%w: Request limit reached!", ErrRequestLimit)))
	assert.Equal(t, ErrorKindMalformed, ClassifyError(fmt.Errorf("decode: %w", ErrMalformedResponse)))
	assert.Equal(t, ErrorKindPersistence, ClassifyError(fmt.Errorf("save: %w", ErrPersistence)))
	assert.Equal(t, ErrorKindOther, ClassifyError(errors.New("boom")))

	assert.True(t, ErrorKindNetwork.Retryable())
	assert.False(t, ErrorKindMalformed.Retryable())
	assert.False(t, ErrorKindRejected.Retryable())
	assert.False(t, ErrorKindOther.Retryable())
}

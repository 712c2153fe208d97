package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFavoritesSetDropsDuplicates(t *testing.T) {
	s := NewFavoritesSet([]string{"tt001", "", "tt002", "tt001"})
	assert.Equal(t, []string{"tt001", "tt002"}, s.IDs())
	assert.Equal(t, 2, s.Len())
}

func TestFavoritesSetToggle(t *testing.T) {
	s := NewFavoritesSet([]string{"tt001"})

	added := s.Toggle("tt002")
	assert.True(t, added.Contains("tt002"))
	assert.False(t, s.Contains("tt002"), "original set must not change")

	removed := added.Toggle("tt001")
	assert.Equal(t, []string{"tt002"}, removed.IDs())
}

func TestFavoritesSetToggleTwiceIsIdentity(t *testing.T) {
	sets := []FavoritesSet{
		{},
		NewFavoritesSet([]string{"tt001"}),
		NewFavoritesSet([]string{"tt001", "tt002", "tt003"}),
	}
	ids := []string{"tt001", "tt002", "tt999"}

	for _, s := range sets {
		for _, id := range ids {
			assert.ElementsMatch(t, s.IDs(), s.Toggle(id).Toggle(id).IDs(), "toggle(%s) twice on %v", id, s.IDs())
		}
	}
}

func TestFavoritesSetToggleEmptyID(t *testing.T) {
	s := NewFavoritesSet([]string{"tt001"})
	assert.Equal(t, s.IDs(), s.Toggle("").IDs())
}

func TestFavoritesSetIDsIsCopy(t *testing.T) {
	s := NewFavoritesSet([]string{"tt001"})
	ids := s.IDs()
	ids[0] = "mutated"
	assert.True(t, s.Contains("tt001"))
}

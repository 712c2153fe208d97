package domain

// FavoritesSet is an immutable, insertion-ordered set of movie identifiers.
// The zero value is an empty set.
type FavoritesSet struct {
	ids []string
}

// NewFavoritesSet builds a set from ids, dropping empties and duplicates
func NewFavoritesSet(ids []string) FavoritesSet {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return FavoritesSet{ids: out}
}

// Contains reports whether id is a favorite
func (s FavoritesSet) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle returns a new set with id removed if present, appended otherwise
func (s FavoritesSet) Toggle(id string) FavoritesSet {
	out := make([]string, 0, len(s.ids)+1)
	removed := false
	for _, v := range s.ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed && id != "" {
		out = append(out, id)
	}
	return FavoritesSet{ids: out}
}

// IDs returns a copy of the identifiers in insertion order
func (s FavoritesSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of favorites
func (s FavoritesSet) Len() int {
	return len(s.ids)
}

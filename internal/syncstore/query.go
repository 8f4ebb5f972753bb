package syncstore

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator orders strings the way a Spanish-speaking author expects their
// shelf sorted: case-insensitive, accent-aware ("Árbol" sorts with "Arbol",
// not after "Zorro"). collate.New is not safe for concurrent use, so each
// sort builds its own.
func collator() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase)
}

// Search returns records where any of the extracted fields contains the
// query, case-insensitively. A blank query matches everything.
func (s *Store[T]) Search(query string, fields func(*T) []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.All()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for i := range s.items {
		for _, field := range fields(&s.items[i]) {
			if strings.Contains(strings.ToLower(field), query) {
				out = append(out, s.items[i])
				break
			}
		}
	}
	return out
}

// Filter returns records for which keep reports true.
func (s *Store[T]) Filter(keep func(*T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for i := range s.items {
		if keep(&s.items[i]) {
			out = append(out, s.items[i])
		}
	}
	return out
}

// SortBy returns the collection ordered by the extracted key, using Spanish
// collation. Equal keys fall back to id order so the result is stable across
// calls.
func (s *Store[T]) SortBy(key func(*T) string, descending bool) []T {
	out := s.All()
	c := collator()

	sort.SliceStable(out, func(i, j int) bool {
		cmp := c.CompareString(key(&out[i]), key(&out[j]))
		if cmp == 0 {
			return s.cfg.ID(&out[i]) < s.cfg.ID(&out[j])
		}
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

package syncstore

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/cache"
)

func setupQueryStore(t *testing.T, records []testRecord) *Store[testRecord] {
	t.Helper()

	c, err := cache.Open(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	s := New(Config[testRecord]{
		Name:     "book",
		CacheKey: "libros",
		ID:       func(r *testRecord) int64 { return r.ID },
		SetID:    func(r *testRecord, id int64) { r.ID = id },
		Seed:     func() []testRecord { return records },
		Cache:    c,
		Logger:   slog.New(slog.DiscardHandler),
	})
	t.Cleanup(func() { _ = s.Close() })
	s.Load(context.Background())
	return s
}

func titleField(r *testRecord) []string { return []string{r.Title} }

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	s := setupQueryStore(t, []testRecord{
		{ID: 1, Title: "El Jardín de Medianoche"},
		{ID: 2, Title: "Cartas desde el Faro"},
		{ID: 3, Title: "Relatos del Andén"},
	})

	got := s.Search("FARO", titleField)
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)
}

func TestSearch_BlankQueryMatchesEverything(t *testing.T) {
	s := setupQueryStore(t, []testRecord{
		{ID: 1, Title: "Uno"},
		{ID: 2, Title: "Dos"},
	})

	require.Len(t, s.Search("", titleField), 2)
	require.Len(t, s.Search("   ", titleField), 2)
}

func TestSearch_NoMatches(t *testing.T) {
	s := setupQueryStore(t, []testRecord{{ID: 1, Title: "Uno"}})
	require.Empty(t, s.Search("zzz", titleField))
}

func TestFilter_KeepsMatchingRecords(t *testing.T) {
	s := setupQueryStore(t, []testRecord{
		{ID: 1, Title: "corto"},
		{ID: 2, Title: "bastante más largo"},
		{ID: 3, Title: "x"},
	})

	got := s.Filter(func(r *testRecord) bool { return len(r.Title) <= 5 })
	require.Len(t, got, 2)
}

func TestSortBy_SpanishCollation(t *testing.T) {
	s := setupQueryStore(t, []testRecord{
		{ID: 1, Title: "Zorro"},
		{ID: 2, Title: "árbol"},
		{ID: 3, Title: "casa"},
		{ID: 4, Title: "Ábaco"},
	})

	got := s.SortBy(func(r *testRecord) string { return r.Title }, false)

	// Accented initials sort with their base letter, not after 'z'.
	titles := []string{got[0].Title, got[1].Title, got[2].Title, got[3].Title}
	require.Equal(t, []string{"Ábaco", "árbol", "casa", "Zorro"}, titles)
}

func TestSortBy_DescendingAndStableTieBreak(t *testing.T) {
	s := setupQueryStore(t, []testRecord{
		{ID: 2, Title: "igual"},
		{ID: 1, Title: "igual"},
		{ID: 3, Title: "aaa"},
	})

	asc := s.SortBy(func(r *testRecord) string { return r.Title }, false)
	require.Equal(t, int64(3), asc[0].ID)
	// Ties break on ascending id regardless of direction.
	require.Equal(t, int64(1), asc[1].ID)
	require.Equal(t, int64(2), asc[2].ID)

	desc := s.SortBy(func(r *testRecord) string { return r.Title }, true)
	require.Equal(t, int64(3), desc[2].ID)
	require.Equal(t, int64(1), desc[0].ID)
}

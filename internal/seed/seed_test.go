package seed_test

import (
	"testing"

	"github.com/inkwellapp/inkwell-server/internal/seed"
	"github.com/stretchr/testify/require"
)

func TestBooks_Deterministic(t *testing.T) {
	first := seed.Books()
	second := seed.Books()

	require.Len(t, first, 4)
	require.Equal(t, first, second)
}

func TestBooks_CallersCannotPoisonLaterLoads(t *testing.T) {
	books := seed.Books()
	books[0].Title = "mutated"
	books[0].CollectionIDs[0] = 999
	books[0].Paperback.Links["amazon"] = "mutated"

	fresh := seed.Books()
	require.Equal(t, "El Jardín de Medianoche", fresh[0].Title)
	require.Equal(t, int64(1), fresh[0].CollectionIDs[0])
	require.Equal(t, "https://www.amazon.es/dp/8412345611", fresh[0].Paperback.Links["amazon"])
}

func TestCollections_CountMatchesMembers(t *testing.T) {
	for _, c := range seed.Collections() {
		require.Equal(t, len(c.BookIDs), c.BookCount, "collection %d", c.ID)
	}
}

func TestInvestigations_ReferenceSeedBooks(t *testing.T) {
	bookTitles := map[int64]string{}
	for _, b := range seed.Books() {
		bookTitles[b.ID] = b.Title
	}

	for _, inv := range seed.Investigations() {
		require.Contains(t, bookTitles, inv.BookID, "investigation %d", inv.ID)
		require.Equal(t, bookTitles[inv.BookID], inv.BookTitle, "investigation %d", inv.ID)
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := map[int64]bool{}
	for _, b := range seed.Books() {
		require.False(t, seen[b.ID])
		seen[b.ID] = true
	}
}

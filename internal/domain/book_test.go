package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHydrateBook_Defaults(t *testing.T) {
	b := &Book{ID: 1, Title: "Sin Red"}
	HydrateBook(b)

	require.Equal(t, StatusDraft, b.Status)
	require.NotNil(t, b.Notes)
	require.NotNil(t, b.CollectionIDs)
}

func TestHydrateBook_FormatDefaults(t *testing.T) {
	b := &Book{
		ID:    2,
		Title: "Mareas",
		Ebook: &Format{Price: 9.99, Royalty: 0.7},
	}
	HydrateBook(b)

	require.NotNil(t, b.Ebook.Files)
	require.NotNil(t, b.Ebook.Links)
	// Untouched formats stay nil; hydrate never invents editions.
	require.Nil(t, b.Hardcover)
	require.Nil(t, b.Paperback)
}

func TestHydrateBook_Idempotent(t *testing.T) {
	b := &Book{ID: 3, Title: "Cumbre", Status: StatusPublished, Notes: []Note{{ID: "n-1", Text: "hola"}}}
	HydrateBook(b)
	require.Equal(t, StatusPublished, b.Status)
	require.Len(t, b.Notes, 1)

	HydrateBook(b)
	require.Len(t, b.Notes, 1)
}

func TestFormat_NetRoyalty(t *testing.T) {
	f := &Format{Price: 19.99, Royalty: 0.6, PrintingCost: 4.85}
	require.InDelta(t, 19.99*0.6-4.85, f.NetRoyalty(), 1e-9)
}

func TestBook_BestEarningFormat(t *testing.T) {
	b := &Book{
		Hardcover: &Format{Price: 24.99, Royalty: 0.6, PrintingCost: 8.50},
		Paperback: &Format{Price: 14.99, Royalty: 0.6, PrintingCost: 3.95},
		Ebook:     &Format{Price: 9.99, Royalty: 0.7},
	}
	// Ebook: 6.99, hardcover: 6.49, paperback: 5.04.
	require.Equal(t, "ebook", b.BestEarningFormat())

	none := &Book{}
	require.Equal(t, "", none.BestEarningFormat())
}

func TestBook_CollectionRefs(t *testing.T) {
	b := &Book{ID: 1, CollectionIDs: []int64{}}

	require.True(t, b.AddCollection(4))
	require.False(t, b.AddCollection(4))
	require.True(t, b.InCollection(4))

	require.True(t, b.RemoveCollection(4))
	require.False(t, b.RemoveCollection(4))
	require.False(t, b.InCollection(4))
}

package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/cache"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/seed"
	"github.com/inkwellapp/inkwell-server/internal/syncstore"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// fixture wires the three stores over one cache with no remote backend, the
// same shape the daemon runs in when the backend is unreachable.
type fixture struct {
	books          *syncstore.Store[domain.Book]
	collections    *syncstore.Store[domain.Collection]
	investigations *syncstore.Store[domain.Investigation]

	bookSvc *BookService
	colSvc  *CollectionService
	invSvc  *InvestigationService
}

func setup(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	c, err := cache.Open(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	f := &fixture{}
	f.books = syncstore.New(syncstore.Config[domain.Book]{
		Name:     "book",
		CacheKey: "libros",
		ID:       func(b *domain.Book) int64 { return b.ID },
		SetID:    func(b *domain.Book, id int64) { b.ID = id },
		Hydrate:  domain.HydrateBook,
		Seed:     seed.Books,
		Cache:    c,
		Logger:   logger,
	})
	f.collections = syncstore.New(syncstore.Config[domain.Collection]{
		Name:     "collection",
		CacheKey: "colecciones",
		ID:       func(col *domain.Collection) int64 { return col.ID },
		SetID:    func(col *domain.Collection, id int64) { col.ID = id },
		Hydrate:  domain.HydrateCollection,
		Finalize: domain.FinalizeCollection,
		Seed:     seed.Collections,
		Cache:    c,
		Logger:   logger,
	})
	f.investigations = syncstore.New(syncstore.Config[domain.Investigation]{
		Name:     "investigation",
		CacheKey: "investigaciones",
		ID:       func(i *domain.Investigation) int64 { return i.ID },
		SetID:    func(i *domain.Investigation, id int64) { i.ID = id },
		Hydrate:  domain.HydrateInvestigation,
		Seed:     seed.Investigations,
		Cache:    c,
		Logger:   logger,
	})

	for _, load := range []func(context.Context) syncstore.Source{
		f.books.Load, f.collections.Load, f.investigations.Load,
	} {
		require.Equal(t, syncstore.SourceSeed, load(context.Background()))
	}
	t.Cleanup(func() {
		_ = f.books.Close()
		_ = f.collections.Close()
		_ = f.investigations.Close()
	})

	v := validation.New()
	f.bookSvc = NewBookService(f.books, f.collections, f.investigations, v, logger)
	f.colSvc = NewCollectionService(f.collections, f.books, v, logger)
	f.invSvc = NewInvestigationService(f.investigations, f.books, v, logger)
	return f
}

// requireCountInvariant asserts the denormalized count on every collection.
func requireCountInvariant(t *testing.T, f *fixture) {
	t.Helper()
	for _, col := range f.collections.All() {
		require.Len(t, col.BookIDs, col.BookCount,
			"collection %d count drifted", col.ID)
	}
}

package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/config"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/logger"
	"github.com/inkwellapp/inkwell-server/internal/remote"
	"github.com/inkwellapp/inkwell-server/internal/seed"
	"github.com/inkwellapp/inkwell-server/internal/syncstore"
)

// Cache keys, one whole collection per key. These match the wire paths the
// sync backend serves.
const (
	booksKey          = "libros"
	collectionsKey    = "colecciones"
	investigationsKey = "investigaciones"
)

// RemoteGateway holds the shared HTTP client for the sync backend. Client is
// nil when no backend is configured and every store runs cache/seed only.
type RemoteGateway struct {
	Client *remote.Client
}

// ProvideRemoteGateway provides the sync backend client.
func ProvideRemoteGateway(i do.Injector) (*RemoteGateway, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Remote.BaseURL == "" {
		log.Info("No sync backend configured, running from cache and seed only")
		return &RemoteGateway{}, nil
	}

	client := remote.NewClient(remote.Config{
		BaseURL: cfg.Remote.BaseURL,
		Token:   cfg.Remote.Token,
		Timeout: cfg.Remote.Timeout,
	}, log.Logger)

	log.Info("Sync backend configured", "base_url", cfg.Remote.BaseURL)

	return &RemoteGateway{Client: client}, nil
}

// BookStore wraps the book syncstore with shutdown capability.
type BookStore struct {
	*syncstore.Store[domain.Book]
}

// Shutdown implements do.Shutdownable. It drains in-flight mirror calls.
func (h *BookStore) Shutdown() error {
	return h.Close()
}

// CollectionStore wraps the collection syncstore with shutdown capability.
type CollectionStore struct {
	*syncstore.Store[domain.Collection]
}

// Shutdown implements do.Shutdownable.
func (h *CollectionStore) Shutdown() error {
	return h.Close()
}

// InvestigationStore wraps the investigation syncstore with shutdown capability.
type InvestigationStore struct {
	*syncstore.Store[domain.Investigation]
}

// Shutdown implements do.Shutdownable.
func (h *InvestigationStore) Shutdown() error {
	return h.Close()
}

// ProvideBookStore provides the loaded book store.
func ProvideBookStore(i do.Injector) (*BookStore, error) {
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	gateway := do.MustInvoke[*RemoteGateway](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var backend syncstore.Remote[domain.Book]
	if gateway.Client != nil {
		backend = remote.NewResource[domain.Book](gateway.Client, booksKey)
	}

	store := syncstore.New(syncstore.Config[domain.Book]{
		Name:     "book",
		CacheKey: booksKey,
		ID:       func(b *domain.Book) int64 { return b.ID },
		SetID:    func(b *domain.Book, id int64) { b.ID = id },
		Hydrate:  domain.HydrateBook,
		Seed:     seed.Books,
		Cache:    cacheHandle.Cache,
		Remote:   backend,
		Emitter:  sseHandle.Manager,
		Logger:   log.Logger,
	})

	source := store.Load(context.Background())
	log.Info("Book store loaded", "source", source)

	return &BookStore{Store: store}, nil
}

// ProvideCollectionStore provides the loaded collection store.
func ProvideCollectionStore(i do.Injector) (*CollectionStore, error) {
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	gateway := do.MustInvoke[*RemoteGateway](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var backend syncstore.Remote[domain.Collection]
	if gateway.Client != nil {
		backend = remote.NewResource[domain.Collection](gateway.Client, collectionsKey)
	}

	store := syncstore.New(syncstore.Config[domain.Collection]{
		Name:     "collection",
		CacheKey: collectionsKey,
		ID:       func(c *domain.Collection) int64 { return c.ID },
		SetID:    func(c *domain.Collection, id int64) { c.ID = id },
		Hydrate:  domain.HydrateCollection,
		Finalize: domain.FinalizeCollection,
		Seed:     seed.Collections,
		Cache:    cacheHandle.Cache,
		Remote:   backend,
		Emitter:  sseHandle.Manager,
		Logger:   log.Logger,
	})

	source := store.Load(context.Background())
	log.Info("Collection store loaded", "source", source)

	return &CollectionStore{Store: store}, nil
}

// ProvideInvestigationStore provides the loaded investigation store.
func ProvideInvestigationStore(i do.Injector) (*InvestigationStore, error) {
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	gateway := do.MustInvoke[*RemoteGateway](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var backend syncstore.Remote[domain.Investigation]
	if gateway.Client != nil {
		backend = remote.NewResource[domain.Investigation](gateway.Client, investigationsKey)
	}

	store := syncstore.New(syncstore.Config[domain.Investigation]{
		Name:     "investigation",
		CacheKey: investigationsKey,
		ID:       func(inv *domain.Investigation) int64 { return inv.ID },
		SetID:    func(inv *domain.Investigation, id int64) { inv.ID = id },
		Hydrate:  domain.HydrateInvestigation,
		Seed:     seed.Investigations,
		Cache:    cacheHandle.Cache,
		Remote:   backend,
		Emitter:  sseHandle.Manager,
		Logger:   log.Logger,
	})

	source := store.Load(context.Background())
	log.Info("Investigation store loaded", "source", source)

	return &InvestigationStore{Store: store}, nil
}

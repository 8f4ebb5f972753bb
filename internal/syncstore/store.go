// Package syncstore implements the synchronized entity store: one generic
// controller per entity type that resolves the remote backend, the durable
// local cache, and the built-in seed dataset into a single published
// collection, and mirrors every local mutation outward.
//
// The policy throughout is "local is truth, remote is a mirror": mutations
// publish and persist locally before any network I/O, and a failed mirror
// call never rolls anything back.
package syncstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwellapp/inkwell-server/internal/cache"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/sse"
)

// retryDelay is the fixed pause before a user-requested retry re-adopts the
// seed tier. Long enough to debounce a mashed retry button, short enough to
// feel immediate.
const retryDelay = 500 * time.Millisecond

// Source identifies which tier the published collection was adopted from.
type Source string

// Sources, in priority order.
const (
	SourceNone   Source = ""
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	SourceSeed   Source = "seed"
)

// Remote is the capability the store needs from the remote backend gateway.
// Every method may fail or come back empty; the store treats both the same.
type Remote[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record T) (*T, error)
	Update(ctx context.Context, id int64, record T) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// EventEmitter is the interface for broadcasting store changes.
// The store uses this to notify the dashboard without depending on SSE
// implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// Config wires one store instance. Name, CacheKey, ID, SetID, Seed and Cache
// are required; the rest degrade gracefully when absent.
type Config[T any] struct {
	// Name is the entity name used in logs and event types, e.g. "book".
	Name string
	// CacheKey is the fixed local-cache key holding the whole collection.
	CacheKey string

	ID    func(*T) int64
	SetID func(*T, int64)

	// Hydrate applies the entity's default-value table. Run once per record
	// at load time, whichever tier the record came from. May be nil.
	Hydrate func(*T)
	// Finalize recomputes derived fields (e.g. a collection's book count)
	// after every mutation. May be nil.
	Finalize func(*T)

	// Seed returns the built-in fallback dataset. Must be pure.
	Seed func() []T

	Cache   *cache.Cache
	Remote  Remote[T]
	Emitter EventEmitter
	Logger  *slog.Logger
}

// Store keeps the reactive in-memory collection for one entity type.
type Store[T any] struct {
	cfg Config[T]

	mu     sync.RWMutex
	items  []T
	source Source

	// mirrors tracks in-flight fire-and-forget remote calls so Close can
	// drain them on shutdown. The calls themselves are never awaited by
	// the mutation path.
	mirrors sync.WaitGroup
}

// New creates a store. Call Load before serving reads.
func New[T any](cfg Config[T]) *Store[T] {
	if cfg.Emitter == nil {
		cfg.Emitter = NoopEmitter{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Store[T]{cfg: cfg}
}

// Load resolves the published collection: remote first, then the local
// cache, then the seed dataset. Exactly one tier wins. Remote failures are
// caught here and downgrade the source; they never propagate.
func (s *Store[T]) Load(ctx context.Context) Source {
	items, source := s.resolve(ctx)

	s.mu.Lock()
	s.items = items
	s.source = source
	s.mu.Unlock()

	s.cfg.Logger.Info("store loaded",
		"entity", s.cfg.Name,
		"source", string(source),
		"records", len(items),
	)

	s.cfg.Emitter.Emit(sse.NewEvent(sse.EventStoreLoaded, sse.StoreStateData{
		Entity: s.cfg.Name,
		Source: string(source),
	}))
	if source != SourceRemote {
		s.cfg.Emitter.Emit(sse.NewEvent(sse.EventStoreDegraded, sse.StoreStateData{
			Entity: s.cfg.Name,
			Source: string(source),
		}))
	}

	return source
}

// resolve walks the tier chain and mirrors the winner into the cache where
// the contract requires it (remote wins overwrite the cache; seed wins are
// written back so the cache tier succeeds on the next load). Records are
// hydrated before any cache write so the cache always holds exactly what
// gets published.
func (s *Store[T]) resolve(ctx context.Context) ([]T, Source) {
	if s.cfg.Remote != nil {
		remoteItems, err := s.cfg.Remote.GetAll(ctx)
		switch {
		case err != nil:
			s.cfg.Logger.Warn("remote fetch failed, falling back",
				"entity", s.cfg.Name, "error", err)
		case len(remoteItems) == 0:
			s.cfg.Logger.Info("remote returned no records, falling back",
				"entity", s.cfg.Name)
		default:
			// Remote is more authoritative than any local snapshot: full
			// overwrite, even though that can discard local-only edits.
			s.hydrateAll(remoteItems)
			if err := s.cfg.Cache.Save(s.cfg.CacheKey, remoteItems); err != nil {
				s.cfg.Logger.Error("failed to mirror remote data into cache",
					"entity", s.cfg.Name, "error", err)
			}
			return remoteItems, SourceRemote
		}
	}

	var cached []T
	err := s.cfg.Cache.Load(s.cfg.CacheKey, &cached)
	if err == nil && len(cached) > 0 {
		s.hydrateAll(cached)
		return cached, SourceCache
	}
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		s.cfg.Logger.Warn("unexpected cache error, falling back to seed",
			"entity", s.cfg.Name, "error", err)
	}

	seeded := s.cfg.Seed()
	s.hydrateAll(seeded)
	if err := s.cfg.Cache.Save(s.cfg.CacheKey, seeded); err != nil {
		s.cfg.Logger.Error("failed to write seed data into cache",
			"entity", s.cfg.Name, "error", err)
	}
	return seeded, SourceSeed
}

// hydrateAll applies the entity default table to every record in place.
func (s *Store[T]) hydrateAll(items []T) {
	if s.cfg.Hydrate == nil {
		return
	}
	for i := range items {
		s.cfg.Hydrate(&items[i])
	}
}

// Retry re-adopts the seed tier after a fixed short delay, bypassing the
// remote entirely. It is the explicit user action behind the error panel's
// retry button and guarantees progress even under persistent backend failure.
func (s *Store[T]) Retry(ctx context.Context) Source {
	select {
	case <-time.After(retryDelay):
	case <-ctx.Done():
		return s.Source()
	}

	seeded := s.cfg.Seed()
	s.hydrateAll(seeded)

	s.mu.Lock()
	s.items = seeded
	s.source = SourceSeed
	persistErr := s.cfg.Cache.Save(s.cfg.CacheKey, seeded)
	s.mu.Unlock()

	if persistErr != nil {
		s.cfg.Logger.Error("failed to persist seed data on retry",
			"entity", s.cfg.Name, "error", persistErr)
	}

	s.cfg.Logger.Info("store reloaded from seed on retry", "entity", s.cfg.Name)
	s.cfg.Emitter.Emit(sse.NewEvent(sse.EventStoreLoaded, sse.StoreStateData{
		Entity: s.cfg.Name,
		Source: string(SourceSeed),
	}))
	return SourceSeed
}

// Source reports which tier the published collection came from.
func (s *Store[T]) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Degraded reports whether the store is serving fallback data.
func (s *Store[T]) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source != SourceRemote
}

// All returns a copy of the published collection.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of published records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.cfg.ID(&s.items[i]) == id {
			return s.items[i], nil
		}
	}
	var zero T
	return zero, domainerrors.NotFoundf("%s %d not found", s.cfg.Name, id)
}

// Create assigns the next sequential id, publishes the record, persists the
// whole collection, and mirrors the create to the remote in the background.
// The returned record carries the assigned id.
//
// Only a failed local persist makes Create fail, and even then the
// optimistic in-memory state is deliberately left in place.
func (s *Store[T]) Create(ctx context.Context, record T) (T, error) {
	s.mu.Lock()

	nextID := int64(1)
	for i := range s.items {
		if id := s.cfg.ID(&s.items[i]); id >= nextID {
			nextID = id + 1
		}
	}
	s.cfg.SetID(&record, nextID)
	if s.cfg.Hydrate != nil {
		s.cfg.Hydrate(&record)
	}
	if s.cfg.Finalize != nil {
		s.cfg.Finalize(&record)
	}

	s.items = append(s.items, record)
	persistErr := s.persistLocked()
	s.mu.Unlock()

	if persistErr != nil {
		return record, persistErr
	}

	s.cfg.Emitter.Emit(sse.NewEvent(sse.EventType(s.cfg.Name+".created"), record))
	s.mirror(ctx, "create", nextID, func(ctx context.Context) error {
		_, err := s.cfg.Remote.Create(ctx, record)
		return err
	})
	return record, nil
}

// Update replaces the record matching the given record's id.
func (s *Store[T]) Update(ctx context.Context, record T) (T, error) {
	id := s.cfg.ID(&record)

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.cfg.ID(&s.items[i]) == id {
			if s.cfg.Finalize != nil {
				s.cfg.Finalize(&record)
			}
			s.items[i] = record
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		var zero T
		return zero, domainerrors.NotFoundf("%s %d not found", s.cfg.Name, id)
	}
	persistErr := s.persistLocked()
	s.mu.Unlock()

	if persistErr != nil {
		return record, persistErr
	}

	s.cfg.Emitter.Emit(sse.NewEvent(sse.EventType(s.cfg.Name+".updated"), record))
	s.mirror(ctx, "update", id, func(ctx context.Context) error {
		_, err := s.cfg.Remote.Update(ctx, id, record)
		return err
	})
	return record, nil
}

// Delete filters the record out of the published collection. Deleting an id
// that is not present is a no-op success.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.cfg.ID(&s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil
	}
	persistErr := s.persistLocked()
	s.mu.Unlock()

	if persistErr != nil {
		return persistErr
	}

	s.cfg.Emitter.Emit(sse.NewEvent(sse.EventType(s.cfg.Name+".deleted"), map[string]int64{"id": id}))
	s.mirror(ctx, "delete", id, func(ctx context.Context) error {
		_, err := s.cfg.Remote.Delete(ctx, id)
		return err
	})
	return nil
}

// persistLocked writes the whole collection to the cache. Caller holds mu,
// which keeps cache writes in publication order.
func (s *Store[T]) persistLocked() error {
	if err := s.cfg.Cache.Save(s.cfg.CacheKey, s.items); err != nil {
		s.cfg.Logger.Error("local persist failed, optimistic state kept",
			"entity", s.cfg.Name, "error", err)
		return domainerrors.Wrapf(err, domainerrors.CodePersistFailed,
			"failed to save %s collection", s.cfg.Name)
	}
	return nil
}

// mirror fires a best-effort remote call in the background. The result never
// reaches the mutation's caller: success and failure are both just log lines,
// tied together by a correlation id.
func (s *Store[T]) mirror(ctx context.Context, op string, id int64, call func(ctx context.Context) error) {
	if s.cfg.Remote == nil {
		return
	}

	opID := uuid.NewString()
	// Detach from the request context: in-flight mirror calls are never
	// cancelled, only ignored.
	mirrorCtx := context.WithoutCancel(ctx)

	s.mirrors.Add(1)
	go func() {
		defer s.mirrors.Done()

		if err := call(mirrorCtx); err != nil {
			s.cfg.Logger.Warn("remote mirror failed",
				"entity", s.cfg.Name, "op", op, "id", id, "op_id", opID, "error", err)
			return
		}
		s.cfg.Logger.Debug("remote mirror ok",
			"entity", s.cfg.Name, "op", op, "id", id, "op_id", opID)
	}()
}

// Close drains in-flight mirror calls. The published collection and cache
// are already consistent; this only exists so shutdown does not abandon
// remote writes mid-request.
func (s *Store[T]) Close() error {
	s.mirrors.Wait()
	return nil
}

// String describes the store for debug output.
func (s *Store[T]) String() string {
	return fmt.Sprintf("syncstore[%s]", s.cfg.Name)
}

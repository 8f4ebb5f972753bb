package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCacheStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/cache",
		Summary:     "Get local cache statistics",
		Description: "Reports key count and on-disk sizes of the durable local cache",
		Tags:        []string{"Admin"},
	}, s.handleGetCacheStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStoreStates",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/stores",
		Summary:     "Get per-store data source state",
		Description: "Reports which tier each entity store adopted and whether it is degraded",
		Tags:        []string{"Admin"},
	}, s.handleGetStoreStates)

	huma.Register(s.api, huma.Operation{
		OperationID: "reseedStores",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reseed",
		Summary:     "Reset every store to the built-in dataset",
		Description: "Re-adopts the seed tier for all stores, overwriting local state",
		Tags:        []string{"Admin"},
	}, s.handleReseedStores)
}

// === DTOs ===

// CacheStatsResponse is the API response for cache statistics.
type CacheStatsResponse struct {
	Keys     int   `json:"keys" doc:"Number of keys in the cache"`
	LSMBytes int64 `json:"lsm_bytes" doc:"On-disk size of the LSM tree"`
	VLogSize int64 `json:"vlog_bytes" doc:"On-disk size of the value log"`
}

// GetCacheStatsOutput is the Huma output wrapper for cache statistics.
type GetCacheStatsOutput struct {
	Body CacheStatsResponse
}

// StoreState describes one entity store's data source.
type StoreState struct {
	Source   string `json:"source" doc:"Tier the store adopted: remote, cache or seed"`
	Degraded bool   `json:"degraded" doc:"True when the store is serving fallback data"`
	Records  int    `json:"records" doc:"Number of published records"`
}

// StoreStatesResponse maps entity names to their store state.
type StoreStatesResponse struct {
	Books          StoreState `json:"books"`
	Collections    StoreState `json:"collections"`
	Investigations StoreState `json:"investigations"`
}

// GetStoreStatesOutput is the Huma output wrapper for store states.
type GetStoreStatesOutput struct {
	Body StoreStatesResponse
}

// ReseedOutput is the Huma output wrapper for the reseed operation.
type ReseedOutput struct {
	Body StoreStatesResponse
}

// === Handlers ===

func (s *Server) handleGetCacheStats(_ context.Context, _ *struct{}) (*GetCacheStatsOutput, error) {
	stats, err := s.cache.CollectStats()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to collect cache stats")
	}
	return &GetCacheStatsOutput{Body: CacheStatsResponse(stats)}, nil
}

func (s *Server) storeStates() StoreStatesResponse {
	return StoreStatesResponse{
		Books: StoreState{
			Source:   string(s.books.Source()),
			Degraded: s.books.Degraded(),
			Records:  s.books.Len(),
		},
		Collections: StoreState{
			Source:   string(s.collections.Source()),
			Degraded: s.collections.Degraded(),
			Records:  s.collections.Len(),
		},
		Investigations: StoreState{
			Source:   string(s.investigations.Source()),
			Degraded: s.investigations.Degraded(),
			Records:  s.investigations.Len(),
		},
	}
}

func (s *Server) handleGetStoreStates(_ context.Context, _ *struct{}) (*GetStoreStatesOutput, error) {
	return &GetStoreStatesOutput{Body: s.storeStates()}, nil
}

func (s *Server) handleReseedStores(ctx context.Context, _ *struct{}) (*ReseedOutput, error) {
	s.books.Retry(ctx)
	s.collections.Retry(ctx)
	s.investigations.Retry(ctx)
	return &ReseedOutput{Body: s.storeStates()}, nil
}

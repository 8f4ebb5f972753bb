// Package prefs stores small per-screen UI preferences, currently just the
// grid/list view mode. Preferences are durable across restarts but never
// synchronized to the remote backend.
package prefs

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/inkwellapp/inkwell-server/internal/cache"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

const cacheKey = "preferencias"

// ViewMode is how a screen lays out its records.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// DefaultView is what every screen starts with and what an unreadable stored
// value falls back to.
const DefaultView = ViewGrid

func validView(v ViewMode) bool {
	return v == ViewGrid || v == ViewList
}

// Store keeps view preferences keyed by screen name.
type Store struct {
	cache  *cache.Cache
	logger *slog.Logger

	mu    sync.RWMutex
	views map[string]ViewMode
}

// NewStore loads persisted preferences, falling back to an empty set when
// nothing usable is stored.
func NewStore(c *cache.Cache, logger *slog.Logger) *Store {
	views := make(map[string]ViewMode)
	if err := c.Load(cacheKey, &views); err != nil && !errors.Is(err, cache.ErrNotFound) {
		logger.Warn("failed to load view preferences, starting fresh", "error", err)
	}

	// Scrub anything hand-edited or written by an older build.
	for screen, view := range views {
		if !validView(view) {
			logger.Warn("discarding invalid view preference", "screen", screen, "value", string(view))
			delete(views, screen)
		}
	}

	return &Store{cache: c, logger: logger, views: views}
}

// View returns the preferred mode for a screen, defaulting to grid.
func (s *Store) View(screen string) ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if view, ok := s.views[screen]; ok {
		return view
	}
	return DefaultView
}

// SetView records and persists a screen's view mode.
func (s *Store) SetView(screen string, view ViewMode) error {
	if !validView(view) {
		return domainerrors.Validationf("invalid view mode %q", string(view))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.views[screen] = view
	if err := s.cache.Save(cacheKey, s.views); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodePersistFailed, "failed to save view preferences")
	}
	return nil
}

// All returns a copy of every stored preference.
func (s *Store) All() map[string]ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]ViewMode, len(s.views))
	for screen, view := range s.views {
		out[screen] = view
	}
	return out
}

// Package draft implements the optimistic edit session used by the
// dashboard's edit dialogs: a scratch copy of one record that absorbs field
// changes and only touches the store on commit.
package draft

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"sync"

	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/syncstore"
)

// State is the session's lifecycle phase.
type State string

const (
	StateIdle    State = "idle"
	StateEditing State = "editing"
)

// Session holds at most one draft at a time. Begin snapshots a record,
// Apply layers partial changes over the snapshot, and Commit pushes the
// merged result through the store's normal update path. Cancel throws the
// draft away without side effects.
type Session[T any] struct {
	store  *syncstore.Store[T]
	logger *slog.Logger

	mu    sync.Mutex
	state State
	draft map[string]any
}

// NewSession creates an idle session bound to one store.
func NewSession[T any](store *syncstore.Store[T], logger *slog.Logger) *Session[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session[T]{store: store, logger: logger, state: StateIdle}
}

// State returns the current lifecycle phase.
func (s *Session[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns the current merged draft, decoded into the record type.
func (s *Session[T]) Draft() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var record T
	if s.state != StateEditing {
		return record, domainerrors.Validation("no draft in progress")
	}
	if err := s.decodeDraftLocked(&record); err != nil {
		return record, err
	}
	return record, nil
}

// Begin starts a draft from the record with the given id. Beginning while a
// draft is already open discards the old draft; the dashboard only shows one
// edit dialog at a time, so the stale draft is abandoned, not merged.
func (s *Session[T]) Begin(id int64) error {
	record, err := s.store.Get(id)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to snapshot record for editing")
	}
	var snapshot map[string]any
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to snapshot record for editing")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEditing {
		s.logger.Warn("draft replaced by new edit session", "id", id)
	}
	s.state = StateEditing
	s.draft = snapshot
	return nil
}

// Apply shallow-merges a partial change set into the draft: top-level keys
// are replaced wholesale, untouched keys keep their snapshot values. Applying
// while idle is a logged no-op, not an error, since a slow dialog can still
// emit changes after its session ended.
func (s *Session[T]) Apply(patch map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEditing {
		s.logger.Warn("change applied with no draft in progress, ignoring")
		return
	}
	for key, value := range patch {
		s.draft[key] = value
	}
}

// Commit decodes the merged draft and pushes it through the store's update
// path, then returns the session to idle. Remote mirror failures do not fail
// the commit; only a local persist failure does.
func (s *Session[T]) Commit(ctx context.Context) (T, error) {
	s.mu.Lock()

	var record T
	if s.state != StateEditing {
		s.mu.Unlock()
		return record, domainerrors.Validation("no draft in progress")
	}
	if err := s.decodeDraftLocked(&record); err != nil {
		s.mu.Unlock()
		return record, err
	}
	s.state = StateIdle
	s.draft = nil
	s.mu.Unlock()

	return s.store.Update(ctx, record)
}

// Cancel discards the draft. Idempotent.
func (s *Session[T]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.draft = nil
}

func (s *Session[T]) decodeDraftLocked(dest *T) error {
	raw, err := json.Marshal(s.draft)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to encode draft")
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "draft does not decode into the record type")
	}
	return nil
}

package prefs

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/cache"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

func setupCache(t *testing.T) *cache.Cache {
	t.Helper()

	c, err := cache.Open(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestStore_DefaultsToGrid(t *testing.T) {
	s := NewStore(setupCache(t), slog.New(slog.DiscardHandler))
	require.Equal(t, ViewGrid, s.View("books"))
}

func TestStore_SetAndGet(t *testing.T) {
	s := NewStore(setupCache(t), slog.New(slog.DiscardHandler))

	require.NoError(t, s.SetView("books", ViewList))
	require.Equal(t, ViewList, s.View("books"))
	// Other screens are unaffected.
	require.Equal(t, ViewGrid, s.View("collections"))
}

func TestStore_RejectsInvalidMode(t *testing.T) {
	s := NewStore(setupCache(t), slog.New(slog.DiscardHandler))

	err := s.SetView("books", ViewMode("mosaic"))
	require.True(t, domainerrors.IsValidation(err))
	require.Equal(t, ViewGrid, s.View("books"))
}

func TestStore_SurvivesRestart(t *testing.T) {
	c := setupCache(t)

	s := NewStore(c, slog.New(slog.DiscardHandler))
	require.NoError(t, s.SetView("investigations", ViewList))

	reopened := NewStore(c, slog.New(slog.DiscardHandler))
	require.Equal(t, ViewList, reopened.View("investigations"))
}

func TestStore_InvalidStoredValueFallsBackToDefault(t *testing.T) {
	c := setupCache(t)
	require.NoError(t, c.Save("preferencias", map[string]string{"books": "mosaic"}))

	s := NewStore(c, slog.New(slog.DiscardHandler))
	require.Equal(t, ViewGrid, s.View("books"))
}

func TestStore_CorruptPayloadStartsFresh(t *testing.T) {
	c := setupCache(t)
	require.NoError(t, c.SaveRaw("preferencias", []byte(`[not an object`)))

	s := NewStore(c, slog.New(slog.DiscardHandler))
	require.Equal(t, ViewGrid, s.View("books"))
	require.NoError(t, s.SetView("books", ViewList))
}

package cache_test

import (
	"testing"

	"github.com/inkwellapp/inkwell-server/internal/cache"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func setupCache(t *testing.T) *cache.Cache {
	t.Helper()

	c, err := cache.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestCache_SaveLoad_RoundTrip(t *testing.T) {
	c := setupCache(t)

	in := []testRecord{{ID: 1, Name: "uno"}, {ID: 2, Name: "dos"}}
	require.NoError(t, c.Save("records", in))

	var out []testRecord
	require.NoError(t, c.Load("records", &out))
	require.Equal(t, in, out)
}

func TestCache_Load_MissingKey(t *testing.T) {
	c := setupCache(t)

	var out []testRecord
	err := c.Load("nope", &out)
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestCache_Load_CorruptValue(t *testing.T) {
	c := setupCache(t)

	require.NoError(t, c.SaveRaw("records", []byte("{not json")))

	// Unreadable values look exactly like missing ones.
	var out []testRecord
	err := c.Load("records", &out)
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestCache_Load_TypeMismatchIsCorruption(t *testing.T) {
	c := setupCache(t)

	require.NoError(t, c.Save("records", "just a string"))

	var out []testRecord
	err := c.Load("records", &out)
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestCache_Save_WholeValueReplace(t *testing.T) {
	c := setupCache(t)

	require.NoError(t, c.Save("records", []testRecord{{ID: 1, Name: "uno"}, {ID: 2, Name: "dos"}}))
	require.NoError(t, c.Save("records", []testRecord{{ID: 3, Name: "tres"}}))

	var out []testRecord
	require.NoError(t, c.Load("records", &out))
	require.Equal(t, []testRecord{{ID: 3, Name: "tres"}}, out)
}

func TestCache_Delete_Idempotent(t *testing.T) {
	c := setupCache(t)

	require.NoError(t, c.Save("records", []testRecord{{ID: 1}}))
	require.NoError(t, c.Delete("records"))
	require.NoError(t, c.Delete("records"))

	var out []testRecord
	require.ErrorIs(t, c.Load("records", &out), cache.ErrNotFound)
}

func TestCache_CollectStats(t *testing.T) {
	c := setupCache(t)

	require.NoError(t, c.Save("a", 1))
	require.NoError(t, c.Save("b", 2))

	stats, err := c.CollectStats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.Keys)
}

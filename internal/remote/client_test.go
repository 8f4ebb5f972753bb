package remote_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwellapp/inkwell-server/internal/remote"
	"github.com/stretchr/testify/require"
)

type testBook struct {
	ID    int64  `json:"id"`
	Title string `json:"titulo"`
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newClient(serverURL string) *remote.Client {
	return remote.NewClient(remote.Config{BaseURL: serverURL}, discard())
}

func TestGetAll_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/libros", r.URL.Path)
		w.Write([]byte(`[{"id":1,"titulo":"uno"},{"id":2,"titulo":"dos"}]`))
	}))
	defer srv.Close()

	res := remote.NewResource[testBook](newClient(srv.URL), "libros")
	books, err := res.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	require.Equal(t, "uno", books[0].Title)
}

func TestGetAll_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	res := remote.NewResource[testBook](newClient(srv.URL), "libros")
	_, err := res.GetAll(context.Background())
	require.ErrorIs(t, err, remote.ErrUnavailable)
}

func TestGetAll_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // shut down before use

	res := remote.NewResource[testBook](newClient(srv.URL), "libros")
	_, err := res.GetAll(context.Background())
	require.ErrorIs(t, err, remote.ErrUnavailable)
}

func TestGetAll_GarbageBodyIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>so sorry</html>"))
	}))
	defer srv.Close()

	res := remote.NewResource[testBook](newClient(srv.URL), "libros")
	_, err := res.GetAll(context.Background())
	require.ErrorIs(t, err, remote.ErrUnavailable)
}

func TestCreate_EchoesRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id":7,"titulo":"nuevo"}`))
	}))
	defer srv.Close()

	res := remote.NewResource[testBook](newClient(srv.URL), "libros")
	created, err := res.Create(context.Background(), testBook{ID: 7, Title: "nuevo"})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, int64(7), created.ID)
}

func TestCreate_NullBodyIsNilRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	res := remote.NewResource[testBook](newClient(srv.URL), "libros")
	created, err := res.Create(context.Background(), testBook{Title: "nuevo"})
	require.NoError(t, err)
	require.Nil(t, created)
}

func TestUpdate_PathIncludesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/libros/42", r.URL.Path)
		w.Write([]byte(`{"id":42,"titulo":"editado"}`))
	}))
	defer srv.Close()

	res := remote.NewResource[testBook](newClient(srv.URL), "libros")
	updated, err := res.Update(context.Background(), 42, testBook{ID: 42, Title: "editado"})
	require.NoError(t, err)
	require.Equal(t, "editado", updated.Title)
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/libros/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res := remote.NewResource[testBook](newClient(srv.URL), "libros")
	ok, err := res.Delete(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAuthToken_Sent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := remote.NewClient(remote.Config{BaseURL: srv.URL, Token: "sekrit"}, discard())
	res := remote.NewResource[testBook](client, "libros")
	_, err := res.GetAll(context.Background())
	require.NoError(t, err)
}

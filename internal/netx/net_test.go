package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	body := []byte("%PDF-1.4 hello")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotMethod string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			_, _ = w.Write(body)
		}))
		defer ts.Close()

		got, err := NewClient().Fetch(context.Background(), ts.URL+"/files/a.pdf")
		require.NoError(t, err)
		assert.Equal(t, body, got)
		assert.Equal(t, http.MethodGet, gotMethod)
	})

	t.Run("non-2xx -> ErrFetch", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(strings.Repeat("x", 2000)))
		}))
		defer ts.Close()

		_, err := NewClient().Fetch(context.Background(), ts.URL)
		require.ErrorIs(t, err, common.ErrFetch)
		assert.Contains(t, err.Error(), "403")
		assert.Less(t, len(err.Error()), 1000)
	})

	t.Run("network error -> ErrFetch", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := NewClient().Fetch(context.Background(), ts.URL)
		require.ErrorIs(t, err, common.ErrFetch)
	})

	t.Run("canceled context", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewClientWith(ts.Client()).Fetch(ctx, ts.URL)
		require.ErrorIs(t, err, common.ErrFetch)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewClient().Fetch(context.Background(), "://nope")
		require.ErrorIs(t, err, common.ErrFetch)
	})
}

func TestFetch_FileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o600))

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	got, err := NewClient().Fetch(context.Background(), u.String())
	require.NoError(t, err)
	assert.Equal(t, []byte("local"), got)

	missing := url.URL{Scheme: "file", Path: filepath.ToSlash(path) + ".missing"}
	_, err = NewClient().Fetch(context.Background(), missing.String())
	require.ErrorIs(t, err, common.ErrFetch)
}

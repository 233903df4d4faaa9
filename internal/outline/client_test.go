package outline

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

func fastRetry(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, Backoff: time.Millisecond}
}

func TestClient_CollectionInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/collections.info", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "col-1", body["id"])

		_, _ = w.Write([]byte(`{"ok":true,"data":{"id":"col-1","name":"Handbook","description":"All of it"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", "secret")
	col, err := c.CollectionInfo(t.Context(), "col-1")
	require.NoError(t, err)
	require.Equal(t, "Handbook", col.Name)
	require.Equal(t, "All of it", col.Description)
}

func TestClient_CollectionTree_Nested(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"data":[
			{"id":"r","title":"Root","children":[{"id":"c","title":"Child","children":[]}]}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	nodes, err := c.CollectionTree(t.Context(), "col-1")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, "Root", nodes[0].Title)
	require.Len(t, nodes[0].Children, 1)
	require.Equal(t, "c", nodes[0].Children[0].ID)
}

func TestClient_AuthFailureNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "wrong", WithRetryPolicy(fastRetry(3)))
	_, err := c.Auth(t.Context())
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryAuth))
	require.Equal(t, int32(1), calls.Load(), "401 must not be retried")
}

func TestClient_ApplicationErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"ok":false,"error":"collection not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", WithRetryPolicy(fastRetry(3)))
	_, err := c.CollectionInfo(t.Context(), "nope")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryAPI))
	require.Contains(t, err.Error(), "collection not found")
	require.Equal(t, int32(1), calls.Load(), "ok:false must not be retried")
}

func TestClient_ServerErrorRetriedWithBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"data":{"id":"d1","title":"Doc","text":"hello"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", WithRetryPolicy(fastRetry(3)))
	doc, err := c.DocumentInfo(t.Context(), "d1")
	require.NoError(t, err)
	require.Equal(t, "hello", doc.Text)
	require.Equal(t, int32(3), calls.Load())
}

func TestClient_RetriesExhaustedSurfaceNetworkError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", WithRetryPolicy(fastRetry(2)))
	_, err := c.DocumentInfo(t.Context(), "d1")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNetwork))
	require.Equal(t, int32(2), calls.Load())
}

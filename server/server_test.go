package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/recognarr/recognarr/pkg/cache"
	"github.com/recognarr/recognarr/pkg/recognize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testServer(t *testing.T) Server {
	t.Helper()
	resultCache := cache.New()
	coordinator := recognize.New(resultCache, nil)
	return New(zap.NewNop().Sugar(), coordinator, resultCache)
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response": "ok"}`, w.Body.String())
}

func TestRecognize(t *testing.T) {
	srv := testServer(t)

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", strings.NewReader("not-json"))
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", strings.NewReader(`{"show": "Test Show"}`))
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("recognizes a standard episode", func(t *testing.T) {
		body := `{"path": "Test Show/Test.Show.S02E05.mkv", "show": "Test Show"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Response struct {
				Season   int   `json:"season"`
				Episodes []int `json:"episodes"`
			} `json:"response"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Response.Season)
		assert.Equal(t, []int{5}, resp.Response.Episodes)
	})
}

func TestCacheEndpoints(t *testing.T) {
	srv := testServer(t)

	// prime the cache with one lookup
	body := `{"path": "Test.Show.S01E01.mkv", "show": "Test Show"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("stats", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Response cache.Stats `json:"response"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotZero(t, resp.Response.Size)
	})

	t.Run("clear", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cache/clear", nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, srv.cache.Size())
	})

	t.Run("reset stats", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cache/reset-stats", nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		stats := srv.cache.Statistics()
		assert.Zero(t, stats.Hits)
		assert.Zero(t, stats.Misses)
	})

	t.Run("clear ai", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cache/clear-ai", nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

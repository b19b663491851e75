package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-perf-cache/internal/auth"
	"clinic-perf-cache/internal/cache"
	"clinic-perf-cache/internal/config"
	"clinic-perf-cache/internal/metrics"
	"clinic-perf-cache/internal/realtime"
	"clinic-perf-cache/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T) (*gin.Engine, *cache.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewSeededDB()
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	store := cache.New(cache.Config{MaxEntries: 100, DefaultTTL: time.Minute})
	r := SetupRoutes(Dependencies{
		Store:   store,
		DB:      db,
		Tokens:  auth.NewManager(config.JWTConfig{Secret: []byte("s"), Issuer: "i", Audience: "a"}, config.AdminConfig{Username: "admin", PasswordHash: hash}),
		Metrics: metrics.New("test"),
		Hub:     realtime.NewHub(),
	})
	return r, store
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestLoginThenMutateCache(t *testing.T) {
	r, store := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "pw"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct{ Token string }
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	body, _ = json.Marshal(map[string]any{"data": map[string]any{"open": true}, "category": "static"})
	req = httptest.NewRequest(http.MethodPut, "/api/cache/entries/static:hours", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, store.Has("static:hours"))
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/api/cache/entries/k"},
		{http.MethodDelete, "/api/cache/entries/k"},
		{http.MethodDelete, "/api/cache"},
		{http.MethodPost, "/api/cache/cleanup"},
		{http.MethodPost, "/api/cache/preload"},
		{http.MethodGet, "/ws/stats"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestDirectoryReadThrough(t *testing.T) {
	r, store := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clinics/c-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))
	require.True(t, store.Has("clinic:c-1"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clinics/c-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "HIT", w.Header().Get("X-Cache"))
}

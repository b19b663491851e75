package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-perf-cache/internal/cache"
	"clinic-perf-cache/internal/models"
	"clinic-perf-cache/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newDirectoryRouter(t *testing.T) (*gin.Engine, *cache.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewSeededDB()
	require.NoError(t, err)

	store := cache.New(cache.Config{})
	h := NewDirectoryHandler(db, cache.NewDomains(store))
	r := gin.New()
	r.GET("/api/clinics/:id", h.GetClinic)
	r.GET("/api/doctors/:id", h.GetDoctor)
	r.GET("/api/search", h.SearchDoctors)
	return r, store
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetClinic_ReadThrough(t *testing.T) {
	r, store := newDirectoryRouter(t)

	w := get(r, "/api/clinics/c-1")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var clinic models.Clinic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clinic))
	require.Equal(t, "Riverside Family Clinic", clinic.Name)
	require.Len(t, clinic.Doctors, 2)

	info, ok := store.Lookup("clinic:c-1")
	require.True(t, ok)
	require.Equal(t, cache.CategoryClinic, info.Meta.Category)
	require.Equal(t, cache.SourceLoader, info.Meta.Source)

	w = get(r, "/api/clinics/c-1")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "HIT", w.Header().Get("X-Cache"))
}

func TestGetClinic_NotFound(t *testing.T) {
	r, store := newDirectoryRouter(t)

	w := get(r, "/api/clinics/missing")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, store.Has("clinic:missing"))
}

func TestGetDoctor_ReadThrough(t *testing.T) {
	r, _ := newDirectoryRouter(t)

	w := get(r, "/api/doctors/d-3")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var doctor models.Doctor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctor))
	require.Equal(t, "Dr Lena Fischer", doctor.Name)

	w = get(r, "/api/doctors/d-3")
	require.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w = get(r, "/api/doctors/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchDoctors_CachesPerQuery(t *testing.T) {
	r, store := newDirectoryRouter(t)

	w := get(r, "/api/search?location=leeds")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 2, resp.Total)
	require.Equal(t, "Dr Amira Shah", resp.Doctors[0].Name)
	require.Equal(t, 1, resp.Page)
	require.Equal(t, 10, resp.Limit)

	// Same query modulo case and whitespace is a hit.
	w = get(r, "/api/search?location=%20Leeds%20")
	require.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w = get(r, "/api/search?q=cardio")
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 1, resp.Total)
	require.Equal(t, "cardiology", resp.Doctors[0].Specialty)

	var searchKeys int
	for _, k := range store.Keys() {
		if len(k) > len("search:") && k[:len("search:")] == "search:" {
			searchKeys++
		}
	}
	require.Equal(t, 2, searchKeys)
}

func TestSearchDoctors_Pagination(t *testing.T) {
	r, _ := newDirectoryRouter(t)

	w := get(r, "/api/search?limit=1&page=2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 3, resp.Total)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "Dr Amira Shah", resp.Doctors[0].Name)

	w = get(r, "/api/search?limit=500")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, maxSearchLimit, resp.Limit)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-perf-cache/internal/cache"
	"clinic-perf-cache/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	cacheHeader = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"

	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// SearchResponse is the cached payload for a doctor search
type SearchResponse struct {
	Doctors []models.Doctor `json:"doctors"`
	Count   int             `json:"count"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// DirectoryHandler serves clinic and doctor lookups, reading through the cache.
type DirectoryHandler struct {
	db      *gorm.DB
	domains *cache.Domains
	loads   singleflight.Group
}

func NewDirectoryHandler(db *gorm.DB, domains *cache.Domains) *DirectoryHandler {
	return &DirectoryHandler{db: db, domains: domains}
}

// GetClinic handles GET /api/clinics/:id
func (h *DirectoryHandler) GetClinic(c *gin.Context) {
	id := c.Param("id")
	if v, ok := h.domains.GetClinic(id); ok {
		c.Header(cacheHeader, cacheHit)
		c.JSON(http.StatusOK, v)
		return
	}

	v, err, _ := h.loads.Do(cache.Key(cache.CategoryClinic, id), func() (any, error) {
		var clinic models.Clinic
		if err := h.db.Preload("Doctors").Where("id = ?", id).First(&clinic).Error; err != nil {
			return nil, err
		}
		h.domains.SetClinic(id, clinic)
		return clinic, nil
	})
	if err != nil {
		respondLoadError(c, err, "Clinic not found", "Failed to fetch clinic")
		return
	}

	c.Header(cacheHeader, cacheMiss)
	c.JSON(http.StatusOK, v)
}

// GetDoctor handles GET /api/doctors/:id
func (h *DirectoryHandler) GetDoctor(c *gin.Context) {
	id := c.Param("id")
	if v, ok := h.domains.GetDoctor(id); ok {
		c.Header(cacheHeader, cacheHit)
		c.JSON(http.StatusOK, v)
		return
	}

	v, err, _ := h.loads.Do(cache.Key(cache.CategoryDoctor, id), func() (any, error) {
		var doctor models.Doctor
		if err := h.db.Where("id = ?", id).First(&doctor).Error; err != nil {
			return nil, err
		}
		h.domains.SetDoctor(id, doctor)
		return doctor, nil
	})
	if err != nil {
		respondLoadError(c, err, "Doctor not found", "Failed to fetch doctor")
		return
	}

	c.Header(cacheHeader, cacheMiss)
	c.JSON(http.StatusOK, v)
}

/*
*
SearchDoctors handles GET /api/search
Query params: q (name or specialty), specialty, location, page (default 1), limit (default 10, max 50).
Results are cached per normalized query.
*/
func (h *DirectoryHandler) SearchDoctors(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSearchLimit)))
	if err != nil || limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	q := cache.SearchQuery{
		Term:      c.Query("q"),
		Specialty: c.Query("specialty"),
		Location:  c.Query("location"),
		Page:      page,
		Limit:     limit,
	}.Normalize()

	if v, ok := h.domains.GetSearch(q); ok {
		c.Header(cacheHeader, cacheHit)
		c.JSON(http.StatusOK, v)
		return
	}

	v, err, _ := h.loads.Do(cache.SearchKey(q), func() (any, error) {
		resp, err := h.search(q)
		if err != nil {
			return nil, err
		}
		h.domains.SetSearch(q, resp)
		return resp, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search doctors"})
		return
	}

	c.Header(cacheHeader, cacheMiss)
	c.JSON(http.StatusOK, v)
}

func (h *DirectoryHandler) search(q cache.SearchQuery) (SearchResponse, error) {
	query := h.db.Model(&models.Doctor{})
	if q.Term != "" {
		like := "%" + q.Term + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(specialty) LIKE ?", like, like)
	}
	if q.Specialty != "" {
		query = query.Where("LOWER(specialty) = ?", q.Specialty)
	}
	if q.Location != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+q.Location+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return SearchResponse{}, err
	}

	var doctors []models.Doctor
	err := query.Session(&gorm.Session{}).
		Order("rating desc, name asc").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&doctors).Error
	if err != nil {
		return SearchResponse{}, err
	}

	return SearchResponse{
		Doctors: doctors,
		Count:   len(doctors),
		Total:   total,
		Page:    q.Page,
		Limit:   q.Limit,
	}, nil
}

func respondLoadError(c *gin.Context, err error, notFound, failed string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": failed})
}

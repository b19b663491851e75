package handlers

import (
	"net/http"
	"time"

	"clinic-perf-cache/internal/cache"

	"github.com/gin-gonic/gin"
)

// SetEntryRequest represents the payload for writing a cache entry
type SetEntryRequest struct {
	Data       any            `json:"data" binding:"required"`
	TTLSeconds int            `json:"ttlSeconds" binding:"min=0"`
	Category   cache.Category `json:"category"`
	Priority   cache.Priority `json:"priority"`
}

// PreloadEntryRequest is one element of a preload batch
type PreloadEntryRequest struct {
	Key        string         `json:"key" binding:"required"`
	Data       any            `json:"data" binding:"required"`
	TTLSeconds int            `json:"ttlSeconds" binding:"min=0"`
	Category   cache.Category `json:"category"`
}

// CacheHandler exposes the cache store to operators and the monitoring UI.
type CacheHandler struct {
	store cache.Cache
}

func NewCacheHandler(store cache.Cache) *CacheHandler {
	return &CacheHandler{store: store}
}

// GetStats handles GET /api/cache/stats
func (h *CacheHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Stats())
}

// GetEntry handles GET /api/cache/entries/:key
func (h *CacheHandler) GetEntry(c *gin.Context) {
	key := c.Param("key")
	info, ok := h.store.Lookup(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// SetEntry handles PUT /api/cache/entries/:key
func (h *CacheHandler) SetEntry(c *gin.Context) {
	key := c.Param("key")

	var req SetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.Category
	if category == "" {
		category = cache.CategoryGeneral
	}
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	policy := category.Policy()

	ttl := time.Duration(req.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = policy.TTL
	}
	priority := req.Priority
	if priority == "" {
		priority = policy.Priority
	}

	h.store.SetWithMeta(key, req.Data, ttl, cache.Meta{
		Category: category,
		Priority: priority,
		Source:   cache.SourceAPI,
	})

	info, ok := h.store.Peek(key)
	if !ok {
		// Only reachable if a concurrent writer evicted it already.
		c.JSON(http.StatusConflict, gin.H{"error": "Entry was evicted before it could be read back"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// DeleteEntry handles DELETE /api/cache/entries/:key
func (h *CacheHandler) DeleteEntry(c *gin.Context) {
	key := c.Param("key")
	if !h.store.Delete(key) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Entry deleted successfully",
		"key":     key,
	})
}

// Clear handles DELETE /api/cache
func (h *CacheHandler) Clear(c *gin.Context) {
	h.store.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}

// Cleanup handles POST /api/cache/cleanup
func (h *CacheHandler) Cleanup(c *gin.Context) {
	removed := h.store.Cleanup()
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Preload handles POST /api/cache/preload
func (h *CacheHandler) Preload(c *gin.Context) {
	var req []PreloadEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]cache.PreloadItem, 0, len(req))
	for _, r := range req {
		if r.Key == "" || r.Data == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each entry needs a key and data"})
			return
		}
		if r.Category != "" && !r.Category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category for key " + r.Key})
			return
		}
		items = append(items, cache.PreloadItem{
			Key:      r.Key,
			Data:     r.Data,
			TTL:      time.Duration(r.TTLSeconds) * time.Second,
			Category: r.Category,
		})
	}

	h.store.Preload(items)
	c.JSON(http.StatusOK, gin.H{"preloaded": len(items)})
}

package cache

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/hashstructure/v2"
)

// SearchQuery identifies a doctor search. Two queries with the same fields
// share a cache entry.
type SearchQuery struct {
	Term      string `json:"q"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

// Normalize lowercases and trims the text fields so equivalent queries hash alike.
func (q SearchQuery) Normalize() SearchQuery {
	q.Term = strings.ToLower(strings.TrimSpace(q.Term))
	q.Specialty = strings.ToLower(strings.TrimSpace(q.Specialty))
	q.Location = strings.ToLower(strings.TrimSpace(q.Location))
	return q
}

// searchResult keeps the originating query next to the cached result so a
// hash collision is detected on read instead of serving another query's data.
type searchResult struct {
	Query  SearchQuery `json:"query"`
	Result any         `json:"result"`
}

// Domains wraps a Store with per-category key prefixes, TTLs and metadata.
type Domains struct {
	store *Store
}

// NewDomains returns helpers writing through to store.
func NewDomains(store *Store) *Domains {
	return &Domains{store: store}
}

// Key builds the namespaced key for id in category c.
func Key(c Category, id string) string {
	return c.Prefix() + id
}

// SearchKey derives the cache key for q. It falls back to the query's
// canonical JSON if it can't be hashed.
func SearchKey(q SearchQuery) string {
	h, err := hashstructure.Hash(q, hashstructure.FormatV2, nil)
	if err != nil {
		b, _ := json.Marshal(q)
		return Key(CategorySearch, string(b))
	}
	return Key(CategorySearch, fmt.Sprintf("%016x", h))
}

func (d *Domains) set(c Category, key string, v any, source string) {
	p := c.Policy()
	d.store.SetWithMeta(key, v, p.TTL, Meta{Category: c, Priority: p.Priority, Source: source})
}

// SetClinic caches a clinic record under its id.
func (d *Domains) SetClinic(id string, v any) {
	d.set(CategoryClinic, Key(CategoryClinic, id), v, SourceLoader)
}

// GetClinic returns the cached clinic record for id.
func (d *Domains) GetClinic(id string) (any, bool) {
	return d.store.Get(Key(CategoryClinic, id))
}

// SetDoctor caches a doctor profile under its id.
func (d *Domains) SetDoctor(id string, v any) {
	d.set(CategoryDoctor, Key(CategoryDoctor, id), v, SourceLoader)
}

// GetDoctor returns the cached doctor profile for id.
func (d *Domains) GetDoctor(id string) (any, bool) {
	return d.store.Get(Key(CategoryDoctor, id))
}

// SetStatic caches a static page by name.
func (d *Domains) SetStatic(name string, v any) {
	d.set(CategoryStatic, Key(CategoryStatic, name), v, SourceAPI)
}

// GetStatic returns the cached static page for name.
func (d *Domains) GetStatic(name string) (any, bool) {
	return d.store.Get(Key(CategoryStatic, name))
}

// SetSearch caches result for the normalized form of q.
func (d *Domains) SetSearch(q SearchQuery, result any) {
	q = q.Normalize()
	d.set(CategorySearch, SearchKey(q), searchResult{Query: q, Result: result}, SourceLoader)
}

// GetSearch returns the cached result for q. An entry stored under the same
// key by a different query is reported as absent and counted as a miss.
func (d *Domains) GetSearch(q SearchQuery) (any, bool) {
	q = q.Normalize()
	v, ok := d.store.getMatching(SearchKey(q), func(v any) bool {
		sr, ok := v.(searchResult)
		return ok && sr.Query == q
	})
	if !ok {
		return nil, false
	}
	return v.(searchResult).Result, true
}

// PreloadStatic warms static pages, keyed by name.
func (d *Domains) PreloadStatic(pages map[string]any) {
	items := make([]PreloadItem, 0, len(pages))
	for name, v := range pages {
		items = append(items, PreloadItem{
			Key:      Key(CategoryStatic, name),
			Data:     v,
			Category: CategoryStatic,
		})
	}
	d.store.Preload(items)
}

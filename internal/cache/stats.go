package cache

import "time"

const bytesPerMiB = 1024 * 1024

// Stats is a read-only snapshot of a Store.
//
// Hits sums AccessCount over live entries, so it drops when entries leave the
// store. Misses, Evictions and Expirations are running counters for the
// lifetime of the store.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	HitRate     float64   `json:"hitRate"`
	Entries     int       `json:"entries"`
	TotalSize   int64     `json:"totalSize"`
	SizeMiB     float64   `json:"sizeMiB"`
	Evictions   int64     `json:"evictions"`
	Expirations int64     `json:"expirations"`
	TakenAt     time.Time `json:"takenAt"`
}

// PreloadItem is one entry handed to Preload.
type PreloadItem struct {
	Key      string
	Data     any
	TTL      time.Duration // <= 0 uses the category's TTL
	Category Category
}

// Stats walks the live entries and combines them with the running counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	st := Stats{
		Misses:      s.misses.Load(),
		Evictions:   s.evictions.Load(),
		Expirations: s.expirations.Load(),
		TakenAt:     now,
	}
	for _, e := range s.items {
		if e.expired(now) {
			continue
		}
		st.Hits += e.accessCount
		st.Entries++
		st.TotalSize += e.estimatedSize
	}
	if lookups := st.Hits + st.Misses; lookups > 0 {
		st.HitRate = float64(st.Hits) / float64(lookups)
	}
	st.SizeMiB = float64(st.TotalSize) / bytesPerMiB
	return st
}

// Cleanup deletes every entry whose expiry has passed and returns how many went.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return 0
	}
	now := s.clock.Now()
	removed := 0
	for k, e := range s.items {
		if e.expired(now) {
			s.expireLocked(k)
			removed++
		}
	}
	return removed
}

// Preload inserts items through SetWithMeta, tagged as preloaded. Capacity
// limits apply as for any other write.
func (s *Store) Preload(items []PreloadItem) {
	for _, it := range items {
		cat := it.Category
		if cat == "" {
			cat = CategoryGeneral
		}
		policy := cat.Policy()
		ttl := it.TTL
		if ttl <= 0 {
			ttl = policy.TTL
		}
		s.SetWithMeta(it.Key, it.Data, ttl, Meta{
			Category:  cat,
			Priority:  policy.Priority,
			Source:    SourcePreload,
			Preloaded: true,
		})
	}
}

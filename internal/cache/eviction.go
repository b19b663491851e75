package cache

import "sort"

// olderThan orders entries by last access, then by access sequence for
// entries touched within the same clock tick.
func olderThan(a, b *entry) bool {
	if !a.lastAccessed.Equal(b.lastAccessed) {
		return a.lastAccessed.Before(b.lastAccessed)
	}
	return a.seq < b.seq
}

// evictLRULocked removes the single least recently accessed entry.
func (s *Store) evictLRULocked() {
	var victim *entry
	for _, e := range s.items {
		if victim == nil || olderThan(e, victim) {
			victim = e
		}
	}
	if victim == nil {
		return
	}
	s.deleteLocked(victim.key)
	s.evictions.Inc()
}

// evictForSizeLocked removes entries oldest-access first until need more bytes
// fit under maxSize or the store is empty.
func (s *Store) evictForSizeLocked(need int64) {
	order := make([]*entry, 0, len(s.items))
	for _, e := range s.items {
		order = append(order, e)
	}
	sort.Slice(order, func(i, j int) bool { return olderThan(order[i], order[j]) })

	for _, e := range order {
		if s.totalSize+need <= s.maxSize {
			return
		}
		s.deleteLocked(e.key)
		s.evictions.Inc()
	}
}

package cache

import "time"

// Cache defines the key-value API the HTTP layer and domain helpers depend on.
// Store is the only implementation; the interface keeps handlers testable.
type Cache interface {
	// Get returns the value and whether it was present and not expired.
	Get(key string) (any, bool)

	// Lookup is Get plus a copy of the entry's bookkeeping.
	Lookup(key string) (EntryInfo, bool)

	// Peek returns the entry's bookkeeping without counting an access.
	Peek(key string) (EntryInfo, bool)

	// Set stores the value. If ttl <= 0, the store's default TTL applies.
	Set(key string, value any, ttl time.Duration)

	// SetWithMeta is Set with descriptive metadata attached to the entry.
	SetWithMeta(key string, value any, ttl time.Duration, meta Meta)

	// Has reports whether a key is present and not expired.
	Has(key string) bool

	// Delete removes a key if present and reports whether it was removed.
	Delete(key string) bool

	// Clear removes all entries.
	Clear()

	// Cleanup scans and removes expired entries, returning how many were removed.
	Cleanup() int

	// Preload bulk-inserts entries through the regular Set path.
	Preload(items []PreloadItem)

	// Stats computes a snapshot of the store's counters.
	Stats() Stats
}

// Ensure Store implements Cache at compile time.
var _ Cache = (*Store)(nil)

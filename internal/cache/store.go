package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"
)

const (
	// DefaultMaxSize is the total estimated size bound when Config.MaxSize is unset.
	DefaultMaxSize int64 = 50 * 1024 * 1024
	// DefaultMaxEntries is the entry count bound when Config.MaxEntries is unset.
	DefaultMaxEntries = 1000
	// DefaultTTL applies to writes that don't carry their own TTL.
	DefaultTTL = 5 * time.Minute
)

// Config controls store limits. Zero or negative values fall back to the defaults above.
type Config struct {
	MaxSize    int64
	MaxEntries int
	DefaultTTL time.Duration

	// Clock is the time source for timestamps and expiry. Nil means the wall clock.
	Clock clock.Clock
}

// entry stores a cached value with its bookkeeping.
type entry struct {
	key           string
	value         any
	createdAt     time.Time
	expiresAt     time.Time
	lastAccessed  time.Time
	accessCount   int64
	estimatedSize int64
	meta          Meta

	// seq orders entries that share a lastAccessed timestamp; higher means touched later.
	seq uint64
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

func (e *entry) info() EntryInfo {
	return EntryInfo{
		Key:           e.key,
		Data:          e.value,
		CreatedAt:     e.createdAt,
		ExpiresAt:     e.expiresAt,
		LastAccessed:  e.lastAccessed,
		AccessCount:   e.accessCount,
		EstimatedSize: e.estimatedSize,
		Meta:          e.meta,
	}
}

// EntryInfo is a point-in-time copy of an entry. Data is shared with the store
// and must be treated as read-only.
type EntryInfo struct {
	Key           string    `json:"key"`
	Data          any       `json:"data"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
	LastAccessed  time.Time `json:"lastAccessed"`
	AccessCount   int64     `json:"accessCount"`
	EstimatedSize int64     `json:"estimatedSize"`
	Meta          Meta      `json:"metadata"`
}

// Store is a bounded in-memory cache with TTL expiry, LRU and size-based
// eviction, and per-entry access statistics.
//
// A single mutex guards all state. Eviction scans walk the whole map, so
// readers must never observe it mid-mutation.
type Store struct {
	mu sync.Mutex

	maxSize    int64
	maxEntries int
	defaultTTL time.Duration
	clock      clock.Clock

	items     map[string]*entry
	totalSize int64
	seq       uint64

	misses      atomic.Int64
	evictions   atomic.Int64
	expirations atomic.Int64
}

// New constructs an empty Store.
func New(cfg Config) *Store {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = DefaultTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Store{
		maxSize:    cfg.MaxSize,
		maxEntries: cfg.MaxEntries,
		defaultTTL: cfg.DefaultTTL,
		clock:      cfg.Clock,
		items:      make(map[string]*entry),
	}
}

// Set stores value under key with the given TTL and no metadata.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	s.SetWithMeta(key, value, ttl, Meta{})
}

// SetWithMeta inserts or replaces the entry for key.
//
// A replaced key is dropped before the limits are checked, so updates never
// count against MaxEntries. A new key at capacity evicts exactly one LRU
// entry. If the estimated size would push the total over MaxSize, entries are
// swept oldest-access first until it fits; a value larger than MaxSize on its
// own is admitted once everything else is gone.
func (s *Store) SetWithMeta(key string, value any, ttl time.Duration, meta Meta) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	size := EstimateSize(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if _, ok := s.items[key]; ok {
		s.deleteLocked(key)
	} else if len(s.items) >= s.maxEntries {
		s.evictLRULocked()
	}

	if s.totalSize+size > s.maxSize {
		s.evictForSizeLocked(size)
	}

	s.seq++
	s.items[key] = &entry{
		key:           key,
		value:         value,
		createdAt:     now,
		expiresAt:     now.Add(ttl),
		lastAccessed:  now,
		accessCount:   1,
		estimatedSize: size,
		meta:          meta,
		seq:           s.seq,
	}
	s.totalSize += size
}

// Get returns the value for key. Expired entries are removed and reported as misses.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.touchLocked(key)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Lookup behaves like Get and additionally returns a copy of the entry's bookkeeping.
func (s *Store) Lookup(key string) (EntryInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.touchLocked(key)
	if !ok {
		return EntryInfo{}, false
	}
	return e.info(), true
}

// GetAs returns the value for key asserted to T. A value of another type is
// reported as absent and counted as a miss.
func GetAs[T any](s *Store, key string) (T, bool) {
	var zero T
	v, ok := s.getMatching(key, func(v any) bool {
		_, ok := v.(T)
		return ok
	})
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// getMatching is Get for callers that can reject the stored value. A rejected
// value is counted as a miss and the entry's access bookkeeping is left alone.
func (s *Store) getMatching(key string, accept func(any) bool) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	e, ok := s.liveLocked(key, now)
	if !ok {
		return nil, false
	}
	if !accept(e.value) {
		s.misses.Inc()
		return nil, false
	}
	s.markAccessedLocked(e, now)
	return e.value, true
}

// Peek returns a copy of key's entry without counting a hit or a miss and
// without refreshing its access time. Expired entries are reported absent.
func (s *Store) Peek(key string) (EntryInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok || e.expired(s.clock.Now()) {
		return EntryInfo{}, false
	}
	return e.info(), true
}

// Has reports whether key holds a live entry without updating access bookkeeping.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.liveLocked(key, s.clock.Now())
	return ok
}

// Delete removes key and reports whether an entry was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return false
	}
	s.deleteLocked(key)
	return true
}

// Clear drops every entry. Limits and counters are kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*entry)
	s.totalSize = 0
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// touchLocked resolves key for a read: it records a miss or expiry, or bumps
// the entry's access bookkeeping.
func (s *Store) touchLocked(key string) (*entry, bool) {
	now := s.clock.Now()
	e, ok := s.liveLocked(key, now)
	if !ok {
		return nil, false
	}
	s.markAccessedLocked(e, now)
	return e, true
}

// liveLocked returns the unexpired entry for key. A missing key counts as a
// miss; an expired one is removed and counts as both a miss and an expiry.
func (s *Store) liveLocked(key string, now time.Time) (*entry, bool) {
	e, ok := s.items[key]
	if !ok {
		s.misses.Inc()
		return nil, false
	}
	if e.expired(now) {
		s.expireLocked(key)
		s.misses.Inc()
		return nil, false
	}
	return e, true
}

func (s *Store) markAccessedLocked(e *entry, now time.Time) {
	s.seq++
	e.seq = s.seq
	e.accessCount++
	e.lastAccessed = now
}

func (s *Store) expireLocked(key string) {
	s.deleteLocked(key)
	s.expirations.Inc()
}

func (s *Store) deleteLocked(key string) {
	e, ok := s.items[key]
	if !ok {
		return
	}
	delete(s.items, key)
	s.totalSize -= e.estimatedSize
}

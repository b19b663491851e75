// Package cache implements the in-process performance cache: a bounded
// key-value store with lazy TTL expiry, LRU and size-based eviction,
// per-entry access statistics, and namespaced helpers for the clinic
// directory's data domains.
package cache

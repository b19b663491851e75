package cache

import "time"

// Category tags an entry with the data domain it belongs to.
type Category string

// Known categories. Each maps to a Policy.
const (
	CategoryGeneral Category = "general"
	CategoryClinic  Category = "clinic"
	CategoryDoctor  Category = "doctor"
	CategorySearch  Category = "search"
	CategoryStatic  Category = "static"
)

// Priority is a descriptive tag; eviction ignores it.
type Priority string

// Priority levels.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Entry sources.
const (
	SourceAPI     = "api"
	SourcePreload = "preload"
	SourceLoader  = "loader"
)

// Policy holds the defaults a category applies to writes.
type Policy struct {
	TTL      time.Duration
	Priority Priority
}

var policies = map[Category]Policy{
	CategoryGeneral: {TTL: 0, Priority: PriorityLow},
	CategoryClinic:  {TTL: 10 * time.Minute, Priority: PriorityHigh},
	CategoryDoctor:  {TTL: 15 * time.Minute, Priority: PriorityHigh},
	CategorySearch:  {TTL: 2 * time.Minute, Priority: PriorityMedium},
	CategoryStatic:  {TTL: time.Hour, Priority: PriorityLow},
}

// Policy returns the defaults for c. Unknown categories get the general
// policy, whose zero TTL defers to the store default.
func (c Category) Policy() Policy {
	if p, ok := policies[c]; ok {
		return p
	}
	return policies[CategoryGeneral]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := policies[c]
	return ok
}

// Prefix is the key namespace for c, e.g. "clinic:".
func (c Category) Prefix() string {
	return string(c) + ":"
}

// Meta describes an entry. It is informational only.
type Meta struct {
	Category  Category `json:"category,omitempty"`
	Priority  Priority `json:"priority,omitempty"`
	Source    string   `json:"source,omitempty"`
	Preloaded bool     `json:"preloaded"`
}

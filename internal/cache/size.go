package cache

import "encoding/json"

// FallbackSize is charged for values that can't be serialized.
const FallbackSize int64 = 1024

// EstimateSize returns the length of v's JSON encoding. Values json can't
// encode (channels, funcs, cyclic pointers) cost FallbackSize so they still
// count against the size bound.
func EstimateSize(v any) int64 {
	b, err := json.Marshal(v)
	if err != nil {
		return FallbackSize
	}
	return int64(len(b))
}

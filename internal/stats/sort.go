package stats

import (
	"cmp"
	"slices"
)

// Number is the value type of a rankable mapping.
type Number interface {
	~int | ~int64 | ~float64
}

// Entry is one key/value pair of a mapping.
type Entry[V Number] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

// SortByValue returns the entries of m in ascending value order.
// Equal values are ordered by key.
func SortByValue[M ~map[string]V, V Number](m M) []Entry[V] {
	entries := make([]Entry[V], 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry[V]{Key: k, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry[V]) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}

// ToFloat converts entries to float64 values.
func ToFloat[V Number](entries []Entry[V]) []Entry[float64] {
	out := make([]Entry[float64], len(entries))
	for i, e := range entries {
		out[i] = Entry[float64]{Key: e.Key, Value: float64(e.Value)}
	}
	return out
}

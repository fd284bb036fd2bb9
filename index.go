package windowed

import (
	"sort"
	"sync"
	"time"
)

// Index maps windowed keys to aggregation results. Lookups use Key.Hash and
// Key.Equal, so keys whose windows are Equal but not == (the same instant
// in two locations, say) resolve to the same entry.
//
// Index is an in-memory lookup table; it does not persist or expire entries.
// It is safe for concurrent use.
type Index[K comparable, V any] struct {
	buckets map[uint64][]*entry[K, V]
	mu      sync.RWMutex
	size    int
	seq     uint64
}

type entry[K comparable, V any] struct {
	key   Key[K]
	value V
	seq   uint64
}

// NewIndex creates an empty Index.
//
// Example:
//
//	counts := windowed.NewIndex[string, int]().WithCapacity(1024)
//	for _, e := range events {
//		k := windowed.New(e.User, windowFor(e.Time))
//		n, _ := counts.Get(k)
//		counts.Put(k, n+1)
//	}
//	counts.Range(func(k windowed.Key[string], n int) bool {
//		fmt.Printf("%s: %d\n", k, n)
//		return true
//	})
func NewIndex[K comparable, V any]() *Index[K, V] {
	return &Index[K, V]{
		buckets: make(map[uint64][]*entry[K, V]),
	}
}

// WithCapacity sizes the index for roughly n distinct keys.
// Entries already stored are kept.
func (ix *Index[K, V]) WithCapacity(n int) *Index[K, V] {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if n < len(ix.buckets) {
		n = len(ix.buckets)
	}
	buckets := make(map[uint64][]*entry[K, V], n)
	for h, bucket := range ix.buckets {
		buckets[h] = bucket
	}
	ix.buckets = buckets
	return ix
}

// Put stores value under key and reports whether an existing value was replaced.
// A replaced entry keeps its original position in Range order.
func (ix *Index[K, V]) Put(key Key[K], value V) bool {
	h := key.Hash()

	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, e := range ix.buckets[h] {
		if e.key.Equal(key) {
			e.value = value
			return true
		}
	}
	ix.seq++
	ix.buckets[h] = append(ix.buckets[h], &entry[K, V]{key: key, value: value, seq: ix.seq})
	ix.size++
	return false
}

// Get returns the value stored under key.
func (ix *Index[K, V]) Get(key Key[K]) (V, bool) {
	h := key.Hash()

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	for _, e := range ix.buckets[h] {
		if e.key.Equal(key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Delete removes key and reports whether it was present.
func (ix *Index[K, V]) Delete(key Key[K]) bool {
	h := key.Hash()

	ix.mu.Lock()
	defer ix.mu.Unlock()

	bucket := ix.buckets[h]
	for i, e := range bucket {
		if !e.key.Equal(key) {
			continue
		}
		if len(bucket) == 1 {
			delete(ix.buckets, h)
		} else {
			ix.buckets[h] = append(bucket[:i:i], bucket[i+1:]...)
		}
		ix.size--
		return true
	}
	return false
}

// Len returns the number of entries.
func (ix *Index[K, V]) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.size
}

// Windows returns every window holding a result for the record key k,
// ordered by window start and then by insertion.
func (ix *Index[K, V]) Windows(k K) []Window {
	var windows []Window
	for _, e := range ix.snapshot() {
		if keysEqual(e.key.key, k) {
			windows = append(windows, e.key.window)
		}
	}
	return windows
}

// Range calls fn for each entry ordered by window start and then by
// insertion, stopping early if fn returns false. fn runs on a snapshot, so
// it may modify the index.
func (ix *Index[K, V]) Range(fn func(key Key[K], value V) bool) {
	for _, e := range ix.snapshot() {
		if !fn(e.key, e.value) {
			return
		}
	}
}

func (ix *Index[K, V]) snapshot() []entry[K, V] {
	ix.mu.RLock()
	entries := make([]entry[K, V], 0, ix.size)
	for _, bucket := range ix.buckets {
		for _, e := range bucket {
			entries = append(entries, *e)
		}
	}
	ix.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		si, sj := windowStart(entries[i].key), windowStart(entries[j].key)
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return entries[i].seq < entries[j].seq
	})
	return entries
}

// windowStart orders the zero Key before every windowed one.
func windowStart[K comparable](k Key[K]) time.Time {
	if k.window == nil {
		return time.Time{}
	}
	return k.window.Start()
}

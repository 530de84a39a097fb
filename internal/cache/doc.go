// Package cache provides a size-bounded LRU cache.
//
// The cache bounds both the number of entries and their total cost, as
// reported by a caller-supplied cost function. mandelserve uses it to keep
// encoded renders: a render depends only on its size and output format, so
// a hit can be served without touching the worker pool.
//
//	c := cache.New[Key, []byte](64, 256<<20, func(b []byte) int64 { return int64(len(b)) })
//	c.Add(k, data)
//	data, ok := c.Get(k)
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

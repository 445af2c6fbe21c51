// Package cmap provides a concurrent map for process-lifetime caches.
//
// Keys are strings (or string-based types) routed to one of a fixed
// number of shards by their murmur3 hash. Each shard is guarded by its
// own RWMutex, so lookups on different shards never contend and reads on
// the same shard proceed in parallel.
//
// Usage:
//
//	keys := cmap.New[string, []byte]()
//	key, loaded := keys.GetOrSet(id, derived)
//
// Thread Safety:
//
// All operations are safe for concurrent use. Read operations (Get, Has,
// Count, Range) take read locks; write operations (Set, GetOrSet, Delete,
// Clear) take write locks. A value is published only after it has been
// fully constructed by the caller, so readers never observe partial values.
package cmap

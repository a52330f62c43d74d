// Package cache provides the read-through cache the entity stores sit on,
// its key derivation and its namespace invalidation policy.
//
// # Overview
//
//   - CacheService: the engine contract (GetOrFetch, Delete, DeleteByPrefix,
//     InvalidateKeys). NewCacheService builds the in-process sturdyc engine or
//     the single node Redis engine from a Config.
//
//   - KeySerializer: builds deterministic keys from an operation name and its
//     arguments.
//
//   - Cache: binds an engine and a serializer to the namespace policy. Keys
//     are laid out as
//
//     <namespace>::<operation>::<arg>::<arg>...
//
//     so that Evict(namespace) can drop every entry of one entity family with
//     a single prefix delete.
//
// # Basic Usage
//
//	service, _ := cache.NewCacheService(cache.DefaultConfig())
//	c := cache.New(service, nil, logger)
//
//	key := c.Key("categories", "all", limit, offset)
//	list, err := cache.Load(ctx, c, "categories", key, func(ctx context.Context) ([]model.Category, error) {
//		return accessor.FindAll(ctx, db, limit, offset)
//	})
//
//	// after a committed write
//	_ = c.Evict(ctx, "categories")
//
// # Key Serialization Strategy
//
// The default key serializer uses reflection:
//
//   - Strings: quoted, so free text never contains a bare separator
//   - fmt.Stringer values (uuid.UUID, decimal.Decimal, time.Time): type name plus quoted String()
//   - Pointers: dereferenced, nil renders as nil
//   - Slices/arrays: recursive serialization of elements
//   - Maps: entries sorted by serialized key
//   - Structs: exported fields with name:value pairs
//   - Functions and channels: %p, stable only within one process
//
// # Errors
//
// Engines never retain the result of a failed fetch, so a failing read is
// retried against the source on the next call.
package cache

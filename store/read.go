package store

import (
	"context"
	"errors"
	"slices"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/cache"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// query describes one cached read.
type query struct {
	namespace  string
	name       string
	args       []any
	op         storeerr.Op
	identifier string
}

// retrieve describes a single entity read in the store's primary namespace.
func (b *base) retrieve(name, identifier string, args ...any) query {
	return query{namespace: b.namespaces[0], name: name, args: args, op: storeerr.OpRetrieve, identifier: identifier}
}

// search describes a list, search or count read in the store's primary
// namespace.
func (b *base) search(name, identifier string, args ...any) query {
	return query{namespace: b.namespaces[0], name: name, args: args, op: storeerr.OpSearch, identifier: identifier}
}

// in moves q to another namespace owned by the store.
func (q query) in(namespace string) query {
	q.namespace = namespace
	return q
}

// read serves q from the cache, calling fn on a connection without a
// transaction on a miss. Failures are not cached.
func read[T any](ctx context.Context, b *base, q query, fn func(ctx context.Context, db bun.IDB) (T, error)) (T, error) {
	key := b.cache.Key(q.namespace, q.name, q.args...)
	return cache.Load(ctx, b.cache, q.namespace, key, func(ctx context.Context) (T, error) {
		var zero T

		conn, err := b.provider.Acquire(ctx)
		if err != nil {
			return zero, storeerr.Connection(err)
		}
		defer b.release(conn)

		value, err := fn(ctx, conn.DB())
		if err != nil {
			var typed *storeerr.OperationError
			if errors.As(err, &typed) {
				return zero, err
			}
			return zero, storeerr.Operation(b.entity, q.op, q.identifier, err)
		}
		return value, nil
	})
}

// readOne serves a single entity lookup.
func readOne[T any](ctx context.Context, b *base, q query, fn func(ctx context.Context, db bun.IDB) (T, bool, error)) (T, bool, error) {
	l, err := read(ctx, b, q, func(ctx context.Context, db bun.IDB) (lookup[T], error) {
		value, found, err := fn(ctx, db)
		return lookup[T]{Value: value, Found: found}, err
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return l.Value, l.Found, nil
}

// readList serves a list read. The caller receives its own copy so the cached
// slice cannot be modified through it.
func readList[T any](ctx context.Context, b *base, q query, fn func(ctx context.Context, db bun.IDB) ([]T, error)) ([]T, error) {
	list, err := read(ctx, b, q, fn)
	if err != nil {
		return nil, err
	}
	return slices.Clone(list), nil
}

package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-commerce-store/internal/cacheinfra"
)

// ErrInvalidResultType is returned when an engine hands back a value of a
// different type than the caller fetched.
var ErrInvalidResultType = errors.New("cache: invalid result type")

// KeySerializer builds a cache key from an operation name and arbitrary args.
// Identical inputs must produce identical keys and distinct inputs distinct keys.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}

// FetchFn is the function signature CacheService expects when fetching from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService is the engine contract the stores cache through. Engines must
// not retain a value when fetchFn fails.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	InvalidateKeys(ctx context.Context, keys []string) error
}

// DegradedError is returned by engines, next to a freshly fetched value, when
// the cache backend failed but the source did not.
type DegradedError = cacheinfra.DegradedError

// GetOrFetch is a type-safe wrapper function that provides generic support for CacheService.
// On a *DegradedError the fetched value is returned together with the error.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T
	result, err := service.GetOrFetch(ctx, key, fetchFn)
	var degraded *DegradedError
	if err != nil && !errors.As(err, &degraded) {
		return zero, err
	}
	if result == nil {
		return zero, err
	}
	value, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T for key %s", ErrInvalidResultType, result, key)
	}
	return value, err
}

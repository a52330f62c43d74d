package cache

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
)

// Cache applies the namespace policy on top of a CacheService engine. Every
// key it derives is prefixed with its namespace, so evicting a namespace
// removes every entry cached for that entity family and nothing else.
type Cache struct {
	service    CacheService
	serializer KeySerializer
	logger     logrus.FieldLogger
	stats      *xsync.MapOf[string, *namespaceStats]
}

type namespaceStats struct {
	hits      *xsync.Counter
	misses    *xsync.Counter
	evictions *xsync.Counter
}

// Stats is a point-in-time snapshot of the counters of one namespace.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// New builds a Cache. A nil serializer selects the default one and a nil
// logger discards output.
func New(service CacheService, serializer KeySerializer, logger logrus.FieldLogger) *Cache {
	if serializer == nil {
		serializer = NewDefaultKeySerializer()
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Cache{
		service:    service,
		serializer: serializer,
		logger:     logger,
		stats:      xsync.NewMapOf[string, *namespaceStats](),
	}
}

// Key derives the cache key for op in namespace. Identical arguments always
// derive the same key and any differing argument derives a different one.
func (c *Cache) Key(namespace, op string, args ...any) string {
	return namespace + KeySeparator + c.serializer.SerializeKey(op, args...)
}

// Load returns the value cached under key, calling loader on a miss and
// caching its result. A loader error is returned as is and nothing is cached.
// A failing cache backend is logged and the loaded value served.
func Load[T any](ctx context.Context, c *Cache, namespace, key string, loader FetchFn[T]) (T, error) {
	missed := false
	value, err := GetOrFetch(ctx, c.service, key, func(ctx context.Context) (T, error) {
		missed = true
		return loader(ctx)
	})

	var degraded *DegradedError
	if errors.As(err, &degraded) {
		c.logger.WithFields(logrus.Fields{
			"namespace": namespace,
			"key_fp":    Fingerprint(key),
			"op":        degraded.Op,
		}).WithError(degraded.Err).Warn("cache backend failed, served from source")
		err = nil
	}

	stats := c.namespace(namespace)
	if missed {
		stats.misses.Inc()
	} else if err == nil {
		stats.hits.Inc()
	}

	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"namespace": namespace,
			"key_fp":    Fingerprint(key),
		}).WithError(err).Debug("cache load failed")
	}
	return value, err
}

// Evict removes every entry of each namespace. All namespaces are attempted
// even if one fails.
func (c *Cache) Evict(ctx context.Context, namespaces ...string) error {
	var errs []error
	for _, ns := range namespaces {
		if err := c.service.DeleteByPrefix(ctx, ns+KeySeparator); err != nil {
			errs = append(errs, fmt.Errorf("evict %s: %w", ns, err))
			continue
		}
		c.namespace(ns).evictions.Inc()
		c.logger.WithField("namespace", ns).Debug("cache namespace evicted")
	}
	return errors.Join(errs...)
}

// Stats returns the counters recorded for namespace.
func (c *Cache) Stats(namespace string) Stats {
	s, ok := c.stats.Load(namespace)
	if !ok {
		return Stats{}
	}
	return Stats{
		Hits:      s.hits.Value(),
		Misses:    s.misses.Value(),
		Evictions: s.evictions.Value(),
	}
}

func (c *Cache) namespace(ns string) *namespaceStats {
	s, _ := c.stats.LoadOrCompute(ns, func() *namespaceStats {
		return &namespaceStats{
			hits:      xsync.NewCounter(),
			misses:    xsync.NewCounter(),
			evictions: xsync.NewCounter(),
		}
	})
	return s
}

// Fingerprint returns a short stable digest of key, used in logs in place of
// keys that may carry user search text.
func Fingerprint(key string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(key))
}

package cache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// prefixFailingService fails DeleteByPrefix for one prefix.
type prefixFailingService struct {
	CacheService
	failPrefix string
	deleted    []string
}

func (s *prefixFailingService) DeleteByPrefix(ctx context.Context, prefix string) error {
	if prefix == s.failPrefix {
		return errors.New("backend down")
	}
	s.deleted = append(s.deleted, prefix)
	return s.CacheService.DeleteByPrefix(ctx, prefix)
}

// unreachableBackend always loads from the source and reports the backend as
// failed.
type unreachableBackend struct {
	CacheService
}

func (s unreachableBackend) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	value, err := fetchFn.(FetchFn[int])(ctx)
	if err != nil {
		return nil, err
	}
	return value, &DegradedError{Op: "get", Err: errors.New("connection refused")}
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	service, err := NewCacheService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create cache service: %v", err)
	}
	return New(service, nil, nil)
}

func TestCache_Key(t *testing.T) {
	c := newTestCache(t)

	if got, want := c.Key("categories", "all", 10, 0), `categories::all::10::0`; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
	if got, want := c.Key("orders", "count"), "orders::count"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
	if c.Key("products", "all", 10, 0) == c.Key("products", "all", 0, 10) {
		t.Error("limit/offset swap must derive distinct keys")
	}
	if c.Key("products", "all", 10, 0) != c.Key("products", "all", 10, 0) {
		t.Error("identical arguments must derive identical keys")
	}
}

func TestLoad_ReadThrough(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := c.Key("categories", "all", 10, 0)

	calls := 0
	loader := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"Books"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Load(ctx, c, "categories", key, loader)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got) != 1 || got[0] != "Books" {
			t.Errorf("unexpected value %v", got)
		}
	}

	if calls != 1 {
		t.Errorf("expected loader to run once, ran %d times", calls)
	}
	if s := c.Stats("categories"); s.Misses != 1 || s.Hits != 2 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestLoad_ErrorsAreNotCached(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := c.Key("products", "product", "x")

	calls := 0
	failing := func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("query failed")
	}

	for i := 0; i < 2; i++ {
		if _, err := Load(ctx, c, "products", key, failing); err == nil {
			t.Fatal("expected error")
		}
	}
	if calls != 2 {
		t.Errorf("expected both loads to reach the loader, got %d", calls)
	}
	if s := c.Stats("products"); s.Hits != 0 {
		t.Errorf("failed loads must not count as hits: %+v", s)
	}
}

func TestCache_EvictIsNamespaceWide(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	keys := map[string][]string{
		"orders":      {c.Key("orders", "all", 10, 0), c.Key("orders", "count"), c.Key("orders", "customer", "abc", 0, 0)},
		"order_items": {c.Key("order_items", "order", "abc")},
	}
	for ns, nsKeys := range keys {
		for _, key := range nsKeys {
			if _, err := Load(ctx, c, ns, key, func(ctx context.Context) (string, error) { return "v", nil }); err != nil {
				t.Fatal(err)
			}
		}
	}

	if err := c.Evict(ctx, "orders"); err != nil {
		t.Fatalf("Evict() error = %v", err)
	}

	for ns, nsKeys := range keys {
		for _, key := range nsKeys {
			refetched := false
			if _, err := Load(ctx, c, ns, key, func(ctx context.Context) (string, error) {
				refetched = true
				return "v", nil
			}); err != nil {
				t.Fatal(err)
			}
			if ns == "orders" && !refetched {
				t.Errorf("expected %s to miss after eviction", key)
			}
			if ns == "order_items" && refetched {
				t.Errorf("expected %s to survive eviction of orders", key)
			}
		}
	}

	if s := c.Stats("orders"); s.Evictions != 1 {
		t.Errorf("expected one eviction, got %+v", s)
	}
}

func TestCache_EvictAttemptsEveryNamespace(t *testing.T) {
	base, err := NewCacheService(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	service := &prefixFailingService{CacheService: base, failPrefix: "orders::"}
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	c := New(service, nil, logger)

	err = c.Evict(context.Background(), "orders", "order_items")
	if err == nil || !strings.Contains(err.Error(), "evict orders") {
		t.Errorf("expected eviction error naming orders, got %v", err)
	}
	if len(service.deleted) != 1 || service.deleted[0] != "order_items::" {
		t.Errorf("expected order_items to still be evicted, got %v", service.deleted)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Data["namespace"] != "order_items" {
		t.Error("expected eviction to be logged with its namespace")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(`products::search::"secret query"`)
	b := Fingerprint(`products::search::"other"`)

	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %q", a)
	}
	if a == b {
		t.Error("expected distinct fingerprints")
	}
	if a != Fingerprint(`products::search::"secret query"`) {
		t.Error("expected stable fingerprint")
	}
	if strings.Contains(a, "secret") {
		t.Error("fingerprint must not leak the key")
	}
}

func TestStats_UnknownNamespace(t *testing.T) {
	if s := newTestCache(t).Stats("nothing"); s != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", s)
	}
}

func TestLoad_BackendFailureServesSource(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := New(unreachableBackend{}, nil, logger)
	ctx := context.Background()
	key := c.Key("products", "count")

	got, err := Load(ctx, c, "products", key, func(ctx context.Context) (int, error) { return 4, nil })
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != 4 {
		t.Errorf("expected source value 4, got %d", got)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warn entry, got %+v", entry)
	}
	if entry.Data["key_fp"] != Fingerprint(key) {
		t.Errorf("expected key fingerprint in log fields, got %v", entry.Data)
	}
	if s := c.Stats("products"); s.Misses != 1 {
		t.Errorf("expected the degraded read to count as a miss: %+v", s)
	}

	if _, err := Load(ctx, c, "products", key, func(ctx context.Context) (int, error) { return 0, errors.New("query failed") }); err == nil {
		t.Error("source errors must still surface")
	}
}

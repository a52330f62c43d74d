package di

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-commerce-store/cache"
	"github.com/goliatone/go-commerce-store/config"
	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/pkg/testsupport"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load() failed: %v", err)
	}

	db := testsupport.DatabaseConfig(t)
	cfg.Database.Driver = db.Driver
	cfg.Database.DSN = db.DSN
	cfg.Database.MaxOpenConns = db.MaxOpenConns
	cfg.Database.MaxIdleConns = db.MaxIdleConns
	cfg.Database.Migrate = true
	return cfg
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Capacity = 1000
	cfg.Cache.TTL = 5 * time.Minute

	container, err := NewContainer(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.CacheService() == nil {
		t.Error("Container should have a non-nil cache service")
	}
	if container.KeySerializer() == nil {
		t.Error("Container should have a non-nil key serializer")
	}
	if container.Cache() == nil {
		t.Error("Container should have a non-nil cache")
	}
	if container.DB() == nil {
		t.Error("Container should have a non-nil database")
	}

	stored := container.CacheConfig()
	if stored.Capacity != 1000 {
		t.Errorf("Expected capacity %d, got %d", 1000, stored.Capacity)
	}
	if stored.TTL != 5*time.Minute {
		t.Errorf("Expected TTL %v, got %v", 5*time.Minute, stored.TTL)
	}

	// the schema was migrated, so an empty table can be counted
	total, err := container.Stores().Categories.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() on migrated database failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected empty categories table, got %d rows", total)
	}
}

func TestNewContainer_InvalidCacheConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Capacity = 0

	if _, err := NewContainer(context.Background(), cfg, nil); err == nil {
		t.Error("NewContainer() should fail with invalid cache config")
	}
}

func TestNewContainer_InvalidDatabaseConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	if _, err := NewContainer(context.Background(), cfg, nil); err == nil {
		t.Error("NewContainer() should fail with an unsupported driver")
	}
}

func TestNewContainerWithDB_InvalidConfig(t *testing.T) {
	db := testsupport.OpenDB(t)

	invalid := cache.Config{
		Capacity:           0,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
	if _, err := NewContainerWithDB(db, invalid, nil); err == nil {
		t.Error("NewContainerWithDB() should fail with invalid config")
	}
}

func TestContainerSingletonBehavior(t *testing.T) {
	db := testsupport.OpenDB(t)
	container, err := NewContainerWithDB(db, cache.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewContainerWithDB() failed: %v", err)
	}

	if container.CacheService() != container.CacheService() {
		t.Error("CacheService() should return the same instance (singleton behavior)")
	}
	if container.KeySerializer() != container.KeySerializer() {
		t.Error("KeySerializer() should return the same instance (singleton behavior)")
	}
	if container.Cache() != container.Cache() {
		t.Error("Cache() should return the same instance (singleton behavior)")
	}
	if container.Stores().Orders != container.Stores().Orders {
		t.Error("Stores() should return the same store instances")
	}
	if container.Services().Purchase != container.Services().Purchase {
		t.Error("Services() should return the same service instances")
	}
}

func TestContainerWiring(t *testing.T) {
	db := testsupport.OpenDB(t)
	container, err := NewContainerWithDB(db, cache.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewContainerWithDB() failed: %v", err)
	}

	stores := container.Stores()
	if stores.Categories == nil || stores.Products == nil || stores.Orders == nil ||
		stores.Customers == nil || stores.Users == nil || stores.Reviews == nil || stores.Carts == nil {
		t.Fatalf("Stores() has unset members: %+v", stores)
	}

	services := container.Services()
	if services.Purchase == nil || services.Orders == nil || services.Categories == nil ||
		services.Products == nil || services.Customers == nil || services.Carts == nil || services.Reviews == nil {
		t.Fatalf("Services() has unset members: %+v", services)
	}
}

func TestKeySerializerIntegration(t *testing.T) {
	db := testsupport.OpenDB(t)
	container, err := NewContainerWithDB(db, cache.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewContainerWithDB() failed: %v", err)
	}

	keySerializer := container.KeySerializer()

	testCases := []struct {
		name     string
		method   string
		args     []any
		expected string
	}{
		{
			name:     "no args",
			method:   "all",
			args:     []any{},
			expected: "all",
		},
		{
			name:     "single string arg",
			method:   "name",
			args:     []any{"Books"},
			expected: `name::"Books"`,
		},
		{
			name:     "multiple args",
			method:   "search",
			args:     []any{"cable", 10, 0},
			expected: `search::"cable"::10::0`,
		},
		{
			name:     "nil arg",
			method:   "count",
			args:     []any{nil},
			expected: "count::nil",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := keySerializer.SerializeKey(tc.method, tc.args...)
			if result != tc.expected {
				t.Errorf("Expected key %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestCacheNamespaces(t *testing.T) {
	db := testsupport.OpenDB(t)
	container, err := NewContainerWithDB(db, cache.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewContainerWithDB() failed: %v", err)
	}

	key := container.Cache().Key(cache.NamespaceOf[model.Category](), "all", 10, 0)
	expected := "categories::all::10::0"
	if key != expected {
		t.Errorf("Expected key %q, got %q", expected, key)
	}
}

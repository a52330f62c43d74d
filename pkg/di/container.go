// Package di wires the stores and services of the commerce layer from a
// configuration. The Container owns the database pool and the cache engine
// and hands out singletons.
package di

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/accessor"
	"github.com/goliatone/go-commerce-store/cache"
	"github.com/goliatone/go-commerce-store/config"
	"github.com/goliatone/go-commerce-store/dbconn"
	"github.com/goliatone/go-commerce-store/service"
	"github.com/goliatone/go-commerce-store/store"
)

// Stores groups the entity stores.
type Stores struct {
	Categories *store.CategoryStore
	Products   *store.ProductStore
	Orders     *store.OrdersStore
	Customers  *store.CustomerStore
	Users      *store.UserStore
	Reviews    *store.ReviewStore
	Carts      *store.CartStore
}

// Services groups the workflow services.
type Services struct {
	Purchase   *service.PurchaseService
	Orders     *service.OrderService
	Categories *service.CategoryService
	Products   *service.ProductService
	Customers  *service.CustomerService
	Carts      *service.CartService
	Reviews    *service.ReviewService
}

// Container provides dependency injection for the commerce layer.
type Container struct {
	db            *bun.DB
	pool          *dbconn.Pool
	cacheConfig   cache.Config
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	cache         *cache.Cache
	logger        logrus.FieldLogger

	stores   Stores
	services Services
}

// NewContainer opens the database described by cfg, applies the migrations
// when cfg.Database.Migrate is set and wires everything on top of it.
func NewContainer(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Container, error) {
	if logger == nil {
		logger = discardLogger()
	}

	db, err := dbconn.Open(cfg.Database.DBConn(), dbconn.NewLogHook(logger.WithField("component", "sql")))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if cfg.Database.Migrate {
		applied, err := dbconn.Migrate(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		logger.WithField("applied", applied).Info("database migrations applied")
	}

	c, err := NewContainerWithDB(db, cfg.Cache.CacheService(), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// NewContainerWithDB wires the stores and services over an open, migrated
// database.
func NewContainerWithDB(db *bun.DB, cacheConfig cache.Config, logger logrus.FieldLogger) (*Container, error) {
	if logger == nil {
		logger = discardLogger()
	}

	cacheService, err := cache.NewCacheService(cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	keySerializer := cache.NewDefaultKeySerializer()

	c := &Container{
		db:            db,
		pool:          dbconn.NewPool(db),
		cacheConfig:   cacheConfig,
		cacheService:  cacheService,
		keySerializer: keySerializer,
		cache:         cache.New(cacheService, keySerializer, logger.WithField("component", "cache")),
		logger:        logger,
	}
	c.wire()
	return c, nil
}

func (c *Container) wire() {
	storeLog := c.logger.WithField("component", "store")
	c.stores = Stores{
		Categories: store.NewCategoryStore(c.pool, accessor.NewCategoryAccessor(c.db), c.cache, storeLog),
		Products:   store.NewProductStore(c.pool, accessor.NewProductAccessor(c.db), c.cache, storeLog),
		Orders:     store.NewOrdersStore(c.pool, accessor.NewOrdersAccessor(c.db), accessor.NewOrderItemAccessor(c.db), c.cache, storeLog),
		Customers:  store.NewCustomerStore(c.pool, accessor.NewCustomerAccessor(c.db), c.cache, storeLog),
		Users:      store.NewUserStore(c.pool, accessor.NewUserAccessor(c.db), c.cache, storeLog),
		Reviews:    store.NewReviewStore(c.pool, accessor.NewReviewAccessor(c.db), c.cache, storeLog),
		Carts:      store.NewCartStore(c.pool, accessor.NewCartAccessor(c.db), c.cache, storeLog),
	}

	s := c.stores
	c.services = Services{
		Purchase:   service.NewPurchaseService(s.Customers, s.Products, s.Orders, c.logger),
		Orders:     service.NewOrderService(s.Orders, c.logger),
		Categories: service.NewCategoryService(s.Categories, c.logger),
		Products:   service.NewProductService(s.Products, s.Categories, s.Reviews, c.logger),
		Customers:  service.NewCustomerService(s.Customers, s.Users, c.logger),
		Carts:      service.NewCartService(s.Carts, s.Customers, s.Products, c.logger),
		Reviews:    service.NewReviewService(s.Reviews, s.Customers, s.Products, s.Orders, c.logger),
	}
}

// CacheService returns the singleton cache engine.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Cache returns the namespaced cache shared by every store.
func (c *Container) Cache() *cache.Cache {
	return c.cache
}

// CacheConfig returns a copy of the cache configuration.
func (c *Container) CacheConfig() cache.Config {
	return c.cacheConfig
}

func (c *Container) DB() *bun.DB {
	return c.db
}

func (c *Container) Stores() Stores {
	return c.stores
}

func (c *Container) Services() Services {
	return c.services
}

// Close releases the database pool.
func (c *Container) Close() error {
	return c.pool.Close()
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

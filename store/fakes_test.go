package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/accessor"
	"github.com/goliatone/go-commerce-store/cache"
	"github.com/goliatone/go-commerce-store/dbconn"
	"github.com/goliatone/go-commerce-store/model"
)

var errBoom = errors.New("boom")

// fakeProvider records the lifecycle of every connection it hands out.
type fakeProvider struct {
	acquireErr  error
	beginErr    error
	commitErr   error
	rollbackErr error

	acquired  int
	released  int
	commits   int
	rollbacks int
}

func (p *fakeProvider) Acquire(ctx context.Context) (dbconn.Conn, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return &fakeConn{p: p}, nil
}

type fakeConn struct {
	p *fakeProvider
}

func (c *fakeConn) BeginTx(ctx context.Context) (dbconn.Tx, error) {
	if c.p.beginErr != nil {
		return nil, c.p.beginErr
	}
	return &fakeTx{p: c.p}, nil
}

func (c *fakeConn) DB() bun.IDB { return nil }

func (c *fakeConn) Close() error {
	c.p.released++
	return nil
}

// fakeTx satisfies bun.IDB through the nil embedded interface; the stub
// accessors never touch it.
type fakeTx struct {
	bun.IDB
	p *fakeProvider
}

func (t *fakeTx) Commit() error {
	if t.p.commitErr != nil {
		return t.p.commitErr
	}
	t.p.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.p.rollbacks++
	return t.p.rollbackErr
}

// failingEvictions fails every DeleteByPrefix call.
type failingEvictions struct {
	cache.CacheService
}

func (f failingEvictions) DeleteByPrefix(ctx context.Context, prefix string) error {
	return errors.New("cache backend down")
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	service, err := cache.NewCacheService(cache.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create cache service: %v", err)
	}
	return cache.New(service, nil, nil)
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

type stubCategories struct {
	accessor.CategoryAccessor

	saveErr   error
	deleteErr error
	findErr   error
	byID      map[uuid.UUID]model.Category
	all       []model.Category

	saves     int
	finds     int
	lists     int
	lastLimit int
}

func (s *stubCategories) Save(ctx context.Context, db bun.IDB, category model.Category) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.byID == nil {
		s.byID = map[uuid.UUID]model.Category{}
	}
	s.byID[category.ID] = category
	return nil
}

func (s *stubCategories) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	return s.deleteErr
}

func (s *stubCategories) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Category, bool, error) {
	s.finds++
	if s.findErr != nil {
		return model.Category{}, false, s.findErr
	}
	c, ok := s.byID[id]
	return c, ok, nil
}

func (s *stubCategories) FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Category, error) {
	s.lists++
	s.lastLimit = limit
	return append([]model.Category(nil), s.all...), nil
}

type stubOrders struct {
	accessor.OrdersAccessor

	saveErr error
	saved   []model.Orders
	lists   int
}

func (s *stubOrders) Save(ctx context.Context, db bun.IDB, order model.Orders) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, order)
	return nil
}

func (s *stubOrders) FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Orders, error) {
	s.lists++
	return append([]model.Orders(nil), s.saved...), nil
}

type stubOrderItems struct {
	accessor.OrderItemAccessor

	failAt  int
	inserts int
	lookups int
}

// SaveBatch stops at the failAt-th item (1 based) when failAt is set.
func (s *stubOrderItems) SaveBatch(ctx context.Context, db bun.IDB, items []model.OrderItem) error {
	for i := range items {
		if s.failAt > 0 && i+1 == s.failAt {
			return errBoom
		}
		s.inserts++
	}
	return nil
}

func (s *stubOrderItems) FindByOrderID(ctx context.Context, db bun.IDB, orderID uuid.UUID) ([]model.OrderItem, error) {
	s.lookups++
	return nil, nil
}

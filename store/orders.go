package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/accessor"
	"github.com/goliatone/go-commerce-store/cache"
	"github.com/goliatone/go-commerce-store/dbconn"
	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// OrdersStore persists orders and their items. It owns the orders and
// order_items namespaces.
type OrdersStore struct {
	base
	orders accessor.OrdersAccessor
	items  accessor.OrderItemAccessor
}

// NewOrdersStore wires an OrdersStore.
func NewOrdersStore(provider dbconn.Provider, orders accessor.OrdersAccessor, items accessor.OrderItemAccessor, c *cache.Cache, logger logrus.FieldLogger) *OrdersStore {
	return &OrdersStore{
		base: newBase(provider, c, logger, storeerr.EntityOrder,
			cache.NamespaceOf[model.Orders](),
			cache.NamespaceOf[model.OrderItem](),
		),
		orders: orders,
		items:  items,
	}
}

func (s *OrdersStore) itemsNamespace() string {
	return s.namespaces[1]
}

// CreateOrder saves the order header and every item in one transaction. If
// any item fails nothing is persisted.
func (s *OrdersStore) CreateOrder(ctx context.Context, order model.Orders, items []model.OrderItem) error {
	return s.mutate(ctx, storeerr.OpCreate, order.ID.String(), func(ctx context.Context, tx bun.IDB) error {
		if err := s.orders.Save(ctx, tx, order); err != nil {
			return err
		}
		return s.items.SaveBatch(ctx, tx, items)
	})
}

// UpdateOrder replaces the order header. Items are immutable.
func (s *OrdersStore) UpdateOrder(ctx context.Context, order model.Orders) error {
	return s.mutate(ctx, storeerr.OpUpdate, order.ID.String(), func(ctx context.Context, tx bun.IDB) error {
		return s.orders.Update(ctx, tx, order)
	})
}

func (s *OrdersStore) Get(ctx context.Context, id uuid.UUID) (model.Orders, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("order", id.String(), id), func(ctx context.Context, db bun.IDB) (model.Orders, bool, error) {
		return s.orders.FindByID(ctx, db, id)
	})
}

func (s *OrdersStore) List(ctx context.Context, limit, offset int) ([]model.Orders, error) {
	return readList(ctx, &s.base, s.search("all", "all", limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Orders, error) {
		return s.orders.FindAll(ctx, db, limit, offset)
	})
}

// CustomerOrders lists the orders of one customer by order date.
func (s *OrdersStore) CustomerOrders(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Orders, error) {
	return readList(ctx, &s.base, s.search("customer", customerID.String(), customerID, limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Orders, error) {
		return s.orders.FindByCustomer(ctx, db, customerID, limit, offset)
	})
}

// Items lists the lines of an order.
func (s *OrdersStore) Items(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	q := s.search("order", orderID.String(), orderID).in(s.itemsNamespace())
	return readList(ctx, &s.base, q, func(ctx context.Context, db bun.IDB) ([]model.OrderItem, error) {
		return s.items.FindByOrderID(ctx, db, orderID)
	})
}

// HasProcessedOrderWithProduct reports whether the customer has an order past
// PENDING that contains the product.
func (s *OrdersStore) HasProcessedOrderWithProduct(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	q := s.search("processed", customerID.String(), customerID, productID)
	return read(ctx, &s.base, q, func(ctx context.Context, db bun.IDB) (bool, error) {
		return s.orders.HasProcessedOrderWithProduct(ctx, db, customerID, productID)
	})
}

func (s *OrdersStore) Count(ctx context.Context) (int, error) {
	return read(ctx, &s.base, s.search("count", "count"), func(ctx context.Context, db bun.IDB) (int, error) {
		return s.orders.Count(ctx, db)
	})
}

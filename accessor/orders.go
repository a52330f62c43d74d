package accessor

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// fulfilledStatuses are the order states that count as a completed purchase.
var fulfilledStatuses = []model.OrderStatus{
	model.OrderStatusProcessed,
	model.OrderStatusShipped,
	model.OrderStatusDelivered,
}

// OrdersAccessor is the record contract for orders.
type OrdersAccessor interface {
	Save(ctx context.Context, db bun.IDB, order model.Orders) error
	Update(ctx context.Context, db bun.IDB, order model.Orders) error
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Orders, bool, error)
	FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Orders, error)
	FindByCustomer(ctx context.Context, db bun.IDB, customerID uuid.UUID, limit, offset int) ([]model.Orders, error)
	Count(ctx context.Context, db bun.IDB) (int, error)
	HasProcessedOrderWithProduct(ctx context.Context, db bun.IDB, customerID, productID uuid.UUID) (bool, error)
}

// OrderItemAccessor is the record contract for order lines.
type OrderItemAccessor interface {
	SaveBatch(ctx context.Context, db bun.IDB, items []model.OrderItem) error
	FindByOrderID(ctx context.Context, db bun.IDB, orderID uuid.UUID) ([]model.OrderItem, error)
}

type ordersAccessor struct {
	table[*model.Orders]
}

// NewOrdersAccessor returns the bun backed OrdersAccessor.
func NewOrdersAccessor(db *bun.DB) OrdersAccessor {
	return &ordersAccessor{
		table: newTable(db, "orders", handlers(func(r *model.Orders) *uuid.UUID { return &r.ID }, "id")),
	}
}

func (a *ordersAccessor) Save(ctx context.Context, db bun.IDB, order model.Orders) error {
	return a.insert(ctx, db, &order)
}

func (a *ordersAccessor) Update(ctx context.Context, db bun.IDB, order model.Orders) error {
	return a.update(ctx, db, &order)
}

func (a *ordersAccessor) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Orders, bool, error) {
	record, ok, err := a.first(ctx, db, whereEq("id", id))
	if err != nil || !ok {
		return model.Orders{}, false, err
	}
	return *record, true, nil
}

func (a *ordersAccessor) FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Orders, error) {
	records, err := a.list(ctx, db, orderBy("order_date", "id"), paginate(limit, offset))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

func (a *ordersAccessor) FindByCustomer(ctx context.Context, db bun.IDB, customerID uuid.UUID, limit, offset int) ([]model.Orders, error) {
	records, err := a.list(ctx, db, whereEq("customer_id", customerID), orderBy("order_date", "id"), paginate(limit, offset))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

func (a *ordersAccessor) Count(ctx context.Context, db bun.IDB) (int, error) {
	return a.count(ctx, db)
}

func (a *ordersAccessor) HasProcessedOrderWithProduct(ctx context.Context, db bun.IDB, customerID, productID uuid.UUID) (bool, error) {
	n, err := db.NewSelect().
		TableExpr("orders AS o").
		Join("JOIN order_items AS oi ON oi.order_id = o.id").
		Where("o.customer_id = ?", customerID).
		Where("oi.product_id = ?", productID).
		Where("o.status IN (?)", bun.In(fulfilledStatuses)).
		Count(ctx)
	if err != nil {
		return false, storeerr.Storage("orders", "select", err)
	}
	return n > 0, nil
}

type orderItemAccessor struct {
	table[*model.OrderItem]
}

// NewOrderItemAccessor returns the bun backed OrderItemAccessor.
func NewOrderItemAccessor(db *bun.DB) OrderItemAccessor {
	return &orderItemAccessor{
		table: newTable(db, "order_items", handlers(func(r *model.OrderItem) *uuid.UUID { return &r.ID }, "id")),
	}
}

// SaveBatch inserts items one by one in slice order and stops at the first
// failure; the caller's transaction decides whether anything persists. Items
// without a line number are numbered by their 1-based position.
func (a *orderItemAccessor) SaveBatch(ctx context.Context, db bun.IDB, items []model.OrderItem) error {
	for i := range items {
		item := items[i]
		if item.LineNo == 0 {
			item.LineNo = i + 1
		}
		if err := a.insert(ctx, db, &item); err != nil {
			return err
		}
	}
	return nil
}

func (a *orderItemAccessor) FindByOrderID(ctx context.Context, db bun.IDB, orderID uuid.UUID) ([]model.OrderItem, error) {
	records, err := a.list(ctx, db, whereEq("order_id", orderID), orderBy("line_no", "id"))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

package accessor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// CartAccessor is the record contract for carts and their items.
type CartAccessor interface {
	SaveCart(ctx context.Context, db bun.IDB, cart model.Cart) error
	FindCartByCustomerID(ctx context.Context, db bun.IDB, customerID uuid.UUID) (model.Cart, bool, error)
	SaveItem(ctx context.Context, db bun.IDB, item model.CartItem) error
	FindItem(ctx context.Context, db bun.IDB, cartID, productID uuid.UUID) (model.CartItem, bool, error)
	FindItemByID(ctx context.Context, db bun.IDB, itemID uuid.UUID) (model.CartItem, bool, error)
	FindItems(ctx context.Context, db bun.IDB, cartID uuid.UUID) ([]model.CartItem, error)
	UpdateItemQuantity(ctx context.Context, db bun.IDB, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, db bun.IDB, itemID uuid.UUID) error
}

type cartAccessor struct {
	carts table[*model.Cart]
	items table[*model.CartItem]
}

// NewCartAccessor returns the bun backed CartAccessor.
func NewCartAccessor(db *bun.DB) CartAccessor {
	return &cartAccessor{
		carts: newTable(db, "carts", handlers(func(r *model.Cart) *uuid.UUID { return &r.ID }, "customer_id")),
		items: newTable(db, "cart_items", handlers(func(r *model.CartItem) *uuid.UUID { return &r.ID }, "id")),
	}
}

func (a *cartAccessor) SaveCart(ctx context.Context, db bun.IDB, cart model.Cart) error {
	return a.carts.insert(ctx, db, &cart)
}

func (a *cartAccessor) FindCartByCustomerID(ctx context.Context, db bun.IDB, customerID uuid.UUID) (model.Cart, bool, error) {
	record, ok, err := a.carts.first(ctx, db, whereEq("customer_id", customerID))
	if err != nil || !ok {
		return model.Cart{}, false, err
	}
	return *record, true, nil
}

func (a *cartAccessor) SaveItem(ctx context.Context, db bun.IDB, item model.CartItem) error {
	return a.items.insert(ctx, db, &item)
}

func (a *cartAccessor) FindItem(ctx context.Context, db bun.IDB, cartID, productID uuid.UUID) (model.CartItem, bool, error) {
	record, ok, err := a.items.first(ctx, db, whereEq("cart_id", cartID), whereEq("product_id", productID))
	if err != nil || !ok {
		return model.CartItem{}, false, err
	}
	return *record, true, nil
}

func (a *cartAccessor) FindItemByID(ctx context.Context, db bun.IDB, itemID uuid.UUID) (model.CartItem, bool, error) {
	record, ok, err := a.items.first(ctx, db, whereEq("id", itemID))
	if err != nil || !ok {
		return model.CartItem{}, false, err
	}
	return *record, true, nil
}

func (a *cartAccessor) FindItems(ctx context.Context, db bun.IDB, cartID uuid.UUID) ([]model.CartItem, error) {
	records, err := a.items.list(ctx, db, whereEq("cart_id", cartID), orderBy("added_at", "id"))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

func (a *cartAccessor) UpdateItemQuantity(ctx context.Context, db bun.IDB, itemID uuid.UUID, quantity int) error {
	_, err := db.NewUpdate().
		Model((*model.CartItem)(nil)).
		Set("quantity = ?", quantity).
		Set("added_at = ?", time.Now().UTC()).
		Where("? = ?", bun.Ident("id"), itemID).
		Exec(ctx)
	return storeerr.Storage("cart_items", "update", err)
}

func (a *cartAccessor) DeleteItem(ctx context.Context, db bun.IDB, itemID uuid.UUID) error {
	return a.items.deleteWhere(ctx, db, deleteEq("id", itemID))
}

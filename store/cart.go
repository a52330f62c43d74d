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

// CartStore persists carts and their items. It owns the carts and cart_items
// namespaces.
type CartStore struct {
	base
	carts accessor.CartAccessor
}

// NewCartStore wires a CartStore.
func NewCartStore(provider dbconn.Provider, carts accessor.CartAccessor, c *cache.Cache, logger logrus.FieldLogger) *CartStore {
	return &CartStore{
		base: newBase(provider, c, logger, storeerr.EntityCart,
			cache.NamespaceOf[model.Cart](),
			cache.NamespaceOf[model.CartItem](),
		),
		carts: carts,
	}
}

func (s *CartStore) itemsNamespace() string {
	return s.namespaces[1]
}

func (s *CartStore) CreateCart(ctx context.Context, cart model.Cart) error {
	return s.mutate(ctx, storeerr.OpCreate, cart.CustomerID.String(), func(ctx context.Context, tx bun.IDB) error {
		return s.carts.SaveCart(ctx, tx, cart)
	})
}

func (s *CartStore) AddItem(ctx context.Context, item model.CartItem) error {
	return s.mutate(ctx, storeerr.OpCreate, item.ProductID.String(), func(ctx context.Context, tx bun.IDB) error {
		if err := s.carts.SaveItem(ctx, tx, item); err != nil {
			return storeerr.Operation(storeerr.EntityCartItem, storeerr.OpCreate, item.ProductID.String(), err)
		}
		return nil
	})
}

func (s *CartStore) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return s.mutate(ctx, storeerr.OpUpdate, itemID.String(), func(ctx context.Context, tx bun.IDB) error {
		if err := s.carts.UpdateItemQuantity(ctx, tx, itemID, quantity); err != nil {
			return storeerr.Operation(storeerr.EntityCartItem, storeerr.OpUpdate, itemID.String(), err)
		}
		return nil
	})
}

func (s *CartStore) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	return s.mutate(ctx, storeerr.OpDelete, itemID.String(), func(ctx context.Context, tx bun.IDB) error {
		if err := s.carts.DeleteItem(ctx, tx, itemID); err != nil {
			return storeerr.Operation(storeerr.EntityCartItem, storeerr.OpDelete, itemID.String(), err)
		}
		return nil
	})
}

func (s *CartStore) ByCustomer(ctx context.Context, customerID uuid.UUID) (model.Cart, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("customer", customerID.String(), customerID), func(ctx context.Context, db bun.IDB) (model.Cart, bool, error) {
		return s.carts.FindCartByCustomerID(ctx, db, customerID)
	})
}

// Item returns the line for productID in the cart, if any.
func (s *CartStore) Item(ctx context.Context, cartID, productID uuid.UUID) (model.CartItem, bool, error) {
	q := s.retrieve("item", productID.String(), cartID, productID).in(s.itemsNamespace())
	return readOne(ctx, &s.base, q, func(ctx context.Context, db bun.IDB) (model.CartItem, bool, error) {
		return s.carts.FindItem(ctx, db, cartID, productID)
	})
}

func (s *CartStore) GetItem(ctx context.Context, itemID uuid.UUID) (model.CartItem, bool, error) {
	q := s.retrieve("item_id", itemID.String(), itemID).in(s.itemsNamespace())
	return readOne(ctx, &s.base, q, func(ctx context.Context, db bun.IDB) (model.CartItem, bool, error) {
		return s.carts.FindItemByID(ctx, db, itemID)
	})
}

func (s *CartStore) Items(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	q := s.search("items", cartID.String(), cartID).in(s.itemsNamespace())
	return readList(ctx, &s.base, q, func(ctx context.Context, db bun.IDB) ([]model.CartItem, error) {
		return s.carts.FindItems(ctx, db, cartID)
	})
}

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/store"
)

// The contracts below are the subsets of the entity stores each service
// depends on. The store package types satisfy them.

type CategoryStore interface {
	Create(ctx context.Context, category model.Category) error
	Update(ctx context.Context, category model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (model.Category, bool, error)
	GetByName(ctx context.Context, name string) (model.Category, bool, error)
	Search(ctx context.Context, query string, limit, offset int) ([]model.Category, error)
	List(ctx context.Context, limit, offset int) ([]model.Category, error)
	Count(ctx context.Context) (int, error)
}

type ProductStore interface {
	Create(ctx context.Context, product model.Product) error
	Update(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStocks(ctx context.Context, updates []model.StockUpdate) error
	Get(ctx context.Context, id uuid.UUID) (model.Product, bool, error)
	List(ctx context.Context, limit, offset int) ([]model.Product, error)
	Search(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error)
	Count(ctx context.Context, filter model.ProductFilter) (int, error)
}

type OrdersStore interface {
	CreateOrder(ctx context.Context, order model.Orders, items []model.OrderItem) error
	UpdateOrder(ctx context.Context, order model.Orders) error
	Get(ctx context.Context, id uuid.UUID) (model.Orders, bool, error)
	CustomerOrders(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Orders, error)
	Items(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)
	HasProcessedOrderWithProduct(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
}

type CustomerStore interface {
	Create(ctx context.Context, customer model.Customer) error
	Update(ctx context.Context, customer model.Customer) error
	Get(ctx context.Context, id uuid.UUID) (model.Customer, bool, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (model.Customer, bool, error)
	List(ctx context.Context, limit, offset int) ([]model.Customer, error)
	Search(ctx context.Context, query string, limit, offset int) ([]model.Customer, error)
}

type UserStore interface {
	Create(ctx context.Context, user model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, bool, error)
}

type ReviewStore interface {
	Create(ctx context.Context, review model.Review) error
	ByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]model.Review, error)
}

type CartStore interface {
	CreateCart(ctx context.Context, cart model.Cart) error
	AddItem(ctx context.Context, item model.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ByCustomer(ctx context.Context, customerID uuid.UUID) (model.Cart, bool, error)
	Item(ctx context.Context, cartID, productID uuid.UUID) (model.CartItem, bool, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (model.CartItem, bool, error)
	Items(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error)
}

var (
	_ CategoryStore = (*store.CategoryStore)(nil)
	_ ProductStore  = (*store.ProductStore)(nil)
	_ OrdersStore   = (*store.OrdersStore)(nil)
	_ CustomerStore = (*store.CustomerStore)(nil)
	_ UserStore     = (*store.UserStore)(nil)
	_ ReviewStore   = (*store.ReviewStore)(nil)
	_ CartStore     = (*store.CartStore)(nil)
)

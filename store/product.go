package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/accessor"
	"github.com/goliatone/go-commerce-store/cache"
	"github.com/goliatone/go-commerce-store/dbconn"
	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// ProductStore persists products in the products namespace.
type ProductStore struct {
	base
	products accessor.ProductAccessor
}

// NewProductStore wires a ProductStore.
func NewProductStore(provider dbconn.Provider, products accessor.ProductAccessor, c *cache.Cache, logger logrus.FieldLogger) *ProductStore {
	return &ProductStore{
		base:     newBase(provider, c, logger, storeerr.EntityProduct, cache.NamespaceOf[model.Product]()),
		products: products,
	}
}

func (s *ProductStore) Create(ctx context.Context, product model.Product) error {
	return s.mutate(ctx, storeerr.OpCreate, product.Name, func(ctx context.Context, tx bun.IDB) error {
		return s.products.Save(ctx, tx, product)
	})
}

// Update replaces the stored row with product.
func (s *ProductStore) Update(ctx context.Context, product model.Product) error {
	return s.mutate(ctx, storeerr.OpUpdate, product.ID.String(), func(ctx context.Context, tx bun.IDB) error {
		return s.products.Update(ctx, tx, product)
	})
}

func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, storeerr.OpDelete, id.String(), func(ctx context.Context, tx bun.IDB) error {
		return s.products.DeleteByID(ctx, tx, id)
	})
}

// UpdateStocks applies every update in one transaction. Either all stock
// levels change or none do.
func (s *ProductStore) UpdateStocks(ctx context.Context, updates []model.StockUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	identifier := fmt.Sprintf("%d products", len(updates))
	return s.mutate(ctx, storeerr.OpUpdate, identifier, func(ctx context.Context, tx bun.IDB) error {
		for _, u := range updates {
			if err := s.products.UpdateStock(ctx, tx, u.ProductID, u.Stock); err != nil {
				return storeerr.Operation(storeerr.EntityProduct, storeerr.OpUpdate, u.ProductID.String(), err)
			}
		}
		return nil
	})
}

func (s *ProductStore) Get(ctx context.Context, id uuid.UUID) (model.Product, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("product", id.String(), id), func(ctx context.Context, db bun.IDB) (model.Product, bool, error) {
		return s.products.FindByID(ctx, db, id)
	})
}

func (s *ProductStore) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	return readList(ctx, &s.base, s.search("all", "all", limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Product, error) {
		return s.products.FindAll(ctx, db, limit, offset)
	})
}

// Search returns the products matching every set criterion of filter.
func (s *ProductStore) Search(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	return readList(ctx, &s.base, s.search("search", "filter", filter, limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Product, error) {
		return s.products.FindFiltered(ctx, db, filter, limit, offset)
	})
}

// Count returns the number of products matching filter.
func (s *ProductStore) Count(ctx context.Context, filter model.ProductFilter) (int, error) {
	return read(ctx, &s.base, s.search("count", "filter", filter), func(ctx context.Context, db bun.IDB) (int, error) {
		return s.products.CountFiltered(ctx, db, filter)
	})
}

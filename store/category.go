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

// CategoryStore persists categories in the categories namespace.
type CategoryStore struct {
	base
	categories accessor.CategoryAccessor
}

// NewCategoryStore wires a CategoryStore.
func NewCategoryStore(provider dbconn.Provider, categories accessor.CategoryAccessor, c *cache.Cache, logger logrus.FieldLogger) *CategoryStore {
	return &CategoryStore{
		base:       newBase(provider, c, logger, storeerr.EntityCategory, cache.NamespaceOf[model.Category]()),
		categories: categories,
	}
}

func (s *CategoryStore) Create(ctx context.Context, category model.Category) error {
	return s.mutate(ctx, storeerr.OpCreate, category.Name, func(ctx context.Context, tx bun.IDB) error {
		return s.categories.Save(ctx, tx, category)
	})
}

func (s *CategoryStore) Update(ctx context.Context, category model.Category) error {
	return s.mutate(ctx, storeerr.OpUpdate, category.ID.String(), func(ctx context.Context, tx bun.IDB) error {
		return s.categories.Update(ctx, tx, category)
	})
}

// Delete removes the category. It fails while products still reference it.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, storeerr.OpDelete, id.String(), func(ctx context.Context, tx bun.IDB) error {
		return s.categories.Delete(ctx, tx, id)
	})
}

func (s *CategoryStore) Get(ctx context.Context, id uuid.UUID) (model.Category, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("category", id.String(), id), func(ctx context.Context, db bun.IDB) (model.Category, bool, error) {
		return s.categories.FindByID(ctx, db, id)
	})
}

func (s *CategoryStore) GetByName(ctx context.Context, name string) (model.Category, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("name", name, name), func(ctx context.Context, db bun.IDB) (model.Category, bool, error) {
		return s.categories.FindByName(ctx, db, name)
	})
}

// Search matches query as a case-insensitive substring of the name.
func (s *CategoryStore) Search(ctx context.Context, query string, limit, offset int) ([]model.Category, error) {
	return readList(ctx, &s.base, s.search("search", query, query, limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Category, error) {
		return s.categories.SearchByName(ctx, db, query, limit, offset)
	})
}

func (s *CategoryStore) List(ctx context.Context, limit, offset int) ([]model.Category, error) {
	return readList(ctx, &s.base, s.search("all", "all", limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Category, error) {
		return s.categories.FindAll(ctx, db, limit, offset)
	})
}

func (s *CategoryStore) Count(ctx context.Context) (int, error) {
	return read(ctx, &s.base, s.search("count", "count"), func(ctx context.Context, db bun.IDB) (int, error) {
		return s.categories.Count(ctx, db)
	})
}

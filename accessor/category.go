package accessor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// ErrCategoryInUse is returned when deleting a category that products still
// reference.
var ErrCategoryInUse = errors.New("category is referenced by products")

// CategoryAccessor is the record contract for categories.
type CategoryAccessor interface {
	Save(ctx context.Context, db bun.IDB, category model.Category) error
	Update(ctx context.Context, db bun.IDB, category model.Category) error
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Category, bool, error)
	FindByName(ctx context.Context, db bun.IDB, name string) (model.Category, bool, error)
	SearchByName(ctx context.Context, db bun.IDB, query string, limit, offset int) ([]model.Category, error)
	FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Category, error)
	Count(ctx context.Context, db bun.IDB) (int, error)
}

type categoryAccessor struct {
	table[*model.Category]
}

// NewCategoryAccessor returns the bun backed CategoryAccessor.
func NewCategoryAccessor(db *bun.DB) CategoryAccessor {
	return &categoryAccessor{
		table: newTable(db, "categories", handlers(func(r *model.Category) *uuid.UUID { return &r.ID }, "name")),
	}
}

func (a *categoryAccessor) Save(ctx context.Context, db bun.IDB, category model.Category) error {
	return a.insert(ctx, db, &category)
}

func (a *categoryAccessor) Update(ctx context.Context, db bun.IDB, category model.Category) error {
	return a.update(ctx, db, &category)
}

// Delete refuses to remove a category still referenced by products and
// reports that as a typed deletion failure.
func (a *categoryAccessor) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	inUse, err := db.NewSelect().
		Model((*model.Product)(nil)).
		Where("? = ?", bun.Ident("category_id"), id).
		Count(ctx)
	if err != nil {
		return storeerr.Storage("products", "count", err)
	}
	if inUse > 0 {
		return storeerr.Operation(storeerr.EntityCategory, storeerr.OpDelete, id.String(), ErrCategoryInUse)
	}
	return a.deleteWhere(ctx, db, deleteEq("id", id))
}

func (a *categoryAccessor) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Category, bool, error) {
	record, ok, err := a.first(ctx, db, whereEq("id", id))
	if err != nil || !ok {
		return model.Category{}, false, err
	}
	return *record, true, nil
}

func (a *categoryAccessor) FindByName(ctx context.Context, db bun.IDB, name string) (model.Category, bool, error) {
	record, ok, err := a.first(ctx, db, whereEq("name", name))
	if err != nil || !ok {
		return model.Category{}, false, err
	}
	return *record, true, nil
}

func (a *categoryAccessor) SearchByName(ctx context.Context, db bun.IDB, query string, limit, offset int) ([]model.Category, error) {
	records, err := a.list(ctx, db, whereContains(query, "name"), orderBy("name", "id"), paginate(limit, offset))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

func (a *categoryAccessor) FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Category, error) {
	records, err := a.list(ctx, db, orderBy("name", "id"), paginate(limit, offset))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

func (a *categoryAccessor) Count(ctx context.Context, db bun.IDB) (int, error) {
	return a.count(ctx, db)
}

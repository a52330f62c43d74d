package accessor

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// ProductAccessor is the record contract for products.
type ProductAccessor interface {
	Save(ctx context.Context, db bun.IDB, product model.Product) error
	Update(ctx context.Context, db bun.IDB, product model.Product) error
	DeleteByID(ctx context.Context, db bun.IDB, id uuid.UUID) error
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Product, bool, error)
	FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Product, error)
	FindFiltered(ctx context.Context, db bun.IDB, filter model.ProductFilter, limit, offset int) ([]model.Product, error)
	CountFiltered(ctx context.Context, db bun.IDB, filter model.ProductFilter) (int, error)
	UpdateStock(ctx context.Context, db bun.IDB, id uuid.UUID, stock int) error
}

type productAccessor struct {
	table[*model.Product]
}

// NewProductAccessor returns the bun backed ProductAccessor.
func NewProductAccessor(db *bun.DB) ProductAccessor {
	return &productAccessor{
		table: newTable(db, "products", handlers(func(r *model.Product) *uuid.UUID { return &r.ID }, "name")),
	}
}

func (a *productAccessor) Save(ctx context.Context, db bun.IDB, product model.Product) error {
	return a.insert(ctx, db, &product)
}

func (a *productAccessor) Update(ctx context.Context, db bun.IDB, product model.Product) error {
	return a.update(ctx, db, &product)
}

func (a *productAccessor) DeleteByID(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	return a.deleteWhere(ctx, db, deleteEq("id", id))
}

func (a *productAccessor) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Product, bool, error) {
	record, ok, err := a.first(ctx, db, whereEq("id", id))
	if err != nil || !ok {
		return model.Product{}, false, err
	}
	return *record, true, nil
}

func (a *productAccessor) FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Product, error) {
	records, err := a.list(ctx, db, orderBy("name", "id"), paginate(limit, offset))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

func (a *productAccessor) FindFiltered(ctx context.Context, db bun.IDB, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	criteria := append(productFilterCriteria(filter), orderBy("name", "id"), paginate(limit, offset))
	records, err := a.list(ctx, db, criteria...)
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

func (a *productAccessor) CountFiltered(ctx context.Context, db bun.IDB, filter model.ProductFilter) (int, error) {
	return a.count(ctx, db, productFilterCriteria(filter)...)
}

func (a *productAccessor) UpdateStock(ctx context.Context, db bun.IDB, id uuid.UUID, stock int) error {
	_, err := db.NewUpdate().
		Model((*model.Product)(nil)).
		Set("? = ?", bun.Ident("stock_quantity"), stock).
		Set("? = ?", bun.Ident("updated_at"), time.Now().UTC()).
		Where("? = ?", bun.Ident("id"), id).
		Exec(ctx)
	return storeerr.Storage("products", "update stock", err)
}

func productFilterCriteria(filter model.ProductFilter) []repository.SelectCriteria {
	var criteria []repository.SelectCriteria
	if filter.Name != "" {
		criteria = append(criteria, whereContains(filter.Name, "name"))
	}
	if filter.CategoryID != nil {
		criteria = append(criteria, whereEq("category_id", *filter.CategoryID))
	}
	if filter.MinPrice != nil {
		lo := *filter.MinPrice
		criteria = append(criteria, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("? >= ?", bun.Ident("price"), lo)
		})
	}
	if filter.MaxPrice != nil {
		hi := *filter.MaxPrice
		criteria = append(criteria, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("? <= ?", bun.Ident("price"), hi)
		})
	}
	if filter.InStockOnly {
		criteria = append(criteria, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("? > 0", bun.Ident("stock_quantity"))
		})
	}
	return criteria
}

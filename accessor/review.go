package accessor

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/model"
)

// ReviewAccessor is the record contract for product reviews.
type ReviewAccessor interface {
	Save(ctx context.Context, db bun.IDB, review model.Review) error
	FindByProduct(ctx context.Context, db bun.IDB, productID uuid.UUID, limit, offset int) ([]model.Review, error)
}

type reviewAccessor struct {
	table[*model.Review]
}

// NewReviewAccessor returns the bun backed ReviewAccessor.
func NewReviewAccessor(db *bun.DB) ReviewAccessor {
	return &reviewAccessor{
		table: newTable(db, "reviews", handlers(func(r *model.Review) *uuid.UUID { return &r.ID }, "id")),
	}
}

func (a *reviewAccessor) Save(ctx context.Context, db bun.IDB, review model.Review) error {
	return a.insert(ctx, db, &review)
}

func (a *reviewAccessor) FindByProduct(ctx context.Context, db bun.IDB, productID uuid.UUID, limit, offset int) ([]model.Review, error) {
	records, err := a.list(ctx, db, whereEq("product_id", productID), orderBy("created_at", "id"), paginate(limit, offset))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

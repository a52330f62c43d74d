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

// ReviewStore persists product reviews in the reviews namespace.
type ReviewStore struct {
	base
	reviews accessor.ReviewAccessor
}

// NewReviewStore wires a ReviewStore.
func NewReviewStore(provider dbconn.Provider, reviews accessor.ReviewAccessor, c *cache.Cache, logger logrus.FieldLogger) *ReviewStore {
	return &ReviewStore{
		base:    newBase(provider, c, logger, storeerr.EntityReview, cache.NamespaceOf[model.Review]()),
		reviews: reviews,
	}
}

func (s *ReviewStore) Create(ctx context.Context, review model.Review) error {
	return s.mutate(ctx, storeerr.OpCreate, review.ProductID.String(), func(ctx context.Context, tx bun.IDB) error {
		return s.reviews.Save(ctx, tx, review)
	})
}

func (s *ReviewStore) ByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]model.Review, error) {
	return readList(ctx, &s.base, s.search("product", productID.String(), productID, limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Review, error) {
		return s.reviews.FindByProduct(ctx, db, productID, limit, offset)
	})
}

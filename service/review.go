package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-commerce-store/model"
)

// ReviewRequest rates a product.
type ReviewRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, requiredID),
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Comment, validation.Length(0, 2000)),
	)
}

type ReviewService struct {
	reviews   ReviewStore
	customers CustomerStore
	products  ProductStore
	orders    OrdersStore
	logger    logrus.FieldLogger
	now       func() time.Time
}

func NewReviewService(reviews ReviewStore, customers CustomerStore, products ProductStore, orders OrdersStore, logger logrus.FieldLogger) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    loggerOrDiscard(logger, "review"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Add stores a review. The customer must have an order containing the
// product that has moved past PENDING.
func (s *ReviewService) Add(ctx context.Context, customerID uuid.UUID, req ReviewRequest) (model.Review, error) {
	if err := invalid(req.Validate(), "invalid review"); err != nil {
		return model.Review{}, err
	}

	if _, found, err := s.customers.Get(ctx, customerID); err != nil {
		return model.Review{}, err
	} else if !found {
		return model.Review{}, errCustomerNotFound(customerID)
	}
	if _, found, err := s.products.Get(ctx, req.ProductID); err != nil {
		return model.Review{}, err
	} else if !found {
		return model.Review{}, errProductNotFound(req.ProductID)
	}

	purchased, err := s.orders.HasProcessedOrderWithProduct(ctx, customerID, req.ProductID)
	if err != nil {
		return model.Review{}, err
	}
	if !purchased {
		return model.Review{}, errProductNotPurchased(req.ProductID)
	}

	review := model.Review{
		ID:         uuid.New(),
		ProductID:  req.ProductID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  s.now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (s *ReviewService) ByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]model.Review, error) {
	return s.reviews.ByProduct(ctx, productID, limit, offset)
}

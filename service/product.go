package service

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-commerce-store/model"
)

var nonNegativePrice = validation.By(func(value any) error {
	var price decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		price = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		price = *v
	default:
		return errors.New("must be a decimal")
	}
	if price.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
})

// ProductRequest creates a product.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  uuid.UUID       `json:"category_id"`
}

func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, nonNegativePrice),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.CategoryID, requiredID),
	)
}

// ProductUpdate changes the fields that are set and keeps the rest.
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
}

func (r ProductUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Price, nonNegativePrice),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// ProductWithReviews is a product with its category and its first reviews.
type ProductWithReviews struct {
	Product  model.Product  `json:"product"`
	Category model.Category `json:"category"`
	Reviews  []model.Review `json:"reviews"`
}

type ProductService struct {
	products   ProductStore
	categories CategoryStore
	reviews    ReviewStore
	logger     logrus.FieldLogger
	now        func() time.Time
}

func NewProductService(products ProductStore, categories CategoryStore, reviews ReviewStore, logger logrus.FieldLogger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		reviews:    reviews,
		logger:     loggerOrDiscard(logger, "product"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProductService) Create(ctx context.Context, req ProductRequest) (model.Product, error) {
	if err := invalid(req.Validate(), "invalid product"); err != nil {
		return model.Product{}, err
	}
	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return model.Product{}, err
	}

	now := s.now()
	product := model.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.Stock,
		CategoryID:    req.CategoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return model.Product{}, err
	}

	s.logger.WithField("product", product.ID).Debug("product created")
	return product, nil
}

// Update merges req into the stored product and writes the full row back.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductUpdate) (model.Product, error) {
	if err := invalid(req.Validate(), "invalid product"); err != nil {
		return model.Product{}, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	updated := existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Price != nil {
		updated.Price = *req.Price
	}
	if req.Stock != nil {
		updated.StockQuantity = *req.Stock
	}
	if req.CategoryID != nil && *req.CategoryID != existing.CategoryID {
		if err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return model.Product{}, err
		}
		updated.CategoryID = *req.CategoryID
	}
	updated.UpdatedAt = s.now()

	if err := s.products.Update(ctx, updated); err != nil {
		return model.Product{}, err
	}
	return updated, nil
}

// Restock sets absolute stock levels for several products at once. Every
// product must exist.
func (s *ProductService) Restock(ctx context.Context, updates []model.StockUpdate) error {
	for _, u := range updates {
		if u.Stock < 0 {
			return invalid(validation.Errors{"stock": errors.New("must be no less than 0")}, "invalid stock update")
		}
		if _, err := s.Get(ctx, u.ProductID); err != nil {
			return err
		}
	}
	return s.products.UpdateStocks(ctx, updates)
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, found, err := s.products.Get(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if !found {
		return model.Product{}, errProductNotFound(id)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	return s.products.List(ctx, limit, offset)
}

// Search returns one page of the products matching filter and the total
// number of matches.
func (s *ProductService) Search(ctx context.Context, filter model.ProductFilter, limit, offset int) (Page[model.Product], error) {
	items, err := s.products.Search(ctx, filter, limit, offset)
	if err != nil {
		return Page[model.Product]{}, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return Page[model.Product]{}, err
	}
	return Page[model.Product]{Items: items, Total: total}, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// ListWithReviews returns a page of products, each with its category and up
// to reviewLimit reviews.
func (s *ProductService) ListWithReviews(ctx context.Context, limit, offset, reviewLimit int) ([]ProductWithReviews, error) {
	products, err := s.products.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]ProductWithReviews, 0, len(products))
	for _, product := range products {
		category, found, err := s.categories.Get(ctx, product.CategoryID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errCategoryNotFound(product.CategoryID.String())
		}
		reviews, err := s.reviews.ByProduct(ctx, product.ID, reviewLimit, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, ProductWithReviews{Product: product, Category: category, Reviews: reviews})
	}
	return out, nil
}

func (s *ProductService) requireCategory(ctx context.Context, id uuid.UUID) error {
	_, found, err := s.categories.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return errCategoryNotFound(id.String())
	}
	return nil
}

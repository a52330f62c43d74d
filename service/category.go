package service

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-commerce-store/model"
)

// CategoryRequest creates a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

// CategoryUpdate changes the fields that are set and keeps the rest.
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r CategoryUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

type CategoryService struct {
	categories CategoryStore
	logger     logrus.FieldLogger
	now        func() time.Time
}

func NewCategoryService(categories CategoryStore, logger logrus.FieldLogger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     loggerOrDiscard(logger, "category"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new category. Names are unique; a taken name fails with
// CodeDuplicateCategory before anything is written. The check and the insert
// are not atomic.
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (model.Category, error) {
	if err := invalid(req.Validate(), "invalid category"); err != nil {
		return model.Category{}, err
	}
	name := strings.TrimSpace(req.Name)

	if _, taken, err := s.categories.GetByName(ctx, name); err != nil {
		return model.Category{}, err
	} else if taken {
		return model.Category{}, errDuplicateCategory(name)
	}

	now := s.now()
	category := model.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return model.Category{}, err
	}

	s.logger.WithField("category", category.ID).Debug("category created")
	return category, nil
}

// Update merges req into the stored category. Renaming to a name held by
// another category fails with CodeDuplicateCategory.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req CategoryUpdate) (model.Category, error) {
	if err := invalid(req.Validate(), "invalid category"); err != nil {
		return model.Category{}, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return model.Category{}, err
	}

	updated := existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		other, taken, err := s.categories.GetByName(ctx, name)
		if err != nil {
			return model.Category{}, err
		}
		if taken && other.ID != id {
			return model.Category{}, errDuplicateCategory(name)
		}
		updated.Name = name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	updated.UpdatedAt = s.now()

	if err := s.categories.Update(ctx, updated); err != nil {
		return model.Category{}, err
	}
	return updated, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (model.Category, error) {
	category, found, err := s.categories.Get(ctx, id)
	if err != nil {
		return model.Category{}, err
	}
	if !found {
		return model.Category{}, errCategoryNotFound(id.String())
	}
	return category, nil
}

func (s *CategoryService) GetByName(ctx context.Context, name string) (model.Category, error) {
	category, found, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return model.Category{}, err
	}
	if !found {
		return model.Category{}, errCategoryNotFound(name)
	}
	return category, nil
}

func (s *CategoryService) Search(ctx context.Context, query string, limit, offset int) ([]model.Category, error) {
	return s.categories.Search(ctx, query, limit, offset)
}

// List returns one page of categories ordered by name.
func (s *CategoryService) List(ctx context.Context, limit, offset int) (Page[model.Category], error) {
	items, err := s.categories.List(ctx, limit, offset)
	if err != nil {
		return Page[model.Category]{}, err
	}
	total, err := s.categories.Count(ctx)
	if err != nil {
		return Page[model.Category]{}, err
	}
	return Page[model.Category]{Items: items, Total: total}, nil
}

// Delete removes an existing category. Categories still referenced by
// products cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

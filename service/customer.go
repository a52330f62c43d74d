package service

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-commerce-store/model"
)

// RegisterRequest creates an account and its customer profile.
// PasswordHash is produced by the caller.
type RegisterRequest struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.PasswordHash, validation.Required),
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
		validation.Field(&r.Phone, validation.Length(0, 32)),
	)
}

// CustomerUpdate changes the contact fields that are set.
type CustomerUpdate struct {
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (r CustomerUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.Length(0, 32)),
	)
}

type CustomerService struct {
	customers CustomerStore
	users     UserStore
	logger    logrus.FieldLogger
	now       func() time.Time
}

func NewCustomerService(customers CustomerStore, users UserStore, logger logrus.FieldLogger) *CustomerService {
	return &CustomerService{
		customers: customers,
		users:     users,
		logger:    loggerOrDiscard(logger, "customer"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user with the customer role and its customer profile.
// The two records are written by separate stores, so a failure creating the
// profile leaves the user in place.
func (s *CustomerService) Register(ctx context.Context, req RegisterRequest) (model.Customer, error) {
	if err := invalid(req.Validate(), "invalid registration"); err != nil {
		return model.Customer{}, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, taken, err := s.users.GetByEmail(ctx, email); err != nil {
		return model.Customer{}, err
	} else if taken {
		return model.Customer{}, errDuplicateEmail(email)
	}

	now := s.now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: req.PasswordHash,
		Role:         model.RoleCustomer,
		CreatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return model.Customer{}, err
	}

	customer := model.Customer{
		ID:        uuid.New(),
		UserID:    user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Phone:     req.Phone,
		Active:    true,
		CreatedAt: now,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		s.logger.WithField("user", user.ID).WithError(err).Error("customer profile not created for new user")
		return model.Customer{}, err
	}
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	customer, found, err := s.customers.Get(ctx, id)
	if err != nil {
		return model.Customer{}, err
	}
	if !found {
		return model.Customer{}, errCustomerNotFound(id)
	}
	return customer, nil
}

// ForUser resolves the customer profile of an account.
func (s *CustomerService) ForUser(ctx context.Context, userID uuid.UUID) (model.Customer, error) {
	return customerForUser(ctx, s.customers, userID)
}

func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	return s.customers.List(ctx, limit, offset)
}

// Search matches query against first name, last name and email.
func (s *CustomerService) Search(ctx context.Context, query string, limit, offset int) ([]model.Customer, error) {
	return s.customers.Search(ctx, query, limit, offset)
}

// Update changes the phone number and the active flag. Names and email are
// kept.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req CustomerUpdate) (model.Customer, error) {
	if err := invalid(req.Validate(), "invalid customer update"); err != nil {
		return model.Customer{}, err
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return model.Customer{}, err
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	if err := s.customers.Update(ctx, updated); err != nil {
		return model.Customer{}, err
	}
	return updated, nil
}

func customerForUser(ctx context.Context, customers CustomerStore, userID uuid.UUID) (model.Customer, error) {
	customer, found, err := customers.GetByUserID(ctx, userID)
	if err != nil {
		return model.Customer{}, err
	}
	if !found {
		return model.Customer{}, errCustomerNotFound(userID)
	}
	return customer, nil
}

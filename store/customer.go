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

// CustomerStore persists customer profiles in the customers namespace.
type CustomerStore struct {
	base
	customers accessor.CustomerAccessor
}

// NewCustomerStore wires a CustomerStore.
func NewCustomerStore(provider dbconn.Provider, customers accessor.CustomerAccessor, c *cache.Cache, logger logrus.FieldLogger) *CustomerStore {
	return &CustomerStore{
		base:      newBase(provider, c, logger, storeerr.EntityCustomer, cache.NamespaceOf[model.Customer]()),
		customers: customers,
	}
}

func (s *CustomerStore) Create(ctx context.Context, customer model.Customer) error {
	return s.mutate(ctx, storeerr.OpCreate, customer.Email, func(ctx context.Context, tx bun.IDB) error {
		return s.customers.Save(ctx, tx, customer)
	})
}

func (s *CustomerStore) Update(ctx context.Context, customer model.Customer) error {
	return s.mutate(ctx, storeerr.OpUpdate, customer.ID.String(), func(ctx context.Context, tx bun.IDB) error {
		return s.customers.Update(ctx, tx, customer)
	})
}

func (s *CustomerStore) Get(ctx context.Context, id uuid.UUID) (model.Customer, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("customer", id.String(), id), func(ctx context.Context, db bun.IDB) (model.Customer, bool, error) {
		return s.customers.FindByID(ctx, db, id)
	})
}

func (s *CustomerStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Customer, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("user", userID.String(), userID), func(ctx context.Context, db bun.IDB) (model.Customer, bool, error) {
		return s.customers.FindByUserID(ctx, db, userID)
	})
}

func (s *CustomerStore) List(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	return readList(ctx, &s.base, s.search("all", "all", limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Customer, error) {
		return s.customers.FindAll(ctx, db, limit, offset)
	})
}

// Search matches query against first name, last name and email.
func (s *CustomerStore) Search(ctx context.Context, query string, limit, offset int) ([]model.Customer, error) {
	return readList(ctx, &s.base, s.search("search", query, query, limit, offset), func(ctx context.Context, db bun.IDB) ([]model.Customer, error) {
		return s.customers.Search(ctx, db, query, limit, offset)
	})
}

// UserStore persists accounts in the users namespace.
type UserStore struct {
	base
	users accessor.UserAccessor
}

// NewUserStore wires a UserStore.
func NewUserStore(provider dbconn.Provider, users accessor.UserAccessor, c *cache.Cache, logger logrus.FieldLogger) *UserStore {
	return &UserStore{
		base:  newBase(provider, c, logger, storeerr.EntityUser, cache.NamespaceOf[model.User]()),
		users: users,
	}
}

func (s *UserStore) Create(ctx context.Context, user model.User) error {
	return s.mutate(ctx, storeerr.OpCreate, user.Email, func(ctx context.Context, tx bun.IDB) error {
		return s.users.Save(ctx, tx, user)
	})
}

func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (model.User, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("user", id.String(), id), func(ctx context.Context, db bun.IDB) (model.User, bool, error) {
		return s.users.FindByID(ctx, db, id)
	})
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (model.User, bool, error) {
	return readOne(ctx, &s.base, s.retrieve("email", email, email), func(ctx context.Context, db bun.IDB) (model.User, bool, error) {
		return s.users.FindByEmail(ctx, db, email)
	})
}

package accessor

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/model"
)

// CustomerAccessor is the record contract for customers.
type CustomerAccessor interface {
	Save(ctx context.Context, db bun.IDB, customer model.Customer) error
	Update(ctx context.Context, db bun.IDB, customer model.Customer) error
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Customer, bool, error)
	FindByUserID(ctx context.Context, db bun.IDB, userID uuid.UUID) (model.Customer, bool, error)
	FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Customer, error)
	Search(ctx context.Context, db bun.IDB, query string, limit, offset int) ([]model.Customer, error)
}

// UserAccessor is the record contract for user accounts.
type UserAccessor interface {
	Save(ctx context.Context, db bun.IDB, user model.User) error
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.User, bool, error)
	FindByEmail(ctx context.Context, db bun.IDB, email string) (model.User, bool, error)
}

type customerAccessor struct {
	table[*model.Customer]
}

// NewCustomerAccessor returns the bun backed CustomerAccessor.
func NewCustomerAccessor(db *bun.DB) CustomerAccessor {
	return &customerAccessor{
		table: newTable(db, "customers", handlers(func(r *model.Customer) *uuid.UUID { return &r.ID }, "email")),
	}
}

func (a *customerAccessor) Save(ctx context.Context, db bun.IDB, customer model.Customer) error {
	return a.insert(ctx, db, &customer)
}

func (a *customerAccessor) Update(ctx context.Context, db bun.IDB, customer model.Customer) error {
	return a.update(ctx, db, &customer)
}

func (a *customerAccessor) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.Customer, bool, error) {
	record, ok, err := a.first(ctx, db, whereEq("id", id))
	if err != nil || !ok {
		return model.Customer{}, false, err
	}
	return *record, true, nil
}

func (a *customerAccessor) FindByUserID(ctx context.Context, db bun.IDB, userID uuid.UUID) (model.Customer, bool, error) {
	record, ok, err := a.first(ctx, db, whereEq("user_id", userID))
	if err != nil || !ok {
		return model.Customer{}, false, err
	}
	return *record, true, nil
}

func (a *customerAccessor) FindAll(ctx context.Context, db bun.IDB, limit, offset int) ([]model.Customer, error) {
	records, err := a.list(ctx, db, orderBy("last_name", "first_name", "id"), paginate(limit, offset))
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

// Search matches query against first name, last name and email.
func (a *customerAccessor) Search(ctx context.Context, db bun.IDB, query string, limit, offset int) ([]model.Customer, error) {
	records, err := a.list(ctx, db,
		whereContains(query, "first_name", "last_name", "email"),
		orderBy("last_name", "first_name", "id"),
		paginate(limit, offset),
	)
	if err != nil {
		return nil, err
	}
	return values(records), nil
}

type userAccessor struct {
	table[*model.User]
}

// NewUserAccessor returns the bun backed UserAccessor.
func NewUserAccessor(db *bun.DB) UserAccessor {
	return &userAccessor{
		table: newTable(db, "users", handlers(func(r *model.User) *uuid.UUID { return &r.ID }, "email")),
	}
}

func (a *userAccessor) Save(ctx context.Context, db bun.IDB, user model.User) error {
	return a.insert(ctx, db, &user)
}

func (a *userAccessor) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (model.User, bool, error) {
	record, ok, err := a.first(ctx, db, whereEq("id", id))
	if err != nil || !ok {
		return model.User{}, false, err
	}
	return *record, true, nil
}

func (a *userAccessor) FindByEmail(ctx context.Context, db bun.IDB, email string) (model.User, bool, error) {
	record, ok, err := a.first(ctx, db, whereEq("email", email))
	if err != nil || !ok {
		return model.User{}, false, err
	}
	return *record, true, nil
}

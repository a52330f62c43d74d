package testsupport

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/model"
)

// Catalog is a consistent set of rows spanning the catalog and account
// tables.
type Catalog struct {
	Categories []model.Category `json:"categories"`
	Products   []model.Product  `json:"products"`
	Users      []model.User     `json:"users"`
	Customers  []model.Customer `json:"customers"`
}

// Product returns the fixture product with the given name.
func (c Catalog) Product(t testing.TB, name string) model.Product {
	t.Helper()
	for _, p := range c.Products {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("catalog fixture has no product %q", name)
	return model.Product{}
}

// Category returns the fixture category with the given name.
func (c Catalog) Category(t testing.TB, name string) model.Category {
	t.Helper()
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat
		}
	}
	t.Fatalf("catalog fixture has no category %q", name)
	return model.Category{}
}

// Customer returns the fixture customer with the given email.
func (c Catalog) Customer(t testing.TB, email string) model.Customer {
	t.Helper()
	for _, cu := range c.Customers {
		if cu.Email == email {
			return cu
		}
	}
	t.Fatalf("catalog fixture has no customer %q", email)
	return model.Customer{}
}

// Insert writes every row of c into db.
func (c Catalog) Insert(t testing.TB, db bun.IDB) {
	t.Helper()

	ctx := context.Background()
	insert := func(table string, rows any, n int) {
		if n == 0 {
			return
		}
		if _, err := db.NewInsert().Model(rows).Exec(ctx); err != nil {
			t.Fatalf("failed to seed %s: %v", table, err)
		}
	}
	insert("categories", &c.Categories, len(c.Categories))
	insert("products", &c.Products, len(c.Products))
	insert("users", &c.Users, len(c.Users))
	insert("customers", &c.Customers, len(c.Customers))
}

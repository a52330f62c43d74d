package testsupport

import (
	"context"
	"encoding/json"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	data := LoadFixture(t, "catalog.json")
	if !json.Valid(data) {
		t.Fatalf("expected catalog.json to hold valid JSON, got %d bytes", len(data))
	}
}

func TestLoadFixtureJSON(t *testing.T) {
	var raw struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	LoadFixtureJSON(t, "catalog.json", &raw)

	if len(raw.Categories) == 0 || raw.Categories[0].Name != "Books" {
		t.Errorf("unexpected decode result: %+v", raw)
	}
}

func TestFixturePath(t *testing.T) {
	if got, want := FixturePath("catalog.json"), "testdata/catalog.json"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoadCatalog_IsConsistent(t *testing.T) {
	c := LoadCatalog(t)

	if len(c.Categories) == 0 || len(c.Products) == 0 || len(c.Customers) == 0 {
		t.Fatalf("catalog fixture is incomplete: %+v", c)
	}

	categories := make(map[string]bool)
	for _, cat := range c.Categories {
		categories[cat.ID.String()] = true
	}
	for _, p := range c.Products {
		if !categories[p.CategoryID.String()] {
			t.Errorf("product %q references unknown category %s", p.Name, p.CategoryID)
		}
		if p.Price.IsNegative() {
			t.Errorf("product %q has a negative price", p.Name)
		}
	}

	users := make(map[string]bool)
	for _, u := range c.Users {
		users[u.ID.String()] = true
	}
	for _, cu := range c.Customers {
		if !users[cu.UserID.String()] {
			t.Errorf("customer %q references unknown user %s", cu.Email, cu.UserID)
		}
	}
}

func TestLoadCatalog_ReturnsFreshCopies(t *testing.T) {
	first := LoadCatalog(t)
	first.Products[0].Name = "changed"

	second := LoadCatalog(t)
	if second.Products[0].Name == "changed" {
		t.Error("expected LoadCatalog to return an independent copy")
	}
}

func TestOpenDB_IsMigratedAndPrivate(t *testing.T) {
	ctx := context.Background()
	a := OpenDB(t)
	b := OpenDB(t)

	LoadCatalog(t).Insert(t, a)

	n, err := a.NewSelect().Table("products").Count(ctx)
	if err != nil {
		t.Fatalf("count products: %v", err)
	}
	if n != len(LoadCatalog(t).Products) {
		t.Errorf("expected %d products, got %d", len(LoadCatalog(t).Products), n)
	}

	n, err = b.NewSelect().Table("products").Count(ctx)
	if err != nil {
		t.Fatalf("count products in second database: %v", err)
	}
	if n != 0 {
		t.Errorf("expected databases to be isolated, second has %d products", n)
	}
}

func TestSeededDB_LookupHelpers(t *testing.T) {
	_, c := SeededDB(t)

	book := c.Product(t, "Go in Practice")
	if book.StockQuantity != 5 {
		t.Errorf("expected stock 5, got %d", book.StockQuantity)
	}
	if c.Category(t, "Books").ID != book.CategoryID {
		t.Error("expected Go in Practice to belong to Books")
	}
	if c.Customer(t, "ada@example.com").FirstName != "Ada" {
		t.Error("expected Ada fixture customer")
	}
}

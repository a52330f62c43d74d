package accessor_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-commerce-store/accessor"
	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/pkg/testsupport"
)

// more rows than go-repository-bun returns per page by default
const manyRows = 30

func TestListsAreUnboundedWithoutLimit(t *testing.T) {
	ctx := context.Background()
	db, catalog := testsupport.SeededDB(t)
	categories := accessor.NewCategoryAccessor(db)

	now := time.Now().UTC()
	for i := 0; i < manyRows; i++ {
		c := model.Category{ID: uuid.New(), Name: fmt.Sprintf("Shelf %02d", i), CreatedAt: now, UpdatedAt: now}
		require.NoError(t, categories.Save(ctx, db, c))
	}
	total := manyRows + len(catalog.Categories)

	t.Run("zero limit", func(t *testing.T) {
		got, err := categories.FindAll(ctx, db, 0, 0)
		require.NoError(t, err)
		assert.Len(t, got, total)
	})

	t.Run("negative limit", func(t *testing.T) {
		got, err := categories.FindAll(ctx, db, -1, 0)
		require.NoError(t, err)
		assert.Len(t, got, total)
	})

	t.Run("offset without limit", func(t *testing.T) {
		got, err := categories.FindAll(ctx, db, 0, manyRows)
		require.NoError(t, err)
		assert.Len(t, got, total-manyRows)
	})

	t.Run("search without limit", func(t *testing.T) {
		got, err := categories.SearchByName(ctx, db, "shelf", 0, 0)
		require.NoError(t, err)
		assert.Len(t, got, manyRows)
	})

	t.Run("explicit limit still bounds", func(t *testing.T) {
		got, err := categories.FindAll(ctx, db, 5, 0)
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})
}

func TestOrderItemsKeepLineOrder(t *testing.T) {
	ctx := context.Background()
	db, catalog := testsupport.SeededDB(t)
	orders := accessor.NewOrdersAccessor(db)
	items := accessor.NewOrderItemAccessor(db)
	book := catalog.Product(t, "Go in Practice")

	order := model.Orders{
		ID:         uuid.New(),
		CustomerID: catalog.Customer(t, "ada@example.com").ID,
		OrderDate:  time.Now().UTC(),
		Status:     model.OrderStatusPending,
	}
	require.NoError(t, orders.Save(ctx, db, order))

	lines := make([]model.OrderItem, manyRows)
	for i := range lines {
		lines[i] = model.OrderItem{ID: uuid.New(), OrderID: order.ID, ProductID: book.ID, Quantity: i + 1, PriceAtPurchase: book.Price}
	}
	require.NoError(t, items.SaveBatch(ctx, db, lines))

	got, err := items.FindByOrderID(ctx, db, order.ID)
	require.NoError(t, err)
	require.Len(t, got, manyRows)
	for i, line := range got {
		assert.Equal(t, i+1, line.LineNo)
		assert.Equal(t, lines[i].ID, line.ID, "line %d", i+1)
	}
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	db, _ := testsupport.SeededDB(t)
	categories := accessor.NewCategoryAccessor(db)

	now := time.Now().UTC()
	for _, name := range []string{"50% off", "500 offers", "a_b", "axb", "hey!"} {
		require.NoError(t, categories.Save(ctx, db, model.Category{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"50%", []string{"50% off"}},
		{"a_b", []string{"a_b"}},
		{"y!", []string{"hey!"}},
		{"50", []string{"50% off", "500 offers"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := categories.SearchByName(ctx, db, tt.query, 0, 0)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

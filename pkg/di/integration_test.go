package di

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-commerce-store/cache"
	"github.com/goliatone/go-commerce-store/model"
	"github.com/goliatone/go-commerce-store/pkg/testsupport"
	"github.com/goliatone/go-commerce-store/service"
)

func seededContainer(t *testing.T) (*Container, testsupport.Catalog) {
	t.Helper()

	db, catalog := testsupport.SeededDB(t)
	container, err := NewContainerWithDB(db, cache.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewContainerWithDB() failed: %v", err)
	}
	return container, catalog
}

func orderRequest(lines ...service.OrderLine) service.PlaceOrderRequest {
	return service.PlaceOrderRequest{Items: lines, City: "Lisbon", Country: "PT", PostalCode: "1100-148"}
}

func TestIntegration_PlaceOrderThroughContainer(t *testing.T) {
	ctx := context.Background()
	container, catalog := seededContainer(t)
	services := container.Services()

	grace := catalog.Customer(t, "grace@example.com")
	book := catalog.Product(t, "Distributed Systems")
	cable := catalog.Product(t, "USB-C Cable")

	placed, err := services.Purchase.PlaceOrder(ctx, grace.ID, orderRequest(
		service.OrderLine{ProductID: book.ID, Quantity: 2},
		service.OrderLine{ProductID: cable.ID, Quantity: 3},
	))
	if err != nil {
		t.Fatalf("PlaceOrder() failed: %v", err)
	}

	want := decimal.RequireFromString("100.00")
	if !placed.Order.TotalAmount.Equal(want) {
		t.Errorf("Expected total %s, got %s", want, placed.Order.TotalAmount)
	}

	details, err := services.Orders.Get(ctx, placed.Order.ID)
	if err != nil {
		t.Fatalf("Orders.Get() failed: %v", err)
	}
	if len(details.Items) != 2 {
		t.Fatalf("Expected 2 order items, got %d", len(details.Items))
	}
	if details.Order.Status != model.OrderStatusPending {
		t.Errorf("Expected status %s, got %s", model.OrderStatusPending, details.Order.Status)
	}

	// more than the two copies in stock
	_, err = services.Purchase.PlaceOrder(ctx, grace.ID, orderRequest(service.OrderLine{ProductID: book.ID, Quantity: 3}))
	if !service.HasCode(err, service.CodeInsufficientStock) {
		t.Fatalf("Expected %s, got %v", service.CodeInsufficientStock, err)
	}

	total, err := container.Stores().Orders.Count(ctx)
	if err != nil {
		t.Fatalf("Orders.Count() failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected 1 stored order after the rejected one, got %d", total)
	}
}

func TestIntegration_ReadThroughAndEviction(t *testing.T) {
	ctx := context.Background()
	container, catalog := seededContainer(t)
	products := container.Stores().Products
	c := container.Cache()
	ns := cache.NamespaceOf[model.Product]()
	cable := catalog.Product(t, "USB-C Cable")

	for i := 0; i < 3; i++ {
		if _, found, err := products.Get(ctx, cable.ID); err != nil || !found {
			t.Fatalf("Get() = found %v, err %v", found, err)
		}
	}

	stats := c.Stats(ns)
	if stats.Misses != 1 || stats.Hits != 2 {
		t.Fatalf("Expected 1 miss and 2 hits, got %+v", stats)
	}

	updated := cable
	updated.StockQuantity = 7
	if err := products.Update(ctx, updated); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got := c.Stats(ns).Evictions; got != 1 {
		t.Fatalf("Expected 1 eviction, got %d", got)
	}

	fresh, _, err := products.Get(ctx, cable.ID)
	if err != nil {
		t.Fatalf("Get() after update failed: %v", err)
	}
	if fresh.StockQuantity != 7 {
		t.Errorf("Expected refreshed stock 7, got %d", fresh.StockQuantity)
	}
	if got := c.Stats(ns).Misses; got != 2 {
		t.Errorf("Expected a second miss after eviction, got %d", got)
	}
}

func TestIntegration_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	container, catalog := seededContainer(t)
	products := container.Stores().Products
	book := catalog.Product(t, "Go in Practice")

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			product, found, err := products.Get(ctx, book.ID)
			if err != nil {
				errs <- err
				return
			}
			if !found || product.ID != book.ID {
				t.Errorf("concurrent Get() returned %v (found %v)", product.ID, found)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Get() failed: %v", err)
	}

	stats := container.Cache().Stats(cache.NamespaceOf[model.Product]())
	if stats.Hits+stats.Misses != workers {
		t.Errorf("Expected %d recorded lookups, got %+v", workers, stats)
	}
	if stats.Misses < 1 {
		t.Errorf("Expected at least one miss, got %+v", stats)
	}
}

func TestIntegration_ConcurrentOrders(t *testing.T) {
	ctx := context.Background()
	container, catalog := seededContainer(t)
	purchase := container.Services().Purchase
	ada := catalog.Customer(t, "ada@example.com")
	cable := catalog.Product(t, "USB-C Cable")

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := purchase.PlaceOrder(ctx, ada.ID, orderRequest(service.OrderLine{ProductID: cable.ID, Quantity: 1}))
			if err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent PlaceOrder() failed: %v", err)
	}

	orders, err := container.Services().Orders.CustomerOrders(ctx, ada.ID, 0, 0)
	if err != nil {
		t.Fatalf("CustomerOrders() failed: %v", err)
	}
	if len(orders) != workers {
		t.Errorf("Expected %d orders, got %d", workers, len(orders))
	}

	if got := container.Cache().Stats(cache.NamespaceOf[model.Orders]()).Evictions; got != workers {
		t.Errorf("Expected %d evictions of the orders namespace, got %d", workers, got)
	}
}

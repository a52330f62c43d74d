package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-commerce-store/model"
)

// OrderLine is one requested product and quantity.
type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (l OrderLine) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ProductID, requiredID),
		validation.Field(&l.Quantity, validation.Required, validation.Min(1)),
	)
}

// PlaceOrderRequest is the input of PlaceOrder.
type PlaceOrderRequest struct {
	Items      []OrderLine `json:"items"`
	City       string      `json:"city"`
	Country    string      `json:"country"`
	PostalCode string      `json:"postal_code"`
}

func (r PlaceOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required),
		validation.Field(&r.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Country, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.PostalCode, validation.Required, validation.Length(1, 20)),
	)
}

// PlacedOrder is the outcome of PlaceOrder: the stored order header and the
// lines as they were requested.
type PlacedOrder struct {
	Order model.Orders `json:"order"`
	Items []OrderLine  `json:"items"`
}

// PurchaseService places orders.
type PurchaseService struct {
	customers CustomerStore
	products  ProductStore
	orders    OrdersStore
	logger    logrus.FieldLogger
	now       func() time.Time
}

func NewPurchaseService(customers CustomerStore, products ProductStore, orders OrdersStore, logger logrus.FieldLogger) *PurchaseService {
	return &PurchaseService{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    loggerOrDiscard(logger, "purchase"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// PlaceOrder validates the request, resolves the customer and every product,
// checks each line against the product's current stock, snapshots prices and
// persists the order with its items in one transaction.
//
// Stock is checked but not decremented, and repeated product ids are checked
// independently.
func (s *PurchaseService) PlaceOrder(ctx context.Context, customerID uuid.UUID, req PlaceOrderRequest) (PlacedOrder, error) {
	if err := invalid(req.Validate(), "invalid order request"); err != nil {
		return PlacedOrder{}, err
	}

	if _, found, err := s.customers.Get(ctx, customerID); err != nil {
		return PlacedOrder{}, err
	} else if !found {
		return PlacedOrder{}, errCustomerNotFound(customerID)
	}

	orderID := uuid.New()
	items := make([]model.OrderItem, 0, len(req.Items))
	total := decimal.Zero

	for _, line := range req.Items {
		product, found, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return PlacedOrder{}, err
		}
		if !found {
			return PlacedOrder{}, errProductNotFound(line.ProductID)
		}
		if product.StockQuantity < line.Quantity {
			return PlacedOrder{}, errInsufficientStock(product.ID.String(), line.Quantity, product.StockQuantity)
		}

		item := model.OrderItem{
			ID:              uuid.New(),
			OrderID:         orderID,
			LineNo:          len(items) + 1,
			ProductID:       product.ID,
			Quantity:        line.Quantity,
			PriceAtPurchase: product.Price,
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}

	order := model.Orders{
		ID:                 orderID,
		CustomerID:         customerID,
		OrderDate:          s.now(),
		Status:             model.OrderStatusPending,
		ShippingCity:       req.City,
		ShippingCountry:    req.Country,
		ShippingPostalCode: req.PostalCode,
		TotalAmount:        total,
	}

	if err := s.orders.CreateOrder(ctx, order, items); err != nil {
		return PlacedOrder{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"order":    order.ID,
		"customer": customerID,
		"lines":    len(items),
		"total":    total.StringFixed(2),
	}).Info("order placed")

	return PlacedOrder{Order: order, Items: append([]OrderLine(nil), req.Items...)}, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusProcessed OrderStatus = "PROCESSED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Orders is a customer order. TotalAmount is derived from its items.
type Orders struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID                 uuid.UUID       `bun:"id,pk" json:"id"`
	CustomerID         uuid.UUID       `bun:"customer_id,notnull" json:"customer_id"`
	OrderDate          time.Time       `bun:"order_date,notnull" json:"order_date"`
	Status             OrderStatus     `bun:"status,notnull" json:"status"`
	ShippingCity       string          `bun:"shipping_city" json:"shipping_city"`
	ShippingCountry    string          `bun:"shipping_country" json:"shipping_country"`
	ShippingPostalCode string          `bun:"shipping_postal_code" json:"shipping_postal_code"`
	TotalAmount        decimal.Decimal `bun:"total_amount,notnull" json:"total_amount"`
}

// OrderItem is one line of an order. LineNo keeps the requested line order;
// PriceAtPurchase is immutable.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID              uuid.UUID       `bun:"id,pk" json:"id"`
	OrderID         uuid.UUID       `bun:"order_id,notnull" json:"order_id"`
	LineNo          int             `bun:"line_no,notnull" json:"line_no"`
	ProductID       uuid.UUID       `bun:"product_id,notnull" json:"product_id"`
	Quantity        int             `bun:"quantity,notnull" json:"quantity"`
	PriceAtPurchase decimal.Decimal `bun:"price_at_purchase,notnull" json:"price_at_purchase"`
}

// LineTotal returns PriceAtPurchase * Quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

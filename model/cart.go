package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Cart belongs to exactly one customer.
type Cart struct {
	bun.BaseModel `bun:"table:carts,alias:ca"`

	ID         uuid.UUID `bun:"id,pk" json:"id"`
	CustomerID uuid.UUID `bun:"customer_id,notnull" json:"customer_id"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// CartItem is a product line in a cart.
type CartItem struct {
	bun.BaseModel `bun:"table:cart_items,alias:ci"`

	ID        uuid.UUID `bun:"id,pk" json:"id"`
	CartID    uuid.UUID `bun:"cart_id,notnull" json:"cart_id"`
	ProductID uuid.UUID `bun:"product_id,notnull" json:"product_id"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity"`
	AddedAt   time.Time `bun:"added_at,notnull" json:"added_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Product is a catalog entry that belongs to a Category.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID            uuid.UUID       `bun:"id,pk" json:"id"`
	Name          string          `bun:"name,notnull" json:"name"`
	Description   string          `bun:"description" json:"description"`
	Price         decimal.Decimal `bun:"price,notnull" json:"price"`
	StockQuantity int             `bun:"stock_quantity,notnull" json:"stock_quantity"`
	CategoryID    uuid.UUID       `bun:"category_id,notnull" json:"category_id"`
	CreatedAt     time.Time       `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt     time.Time       `bun:"updated_at,notnull" json:"updated_at"`
}

// ProductFilter narrows product searches. Zero values disable a criterion.
type ProductFilter struct {
	Name        string           `json:"name,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
	InStockOnly bool             `json:"in_stock_only,omitempty"`
}

// StockUpdate sets the absolute stock level of one product.
type StockUpdate struct {
	ProductID uuid.UUID
	Stock     int
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Review is a customer's rating of a product they purchased.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID         uuid.UUID `bun:"id,pk" json:"id"`
	ProductID  uuid.UUID `bun:"product_id,notnull" json:"product_id"`
	CustomerID uuid.UUID `bun:"customer_id,notnull" json:"customer_id"`
	Rating     int       `bun:"rating,notnull" json:"rating"`
	Comment    string    `bun:"comment" json:"comment"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}

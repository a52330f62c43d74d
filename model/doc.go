// Package model holds the catalog and order entities persisted by the stores.
//
// Entities are bun models. Identifiers are UUIDs and money values are
// decimals; a Product price is copied into OrderItem.PriceAtPurchase when an
// order is placed and never changes afterwards.
package model

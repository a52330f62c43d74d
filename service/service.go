// Package service implements the commerce workflows on top of the entity
// stores: order placement, catalog management, customer carts and reviews.
//
// Services check domain preconditions and return *goerrors.Error values
// carrying one of the Code constants when a precondition fails. Failures
// reported by the stores (storeerr.ConnectionError, storeerr.OperationError)
// are returned unchanged.
package service

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Page is one page of a paginated listing together with the total number of
// matching records.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func loggerOrDiscard(logger logrus.FieldLogger, name string) logrus.FieldLogger {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		return discard
	}
	return logger.WithField("service", name)
}

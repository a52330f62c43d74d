// Package storeerr defines the failure taxonomy shared by the record accessors
// and the entity stores.
//
// There are three kinds of failure:
//
//   - ConnectionError: a connection could not be obtained or operated
//     (acquire, begin, commit). It is not attributable to any entity.
//   - StorageError: the uniform failure kind reported by record accessors when
//     a query fails. Stores never return it bare.
//   - OperationError: a storage failure during a specific operation on a
//     specific entity family, carrying a human readable identifier.
//
// Domain preconditions (not found, duplicate name, insufficient stock) are not
// modelled here; they belong to the service layer.
package storeerr

import (
	"errors"
	"fmt"
)

var (
	// ErrDatabaseConnection matches every *ConnectionError.
	ErrDatabaseConnection = errors.New("database connection failure")

	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("storage failure")
)

// Entity names an entity family.
type Entity string

const (
	EntityCategory  Entity = "category"
	EntityProduct   Entity = "product"
	EntityOrder     Entity = "order"
	EntityOrderItem Entity = "order_item"
	EntityCustomer  Entity = "customer"
	EntityUser      Entity = "user"
	EntityReview    Entity = "review"
	EntityCart      Entity = "cart"
	EntityCartItem  Entity = "cart_item"
)

// Op names the store operation that failed.
type Op string

const (
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
	OpRetrieve Op = "retrieve"
	OpSearch   Op = "search"
)

// ConnectionError wraps a failure to acquire or operate a pooled connection.
type ConnectionError struct {
	Err error
}

// Connection wraps err as a *ConnectionError.
func Connection(err error) *ConnectionError {
	return &ConnectionError{Err: err}
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return ErrDatabaseConnection.Error()
	}
	return fmt.Sprintf("%s: %v", ErrDatabaseConnection, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Is reports ErrDatabaseConnection as a match.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrDatabaseConnection
}

// StorageError is returned by record accessors for any query failure.
type StorageError struct {
	Table  string
	Action string
	Err    error
}

// Storage wraps err as a *StorageError. A nil err yields nil.
func Storage(table, action string, err error) error {
	if err == nil {
		return nil
	}
	var already *StorageError
	if errors.As(err, &already) {
		return err
	}
	var typed *OperationError
	if errors.As(err, &typed) {
		return err
	}
	return &StorageError{Table: table, Action: action, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrStorage, e.Action, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorage as a match.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// OperationError reports a storage failure while running Op on Entity.
// Identifier is the name or id of the entity involved, or a short
// description of the query ("all", "customer <id>").
type OperationError struct {
	Entity     Entity
	Op         Op
	Identifier string
	Err        error
}

// Operation builds an *OperationError.
func Operation(entity Entity, op Op, identifier string, err error) *OperationError {
	return &OperationError{Entity: entity, Op: op, Identifier: identifier, Err: err}
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Entity, e.Op)
	if e.Identifier != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Identifier)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error { return e.Err }

// IsOperation reports whether err is an *OperationError for entity and op.
func IsOperation(err error, entity Entity, op Op) bool {
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		return false
	}
	return opErr.Entity == entity && opErr.Op == op
}

// IsConnection reports whether err is a connection failure.
func IsConnection(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}

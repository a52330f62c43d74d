package service

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Text codes carried by the domain errors returned from this package.
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeCustomerNotFound       = "CUSTOMER_NOT_FOUND"
	CodeProductNotFound        = "PRODUCT_NOT_FOUND"
	CodeCategoryNotFound       = "CATEGORY_NOT_FOUND"
	CodeOrderNotFound          = "ORDER_NOT_FOUND"
	CodeCartItemNotFound       = "CART_ITEM_NOT_FOUND"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeDuplicateCategory      = "DUPLICATE_CATEGORY"
	CodeDuplicateEmail         = "DUPLICATE_EMAIL"
	CodeOrderCannotBeCancelled = "ORDER_CANNOT_BE_CANCELLED"
	CodeInvalidOrderTransition = "INVALID_ORDER_TRANSITION"
	CodeProductNotPurchased    = "PRODUCT_NOT_PURCHASED"
	CodeCartItemForbidden      = "CART_ITEM_FORBIDDEN"
)

// HasCode reports whether err is a domain error carrying code.
func HasCode(err error, code string) bool {
	var e *goerrors.Error
	return errors.As(err, &e) && e.TextCode == code
}

func invalid(err error, message string) error {
	if err == nil {
		return nil
	}
	return goerrors.FromOzzoValidation(err, message).WithTextCode(CodeInvalidRequest)
}

func notFound(code, entity, identifier string) *goerrors.Error {
	return goerrors.New(fmt.Sprintf("%s not found: %s", entity, identifier), goerrors.CategoryNotFound).
		WithTextCode(code).
		WithMetadata(map[string]any{"identifier": identifier})
}

func conflict(code, message string, meta map[string]any) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryConflict).
		WithTextCode(code).
		WithMetadata(meta)
}

func forbidden(code, message string, meta map[string]any) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuthz).
		WithTextCode(code).
		WithMetadata(meta)
}

func errCustomerNotFound(id uuid.UUID) error {
	return notFound(CodeCustomerNotFound, "customer", id.String())
}

func errProductNotFound(id uuid.UUID) error {
	return notFound(CodeProductNotFound, "product", id.String())
}

func errCategoryNotFound(identifier string) error {
	return notFound(CodeCategoryNotFound, "category", identifier)
}

func errOrderNotFound(id uuid.UUID) error {
	return notFound(CodeOrderNotFound, "order", id.String())
}

func errCartItemNotFound(id uuid.UUID) error {
	return notFound(CodeCartItemNotFound, "cart item", id.String())
}

func errInsufficientStock(product string, requested, available int) error {
	return conflict(CodeInsufficientStock,
		fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", product, requested, available),
		map[string]any{"product": product, "requested": requested, "available": available})
}

func errDuplicateCategory(name string) error {
	return conflict(CodeDuplicateCategory, fmt.Sprintf("category already exists: %s", name), map[string]any{"name": name})
}

func errDuplicateEmail(email string) error {
	return conflict(CodeDuplicateEmail, "email already registered", map[string]any{"email": email})
}

func errOrderCannotBeCancelled(id uuid.UUID, status string) error {
	return conflict(CodeOrderCannotBeCancelled,
		fmt.Sprintf("order %s cannot be cancelled in status %s", id, status),
		map[string]any{"order": id.String(), "status": status})
}

func errInvalidOrderTransition(id uuid.UUID, from, to string) error {
	return conflict(CodeInvalidOrderTransition,
		fmt.Sprintf("order %s cannot move from %s to %s", id, from, to),
		map[string]any{"order": id.String(), "from": from, "to": to})
}

func errProductNotPurchased(productID uuid.UUID) error {
	return forbidden(CodeProductNotPurchased,
		fmt.Sprintf("product %s has not been purchased by this customer", productID),
		map[string]any{"product": productID.String()})
}

func errCartItemForbidden(itemID uuid.UUID) error {
	return forbidden(CodeCartItemForbidden,
		fmt.Sprintf("cart item %s does not belong to this customer", itemID),
		map[string]any{"cart_item": itemID.String()})
}

// requiredID rejects the nil uuid, which ozzo's Required rule accepts since
// uuid.UUID is a fixed size array.
var requiredID = validation.By(func(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
})

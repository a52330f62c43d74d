package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-commerce-store/model"
)

// CartItemRequest adds a product to the cart or sets the quantity of a line.
type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (r CartItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, requiredID),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// CartLine is a cart item together with the product it refers to.
type CartLine struct {
	Item    model.CartItem `json:"item"`
	Product model.Product  `json:"product"`
}

// CartService manages the cart of the customer behind a user account.
type CartService struct {
	carts     CartStore
	customers CustomerStore
	products  ProductStore
	logger    logrus.FieldLogger
	now       func() time.Time
}

func NewCartService(carts CartStore, customers CustomerStore, products ProductStore, logger logrus.FieldLogger) *CartService {
	return &CartService{
		carts:     carts,
		customers: customers,
		products:  products,
		logger:    loggerOrDiscard(logger, "cart"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Add puts a product in the user's cart, creating the cart on first use. A
// product already in the cart has its quantity increased.
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, req CartItemRequest) (CartLine, error) {
	if err := invalid(req.Validate(), "invalid cart item"); err != nil {
		return CartLine{}, err
	}

	customer, err := customerForUser(ctx, s.customers, userID)
	if err != nil {
		return CartLine{}, err
	}
	product, err := s.product(ctx, req.ProductID)
	if err != nil {
		return CartLine{}, err
	}
	cart, err := s.cartFor(ctx, customer.ID)
	if err != nil {
		return CartLine{}, err
	}

	existing, found, err := s.carts.Item(ctx, cart.ID, product.ID)
	if err != nil {
		return CartLine{}, err
	}
	if found {
		existing.Quantity += req.Quantity
		if err := s.carts.UpdateItemQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return CartLine{}, err
		}
		return CartLine{Item: existing, Product: product}, nil
	}

	item := model.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		AddedAt:   s.now(),
	}
	if err := s.carts.AddItem(ctx, item); err != nil {
		return CartLine{}, err
	}
	return CartLine{Item: item, Product: product}, nil
}

// UpdateQuantity sets the quantity of a line in the user's cart.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (CartLine, error) {
	err := validation.Validate(quantity, validation.Required, validation.Min(1))
	if err := invalid(err, "invalid quantity"); err != nil {
		return CartLine{}, err
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return CartLine{}, err
	}
	if err := s.carts.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return CartLine{}, err
	}
	item.Quantity = quantity

	product, err := s.product(ctx, item.ProductID)
	if err != nil {
		return CartLine{}, err
	}
	return CartLine{Item: item, Product: product}, nil
}

// Remove deletes a line from the user's cart.
func (s *CartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	return s.carts.RemoveItem(ctx, itemID)
}

// Items lists the user's cart. A user without a cart has no items.
func (s *CartService) Items(ctx context.Context, userID uuid.UUID) ([]CartLine, error) {
	customer, err := customerForUser(ctx, s.customers, userID)
	if err != nil {
		return nil, err
	}
	cart, found, err := s.carts.ByCustomer(ctx, customer.ID)
	if err != nil || !found {
		return nil, err
	}

	items, err := s.carts.Items(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		product, err := s.product(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, CartLine{Item: item, Product: product})
	}
	return lines, nil
}

func (s *CartService) cartFor(ctx context.Context, customerID uuid.UUID) (model.Cart, error) {
	cart, found, err := s.carts.ByCustomer(ctx, customerID)
	if err != nil {
		return model.Cart{}, err
	}
	if found {
		return cart, nil
	}

	now := s.now()
	cart = model.Cart{ID: uuid.New(), CustomerID: customerID, CreatedAt: now, UpdatedAt: now}
	if err := s.carts.CreateCart(ctx, cart); err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ownedItem returns the item if it belongs to the cart of the user's
// customer.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (model.CartItem, error) {
	customer, err := customerForUser(ctx, s.customers, userID)
	if err != nil {
		return model.CartItem{}, err
	}

	item, found, err := s.carts.GetItem(ctx, itemID)
	if err != nil {
		return model.CartItem{}, err
	}
	if !found {
		return model.CartItem{}, errCartItemNotFound(itemID)
	}

	cart, found, err := s.carts.ByCustomer(ctx, customer.ID)
	if err != nil {
		return model.CartItem{}, err
	}
	if !found || cart.ID != item.CartID {
		s.logger.WithFields(logrus.Fields{
			"customer":  customer.ID,
			"cart_item": itemID,
		}).Warn("cart item access denied")
		return model.CartItem{}, errCartItemForbidden(itemID)
	}
	return item, nil
}

func (s *CartService) product(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, found, err := s.products.Get(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if !found {
		return model.Product{}, errProductNotFound(id)
	}
	return product, nil
}

package service

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-commerce-store/model"
)

// OrderDetails is an order header with its items.
type OrderDetails struct {
	Order model.Orders      `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// transitions lists the statuses an order may move to from each status.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusProcessed, model.OrderStatusCancelled},
	model.OrderStatusProcessed: {model.OrderStatusShipped},
	model.OrderStatusShipped:   {model.OrderStatusDelivered},
}

// OrderService reads orders and moves them through their lifecycle.
type OrderService struct {
	orders OrdersStore
	logger logrus.FieldLogger
}

func NewOrderService(orders OrdersStore, logger logrus.FieldLogger) *OrderService {
	return &OrderService{
		orders: orders,
		logger: loggerOrDiscard(logger, "order"),
	}
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (OrderDetails, error) {
	order, err := s.order(ctx, id)
	if err != nil {
		return OrderDetails{}, err
	}
	items, err := s.orders.Items(ctx, id)
	if err != nil {
		return OrderDetails{}, err
	}
	return OrderDetails{Order: order, Items: items}, nil
}

func (s *OrderService) CustomerOrders(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Orders, error) {
	return s.orders.CustomerOrders(ctx, customerID, limit, offset)
}

// Cancel cancels a PENDING order.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (model.Orders, error) {
	order, err := s.order(ctx, id)
	if err != nil {
		return model.Orders{}, err
	}
	if order.Status != model.OrderStatusPending {
		return model.Orders{}, errOrderCannotBeCancelled(id, string(order.Status))
	}
	return s.move(ctx, order, model.OrderStatusCancelled)
}

// Advance moves an order to status. Orders go PENDING, PROCESSED, SHIPPED,
// DELIVERED in that order; Cancel is the only other exit from PENDING.
func (s *OrderService) Advance(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Orders, error) {
	order, err := s.order(ctx, id)
	if err != nil {
		return model.Orders{}, err
	}
	if status == model.OrderStatusCancelled {
		return s.Cancel(ctx, id)
	}
	if !slices.Contains(transitions[order.Status], status) {
		return model.Orders{}, errInvalidOrderTransition(id, string(order.Status), string(status))
	}
	return s.move(ctx, order, status)
}

func (s *OrderService) move(ctx context.Context, order model.Orders, status model.OrderStatus) (model.Orders, error) {
	from := order.Status
	order.Status = status
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return model.Orders{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"order": order.ID,
		"from":  string(from),
		"to":    string(status),
	}).Info("order status changed")
	return order, nil
}

func (s *OrderService) order(ctx context.Context, id uuid.UUID) (model.Orders, error) {
	order, found, err := s.orders.Get(ctx, id)
	if err != nil {
		return model.Orders{}, err
	}
	if !found {
		return model.Orders{}, errOrderNotFound(id)
	}
	return order, nil
}

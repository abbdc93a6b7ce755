package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/repo"
)

type OrderService struct {
	Repo *repo.Repo
}

type PlacedItem struct {
	ProductID uint `json:"product_id"`
	Count     int  `json:"count"`
}

// OrderView is an order with its joined line items.
type OrderView struct {
	models.Order
	Products []repo.OrderLine `json:"products"`
}

// statusTransitions is the closed set of allowed moves. Delivered and
// cancelled are terminal.
var statusTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// Place converts the supplied items into an immutable order and empties
// the user's cart. Header insert, line inserts and cart clear commit as
// one transaction.
func (s *OrderService) Place(ctx context.Context, userID uint, address string, amount float64, comment string, items []PlacedItem) (*models.Order, []models.OrderProduct, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: order will not be created without products", ErrValidation)
	}
	for _, it := range items {
		if it.ProductID == 0 || it.Count <= 0 {
			return nil, nil, fmt.Errorf("%w: product_id and a positive count required", ErrValidation)
		}
	}

	order := &models.Order{
		UserID:  userID,
		Address: address,
		Amount:  amount,
		Status:  models.OrderStatusPending,
		Comment: comment,
	}
	var lines []models.OrderProduct

	err := s.Repo.Atomic(ctx, func(r *repo.Repo) error {
		if err := r.CreateOrder(ctx, order); err != nil {
			return err
		}

		lines = make([]models.OrderProduct, 0, len(items))
		for _, it := range items {
			lines = append(lines, models.OrderProduct{
				ProductID: it.ProductID,
				OrderID:   order.ID,
				Count:     it.Count,
			})
		}
		if err := r.CreateOrderProducts(ctx, lines); err != nil {
			return err
		}

		return r.ClearCart(ctx, userID)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, lines, nil
}

// SetStatus moves an order through the status lifecycle.
func (s *OrderService) SetStatus(ctx context.Context, orderID uint, status string) error {
	if _, ok := statusTransitions[status]; !ok {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	order, err := s.Repo.OrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return err
	}

	for _, next := range statusTransitions[order.Status] {
		if next == status {
			return s.Repo.UpdateOrderStatus(ctx, orderID, status)
		}
	}
	return fmt.Errorf("%w: cannot move order from %q to %q", ErrValidation, order.Status, status)
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]OrderView, error) {
	orders, err := s.Repo.OrdersForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachLines(ctx, orders, false)
}

// ListAll is the admin report over every user's orders, purchaser name
// included.
func (s *OrderService) ListAll(ctx context.Context) ([]OrderView, error) {
	orders, err := s.Repo.AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachLines(ctx, orders, true)
}

func (s *OrderService) attachLines(ctx context.Context, orders []models.Order, withUser bool) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		var (
			lines []repo.OrderLine
			err   error
		)
		if withUser {
			lines, err = s.Repo.OrderLinesWithUser(ctx, order.ID)
		} else {
			lines, err = s.Repo.OrderLines(ctx, order.ID)
		}
		if err != nil {
			return nil, err
		}
		views = append(views, OrderView{Order: order, Products: lines})
	}
	return views, nil
}

package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	ordersRepo "greengarden/database/repository/orders"
	"greengarden/models"
	"greengarden/services/menu"

	"github.com/google/uuid"
)

// PlaceOrder totals the items and stores a confirmed order.
func (s *DefaultOrderService) PlaceOrder(ctx context.Context, customer models.CustomerInfo, items []models.OrderItem) (*models.Order, error) {
	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		lines = append(lines, it)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if !customer.HasContact() {
		return nil, ErrMissingContact
	}
	if customer.Name == "" {
		customer.Name = GuestName
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	order := &models.Order{
		ID:        uuid.New().String(),
		Customer:  customer,
		Items:     lines,
		Total:     menu.Total(lines),
		Status:    models.OrderStatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	return order, nil
}

func (s *DefaultOrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ordersRepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *DefaultOrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.GetAll(ctx)
}

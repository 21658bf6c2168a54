package ordering

import (
	"context"
	"errors"
	"time"

	ordersRepo "greengarden/database/repository/orders"
	"greengarden/models"
)

// GuestName is stored when an order is placed without a customer name.
const GuestName = "Guest"

var (
	ErrEmptyOrder     = errors.New("an order needs at least one item")
	ErrMissingContact = errors.New("a phone number or email address is required")
	ErrOrderNotFound  = errors.New("order not found")
)

// OrderService places and looks up food orders.
type OrderService interface {
	PlaceOrder(ctx context.Context, customer models.CustomerInfo, items []models.OrderItem) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// DefaultOrderService implements OrderService on an OrderRepository.
type DefaultOrderService struct {
	Repo ordersRepo.OrderRepository
	Now  func() time.Time
}

func NewOrderService(repo ordersRepo.OrderRepository) *DefaultOrderService {
	return &DefaultOrderService{Repo: repo, Now: time.Now}
}

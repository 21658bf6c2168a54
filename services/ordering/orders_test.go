package ordering

import (
	"context"
	"errors"
	"testing"
	"time"

	ordersRepo "greengarden/database/repository/orders"
	"greengarden/models"
)

type memOrders struct {
	orders map[string]models.Order
	err    error
}

func (m *memOrders) Create(_ context.Context, o *models.Order) error {
	if m.err != nil {
		return m.err
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ordersRepo.ErrOrderNotFound
	}
	return &o, nil
}

func (m *memOrders) GetAll(context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memOrders) EnsureIndexes() error { return nil }

func TestPlaceOrder(t *testing.T) {
	repo := &memOrders{orders: map[string]models.Order{}}
	svc := NewOrderService(repo)
	fixed := time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	items := []models.OrderItem{
		{MenuItemID: 1, Name: "Margherita Pizza", Price: 9.5, Quantity: 2},
		{MenuItemID: 5, Name: "Tomato Soup", Price: 4.55, Quantity: 1},
	}
	order, err := svc.PlaceOrder(context.Background(), models.CustomerInfo{Phone: "555-123-4567"}, items)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.Total != 23.55 {
		t.Errorf("total = %v, want 23.55", order.Total)
	}
	if order.Customer.Name != GuestName {
		t.Errorf("name = %q, want %q", order.Customer.Name, GuestName)
	}
	if order.Status != models.OrderStatusConfirmed || !order.CreatedAt.Equal(fixed) {
		t.Errorf("order = %+v", order)
	}

	got, err := svc.GetOrder(context.Background(), order.ID)
	if err != nil || got.ID != order.ID {
		t.Fatalf("GetOrder = %v, %v", got, err)
	}
}

func TestPlaceOrderRejects(t *testing.T) {
	svc := NewOrderService(&memOrders{orders: map[string]models.Order{}})
	ctx := context.Background()

	if _, err := svc.PlaceOrder(ctx, models.CustomerInfo{Email: "a@b.co"}, nil); !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("empty items: err = %v", err)
	}
	zero := []models.OrderItem{{MenuItemID: 1, Price: 3, Quantity: 0}}
	if _, err := svc.PlaceOrder(ctx, models.CustomerInfo{Email: "a@b.co"}, zero); !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("zero quantity: err = %v", err)
	}
	one := []models.OrderItem{{MenuItemID: 1, Price: 3, Quantity: 1}}
	if _, err := svc.PlaceOrder(ctx, models.CustomerInfo{Name: "Jane"}, one); !errors.Is(err, ErrMissingContact) {
		t.Errorf("no contact: err = %v", err)
	}
}

func TestPlaceOrderStoreFailure(t *testing.T) {
	svc := NewOrderService(&memOrders{orders: map[string]models.Order{}, err: errors.New("timeout")})
	_, err := svc.PlaceOrder(context.Background(), models.CustomerInfo{Phone: "5551234567"},
		[]models.OrderItem{{MenuItemID: 1, Price: 3, Quantity: 1}})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc := NewOrderService(&memOrders{orders: map[string]models.Order{}})
	if _, err := svc.GetOrder(context.Background(), "missing"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

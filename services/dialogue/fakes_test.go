package dialogue

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"greengarden/models"
	"greengarden/services/booking"
	"greengarden/services/intelligence"
	"greengarden/services/menu"
	"greengarden/services/ordering"
)

// 2025-01-15 is a Wednesday.
var wednesday = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

var testCatalog = []models.MenuItem{
	{ID: 1, Name: "Margherita Pizza", Price: 9.5, Category: "Mains"},
	{ID: 2, Name: "Garlic Bread", Price: 4.25, Category: "Starters"},
	{ID: 3, Name: "Tomato Soup", Price: 5.75, Category: "Starters"},
	{ID: 4, Name: "Vegan Burger", Price: 11, Category: "Mains"},
	{ID: 5, Name: "Green Salad", Price: 6.5, Category: "Salads"},
	{ID: 6, Name: "Chocolate Cake", Price: 5, Category: "Desserts"},
}

type fakeAvailability struct {
	slots map[string][]models.AvailableTime
}

func (f *fakeAvailability) GetAvailableDates(_ context.Context, _ int) ([]models.AvailableDate, error) {
	var dates []models.AvailableDate
	for date, times := range f.slots {
		for _, t := range times {
			if t.Available > 0 {
				dates = append(dates, models.AvailableDate{Date: date, Display: date})
				break
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Date < dates[j].Date })
	return dates, nil
}

func (f *fakeAvailability) GetAvailableTimes(_ context.Context, date string) ([]models.AvailableTime, error) {
	out := []models.AvailableTime{}
	for _, t := range f.slots[date] {
		if t.Available > 0 {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeAvailability) IsTableAvailable(_ context.Context, date, slot string, guests int) (bool, error) {
	for _, t := range f.slots[date] {
		if t.Time == slot {
			return t.Available >= booking.TablesFor(guests, booking.DefaultSeatsPerTable), nil
		}
	}
	return false, nil
}

type fakeReservations struct {
	requests []models.BookingRequest
	err      error
}

func (f *fakeReservations) ReserveTable(_ context.Context, req models.BookingRequest) (*models.TableBooking, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.TableBooking{
		ID:              "booking-1",
		Customer:        req.Customer,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		Tables:          booking.TablesFor(req.Guests, booking.DefaultSeatsPerTable),
		SpecialRequests: req.SpecialRequests,
		Status:          models.BookingStatusConfirmed,
	}, nil
}

type fakeOrders struct {
	placed []models.Order
	err    error
}

func (f *fakeOrders) PlaceOrder(_ context.Context, customer models.CustomerInfo, items []models.OrderItem) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	order := models.Order{
		ID:       "order-1",
		Customer: customer,
		Items:    append([]models.OrderItem(nil), items...),
		Total:    menu.Total(items),
		Status:   models.OrderStatusConfirmed,
	}
	f.placed = append(f.placed, order)
	return &order, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id string) (*models.Order, error) {
	for i := range f.placed {
		if f.placed[i].ID == id {
			return &f.placed[i], nil
		}
	}
	return nil, ordering.ErrOrderNotFound
}

type fakeRecorder struct {
	mu    sync.Mutex
	turns [][2]string
	err   error
}

func (f *fakeRecorder) RecordTurn(_ context.Context, _, userText, botText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turns = append(f.turns, [2]string{userText, botText})
	return f.err
}

type failingStore struct{ SessionStore }

func (failingStore) Get(context.Context, string) (*Session, error) {
	return nil, errors.New("connection refused")
}

type panicClassifier struct{}

func (panicClassifier) Classify(string) intelligence.Classification { panic("boom") }

type fixture struct {
	engine       *Engine
	store        *MemoryStore
	availability *fakeAvailability
	reservations *fakeReservations
	orders       *fakeOrders
	recorder     *fakeRecorder
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	extractor := intelligence.NewExtractor(intelligence.WithClock(func() time.Time { return wednesday }))
	extractor.SetCatalog(testCatalog)

	f := &fixture{
		store: NewMemoryStore(0, 0),
		availability: &fakeAvailability{slots: map[string][]models.AvailableTime{
			"2025-01-16": {
				{Time: "12:00 PM", Available: 3},
				{Time: "6:00 PM", Available: 2},
				{Time: "7:00 PM", Available: 0},
			},
			"2025-01-17": {{Time: "7:00 PM", Available: 4}},
		}},
		reservations: &fakeReservations{},
		orders:       &fakeOrders{},
		recorder:     &fakeRecorder{},
	}
	base := []Option{
		WithClock(func() time.Time { return wednesday }),
		WithRand(rand.New(rand.NewSource(1))),
	}
	engine, err := NewEngine(Deps{
		Classifier:   intelligence.NewPatternClassifier(extractor),
		Matcher:      menu.NewMatcher(testCatalog, menu.WithRand(rand.New(rand.NewSource(1)))),
		Availability: f.availability,
		Reservations: f.reservations,
		Orders:       f.orders,
		Recorder:     f.recorder,
		Store:        f.store,
	}, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	f.engine = engine
	return f
}

func (f *fixture) send(t *testing.T, sessionID, text string) models.ChatResponse {
	t.Helper()
	reply := f.engine.ProcessMessage(context.Background(), sessionID, text)
	if reply.SessionID != sessionID {
		t.Fatalf("session id = %q, want %q", reply.SessionID, sessionID)
	}
	return reply.Response
}

func (f *fixture) session(t *testing.T, id string) *Session {
	t.Helper()
	s, err := f.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("load session %s: %v", id, err)
	}
	return s
}

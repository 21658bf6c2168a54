package dialogue

import (
	"math/rand"
	"strings"
	"testing"

	"greengarden/models"
)

func TestRenderFillsPlaceholders(t *testing.T) {
	r := NewResponder(DefaultRestaurant(), rand.New(rand.NewSource(7)))
	for i := 0; i < 10; i++ {
		got := r.Render(tmplOrderConfirmation, map[string]string{"order_id": "abc", "time": "30 minutes"})
		if !strings.Contains(got, "abc") || !strings.Contains(got, "30 minutes") {
			t.Fatalf("confirmation = %q", got)
		}
	}
}

func TestRenderFallsBackWhenPlaceholderMissing(t *testing.T) {
	r := NewResponder(DefaultRestaurant(), rand.New(rand.NewSource(7)))
	if got := r.Render(tmplSuggestTimes, nil); got != genericReply {
		t.Errorf("got %q, want generic reply", got)
	}
	if got := r.Render("no_such_family", nil); got != genericReply {
		t.Errorf("got %q, want generic reply", got)
	}
}

func TestFormatters(t *testing.T) {
	items := []models.OrderItem{
		{Name: "Margherita Pizza", Price: 9.5, Quantity: 2},
		{Name: "Garlic Bread", Price: 4.25, Quantity: 1},
	}
	want := "Here's your order summary:\n- 2x Margherita Pizza ($9.50 each)\n- 1x Garlic Bread ($4.25 each)\n\nTotal: $23.25"
	if got := FormatOrderSummary(items, 23.25); got != want {
		t.Errorf("order summary =\n%s\nwant\n%s", got, want)
	}
	if got := FormatOrderLines(items); got != "2x Margherita Pizza, 1x Garlic Bread" {
		t.Errorf("order lines = %q", got)
	}

	menu := []models.MenuItem{{Name: "Green Salad", Price: 6.5}, {Name: "Vegan Burger", Price: 11}}
	if got := FormatMenuItems(menu); got != "Green Salad ($6.50), Vegan Burger ($11.00)" {
		t.Errorf("menu items = %q", got)
	}

	bc := &BookingContext{Date: "2025-01-16", Time: "7:00 PM", Guests: 4, SpecialRequests: "high chair"}
	want = "Table reservation for 4 guests\nDate: 2025-01-16\nTime: 7:00 PM\nSpecial requests: high chair"
	if got := FormatBookingSummary(bc); got != want {
		t.Errorf("booking summary = %q", got)
	}

	times := []models.AvailableTime{{Time: "12:00 PM"}, {Time: "6:00 PM"}}
	if got := FormatTimes(times); got != "12:00 PM, 6:00 PM" {
		t.Errorf("times = %q", got)
	}
}

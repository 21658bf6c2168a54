package dialogue

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"greengarden/models"
)

// Restaurant is the profile the assistant speaks for.
type Restaurant struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Hours   []OpeningHours
}

// OpeningHours is one line of the weekly schedule, e.g. {"Friday", "11:00 AM - 11:00 PM"}.
type OpeningHours struct {
	Day   string
	Hours string
}

// DefaultRestaurant is the Green Garden Vegetarian profile.
func DefaultRestaurant() Restaurant {
	return Restaurant{
		Name:    "Green Garden Vegetarian",
		Address: "123 Veggies Ave, Plant City",
		Phone:   "+1 (555) 123-4567",
		Email:   "info@greengarden.com",
		Hours: []OpeningHours{
			{"Monday", "11:00 AM - 9:00 PM"},
			{"Tuesday", "11:00 AM - 9:00 PM"},
			{"Wednesday", "11:00 AM - 9:00 PM"},
			{"Thursday", "11:00 AM - 10:00 PM"},
			{"Friday", "11:00 AM - 11:00 PM"},
			{"Saturday", "10:00 AM - 11:00 PM"},
			{"Sunday", "10:00 AM - 9:00 PM"},
		},
	}
}

// Template families.
const (
	tmplGreeting            = "greeting"
	tmplFarewell            = "farewell"
	tmplUnknown             = "unknown"
	tmplOrderInquiry        = "order_inquiry"
	tmplBookingInquiry      = "booking_inquiry"
	tmplMenuInquiry         = "menu_inquiry"
	tmplOrderConfirmation   = "order_confirmation"
	tmplBookingConfirmation = "booking_confirmation"
	tmplContactRequest      = "contact_request"
	tmplSuggestItems        = "suggest_menu_items"
	tmplSuggestTimes        = "suggest_times"
	tmplNoAvailability      = "no_availability"
	tmplHelp                = "help"
	tmplHours               = "hours_info"
	tmplOrderStatus         = "order_status"
)

// genericReply is used when no variant of a family can be filled.
const genericReply = "I understand. How else can I assist you?"

var templates = map[string][]string{
	tmplGreeting: {
		"Hello! Welcome to {name}. How can I help you today?",
		"Hi there! Thanks for contacting {name}. What can I do for you?",
		"Welcome to {name}! Would you like to place an order or make a reservation?",
	},
	tmplFarewell: {
		"Thank you for your time! Have a great day!",
		"Thanks for chatting with us. Come back soon!",
		"Thank you for choosing {name}. We look forward to serving you!",
	},
	tmplUnknown: {
		"I'm sorry, I didn't understand that. Can you please rephrase?",
		"I'm not sure what you're asking for. Would you like to place an order or make a reservation?",
		"I didn't catch that. How can I help you today?",
	},
	tmplOrderInquiry: {
		"Would you like to place an order for delivery or takeout?",
		"What would you like to order today?",
		"I'd be happy to take your order. What would you like to have?",
	},
	tmplBookingInquiry: {
		"Would you like to make a table reservation? I can help with that.",
		"I can assist you with booking a table. How many people will be dining and when?",
		"When would you like to reserve a table, and for how many people?",
	},
	tmplMenuInquiry: {
		"Here's our menu at {name}:",
		"Let me show you our current menu:",
		"Here are the dishes we offer:",
	},
	tmplOrderConfirmation: {
		"Great! I've placed your order. Your order number is {order_id} and it will be ready in about {time}.",
		"Your order has been confirmed! Order #{order_id} will be ready in {time}.",
		"Thank you for your order! We've got everything set for Order #{order_id}. It will be ready in about {time}.",
	},
	tmplBookingConfirmation: {
		"Perfect! Your table for {guests} is booked for {date} at {time}.",
		"Great! I've reserved a table for {guests} on {date} at {time}.",
		"Your reservation is confirmed for {guests} on {date} at {time}. We look forward to seeing you!",
	},
	tmplContactRequest: {
		"Could I get your name and contact information for the {purpose}?",
		"May I have your name and a phone number for the {purpose}?",
		"What name should I put for the {purpose}, and how can we reach you?",
	},
	tmplSuggestItems: {
		"Some of our popular items include: {items}",
		"Here are some dishes you might enjoy: {items}",
		"I recommend trying our: {items}",
	},
	tmplSuggestTimes: {
		"We have tables available at the following times on {date}: {times}",
		"For {date}, we can offer you a table at: {times}",
		"These time slots are available on {date}: {times}",
	},
	tmplNoAvailability: {
		"I'm sorry, we don't have any tables available at that time.",
		"Unfortunately, we're fully booked for that time slot.",
		"I apologize, but we don't have availability for that time and date.",
	},
	tmplHelp: {
		"I'm the {name} assistant. I can help you place an order or make a table reservation. What would you like to do?",
		"I can assist you with ordering food or booking a table. How can I help you today?",
		"You can ask me about our menu, place an order, or make a reservation. What would you like to do?",
	},
	tmplHours: {
		"Our hours are: {hours}",
		"{name} is open: {hours}",
		"We're open: {hours}",
	},
	tmplOrderStatus: {
		"Order #{order_id} is {status}.",
		"Your order #{order_id} is currently {status}.",
		"I found order #{order_id}. Its status is {status}.",
	},
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// Responder renders template families for a restaurant. Variants are picked at
// random; a variant is skipped when one of its placeholders has no value.
type Responder struct {
	restaurant Restaurant

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponder builds a Responder. A nil rng is replaced by a time-seeded source.
func NewResponder(restaurant Restaurant, rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Responder{restaurant: restaurant, rng: rng}
}

// Render fills a variant of family with values. {name} and {hours} always come from
// the restaurant profile.
func (r *Responder) Render(family string, values map[string]string) string {
	variants := templates[family]
	if len(variants) == 0 {
		return genericReply
	}

	fill := map[string]string{
		"name":  r.restaurant.Name,
		"hours": r.FormatHours(),
	}
	for k, v := range values {
		fill[k] = v
	}

	r.mu.Lock()
	start := r.rng.Intn(len(variants))
	r.mu.Unlock()

	for i := range variants {
		variant := variants[(start+i)%len(variants)]
		if text, ok := fillTemplate(variant, fill); ok {
			return text
		}
	}
	return genericReply
}

func fillTemplate(tmpl string, values map[string]string) (string, bool) {
	ok := true
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(ph string) string {
		v, found := values[ph[1:len(ph)-1]]
		if !found {
			ok = false
			return ph
		}
		return v
	})
	return out, ok
}

// FormatHours lists the weekly schedule in configured day order.
func (r *Responder) FormatHours() string {
	lines := make([]string, 0, len(r.restaurant.Hours))
	for _, h := range r.restaurant.Hours {
		lines = append(lines, fmt.Sprintf("%s: %s", h.Day, h.Hours))
	}
	return strings.Join(lines, ", ")
}

// FormatMenuItems renders items as "Name ($9.50)" joined by commas.
func FormatMenuItems(items []models.MenuItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s ($%.2f)", it.Name, it.Price))
	}
	return strings.Join(parts, ", ")
}

// FormatOrderLines renders items as "2x Margherita Pizza" joined by commas.
func FormatOrderLines(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}

// FormatOrderSummary lists every line with its unit price followed by the total.
func FormatOrderSummary(items []models.OrderItem, total float64) string {
	var b strings.Builder
	b.WriteString("Here's your order summary:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %dx %s ($%.2f each)\n", it.Quantity, it.Name, it.Price)
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f", total)
	return b.String()
}

// FormatBookingSummary describes a reservation draft.
func FormatBookingSummary(c *BookingContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table reservation for %d guests\n", c.Guests)
	fmt.Fprintf(&b, "Date: %s\n", c.Date)
	fmt.Fprintf(&b, "Time: %s\n", c.Time)
	if c.SpecialRequests != "" {
		fmt.Fprintf(&b, "Special requests: %s\n", c.SpecialRequests)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTimes joins the available times with commas.
func FormatTimes(times []models.AvailableTime) string {
	parts := make([]string, 0, len(times))
	for _, t := range times {
		parts = append(parts, t.Time)
	}
	return strings.Join(parts, ", ")
}

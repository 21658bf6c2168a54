package dialogue

import (
	"encoding/json"
	"errors"
	"time"

	"greengarden/models"
	"greengarden/services/intelligence"
)

// FlowContext is the data collected by the active flow. It is either an
// *OrderingContext or a *BookingContext.
type FlowContext interface {
	flow() State
	cloneContext() FlowContext
}

// OrderingContext accumulates an order. Items are unique by catalog id.
type OrderingContext struct {
	Stage    OrderStage          `json:"stage"`
	Items    []models.OrderItem  `json:"items"`
	Customer models.CustomerInfo `json:"customer_info"`
}

// BookingContext accumulates a table reservation.
type BookingContext struct {
	Stage           BookingStage        `json:"stage"`
	Date            string              `json:"date,omitempty"`
	Time            string              `json:"time,omitempty"`
	Guests          int                 `json:"guests,omitempty"`
	Customer        models.CustomerInfo `json:"customer_info"`
	SpecialRequests string              `json:"special_requests,omitempty"`
}

func (*OrderingContext) flow() State { return StateOrdering }
func (*BookingContext) flow() State  { return StateBooking }

func (c *OrderingContext) cloneContext() FlowContext {
	cp := *c
	cp.Items = append([]models.OrderItem(nil), c.Items...)
	return &cp
}

func (c *BookingContext) cloneContext() FlowContext {
	cp := *c
	return &cp
}

func (c *OrderingContext) moveTo(stage OrderStage) error {
	if err := orderTransitions.check(c.Stage, stage); err != nil {
		return err
	}
	c.Stage = stage
	return nil
}

func (c *BookingContext) moveTo(stage BookingStage) error {
	if err := bookingTransitions.check(c.Stage, stage); err != nil {
		return err
	}
	c.Stage = stage
	return nil
}

// AddItems merges items into the order. An id already present has its quantity
// increased; new ids are appended. Items without a positive quantity are ignored.
// The returned slice holds what was actually added.
func (c *OrderingContext) AddItems(items []models.OrderItem) []models.OrderItem {
	var added []models.OrderItem
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		added = append(added, it)
		merged := false
		for i := range c.Items {
			if c.Items[i].MenuItemID == it.MenuItemID {
				c.Items[i].Quantity += it.Quantity
				merged = true
				break
			}
		}
		if !merged {
			c.Items = append(c.Items, it)
		}
	}
	return added
}

// Draft is the reservation as collected so far.
func (c *BookingContext) Draft() *models.BookingDraft {
	return &models.BookingDraft{
		Date:            c.Date,
		Time:            c.Time,
		Guests:          c.Guests,
		SpecialRequests: c.SpecialRequests,
	}
}

// Turn is one exchange in a conversation.
type Turn struct {
	User       string              `json:"user"`
	Intent     intelligence.Intent `json:"intent,omitempty"`
	Confidence float64             `json:"confidence,omitempty"`
	Bot        string              `json:"bot,omitempty"`
	At         time.Time           `json:"at"`
}

// Session is the conversation state for one session id.
type Session struct {
	ID          string
	State       State
	Context     FlowContext
	History     []Turn
	LastOrderID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession starts a conversation in the initial state.
func NewSession(id string, now time.Time) *Session {
	return &Session{ID: id, State: StateInitial, CreatedAt: now, UpdatedAt: now}
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Context != nil {
		cp.Context = s.Context.cloneContext()
	}
	cp.History = append([]Turn(nil), s.History...)
	return &cp
}

// Ordering returns the ordering context when the session is in the ordering flow.
func (s *Session) Ordering() (*OrderingContext, bool) {
	oc, ok := s.Context.(*OrderingContext)
	return oc, ok && s.State == StateOrdering
}

// Booking returns the booking context when the session is in the booking flow.
func (s *Session) Booking() (*BookingContext, bool) {
	bc, ok := s.Context.(*BookingContext)
	return bc, ok && s.State == StateBooking
}

// enter switches to the flow that owns fc.
func (s *Session) enter(fc FlowContext) error {
	if err := stateTransitions.check(s.State, fc.flow()); err != nil {
		return err
	}
	s.State = fc.flow()
	s.Context = fc
	return nil
}

// reset returns the session to the initial state. It is legal from any state.
func (s *Session) reset() {
	s.State = StateInitial
	s.Context = nil
}

func (s *Session) appendTurn(t Turn, limit int) {
	s.History = append(s.History, t)
	if limit > 0 && len(s.History) > limit {
		s.History = append([]Turn(nil), s.History[len(s.History)-limit:]...)
	}
	s.UpdatedAt = t.At
}

var errMixedContext = errors.New("dialogue: session holds both an ordering and a booking context")

type sessionJSON struct {
	ID          string           `json:"session_id"`
	State       State            `json:"state"`
	Ordering    *OrderingContext `json:"ordering,omitempty"`
	Booking     *BookingContext  `json:"booking,omitempty"`
	History     []Turn           `json:"history"`
	LastOrderID string           `json:"last_order_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	out := sessionJSON{
		ID:          s.ID,
		State:       s.State,
		History:     s.History,
		LastOrderID: s.LastOrderID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	switch fc := s.Context.(type) {
	case *OrderingContext:
		out.Ordering = fc
	case *BookingContext:
		out.Booking = fc
	}
	return json.Marshal(out)
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var in sessionJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in.Ordering != nil && in.Booking != nil {
		return errMixedContext
	}
	*s = Session{
		ID:          in.ID,
		State:       in.State,
		History:     in.History,
		LastOrderID: in.LastOrderID,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
	switch {
	case in.Ordering != nil:
		s.Context = in.Ordering
	case in.Booking != nil:
		s.Context = in.Booking
	}
	return nil
}

package dialogue

import "fmt"

// State is the flow a session is in.
type State uint8

const (
	StateInitial State = iota
	StateOrdering
	StateBooking
)

// OrderStage is the step within the ordering flow.
type OrderStage uint8

const (
	OrderItemSelection OrderStage = iota
	OrderConfirmation
	OrderCustomerDetails
)

// BookingStage is the step within the booking flow.
type BookingStage uint8

const (
	BookingDateSelection BookingStage = iota
	BookingTimeSelection
	BookingGuestsSelection
	BookingConfirmation
	BookingCustomerDetails
)

var (
	stateNames        = []string{"initial", "ordering", "booking"}
	orderStageNames   = []string{"item_selection", "confirmation", "customer_details"}
	bookingStageNames = []string{"date_selection", "time_selection", "guests_selection", "confirmation", "customer_details"}
)

var stateTransitions = mustTransitions("state", stateNames, map[State][]State{
	StateInitial:  {StateInitial, StateOrdering, StateBooking},
	StateOrdering: {StateOrdering, StateInitial},
	StateBooking:  {StateBooking, StateInitial},
})

var orderTransitions = mustTransitions("ordering", orderStageNames, map[OrderStage][]OrderStage{
	OrderItemSelection:   {OrderItemSelection, OrderConfirmation},
	OrderConfirmation:    {OrderItemSelection, OrderCustomerDetails},
	OrderCustomerDetails: {OrderCustomerDetails},
})

var bookingTransitions = mustTransitions("booking", bookingStageNames, map[BookingStage][]BookingStage{
	BookingDateSelection:   {BookingDateSelection, BookingTimeSelection},
	BookingTimeSelection:   {BookingTimeSelection, BookingGuestsSelection},
	BookingGuestsSelection: {BookingGuestsSelection, BookingTimeSelection, BookingConfirmation},
	BookingConfirmation:    {BookingDateSelection, BookingCustomerDetails},
	BookingCustomerDetails: {BookingCustomerDetails},
})

func (s State) String() string        { return enumName(stateNames, s) }
func (s OrderStage) String() string   { return enumName(orderStageNames, s) }
func (s BookingStage) String() string { return enumName(bookingStageNames, s) }

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool { return int(s) < len(stateNames) }

func (s State) MarshalText() ([]byte, error)        { return enumText(stateNames, "state", s) }
func (s OrderStage) MarshalText() ([]byte, error)   { return enumText(orderStageNames, "ordering stage", s) }
func (s BookingStage) MarshalText() ([]byte, error) { return enumText(bookingStageNames, "booking stage", s) }

func (s *State) UnmarshalText(b []byte) error {
	return parseEnum(stateNames, "state", b, s)
}

func (s *OrderStage) UnmarshalText(b []byte) error {
	return parseEnum(orderStageNames, "ordering stage", b, s)
}

func (s *BookingStage) UnmarshalText(b []byte) error {
	return parseEnum(bookingStageNames, "booking stage", b, s)
}

// TransitionError reports a move the transition table does not allow.
type TransitionError struct {
	Machine string
	From    string
	To      string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal %s transition from %s to %s", e.Machine, e.From, e.To)
}

type enum interface {
	~uint8
	fmt.Stringer
}

// transitions is an adjacency set keyed by the current value.
type transitions[T enum] struct {
	machine string
	edges   map[T]map[T]bool
}

// mustTransitions builds a transition table and panics when it names an undeclared
// value or leaves a declared value without outgoing edges.
func mustTransitions[T enum](machine string, names []string, edges map[T][]T) transitions[T] {
	t := transitions[T]{machine: machine, edges: make(map[T]map[T]bool, len(edges))}
	for from, targets := range edges {
		if int(from) >= len(names) {
			panic(fmt.Sprintf("dialogue: %s table uses undeclared value %d", machine, from))
		}
		set := make(map[T]bool, len(targets))
		for _, to := range targets {
			if int(to) >= len(names) {
				panic(fmt.Sprintf("dialogue: %s table uses undeclared value %d", machine, to))
			}
			set[to] = true
		}
		t.edges[from] = set
	}
	for i := range names {
		if len(t.edges[T(i)]) == 0 {
			panic(fmt.Sprintf("dialogue: %s table has no transitions from %s", machine, names[i]))
		}
	}
	return t
}

func (t transitions[T]) check(from, to T) error {
	if t.edges[from][to] {
		return nil
	}
	return &TransitionError{Machine: t.machine, From: from.String(), To: to.String()}
}

func enumName[T ~uint8](names []string, v T) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", v)
}

func enumText[T ~uint8](names []string, kind string, v T) ([]byte, error) {
	if int(v) >= len(names) {
		return nil, fmt.Errorf("dialogue: invalid %s %d", kind, v)
	}
	return []byte(names[v]), nil
}

func parseEnum[T ~uint8](names []string, kind string, b []byte, dst *T) error {
	for i, name := range names {
		if name == string(b) {
			*dst = T(i)
			return nil
		}
	}
	return fmt.Errorf("dialogue: unknown %s %q", kind, b)
}

package models

// ChatRequest is the body accepted by the chat endpoints.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatReply pairs a response with the session it belongs to.
type ChatReply struct {
	Response  ChatResponse `json:"response"`
	SessionID string       `json:"session_id"`
}

// ChatResponse is the assistant's answer. Only the fields relevant to the current flow are set.
type ChatResponse struct {
	Text           string          `json:"text"`
	Items          []OrderItem     `json:"items,omitempty"`
	Total          *float64        `json:"total,omitempty"`
	Suggestions    []MenuItem      `json:"suggestions,omitempty"`
	Menu           []MenuItem      `json:"menu,omitempty"`
	AvailableDates []AvailableDate `json:"available_dates,omitempty"`
	AvailableTimes []AvailableTime `json:"available_times,omitempty"`
	Booking        *BookingDraft   `json:"booking,omitempty"`
	Reservation    *TableBooking   `json:"reservation,omitempty"`
	Order          *Order          `json:"order,omitempty"`
	Error          string          `json:"error,omitempty"`
	Detail         string          `json:"detail,omitempty"`
}

// BookingDraft is the reservation collected so far, echoed back during the booking flow.
type BookingDraft struct {
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	Guests          int    `json:"guests,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

package dialogue

import (
	"context"
	"fmt"
	"strconv"

	"greengarden/models"
	"greengarden/services/booking"
	"greengarden/services/intelligence"

	"go.uber.org/zap"
)

const (
	bookingCancelledText = "I've cancelled your reservation request. Is there anything else I can help with?"
	contactPromptText    = "How can we contact you? Please provide a phone number or email."
)

func (e *Engine) handleBooking(ctx context.Context, s *Session, bc *BookingContext, m message) (models.ChatResponse, error) {
	if m.intent == intelligence.IntentCancel {
		s.reset()
		return models.ChatResponse{Text: bookingCancelledText}, nil
	}
	if req, ok := m.entities.First(intelligence.EntitySpecialRequest); ok {
		bc.SpecialRequests = req
	}

	switch bc.Stage {
	case BookingDateSelection:
		if date, ok := m.entities.First(intelligence.EntityProcessedDate); ok {
			return e.selectDate(ctx, bc, date)
		}
		return e.withDates(ctx, models.ChatResponse{Text: "What date would you like to make a reservation for?"})

	case BookingTimeSelection:
		return e.bookingTime(ctx, bc, m)

	case BookingGuestsSelection:
		raw, ok := m.entities.First(intelligence.EntityNumber)
		if !ok {
			return models.ChatResponse{Text: "How many people will be in your party?"}, nil
		}
		return e.bookingGuests(ctx, bc, booking.ParseGuests(raw))

	case BookingConfirmation:
		return e.bookingConfirmation(ctx, s, bc, m)

	case BookingCustomerDetails:
		bc.Customer.Merge(m.entities.Customer())
		return e.bookingCustomerDetails(ctx, s, bc)
	}
	return e.withDates(ctx, models.ChatResponse{Text: "Let's continue with your reservation. What date would you like to book?"})
}

// selectDate takes a resolved date and lists its free times. A date without free
// tables is not kept; the guest is offered the open dates instead.
func (e *Engine) selectDate(ctx context.Context, bc *BookingContext, date string) (models.ChatResponse, error) {
	times, err := e.availability.GetAvailableTimes(ctx, date)
	if err != nil {
		return models.ChatResponse{}, err
	}
	if len(times) == 0 {
		bc.Date = ""
		resp := e.say(tmplNoAvailability, nil)
		resp.Text += " Would you like to try another date?"
		return e.withDates(ctx, resp)
	}

	bc.Date = date
	if err := bc.moveTo(BookingTimeSelection); err != nil {
		return models.ChatResponse{}, err
	}
	resp := e.say(tmplSuggestTimes, map[string]string{"date": date, "times": FormatTimes(times)})
	resp.AvailableTimes = times
	resp.Booking = bc.Draft()
	return resp, nil
}

func (e *Engine) bookingTime(ctx context.Context, bc *BookingContext, m message) (models.ChatResponse, error) {
	times, err := e.availability.GetAvailableTimes(ctx, bc.Date)
	if err != nil {
		return models.ChatResponse{}, err
	}

	raw, ok := m.entities.First(intelligence.EntityTime)
	if !ok {
		return models.ChatResponse{
			Text:           fmt.Sprintf("What time would you like to book the table? Available times are: %s", FormatTimes(times)),
			AvailableTimes: times,
		}, nil
	}

	slot, ok := booking.NormalizeTime(raw)
	if !ok {
		return models.ChatResponse{
			Text:           fmt.Sprintf("I'm sorry, I couldn't understand that time. Available times for %s are: %s", bc.Date, FormatTimes(times)),
			AvailableTimes: times,
		}, nil
	}
	if !offersTime(times, slot) {
		resp := e.say(tmplNoAvailability, nil)
		resp.Text += fmt.Sprintf(" Available times for %s are: %s", bc.Date, FormatTimes(times))
		resp.AvailableTimes = times
		return resp, nil
	}

	bc.Time = slot
	if err := bc.moveTo(BookingGuestsSelection); err != nil {
		return models.ChatResponse{}, err
	}
	if bc.Guests > 0 {
		return e.bookingGuests(ctx, bc, bc.Guests)
	}
	return models.ChatResponse{Text: "How many people will be dining?", Booking: bc.Draft()}, nil
}

// bookingGuests records the party size and only moves on to confirmation when the
// chosen slot can seat it.
func (e *Engine) bookingGuests(ctx context.Context, bc *BookingContext, guests int) (models.ChatResponse, error) {
	bc.Guests = guests
	available, err := e.availability.IsTableAvailable(ctx, bc.Date, bc.Time, guests)
	if err != nil {
		return models.ChatResponse{}, err
	}

	if !available {
		if err := bc.moveTo(BookingTimeSelection); err != nil {
			return models.ChatResponse{}, err
		}
		times, err := e.availability.GetAvailableTimes(ctx, bc.Date)
		if err != nil {
			return models.ChatResponse{}, err
		}
		return models.ChatResponse{
			Text: fmt.Sprintf("I'm sorry, we don't have availability for %d guests at %s on %s. Available times are: %s",
				guests, bc.Time, bc.Date, FormatTimes(times)),
			AvailableTimes: times,
		}, nil
	}

	if err := bc.moveTo(BookingConfirmation); err != nil {
		return models.ChatResponse{}, err
	}
	return models.ChatResponse{
		Text:    FormatBookingSummary(bc) + "\n\nWould you like to confirm this reservation?",
		Booking: bc.Draft(),
	}, nil
}

func (e *Engine) bookingConfirmation(ctx context.Context, s *Session, bc *BookingContext, m message) (models.ChatResponse, error) {
	if m.intent == intelligence.IntentAffirm {
		if err := bc.moveTo(BookingCustomerDetails); err != nil {
			return models.ChatResponse{}, err
		}
		bc.Customer.Merge(m.entities.Customer())
		if bc.Customer.Complete() {
			return e.finalizeBooking(ctx, s, bc)
		}
		return e.say(tmplContactRequest, map[string]string{"purpose": "reservation"}), nil
	}

	if err := bc.moveTo(BookingDateSelection); err != nil {
		return models.ChatResponse{}, err
	}
	text := "What would you like to change in your reservation?"
	if m.intent == intelligence.IntentDeny {
		text = "No problem. Let's start over. What date would you like to make a reservation for?"
	}
	return e.withDates(ctx, models.ChatResponse{Text: text})
}

func (e *Engine) bookingCustomerDetails(ctx context.Context, s *Session, bc *BookingContext) (models.ChatResponse, error) {
	if bc.Customer.Complete() {
		return e.finalizeBooking(ctx, s, bc)
	}
	if bc.Customer.Name == "" {
		return models.ChatResponse{Text: "What name should I put for this reservation?"}, nil
	}
	return models.ChatResponse{Text: contactPromptText}, nil
}

// finalizeBooking reserves the table. The reservation re-checks availability, so a
// slot taken since the guests step fails here and the session stays put for a retry.
func (e *Engine) finalizeBooking(ctx context.Context, s *Session, bc *BookingContext) (models.ChatResponse, error) {
	reservation, err := e.reservations.ReserveTable(ctx, models.BookingRequest{
		Date:            bc.Date,
		Time:            bc.Time,
		Guests:          bc.Guests,
		Customer:        bc.Customer,
		SpecialRequests: bc.SpecialRequests,
	})
	if err != nil {
		e.logger.Warn("Failed to reserve table", zap.String("sessionID", s.ID), zap.Error(err))
		return models.ChatResponse{
			Text:    fmt.Sprintf("I'm sorry, there was an error processing your booking: %v. Please try again.", err),
			Booking: bc.Draft(),
			Error:   ErrCodeBooking,
			Detail:  err.Error(),
		}, nil
	}

	s.reset()
	e.logger.Info("Table reserved", zap.String("sessionID", s.ID), zap.String("bookingID", reservation.ID))

	resp := e.say(tmplBookingConfirmation, map[string]string{
		"guests": strconv.Itoa(reservation.Guests),
		"date":   reservation.Date,
		"time":   reservation.Time,
	})
	resp.Reservation = reservation
	return resp, nil
}

func (e *Engine) withDates(ctx context.Context, resp models.ChatResponse) (models.ChatResponse, error) {
	dates, err := e.availability.GetAvailableDates(ctx, e.daysAhead)
	if err != nil {
		return models.ChatResponse{}, err
	}
	resp.AvailableDates = dates
	return resp, nil
}

func offersTime(times []models.AvailableTime, slot string) bool {
	for _, t := range times {
		if t.Time == slot {
			return true
		}
	}
	return false
}

package dialogue

import (
	"context"
	"errors"
	"fmt"

	"greengarden/models"
	"greengarden/services/intelligence"
	"greengarden/services/ordering"

	"go.uber.org/zap"
)

const noOrderText = "I couldn't find an order from this conversation. Would you like to place one?"

func (e *Engine) handleInitial(ctx context.Context, s *Session, m message) (models.ChatResponse, error) {
	switch m.intent {
	case intelligence.IntentGreeting:
		return e.say(tmplGreeting, nil), nil
	case intelligence.IntentFarewell:
		return e.say(tmplFarewell, nil), nil
	case intelligence.IntentOrderFood:
		return e.startOrdering(s, m)
	case intelligence.IntentBookTable:
		return e.startBooking(ctx, s, m)
	case intelligence.IntentCheckMenu:
		resp := e.say(tmplMenuInquiry, nil)
		resp.Menu = e.matcher.Catalog()
		return resp, nil
	case intelligence.IntentCheckHours:
		return e.say(tmplHours, nil), nil
	case intelligence.IntentHelp:
		return e.say(tmplHelp, nil), nil
	case intelligence.IntentOrderStatus:
		return e.orderStatus(ctx, s)
	}
	return e.say(tmplUnknown, nil), nil
}

// handleFallback answers a session whose state and context disagree. The session is
// returned to the initial state and the message is handled by intent alone.
func (e *Engine) handleFallback(ctx context.Context, s *Session, m message) (models.ChatResponse, error) {
	e.logger.Warn("Session in unexpected state, handling by intent",
		zap.String("sessionID", s.ID), zap.String("state", s.State.String()))
	s.reset()
	return e.handleInitial(ctx, s, m)
}

func (e *Engine) startOrdering(s *Session, m message) (models.ChatResponse, error) {
	oc := &OrderingContext{Stage: OrderItemSelection}
	if err := s.enter(oc); err != nil {
		return models.ChatResponse{}, err
	}

	if m.entities.Has(intelligence.EntityFoodItem) {
		if added := oc.AddItems(e.matcher.IdentifyItems(m.text)); len(added) > 0 {
			return models.ChatResponse{
				Text:  fmt.Sprintf("I've added %s to your order. Would you like anything else?", FormatOrderLines(added)),
				Items: oc.Items,
			}, nil
		}
	}

	suggestions := e.matcher.Suggest(m.entities[intelligence.EntityFoodItem], e.suggestionCount)
	text := e.responses.Render(tmplOrderInquiry, nil) + "\n\n" +
		e.responses.Render(tmplSuggestItems, map[string]string{"items": FormatMenuItems(suggestions)})
	return models.ChatResponse{Text: text, Suggestions: suggestions}, nil
}

func (e *Engine) startBooking(ctx context.Context, s *Session, m message) (models.ChatResponse, error) {
	bc := &BookingContext{Stage: BookingDateSelection}
	if err := s.enter(bc); err != nil {
		return models.ChatResponse{}, err
	}
	if req, ok := m.entities.First(intelligence.EntitySpecialRequest); ok {
		bc.SpecialRequests = req
	}

	if date, ok := m.entities.First(intelligence.EntityProcessedDate); ok {
		return e.selectDate(ctx, bc, date)
	}

	dates, err := e.availability.GetAvailableDates(ctx, e.daysAhead)
	if err != nil {
		return models.ChatResponse{}, err
	}
	resp := e.say(tmplBookingInquiry, nil)
	resp.AvailableDates = dates
	return resp, nil
}

func (e *Engine) orderStatus(ctx context.Context, s *Session) (models.ChatResponse, error) {
	if s.LastOrderID == "" {
		return models.ChatResponse{Text: noOrderText}, nil
	}
	order, err := e.orders.GetOrder(ctx, s.LastOrderID)
	if errors.Is(err, ordering.ErrOrderNotFound) {
		return models.ChatResponse{Text: noOrderText}, nil
	}
	if err != nil {
		return models.ChatResponse{}, err
	}
	resp := e.say(tmplOrderStatus, map[string]string{"order_id": order.ID, "status": order.Status})
	resp.Order = order
	return resp, nil
}

func (e *Engine) say(family string, values map[string]string) models.ChatResponse {
	return models.ChatResponse{Text: e.responses.Render(family, values)}
}

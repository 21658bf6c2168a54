package dialogue

import (
	"context"
	"fmt"

	"greengarden/models"
	"greengarden/services/intelligence"
	"greengarden/services/menu"

	"go.uber.org/zap"
)

var (
	completionPhrases = []string{"that's all", "nothing", "done", "complete", "finish", "no more", "that is all"}
	affirmWords       = []string{"yes", "yeah", "yep", "sure", "ok", "okay"}
	denyWords         = []string{"no", "nope", "cancel"}
)

const (
	orderCancelledText = "I've cancelled your order. Is there anything else I can help with?"
	moreItemsText      = "What else would you like to order? Or say 'that's all' if you're done."
)

func (e *Engine) handleOrdering(ctx context.Context, s *Session, oc *OrderingContext, m message) (models.ChatResponse, error) {
	if m.intent == intelligence.IntentCancel {
		s.reset()
		return models.ChatResponse{Text: orderCancelledText}, nil
	}

	switch oc.Stage {
	case OrderItemSelection:
		return e.orderItemSelection(oc, m)
	case OrderConfirmation:
		return e.orderConfirmation(ctx, s, oc, m)
	case OrderCustomerDetails:
		oc.Customer.Merge(m.entities.Customer())
		return e.orderCustomerDetails(ctx, s, oc)
	}
	return models.ChatResponse{Text: "Is there anything else you'd like to add to your order?"}, nil
}

func (e *Engine) orderItemSelection(oc *OrderingContext, m message) (models.ChatResponse, error) {
	if m.contains(completionPhrases...) || m.intent == intelligence.IntentAffirm || m.intent == intelligence.IntentDeny {
		if len(oc.Items) == 0 {
			suggestions := e.matcher.Suggest(nil, e.suggestionCount)
			return models.ChatResponse{
				Text:        "You haven't selected any items yet. Here are some suggestions:\n\n" + FormatMenuItems(suggestions),
				Suggestions: suggestions,
			}, nil
		}
		if err := oc.moveTo(OrderConfirmation); err != nil {
			return models.ChatResponse{}, err
		}
		total := menu.Total(oc.Items)
		return models.ChatResponse{
			Text:  FormatOrderSummary(oc.Items, total) + "\n\nWould you like to proceed with this order?",
			Items: oc.Items,
			Total: &total,
		}, nil
	}

	// A message that only names dishes classifies as unknown; it still adds them.
	wantsItems := m.intent == intelligence.IntentOrderFood || m.intent == intelligence.IntentUnknown
	if wantsItems && m.entities.Has(intelligence.EntityFoodItem) {
		if added := oc.AddItems(e.matcher.IdentifyItems(m.text)); len(added) > 0 {
			return models.ChatResponse{
				Text:  fmt.Sprintf("I've added %s to your order. Would you like anything else?", FormatOrderLines(added)),
				Items: oc.Items,
			}, nil
		}
	}
	return models.ChatResponse{Text: moreItemsText}, nil
}

func (e *Engine) orderConfirmation(ctx context.Context, s *Session, oc *OrderingContext, m message) (models.ChatResponse, error) {
	switch {
	case m.intent == intelligence.IntentAffirm || m.mentions(affirmWords...):
		if err := oc.moveTo(OrderCustomerDetails); err != nil {
			return models.ChatResponse{}, err
		}
		oc.Customer.Merge(m.entities.Customer())
		if oc.Customer.Complete() {
			return e.finalizeOrder(ctx, s, oc)
		}
		return e.say(tmplContactRequest, map[string]string{"purpose": "order"}), nil

	case m.intent == intelligence.IntentDeny || m.mentions(denyWords...):
		if err := oc.moveTo(OrderItemSelection); err != nil {
			return models.ChatResponse{}, err
		}
		return models.ChatResponse{Text: "No problem. What changes would you like to make to your order?"}, nil
	}

	if err := oc.moveTo(OrderItemSelection); err != nil {
		return models.ChatResponse{}, err
	}
	return models.ChatResponse{Text: "What would you like to change in your order?"}, nil
}

func (e *Engine) orderCustomerDetails(ctx context.Context, s *Session, oc *OrderingContext) (models.ChatResponse, error) {
	if oc.Customer.Complete() {
		return e.finalizeOrder(ctx, s, oc)
	}
	if oc.Customer.Name == "" {
		return models.ChatResponse{Text: "What name should I put for this order?"}, nil
	}
	return models.ChatResponse{Text: contactPromptText}, nil
}

// finalizeOrder places the order. A failed placement keeps the session in
// customer_details so the guest can retry.
func (e *Engine) finalizeOrder(ctx context.Context, s *Session, oc *OrderingContext) (models.ChatResponse, error) {
	order, err := e.orders.PlaceOrder(ctx, oc.Customer, oc.Items)
	if err != nil {
		e.logger.Warn("Failed to place order", zap.String("sessionID", s.ID), zap.Error(err))
		return models.ChatResponse{
			Text:   fmt.Sprintf("I'm sorry, there was an error processing your order: %v. Please try again.", err),
			Error:  ErrCodeOrder,
			Detail: err.Error(),
		}, nil
	}

	s.LastOrderID = order.ID
	s.reset()
	e.logger.Info("Order placed", zap.String("sessionID", s.ID), zap.String("orderID", order.ID), zap.Float64("total", order.Total))

	resp := e.say(tmplOrderConfirmation, map[string]string{"order_id": order.ID, "time": e.readyEstimate})
	resp.Order = order
	return resp, nil
}

package dialogue

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"greengarden/models"
)

func TestTransitionTables(t *testing.T) {
	oc := &OrderingContext{Stage: OrderItemSelection}
	err := oc.moveTo(OrderCustomerDetails)
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransitionError", err)
	}
	if terr.From != "item_selection" || terr.To != "customer_details" || oc.Stage != OrderItemSelection {
		t.Errorf("error = %+v, stage = %v", terr, oc.Stage)
	}
	if err := oc.moveTo(OrderConfirmation); err != nil {
		t.Errorf("item_selection -> confirmation: %v", err)
	}

	bc := &BookingContext{Stage: BookingDateSelection}
	if err := bc.moveTo(BookingConfirmation); err == nil {
		t.Error("date_selection -> confirmation should be rejected")
	}

	s := NewSession("s1", time.Now())
	if err := s.enter(&OrderingContext{}); err != nil {
		t.Fatalf("enter ordering: %v", err)
	}
	if err := s.enter(&BookingContext{}); err == nil {
		t.Error("ordering -> booking should be rejected")
	}
	s.reset()
	if s.State != StateInitial || s.Context != nil {
		t.Errorf("reset left %+v", s)
	}
}

func TestMustTransitionsRejectsIncompleteTable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a stage without transitions")
		}
	}()
	mustTransitions("ordering", orderStageNames, map[OrderStage][]OrderStage{
		OrderItemSelection: {OrderConfirmation},
	})
}

func TestStateText(t *testing.T) {
	b, err := json.Marshal(StateBooking)
	if err != nil || string(b) != `"booking"` {
		t.Errorf("marshal = %s, %v", b, err)
	}
	var st BookingStage
	if err := json.Unmarshal([]byte(`"guests_selection"`), &st); err != nil || st != BookingGuestsSelection {
		t.Errorf("unmarshal = %v, %v", st, err)
	}
	var s State
	if err := json.Unmarshal([]byte(`"checkout"`), &s); err == nil {
		t.Error("unknown state should fail to decode")
	}
	if State(9).String() != "unknown(9)" {
		t.Errorf("String = %q", State(9).String())
	}
}

func TestSessionJSON(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	s := NewSession("s1", now)
	oc := &OrderingContext{Stage: OrderConfirmation}
	oc.AddItems([]models.OrderItem{{MenuItemID: 2, Name: "Garlic Bread", Price: 4.25, Quantity: 2}})
	if err := s.enter(oc); err != nil {
		t.Fatal(err)
	}
	s.appendTurn(Turn{User: "hi", Intent: "greeting", Bot: "Hello!", At: now}, 0)

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Session
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	goc, ok := got.Ordering()
	if !ok || goc.Stage != OrderConfirmation || len(goc.Items) != 1 || goc.Items[0].Quantity != 2 {
		t.Errorf("decoded ordering = %+v", goc)
	}
	if len(got.History) != 1 || got.History[0].Bot != "Hello!" {
		t.Errorf("decoded history = %+v", got.History)
	}

	mixed := []byte(`{"session_id":"x","state":"ordering","ordering":{"stage":"confirmation"},"booking":{"stage":"confirmation"}}`)
	if err := json.Unmarshal(mixed, &got); err == nil {
		t.Error("a session with both contexts should fail to decode")
	}
}

func TestAddItemsMergesByID(t *testing.T) {
	oc := &OrderingContext{}
	oc.AddItems([]models.OrderItem{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 3, Quantity: 1}})
	added := oc.AddItems([]models.OrderItem{{MenuItemID: 1, Quantity: 3}, {MenuItemID: 4, Quantity: 0}})

	if len(added) != 1 || len(oc.Items) != 2 {
		t.Fatalf("added = %+v, items = %+v", added, oc.Items)
	}
	if oc.Items[0].MenuItemID != 1 || oc.Items[0].Quantity != 5 {
		t.Errorf("merged item = %+v", oc.Items[0])
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewSession("s1", time.Now())
	oc := &OrderingContext{}
	oc.AddItems([]models.OrderItem{{MenuItemID: 1, Quantity: 1}})
	_ = s.enter(oc)

	cp := s.Clone()
	coc, _ := cp.Ordering()
	coc.Items[0].Quantity = 9
	coc.Stage = OrderConfirmation

	if oc.Items[0].Quantity != 1 || oc.Stage != OrderItemSelection {
		t.Errorf("clone shares state with the original: %+v", oc)
	}
}

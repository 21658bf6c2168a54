package menu

import (
	"math/rand"
	"testing"

	"greengarden/models"
)

func testCatalog() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Name: "Margherita Pizza", Price: 9.5},
		{ID: 2, Name: "Garlic Bread", Price: 4.25},
		{ID: 3, Name: "Chefs Special", Price: 15},
		{ID: 4, Name: "Veggie Pizza", Price: 11},
		{ID: 5, Name: "Lentil Soup", Price: 6.75},
	}
}

func newTestMatcher() *Matcher {
	return NewMatcher(testCatalog(), WithRand(rand.New(rand.NewSource(1))))
}

func TestIdentifyExactNames(t *testing.T) {
	m := newTestMatcher()
	for _, item := range testCatalog() {
		got := m.IdentifyItems(item.Name)
		if len(got) == 0 || got[0].MenuItemID != item.ID {
			t.Fatalf("IdentifyItems(%q) = %+v, want item %d first", item.Name, got, item.ID)
		}
		if got[0].Confidence != ExactConfidence {
			t.Errorf("IdentifyItems(%q) confidence = %v, want 1.0", item.Name, got[0].Confidence)
		}
	}
}

func TestIdentifyWithQuantity(t *testing.T) {
	m := newTestMatcher()
	got := m.IdentifyItems("I'd like to order 2 margherita pizza")
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(got), got)
	}
	want := models.OrderItem{MenuItemID: 1, Name: "Margherita Pizza", Price: 9.5, Quantity: 2, Confidence: 1.0}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestIdentifyQuantityAfterName(t *testing.T) {
	m := newTestMatcher()
	got := m.IdentifyItems("garlic bread 3")
	if len(got) != 1 || got[0].Quantity != 3 {
		t.Fatalf("got %+v, want garlic bread x3", got)
	}
}

func TestIdentifyNormalized(t *testing.T) {
	m := newTestMatcher()
	got := m.IdentifyItems("The Chef's Special!")
	if len(got) != 1 || got[0].MenuItemID != 3 {
		t.Fatalf("got %+v, want chefs special", got)
	}
	if got[0].Confidence != NormalizedConfidence {
		t.Errorf("confidence = %v, want %v", got[0].Confidence, NormalizedConfidence)
	}
}

func TestIdentifyNormalizedStopsAtFirstHit(t *testing.T) {
	m := newTestMatcher()
	got := m.IdentifyItems("pizza")
	if len(got) != 1 || got[0].MenuItemID != 1 {
		t.Fatalf("got %+v, want only margherita pizza", got)
	}
	if got[0].Confidence != NormalizedConfidence {
		t.Errorf("confidence = %v, want %v", got[0].Confidence, NormalizedConfidence)
	}
}

func TestIdentifyLooseWords(t *testing.T) {
	m := newTestMatcher()
	got := m.IdentifyItems("could I get some bread and soup")
	if len(got) != 2 {
		t.Fatalf("got %+v, want bread and soup", got)
	}
	if got[0].MenuItemID != 2 || got[1].MenuItemID != 5 {
		t.Errorf("got ids %d,%d, want 2,5", got[0].MenuItemID, got[1].MenuItemID)
	}
	for _, it := range got {
		if it.Confidence != LooseConfidence || it.Quantity != 1 {
			t.Errorf("item %+v, want confidence %v quantity 1", it, LooseConfidence)
		}
	}
}

func TestKeywordStage(t *testing.T) {
	m := NewMatcher([]models.MenuItem{{ID: 7, Name: "Spicy Tofu Bowl", Price: 12}})
	found := &matchSet{index: make(map[int]int)}
	m.matchKeywords("tofu bowl", found)
	if len(found.items) != 1 {
		t.Fatalf("got %+v, want one item", found.items)
	}
	if c := found.items[0].Confidence; c < 0.66 || c > 0.67 {
		t.Errorf("confidence = %v, want 2/3", c)
	}
}

func TestIdentifyEmptyCatalog(t *testing.T) {
	m := NewMatcher(nil)
	for _, msg := range []string{"", "margherita pizza", "2 pizzas please", "bread"} {
		if got := m.IdentifyItems(msg); len(got) != 0 {
			t.Errorf("IdentifyItems(%q) = %+v, want none", msg, got)
		}
	}
}

func TestIdentifyNothing(t *testing.T) {
	m := newTestMatcher()
	if got := m.IdentifyItems(""); len(got) != 0 {
		t.Errorf("empty message matched %+v", got)
	}
	if got := m.IdentifyItems("xyz"); len(got) != 0 {
		t.Errorf("unrelated message matched %+v", got)
	}
}

func TestTotal(t *testing.T) {
	items := []models.OrderItem{
		{MenuItemID: 1, Price: 9.5, Quantity: 2},
		{MenuItemID: 2, Price: 4.25, Quantity: 1},
		{MenuItemID: 5, Price: 0.1, Quantity: 3},
	}
	want := 23.55
	if got := Total(items); got != want {
		t.Fatalf("Total = %v, want %v", got, want)
	}
	reversed := []models.OrderItem{items[2], items[1], items[0]}
	if got := Total(reversed); got != want {
		t.Errorf("Total(reversed) = %v, want %v", got, want)
	}
	if got := Total(nil); got != 0 {
		t.Errorf("Total(nil) = %v, want 0", got)
	}
}

func TestSuggestRandom(t *testing.T) {
	m := newTestMatcher()
	got := m.Suggest(nil, 3)
	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}
	seen := map[int]bool{}
	for _, it := range got {
		if seen[it.ID] {
			t.Errorf("duplicate suggestion %d", it.ID)
		}
		seen[it.ID] = true
	}

	if got := m.Suggest(nil, 10); len(got) != len(testCatalog()) {
		t.Errorf("got %d suggestions, want whole catalog", len(got))
	}
}

func TestSuggestKeywordsFirst(t *testing.T) {
	m := newTestMatcher()
	got := m.Suggest([]string{"Pizza"}, 4)
	if len(got) != 4 {
		t.Fatalf("got %d suggestions, want 4", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("first suggestions = %d,%d, want 1,4", got[0].ID, got[1].ID)
	}
	for _, it := range got[2:] {
		if it.ID == 1 || it.ID == 4 {
			t.Errorf("padding repeated keyword match %d", it.ID)
		}
	}

	if got := m.Suggest([]string{"pizza"}, 1); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("capped keyword suggestion = %+v, want margherita only", got)
	}
}

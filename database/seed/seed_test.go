package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"greengarden/models"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMenuFile(t *testing.T) {
	jsonPath := writeFile(t, "menu.json", `[{"id":1,"name":"Margherita Pizza","price":9.5},{"id":2,"name":"Garlic Bread","price":4.25}]`)
	items, err := LoadMenuFile(jsonPath)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(items) != 2 || items[1].Price != 4.25 {
		t.Errorf("items = %+v", items)
	}

	yamlPath := writeFile(t, "menu.yaml", "- id: 7\n  name: Tomato Soup\n  price: 5.75\n  category: starters\n")
	items, err = LoadMenuFile(yamlPath)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(items) != 1 || items[0].Category != "starters" {
		t.Errorf("items = %+v", items)
	}

	dup := writeFile(t, "dup.json", `[{"id":1,"name":"A","price":1},{"id":1,"name":"B","price":2}]`)
	if _, err := LoadMenuFile(dup); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestLoadAvailabilityFile(t *testing.T) {
	path := writeFile(t, "tables.json", `{
		"2025-01-17": {"7:00 PM": {"available": 4}},
		"2025-01-16": {"7pm": {"available": 0}, "12:00 PM": {"available": 3}}
	}`)
	slots, err := LoadAvailabilityFile(path)
	if err != nil {
		t.Fatalf("LoadAvailabilityFile: %v", err)
	}
	want := []struct {
		date, time string
		available  int
	}{
		{"2025-01-16", "12:00 PM", 3},
		{"2025-01-16", "7:00 PM", 0},
		{"2025-01-17", "7:00 PM", 4},
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(slots), len(want))
	}
	for i, w := range want {
		if slots[i].Date != w.date || slots[i].Time != w.time || slots[i].Available != w.available {
			t.Errorf("slot %d = %+v, want %+v", i, slots[i], w)
		}
	}

	bad := writeFile(t, "bad.yaml", "2025-01-16:\n  teatime:\n    available: 1\n")
	if _, err := LoadAvailabilityFile(bad); err == nil {
		t.Error("expected an error for an unparseable time")
	}
}

func TestGenerateWindow(t *testing.T) {
	start := time.Date(2025, 1, 15, 18, 30, 0, 0, time.UTC)
	slots, err := GenerateWindow(start, 3, []string{"12:00 PM", "7:00 PM"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 6 {
		t.Fatalf("got %d slots, want 6", len(slots))
	}
	if slots[0].Date != "2025-01-15" || slots[5].Date != "2025-01-17" || slots[5].Minute != 19*60 {
		t.Errorf("first = %+v, last = %+v", slots[0], slots[5])
	}
}

type memMenu struct {
	items   []models.MenuItem
	cleared bool
}

func (m *memMenu) GetAll(context.Context) ([]models.MenuItem, error) { return m.items, nil }
func (m *memMenu) CreateMany(_ context.Context, items []models.MenuItem) error {
	m.items = append(m.items, items...)
	return nil
}
func (m *memMenu) Count(context.Context) (int64, error) { return int64(len(m.items)), nil }
func (m *memMenu) DeleteAll(context.Context) error {
	m.items, m.cleared = nil, true
	return nil
}
func (m *memMenu) EnsureIndexes() error { return nil }

type memSlots struct {
	slots []models.AvailabilitySlot
}

func (m *memSlots) CreateMany(_ context.Context, slots []models.AvailabilitySlot) ([]string, error) {
	m.slots = append(m.slots, slots...)
	ids := make([]string, len(slots))
	return ids, nil
}
func (m *memSlots) Count(context.Context) (int64, error) { return int64(len(m.slots)), nil }
func (m *memSlots) DeleteAll(context.Context) error {
	m.slots = nil
	return nil
}
func (m *memSlots) GetAvailableByDate(context.Context, string) ([]models.AvailabilitySlot, error) {
	return nil, nil
}
func (m *memSlots) GetByDateAndTime(context.Context, string, string) (*models.AvailabilitySlot, error) {
	return nil, nil
}
func (m *memSlots) GetDatesWithAvailability(context.Context, []string) ([]string, error) {
	return nil, nil
}
func (m *memSlots) GetMaxAvailableDate(context.Context, string) (string, error) { return "", nil }
func (m *memSlots) TryReserveTables(context.Context, string, string, int) (*models.AvailabilitySlot, error) {
	return nil, nil
}
func (m *memSlots) RollbackReservedTables(context.Context, string, string, int) error { return nil }
func (m *memSlots) EnsureIndexes() error                                             { return nil }

func TestSeederSkipsPopulatedCollections(t *testing.T) {
	menu := &memMenu{items: []models.MenuItem{{ID: 1, Name: "Old", Price: 1}}}
	slots := &memSlots{}
	s := &Seeder{Menu: menu, Slots: slots}

	res, err := s.Run(context.Background(), Options{
		MenuItems: []models.MenuItem{{ID: 2, Name: "New", Price: 2}},
		Slots:     []models.AvailabilitySlot{{Date: "2025-01-16", Time: "7:00 PM", Available: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.MenuSkipped || res.SlotsSkipped || res.Slots != 1 {
		t.Errorf("res = %+v", res)
	}
	if len(menu.items) != 1 || menu.items[0].Name != "Old" {
		t.Errorf("menu = %+v", menu.items)
	}
}

func TestSeederForceReplaces(t *testing.T) {
	menu := &memMenu{items: []models.MenuItem{{ID: 1, Name: "Old", Price: 1}}}
	s := &Seeder{Menu: menu, Slots: &memSlots{}}

	res, err := s.Run(context.Background(), Options{
		Force:     true,
		MenuItems: []models.MenuItem{{ID: 2, Name: "New", Price: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !menu.cleared || res.MenuItems != 1 || menu.items[0].Name != "New" {
		t.Errorf("res = %+v, menu = %+v", res, menu.items)
	}
}

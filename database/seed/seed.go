// File: database/seed/seed.go
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	menuRepo "greengarden/database/repository/menu"
	timeslotRepo "greengarden/database/repository/timeslot"
	"greengarden/models"
	"greengarden/services/booking"

	"gopkg.in/yaml.v3"
)

// slotFile is the on-disk availability layout: date -> time -> {available}.
type slotFile map[string]map[string]struct {
	Available int `json:"available" yaml:"available"`
}

// Result reports what a seeding run inserted.
type Result struct {
	MenuItems    int
	Slots        int
	MenuSkipped  bool
	SlotsSkipped bool
}

// Seeder fills empty menu and availability collections.
type Seeder struct {
	Menu  menuRepo.MenuRepository
	Slots timeslotRepo.TimeSlotRepository
}

// Options controls a seeding run. Slots take precedence over a generated window.
type Options struct {
	Force     bool
	MenuItems []models.MenuItem
	Slots     []models.AvailabilitySlot
}

func decode(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// LoadMenuFile reads a list of menu items from JSON or YAML.
func LoadMenuFile(path string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := decode(path, &items); err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if it.ID <= 0 || strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("menu item %+v needs an id and a name", it)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate menu id %d", it.ID)
		}
		seen[it.ID] = true
	}
	return items, nil
}

// LoadAvailabilityFile reads per-date, per-time table counts from JSON or YAML.
func LoadAvailabilityFile(path string) ([]models.AvailabilitySlot, error) {
	var raw slotFile
	if err := decode(path, &raw); err != nil {
		return nil, err
	}

	var slots []models.AvailabilitySlot
	for date, times := range raw {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("availability date %q: %w", date, err)
		}
		for t, a := range times {
			slot, err := newSlot(date, t, a.Available)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
	}
	sortSlots(slots)
	return slots, nil
}

// GenerateWindow builds days consecutive dates from start, each offering times with tables free.
func GenerateWindow(start time.Time, days int, times []string, tables int) ([]models.AvailabilitySlot, error) {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	slots := make([]models.AvailabilitySlot, 0, days*len(times))
	for i := 0; i < days; i++ {
		date := day.AddDate(0, 0, i).Format("2006-01-02")
		for _, t := range times {
			slot, err := newSlot(date, t, tables)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func newSlot(date, raw string, available int) (models.AvailabilitySlot, error) {
	display, ok := booking.NormalizeTime(raw)
	if !ok {
		return models.AvailabilitySlot{}, fmt.Errorf("availability time %q on %s is not a clock time", raw, date)
	}
	if available < 0 {
		return models.AvailabilitySlot{}, fmt.Errorf("availability for %s %s is negative", date, display)
	}
	minute, _ := booking.ClockMinutes(display)
	return models.AvailabilitySlot{Date: date, Time: display, Minute: minute, Available: available}, nil
}

func sortSlots(slots []models.AvailabilitySlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].Minute < slots[j].Minute
	})
}

// Run seeds each collection that is empty, or every collection when opts.Force is set.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result

	if err := s.Menu.EnsureIndexes(); err != nil {
		return res, fmt.Errorf("menu indexes: %w", err)
	}
	if err := s.Slots.EnsureIndexes(); err != nil {
		return res, fmt.Errorf("availability indexes: %w", err)
	}

	if opts.Force {
		if err := s.Menu.DeleteAll(ctx); err != nil {
			return res, fmt.Errorf("clear menu: %w", err)
		}
		if err := s.Slots.DeleteAll(ctx); err != nil {
			return res, fmt.Errorf("clear availability: %w", err)
		}
	}

	n, err := s.Menu.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count menu: %w", err)
	}
	if n > 0 {
		res.MenuSkipped = true
	} else {
		if err := s.Menu.CreateMany(ctx, opts.MenuItems); err != nil {
			return res, fmt.Errorf("insert menu: %w", err)
		}
		res.MenuItems = len(opts.MenuItems)
	}

	n, err = s.Slots.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count availability: %w", err)
	}
	if n > 0 {
		res.SlotsSkipped = true
		return res, nil
	}
	ids, err := s.Slots.CreateMany(ctx, opts.Slots)
	if err != nil {
		return res, fmt.Errorf("insert availability: %w", err)
	}
	res.Slots = len(ids)
	return res, nil
}

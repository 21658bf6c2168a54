package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	timeslotRepo "greengarden/database/repository/timeslot"
	"greengarden/models"
)

const (
	isoDate     = "2006-01-02"
	displayDate = "Monday, January 02, 2006"
)

// GetAvailableDates lists the days from today through daysAhead-1 that still have a
// free table, in calendar order.
func (s *DefaultBookingService) GetAvailableDates(ctx context.Context, daysAhead int) ([]models.AvailableDate, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	window := make([]string, 0, daysAhead)
	days := make(map[string]time.Time, daysAhead)
	for i := 0; i < daysAhead; i++ {
		d := today.AddDate(0, 0, i)
		key := d.Format(isoDate)
		window = append(window, key)
		days[key] = d
	}

	open, err := s.Slots.GetDatesWithAvailability(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("available dates: %w", err)
	}
	isOpen := make(map[string]bool, len(open))
	for _, d := range open {
		isOpen[d] = true
	}

	dates := []models.AvailableDate{}
	for _, key := range window {
		if isOpen[key] {
			dates = append(dates, models.AvailableDate{Date: key, Display: days[key].Format(displayDate)})
		}
	}
	return dates, nil
}

// GetAvailableTimes lists the times on date with at least one free table.
func (s *DefaultBookingService) GetAvailableTimes(ctx context.Context, date string) ([]models.AvailableTime, error) {
	slots, err := s.Slots.GetAvailableByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("available times for %s: %w", date, err)
	}
	times := make([]models.AvailableTime, 0, len(slots))
	for _, slot := range slots {
		if slot.Available > 0 {
			times = append(times, models.AvailableTime{Time: slot.Time, Available: slot.Available})
		}
	}
	return times, nil
}

// LastBookableDate returns the furthest date from today onward with a free table, or ""
// when nothing is bookable.
func (s *DefaultBookingService) LastBookableDate(ctx context.Context) (string, error) {
	date, err := s.Slots.GetMaxAvailableDate(ctx, s.now().Format(isoDate))
	if err != nil {
		return "", fmt.Errorf("last bookable date: %w", err)
	}
	return date, nil
}

// IsTableAvailable reports whether the slot has enough tables for guests.
func (s *DefaultBookingService) IsTableAvailable(ctx context.Context, date, slotTime string, guests int) (bool, error) {
	slot, err := s.Slots.GetByDateAndTime(ctx, date, slotTime)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
			return false, nil
		}
		return false, err
	}
	return slot.Available >= TablesFor(guests, s.SeatsPerTable), nil
}

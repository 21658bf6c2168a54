package intelligence

import (
	"regexp"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var weekdayRe = regexp.MustCompile(`(?i)(` + weekdayAlternation + `)`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var datedLayouts = []string{
	"1/2/2006", "1-2-2006", "2/1/2006", "2-1-2006",
	"1/2/06", "1-2-06", "2/1/06", "2-1-06",
}

var yearlessLayouts = []string{
	"1/2", "1-2", "2/1", "2-1",
	"Jan 2", "January 2",
}

// ResolveDate turns a raw date mention into YYYY-MM-DD relative to today.
// Strings it cannot interpret are returned unchanged.
func ResolveDate(raw string, today time.Time) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	day := midnight(today)

	switch s {
	case "today":
		return day.Format(isoDate)
	case "tomorrow":
		return day.AddDate(0, 0, 1).Format(isoDate)
	case "day after tomorrow":
		return day.AddDate(0, 0, 2).Format(isoDate)
	}

	if m := weekdayRe.FindString(s); m != "" {
		offset := (int(weekdays[m]) - int(day.Weekday()) + 7) % 7
		if offset == 0 && strings.Contains(s, "next") {
			offset = 7
		}
		return day.AddDate(0, 0, offset).Format(isoDate)
	}

	if d, ok := parseCalendarDate(s, day); ok {
		return d.Format(isoDate)
	}
	return raw
}

// parseCalendarDate handles numeric and month-name forms. Month-first layouts are
// tried before day-first ones. Dates without a year land on their next occurrence.
func parseCalendarDate(s string, today time.Time) (time.Time, bool) {
	s = strings.Replace(s, "sept ", "sep ", 1)

	for _, layout := range datedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location())
		if d.Day() != t.Day() {
			// Feb 29 outside a leap year.
			continue
		}
		if d.Before(today) {
			d = d.AddDate(1, 0, 0)
		}
		return d, true
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

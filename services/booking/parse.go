package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultGuests is the party size assumed when a guest count cannot be read.
const DefaultGuests = 1

// DefaultSeatsPerTable is how many guests one table seats.
const DefaultSeatsPerTable = 4

const displayTime = "3:04 PM"

type namedTime struct {
	word  string
	clock string
}

var mealTimes = []namedTime{
	{"breakfast", "9:00 AM"},
	{"brunch", "11:00 AM"},
	{"lunch", "1:00 PM"},
	{"dinner", "7:00 PM"},
}

var periodTimes = []namedTime{
	{"morning", "10:00 AM"},
	{"afternoon", "2:00 PM"},
	{"evening", "7:00 PM"},
	{"night", "8:00 PM"},
}

var (
	clockRe    = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)?`)
	meridiemRe = regexp.MustCompile(`(\d{1,2})\s*(am|pm)`)
	oclockRe   = regexp.MustCompile(`(\d{1,2})\s*o'?clock\s*(am|pm)?`)
)

// NormalizeTime converts a spoken time into the "H:MM AM/PM" display form.
// Without a meridiem, hours 5 through 11 are read as PM and everything else as AM.
func NormalizeTime(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "":
		return "", false
	case "noon":
		return "12:00 PM", true
	case "midnight":
		return "12:00 AM", true
	}

	for _, nt := range mealTimes {
		if strings.Contains(s, nt.word) {
			return nt.clock, true
		}
	}
	for _, nt := range periodTimes {
		if strings.Contains(s, nt.word) {
			return nt.clock, true
		}
	}

	var hourText, minuteText, meridiem string
	if m := clockRe.FindStringSubmatch(s); m != nil {
		hourText, minuteText, meridiem = m[1], m[2], m[3]
	} else if m := meridiemRe.FindStringSubmatch(s); m != nil {
		hourText, meridiem = m[1], m[2]
	} else if m := oclockRe.FindStringSubmatch(s); m != nil {
		hourText, meridiem = m[1], m[2]
	} else {
		return "", false
	}

	hour, _ := strconv.Atoi(hourText)
	minute := 0
	if minuteText != "" {
		minute, _ = strconv.Atoi(minuteText)
	}
	if minute > 59 || hour > 23 || (meridiem != "" && (hour < 1 || hour > 12)) {
		return "", false
	}

	if meridiem == "" {
		if hour >= 5 && hour <= 11 {
			meridiem = "pm"
		} else {
			meridiem = "am"
		}
	}
	if meridiem == "pm" && hour < 12 {
		hour += 12
	} else if meridiem == "am" && hour == 12 {
		hour = 0
	}

	return formatClock(hour, minute), true
}

func formatClock(hour, minute int) string {
	display := hour % 12
	if display == 0 {
		display = 12
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}

// ClockMinutes returns minutes from midnight for a display time such as "7:30 PM".
func ClockMinutes(display string) (int, bool) {
	t, err := time.Parse(displayTime, strings.ToUpper(strings.TrimSpace(display)))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

var guestWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "dozen": 12,
}

// ParseGuests reads a party size from digits or English words. Anything it cannot
// read, including zero, yields DefaultGuests.
func ParseGuests(raw string) int {
	s := strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(s); err == nil && isDigits(s) {
		if n > 0 {
			return n
		}
		return DefaultGuests
	}
	if n, ok := guestWords[s]; ok {
		return n
	}
	switch {
	case strings.Contains(s, "couple"):
		return 2
	case strings.Contains(s, "few"):
		return 3
	case strings.Contains(s, "several"):
		return 4
	}
	return DefaultGuests
}

// TablesFor is the number of tables a party needs.
func TablesFor(guests, seatsPerTable int) int {
	if seatsPerTable <= 0 {
		seatsPerTable = DefaultSeatsPerTable
	}
	if guests <= 0 {
		return 0
	}
	return (guests + seatsPerTable - 1) / seatsPerTable
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

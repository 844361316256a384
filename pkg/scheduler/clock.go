package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds every minute offset handled here
const MinutesPerDay = 24 * 60

// Weekdays in calendar order, Sunday first as time.Weekday numbers them
var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// weekdayIndex returns the position of a canonical weekday name, or -1
func weekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// CanonicalDay maps a case-insensitive weekday name to its canonical form
func CanonicalDay(day string) (string, bool) {
	day = strings.TrimSpace(day)
	for _, d := range Weekdays {
		if strings.EqualFold(d, day) {
			return d, true
		}
	}
	return "", false
}

// StartSegment returns the start of a "start - end" range
func StartSegment(timeRange string) string {
	start, _, _ := strings.Cut(timeRange, "-")
	return strings.TrimSpace(start)
}

// ParseStartMinutes converts "H:MM" or "H:MM AM|PM" into minutes since midnight.
//
// Without a meridiem, hours 1-5 are read as afternoon: the source timetable
// writes "01:00" for 1 PM. Hours 6-12 are taken as given. Do not widen that
// range without checking it against the whole timetable.
func ParseStartMinutes(text string) (int, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}

	hh, mm, ok := strings.Cut(fields[0], ":")
	if !ok || hh == "" || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: hour out of range in %q", ErrMalformedTime, text)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: minute out of range in %q", ErrMalformedTime, text)
	}

	if len(fields) == 2 {
		switch strings.ToUpper(fields[1]) {
		case "PM":
			if hour < 12 {
				hour += 12
			}
		case "AM":
			if hour == 12 {
				hour = 0
			}
		default:
			return 0, fmt.Errorf("%w: unknown meridiem in %q", ErrMalformedTime, text)
		}
	} else if hour <= 5 {
		hour += 12
	}

	return hour*60 + minute, nil
}

// ParseClock reads a 24-hour "HH:MM" wall clock, as a browser would send it
func ParseClock(text string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidNow, text)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidNow, text)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: clock %q", ErrInvalidNow, text)
	}
	return hour*60 + minute, nil
}

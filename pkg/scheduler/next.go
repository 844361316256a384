package scheduler

import (
	"fmt"
	"sort"

	"github.com/arnavshah/lecturebot-api-go/pkg/models"
)

// CheckNow validates a caller supplied NowContext and canonicalizes its weekday
func CheckNow(now models.NowContext) (models.NowContext, error) {
	day, ok := CanonicalDay(now.Weekday)
	if !ok {
		return now, fmt.Errorf("%w: unknown weekday %q", ErrInvalidNow, now.Weekday)
	}
	if now.Minutes < 0 || now.Minutes >= MinutesPerDay {
		return now, fmt.Errorf("%w: minutes %d outside [0,%d)", ErrInvalidNow, now.Minutes, MinutesPerDay)
	}
	now.Weekday = day
	return now, nil
}

type candidate struct {
	occ   models.Occurrence
	start int
}

// NextUpcoming returns the first occurrence today that starts strictly after now.
// A nil result means nothing is left today; it never rolls over to tomorrow.
// An empty section matches every section, ties then break on section and room.
func NextUpcoming(schedule []models.Occurrence, now models.NowContext, section string) (*models.Occurrence, error) {
	now, err := CheckNow(now)
	if err != nil {
		return nil, err
	}

	var upcoming []candidate
	for _, occ := range schedule {
		if occ.Day != now.Weekday {
			continue
		}
		if section != "" && occ.Section != section {
			continue
		}
		start, err := ParseStartMinutes(StartSegment(occ.Time))
		if err != nil {
			return nil, fmt.Errorf("%s section %s: %w", occ.Day, occ.Section, err)
		}
		if start > now.Minutes {
			upcoming = append(upcoming, candidate{occ, start})
		}
	}
	if len(upcoming) == 0 {
		return nil, nil
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		a, b := upcoming[i], upcoming[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.occ.Section != b.occ.Section {
			return a.occ.Section < b.occ.Section
		}
		return a.occ.Room < b.occ.Room
	})

	next := upcoming[0].occ
	return &next, nil
}

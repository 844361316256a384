package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arnavshah/lecturebot-api-go/pkg/models"
)

var dayGroups = map[models.DayGroup][]string{
	models.GroupMWF: {"Monday", "Wednesday", "Friday"},
	models.GroupTTS: {"Tuesday", "Thursday", "Saturday"},
}

// ExpandDays returns the concrete weekdays a rule recurs on
func ExpandDays(rule models.SlotRule) ([]string, error) {
	if rule.DayGroup != models.GroupCustom {
		days, ok := dayGroups[rule.DayGroup]
		if !ok {
			return nil, fmt.Errorf("%w: unknown day group %q", ErrInvalidRule, rule.DayGroup)
		}
		return days, nil
	}

	if len(rule.Days) == 0 {
		return nil, fmt.Errorf("%w: custom day group without days", ErrInvalidRule)
	}
	days := make([]string, 0, len(rule.Days))
	for _, d := range rule.Days {
		day, ok := CanonicalDay(d)
		if !ok {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidRule, d)
		}
		days = append(days, day)
	}
	return days, nil
}

// Compile expands slot rules into the full weekly schedule.
// Unknown course codes and professor initials pass through verbatim.
func Compile(catalog models.Catalog, rules []models.SlotRule) ([]models.Occurrence, error) {
	courses := make(map[string]models.Course, len(catalog.Courses))
	for _, c := range catalog.Courses {
		courses[c.Code] = c
	}
	professors := make(map[string]string, len(catalog.Professors))
	for _, p := range catalog.Professors {
		professors[p.Initials] = p.Name
	}

	type slotKey struct{ day, section, time string }
	seen := make(map[slotKey]int)

	var out []models.Occurrence
	for i, rule := range rules {
		if err := checkRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d (%s %s %s): %w", i, rule.DayGroup, rule.Section, rule.CourseCode, err)
		}
		days, err := ExpandDays(rule)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s %s %s): %w", i, rule.DayGroup, rule.Section, rule.CourseCode, err)
		}

		title := rule.CourseCode
		var kind models.CourseKind
		if c, ok := courses[rule.CourseCode]; ok {
			title = c.Name
			kind = c.Kind
		}

		names := make([]string, len(rule.ProfessorInitials))
		for j, initials := range rule.ProfessorInitials {
			if name, ok := professors[initials]; ok {
				names[j] = name
			} else {
				names[j] = initials
			}
		}

		for _, day := range days {
			key := slotKey{day, rule.Section, rule.Time}
			if prev, dup := seen[key]; dup {
				return nil, fmt.Errorf("%w: rule %d repeats %s section %s at %q from rule %d",
					ErrInvalidRule, i, day, rule.Section, rule.Time, prev)
			}
			seen[key] = i

			out = append(out, models.Occurrence{
				Day:               day,
				Section:           rule.Section,
				Room:              rule.Room,
				Time:              rule.Time,
				CourseCode:        rule.CourseCode,
				Kind:              kind,
				Title:             title,
				Professor:         strings.Join(names, ", "),
				ProfessorInitials: append([]string(nil), rule.ProfessorInitials...),
			})
		}
	}
	return out, nil
}

func checkRule(rule models.SlotRule) error {
	if rule.Section != "A" && rule.Section != "B" {
		return fmt.Errorf("%w: section must be A or B, got %q", ErrInvalidRule, rule.Section)
	}
	if strings.TrimSpace(rule.Time) == "" {
		return fmt.Errorf("%w: empty time", ErrInvalidRule)
	}
	if rule.CourseCode == "" {
		return fmt.Errorf("%w: empty course code", ErrInvalidRule)
	}
	if _, err := ParseStartMinutes(StartSegment(rule.Time)); err != nil {
		return err
	}
	return nil
}

// SortOccurrences orders occurrences by weekday, start, section, then room.
// Start times are assumed valid; compiled schedules always satisfy that.
func SortOccurrences(occs []models.Occurrence) {
	start := func(o models.Occurrence) int {
		m, _ := ParseStartMinutes(StartSegment(o.Time))
		return m
	}
	sort.SliceStable(occs, func(i, j int) bool {
		a, b := occs[i], occs[j]
		if da, db := weekdayIndex(a.Day), weekdayIndex(b.Day); da != db {
			return da < db
		}
		if sa, sb := start(a), start(b); sa != sb {
			return sa < sb
		}
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		return a.Room < b.Room
	})
}

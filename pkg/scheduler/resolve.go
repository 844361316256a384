package scheduler

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/arnavshah/lecturebot-api-go/pkg/models"
)

// ClarifySection is the only narrowing dimension a Resolution asks for
const ClarifySection = "section"

// MergeCriteria folds a bare section reply into the previous turn's criteria.
// Any other turn replaces the previous criteria entirely.
func MergeCriteria(prev, cur models.QueryCriteria) models.QueryCriteria {
	if cur.SectionOnly() && !prev.IsEmpty() {
		prev.Section = cur.Section
		return prev
	}
	return cur
}

// NormalizeCriteria trims fields and canonicalizes day and section
func NormalizeCriteria(c models.QueryCriteria) (models.QueryCriteria, error) {
	c.CourseCode = strings.TrimSpace(c.CourseCode)
	c.Professor = strings.TrimSpace(c.Professor)
	c.Section = strings.ToUpper(strings.TrimSpace(c.Section))
	c.Section = strings.TrimPrefix(c.Section, "SECTION ")

	if c.Section != "" && c.Section != "A" && c.Section != "B" {
		return c, fmt.Errorf("%w: unknown section %q", ErrInvalidCriteria, c.Section)
	}
	if strings.TrimSpace(c.Day) != "" {
		day, ok := CanonicalDay(c.Day)
		if !ok {
			return c, fmt.Errorf("%w: unknown day %q", ErrInvalidCriteria, c.Day)
		}
		c.Day = day
	} else {
		c.Day = ""
	}
	return c, nil
}

// Resolve filters the schedule by every set field of criteria and decides
// whether the result must be narrowed by section before it is answered.
func Resolve(criteria models.QueryCriteria, schedule []models.Occurrence) models.Resolution {
	fold := cases.Fold()
	course := fold.String(criteria.CourseCode)
	prof := fold.String(criteria.Professor)

	matches := []models.Occurrence{}
	sections := make(map[string]struct{})
	for _, occ := range schedule {
		if course != "" && fold.String(occ.CourseCode) != course && fold.String(occ.Title) != course {
			continue
		}
		if prof != "" && !matchesProfessor(fold, occ, prof) {
			continue
		}
		if criteria.Day != "" && occ.Day != criteria.Day {
			continue
		}
		if criteria.Section != "" && occ.Section != criteria.Section {
			continue
		}
		matches = append(matches, occ)
		sections[occ.Section] = struct{}{}
	}

	res := models.Resolution{Matches: matches}
	if criteria.Section == "" && len(sections) > 1 {
		res.NeedsClarification = true
		res.ClarifyOn = ClarifySection
	}
	return res
}

func matchesProfessor(fold cases.Caser, occ models.Occurrence, needle string) bool {
	if strings.Contains(fold.String(occ.Professor), needle) {
		return true
	}
	for _, initials := range occ.ProfessorInitials {
		if strings.Contains(fold.String(initials), needle) {
			return true
		}
	}
	return false
}

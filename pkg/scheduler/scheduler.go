package scheduler

import (
	"fmt"

	"github.com/arnavshah/lecturebot-api-go/pkg/models"
)

// Languages the conversational layer answers in
var Languages = map[string]bool{"en": true, "hi": true}

// Scheduler holds one term's compiled timetable. It is read-only after
// NewScheduler returns and is safe to share between goroutines.
type Scheduler struct {
	Catalog     models.Catalog
	Occurrences []models.Occurrence
}

// NewScheduler compiles a timetable document into a ready scheduler
func NewScheduler(doc models.TimetableDocument) (*Scheduler, error) {
	occs, err := Compile(doc.Catalog, doc.Rules)
	if err != nil {
		return nil, err
	}
	SortOccurrences(occs)
	return &Scheduler{
		Catalog:     doc.Catalog,
		Occurrences: occs,
	}, nil
}

// Day returns the occurrences on day, optionally for one section, in canonical order.
// An empty day returns the whole week.
func (s *Scheduler) Day(day, section string) ([]models.Occurrence, error) {
	criteria, err := NormalizeCriteria(models.QueryCriteria{Day: day, Section: section})
	if err != nil {
		return nil, err
	}
	out := make([]models.Occurrence, 0)
	for _, occ := range s.Occurrences {
		if criteria.Day != "" && occ.Day != criteria.Day {
			continue
		}
		if criteria.Section != "" && occ.Section != criteria.Section {
			continue
		}
		out = append(out, occ)
	}
	return out, nil
}

// Next returns the banner payload for the next occurrence today, or nil
func (s *Scheduler) Next(now models.NowContext, section string) (*models.NextLecture, error) {
	criteria, err := NormalizeCriteria(models.QueryCriteria{Section: section})
	if err != nil {
		return nil, err
	}
	occ, err := NextUpcoming(s.Occurrences, now, criteria.Section)
	if err != nil || occ == nil {
		return nil, err
	}

	start := StartSegment(occ.Time)
	startMinutes, err := ParseStartMinutes(start)
	if err != nil {
		return nil, err
	}
	return &models.NextLecture{
		Occurrence:   *occ,
		Start:        start,
		StartMinutes: startMinutes,
		TimeLeft:     TimeLeftLabel(startMinutes, now.Minutes),
	}, nil
}

// Resolve merges the current turn into the previous one and applies the result
func (s *Scheduler) Resolve(prev, cur models.QueryCriteria) (models.QueryCriteria, models.Resolution, error) {
	prev, err := NormalizeCriteria(prev)
	if err != nil {
		return prev, models.Resolution{}, err
	}
	cur, err = NormalizeCriteria(cur)
	if err != nil {
		return cur, models.Resolution{}, err
	}
	merged := MergeCriteria(prev, cur)
	return merged, Resolve(merged, s.Occurrences), nil
}

// Context builds the payload the conversational layer is prompted with
func (s *Scheduler) Context(currentDay, language string) (models.ConversationContext, error) {
	day, ok := CanonicalDay(currentDay)
	if !ok {
		return models.ConversationContext{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidNow, currentDay)
	}
	if language == "" {
		language = "en"
	}
	if !Languages[language] {
		return models.ConversationContext{}, fmt.Errorf("%w: unsupported language %q", ErrInvalidCriteria, language)
	}
	return models.ConversationContext{
		Language:   language,
		CurrentDay: day,
		Professors: s.Catalog.Professors,
		Courses:    s.Catalog.Courses,
		Schedule:   s.Occurrences,
	}, nil
}

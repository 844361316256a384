package scheduler

import "errors"

// Configuration defects are fatal when the timetable is compiled. Caller
// mistakes (bad now, bad criteria) are reported so handlers can answer 400.
var (
	// ErrMalformedTime indicates a time string outside the H:MM [AM|PM] grammar.
	ErrMalformedTime = errors.New("malformed time")

	// ErrInvalidRule indicates a slot rule that cannot be expanded.
	ErrInvalidRule = errors.New("invalid slot rule")

	// ErrInvalidNow indicates a NowContext with an unknown weekday or out of range minutes.
	ErrInvalidNow = errors.New("invalid now context")

	// ErrInvalidCriteria indicates query criteria naming an unknown day or section.
	ErrInvalidCriteria = errors.New("invalid query criteria")
)

// IsConfigDefect reports whether err comes from bad timetable source data.
func IsConfigDefect(err error) bool {
	return errors.Is(err, ErrMalformedTime) || errors.Is(err, ErrInvalidRule)
}

// IsBadRequest reports whether err comes from caller supplied input.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidNow) || errors.Is(err, ErrInvalidCriteria)
}

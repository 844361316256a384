package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10:00", 10 * 60},
		{"12:00", 12 * 60},
		{"06:15", 6*60 + 15},
		{"01:00", 13 * 60},
		{"5:59", 17*60 + 59},
		{"1:00 PM", 13 * 60},
		{"1:00 pm", 13 * 60},
		{"2:00 PM", 14 * 60},
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"12:30 am", 30},
		{"9:45 AM", 9*60 + 45},
		{"11:59 PM", 23*60 + 59},
		{"  10:00  ", 600},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStartMinutes(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.Less(t, got, MinutesPerDay)
		})
	}
}

func TestParseStartMinutes_AfternoonFallbackIsNotGeneral(t *testing.T) {
	pm, err := ParseStartMinutes("2:00 PM")
	require.NoError(t, err)
	bare, err := ParseStartMinutes("02:00")
	require.NoError(t, err)
	assert.Equal(t, pm, bare, "bare 02:00 falls in the afternoon window")

	bare, err = ParseStartMinutes("07:00")
	require.NoError(t, err)
	pm, err = ParseStartMinutes("7:00 PM")
	require.NoError(t, err)
	assert.NotEqual(t, pm, bare, "bare 07:00 stays in the morning")
}

func TestParseStartMinutes_Malformed(t *testing.T) {
	for _, in := range []string{
		"", "10", "10:0", "10:000", "0:30", "13:00", "24:00", "10:60",
		"ab:cd", "10:00 XM", "10:00 PM extra", ":30",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseStartMinutes(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedTime)
			assert.True(t, IsConfigDefect(err))
		})
	}
}

func TestStartSegment(t *testing.T) {
	assert.Equal(t, "10:00", StartSegment("10:00 - 11:00"))
	assert.Equal(t, "10:00 AM", StartSegment("10:00 AM - 11:30 AM"))
	assert.Equal(t, "03:00", StartSegment("03:00"))
}

func TestCanonicalDay(t *testing.T) {
	day, ok := CanonicalDay(" monday ")
	assert.True(t, ok)
	assert.Equal(t, "Monday", day)

	_, ok = CanonicalDay("Mon")
	assert.False(t, ok)
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("13:05")
	require.NoError(t, err)
	assert.Equal(t, 13*60+5, m)

	m, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = ParseClock("24:00")
	assert.ErrorIs(t, err, ErrInvalidNow)
	_, err = ParseClock("noon")
	assert.ErrorIs(t, err, ErrInvalidNow)
}

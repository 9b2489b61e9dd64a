package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeek(t *testing.T) {
	monday := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monday", DayOfWeek(monday))

	// A non-UTC timestamp is normalized before the weekday is read.
	late := time.Date(2025, 6, 2, 20, 0, 0, 0, time.FixedZone("PDT", -7*3600))
	assert.Equal(t, "Tuesday", DayOfWeek(late)) // 03:00 UTC next day
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("06/02/2025")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	parsed, err := ParseDateTime("2025-06-02", "18:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 18, 30, 0, 0, time.UTC), parsed)

	_, err = ParseDateTime("2025-06-02", "6pm")
	assert.Error(t, err)
}

func TestCombineDayClock(t *testing.T) {
	day := time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)
	combined, err := CombineDayClock(day, "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC), combined)

	_, err = CombineDayClock(day, "25:00")
	assert.Error(t, err)
}

func TestWithinWindowInclusiveBounds(t *testing.T) {
	open := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	close := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before open", open.Add(-time.Minute), false},
		{"at open", open, true},
		{"midday", open.Add(3 * time.Hour), true},
		{"at close", close, true},
		{"after close", close.Add(time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinWindow(open, close, tt.at))
		})
	}
}

func TestSlotSteps(t *testing.T) {
	open := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	steps := SlotSteps(open, open.Add(2*time.Hour))
	require.Len(t, steps, 4)
	assert.Equal(t, open, steps[0])
	assert.Equal(t, open.Add(90*time.Minute), steps[3])

	// The close time itself is not bookable.
	for _, step := range steps {
		assert.True(t, step.Before(open.Add(2*time.Hour)))
	}

	assert.Empty(t, SlotSteps(open, open))
}

func TestTodayAndSameDate(t *testing.T) {
	at := time.Date(2025, 6, 2, 18, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Today(at))

	assert.True(t, SameDate(at, at.Add(time.Hour)))
	assert.False(t, SameDate(at, at.Add(24*time.Hour)))
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("09:00"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("9am"))
	assert.False(t, ValidClock(""))
}

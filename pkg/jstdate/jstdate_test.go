package jstdate_test

import (
	"testing"
	"time"

	"github.com/mokkun/habitfolio/pkg/jstdate"
	"github.com/stretchr/testify/assert"
)

func TestDay(t *testing.T) {
	testCases := []struct {
		Desc     string
		Instant  time.Time
		Expected string
	}{
		{
			Desc:     "utc afternoon is same jst day",
			Instant:  time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			Expected: "2025-03-10",
		},
		{
			Desc:     "utc evening rolls over to next jst day",
			Instant:  time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC),
			Expected: "2025-03-11",
		},
		{
			Desc:     "jst midnight boundary",
			Instant:  time.Date(2025, 3, 10, 14, 59, 59, 0, time.UTC),
			Expected: "2025-03-10",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Expected, jstdate.Day(tc.Instant))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	day, err := jstdate.Parse("2025-12-31")
	assert.NoError(t, err)
	assert.Equal(t, "2025-12-31", jstdate.Day(day))
}

func TestValid(t *testing.T) {
	assert.True(t, jstdate.Valid("2025-01-02"))
	assert.False(t, jstdate.Valid("2025-13-02"))
	assert.False(t, jstdate.Valid("tomorrow"))
	assert.False(t, jstdate.Valid(""))
}

func TestMondayIsMonday(t *testing.T) {
	day, err := jstdate.Parse(jstdate.Monday())
	assert.NoError(t, err)
	assert.Equal(t, time.Monday, day.Weekday())
}

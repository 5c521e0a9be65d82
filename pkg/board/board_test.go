package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekNumberFromDate(t *testing.T) {
	testCases := []struct {
		name         string
		date         time.Time
		weekStartDay time.Weekday
		want         WeekNumber
	}{
		{
			name:         "midweek with Monday start",
			date:         time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC), // Wednesday
			weekStartDay: time.Monday,
			want:         WeekNumber{Year: 2025, Week: 45},
		},
		{
			name:         "Sunday with Monday start belongs to the running week",
			date:         time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC), // Sunday
			weekStartDay: time.Monday,
			want:         WeekNumber{Year: 2025, Week: 45},
		},
		{
			name:         "Saturday with Sunday start counts from the previous Sunday",
			date:         time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC), // Saturday
			weekStartDay: time.Sunday,
			want:         WeekNumber{Year: 2025, Week: 44},
		},
		{
			name:         "invalid start day falls back to Monday",
			date:         time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC),
			weekStartDay: time.Weekday(12),
			want:         WeekNumber{Year: 2025, Week: 45},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekNumberFromDate(tc.date, tc.weekStartDay)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestWeekNumber_String(t *testing.T) {
	assert.Equal(t, "2025-W03", WeekNumber{Year: 2025, Week: 3}.String())
	assert.Equal(t, "2025-W45", WeekNumber{Year: 2025, Week: 45}.String())
}

func TestChallengesForWeek_isDeterministic(t *testing.T) {
	week := WeekNumber{Year: 2025, Week: 45}

	first := ChallengesForWeek(week)
	second := ChallengesForWeek(week)

	assert.Equal(t, first, second)
}

func TestChallengesForWeek_selectionPattern(t *testing.T) {
	// Week W maps slots to prompts W, W+3 and W+6 modulo the pool size.
	week := WeekNumber{Year: 2025, Week: 45}
	n := len(challengePrompts)

	challenges := ChallengesForWeek(week)

	assert.Len(t, challenges, ChallengeSlots)
	for slot, c := range challenges {
		expected := challengePrompts[(week.Week+3*slot)%n]
		assert.Equal(t, slot, c.Slot)
		assert.Equal(t, expected.Title, c.Title)
		assert.Equal(t, expected.Description, c.Description)
	}
}

func TestChallengesForWeek_changesBetweenWeeks(t *testing.T) {
	a := ChallengesForWeek(WeekNumber{Year: 2025, Week: 45})
	b := ChallengesForWeek(WeekNumber{Year: 2025, Week: 46})

	assert.NotEqual(t, a[0].Title, b[0].Title)
}

func TestMoveMessageFor_rotatesDaily(t *testing.T) {
	day := time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, MoveMessageFor(day), MoveMessageFor(day.Add(2*time.Hour)))
	assert.NotEqual(t, MoveMessageFor(day), MoveMessageFor(day.AddDate(0, 0, 1)))
}

func TestBadgesForXp(t *testing.T) {
	testCases := []struct {
		total int
		want  int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{250, 2},
		{500, 3},
		{999, 3},
		{1000, 4},
		{5000, 4},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, BadgesForXp(tc.total), "total %d", tc.total)
	}
}

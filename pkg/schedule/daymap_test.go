package schedule

import (
	"testing"
	"time"

	"github.com/notecal/notecal/pkg/vault"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func rec(path string) vault.Record {
	return vault.Record{Path: path, FrontMatter: map[string]any{}}
}

func TestProject_MultiDayRangeCrossesMonthBoundary(t *testing.T) {
	// given
	entry := Entry{Record: rec("trip.md"), Start: date(2025, time.March, 30), End: datePtr(2025, time.April, 2)}

	// when
	days, _ := Project([]Entry{entry})

	// then
	expected := []Key{
		{2025, time.March, 30},
		{2025, time.March, 31},
		{2025, time.April, 1},
		{2025, time.April, 2},
	}
	assert.Len(t, days, len(expected))
	for _, key := range expected {
		assert.Len(t, days[key], 1, "expected entry under %s", key)
	}
}

func TestProject_EndBeforeStartIsDroppedFromMap(t *testing.T) {
	// given
	entry := Entry{Record: rec("broken.md"), Start: date(2025, time.May, 10), End: datePtr(2025, time.May, 8)}

	// when
	days, bounds := Project([]Entry{entry})

	// then
	assert.Empty(t, days)
	assert.False(t, bounds.HasData())
}

func TestProject_MissingEndIsSingleDay(t *testing.T) {
	// given
	entry := Entry{Record: rec("note.md"), Start: date(2025, time.July, 4)}

	// when
	days, _ := Project([]Entry{entry})

	// then
	assert.Len(t, days, 1)
	assert.Len(t, days[Key{2025, time.July, 4}], 1)
}

func TestProject_TimeOfDayIsNormalizedAway(t *testing.T) {
	// given: a late-evening start and an early-morning end on the same days
	start := time.Date(2025, time.January, 1, 23, 30, 0, 0, time.Local)
	end := time.Date(2025, time.January, 2, 0, 15, 0, 0, time.Local)
	entry := Entry{Record: rec("meeting.md"), Start: start, End: &end}

	// when
	days, _ := Project([]Entry{entry})

	// then: exactly the two calendar days, no partial-day drift
	assert.Len(t, days, 2)
	assert.Len(t, days[Key{2025, time.January, 1}], 1)
	assert.Len(t, days[Key{2025, time.January, 2}], 1)
}

func TestProject_InsertionOrderIsPreservedPerDay(t *testing.T) {
	// given two entries occupying the same day, in source order
	first := Entry{Record: rec("a.md"), Start: date(2025, time.June, 1)}
	second := Entry{Record: rec("b.md"), Start: date(2025, time.June, 1)}

	// when
	days, _ := Project([]Entry{first, second})

	// then
	occupants := days[Key{2025, time.June, 1}]
	assert.Len(t, occupants, 2)
	assert.Equal(t, "a.md", occupants[0].Record.Path)
	assert.Equal(t, "b.md", occupants[1].Record.Path)
}

func TestProject_YearBoundsCountStartAndEndYears(t *testing.T) {
	// given entries only starting in 2024 plus one spanning the year boundary
	entries := []Entry{
		{Record: rec("a.md"), Start: date(2024, time.March, 1)},
		{Record: rec("b.md"), Start: date(2023, time.December, 30), End: datePtr(2024, time.January, 2)},
	}

	// when
	_, bounds := Project(entries)

	// then
	assert.True(t, bounds.HasData())
	assert.Equal(t, 2023, bounds.Min)
	assert.Equal(t, 2024, bounds.Max)
}

func TestYearBounds_ClampAndFallback(t *testing.T) {
	var empty YearBounds
	assert.Equal(t, 2026, empty.Clamp(2019, 2026), "no data falls back to the current year")

	_, bounds := Project([]Entry{
		{Record: rec("a.md"), Start: date(2023, time.May, 1)},
		{Record: rec("b.md"), Start: date(2025, time.May, 1)},
	})
	assert.Equal(t, 2023, bounds.Clamp(2019, 2030))
	assert.Equal(t, 2025, bounds.Clamp(2031, 2030))
	assert.Equal(t, 2024, bounds.Clamp(2024, 2030))
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "2025-03-07", Key{2025, time.March, 7}.String())
}

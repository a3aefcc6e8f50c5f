package schedule

import (
	"fmt"
	"time"
)

// Key addresses one calendar day. It carries no time-of-day and no location,
// so two timestamps on the same wall-clock day always collide on the same
// bucket.
type Key struct {
	Year  int
	Month time.Month
	Day   int
}

func KeyOf(t time.Time) Key {
	return Key{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns local midnight of the day.
func (k Key) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.Local)
}

func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

// DayMap maps calendar days to the entries occupying them, in entry insertion
// order. It is derived state, rebuilt on every refresh, never persisted.
type DayMap map[Key][]Entry

// YearBounds is the inclusive span of years touched by any entry, used to
// clamp year navigation.
type YearBounds struct {
	Min, Max int
	ok       bool
}

// Clamp restricts year to the bounds, falling back to fallback when no entry
// carried a date at all.
func (b YearBounds) Clamp(year, fallback int) int {
	if !b.ok {
		return fallback
	}
	if year < b.Min {
		return b.Min
	}
	if year > b.Max {
		return b.Max
	}
	return year
}

// HasData reports whether any entry contributed to the bounds.
func (b YearBounds) HasData() bool {
	return b.ok
}

// Project expands entries into a DayMap. Start and end are normalized to
// date-only before any comparison so partial-day timestamps cannot shift an
// entry across days. Entries whose normalized end precedes their start are
// dropped from the map entirely. The walk from start to end advances one
// calendar day at a time via calendar arithmetic, which keeps it correct
// across month and year boundaries and under DST transitions.
func Project(entries []Entry) (DayMap, YearBounds) {
	days := make(DayMap)
	var bounds YearBounds

	for _, entry := range entries {
		start := KeyOf(entry.Start).Time()
		end := start
		if entry.End != nil {
			end = KeyOf(*entry.End).Time()
		}
		if end.Before(start) {
			continue
		}

		bounds.extend(start.Year())
		bounds.extend(end.Year())

		// Terminate on key equality rather than time comparison: in zones
		// where midnight is skipped by DST the normalized timestamps drift
		// off 00:00 while the calendar day still advances by exactly one.
		endKey := KeyOf(end)
		for day := start; ; day = day.AddDate(0, 0, 1) {
			key := KeyOf(day)
			days[key] = append(days[key], entry)
			if key == endKey {
				break
			}
		}
	}
	return days, bounds
}

func (b *YearBounds) extend(year int) {
	if !b.ok {
		b.Min, b.Max, b.ok = year, year, true
		return
	}
	if year < b.Min {
		b.Min = year
	}
	if year > b.Max {
		b.Max = year
	}
}

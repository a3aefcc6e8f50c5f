package schedule

import (
	"time"

	"github.com/notecal/notecal/pkg/property"
	"github.com/notecal/notecal/pkg/vault"
)

// Entry is one date-bearing record prepared for display. End, when present,
// is the last inclusive day of the occupied range.
type Entry struct {
	Record vault.Record
	Start  time.Time
	End    *time.Time
}

// MultiDay reports whether the entry spans more than one calendar day.
func (e Entry) MultiDay() bool {
	return e.End != nil && !sameDay(e.Start, *e.End)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// BuildEntries extracts entries from records using the configured start and
// end date properties. Records without a readable start date are skipped;
// entries are produced in record iteration order, which downstream code
// relies on for primary-occupant selection.
func BuildEntries(records []vault.Record, startProperty, endProperty string) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		start, ok := property.ExtractDate(rec, startProperty)
		if !ok {
			continue
		}
		entry := Entry{Record: rec, Start: start}
		if endProperty != "" {
			if end, ok := property.ExtractDate(rec, endProperty); ok {
				entry.End = &end
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

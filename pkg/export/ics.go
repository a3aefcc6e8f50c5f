// Package export publishes a view's projected entries as an iCalendar feed,
// so the vault's schedule can be subscribed to from regular calendar
// clients.
package export

import (
	"context"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/notecal/notecal/pkg/schedule"
	"github.com/notecal/notecal/pkg/vault"
	"github.com/notecal/notecal/pkg/viewconfig"
)

type Service struct {
	snapshots *schedule.Service
	views     *viewconfig.Store
}

func NewService(snapshots *schedule.Service, views *viewconfig.Store) *Service {
	return &Service{snapshots: snapshots, views: views}
}

// Calendar serializes the view's entries as all-day VEVENTs. The inclusive
// end date becomes an exclusive DTEND (+1 day), which is the iCalendar
// convention for all-day ranges and the same adaptation the month widget needs.
func (s *Service) Calendar(ctx context.Context, viewID string) (string, error) {
	view, err := s.views.Get(viewID)
	if err != nil {
		return "", err
	}
	snap, err := s.snapshots.Snapshot(ctx, viewID)
	if err != nil {
		return "", fmt.Errorf("failed to build snapshot: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//notecal//calendar export//EN")
	cal.SetXWRCalName(view.Name)

	for _, entry := range snap.Entries {
		start := schedule.KeyOf(entry.Start).Time()
		end := start
		if entry.End != nil {
			end = schedule.KeyOf(*entry.End).Time()
		}
		if end.Before(start) {
			continue
		}

		event := cal.AddEvent(eventUID(entry.Record))
		event.SetDtStampTime(snap.BuiltAt)
		event.SetSummary(entry.Record.Basename())
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end.AddDate(0, 0, 1))
		event.SetDescription(entry.Record.Path)
	}
	return cal.Serialize(), nil
}

// eventUID derives a stable identifier from the record's path, so calendar
// clients can track the same note across feed refreshes.
func eventUID(rec vault.Record) string {
	return fmt.Sprintf("%s@notecal", rec.Path)
}

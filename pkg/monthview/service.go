package monthview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notecal/notecal/pkg/cover"
	"github.com/notecal/notecal/pkg/property"
	"github.com/notecal/notecal/pkg/schedule"
	"github.com/notecal/notecal/pkg/vault"
	"github.com/notecal/notecal/pkg/viewconfig"
	log "github.com/sirupsen/logrus"
)

var ErrNotEditable = errors.New("view is not editable")

type Service struct {
	snapshots *schedule.Service
	views     *viewconfig.Store
	repo      vault.Repository
	store     vault.FrontMatterStore
}

func NewService(snapshots *schedule.Service, views *viewconfig.Store, repo vault.Repository, store vault.FrontMatterStore) *Service {
	return &Service{
		snapshots: snapshots,
		views:     views,
		repo:      repo,
		store:     store,
	}
}

// Grid builds the month view model for (year, month). Only entries whose
// projected days intersect the month contribute events.
func (s *Service) Grid(ctx context.Context, viewID string, year int, month time.Month) (Grid, error) {
	view, err := s.views.Get(viewID)
	if err != nil {
		return Grid{}, err
	}
	snap, err := s.snapshots.Snapshot(ctx, viewID)
	if err != nil {
		return Grid{}, err
	}

	cfg := view.Config
	grid := Grid{
		Year:         year,
		Month:        int(month),
		WeekStartDay: cfg.WeekStartDay,
		Editable:     editable(cfg),
		Style: Style{
			OverlayOpacity:          cfg.OverlayOpacity,
			DayNumberFontSize:       cfg.DayNumberFontSize,
			DayCellHeight:           cfg.DayCellHeight,
			ChipScale:               cfg.ChipScale,
			AlignPropertiesToBottom: cfg.AlignPropertiesToBottom,
		},
		Events: make([]Event, 0, len(snap.Entries)),
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1)

	for _, entry := range snap.Entries {
		start := schedule.KeyOf(entry.Start).Time()
		end := start
		if entry.End != nil {
			end = schedule.KeyOf(*entry.End).Time()
		}
		if end.Before(start) {
			continue // dropped from the day map as well
		}
		if end.Before(monthStart) || start.After(monthEnd) {
			continue
		}
		grid.Events = append(grid.Events, s.buildEvent(entry, start, end, cfg, grid.Editable))
	}
	return grid, nil
}

// buildEvent converts an entry's inclusive range into the widget's exclusive
// convention: a single-day entry omits the end entirely, a multi-day entry
// reports end + 1 day.
func (s *Service) buildEvent(entry schedule.Entry, start, end time.Time, cfg viewconfig.DisplayConfig, editable bool) Event {
	ev := Event{
		Path:     entry.Record.Path,
		Start:    start.Format(DateOnly),
		Editable: editable,
	}
	if !end.Equal(start) {
		ev.End = end.AddDate(0, 0, 1).Format(DateOnly)
	}

	ev.Title, ev.Chips = cellContent(entry.Record, cfg.ExtraProperties)

	if img, ok := cover.Resolve(entry.Record, cfg.ImageProperty); ok {
		ev.Image = &Image{
			URL:    img.URL,
			Alt:    img.Alt,
			Source: string(img.Source),
			Scrim:  true,
		}
	}
	return ev
}

// cellContent picks the cell's title and stacked chips: the first configured
// extra property with a non-empty value becomes the title, the rest become
// value chips. With no usable extra property the record's display name is
// the title.
func cellContent(rec vault.Record, extraProperties []string) (string, []Chip) {
	title := ""
	var chips []Chip
	for _, prop := range extraProperties {
		v := property.Of(rec, prop)
		if v.IsEmpty() {
			continue
		}
		if title == "" {
			title = v.String()
			continue
		}
		chips = append(chips, Chip{Property: prop, Value: v.String()})
	}
	if title == "" {
		title = rec.Basename()
	}
	return title, chips
}

// editable reports whether drag rescheduling is allowed: the start property
// and, when configured, the end property must both be note-owned fields.
// Computed ("file.") identifiers disable editing for the whole calendar.
func editable(cfg viewconfig.DisplayConfig) bool {
	if !ownedPropertyID(cfg.StartDateProperty) {
		return false
	}
	if cfg.EndDateProperty != "" && !ownedPropertyID(cfg.EndDateProperty) {
		return false
	}
	return true
}

func ownedPropertyID(id string) bool {
	return id != "" && !strings.HasPrefix(id, "file.")
}

// ApplyReschedule persists a drop edit. The widget reports the new start and,
// for entries that were multi-day, a new exclusive end; both are converted to
// inclusive date-only values before being written into front matter. When the
// write fails nothing changes locally: the caller reverts the drop visually
// and the view re-renders only when fresh data arrives.
func (s *Service) ApplyReschedule(ctx context.Context, viewID string, req Reschedule) error {
	view, err := s.views.Get(viewID)
	if err != nil {
		return err
	}
	cfg := view.Config
	if !editable(cfg) {
		return ErrNotEditable
	}

	newStart, err := parseDateOnly(req.Start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", req.Start, err)
	}

	rec, err := s.repo.GetRecord(ctx, req.Path)
	if err != nil {
		return err
	}

	// Whether the entry carried an end date before the drag decides whether
	// an end is written back at all.
	_, hadEnd := property.ExtractDate(rec, cfg.EndDateProperty)
	hadEnd = hadEnd && cfg.EndDateProperty != ""

	var newEnd *time.Time
	if hadEnd {
		if req.End != "" {
			exclusiveEnd, err := parseDateOnly(req.End)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", req.End, err)
			}
			inclusive := exclusiveEnd.AddDate(0, 0, -1)
			newEnd = &inclusive
		} else {
			// Widget reported no end: the event collapsed to a single day.
			collapsed := newStart
			newEnd = &collapsed
		}
	}

	err = s.store.ProcessFrontMatter(ctx, req.Path, func(fm map[string]any) {
		fm[cfg.StartDateProperty] = newStart.Format(DateOnly)
		if newEnd != nil {
			fm[cfg.EndDateProperty] = newEnd.Format(DateOnly)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to persist reschedule for %s: %w", req.Path, err)
	}

	// The watcher would invalidate eventually; do it now so the next read
	// already reflects the edit.
	s.snapshots.InvalidateAll()
	log.Infof("rescheduled %s to %s", req.Path, req.Start)
	return nil
}

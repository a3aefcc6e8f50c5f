package yearview

import (
	"context"
	"time"

	"github.com/notecal/notecal/internal/utils"
	"github.com/notecal/notecal/pkg/cover"
	"github.com/notecal/notecal/pkg/property"
	"github.com/notecal/notecal/pkg/schedule"
	"github.com/notecal/notecal/pkg/vault"
	"github.com/notecal/notecal/pkg/viewconfig"
)

type Service struct {
	snapshots *schedule.Service
	views     *viewconfig.Store
	layouts   *LayoutService
	clock     utils.Clock
}

func NewService(snapshots *schedule.Service, views *viewconfig.Store, layouts *LayoutService, clock utils.Clock) *Service {
	return &Service{
		snapshots: snapshots,
		views:     views,
		layouts:   layouts,
		clock:     clock,
	}
}

// Grid builds the year view model. The requested year is clamped to the
// span of years present in the data, falling back to the current year when
// the vault has no dated records at all.
func (s *Service) Grid(ctx context.Context, viewID string, year int) (Grid, error) {
	view, err := s.views.Get(viewID)
	if err != nil {
		return Grid{}, err
	}
	snap, err := s.snapshots.Snapshot(ctx, viewID)
	if err != nil {
		return Grid{}, err
	}
	cfg := view.Config

	// A missing year means "now", clamped into the data span like any
	// explicitly requested year.
	current := s.clock.Now().Year()
	if year == 0 {
		year = current
	}
	year = snap.Years.Clamp(year, current)

	grid := Grid{
		Year:              year,
		Aligned:           cfg.AlignWeekdays,
		HighlightWeekends: cfg.HighlightWeekends,
		Navigation:        navigation(year, snap.Years),
		Style: Style{
			DayNumberFontSize: cfg.DayNumberFontSize,
			DayCellHeight:     cfg.DayCellHeight,
			ChipScale:         cfg.ChipScale,
			OverlayOpacity:    cfg.OverlayOpacity,
		},
	}

	if cfg.AlignWeekdays {
		grid.SlotsPerRow = alignedSlotCount(year)
	} else {
		grid.SlotsPerRow = 31
	}

	// Weekend highlighting is computed per day from its actual weekday, but
	// only takes effect together with the aligned layout. The two flags stay
	// independently toggleable in configuration.
	markWeekends := cfg.AlignWeekdays && cfg.HighlightWeekends

	grid.Rows = make([]MonthRow, 0, 12)
	for month := time.January; month <= time.December; month++ {
		grid.Rows = append(grid.Rows, s.buildRow(snap, cfg, year, month, grid.SlotsPerRow, markWeekends))
	}

	if s.layouts != nil {
		s.layouts.Arm(viewID, LayoutKey{
			Aligned:           cfg.AlignWeekdays,
			HighlightWeekends: cfg.HighlightWeekends,
			Year:              year,
			CellHeight:        cfg.DayCellHeight,
		})
	}
	return grid, nil
}

func (s *Service) buildRow(snap *schedule.Snapshot, cfg viewconfig.DisplayConfig, year int, month time.Month, slots int, markWeekends bool) MonthRow {
	row := MonthRow{
		Month: int(month),
		Name:  month.String(),
		Cells: make([]Cell, 0, slots),
	}

	if cfg.AlignWeekdays {
		// The aligned layout is always Sunday-based, independent of the
		// month view's configurable week start.
		offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday())
		for i := 0; i < offset; i++ {
			row.Cells = append(row.Cells, Cell{})
		}
	}

	for day := 1; day <= daysInMonth(year, month); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		cell := Cell{
			Day:     day,
			Date:    date.Format("2006-01-02"),
			InMonth: true,
		}
		if markWeekends {
			wd := date.Weekday()
			cell.Weekend = wd == time.Saturday || wd == time.Sunday
		}

		occupants := snap.Days[schedule.KeyOf(date)]
		if len(occupants) > 0 {
			cell.Primary = s.occupant(occupants[0], cfg)
			cell.OverflowCount = len(occupants) - 1
		}
		row.Cells = append(row.Cells, cell)
	}

	for len(row.Cells) < slots {
		row.Cells = append(row.Cells, Cell{})
	}
	return row
}

// occupant renders the day's primary record.
func (s *Service) occupant(entry schedule.Entry, cfg viewconfig.DisplayConfig) *Occupant {
	occ := &Occupant{
		Path:  entry.Record.Path,
		Title: occupantTitle(entry.Record, cfg.ExtraProperties),
	}
	if img, ok := cover.Resolve(entry.Record, cfg.ImageProperty); ok {
		occ.Image = img.URL
	}
	return occ
}

func occupantTitle(rec vault.Record, extraProperties []string) string {
	for _, prop := range extraProperties {
		if v := property.Of(rec, prop); !v.IsEmpty() {
			return v.String()
		}
	}
	return rec.Basename()
}

// alignedSlotCount returns the shared column count for the aligned layout:
// per month the smallest multiple of 7 covering firstWeekday + daysInMonth,
// maximized over all twelve months so columns align by weekday across rows.
func alignedSlotCount(year int) int {
	max := 0
	for month := time.January; month <= time.December; month++ {
		offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday())
		needed := offset + daysInMonth(year, month)
		slots := ((needed + 6) / 7) * 7
		if slots > max {
			max = slots
		}
	}
	return max
}

// daysInMonth uses day zero of the following month, which the time package
// normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

func navigation(year int, bounds schedule.YearBounds) Navigation {
	nav := Navigation{
		PrevYear: year,
		NextYear: year,
		MinYear:  year,
		MaxYear:  year,
		HasData:  bounds.HasData(),
	}
	if !bounds.HasData() {
		return nav
	}
	nav.MinYear = bounds.Min
	nav.MaxYear = bounds.Max
	if year > bounds.Min {
		nav.PrevYear = year - 1
	}
	if year < bounds.Max {
		nav.NextYear = year + 1
	}
	return nav
}

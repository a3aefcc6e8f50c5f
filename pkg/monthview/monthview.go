// Package monthview renders one month at a time as the event list consumed
// by the client's all-day calendar widget. The widget treats event ends as
// exclusive while the vault stores inclusive end dates; this package owns
// the adaptation in both directions.
package monthview

import "time"

// DateOnly is the wire and persistence format for calendar dates. The
// reschedule path never writes time-of-day back, even when the original
// property value carried one.
const DateOnly = "2006-01-02"

// Event is one widget event. End is exclusive and empty for single-day
// events, matching the widget convention.
type Event struct {
	Path     string  `json:"path"`
	Title    string  `json:"title"`
	Start    string  `json:"start"`
	End      string  `json:"end,omitempty"`
	Chips    []Chip  `json:"chips,omitempty"`
	Image    *Image  `json:"image,omitempty"`
	Editable bool    `json:"editable"`
}

// Chip is one rendered property value stacked in a day cell.
type Chip struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Image is a full-cell background image with a readability scrim under the
// chips.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Source string `json:"source"`
	Scrim  bool   `json:"scrim"`
}

// Style is the computed cell styling, applied declaratively by the client.
type Style struct {
	OverlayOpacity          float64 `json:"overlayOpacity"`
	DayNumberFontSize       int     `json:"dayNumberFontSize"`
	DayCellHeight           int     `json:"dayCellHeight"`
	ChipScale               float64 `json:"chipScale"`
	AlignPropertiesToBottom bool    `json:"alignPropertiesToBottom"`
}

// Grid is the month view model.
type Grid struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	WeekStartDay int     `json:"weekStartDay"`
	Editable     bool    `json:"editable"`
	Style        Style   `json:"style"`
	Events       []Event `json:"events"`
}

// Reschedule is a drop edit reported by the widget. End, when present, is
// the widget's exclusive end.
type Reschedule struct {
	Path  string `json:"path"`
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

func parseDateOnly(s string) (time.Time, error) {
	return time.ParseInLocation(DateOnly, s, time.Local)
}

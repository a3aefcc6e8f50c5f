// Package yearview renders a whole year as twelve month rows of day cells,
// either as a fixed 31-column grid or aligned by weekday with padding cells.
package yearview

// Cell is one day slot in a month row. Padding and trailing slots have
// InMonth=false and no day number.
type Cell struct {
	Day     int    `json:"day,omitempty"`
	Date    string `json:"date,omitempty"`
	InMonth bool   `json:"inMonth"`
	// Weekend is set from the day's actual weekday, but only when both the
	// aligned layout and weekend highlighting are enabled.
	Weekend       bool      `json:"weekend,omitempty"`
	Primary       *Occupant `json:"primary,omitempty"`
	OverflowCount int       `json:"overflowCount,omitempty"`
}

// Occupant is the day's primary record: always the first occupant in
// day-map insertion order, never re-sorted by time or title.
type Occupant struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// MonthRow is one month's cells, padded to the grid's shared slot count.
type MonthRow struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// Navigation carries the year stepping bounds, clamped to the span of years
// present in the data.
type Navigation struct {
	PrevYear int  `json:"prevYear"`
	NextYear int  `json:"nextYear"`
	MinYear  int  `json:"minYear"`
	MaxYear  int  `json:"maxYear"`
	HasData  bool `json:"hasData"`
}

// Style is the computed cell styling, applied declaratively by the client.
type Style struct {
	DayNumberFontSize int     `json:"dayNumberFontSize"`
	DayCellHeight     int     `json:"dayCellHeight"`
	ChipScale         float64 `json:"chipScale"`
	OverlayOpacity    float64 `json:"overlayOpacity"`
}

// Grid is the year view model. SlotsPerRow is 31 in standard mode and the
// year's maximum weekday-aligned slot count otherwise, so all months share
// the same column count.
type Grid struct {
	Year              int        `json:"year"`
	Aligned           bool       `json:"aligned"`
	HighlightWeekends bool       `json:"highlightWeekends"`
	SlotsPerRow       int        `json:"slotsPerRow"`
	Rows              []MonthRow `json:"rows"`
	Navigation        Navigation `json:"navigation"`
	Style             Style      `json:"style"`
}

package viewconfig

import (
	"strconv"
	"strings"
	"time"
)

// ViewType selects the layout a view renders.
type ViewType string

const (
	ViewTypeMonth ViewType = "month"
	ViewTypeYear  ViewType = "year"
)

// DisplayConfig is the per-view display state. All numeric and boolean
// options are normalized independently: malformed input silently falls back
// to the option's default, never to an error.
type DisplayConfig struct {
	StartDateProperty string   `yaml:"startDateProperty" json:"startDateProperty"`
	EndDateProperty   string   `yaml:"endDateProperty,omitempty" json:"endDateProperty,omitempty"`
	ImageProperty     string   `yaml:"imageProperty,omitempty" json:"imageProperty,omitempty"`
	ExtraProperties   []string `yaml:"extraProperties,omitempty" json:"extraProperties,omitempty"`

	OverlayOpacity    float64 `yaml:"overlayOpacity" json:"overlayOpacity"`
	DayNumberFontSize int     `yaml:"dayNumberFontSize" json:"dayNumberFontSize"`
	DayCellHeight     int     `yaml:"dayCellHeight" json:"dayCellHeight"`
	ChipScale         float64 `yaml:"chipScale" json:"chipScale"`

	AlignPropertiesToBottom bool `yaml:"alignPropertiesToBottom" json:"alignPropertiesToBottom"`
	AlignWeekdays           bool `yaml:"alignWeekdays" json:"alignWeekdays"`
	HighlightWeekends       bool `yaml:"highlightWeekends" json:"highlightWeekends"`

	// WeekStartDay is 0-6 with Sunday=0. Applies to the month grid only; the
	// weekday-aligned year layout is always Sunday-based.
	WeekStartDay int `yaml:"weekStartDay" json:"weekStartDay"`
}

// Option defaults and ranges. The options schema mirrors these values, so
// the settings panel and the normalization rules cannot drift apart.
const (
	DefaultOverlayOpacity    = 0.6
	MinOverlayOpacity        = 0.0
	MaxOverlayOpacity        = 1.0
	DefaultDayNumberFontSize = 16
	MinDayNumberFontSize     = 12
	MaxDayNumberFontSize     = 40
	DefaultDayCellHeight     = 120
	MinDayCellHeight         = 80
	MaxDayCellHeight         = 220
	DefaultChipScale         = 1.0
	MinChipScale             = 0.6
	MaxChipScale             = 1.6
	DefaultWeekStartDay      = 1 // Monday
)

// DefaultConfig returns a DisplayConfig with every option at its default.
func DefaultConfig() DisplayConfig {
	return DisplayConfig{
		OverlayOpacity:    DefaultOverlayOpacity,
		DayNumberFontSize: DefaultDayNumberFontSize,
		DayCellHeight:     DefaultDayCellHeight,
		ChipScale:         DefaultChipScale,
		WeekStartDay:      DefaultWeekStartDay,
	}
}

// Normalize builds a DisplayConfig from raw option values (typically a
// decoded JSON object). Every field is normalized on its own; one bad value
// never affects another.
func Normalize(raw map[string]any) DisplayConfig {
	cfg := DefaultConfig()
	if raw == nil {
		return cfg
	}

	cfg.StartDateProperty = stringOption(raw["startDateProperty"], "")
	cfg.EndDateProperty = stringOption(raw["endDateProperty"], "")
	cfg.ImageProperty = stringOption(raw["imageProperty"], "")
	cfg.ExtraProperties = stringListOption(raw["extraProperties"])

	cfg.OverlayOpacity = fractionOption(raw["overlayOpacity"], DefaultOverlayOpacity)
	cfg.DayNumberFontSize = intOption(raw["dayNumberFontSize"], MinDayNumberFontSize, MaxDayNumberFontSize, DefaultDayNumberFontSize)
	cfg.DayCellHeight = intOption(raw["dayCellHeight"], MinDayCellHeight, MaxDayCellHeight, DefaultDayCellHeight)
	cfg.ChipScale = floatOption(raw["chipScale"], MinChipScale, MaxChipScale, DefaultChipScale)

	cfg.AlignPropertiesToBottom = boolOption(raw["alignPropertiesToBottom"], false)
	cfg.AlignWeekdays = boolOption(raw["alignWeekdays"], false)
	cfg.HighlightWeekends = boolOption(raw["highlightWeekends"], false)

	cfg.WeekStartDay = intOption(raw["weekStartDay"], 0, 6, DefaultWeekStartDay)
	return cfg
}

// WeekStart returns the configured first day of the week.
func (c DisplayConfig) WeekStart() time.Weekday {
	return time.Weekday(c.WeekStartDay)
}

func stringOption(raw any, def string) string {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return def
}

func stringListOption(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	default:
		return nil
	}
}

// numeric parses ints, floats, and numeric strings uniformly.
func numeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// fractionOption normalizes an opacity-like value into [0,1]. Values given
// on a 0-100 scale (e.g. "70") are interpreted as percentages.
func fractionOption(raw any, def float64) float64 {
	f, ok := numeric(raw)
	if !ok {
		return def
	}
	if f > 1 && f <= 100 {
		f = f / 100
	}
	return clampFloat(f, MinOverlayOpacity, MaxOverlayOpacity)
}

func floatOption(raw any, min, max, def float64) float64 {
	f, ok := numeric(raw)
	if !ok {
		return def
	}
	return clampFloat(f, min, max)
}

func intOption(raw any, min, max, def int) int {
	f, ok := numeric(raw)
	if !ok {
		return def
	}
	return int(clampFloat(f, float64(min), float64(max)))
}

func boolOption(raw any, def bool) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

func clampFloat(f, min, max float64) float64 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}

package viewconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_EmptyInputYieldsDefaults(t *testing.T) {
	cfg := Normalize(nil)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, time.Monday, cfg.WeekStart())
}

func TestNormalize_OpacityAcceptsPercentageScale(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{name: "fraction stays as-is", raw: 0.45, want: 0.45},
		{name: "percentage string is rescaled", raw: "70", want: 0.7},
		{name: "percentage number is rescaled", raw: 70, want: 0.7},
		{name: "garbage falls back to default", raw: "abc", want: DefaultOverlayOpacity},
		{name: "negative is clamped to zero", raw: -0.3, want: 0.0},
		{name: "over 100 is clamped to one", raw: 250, want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Normalize(map[string]any{"overlayOpacity": tt.raw})
			assert.InDelta(t, tt.want, cfg.OverlayOpacity, 0.0001)
		})
	}
}

func TestNormalize_NumericOptionsAreClampedIndependently(t *testing.T) {
	// given one malformed and several out-of-range options
	cfg := Normalize(map[string]any{
		"dayNumberFontSize": 500,
		"dayCellHeight":     "oops",
		"chipScale":         0.1,
		"weekStartDay":      9,
	})

	// then each option is handled on its own
	assert.Equal(t, MaxDayNumberFontSize, cfg.DayNumberFontSize)
	assert.Equal(t, DefaultDayCellHeight, cfg.DayCellHeight)
	assert.Equal(t, MinChipScale, cfg.ChipScale)
	assert.Equal(t, 6, cfg.WeekStartDay)
}

func TestNormalize_PropertyIdentifiersAreTrimmed(t *testing.T) {
	cfg := Normalize(map[string]any{
		"startDateProperty": "  due  ",
		"endDateProperty":   "finish",
		"imageProperty":     "cover",
		"extraProperties":   []any{"title", "  status ", "", 42},
	})

	assert.Equal(t, "due", cfg.StartDateProperty)
	assert.Equal(t, "finish", cfg.EndDateProperty)
	assert.Equal(t, "cover", cfg.ImageProperty)
	assert.Equal(t, []string{"title", "status"}, cfg.ExtraProperties)
}

func TestNormalize_BoolOptions(t *testing.T) {
	cfg := Normalize(map[string]any{
		"alignWeekdays":           true,
		"highlightWeekends":       "true",
		"alignPropertiesToBottom": "maybe",
	})

	assert.True(t, cfg.AlignWeekdays)
	assert.True(t, cfg.HighlightWeekends)
	assert.False(t, cfg.AlignPropertiesToBottom)
}

package viewconfig

// The options schema is the declarative description of a view's settings
// panel. The client renders it as-is; the server only guarantees that the
// ranges and defaults match the normalization rules.

type FieldType string

const (
	FieldProperty FieldType = "property"
	FieldSlider   FieldType = "slider"
	FieldToggle   FieldType = "toggle"
	FieldDropdown FieldType = "dropdown"
)

type SchemaField struct {
	Key     string         `json:"key"`
	Label   string         `json:"label"`
	Type    FieldType      `json:"type"`
	Min     float64        `json:"min,omitempty"`
	Max     float64        `json:"max,omitempty"`
	Step    float64        `json:"step,omitempty"`
	Default any            `json:"default,omitempty"`
	Options []SchemaOption `json:"options,omitempty"`
}

type SchemaOption struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

type SchemaGroup struct {
	Title  string        `json:"title"`
	Fields []SchemaField `json:"fields"`
}

type OptionsSchema struct {
	Groups []SchemaGroup `json:"groups"`
}

// SchemaFor returns the settings panel description for a view type.
func SchemaFor(viewType ViewType) OptionsSchema {
	data := SchemaGroup{
		Title: "Data",
		Fields: []SchemaField{
			{Key: "startDateProperty", Label: "Start date property", Type: FieldProperty},
			{Key: "endDateProperty", Label: "End date property", Type: FieldProperty},
			{Key: "imageProperty", Label: "Image property", Type: FieldProperty},
		},
	}

	appearance := SchemaGroup{
		Title: "Appearance",
		Fields: []SchemaField{
			{Key: "overlayOpacity", Label: "Property overlay opacity", Type: FieldSlider,
				Min: MinOverlayOpacity, Max: MaxOverlayOpacity, Step: 0.05, Default: DefaultOverlayOpacity},
			{Key: "dayNumberFontSize", Label: "Day number size", Type: FieldSlider,
				Min: MinDayNumberFontSize, Max: MaxDayNumberFontSize, Step: 1, Default: DefaultDayNumberFontSize},
			{Key: "dayCellHeight", Label: "Day cell height", Type: FieldSlider,
				Min: MinDayCellHeight, Max: MaxDayCellHeight, Step: 5, Default: DefaultDayCellHeight},
			{Key: "chipScale", Label: "Chip scale", Type: FieldSlider,
				Min: MinChipScale, Max: MaxChipScale, Step: 0.1, Default: DefaultChipScale},
			{Key: "alignPropertiesToBottom", Label: "Align properties to bottom", Type: FieldToggle, Default: false},
		},
	}

	schema := OptionsSchema{Groups: []SchemaGroup{data, appearance}}

	switch viewType {
	case ViewTypeMonth:
		schema.Groups = append(schema.Groups, SchemaGroup{
			Title: "Week",
			Fields: []SchemaField{
				{Key: "weekStartDay", Label: "Week starts on", Type: FieldDropdown,
					Default: DefaultWeekStartDay,
					Options: []SchemaOption{
						{Value: 0, Label: "Sunday"},
						{Value: 1, Label: "Monday"},
						{Value: 6, Label: "Saturday"},
					}},
			},
		})
	case ViewTypeYear:
		schema.Groups = append(schema.Groups, SchemaGroup{
			Title: "Layout",
			Fields: []SchemaField{
				{Key: "alignWeekdays", Label: "Align days by weekday", Type: FieldToggle, Default: false},
				{Key: "highlightWeekends", Label: "Highlight weekends", Type: FieldToggle, Default: false},
			},
		})
	}
	return schema
}

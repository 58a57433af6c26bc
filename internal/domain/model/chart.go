package model

// ChartType is the kind of chart primitive.
type ChartType string

// Supported chart types.
const (
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"
)

// Legend positions, following the usual b/t/l/r shorthand.
const (
	LegendBottom = "b"
	LegendTop    = "t"
	LegendLeft   = "l"
	LegendRight  = "r"
)

// Chart is a line or pie chart populated with literal series data.
type Chart struct {
	Type              ChartType `koanf:"type" json:"type"`
	Title             string    `koanf:"title" json:"title,omitempty"`
	Series            []Series  `koanf:"series" json:"series"`
	ShowLegend        bool      `koanf:"show_legend" json:"show_legend,omitempty"`
	LegendPos         string    `koanf:"legend_pos" json:"legend_pos,omitempty"`
	CategoryAxisTitle string    `koanf:"category_axis_title" json:"category_axis_title,omitempty"`
	ValueAxisTitle    string    `koanf:"value_axis_title" json:"value_axis_title,omitempty"`
	// LabelFormat is an Excel-style number format such as "#,##0" or "#,##0%".
	LabelFormat string   `koanf:"label_format" json:"label_format,omitempty"`
	LineSize    float64  `koanf:"line_size" json:"line_size,omitempty"`
	Colors      []string `koanf:"colors" json:"colors,omitempty"`
}

// Series is one named sequence of values over category labels.
type Series struct {
	Name   string    `koanf:"name" json:"name"`
	Labels []string  `koanf:"labels" json:"labels"`
	Values []float64 `koanf:"values" json:"values"`
}

// Color returns the i-th chart color, cycling through the palette, or
// fallback when none is configured.
func (c *Chart) Color(i int, fallback string) string {
	if len(c.Colors) == 0 {
		return fallback
	}
	return c.Colors[i%len(c.Colors)]
}

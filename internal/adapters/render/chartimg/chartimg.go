// Package chartimg rasterises deck charts to PNG with go-chart.
package chartimg

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/deckgen/internal/domain/model"
)

// Rasterizer renders charts at a fixed resolution.
type Rasterizer struct {
	dpi        float64
	font       *truetype.Font
	lookup     []string
	fontOnce   sync.Once
	background string
	foreground string
}

// New creates a Rasterizer.
func New(opts ...Option) *Rasterizer {
	r := &Rasterizer{
		dpi:        DefaultDPI,
		lookup:     CJKFonts,
		background: DefaultBackground,
		foreground: DefaultForeground,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Font returns the font charts are drawn with, looking up an installed
// CJK face on first use. Nil means the go-chart default, which has
// Latin glyphs only.
func (r *Rasterizer) Font() *truetype.Font {
	r.fontOnce.Do(func() {
		if r.font != nil || len(r.lookup) == 0 {
			return
		}
		if f, _, err := FindFont(r.lookup...); err == nil {
			r.font = f
		}
	})
	return r.font
}

// DPI reports the raster resolution.
func (r *Rasterizer) DPI() float64 { return r.dpi }

// Pixels converts a size in inches to raster pixels.
func (r *Rasterizer) Pixels(w, h float64) (int, int) {
	return int(w*r.dpi + 0.5), int(h*r.dpi + 0.5)
}

// Render draws ch as a PNG of w x h inches.
func (r *Rasterizer) Render(ctx context.Context, ch *model.Chart, w, h float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	px, py := r.Pixels(w, h)
	font := r.Font()

	var buf bytes.Buffer
	var err error
	switch ch.Type {
	case model.ChartPie:
		err = r.pie(ch, font, px, py, &buf)
	default:
		err = r.line(ch, font, px, py, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRender, ch.Title, err)
	}
	return buf.Bytes(), nil
}

// points converts a width in points to pixels at the raster DPI.
func (r *Rasterizer) points(pt float64) float64 {
	return pt * r.dpi / 72
}

func (r *Rasterizer) frame() (bg, fg drawing.Color, text chart.Style) {
	bg = drawing.ColorFromHex(r.background)
	fg = drawing.ColorFromHex(r.foreground)
	return bg, fg, chart.Style{FontColor: fg, StrokeColor: fg}
}

func (r *Rasterizer) line(ch *model.Chart, font *truetype.Font, px, py int, buf *bytes.Buffer) error {
	bg, fg, text := r.frame()

	labels := ch.Series[0].Labels
	ticks := make([]chart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: l}
	}

	stroke := 2.0
	if ch.LineSize > 0 {
		stroke = ch.LineSize
	}

	graph := chart.Chart{
		Title:      ch.Title,
		TitleStyle: chart.Style{FontColor: fg},
		Width:      px,
		Height:     py,
		DPI:        r.dpi,
		Font:       font,
		Background: chart.Style{FillColor: bg, Padding: chart.Box{Top: 24, Left: 16, Right: 24, Bottom: 16}},
		Canvas:     chart.Style{FillColor: bg},
		XAxis: chart.XAxis{
			Name:      ch.CategoryAxisTitle,
			NameStyle: text,
			Style:     text,
			Ticks:     ticks,
		},
		YAxis: chart.YAxis{
			Name:      ch.ValueAxisTitle,
			NameStyle: text,
			Style:     text,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatValue(ch.LabelFormat, f)
				}
				return ""
			},
		},
	}

	for i, s := range ch.Series {
		xs := make([]float64, len(s.Values))
		for j := range xs {
			xs[j] = float64(j)
		}
		c := drawing.ColorFromHex(ch.Color(i, DefaultStroke))
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: r.points(stroke),
				DotColor:    c,
				DotWidth:    r.points(stroke),
			},
		})
	}

	if ch.ShowLegend {
		style := chart.Style{FillColor: bg, FontColor: fg, StrokeColor: fg}
		switch ch.LegendPos {
		case model.LegendBottom:
			graph.Elements = []chart.Renderable{chart.LegendThin(&graph, style)}
		case model.LegendLeft:
			graph.Elements = []chart.Renderable{chart.LegendLeft(&graph, style)}
		default:
			graph.Elements = []chart.Renderable{chart.Legend(&graph, style)}
		}
	}

	return graph.Render(chart.PNG, buf)
}

// pie draws one slice per label of the first series. Slice labels carry
// the category name and, when a label format is set, the value; a
// percent format shows each slice's share of the total.
func (r *Rasterizer) pie(ch *model.Chart, font *truetype.Font, px, py int, buf *bytes.Buffer) error {
	bg, fg, _ := r.frame()
	s := ch.Series[0]

	var total float64
	for _, v := range s.Values {
		total += v
	}
	if total <= 0 {
		return fmt.Errorf("%w: pie %q has no positive values", model.ErrInvalidChart, s.Name)
	}

	values := make([]chart.Value, len(s.Values))
	for i, v := range s.Values {
		label := s.Labels[i]
		if ch.LabelFormat != "" {
			shown := v
			if isPercent(ch.LabelFormat) {
				shown = v / total * 100
			}
			label = label + " " + FormatValue(ch.LabelFormat, shown)
		}
		hex := ch.Color(i, DefaultStroke)
		values[i] = chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(hex),
				StrokeColor: bg,
				StrokeWidth: r.points(1),
				FontColor:   drawing.ColorFromHex(contrast(hex)),
			},
		}
	}

	pc := chart.PieChart{
		Title:      ch.Title,
		TitleStyle: chart.Style{FontColor: fg},
		Width:      px,
		Height:     py,
		DPI:        r.dpi,
		Font:       font,
		Background: chart.Style{FillColor: bg},
		Canvas:     chart.Style{FillColor: bg},
		Values:     values,
	}
	return pc.Render(chart.PNG, buf)
}

func isPercent(format string) bool {
	return len(format) > 0 && format[len(format)-1] == '%'
}

// contrast picks dark or light label text for a slice color.
func contrast(hex string) string {
	c := drawing.ColorFromHex(hex)
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum > 150 {
		return "1C2833"
	}
	return "FFFFFF"
}

// Package pptx writes expanded decks as PowerPoint 2007 files with GoPPT.
//
// The slide size follows the plan canvas. Slide backgrounds are slide
// fills, rectangles are text shapes with a fill and a border, and charts
// are native chart parts unless a ChartRasterizer is configured, in which
// case they are embedded as PNG pictures.
package pptx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/okian/deckgen/internal/domain/layout"
	"github.com/okian/deckgen/internal/domain/model"
	"github.com/okian/deckgen/pkg/logger"
)

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	imageMIME   = "image/png"

	chartTitleSize = 14
	markerSize     = 6
)

// ChartRasterizer turns a chart into an image of w x h inches.
type ChartRasterizer interface {
	Render(ctx context.Context, ch *model.Chart, w, h float64) ([]byte, error)
}

// Renderer writes plans to .pptx bytes.
type Renderer struct {
	images ChartRasterizer
	log    logger.Logger
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{log: logger.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws every slide of p and returns the encoded presentation.
func (r *Renderer) Render(ctx context.Context, p *layout.Plan) ([]byte, error) {
	if p == nil || len(p.Slides) == 0 {
		return nil, fmt.Errorf("%w: empty plan", ErrRender)
	}
	pres := ppt.New()
	pres.GetDocumentProperties().Title = p.Title
	pres.GetDocumentProperties().Creator = p.Author
	pres.SetLayout(slideLayout(p.Canvas))

	for i, s := range p.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slide := pres.GetActiveSlide()
		if i > 0 {
			slide = pres.CreateSlide()
		}
		slide.SetName(s.Name)
		if err := r.drawSlide(ctx, slide, s); err != nil {
			return nil, fmt.Errorf("%w: slide %d (%s): %w", ErrRender, i+1, s.Name, err)
		}
		r.log.Debug(ctx, "slide drawn",
			logger.Int("index", i+1),
			logger.String("name", s.Name),
			logger.Int("elements", len(s.Elements)),
		)
	}

	w, err := ppt.NewWriter(pres, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("%w: create writer: %w", ErrRender, err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// slideLayout sizes the presentation to the canvas.
func slideLayout(c model.Canvas) *ppt.DocumentLayout {
	c = c.OrDefault()
	dl := ppt.NewDocumentLayout()
	dl.SetCustomLayout(emu(c.Width), emu(c.Height))
	return dl
}

func (r *Renderer) drawSlide(ctx context.Context, slide *ppt.Slide, s layout.PlannedSlide) error {
	slide.SetBackground(solid(model.ARGB(s.Background, 0)))
	for j := range s.Elements {
		e := &s.Elements[j]
		switch e.Kind {
		case model.ElementText:
			drawText(slide, e)
		case model.ElementRect:
			drawRect(slide, e)
		case model.ElementChart:
			if err := r.drawChart(ctx, slide, e); err != nil {
				return fmt.Errorf("element %d: %w", j+1, err)
			}
		default:
			return fmt.Errorf("element %d: %w: %q", j+1, model.ErrInvalidElement, e.Kind)
		}
	}
	return nil
}

func drawText(slide *ppt.Slide, e *model.Element) {
	sh := slide.CreateRichTextShape()
	sh.SetOffsetX(emu(e.Box.X)).SetOffsetY(emu(e.Box.Y))
	sh.SetWidth(emu(e.Box.W)).SetHeight(emu(e.Box.H))

	color := ppt.NewColor(model.ARGB(e.Font.Color, 0))
	for i, line := range strings.Split(e.Text, "\n") {
		if i > 0 {
			sh.CreateParagraph()
		}
		tr := sh.CreateTextRun(line)
		f := tr.GetFont().SetSize(e.Font.Size).SetBold(e.Font.Bold).SetColor(color)
		if e.Font.Face != "" {
			f.SetName(e.Font.Face)
		}
		align(sh.GetActiveParagraph(), e.Font.Align)
	}
}

func align(p *ppt.Paragraph, a model.Align) {
	switch a {
	case model.AlignCenter:
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
	case model.AlignRight:
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
	}
}

func drawRect(slide *ppt.Slide, e *model.Element) {
	sh := slide.CreateRichTextShape()
	sh.SetOffsetX(emu(e.Box.X)).SetOffsetY(emu(e.Box.Y))
	sh.SetWidth(emu(e.Box.W)).SetHeight(emu(e.Box.H))
	if e.Fill != nil {
		sh.SetFill(solid(model.ARGB(e.Fill.Color, e.Fill.Transparency)))
	}
	if e.Line != nil {
		sh.SetBorder(border(e.Line))
	}
}

func (r *Renderer) drawChart(ctx context.Context, slide *ppt.Slide, e *model.Element) error {
	if r.images != nil {
		return r.drawChartImage(ctx, slide, e)
	}
	drawNativeChart(slide, e)
	return nil
}

// drawNativeChart writes ch as a chart part. Pie slices take the
// application palette; series colors apply to lines.
func drawNativeChart(slide *ppt.Slide, e *model.Element) {
	ch := e.Chart
	sh := slide.CreateChartShape()
	sh.SetName(ch.Title)
	sh.SetOffsetX(emu(e.Box.X)).SetOffsetY(emu(e.Box.Y))
	sh.SetWidth(emu(e.Box.W)).SetHeight(emu(e.Box.H))

	if ch.Title != "" {
		sh.GetTitle().SetText(ch.Title).Font.SetSize(chartTitleSize).SetBold(true)
	} else {
		sh.GetTitle().SetVisible(false)
	}

	legend := sh.GetLegend()
	legend.Visible = ch.ShowLegend
	legend.Position = legendPosition(ch.LegendPos)

	plot := sh.GetPlotArea()
	switch ch.Type {
	case model.ChartPie:
		pie := ppt.NewPieChart()
		for _, s := range ch.Series {
			ser := ppt.NewChartSeriesOrdered(s.Name, s.Labels, s.Values)
			if ch.LabelFormat != "" {
				ser.ShowCategoryName = true
				ser.ShowPercentage = strings.HasSuffix(ch.LabelFormat, "%")
				ser.ShowValue = !ser.ShowPercentage
				ser.SetLabelPosition(ppt.LabelBestFit)
			}
			pie.AddSeries(ser)
		}
		plot.SetType(pie)
	default:
		line := ppt.NewLineChart()
		for i, s := range ch.Series {
			ser := ppt.NewChartSeriesOrdered(s.Name, s.Labels, s.Values)
			if c := ch.Color(i, ""); c != "" {
				ser.SetFillColor(ppt.NewColor(model.ARGB(c, 0)))
			}
			ser.Marker = &ppt.SeriesMarker{Symbol: ppt.MarkerCircle, Size: markerSize}
			line.AddSeries(ser)
		}
		plot.SetType(line)
		plot.GetAxisX().SetTitle(ch.CategoryAxisTitle)
		plot.GetAxisY().SetTitle(ch.ValueAxisTitle).SetMajorGridlines(ppt.NewGridlines())
	}
}

func (r *Renderer) drawChartImage(ctx context.Context, slide *ppt.Slide, e *model.Element) error {
	img, err := r.images.Render(ctx, e.Chart, e.Box.W, e.Box.H)
	if err != nil {
		return err
	}
	sh := slide.CreateDrawingShape()
	sh.SetImageData(img, imageMIME)
	sh.SetOffsetX(emu(e.Box.X)).SetOffsetY(emu(e.Box.Y))
	sh.SetWidth(emu(e.Box.W)).SetHeight(emu(e.Box.H))
	return nil
}

func legendPosition(pos string) ppt.LegendPosition {
	switch pos {
	case model.LegendTop:
		return ppt.LegendTop
	case model.LegendLeft:
		return ppt.LegendLeft
	case model.LegendRight:
		return ppt.LegendRight
	default:
		return ppt.LegendBottom
	}
}

func solid(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

func border(l *model.Line) *ppt.Border {
	return ppt.NewBorder().
		SetSolidFill(ppt.NewColor(model.ARGB(l.Color, 0))).
		SetWidth(int(l.Width*emuPerPoint + 0.5))
}

func emu(in float64) int64 {
	return int64(in*emuPerInch + 0.5)
}

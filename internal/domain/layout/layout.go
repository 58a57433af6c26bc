// Package layout expands deck descriptions into positioned primitives.
//
// Slides carry a header (title, subtitle), verbatim elements and
// components. Components are blocks of literal records (metric cards,
// goals, milestones, ...) whose geometry is fixed by a small template per
// kind; the only arithmetic is the grid offset of the i-th record.
package layout

import (
	"fmt"

	"github.com/okian/deckgen/internal/domain/model"
)

// DefaultTheme is the dark palette of the annual review deck.
var DefaultTheme = model.Theme{
	Background: "1C2833",
	Text:       "FFFFFF",
	Muted:      "AAB7B8",
	Accent:     "E74C3C",
	Panel:      "2E4053",
	Font:       "Arial",
}

// Header geometry shared by all content slides.
var (
	headerTitleBox    = model.Box{X: 0.5, Y: 0.3, W: 9, H: 0.8}
	headerSubtitleBox = model.Box{X: 0.5, Y: 0.9, W: 9, H: 0.4}
)

const (
	headerTitleSize    = 32
	headerSubtitleSize = 16
)

// Plan is a deck reduced to primitives, ready for a renderer.
type Plan struct {
	Title   string
	Author  string
	Subject string
	Output  string
	Canvas  model.Canvas
	Slides  []PlannedSlide
}

// PlannedSlide is one page of primitives, drawn in order.
type PlannedSlide struct {
	Name       string
	Background string
	Elements   []model.Element
}

// Counts summarizes a plan.
type Counts struct {
	Slides int `json:"slides"`
	Texts  int `json:"texts"`
	Rects  int `json:"rects"`
	Charts int `json:"charts"`
}

// Elements is the total number of primitives.
func (c Counts) Elements() int { return c.Texts + c.Rects + c.Charts }

// ChartRef points at a chart inside a plan.
type ChartRef struct {
	Slide int
	Index int
	Chart *model.Chart
}

// Expand lays out every slide of d.
func Expand(d *model.Deck) (*Plan, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil deck", model.ErrInvalidDeck)
	}
	theme := mergeTheme(d.Theme)
	p := &Plan{
		Title:   d.Title,
		Author:  d.Author,
		Subject: d.Subject,
		Output:  d.Output,
		Canvas:  d.Canvas.OrDefault(),
		Slides:  make([]PlannedSlide, 0, len(d.Slides)),
	}

	for i, s := range d.Slides {
		ps := PlannedSlide{Name: s.Name, Background: s.Background}
		if ps.Background == "" {
			ps.Background = theme.Background
		}
		if ps.Name == "" {
			ps.Name = fmt.Sprintf("slide-%d", i+1)
		}

		ps.Elements = append(ps.Elements, header(s, theme)...)
		for _, e := range s.Elements {
			ps.Elements = append(ps.Elements, withDefaults(e, theme))
		}
		for j, c := range s.Components {
			els, err := expandComponent(c, theme)
			if err != nil {
				return nil, fmt.Errorf("slide %d (%s) component %d: %w", i+1, ps.Name, j+1, err)
			}
			ps.Elements = append(ps.Elements, els...)
		}
		for j := range ps.Elements {
			if e := &ps.Elements[j]; e.Kind == model.ElementText && e.Font.Face == "" {
				e.Font.Face = theme.Font
			}
		}
		p.Slides = append(p.Slides, ps)
	}
	return p, nil
}

// Validate checks every primitive against the canvas.
func (p *Plan) Validate() error {
	for i, s := range p.Slides {
		if _, err := model.NormalizeColor(s.Background); err != nil {
			return fmt.Errorf("slide %d (%s) background: %w", i+1, s.Name, err)
		}
		for j := range s.Elements {
			if err := s.Elements[j].Validate(p.Canvas); err != nil {
				return fmt.Errorf("slide %d (%s) element %d: %w", i+1, s.Name, j+1, err)
			}
		}
	}
	return nil
}

// Counts tallies slides and primitives by kind.
func (p *Plan) Counts() Counts {
	c := Counts{Slides: len(p.Slides)}
	for _, s := range p.Slides {
		for _, e := range s.Elements {
			switch e.Kind {
			case model.ElementText:
				c.Texts++
			case model.ElementRect:
				c.Rects++
			case model.ElementChart:
				c.Charts++
			}
		}
	}
	return c
}

// Charts lists every chart in slide order.
func (p *Plan) Charts() []ChartRef {
	var refs []ChartRef
	for i, s := range p.Slides {
		for j, e := range s.Elements {
			if e.Kind == model.ElementChart && e.Chart != nil {
				refs = append(refs, ChartRef{Slide: i + 1, Index: j, Chart: e.Chart})
			}
		}
	}
	return refs
}

// Texts returns the text of every text primitive, slide by slide.
func (p *Plan) Texts() [][]string {
	out := make([][]string, len(p.Slides))
	for i, s := range p.Slides {
		for _, e := range s.Elements {
			if e.Kind == model.ElementText {
				out[i] = append(out[i], e.Text)
			}
		}
	}
	return out
}

func mergeTheme(t model.Theme) model.Theme {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return model.Theme{
		Background: pick(t.Background, DefaultTheme.Background),
		Text:       pick(t.Text, DefaultTheme.Text),
		Muted:      pick(t.Muted, DefaultTheme.Muted),
		Accent:     pick(t.Accent, DefaultTheme.Accent),
		Panel:      pick(t.Panel, DefaultTheme.Panel),
		Font:       pick(t.Font, DefaultTheme.Font),
	}
}

func header(s model.Slide, theme model.Theme) []model.Element {
	var out []model.Element
	if s.Title != "" {
		out = append(out, text(headerTitleBox, s.Title, font(headerTitleSize, true, theme.Text)))
	}
	if s.Subtitle != "" {
		out = append(out, text(headerSubtitleBox, s.Subtitle, font(headerSubtitleSize, false, theme.Muted)))
	}
	return out
}

func withDefaults(e model.Element, theme model.Theme) model.Element {
	if e.Kind == model.ElementText && e.Font.Color == "" {
		e.Font.Color = theme.Text
	}
	return e
}

func font(size int, bold bool, color string) model.Font {
	return model.Font{Size: size, Bold: bold, Color: color}
}

func text(b model.Box, s string, f model.Font) model.Element {
	return model.Element{Kind: model.ElementText, Box: b, Text: s, Font: f}
}

func rect(b model.Box, fill *model.Fill, line *model.Line) model.Element {
	return model.Element{Kind: model.ElementRect, Box: b, Fill: fill, Line: line}
}

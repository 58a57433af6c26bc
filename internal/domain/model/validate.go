package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks deck-level fields. Element geometry is checked after
// layout expansion, see Element.Validate.
func (d *Deck) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil deck", ErrInvalidDeck)
	}
	if len(d.Slides) == 0 {
		return fmt.Errorf("%w: no slides", ErrInvalidDeck)
	}
	if strings.TrimSpace(d.Output) == "" {
		return fmt.Errorf("%w: missing output name", ErrInvalidDeck)
	}
	if !strings.EqualFold(filepath.Ext(d.Output), ".pptx") {
		return fmt.Errorf("%w: output %q must end in .pptx", ErrInvalidDeck, d.Output)
	}
	if d.Canvas != (Canvas{}) &&
		(d.Canvas.Width != DefaultCanvasWidth || d.Canvas.Height != DefaultCanvasHeight) {
		return fmt.Errorf("%w: canvas %gx%g, want %gx%g", ErrInvalidDeck,
			d.Canvas.Width, d.Canvas.Height, DefaultCanvasWidth, DefaultCanvasHeight)
	}
	for _, tc := range []struct{ name, color string }{
		{"background", d.Theme.Background},
		{"text", d.Theme.Text},
		{"muted", d.Theme.Muted},
		{"accent", d.Theme.Accent},
		{"panel", d.Theme.Panel},
	} {
		if tc.color == "" {
			continue
		}
		if _, err := NormalizeColor(tc.color); err != nil {
			return fmt.Errorf("%w: theme %s: %w", ErrInvalidDeck, tc.name, err)
		}
	}
	for i, s := range d.Slides {
		if s.Background == "" {
			continue
		}
		if _, err := NormalizeColor(s.Background); err != nil {
			return fmt.Errorf("%w: slide %d background: %w", ErrInvalidDeck, i+1, err)
		}
	}
	return nil
}

// Validate checks a primitive against the canvas it will be drawn on.
func (e *Element) Validate(c Canvas) error {
	if e.Box.W <= 0 || e.Box.H <= 0 {
		return fmt.Errorf("%w: non-positive size %gx%g", ErrInvalidElement, e.Box.W, e.Box.H)
	}
	if !e.Box.Within(c) {
		return fmt.Errorf("%w: box (%g,%g %gx%g) exceeds %gx%g",
			ErrOutOfBounds, e.Box.X, e.Box.Y, e.Box.W, e.Box.H, c.Width, c.Height)
	}

	switch e.Kind {
	case ElementText:
		if e.Font.Size <= 0 {
			return fmt.Errorf("%w: font size %d", ErrInvalidElement, e.Font.Size)
		}
		if _, err := NormalizeColor(e.Font.Color); err != nil {
			return fmt.Errorf("%w: font: %w", ErrInvalidElement, err)
		}
		switch e.Font.Align {
		case "", AlignLeft, AlignCenter, AlignRight:
		default:
			return fmt.Errorf("%w: align %q", ErrInvalidElement, e.Font.Align)
		}
	case ElementRect:
		if e.Fill == nil && e.Line == nil {
			return fmt.Errorf("%w: rect without fill or line", ErrInvalidElement)
		}
	case ElementChart:
		if err := e.Chart.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidElement, e.Kind)
	}

	if e.Fill != nil {
		if _, err := NormalizeColor(e.Fill.Color); err != nil {
			return fmt.Errorf("%w: fill: %w", ErrInvalidElement, err)
		}
		if e.Fill.Transparency < 0 || e.Fill.Transparency > 100 {
			return fmt.Errorf("%w: transparency %d", ErrInvalidElement, e.Fill.Transparency)
		}
	}
	if e.Line != nil {
		if _, err := NormalizeColor(e.Line.Color); err != nil {
			return fmt.Errorf("%w: line: %w", ErrInvalidElement, err)
		}
		if e.Line.Width <= 0 {
			return fmt.Errorf("%w: line width %g", ErrInvalidElement, e.Line.Width)
		}
	}
	return nil
}

// Validate checks chart type and series shape.
func (c *Chart) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: missing chart", ErrInvalidChart)
	}
	if c.Type != ChartLine && c.Type != ChartPie {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidChart, c.Type)
	}
	if len(c.Series) == 0 {
		return fmt.Errorf("%w: no series", ErrInvalidChart)
	}
	for i, s := range c.Series {
		if len(s.Labels) == 0 {
			return fmt.Errorf("%w: series %d has no labels", ErrInvalidChart, i)
		}
		if len(s.Labels) != len(s.Values) {
			return fmt.Errorf("%w: series %d has %d labels and %d values",
				ErrInvalidChart, i, len(s.Labels), len(s.Values))
		}
		if c.Type == ChartLine && len(s.Values) < 2 {
			return fmt.Errorf("%w: line series %d needs at least 2 points, has %d",
				ErrInvalidChart, i, len(s.Values))
		}
		if c.Type == ChartPie {
			for _, v := range s.Values {
				if v < 0 {
					return fmt.Errorf("%w: negative pie value %g", ErrInvalidChart, v)
				}
			}
		}
	}
	for _, col := range c.Colors {
		if _, err := NormalizeColor(col); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidChart, err)
		}
	}
	return nil
}

package layout

import (
	"fmt"

	"github.com/okian/deckgen/internal/domain/model"
)

// Outline widths in points.
const (
	heavyLine = 4.0
	thinLine  = 1.0
)

const bullet = "• "

func expandComponent(c model.Component, theme model.Theme) ([]model.Element, error) {
	switch c.Kind {
	case model.ComponentMetricCards:
		return metricCards(c, theme), nil
	case model.ComponentStats:
		return stats(c, theme), nil
	case model.ComponentKeyValues:
		return keyValues(c, theme), nil
	case model.ComponentAchievementCards:
		return achievementCards(c, theme), nil
	case model.ComponentPanel:
		return panel(c, theme), nil
	case model.ComponentGoalRows:
		return goalRows(c, theme), nil
	case model.ComponentInitiativeCards:
		return initiativeCards(c, theme), nil
	case model.ComponentMilestones:
		return milestones(c, theme), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, c.Kind)
	}
}

// card is the outlined panel-colored rectangle behind most records.
func card(b model.Box, c model.Component, theme model.Theme, transparency int, line float64) model.Element {
	if c.Style.Transparency != nil {
		transparency = *c.Style.Transparency
	}
	if c.Style.LineWidth > 0 {
		line = c.Style.LineWidth
	}
	return rect(b,
		&model.Fill{Color: theme.Panel, Transparency: transparency},
		&model.Line{Color: theme.Accent, Width: line},
	)
}

func sizeOr(s model.Size, w, h float64) model.Size {
	if s.W <= 0 {
		s.W = w
	}
	if s.H <= 0 {
		s.H = h
	}
	return s
}

func intOr(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

func floatOr(v, d float64) float64 {
	if v <= 0 {
		return d
	}
	return v
}

// heading renders the optional block title at c.Box.
func heading(c model.Component, theme model.Theme, size int) []model.Element {
	if c.Heading == "" {
		return nil
	}
	return []model.Element{text(c.Box, c.Heading, font(intOr(c.Style.HeadingSize, size), true, theme.Accent))}
}

// metricCards: outlined card with a large value, a label and a one-line
// description.
func metricCards(c model.Component, theme model.Theme) []model.Element {
	sz := sizeOr(c.Size, 4, 1.2)
	inner := sz.W - 0.2
	var out []model.Element
	for i, it := range c.Items {
		p := c.Grid.At(i)
		out = append(out,
			card(model.Box{X: p.X, Y: p.Y, W: sz.W, H: sz.H}, c, theme, 50, heavyLine),
			text(model.Box{X: p.X + 0.1, Y: p.Y + 0.1, W: inner, H: 0.5}, it.Value, font(intOr(c.Style.ValueSize, 48), true, theme.Accent)),
			text(model.Box{X: p.X + 0.1, Y: p.Y + 0.6, W: inner, H: 0.3}, it.Label, font(intOr(c.Style.LabelSize, 16), false, theme.Muted)),
			text(model.Box{X: p.X + 0.1, Y: p.Y + 0.8, W: inner, H: 0.3}, it.Description, font(14, false, theme.Text)),
		)
	}
	return out
}

// stats: a bare key figure with a caption below it.
func stats(c model.Component, theme model.Theme) []model.Element {
	w := floatOr(c.Size.W, 2)
	valueH := floatOr(c.Style.ValueHeight, 0.8)
	labelOff := floatOr(c.Style.LabelOffset, 0.6)
	labelH := floatOr(c.Style.LabelHeight, 0.3)
	var out []model.Element
	for i, it := range c.Items {
		p := c.Grid.At(i)
		vf := font(intOr(c.Style.ValueSize, 36), true, theme.Accent)
		lf := font(intOr(c.Style.LabelSize, 14), false, theme.Muted)
		vf.Align, lf.Align = c.Style.Align, c.Style.Align
		out = append(out,
			text(model.Box{X: p.X, Y: p.Y, W: w, H: valueH}, it.Value, vf),
			text(model.Box{X: p.X, Y: p.Y + labelOff, W: w, H: labelH}, it.Label, lf),
		)
	}
	return out
}

// keyValues: a headed list of label/value rows.
func keyValues(c model.Component, theme model.Theme) []model.Element {
	sz := sizeOr(c.Size, 4, 0.3)
	const valueW = 1.5
	labelW := sz.W - valueW
	out := heading(c, theme, 16)
	for i, it := range c.Items {
		p := c.Grid.At(i)
		out = append(out,
			text(model.Box{X: p.X, Y: p.Y, W: labelW, H: sz.H}, it.Label, font(intOr(c.Style.LabelSize, 14), false, theme.Muted)),
			text(model.Box{X: p.X + labelW, Y: p.Y, W: valueW, H: sz.H}, it.Value, font(intOr(c.Style.ValueSize, 14), true, theme.Text)),
		)
	}
	return out
}

// achievementCards: numbered card ("01", "02", ...) with a title and
// bullet details.
func achievementCards(c model.Component, theme model.Theme) []model.Element {
	sz := sizeOr(c.Size, 2.2, 1.8)
	inner := sz.W - 0.2
	var out []model.Element
	for i, it := range c.Items {
		p := c.Grid.At(i)
		out = append(out,
			card(model.Box{X: p.X, Y: p.Y, W: sz.W, H: sz.H}, c, theme, 50, heavyLine),
			text(model.Box{X: p.X + 0.1, Y: p.Y + 0.1, W: inner, H: 0.5}, fmt.Sprintf("%02d", i+1), font(intOr(c.Style.ValueSize, 48), true, theme.Accent)),
			text(model.Box{X: p.X + 0.1, Y: p.Y + 0.6, W: inner, H: 0.3}, it.Title, font(16, true, theme.Text)),
		)
		for j, d := range it.Details {
			out = append(out, text(
				model.Box{X: p.X + 0.1, Y: p.Y + 0.9 + float64(j)*0.25, W: inner, H: 0.2},
				bullet+d, font(intOr(c.Style.LabelSize, 12), false, theme.Muted),
			))
		}
	}
	return out
}

// panel: translucent accent band with a heading; content is placed by
// the components that follow it.
func panel(c model.Component, theme model.Theme) []model.Element {
	transparency := 90
	if c.Style.Transparency != nil {
		transparency = *c.Style.Transparency
	}
	out := []model.Element{rect(c.Box,
		&model.Fill{Color: theme.Accent, Transparency: transparency},
		&model.Line{Color: theme.Accent, Width: floatOr(c.Style.LineWidth, thinLine)},
	)}
	if c.Heading != "" {
		hb := model.Box{X: c.Box.X + 0.2, Y: c.Box.Y + 0.1, W: c.Box.W - 0.4, H: floatOr(c.Style.LabelHeight, 0.4)}
		out = append(out, text(hb, c.Heading, font(intOr(c.Style.HeadingSize, 16), true, theme.Accent)))
	}
	return out
}

// goalRows: full-width row with the target value on the left and label
// plus description on the right.
func goalRows(c model.Component, theme model.Theme) []model.Element {
	sz := sizeOr(c.Size, 5.5, 0.6)
	var out []model.Element
	for i, it := range c.Items {
		p := c.Grid.At(i)
		out = append(out,
			card(model.Box{X: p.X, Y: p.Y, W: sz.W, H: sz.H}, c, theme, 50, heavyLine),
			text(model.Box{X: p.X + 0.1, Y: p.Y + 0.05, W: 1.5, H: 0.5}, it.Value, font(intOr(c.Style.ValueSize, 36), true, theme.Accent)),
			text(model.Box{X: p.X + 1.7, Y: p.Y + 0.1, W: 2, H: 0.3}, it.Label, font(intOr(c.Style.LabelSize, 16), true, theme.Text)),
			text(model.Box{X: p.X + 1.7, Y: p.Y + 0.35, W: sz.W - 1.9, H: 0.2}, it.Description, font(12, false, theme.Muted)),
		)
	}
	return out
}

// initiativeCards: headed stack of small cards, each a title and bullets.
func initiativeCards(c model.Component, theme model.Theme) []model.Element {
	sz := sizeOr(c.Size, 3, 0.6)
	inner := sz.W - 0.2
	out := heading(c, theme, 18)
	for i, it := range c.Items {
		p := c.Grid.At(i)
		out = append(out,
			card(model.Box{X: p.X, Y: p.Y, W: sz.W, H: sz.H}, c, theme, 30, thinLine),
			text(model.Box{X: p.X + 0.1, Y: p.Y + 0.05, W: inner, H: 0.3}, it.Title, font(14, true, theme.Accent)),
		)
		for j, d := range it.Details {
			out = append(out, text(
				model.Box{X: p.X + 0.1, Y: p.Y + 0.3 + float64(j)*0.15, W: inner, H: 0.15},
				bullet+d, font(intOr(c.Style.LabelSize, 11), false, theme.Muted),
			))
		}
	}
	return out
}

// milestones: centered label over a short goal, in a small card.
func milestones(c model.Component, theme model.Theme) []model.Element {
	sz := sizeOr(c.Size, 2.1, 0.7)
	var out []model.Element
	for i, it := range c.Items {
		p := c.Grid.At(i)
		lf := font(intOr(c.Style.ValueSize, 14), true, theme.Accent)
		df := font(intOr(c.Style.LabelSize, 12), false, theme.Muted)
		lf.Align, df.Align = model.AlignCenter, model.AlignCenter
		out = append(out,
			card(model.Box{X: p.X, Y: p.Y, W: sz.W, H: sz.H}, c, theme, 50, thinLine),
			text(model.Box{X: p.X, Y: p.Y + 0.1, W: sz.W, H: 0.25}, it.Label, lf),
			text(model.Box{X: p.X, Y: p.Y + 0.35, W: sz.W, H: 0.25}, it.Description, df),
		)
	}
	return out
}

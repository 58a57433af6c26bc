// Package model contains the deck description types shared between the
// loader, the layout expansion and the renderers.
package model

// Default canvas, in inches (16:9).
const (
	DefaultCanvasWidth  = 10.0
	DefaultCanvasHeight = 5.625
)

// Deck is a complete presentation description.
type Deck struct {
	Title   string  `koanf:"title" json:"title"`
	Author  string  `koanf:"author" json:"author,omitempty"`
	Subject string  `koanf:"subject" json:"subject,omitempty"`
	Output  string  `koanf:"output" json:"output"`
	Canvas  Canvas  `koanf:"canvas" json:"canvas"`
	Theme   Theme   `koanf:"theme" json:"theme"`
	Slides  []Slide `koanf:"slides" json:"slides"`
}

// Canvas is the slide size in inches.
type Canvas struct {
	Width  float64 `koanf:"width" json:"width"`
	Height float64 `koanf:"height" json:"height"`
}

// Theme holds the palette components fall back to.
type Theme struct {
	Background string `koanf:"background" json:"background"`
	Text       string `koanf:"text" json:"text"`
	Muted      string `koanf:"muted" json:"muted"`
	Accent     string `koanf:"accent" json:"accent"`
	Panel      string `koanf:"panel" json:"panel"`
	// Font is the typeface of text that names none.
	Font       string `koanf:"font" json:"font,omitempty"`
}

// Slide is one page. Title and Subtitle produce the standard header;
// Elements are placed verbatim and Components are expanded by layout.
type Slide struct {
	Name       string      `koanf:"name" json:"name"`
	Title      string      `koanf:"title" json:"title,omitempty"`
	Subtitle   string      `koanf:"subtitle" json:"subtitle,omitempty"`
	Background string      `koanf:"background" json:"background,omitempty"`
	Elements   []Element   `koanf:"elements" json:"elements,omitempty"`
	Components []Component `koanf:"components" json:"components,omitempty"`
}

// ElementKind names a drawable primitive.
type ElementKind string

// Primitive kinds.
const (
	ElementText  ElementKind = "text"
	ElementRect  ElementKind = "rect"
	ElementChart ElementKind = "chart"
)

// Element is a positioned primitive: a text box, a rectangle or a chart.
type Element struct {
	Kind  ElementKind `koanf:"kind" json:"kind"`
	Box   Box         `koanf:"box" json:"box"`
	Text  string      `koanf:"text" json:"text,omitempty"`
	Font  Font        `koanf:"font" json:"font"`
	Fill  *Fill       `koanf:"fill" json:"fill,omitempty"`
	Line  *Line       `koanf:"line" json:"line,omitempty"`
	Chart *Chart      `koanf:"chart" json:"chart,omitempty"`
}

// Align is horizontal text alignment.
type Align string

// Alignments. The zero value renders left-aligned.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Font describes a text run.
type Font struct {
	Face  string `koanf:"face" json:"face,omitempty"`
	Size  int    `koanf:"size" json:"size"`
	Bold  bool   `koanf:"bold" json:"bold,omitempty"`
	Color string `koanf:"color" json:"color"`
	Align Align  `koanf:"align" json:"align,omitempty"`
}

// Fill is a solid fill. Transparency is a percentage, 0 is opaque.
type Fill struct {
	Color        string `koanf:"color" json:"color"`
	Transparency int    `koanf:"transparency" json:"transparency,omitempty"`
}

// Line is a shape outline. Width is in points.
type Line struct {
	Color string  `koanf:"color" json:"color"`
	Width float64 `koanf:"width" json:"width"`
}

// Item is one literal record of a repeated block: a metric card, an
// achievement, a goal, an initiative, a milestone or a key figure.
type Item struct {
	Value       string   `koanf:"value" json:"value,omitempty"`
	Label       string   `koanf:"label" json:"label,omitempty"`
	Description string   `koanf:"description" json:"description,omitempty"`
	Title       string   `koanf:"title" json:"title,omitempty"`
	Details     []string `koanf:"details" json:"details,omitempty"`
}

// ComponentKind names a repeated-record block.
type ComponentKind string

// Component kinds understood by the layout package.
const (
	ComponentMetricCards      ComponentKind = "metric_cards"
	ComponentStats            ComponentKind = "stats"
	ComponentKeyValues        ComponentKind = "key_values"
	ComponentAchievementCards ComponentKind = "achievement_cards"
	ComponentPanel            ComponentKind = "panel"
	ComponentGoalRows         ComponentKind = "goal_rows"
	ComponentInitiativeCards  ComponentKind = "initiative_cards"
	ComponentMilestones       ComponentKind = "milestones"
)

// Component is a block of records laid out on a grid.
type Component struct {
	Kind    ComponentKind `koanf:"kind" json:"kind"`
	Heading string        `koanf:"heading" json:"heading,omitempty"`
	// Box is used by panels and as the heading position of lists.
	Box   Box            `koanf:"box" json:"box"`
	Grid  Grid           `koanf:"grid" json:"grid"`
	Size  Size           `koanf:"size" json:"size"`
	Style ComponentStyle `koanf:"style" json:"style"`
	Items []Item         `koanf:"items" json:"items,omitempty"`
}

// ComponentStyle overrides the template defaults of a component.
type ComponentStyle struct {
	HeadingSize  int     `koanf:"heading_size" json:"heading_size,omitempty"`
	ValueSize    int     `koanf:"value_size" json:"value_size,omitempty"`
	ValueHeight  float64 `koanf:"value_height" json:"value_height,omitempty"`
	LabelSize    int     `koanf:"label_size" json:"label_size,omitempty"`
	LabelOffset  float64 `koanf:"label_offset" json:"label_offset,omitempty"`
	LabelHeight  float64 `koanf:"label_height" json:"label_height,omitempty"`
	Transparency *int    `koanf:"transparency" json:"transparency,omitempty"`
	LineWidth    float64 `koanf:"line_width" json:"line_width,omitempty"`
	Align        Align   `koanf:"align" json:"align,omitempty"`
}

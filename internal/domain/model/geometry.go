package model

// epsilon absorbs float noise from offsets such as 0.7 + 3*2.2.
const epsilon = 1e-9

// Box is a rectangle in inches, origin at the top-left of the slide.
type Box struct {
	X float64 `koanf:"x" json:"x"`
	Y float64 `koanf:"y" json:"y"`
	W float64 `koanf:"w" json:"w"`
	H float64 `koanf:"h" json:"h"`
}

// Point is a position or an offset in inches.
type Point struct {
	X float64 `koanf:"x" json:"x"`
	Y float64 `koanf:"y" json:"y"`
}

// Size is a width and height in inches.
type Size struct {
	W float64 `koanf:"w" json:"w"`
	H float64 `koanf:"h" json:"h"`
}

// Grid places the i-th record of a block: with Columns > 0 records wrap
// into rows, otherwise they all follow Step from Origin.
type Grid struct {
	Origin  Point `koanf:"origin" json:"origin"`
	Step    Point `koanf:"step" json:"step"`
	Columns int   `koanf:"columns" json:"columns,omitempty"`
}

// At returns the top-left corner of record i.
func (g Grid) At(i int) Point {
	col, row := i, i
	if g.Columns > 0 {
		col = i % g.Columns
		row = i / g.Columns
	}
	return Point{
		X: g.Origin.X + float64(col)*g.Step.X,
		Y: g.Origin.Y + float64(row)*g.Step.Y,
	}
}

// Offset returns b moved by dx, dy.
func (b Box) Offset(dx, dy float64) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, W: b.W, H: b.H}
}

// Right is the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom is the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Within reports whether b lies inside c.
func (b Box) Within(c Canvas) bool {
	return b.X >= -epsilon && b.Y >= -epsilon &&
		b.Right() <= c.Width+epsilon && b.Bottom() <= c.Height+epsilon
}

// OrDefault returns c, or the 16:9 default when c is unset.
func (c Canvas) OrDefault() Canvas {
	if c.Width <= 0 || c.Height <= 0 {
		return Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
	}
	return c
}

// Full is the box covering the whole canvas.
func (c Canvas) Full() Box {
	return Box{W: c.Width, H: c.Height}
}

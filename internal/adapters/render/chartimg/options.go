package chartimg

import "github.com/golang/freetype/truetype"

// Defaults for a Rasterizer.
const (
	DefaultDPI        = 192.0
	DefaultBackground = "1C2833"
	DefaultForeground = "AAB7B8"
	DefaultStroke     = "E74C3C"

	minDPI = 72.0
	maxDPI = 600.0
)

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithDPI sets the raster resolution. Values outside 72..600 are ignored.
func WithDPI(dpi float64) Option {
	return func(r *Rasterizer) {
		if dpi >= minDPI && dpi <= maxDPI {
			r.dpi = dpi
		}
	}
}

// WithFont sets the font used for titles, ticks and labels. It takes
// precedence over the installed font lookup.
func WithFont(f *truetype.Font) Option {
	return func(r *Rasterizer) {
		if f != nil {
			r.font = f
		}
	}
}

// WithFontLookup replaces the font file names searched for when no font
// is set. No names disables the lookup.
func WithFontLookup(names ...string) Option {
	return func(r *Rasterizer) {
		r.lookup = names
	}
}

// WithBackground sets the canvas color as 6-digit hex.
func WithBackground(hex string) Option {
	return func(r *Rasterizer) {
		if hex != "" {
			r.background = hex
		}
	}
}

// WithForeground sets the color of text and axes.
func WithForeground(hex string) Option {
	return func(r *Rasterizer) {
		if hex != "" {
			r.foreground = hex
		}
	}
}

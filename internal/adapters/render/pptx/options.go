package pptx

import "github.com/okian/deckgen/pkg/logger"

// Option configures a Renderer.
type Option func(*Renderer)

// WithChartImages embeds charts as pictures drawn by c instead of
// native chart parts.
func WithChartImages(c ChartRasterizer) Option {
	return func(r *Renderer) {
		if c != nil {
			r.images = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

package chartimg

import "errors"

// Sentinel error kinds for this package.
var (
	ErrRender   = errors.New("chart render failed")
	ErrLoadFont = errors.New("load chart font failed")
)

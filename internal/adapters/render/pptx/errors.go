package pptx

import "errors"

// Sentinel error kinds for this package.
var (
	ErrRender  = errors.New("render presentation failed")
	ErrInspect = errors.New("inspect presentation failed")
)

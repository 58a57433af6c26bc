package deckfile

import "errors"

// Sentinel error kinds for this package.
var (
	ErrLoadDeck          = errors.New("load deck failed")
	ErrUnsupportedFormat = errors.New("unsupported deck format")
)

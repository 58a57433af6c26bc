package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidDeck    = errors.New("invalid deck")
	ErrInvalidElement = errors.New("invalid element")
	ErrOutOfBounds    = errors.New("element outside canvas")
	ErrInvalidColor   = errors.New("invalid color")
	ErrInvalidChart   = errors.New("invalid chart")
)

package layout

import "errors"

// Sentinel kinds for layout errors.
var (
	ErrUnknownComponent = errors.New("unknown component kind")
)

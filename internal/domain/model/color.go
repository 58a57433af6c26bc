package model

import (
	"fmt"
	"math"
	"strings"
)

// NormalizeColor upper-cases a 6-digit hex color and strips a leading '#'.
func NormalizeColor(c string) (string, error) {
	c = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(c), "#"))
	if len(c) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	for _, r := range c {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, c)
		}
	}
	return c, nil
}

// Alpha converts a transparency percentage into an alpha byte.
func Alpha(transparency int) uint8 {
	if transparency <= 0 {
		return 0xFF
	}
	if transparency >= 100 {
		return 0
	}
	return uint8(math.Round(255 * float64(100-transparency) / 100))
}

// ARGB renders color with the given transparency as AARRGGBB. The color
// must already be valid.
func ARGB(color string, transparency int) string {
	c, err := NormalizeColor(color)
	if err != nil {
		c = "000000"
	}
	return fmt.Sprintf("%02X%s", Alpha(transparency), c)
}

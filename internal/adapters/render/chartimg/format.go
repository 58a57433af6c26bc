package chartimg

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatValue renders v with an Excel-style number format. Only the
// subset decks use is understood: digit grouping ("#,##0"), fixed
// decimals ("0.0") and a trailing percent sign, which is appended to the
// number as is. An empty format prints the shortest representation.
func FormatValue(format string, v float64) string {
	f := strings.TrimSpace(format)
	if f == "" {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	percent := strings.HasSuffix(f, "%")
	f = strings.TrimSuffix(f, "%")

	decimals := 0
	if i := strings.IndexByte(f, '.'); i >= 0 {
		decimals = len(f) - i - 1
	}

	var s string
	switch {
	case strings.Contains(f, ",") && decimals == 0:
		s = humanize.Comma(int64(math.Round(v)))
	case strings.Contains(f, ","):
		p := math.Pow10(decimals)
		s = padDecimals(humanize.CommafWithDigits(math.Round(v*p)/p, decimals), decimals)
	default:
		s = strconv.FormatFloat(v, 'f', decimals, 64)
	}
	if percent {
		s += "%"
	}
	return s
}

// padDecimals right-pads the fraction of s with zeros to n digits;
// CommafWithDigits drops trailing zeros.
func padDecimals(s string, n int) string {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return s + "." + strings.Repeat("0", n)
	}
	if have := len(s) - i - 1; have < n {
		s += strings.Repeat("0", n-have)
	}
	return s
}

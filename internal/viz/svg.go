package viz

import (
	"fmt"
	"html"
	"strings"
)

// SeriesSVG draws values against their index as a standalone SVG line plot.
// Fewer than two values give the empty string.
func SeriesSVG(values []float64, caption string, width, height int, stroke string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rangeY := hi - lo
	if rangeY == 0 {
		rangeY = 1
	}
	// 10% headroom above and below
	lo -= rangeY * 0.1
	rangeY *= 1.2
	n := float64(len(values) - 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#10140c"/>
<text x="8" y="16" fill="#c8c8b0" font-family="monospace" font-size="12">%s</text>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, html.EscapeString(caption), stroke)

	for i, v := range values {
		x := float64(i) / n * float64(width)
		y := float64(height) - (v-lo)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}

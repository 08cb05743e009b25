package ui

import (
	"fmt"
	"strings"
)

// ProgressBar renders a fixed-width bar for a watched percentage, e.g.
// "████████░░░░ 67%". Negative pct (unknown total) renders an empty bar
// with "--%".
func ProgressBar(pct, width int) string {
	if width < 5 {
		width = 5
	}
	if pct < 0 {
		return paint(Gray, strings.Repeat("░", width)) + " --%"
	}
	if pct > 100 {
		pct = 100
	}

	filled := width * pct / 100
	bar := paint(Cyan, strings.Repeat("█", filled)) + paint(Gray, strings.Repeat("░", width-filled))
	return bar + " " + paint(pctColor(pct), fmt.Sprintf("%3d%%", pct))
}

// pctColor fades from red to green as the percentage grows.
func pctColor(pct int) string {
	if pct >= 100 {
		return Green
	}
	if pct >= 50 {
		return Yellow
	}
	return Red
}

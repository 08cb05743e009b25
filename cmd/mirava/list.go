package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"mirava/internal/state"
	"mirava/internal/ui"
)

const (
	listPathWidth = 50
	listRuleWidth = 69
)

// printCourse writes the numbered video table followed by the totals footer.
func printCourse(w io.Writer, c *state.Course) {
	fmt.Fprint(w, renderCourse(c, ui.IsTTY()))
}

func renderCourse(c *state.Course, color bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	name := c.Name
	if name == "" {
		name = "N/A"
	}
	fmt.Fprintf(&b, "\n%s\n", style(tc.Title, fmt.Sprintf("--- Course: %s ---", name)))

	for i, v := range c.Videos {
		dur := style(tc.Dim, "["+formatClock(v.DurationSec)+"]")
		if v.DurationSec <= 0 {
			dur = style(tc.Unknown, "[--:--:--]")
		}
		line := fmt.Sprintf("%2d. %s %s %s", i+1, fitPath(v.Path, listPathWidth), dur, videoStatus(v, style))
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	b.WriteString(style(tc.Dim, strings.Repeat("-", listRuleWidth)))
	b.WriteString("\n")

	total, _, pct := c.Totals()
	if total > 0 {
		fmt.Fprintf(&b, "Total Duration: %s  |  Overall Progress: %d%%\n", formatHours(total), pct)
		if color {
			fmt.Fprintf(&b, "%s\n", ui.ProgressBar(pct, 40))
		}
	}
	return b.String()
}

// videoStatus is "[✓]" when complete, "[NN%]" or "[watched]" when started,
// and empty otherwise.
func videoStatus(v state.Video, style func(lipgloss.Style, string) string) string {
	switch {
	case v.Complete():
		return style(tc.Green, "[✓]")
	case v.WatchedSec <= 0:
		return ""
	case v.DurationSec > 0:
		return style(tc.Yellow, fmt.Sprintf("[%d%%]", v.Percent()))
	default:
		return style(tc.Yellow, "[watched]")
	}
}

// fitPath pads or truncates p to exactly width display cells.
func fitPath(p string, width int) string {
	if runewidth.StringWidth(p) > width {
		p = ansi.Truncate(p, width, "…")
	}
	return runewidth.FillRight(p, width)
}

// formatClock renders seconds as HH:MM:SS.
func formatClock(sec int64) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}

// formatHours renders seconds as H:MM:SS without padding the hours.
func formatHours(sec int64) string {
	return fmt.Sprintf("%d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}

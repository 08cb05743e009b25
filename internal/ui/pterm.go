package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

const spinnerUpdateMinInterval = 80 * time.Millisecond

// stdoutIsTerminal is swapped in tests to force either rendering path.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsTTY returns true if stdout is a terminal
func IsTTY() bool {
	return stdoutIsTerminal()
}

// StdinIsTTY reports whether stdin is an interactive terminal.
func StdinIsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// displayWidth returns the visible width of a string (excluding ANSI codes, handling wide chars)
func displayWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// padLines right-pads every line to the widest one so box borders line up.
func padLines(lines []string) string {
	maxLen := 0
	for _, line := range lines {
		if w := displayWidth(line); w > maxLen {
			maxLen = w
		}
	}

	var content strings.Builder
	for i, line := range lines {
		content.WriteString(line)
		if w := displayWidth(line); w < maxLen {
			content.WriteString(strings.Repeat(" ", maxLen-w))
		}
		if i < len(lines)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// Box prints content in a styled box
func Box(title string, lines ...string) {
	if !IsTTY() {
		if title != "" {
			fmt.Fprintf(Out, "── %s ──\n", title)
		}
		for _, line := range lines {
			fmt.Fprintln(Out, line)
		}
		return
	}

	pterm.DefaultBox.
		WithWriter(Out).
		WithTitle(pterm.Cyan(title)).
		WithTitleTopLeft().
		Println(padLines(lines))
}

// WarningBox prints warning in a box
func WarningBox(title string, lines ...string) {
	if !IsTTY() {
		fmt.Fprintf(Out, "! %s\n", title)
		for _, line := range lines {
			fmt.Fprintf(Out, "  %s\n", line)
		}
		return
	}

	pterm.DefaultBox.
		WithWriter(Out).
		WithTitle(pterm.Yellow(title)).
		WithBoxStyle(pterm.NewStyle(pterm.FgYellow)).
		Println(padLines(lines))
}

// Spinner wraps pterm spinner
type Spinner struct {
	spinner     *pterm.SpinnerPrinter
	start       time.Time
	lastUpdate  time.Time
	lastMessage string
}

// StartSpinner starts a spinner with message
func StartSpinner(message string) *Spinner {
	if !IsTTY() {
		fmt.Fprintf(Out, "... %s\n", message)
		return &Spinner{start: time.Now()}
	}

	s, _ := pterm.DefaultSpinner.WithWriter(Out).WithRemoveWhenDone(false).Start(message)
	return &Spinner{spinner: s, start: time.Now()}
}

// Update updates spinner text. Rapid updates are throttled on a terminal and
// dropped entirely otherwise, so piped output stays short.
func (s *Spinner) Update(message string) {
	if s.spinner == nil {
		return
	}
	message, ok := normalizeSpinnerUpdate(message, s.lastMessage, s.lastUpdate)
	if !ok {
		return
	}
	s.lastMessage = message
	s.lastUpdate = time.Now()
	s.spinner.UpdateText(message)
}

// Success stops spinner with success
func (s *Spinner) Success(message string) {
	msg := withElapsed(message, time.Since(s.start))
	if s.spinner != nil {
		s.spinner.Success(msg)
	} else {
		fmt.Fprintf(Out, "✓ %s\n", msg)
	}
}

// Fail stops spinner with failure (red)
func (s *Spinner) Fail(message string) {
	if s.spinner != nil {
		s.spinner.Fail(message)
	} else {
		fmt.Fprintf(Out, "✗ %s\n", message)
	}
}

// Warn stops spinner with warning (yellow)
func (s *Spinner) Warn(message string) {
	msg := withElapsed(message, time.Since(s.start))
	if s.spinner != nil {
		s.spinner.Warning(msg)
	} else {
		fmt.Fprintf(Out, "! %s\n", msg)
	}
}

// Stop stops spinner without message
func (s *Spinner) Stop() {
	if s.spinner != nil {
		s.spinner.Stop()
	}
}

func withElapsed(message string, elapsed time.Duration) string {
	if elapsed.Seconds() < 0.05 {
		return message
	}
	return fmt.Sprintf("%s (%.1fs)", message, elapsed.Seconds())
}

func normalizeSpinnerUpdate(message, lastMessage string, lastUpdate time.Time) (string, bool) {
	msg := strings.TrimSpace(message)
	if msg == "" || msg == lastMessage {
		return "", false
	}
	if !lastUpdate.IsZero() && time.Since(lastUpdate) < spinnerUpdateMinInterval {
		return "", false
	}
	return msg, true
}

// Metric is one labelled count in a summary line.
type Metric struct {
	Label string
	Count int
}

// formatSummaryLine builds "Sync complete: 3 added, 1 removed (0.4s)".
func formatSummaryLine(action string, d time.Duration, metrics ...Metric) string {
	parts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		parts = append(parts, fmt.Sprintf("%d %s", m.Count, m.Label))
	}
	line := action + " complete"
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, ", ")
	}
	if d > 0 {
		line += fmt.Sprintf(" (%.1fs)", d.Seconds())
	}
	return line
}

// SummaryLine prints a one-line command summary.
func SummaryLine(action string, d time.Duration, metrics ...Metric) {
	line := formatSummaryLine(action, d, metrics...)
	if IsTTY() {
		pterm.Success.WithWriter(Out).Println(line)
		return
	}
	fmt.Fprintf(Out, "✓ %s\n", line)
}

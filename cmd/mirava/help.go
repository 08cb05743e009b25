package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"mirava/internal/ui"
)

const usageMarkdown = "# mirava\n\n" +
	"A simple video course progress tracker.\n\n" +
	"## Usage\n\n" +
	"| Command | Description |\n" +
	"|---|---|\n" +
	"| `mirava` | List videos and sync progress |\n" +
	"| `mirava sync [--dry-run] [--json]` | Same, with options |\n" +
	"| `mirava set <num> <val>` | Set progress for video `<num>` |\n" +
	"| `mirava mark <num> [num...]` | Mark video(s) as complete |\n" +
	"| `mirava unmark <num> [num...]` | Mark video(s) as not watched |\n" +
	"| `mirava name [new name]` | Show or change the course name |\n" +
	"| `mirava log [-n N]` | Show recent operations |\n" +
	"| `mirava version` | Show version |\n" +
	"| `mirava help` | Show this help message |\n\n" +
	"## Examples\n\n" +
	"```\n" +
	"mirava set 3 50%        # set video 3 to 50% watched\n" +
	"mirava set 5 1:20:10    # set video 5 to 1h 20m 10s watched\n" +
	"mirava set 2 5:30       # set video 2 to 5m 30s watched\n" +
	"mirava mark 8           # mark video 8 as 100% watched\n" +
	"mirava mark 3 5 7       # mark videos 3, 5 and 7 as 100% watched\n" +
	"```\n"

const usagePlain = `mirava - A simple video course progress tracker.

Usage:
  mirava                        List videos and sync progress
  mirava sync [--dry-run] [--json]
  mirava set <num> <val>        Set progress for video <num>
  mirava mark <num> [num...]    Mark video(s) as complete
  mirava unmark <num> [num...]  Mark video(s) as not watched
  mirava name [new name]        Show or change the course name
  mirava log [-n N]             Show recent operations
  mirava version                Show version
  mirava help                   Show this help message

Examples:
  mirava set 3 50%              Set video 3 to 50% watched
  mirava set 5 1:20:10          Set video 5 to 1h 20m 10s watched
  mirava mark 8                 Mark video 8 as 100% watched
  mirava mark 3 5 7             Mark videos 3, 5, and 7 as 100% watched`

func printUsage() {
	if !ui.IsTTY() {
		fmt.Fprintln(ui.Out, usagePlain)
		return
	}
	fmt.Fprintln(ui.Out, renderMarkdown(usageMarkdown, terminalWidth()))
}

// renderMarkdown renders markdown with glamour, falling back to the raw text.
func renderMarkdown(text string, width int) string {
	if width < 40 {
		width = 40
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return usagePlain
	}
	rendered, err := r.Render(text)
	if err != nil {
		return usagePlain
	}
	return strings.TrimRight(rendered, "\n")
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return min(w, 100)
}

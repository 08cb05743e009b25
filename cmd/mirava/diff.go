package main

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"mirava/internal/state"
	"mirava/internal/ui"
)

// diffContext is how many unchanged lines are kept around each change.
const diffContext = 3

// stateDiff returns a line diff of the state file, old to new, or "" when
// nothing changed.
func stateDiff(oldContent, newContent string) string {
	if oldContent == newContent {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return formatUnifiedDiff(diffs)
}

// formatUnifiedDiff prefixes inserted lines with "+ ", deleted lines with
// "- " and context lines with "  ". Long unchanged runs are collapsed.
func formatUnifiedDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder

	write := func(prefix string, lines []string) {
		for _, line := range lines {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	for i, d := range diffs {
		lines := strings.Split(d.Text, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}

		switch d.Type {
		case diffmatchpatch.DiffInsert:
			write("+ ", lines)
		case diffmatchpatch.DiffDelete:
			write("- ", lines)
		case diffmatchpatch.DiffEqual:
			head, tail := diffContext, diffContext
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			if len(lines) <= head+tail+1 {
				write("  ", lines)
				continue
			}
			write("  ", lines[:head])
			fmt.Fprintf(&b, "  ... (%d unchanged lines)\n", len(lines)-head-tail)
			write("  ", lines[len(lines)-tail:])
		}
	}

	return b.String()
}

// printStateDiff writes the diff to ui.Out, colored on a terminal.
func printStateDiff(oldContent, newContent string) {
	diff := stateDiff(oldContent, newContent)
	if diff == "" {
		ui.Info("No changes to %s", state.FileName)
		return
	}

	color := ui.IsTTY()
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		if color {
			switch {
			case strings.HasPrefix(line, "+ "):
				line = tc.Green.Render(line)
			case strings.HasPrefix(line, "- "):
				line = tc.Red.Render(line)
			default:
				line = tc.Dim.Render(line)
			}
		}
		fmt.Fprintln(ui.Out, line)
	}
}
